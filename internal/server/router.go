package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/at-ishikawa/playtrack/internal/metrics"
)

// NewRouter wires the analytics API, health and metrics endpoints behind CORS.
// m may be nil, in which case /metrics is not served.
func NewRouter(service AnalyticsService, m *metrics.Metrics, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	if m != nil {
		router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
		router.Use(m.HTTPMiddleware)
	}

	NewAnalyticsHandler(service).RegisterRoutes(router)

	return CORSMiddleware(router, allowedOrigins)
}

// CORSMiddleware allows browser dashboards served from allowedOrigins to call the API.
func CORSMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Experience-API-Version")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
