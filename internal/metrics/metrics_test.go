package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveIngestion(t *testing.T) {
	m := New()

	m.ObserveIngestion(FormatXAPI, OutcomeSaved, time.Now())
	m.ObserveIngestion(FormatXAPI, OutcomeSaved, time.Now())
	m.ObserveIngestion(FormatSCORM12, OutcomeInvalid, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.IngestionTotal.WithLabelValues(FormatXAPI, OutcomeSaved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IngestionTotal.WithLabelValues(FormatSCORM12, OutcomeInvalid)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.IngestionTotal.WithLabelValues(FormatSCORM12, OutcomeSaved)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.IngestionDuration))
}

func TestMetrics_Forwarding(t *testing.T) {
	m := New()

	m.ObserveForward(OutcomeSubmitted)
	m.ObserveForward(OutcomeDropped)
	m.ObserveForward(OutcomeDropped)
	m.SetQueueDepth(7)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LRSForwardTotal.WithLabelValues(OutcomeSubmitted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LRSForwardTotal.WithLabelValues(OutcomeDropped)))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.LRSQueueDepth))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveIngestion(FormatXAPI, OutcomeSaved, time.Now())
		m.ObserveForward(OutcomeDropped)
		m.SetQueueDepth(1)
	})
}

func TestMetrics_HTTPMiddleware(t *testing.T) {
	m := New()
	router := mux.NewRouter()
	router.Use(m.HTTPMiddleware)
	router.HandleFunc("/api/v1/analytics/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)
	router.Handle("/metrics", m.Handler())

	for _, id := range []string{"u1", "u2"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/users/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/analytics/users/{id}", "418")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "playtrack_http_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}
