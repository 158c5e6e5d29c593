// Package server provides the JSON HTTP API over the ingestion service.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/at-ishikawa/playtrack/internal/analytics"
	"github.com/at-ishikawa/playtrack/internal/ingest"
	"github.com/at-ishikawa/playtrack/internal/scorm"
	"github.com/at-ishikawa/playtrack/internal/xapi"
)

const maxBodyBytes = 10 << 20

// AnalyticsService is the part of ingest.Service the handlers use.
type AnalyticsService interface {
	ProcessXAPIStatement(ctx context.Context, statement xapi.Statement) (analytics.GameAnalytics, error)
	ProcessXAPIStatements(ctx context.Context, statements []xapi.Statement) ([]analytics.GameAnalytics, error)
	ProcessSCORMData(ctx context.Context, data scorm.Data, gameID, gameName string) (analytics.GameAnalytics, error)
	GetAnalyticsByID(ctx context.Context, id string) (*analytics.GameAnalytics, error)
	GetAnalyticsByUser(ctx context.Context, userID string) ([]analytics.GameAnalytics, error)
	GetAnalyticsByGame(ctx context.Context, gameID string) ([]analytics.GameAnalytics, error)
	GetAnalyticsBySchool(ctx context.Context, schoolID string) ([]analytics.GameAnalytics, error)
	GetAnalyticsByGrade(ctx context.Context, gradeLevel string) ([]analytics.GameAnalytics, error)
	GetAnalyticsBySubject(ctx context.Context, subject string) ([]analytics.GameAnalytics, error)
	GetAnalyticsByDateRange(ctx context.Context, start, end time.Time) ([]analytics.GameAnalytics, error)
	GetAggregateStats(ctx context.Context) (analytics.AggregateStats, error)
	GetUserRankings(ctx context.Context, limit int) ([]analytics.UserRanking, error)
	GetSchoolRankings(ctx context.Context, limit int) ([]analytics.SchoolRanking, error)
}

// AnalyticsHandler serves ingestion and query endpoints.
type AnalyticsHandler struct {
	service AnalyticsService
}

func NewAnalyticsHandler(service AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// RegisterRoutes registers the API under /api/v1.
func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/xapi/statements", h.postStatements).Methods(http.MethodPost)
	api.HandleFunc("/scorm/games/{gameId}/sessions", h.postSCORMSession).Methods(http.MethodPost)

	api.HandleFunc("/analytics/records", h.getRecordsByDateRange).Methods(http.MethodGet)
	api.HandleFunc("/analytics/records/{id}", h.getRecord).Methods(http.MethodGet)
	api.HandleFunc("/analytics/users/{id}", h.listBy("id", h.service.GetAnalyticsByUser)).Methods(http.MethodGet)
	api.HandleFunc("/analytics/games/{id}", h.listBy("id", h.service.GetAnalyticsByGame)).Methods(http.MethodGet)
	api.HandleFunc("/analytics/schools/{id}", h.listBy("id", h.service.GetAnalyticsBySchool)).Methods(http.MethodGet)
	api.HandleFunc("/analytics/grades/{grade}", h.listBy("grade", h.service.GetAnalyticsByGrade)).Methods(http.MethodGet)
	api.HandleFunc("/analytics/subjects/{subject}", h.listBy("subject", h.service.GetAnalyticsBySubject)).Methods(http.MethodGet)

	api.HandleFunc("/analytics/stats", h.getStats).Methods(http.MethodGet)
	api.HandleFunc("/analytics/rankings/users", h.getUserRankings).Methods(http.MethodGet)
	api.HandleFunc("/analytics/rankings/schools", h.getSchoolRankings).Methods(http.MethodGet)
}

// postStatements handles POST /api/v1/xapi/statements with a single statement or an array.
func (h *AnalyticsHandler) postStatements(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var statements []xapi.Statement
		if err := json.Unmarshal(trimmed, &statements); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("decode statements: %w", err))
			return
		}
		records, err := h.service.ProcessXAPIStatements(r.Context(), statements)
		var batchErr *ingest.BatchError
		if errors.As(err, &batchErr) {
			status, message := serviceErrorStatus(err)
			writeJSON(w, status, batchErrorResponse{
				Error:       message,
				FailedIndex: batchErr.Index,
				Records:     records,
			})
			return
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, records)
		return
	}

	var statement xapi.Statement
	if err := json.Unmarshal(trimmed, &statement); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode statement: %w", err))
		return
	}
	record, err := h.service.ProcessXAPIStatement(r.Context(), statement)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// postSCORMSession handles POST /api/v1/scorm/games/{gameId}/sessions?gameName=...
func (h *AnalyticsHandler) postSCORMSession(w http.ResponseWriter, r *http.Request) {
	var data scorm.Data
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode SCORM data: %w", err))
		return
	}

	record, err := h.service.ProcessSCORMData(r.Context(), data, mux.Vars(r)["gameId"], r.URL.Query().Get("gameName"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *AnalyticsHandler) getRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	record, err := h.service.GetAnalyticsByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("record %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *AnalyticsHandler) listBy(
	variable string,
	find func(ctx context.Context, key string) ([]analytics.GameAnalytics, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := find(r.Context(), mux.Vars(r)[variable])
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// getRecordsByDateRange handles GET /api/v1/analytics/records?start=...&end=... with RFC 3339 bounds.
func (h *AnalyticsHandler) getRecordsByDateRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid start: %w", err))
		return
	}
	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid end: %w", err))
		return
	}

	records, err := h.service.GetAnalyticsByDateRange(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *AnalyticsHandler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetAggregateStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AnalyticsHandler) getUserRankings(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rankings, err := h.service.GetUserRankings(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankings)
}

func (h *AnalyticsHandler) getSchoolRankings(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rankings, err := h.service.GetSchoolRankings(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankings)
}

// parseLimit returns 0 when the limit parameter is absent, which selects the default limit.
func parseLimit(r *http.Request) (int, error) {
	value := r.URL.Query().Get("limit")
	if value == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("invalid limit %q", value)
	}
	return limit, nil
}

// batchErrorResponse is the body of a failed statement batch. Records holds the statements stored before FailedIndex.
type batchErrorResponse struct {
	Error       string                    `json:"error"`
	FailedIndex int                       `json:"failedIndex"`
	Records     []analytics.GameAnalytics `json:"records"`
}

func serviceErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ingest.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ingest.ErrFormatDisabled):
		return http.StatusForbidden, err.Error()
	default:
		slog.Default().Error("request failed", "error", err)
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status, message := serviceErrorStatus(err)
	writeJSON(w, status, map[string]string{"error": message})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("failed to write response", "error", err)
	}
}
