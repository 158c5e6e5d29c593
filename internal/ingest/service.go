// Package ingest is the entry point for xAPI and SCORM telemetry: it normalizes payloads into
// game analytics records, stores them, and answers lookups, statistics and rankings.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/playtrack/internal/analytics"
	"github.com/at-ishikawa/playtrack/internal/config"
	"github.com/at-ishikawa/playtrack/internal/metrics"
	"github.com/at-ishikawa/playtrack/internal/scorm"
	"github.com/at-ishikawa/playtrack/internal/statistics"
	"github.com/at-ishikawa/playtrack/internal/store"
	"github.com/at-ishikawa/playtrack/internal/xapi"
)

var (
	// ErrFormatDisabled is returned when a payload arrives for a format that is switched off.
	ErrFormatDisabled = errors.New("telemetry format is disabled")
	// ErrInvalidInput is returned when a payload cannot be normalized.
	ErrInvalidInput = errors.New("invalid telemetry input")
)

// StatementForwarder hands stored statements to an LRS without blocking.
type StatementForwarder interface {
	Enqueue(statement xapi.Statement) (bool, error)
}

// Service ingests telemetry and serves queries over the stored records.
type Service struct {
	repo       store.Repository
	aggregator *statistics.Aggregator
	forwarder  StatementForwarder
	cfg        config.IngestionConfig

	xapiNormalizer  *xapi.Normalizer
	scormNormalizer *scorm.Normalizer
	validator       *payloadValidator

	clock   analytics.Clock
	newID   func() string
	metrics *metrics.Metrics
}

type options struct {
	clock        analytics.Clock
	newID        func() string
	metrics      *metrics.Metrics
	forwarder    StatementForwarder
	mapper       xapi.ContextMapper
	rankingLimit int
}

// Option configures a Service.
type Option func(*options)

func WithClock(clock analytics.Clock) Option {
	return func(o *options) { o.clock = clock }
}

func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithForwarder enables LRS forwarding of every stored xAPI statement.
func WithForwarder(forwarder StatementForwarder) Option {
	return func(o *options) { o.forwarder = forwarder }
}

// WithContextMapper replaces the keyword based grouping mapper built from the ingestion config.
func WithContextMapper(mapper xapi.ContextMapper) Option {
	return func(o *options) { o.mapper = mapper }
}

// WithDefaultRankingLimit sets the limit used when a ranking is requested without one.
func WithDefaultRankingLimit(limit int) Option {
	return func(o *options) { o.rankingLimit = limit }
}

// NewService creates a Service over repo.
func NewService(repo store.Repository, cfg config.IngestionConfig, opts ...Option) (*Service, error) {
	o := options{
		clock: analytics.SystemClock,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.mapper == nil {
		o.mapper = xapi.NewGroupingMapper(cfg.ContextKeywords.School, cfg.ContextKeywords.Grade, cfg.ContextKeywords.Subject)
	}

	v, err := newPayloadValidator()
	if err != nil {
		return nil, fmt.Errorf("newPayloadValidator() > %w", err)
	}

	return &Service{
		repo:       repo,
		aggregator: statistics.NewAggregator(repo, o.rankingLimit),
		forwarder:  o.forwarder,
		cfg:        cfg,
		xapiNormalizer: xapi.NewNormalizer(
			xapi.WithClock(o.clock),
			xapi.WithIDGenerator(o.newID),
			xapi.WithContextMapper(o.mapper),
		),
		scormNormalizer: scorm.NewNormalizer(o.clock, o.newID),
		validator:       v,
		clock:           o.clock,
		newID:           o.newID,
		metrics:         o.metrics,
	}, nil
}

// ProcessXAPIStatement stores one statement and forwards it to the LRS on a best effort basis.
// A statement without id or timestamp gets both assigned before it is normalized and forwarded.
func (s *Service) ProcessXAPIStatement(ctx context.Context, statement xapi.Statement) (analytics.GameAnalytics, error) {
	started := time.Now()
	if !s.cfg.EnableXAPI {
		s.metrics.ObserveIngestion(metrics.FormatXAPI, metrics.OutcomeDisabled, started)
		return analytics.GameAnalytics{}, fmt.Errorf("xAPI: %w", ErrFormatDisabled)
	}

	statement = statement.WithDefaults(s.newID, s.clock.Now())
	record, err := s.xapiNormalizer.Normalize(statement)
	if err != nil {
		slog.Default().Error("failed to normalize xAPI statement",
			"statementId", statement.ID,
			"error", err)
		s.metrics.ObserveIngestion(metrics.FormatXAPI, metrics.OutcomeInvalid, started)
		return analytics.GameAnalytics{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	saved, err := s.repo.Save(ctx, record)
	if err != nil {
		slog.Default().Error("failed to store xAPI statement",
			"statementId", statement.ID,
			"error", err)
		s.metrics.ObserveIngestion(metrics.FormatXAPI, metrics.OutcomeFailed, started)
		return analytics.GameAnalytics{}, fmt.Errorf("repo.Save(%s) > %w", record.ID, err)
	}
	s.metrics.ObserveIngestion(metrics.FormatXAPI, metrics.OutcomeSaved, started)
	slog.Default().Debug("stored xAPI statement",
		"recordId", saved.ID,
		"userId", saved.UserID,
		"gameId", saved.GameID)

	if s.forwarder != nil {
		if _, err := s.forwarder.Enqueue(statement); err != nil {
			slog.Default().Warn("statement was stored but not forwarded to the LRS",
				"statementId", statement.ID,
				"error", err)
		}
	}
	return saved, nil
}

// BatchError reports the statement a batch stopped at. Statements before Index were stored.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("statement %d: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// ProcessXAPIStatements stores statements in order and stops at the first failure.
// A batch is not atomic: the records stored before the failure are returned with a *BatchError.
func (s *Service) ProcessXAPIStatements(ctx context.Context, statements []xapi.Statement) ([]analytics.GameAnalytics, error) {
	records := make([]analytics.GameAnalytics, 0, len(statements))
	for i, statement := range statements {
		record, err := s.ProcessXAPIStatement(ctx, statement)
		if err != nil {
			return records, &BatchError{Index: i, Err: err}
		}
		records = append(records, record)
	}
	return records, nil
}

// ProcessSCORMData stores one SCORM 1.2 session of the given game.
// The student id and the game id are required.
func (s *Service) ProcessSCORMData(ctx context.Context, data scorm.Data, gameID, gameName string) (analytics.GameAnalytics, error) {
	started := time.Now()
	if !s.cfg.EnableSCORM12 {
		s.metrics.ObserveIngestion(metrics.FormatSCORM12, metrics.OutcomeDisabled, started)
		return analytics.GameAnalytics{}, fmt.Errorf("SCORM 1.2: %w", ErrFormatDisabled)
	}

	if err := s.validator.Struct(scormSession{GameID: gameID, Data: data}); err != nil {
		slog.Default().Error("invalid SCORM data",
			"gameId", gameID,
			"error", err)
		s.metrics.ObserveIngestion(metrics.FormatSCORM12, metrics.OutcomeInvalid, started)
		return analytics.GameAnalytics{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	record := s.scormNormalizer.Normalize(data, gameID, gameName)
	saved, err := s.repo.Save(ctx, record)
	if err != nil {
		slog.Default().Error("failed to store SCORM data",
			"gameId", gameID,
			"studentId", data.CMI.Core.StudentID,
			"error", err)
		s.metrics.ObserveIngestion(metrics.FormatSCORM12, metrics.OutcomeFailed, started)
		return analytics.GameAnalytics{}, fmt.Errorf("repo.Save(%s) > %w", record.ID, err)
	}
	s.metrics.ObserveIngestion(metrics.FormatSCORM12, metrics.OutcomeSaved, started)
	slog.Default().Debug("stored SCORM data",
		"recordId", saved.ID,
		"userId", saved.UserID,
		"gameId", saved.GameID)
	return saved, nil
}

// GetAnalyticsByID returns nil when no record has id.
func (s *Service) GetAnalyticsByID(ctx context.Context, id string) (*analytics.GameAnalytics, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByID(%s) > %w", id, err)
	}
	return record, nil
}

func (s *Service) GetAnalyticsByUser(ctx context.Context, userID string) ([]analytics.GameAnalytics, error) {
	records, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByUser(%s) > %w", userID, err)
	}
	return records, nil
}

func (s *Service) GetAnalyticsByGame(ctx context.Context, gameID string) ([]analytics.GameAnalytics, error) {
	records, err := s.repo.FindByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByGame(%s) > %w", gameID, err)
	}
	return records, nil
}

func (s *Service) GetAnalyticsBySchool(ctx context.Context, schoolID string) ([]analytics.GameAnalytics, error) {
	records, err := s.repo.FindBySchool(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindBySchool(%s) > %w", schoolID, err)
	}
	return records, nil
}

func (s *Service) GetAnalyticsByGrade(ctx context.Context, gradeLevel string) ([]analytics.GameAnalytics, error) {
	records, err := s.repo.FindByGrade(ctx, gradeLevel)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByGrade(%s) > %w", gradeLevel, err)
	}
	return records, nil
}

func (s *Service) GetAnalyticsBySubject(ctx context.Context, subject string) ([]analytics.GameAnalytics, error) {
	records, err := s.repo.FindBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("repo.FindBySubject(%s) > %w", subject, err)
	}
	return records, nil
}

// GetAnalyticsByDateRange returns records created within [start, end].
func (s *Service) GetAnalyticsByDateRange(ctx context.Context, start, end time.Time) ([]analytics.GameAnalytics, error) {
	records, err := s.repo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByDateRange() > %w", err)
	}
	return records, nil
}

// GetAllAnalytics returns every stored record in insertion order.
func (s *Service) GetAllAnalytics(ctx context.Context) ([]analytics.GameAnalytics, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.FindAll() > %w", err)
	}
	return records, nil
}

func (s *Service) GetAggregateStats(ctx context.Context) (analytics.AggregateStats, error) {
	return s.aggregator.AggregateStats(ctx)
}

// GetUserRankings uses the configured default limit when limit is not positive.
func (s *Service) GetUserRankings(ctx context.Context, limit int) ([]analytics.UserRanking, error) {
	return s.aggregator.UserRankings(ctx, limit)
}

// GetSchoolRankings uses the configured default limit when limit is not positive.
func (s *Service) GetSchoolRankings(ctx context.Context, limit int) ([]analytics.SchoolRanking, error) {
	return s.aggregator.SchoolRankings(ctx, limit)
}
