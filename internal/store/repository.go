// Package store persists game analytics records and answers the lookups the ingestion service exposes.
package store

//go:generate mockgen -source=repository.go -destination=../mocks/store/mock_repository.go -package=mock_store

import (
	"context"
	"time"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

// Repository defines operations for storing and querying analytics records.
// Every query returns records in insertion order and an empty slice when nothing matches.
type Repository interface {
	// Save inserts a record with an unseen ID, or overlays it onto the stored record with the same ID.
	Save(ctx context.Context, record analytics.GameAnalytics) (analytics.GameAnalytics, error)
	// FindByID returns nil without an error when the record does not exist.
	FindByID(ctx context.Context, id string) (*analytics.GameAnalytics, error)
	FindByUser(ctx context.Context, userID string) ([]analytics.GameAnalytics, error)
	FindByGame(ctx context.Context, gameID string) ([]analytics.GameAnalytics, error)
	FindBySchool(ctx context.Context, schoolID string) ([]analytics.GameAnalytics, error)
	FindByGrade(ctx context.Context, gradeLevel string) ([]analytics.GameAnalytics, error)
	FindBySubject(ctx context.Context, subject string) ([]analytics.GameAnalytics, error)
	// FindByDateRange matches records whose CreatedAt is within [start, end].
	FindByDateRange(ctx context.Context, start, end time.Time) ([]analytics.GameAnalytics, error)
	FindAll(ctx context.Context) ([]analytics.GameAnalytics, error)
}
