package statistics

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

// RecordSource supplies the full record set an aggregation runs over.
type RecordSource interface {
	FindAll(ctx context.Context) ([]analytics.GameAnalytics, error)
}

// Aggregator computes statistics over one snapshot of a record source per call.
type Aggregator struct {
	source       RecordSource
	defaultLimit int
}

// NewAggregator creates an Aggregator. defaultLimit replaces non-positive ranking limits;
// when it is itself non-positive, DefaultRankingLimit is used.
func NewAggregator(source RecordSource, defaultLimit int) *Aggregator {
	if defaultLimit <= 0 {
		defaultLimit = DefaultRankingLimit
	}
	return &Aggregator{source: source, defaultLimit: defaultLimit}
}

// AggregateStats summarizes every stored record.
func (a *Aggregator) AggregateStats(ctx context.Context) (analytics.AggregateStats, error) {
	records, err := a.source.FindAll(ctx)
	if err != nil {
		return analytics.AggregateStats{}, fmt.Errorf("source.FindAll() > %w", err)
	}
	return CalculateAggregateStats(records), nil
}

// UserRankings returns up to limit users ordered by average score.
func (a *Aggregator) UserRankings(ctx context.Context, limit int) ([]analytics.UserRanking, error) {
	records, err := a.source.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.FindAll() > %w", err)
	}
	return RankUsers(records, a.limit(limit)), nil
}

// SchoolRankings returns up to limit schools ordered by average score.
func (a *Aggregator) SchoolRankings(ctx context.Context, limit int) ([]analytics.SchoolRanking, error) {
	records, err := a.source.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.FindAll() > %w", err)
	}
	return RankSchools(records, a.limit(limit)), nil
}

func (a *Aggregator) limit(limit int) int {
	if limit <= 0 {
		return a.defaultLimit
	}
	return limit
}
