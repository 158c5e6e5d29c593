package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/playtrack/internal/analytics"
	"github.com/at-ishikawa/playtrack/internal/config"
	"github.com/at-ishikawa/playtrack/internal/ingest"
	"github.com/at-ishikawa/playtrack/internal/lrs"
	"github.com/at-ishikawa/playtrack/internal/metrics"
	"github.com/at-ishikawa/playtrack/internal/store"
)

// NewLRSClient creates an LRS client from cfg.
func NewLRSClient(cfg config.LRSConfig) *lrs.Client {
	return lrs.NewClient(
		cfg.Endpoint,
		cfg.Username,
		cfg.Password,
		time.Duration(cfg.TimeoutSeconds)*time.Second,
		cfg.MaxRetryAttempts,
	)
}

// OpenStore opens the store selected by cfg and registers a shutdown hook closing it.
func (a *App) OpenStore(ctx context.Context, cfg *config.Config) (store.Repository, error) {
	repo, closeStore, err := store.Open(ctx, cfg, analytics.SystemClock)
	if err != nil {
		return nil, fmt.Errorf("store.Open() > %w", err)
	}
	a.AddShutdownHook(func(context.Context) error {
		return closeStore()
	})
	return repo, nil
}

// NewService builds the analytics service over repo and starts its LRS forwarder, whose drain is registered
// as a shutdown hook. Statements are discarded by lrs.NoopSubmitter unless forwarding is enabled. m may be nil.
func (a *App) NewService(repo store.Repository, cfg *config.Config, m *metrics.Metrics) (*ingest.Service, error) {
	var submitter lrs.Submitter = lrs.NoopSubmitter{}
	if cfg.LRS.Enabled {
		client := NewLRSClient(cfg.LRS)
		a.AddShutdownHook(func(context.Context) error {
			return client.Close()
		})
		submitter = client
	}
	forwarder := lrs.NewForwarder(submitter, cfg.LRS.QueueSize, m)
	// drained before the client closes
	a.AddShutdownHook(forwarder.Close)

	service, err := ingest.NewService(repo, cfg.Ingestion,
		ingest.WithMetrics(m),
		ingest.WithForwarder(forwarder),
		ingest.WithDefaultRankingLimit(cfg.Rankings.DefaultLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("ingest.NewService() > %w", err)
	}
	return service, nil
}

// OpenService combines OpenStore and NewService.
func (a *App) OpenService(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*ingest.Service, error) {
	repo, err := a.OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return a.NewService(repo, cfg, m)
}
