package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/playtrack/internal/bootstrap"
	"github.com/at-ishikawa/playtrack/internal/config"
	"github.com/at-ishikawa/playtrack/internal/ingest"
	"github.com/at-ishikawa/playtrack/internal/store"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// environment is what a command needs to reach the configured store.
type environment struct {
	cfg     *config.Config
	repo    store.Repository
	service *ingest.Service
}

// runWithEnvironment opens the configured store and runs fn.
// The store, and the LRS forwarder when enabled, are released after fn returns.
func runWithEnvironment(cmd *cobra.Command, fn func(ctx context.Context, env environment) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app := bootstrap.New()
	return app.Run(cmd.Context(), func(ctx context.Context) error {
		repo, err := app.OpenStore(ctx, cfg)
		if err != nil {
			return err
		}
		service, err := app.NewService(repo, cfg, nil)
		if err != nil {
			return err
		}
		return fn(ctx, environment{cfg: cfg, repo: repo, service: service})
	})
}
