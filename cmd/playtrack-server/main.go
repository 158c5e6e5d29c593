package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/playtrack/internal/bootstrap"
	"github.com/at-ishikawa/playtrack/internal/config"
	"github.com/at-ishikawa/playtrack/internal/metrics"
	"github.com/at-ishikawa/playtrack/internal/server"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "playtrack-server",
		Short:         "Playtrack telemetry ingestion and analytics HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path (defaults to $"+config.EnvConfigFile+")")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	srv, err := newServer(ctx, app, cfg)
	if err != nil {
		return err
	}

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

// newServer wires the store, metrics and analytics service into an HTTP server whose shutdown is registered on app.
func newServer(ctx context.Context, app *bootstrap.App, cfg *config.Config) (*http.Server, error) {
	m := metrics.New()
	service, err := app.OpenService(ctx, cfg, m)
	if err != nil {
		return nil, fmt.Errorf("app.OpenService() > %w", err)
	}

	router := server.NewRouter(service, m, cfg.Server.CORS.AllowedOrigins)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      h2c.NewHandler(router, &http2.Server{}),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}
	app.AddShutdownHook(srv.Shutdown)
	return srv, nil
}

func loadConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	loader, err := config.NewConfigLoader(path)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
