package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/playtrack/internal/analytics"
	"github.com/at-ishikawa/playtrack/internal/config"
	"github.com/at-ishikawa/playtrack/internal/database"
)

// Open builds the repository selected by cfg.Store.Driver. SQL stores are migrated before use.
// The returned close function releases the database connection and is never nil.
func Open(ctx context.Context, cfg *config.Config, clock analytics.Clock) (Repository, func() error, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		slog.Default().Info("using in-memory store")
		return NewMemoryRepository(clock), func() error { return nil }, nil
	case config.DriverMySQL:
		db, err = database.Open(cfg.Database)
	case config.DriverSQLite3:
		db, err = database.OpenSQLite(cfg.Store.SQLitePath)
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	if _, err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	slog.Default().Info("using SQL store", "driver", cfg.Store.Driver)
	return NewDBRepository(db, clock), db.Close, nil
}
