package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/playtrack/schemas"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) NOT NULL PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL
)`

// Migrate applies the embedded migrations of db's driver that have not been applied yet
// and returns the versions it applied.
func Migrate(ctx context.Context, db *sqlx.DB) ([]string, error) {
	return migrate(ctx, db, schemas.Migrations, path.Join("migrations", db.DriverName()))
}

func migrate(ctx context.Context, db *sqlx.DB, fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("fs.ReadDir(%s) > %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("db.ExecContext(create schema_migrations) > %w", err)
	}
	var versions []string
	if err := db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(schema_migrations) > %w", err)
	}
	done := make(map[string]bool, len(versions))
	for _, v := range versions {
		done[v] = true
	}

	var applied []string
	for _, name := range files {
		version := strings.TrimSuffix(name, ".sql")
		if done[version] {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return applied, fmt.Errorf("fs.ReadFile(%s) > %w", name, err)
		}

		err = RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("tx.ExecContext(%s) > %w", name, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)"), version, time.Now().UTC()); err != nil {
				return fmt.Errorf("tx.ExecContext(insert schema_migrations) > %w", err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		slog.Default().Info("applied migration", "version", version, "driver", db.DriverName())
		applied = append(applied, version)
	}
	return applied, nil
}
