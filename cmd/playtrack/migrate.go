package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/playtrack/internal/config"
	"github.com/at-ishikawa/playtrack/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var db *sqlx.DB
			switch cfg.Store.Driver {
			case config.DriverMySQL:
				db, err = database.Open(cfg.Database)
			case config.DriverSQLite3:
				db, err = database.OpenSQLite(cfg.Store.SQLitePath)
			default:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "The %s store has no migrations\n", cfg.Store.Driver)
				return nil
			}
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			applied, err := database.Migrate(cmd.Context(), db)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			if len(applied) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
				return nil
			}
			for _, version := range applied {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", version)
			}
			return nil
		},
	}
}
