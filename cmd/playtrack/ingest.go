package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/playtrack/internal/cli"
)

func newIngestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest telemetry files into the store",
	}
	cmd.AddCommand(newIngestXAPICommand(), newIngestSCORMCommand())
	return cmd
}

func newIngestXAPICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "xapi <file>...",
		Short: "Ingest xAPI statements from JSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env environment) error {
				count, err := cli.IngestXAPIFiles(ctx, env.service, cmd.OutOrStdout(), args)
				if err != nil {
					return fmt.Errorf("cli.IngestXAPIFiles() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d statements\n", count)
				return nil
			})
		},
	}
}

func newIngestSCORMCommand() *cobra.Command {
	var gameID, gameName string

	cmd := &cobra.Command{
		Use:   "scorm <file>",
		Short: "Ingest a SCORM 1.2 session from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env environment) error {
				if _, err := cli.IngestSCORMFile(ctx, env.service, cmd.OutOrStdout(), args[0], gameID, gameName); err != nil {
					return fmt.Errorf("cli.IngestSCORMFile() > %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&gameID, "game-id", "", "Identifier of the game the session belongs to")
	cmd.Flags().StringVar(&gameName, "game-name", "", "Display name of the game")
	_ = cmd.MarkFlagRequired("game-id")
	return cmd
}
