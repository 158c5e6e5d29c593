package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/playtrack/internal/bootstrap"
)

func newLRSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lrs",
		Short: "Learning Record Store commands",
	}
	cmd.AddCommand(newLRSCheckCommand())
	return cmd
}

func newLRSCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the configured LRS is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.LRS.Endpoint == "" {
				return errors.New("lrs.endpoint is not configured")
			}

			client := bootstrap.NewLRSClient(cfg.LRS)
			defer func() {
				_ = client.Close()
			}()

			about, err := client.Ping(cmd.Context())
			if err != nil {
				return fmt.Errorf("client.Ping() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "LRS %s is reachable (xAPI versions: %s)\n",
				cfg.LRS.Endpoint, strings.Join(about.Version, ", "))
			if !cfg.LRS.Enabled {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Forwarding is disabled; set lrs.enabled to forward statements")
			}
			return nil
		},
	}
}
