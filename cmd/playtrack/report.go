package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/playtrack/internal/cli"
)

const defaultReportFileName = "analytics-report.md"

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show statistics and rankings of the stored sessions",
	}
	cmd.AddCommand(
		newReportStatsCommand(),
		newReportUsersCommand(),
		newReportSchoolsCommand(),
		newReportExportCommand(),
	)
	return cmd
}

func newReportStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics over every session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env environment) error {
				stats, err := env.service.GetAggregateStats(ctx)
				if err != nil {
					return fmt.Errorf("service.GetAggregateStats() > %w", err)
				}
				cli.PrintStats(cmd.OutOrStdout(), stats)
				return nil
			})
		},
	}
}

func newReportUsersCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Show the learners with the highest average score",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env environment) error {
				rankings, err := env.service.GetUserRankings(ctx, limit)
				if err != nil {
					return fmt.Errorf("service.GetUserRankings() > %w", err)
				}
				cli.PrintUserRankings(cmd.OutOrStdout(), rankings)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of learners to show (defaults to rankings.default_limit)")
	return cmd
}

func newReportSchoolsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "schools",
		Short: "Show the schools with the highest average score",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env environment) error {
				rankings, err := env.service.GetSchoolRankings(ctx, limit)
				if err != nil {
					return fmt.Errorf("service.GetSchoolRankings() > %w", err)
				}
				cli.PrintSchoolRankings(cmd.OutOrStdout(), rankings)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of schools to show (defaults to rankings.default_limit)")
	return cmd
}

func newReportExportCommand() *cobra.Command {
	var (
		outputPath   string
		templatePath string
		limit        int
		generatePDF  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the statistics and rankings to a markdown report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env environment) error {
				if outputPath == "" {
					outputPath = filepath.Join(env.cfg.Outputs.ReportDirectory, defaultReportFileName)
				}
				paths, err := cli.ExportReport(ctx, env.service, cli.ExportOptions{
					OutputPath:   outputPath,
					TemplatePath: templatePath,
					Limit:        limit,
					GeneratePDF:  generatePDF,
					Now:          time.Now().UTC(),
				})
				if err != nil {
					return fmt.Errorf("cli.ExportReport() > %w", err)
				}
				for _, path := range paths {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Markdown file to write (defaults to outputs.report_directory/"+defaultReportFileName+")")
	cmd.Flags().StringVar(&templatePath, "template", "", "Custom report template")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of ranking rows (defaults to rankings.default_limit)")
	cmd.Flags().BoolVar(&generatePDF, "pdf", false, "Also write a PDF next to the markdown file")
	return cmd
}
