package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/playtrack/internal/datasync"
)

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored records",
	}
	cmd.AddCommand(newExportYAMLCommand())
	return cmd
}

func newExportYAMLCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "yaml",
		Short: "Export every stored record to a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnvironment(cmd, func(ctx context.Context, env environment) error {
				if outputDir == "" {
					outputDir = env.cfg.Outputs.ExportDirectory
				}
				sink := datasync.NewYAMLSink(outputDir)
				count, err := datasync.NewExporter(env.repo, sink).Export(ctx)
				if err != nil {
					return fmt.Errorf("exporter.Export() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", count, sink.Path())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to outputs.export_directory)")
	return cmd
}

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import previously exported records",
	}
	cmd.AddCommand(newImportYAMLCommand())
	return cmd
}

func newImportYAMLCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "yaml <file>",
		Short: "Import records from a YAML export into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := datasync.ReadYAML(args[0])
			if err != nil {
				return fmt.Errorf("datasync.ReadYAML() > %w", err)
			}

			return runWithEnvironment(cmd, func(ctx context.Context, env environment) error {
				out := cmd.OutOrStdout()
				opts := datasync.ImportOptions{
					DryRun:         dryRun,
					UpdateExisting: updateExisting,
				}
				result, err := datasync.NewImporter(env.repo, out).Import(ctx, records, opts)
				if err != nil {
					return fmt.Errorf("importer.Import() > %w", err)
				}

				_, _ = fmt.Fprintln(out, "\nImport Summary:")
				if opts.DryRun {
					_, _ = fmt.Fprintln(out, "  (dry-run mode, no changes made)")
				}
				_, _ = fmt.Fprintf(out, "  Records: %d new, %d skipped, %d updated\n", result.RecordsNew, result.RecordsSkipped, result.RecordsUpdated)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the store")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	return cmd
}
