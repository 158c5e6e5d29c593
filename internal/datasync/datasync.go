// Package datasync moves game analytics records between the store and files: YAML exports,
// YAML imports and JSON telemetry files.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

// ExportFileName is the file an export directory holds.
const ExportFileName = "game_analytics.yml"

// RecordSource lists every stored record.
type RecordSource interface {
	FindAll(ctx context.Context) ([]analytics.GameAnalytics, error)
}

// RecordStore is what an import writes to.
type RecordStore interface {
	FindByID(ctx context.Context, id string) (*analytics.GameAnalytics, error)
	Save(ctx context.Context, record analytics.GameAnalytics) (analytics.GameAnalytics, error)
}

// RecordSink receives exported records.
type RecordSink interface {
	WriteAll(records []analytics.GameAnalytics) error
}

// ImportResult tracks counts for an import.
type ImportResult struct {
	RecordsNew     int
	RecordsUpdated int
	RecordsSkipped int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
	// UpdateExisting merges records whose id is already stored instead of skipping them.
	UpdateExisting bool
}

// Exporter copies every stored record to a sink.
type Exporter struct {
	source RecordSource
	sink   RecordSink
}

func NewExporter(source RecordSource, sink RecordSink) *Exporter {
	return &Exporter{source: source, sink: sink}
}

// Export returns the number of exported records.
func (e *Exporter) Export(ctx context.Context) (int, error) {
	records, err := e.source.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("source.FindAll() > %w", err)
	}
	if err := e.sink.WriteAll(records); err != nil {
		return 0, fmt.Errorf("sink.WriteAll() > %w", err)
	}
	return len(records), nil
}

// Importer writes previously exported records into a store.
type Importer struct {
	store  RecordStore
	writer io.Writer
}

// NewImporter creates an Importer that reports each decision to writer.
func NewImporter(store RecordStore, writer io.Writer) *Importer {
	return &Importer{store: store, writer: writer}
}

// Import saves records in order. Records without an id are skipped.
func (imp *Importer) Import(ctx context.Context, records []analytics.GameAnalytics, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}
	for _, record := range records {
		if record.ID == "" {
			result.RecordsSkipped++
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP] record without id (user %q, game %q)\n", record.UserID, record.GameID)
			continue
		}

		existing, err := imp.store.FindByID(ctx, record.ID)
		if err != nil {
			return nil, fmt.Errorf("store.FindByID(%s) > %w", record.ID, err)
		}
		switch {
		case existing == nil:
			result.RecordsNew++
			_, _ = fmt.Fprintf(imp.writer, "  [NEW]  %s\n", record.ID)
		case opts.UpdateExisting:
			result.RecordsUpdated++
			_, _ = fmt.Fprintf(imp.writer, "  [UPDATE] %s\n", record.ID)
		default:
			result.RecordsSkipped++
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP] %s already exists\n", record.ID)
			continue
		}

		if opts.DryRun {
			continue
		}
		if _, err := imp.store.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("store.Save(%s) > %w", record.ID, err)
		}
	}
	return result, nil
}
