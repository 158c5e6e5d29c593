package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/playtrack/internal/analytics"
	"github.com/at-ishikawa/playtrack/internal/datasync"
	"github.com/at-ishikawa/playtrack/internal/scorm"
	"github.com/at-ishikawa/playtrack/internal/xapi"
)

// IngestService stores telemetry read from files.
type IngestService interface {
	ProcessXAPIStatements(ctx context.Context, statements []xapi.Statement) ([]analytics.GameAnalytics, error)
	ProcessSCORMData(ctx context.Context, data scorm.Data, gameID, gameName string) (analytics.GameAnalytics, error)
}

// IngestXAPIFiles ingests every statement of every file in order and stops at the first failure.
func IngestXAPIFiles(ctx context.Context, service IngestService, w io.Writer, paths []string) (int, error) {
	total := 0
	for _, path := range paths {
		statements, err := datasync.ReadStatements(path)
		if err != nil {
			return total, err
		}
		records, err := service.ProcessXAPIStatements(ctx, statements)
		total += len(records)
		if err != nil {
			return total, fmt.Errorf("%s: %w", path, err)
		}
		for _, record := range records {
			_, _ = fmt.Fprintf(w, "%s %s (user %s, game %s)\n", green.Sprint("stored"), record.ID, record.UserID, record.GameID)
		}
	}
	return total, nil
}

// IngestSCORMFile ingests one SCORM 1.2 session file for gameID.
func IngestSCORMFile(ctx context.Context, service IngestService, w io.Writer, path, gameID, gameName string) (analytics.GameAnalytics, error) {
	data, err := datasync.ReadSCORMData(path)
	if err != nil {
		return analytics.GameAnalytics{}, err
	}
	record, err := service.ProcessSCORMData(ctx, data, gameID, gameName)
	if err != nil {
		return analytics.GameAnalytics{}, fmt.Errorf("%s: %w", path, err)
	}
	_, _ = fmt.Fprintf(w, "%s %s (user %s, game %s)\n", green.Sprint("stored"), record.ID, record.UserID, record.GameID)
	return record, nil
}
