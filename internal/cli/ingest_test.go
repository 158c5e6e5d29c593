package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/playtrack/internal/analytics"
	"github.com/at-ishikawa/playtrack/internal/config"
	"github.com/at-ishikawa/playtrack/internal/ingest"
	"github.com/at-ishikawa/playtrack/internal/store"
)

func newIngestService(t *testing.T, repo store.Repository) *ingest.Service {
	t.Helper()
	service, err := ingest.NewService(repo, config.IngestionConfig{EnableXAPI: true, EnableSCORM12: true},
		ingest.WithClock(analytics.FixedClock(time.Date(2025, 4, 2, 8, 30, 0, 0, time.UTC))),
		ingest.WithIDGenerator(func() string { return "generated-id" }),
	)
	require.NoError(t, err)
	return service
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIngestXAPIFiles(t *testing.T) {
	dir := t.TempDir()
	single := writeFile(t, dir, "single.json", `{"id": "s1", "actor": {"mbox": "mailto:ada@example.com"}, "verb": {"id": "v"}, "object": {"id": "g1"}}`)
	batch := writeFile(t, dir, "batch.json", `[{"id": "s2", "actor": {"account": {"homePage": "h", "name": "u2"}}, "verb": {"id": "v"}, "object": {"id": "g1"}},
		{"id": "s3", "actor": {"account": {"homePage": "h", "name": "u3"}}, "verb": {"id": "v"}, "object": {"id": "g2"}}]`)
	broken := writeFile(t, dir, "broken.json", `{"id": "s4", "timestamp": "soon", "object": {"id": "g1"}}`)

	tests := []struct {
		name       string
		paths      []string
		wantCount  int
		wantStored int
		wantErr    string
	}{
		{name: "single and batch files", paths: []string{single, batch}, wantCount: 3, wantStored: 3},
		{name: "stops at an invalid statement", paths: []string{single, broken, batch}, wantCount: 1, wantStored: 1, wantErr: "broken.json"},
		{name: "missing file", paths: []string{filepath.Join(dir, "missing.json")}, wantErr: "missing.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := store.NewMemoryRepository(nil)
			var out bytes.Buffer

			got, err := IngestXAPIFiles(context.Background(), newIngestService(t, repo), &out, tt.paths)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCount, got)
			assert.Equal(t, tt.wantStored, repo.Len())
		})
	}
}

func TestIngestSCORMFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "session.json", `{"cmi": {"core": {"student_id": "s-1", "student_name": "Lin", "lesson_status": "completed"}}}`)

	repo := store.NewMemoryRepository(nil)
	var out bytes.Buffer
	got, err := IngestSCORMFile(context.Background(), newIngestService(t, repo), &out, path, "maze", "Maze Runner")
	require.NoError(t, err)
	assert.Equal(t, "s-1", got.UserID)
	assert.Equal(t, "Maze Runner", got.GameName)
	assert.Contains(t, out.String(), "stored generated-id (user s-1, game maze)")

	_, err = IngestSCORMFile(context.Background(), newIngestService(t, repo), &out, path, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrInvalidInput)
}
