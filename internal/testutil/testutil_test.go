package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/playtrack/internal/config"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)
	assert.Equal(t, filepath.Join(tmpDir, "config.yml"), got)

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite3, cfg.Store.Driver)
	assert.Equal(t, filepath.Join(tmpDir, "playtrack.db"), cfg.Store.SQLitePath)
	assert.False(t, cfg.LRS.Enabled)
	assert.DirExists(t, cfg.Outputs.ReportDirectory)
	assert.DirExists(t, cfg.Outputs.ExportDirectory)
}

func TestSetupTestConfigWithLRS(t *testing.T) {
	got := SetupTestConfigWithLRS(t, t.TempDir(), "https://lrs.example.com/xapi/")

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.True(t, cfg.LRS.Enabled)
	assert.Equal(t, "https://lrs.example.com/xapi/", cfg.LRS.Endpoint)
	assert.Equal(t, 5, cfg.LRS.TimeoutSeconds)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, "statements.json", "[]")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(content))
}
