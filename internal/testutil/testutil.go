// Package testutil provides shared test helpers for creating config files and telemetry fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig writes a config file using a SQLite store under tmpDir and creates the output directories.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	return writeConfig(t, tmpDir, "")
}

// SetupTestConfigWithLRS is SetupTestConfig with statement forwarding to the LRS at endpoint.
func SetupTestConfigWithLRS(t *testing.T, tmpDir, endpoint string) string {
	t.Helper()
	return writeConfig(t, tmpDir, fmt.Sprintf("lrs:\n  enabled: true\n  endpoint: %s\n  timeout_seconds: 5\n", endpoint))
}

func writeConfig(t *testing.T, tmpDir, extra string) string {
	t.Helper()

	for _, d := range []string{"reports", "export"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`store:
  driver: sqlite3
  sqlite_path: %s
outputs:
  report_directory: %s
  export_directory: %s
`,
		filepath.Join(tmpDir, "playtrack.db"),
		filepath.Join(tmpDir, "reports"),
		filepath.Join(tmpDir, "export"),
	) + extra

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteFile writes content to name under dir and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
