package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                8080,
			CORS:                CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
		},
		Store: StoreConfig{
			Driver:     DriverMemory,
			SQLitePath: filepath.Join("data", "playtrack.db"),
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Database: "playtrack",
			Username: "user",
		},
		LRS: LRSConfig{
			TimeoutSeconds:   10,
			MaxRetryAttempts: 3,
			QueueSize:        256,
		},
		Ingestion: IngestionConfig{
			EnableXAPI:    true,
			EnableSCORM12: true,
			ContextKeywords: ContextKeywordsConfig{
				School:  "school",
				Grade:   "grade",
				Subject: "subject",
			},
		},
		Rankings: RankingsConfig{DefaultLimit: 10},
		Outputs: OutputsConfig{
			ReportDirectory: filepath.Join("outputs", "reports"),
			ExportDirectory: filepath.Join("outputs", "export"),
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `server:
  port: 9090
  cors:
    allowed_origins:
      - https://dashboard.example.com
store:
  driver: sqlite3
  sqlite_path: /var/lib/playtrack/analytics.db
ingestion:
  enable_scorm12: false
  context_keywords:
    school: org
rankings:
  default_limit: 25
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Server.Port = 9090
				cfg.Server.CORS.AllowedOrigins = []string{"https://dashboard.example.com"}
				cfg.Store = StoreConfig{Driver: DriverSQLite3, SQLitePath: "/var/lib/playtrack/analytics.db"}
				cfg.Ingestion.EnableSCORM12 = false
				cfg.Ingestion.ContextKeywords.School = "org"
				cfg.Rankings.DefaultLimit = 25
				return cfg
			},
		},
		{
			name: "lrs credentials come from the environment",
			configContent: `lrs:
  enabled: true
  endpoint: https://lrs.example.com/xapi/
  max_retry_attempts: 5
`,
			useExplicitPath: true,
			env: map[string]string{
				"LRS_USERNAME": "client-key",
				"LRS_PASSWORD": "client-secret",
				"DB_PASSWORD":  "db-secret",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.LRS.Enabled = true
				cfg.LRS.Endpoint = "https://lrs.example.com/xapi/"
				cfg.LRS.Username = "client-key"
				cfg.LRS.Password = "client-secret"
				cfg.LRS.MaxRetryAttempts = 5
				cfg.Database.Password = "db-secret"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `server:
  port: 9090
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown store driver",
			configContent: `store:
  driver: postgres
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "store.driver must be one of [memory mysql sqlite3]"},
		},
		{
			name: "enabled lrs requires an endpoint",
			configContent: `lrs:
  enabled: true
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "lrs.endpoint"},
		},
		{
			name: "lrs endpoint must be a url",
			configContent: `lrs:
  endpoint: not a url
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"lrs.endpoint"},
		},
		{
			name: "ranking limit must be positive",
			configContent: `rankings:
  default_limit: 0
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"rankings.default_limit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"LRS_USERNAME", "LRS_PASSWORD", "DB_PASSWORD"} {
				t.Setenv(key, tt.env[key])
			}
			tempDir := t.TempDir()

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "playtrack.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				wd, err := os.Getwd()
				require.NoError(t, err)
				require.NoError(t, os.Chdir(tempDir))
				t.Cleanup(func() { _ = os.Chdir(wd) })
				t.Setenv("HOME", tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(), got)
		})
	}
}
