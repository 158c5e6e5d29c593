package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/playtrack/internal/config"
	"github.com/at-ishikawa/playtrack/internal/xapi"
)

func testConfig() *config.Config {
	return &config.Config{
		Store:     config.StoreConfig{Driver: config.DriverMemory},
		Ingestion: config.IngestionConfig{EnableXAPI: true, EnableSCORM12: true},
		Rankings:  config.RankingsConfig{DefaultLimit: 10},
	}
}

func TestApp_OpenService(t *testing.T) {
	t.Run("memory store", func(t *testing.T) {
		app := New()
		err := app.Run(context.Background(), func(ctx context.Context) error {
			service, err := app.OpenService(ctx, testConfig(), nil)
			require.NoError(t, err)

			record, err := service.ProcessXAPIStatement(ctx, xapi.Statement{
				Actor:  xapi.Actor{Account: &xapi.Account{Name: "u1"}},
				Verb:   xapi.Verb{ID: "http://adlnet.gov/expapi/verbs/completed"},
				Object: xapi.Object{ID: "https://games.example.com/maze"},
			})
			require.NoError(t, err)
			assert.Equal(t, "u1", record.UserID)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("sqlite store is closed on shutdown", func(t *testing.T) {
		cfg := testConfig()
		cfg.Store = config.StoreConfig{Driver: config.DriverSQLite3, SQLitePath: filepath.Join(t.TempDir(), "playtrack.db")}

		app := New()
		err := app.Run(context.Background(), func(ctx context.Context) error {
			_, err := app.OpenService(ctx, cfg, nil)
			return err
		})
		assert.NoError(t, err)
		assert.FileExists(t, cfg.Store.SQLitePath)
	})

	t.Run("unknown store driver", func(t *testing.T) {
		cfg := testConfig()
		cfg.Store.Driver = "postgres"

		_, err := New().OpenService(context.Background(), cfg, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown store driver "postgres"`)
	})

	t.Run("forwards statements to the LRS before shutdown completes", func(t *testing.T) {
		var mu sync.Mutex
		var received []string
		lrsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/statements", r.URL.Path)
			var statement xapi.Statement
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&statement))
			mu.Lock()
			received = append(received, statement.ID)
			mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]string{statement.ID})
		}))
		defer lrsServer.Close()

		cfg := testConfig()
		cfg.LRS = config.LRSConfig{Enabled: true, Endpoint: lrsServer.URL, TimeoutSeconds: 5, QueueSize: 4}

		app := New()
		err := app.Run(context.Background(), func(ctx context.Context) error {
			service, err := app.OpenService(ctx, cfg, nil)
			require.NoError(t, err)
			_, err = service.ProcessXAPIStatement(ctx, xapi.Statement{
				ID:     "stmt-1",
				Actor:  xapi.Actor{Mbox: "mailto:ada@example.com"},
				Verb:   xapi.Verb{ID: "http://adlnet.gov/expapi/verbs/completed"},
				Object: xapi.Object{ID: "https://games.example.com/maze"},
			})
			return err
		})
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"stmt-1"}, received)
	})
}

func TestNewLRSClient(t *testing.T) {
	lrsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", username)
		assert.Equal(t, "secret", password)
		assert.Equal(t, xapi.Version, r.Header.Get("X-Experience-API-Version"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version": ["1.0.3"]}`))
	}))
	defer lrsServer.Close()

	client := NewLRSClient(config.LRSConfig{Endpoint: lrsServer.URL + "/", Username: "key", Password: "secret", TimeoutSeconds: 5})
	defer func() {
		_ = client.Close()
	}()

	about, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.3"}, about.Version)
}
