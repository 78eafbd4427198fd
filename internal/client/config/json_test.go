package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"api_base_url":      "https://api.example.com/prod",
		"cognito_region":    "eu-west-1",
		"cognito_client_id": "abc",
		"request_timeout":   "10s",
		"session_db_path":   "/var/lib/fd/session.db",
		"download_dir":      "/home/u/Downloads",
		"max_upload_size":   1024,
		"log_level":         "debug",
		"log_format":        "json",
	})
	partial := writeTempJSON(t, dir, "partial.json", map[string]any{
		"api_base_url": "https://other.example.com",
	})

	t.Run("loads every field", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", full}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "https://api.example.com/prod", cfg.APIBaseURL)
		assert.Equal(t, "eu-west-1", cfg.CognitoRegion)
		assert.Equal(t, "abc", cfg.CognitoClientID)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "/var/lib/fd/session.db", cfg.SessionDBPath)
		assert.Equal(t, "/home/u/Downloads", cfg.DownloadDir)
		assert.Equal(t, int64(1024), cfg.MaxUploadSize)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "https://other.example.com", cfg.APIBaseURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "download", cfg.DownloadDir)
	})

	t.Run("no file configured leaves config untouched", func(t *testing.T) {
		t.Setenv("FILEDRIVE_CONFIG", "")
		os.Args = []string{"testbin"}

		cfg := &Config{APIBaseURL: "keep", RequestTimeout: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "keep", cfg.APIBaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "nope.json")}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
