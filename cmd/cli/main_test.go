package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/filedrive/internal/client/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SessionDBPath = filepath.Join(t.TempDir(), "state", "session.db")
	cfg.DownloadDir = t.TempDir()
	return cfg
}

func TestRun_MissingClientID(t *testing.T) {
	cfg := testConfig(t)
	cfg.CognitoClientID = ""

	err := run(context.Background(), cfg)
	require.ErrorContains(t, err, "client id is not configured")

	_, statErr := os.Stat(cfg.SessionDBPath)
	assert.True(t, os.IsNotExist(statErr), "store must not be opened")
}

func TestRun_BadLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "loud"

	require.Error(t, run(context.Background(), cfg))
}

func TestRun_ErrorAfterStoreOpenedReturnsNormally(t *testing.T) {
	cfg := testConfig(t)
	cfg.CognitoClientID = "client"
	cfg.APIBaseURL = "not-absolute"

	awsDir := t.TempDir()
	for _, env := range []string{"AWS_CONFIG_FILE", "AWS_SHARED_CREDENTIALS_FILE"} {
		f := filepath.Join(awsDir, env)
		require.NoError(t, os.WriteFile(f, nil, 0o600))
		t.Setenv(env, f)
	}
	t.Setenv("AWS_PROFILE", "")

	err := run(context.Background(), cfg)
	require.ErrorContains(t, err, "not absolute")

	fi, err := os.Stat(cfg.SessionDBPath)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}
