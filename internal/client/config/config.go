package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the FileDrive CLI.
//
// Fields:
//   - APIBaseURL: base URL of the file-storage backend API.
//   - CognitoRegion / CognitoClientID: identity provider user pool app client.
//   - RequestTimeout: upper bound for a single backend or transfer request.
//   - SessionDBPath: SQLite file holding the persisted session tokens.
//   - DownloadDir: directory downloads are saved into.
//   - MaxUploadSize: uploads larger than this are refused before any request.
//   - LogLevel / LogFormat: diagnostics written to stderr.
type Config struct {
	APIBaseURL      string
	CognitoRegion   string
	CognitoClientID string
	RequestTimeout  time.Duration
	SessionDBPath   string
	DownloadDir     string
	MaxUploadSize   int64
	LogLevel        string
	LogFormat       string
}

// DefaultMaxUploadSize is 100 MiB.
const DefaultMaxUploadSize int64 = 100 * 1024 * 1024

// DefaultSessionDBPath is session.db in the user's config directory, or in
// the working directory when there is none.
func DefaultSessionDBPath() string {
	dir, err := userConfigDir()
	if err != nil || dir == "" {
		return "session.db"
	}
	return filepath.Join(dir, "filedrive", "session.db")
}

// userConfigDir is a seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.CognitoRegion = "eu-north-1"
	c.CognitoClientID = ""
	c.RequestTimeout = 30 * time.Second
	c.SessionDBPath = DefaultSessionDBPath()
	c.DownloadDir = "download"
	c.MaxUploadSize = DefaultMaxUploadSize
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
