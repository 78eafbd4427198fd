package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/filedrive/internal/flagx"
)

var ownFlags = []string{"-a", "-r", "-i", "-t", "-s", "-d", "-l"}

// parseFlags populates Config fields from command-line flags. Only the flags
// listed in ownFlags are considered (see flagx.FilterArgs), so -c/-config and
// REPL arguments do not interfere. Panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], ownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.CognitoRegion, "r", cfg.CognitoRegion, "identity provider region")
	fs.StringVar(&cfg.CognitoClientID, "i", cfg.CognitoClientID, "identity provider app client id")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "session database path")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
