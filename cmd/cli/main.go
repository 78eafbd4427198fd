package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/filedrive/internal/buildinfo"
	"github.com/dmitrijs2005/filedrive/internal/client/cli"
	"github.com/dmitrijs2005/filedrive/internal/client/client"
	"github.com/dmitrijs2005/filedrive/internal/client/config"
	"github.com/dmitrijs2005/filedrive/internal/client/session"
	"github.com/dmitrijs2005/filedrive/internal/client/sessionstore"
	"github.com/dmitrijs2005/filedrive/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.LoadConfig()); err != nil {
		stop()
		log.Fatalf("%v", err)
	}
}

// run wires the client and serves the REPL. Resources are released before
// it returns, including on error.
func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	if cfg.CognitoClientID == "" {
		return errors.New("identity provider client id is not configured (-i or cognito_client_id)")
	}

	store, err := sessionstore.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn(ctx, "closing session store", "error", err)
		}
	}()

	idp, err := session.NewCognitoProvider(ctx, cfg.CognitoRegion, cfg.CognitoClientID)
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, logger.With("component", "api"))
	if err != nil {
		return err
	}

	sessions := session.NewAccessor(idp, store, logger.With("component", "session"))

	cli.NewApp(cfg, sessions, api, os.Stdin, os.Stdout, logger).Run(ctx)
	return nil
}
