// Package sessionstore persists the session tokens between runs in a local
// SQLite database so a restart does not force a new login.
package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/filedrive/internal/client/migrations"
	"github.com/dmitrijs2005/filedrive/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/filedrive/internal/dbx"
	"github.com/dmitrijs2005/filedrive/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// ErrNoSession is returned by Load when nothing usable is stored.
var ErrNoSession = errors.New("no stored session")

const (
	keyIDToken      = "id_token"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUsername     = "username"
)

// Tokens is the token set issued by the identity provider.
type Tokens struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	Username     string
}

type Store struct {
	db *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate session db: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the database at path and migrates it.
// The file holds the refresh token and is kept readable by the owner only.
func Open(ctx context.Context, path string) (*Store, error) {
	if !isMemory(path) {
		if dir := filepath.Dir(path); dir != "." {
			if _, err := filex.EnsureDir(dir); err != nil {
				return nil, err
			}
		}
		if err := restrictFile(path); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db), nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file:")
}

// restrictFile creates path with mode 0600, or narrows an existing file to it.
func restrictFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("create session db: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("create session db: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("chmod session db: %w", err)
	}
	return nil
}

// New wraps an already migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save replaces the stored tokens atomically.
func (s *Store) Save(ctx context.Context, t Tokens) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		for k, v := range map[string]string{
			keyIDToken:      t.IDToken,
			keyAccessToken:  t.AccessToken,
			keyRefreshToken: t.RefreshToken,
			keyUsername:     t.Username,
		} {
			if v == "" {
				continue
			}
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns the stored tokens, or ErrNoSession when there is no id token
// and no refresh token to recover one with.
func (s *Store) Load(ctx context.Context) (Tokens, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	var t Tokens
	for k, dst := range map[string]*string{
		keyIDToken:      &t.IDToken,
		keyAccessToken:  &t.AccessToken,
		keyRefreshToken: &t.RefreshToken,
		keyUsername:     &t.Username,
	} {
		v, err := repo.Get(ctx, k)
		if errors.Is(err, metadata.ErrNotFound) {
			continue
		}
		if err != nil {
			return Tokens{}, err
		}
		*dst = v
	}

	if t.IDToken == "" && t.RefreshToken == "" {
		return Tokens{}, ErrNoSession
	}
	return t, nil
}

// Clear forgets the stored session.
func (s *Store) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Clear(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
