package session

import (
	"context"

	"github.com/dmitrijs2005/filedrive/internal/client/sessionstore"
)

// IdentityProvider issues and revokes tokens.
type IdentityProvider interface {
	PasswordAuth(ctx context.Context, username, password string) (sessionstore.Tokens, error)
	// RefreshAuth exchanges a refresh token for new id and access tokens.
	// The returned RefreshToken may be empty when the provider does not
	// rotate it.
	RefreshAuth(ctx context.Context, username, refreshToken string) (sessionstore.Tokens, error)
	SignUp(ctx context.Context, req SignUpRequest) (confirmed bool, err error)
	ConfirmSignUp(ctx context.Context, username, code string) error
	RevokeToken(ctx context.Context, refreshToken string) error
}

// Store persists tokens between runs.
type Store interface {
	Save(ctx context.Context, t sessionstore.Tokens) error
	Load(ctx context.Context) (sessionstore.Tokens, error)
	Clear(ctx context.Context) error
}
