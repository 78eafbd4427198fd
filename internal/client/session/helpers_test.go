package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/filedrive/internal/client/sessionstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, sub string, groups []string, exp time.Time) string {
	t.Helper()
	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
		Groups:           groups,
		Username:         "user-" + sub,
		Email:            sub + "@example.com",
		TokenUse:         "id",
	}
	if !exp.IsZero() {
		c.ExpiresAt = jwt.NewNumericDate(exp)
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

type fakeIDP struct {
	mu sync.Mutex

	passwordTokens sessionstore.Tokens
	passwordErr    error

	refreshTokens sessionstore.Tokens
	refreshErr    error
	refreshCalls  atomic.Int32
	refreshDelay  time.Duration

	signUpReqs []SignUpRequest
	confirmed  bool
	signUpErr  error

	confirmErr error
	revoked    []string
	revokeErr  error
}

func (f *fakeIDP) PasswordAuth(ctx context.Context, username, password string) (sessionstore.Tokens, error) {
	return f.passwordTokens, f.passwordErr
}

func (f *fakeIDP) RefreshAuth(ctx context.Context, username, refreshToken string) (sessionstore.Tokens, error) {
	f.refreshCalls.Add(1)
	if f.refreshDelay > 0 {
		time.Sleep(f.refreshDelay)
	}
	return f.refreshTokens, f.refreshErr
}

func (f *fakeIDP) SignUp(ctx context.Context, req SignUpRequest) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUpReqs = append(f.signUpReqs, req)
	return f.confirmed, f.signUpErr
}

func (f *fakeIDP) ConfirmSignUp(ctx context.Context, username, code string) error {
	return f.confirmErr
}

func (f *fakeIDP) RevokeToken(ctx context.Context, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, refreshToken)
	return f.revokeErr
}

type memStore struct {
	mu      sync.Mutex
	tokens  *sessionstore.Tokens
	saves   int
	saveErr error
}

func (m *memStore) Save(ctx context.Context, t sessionstore.Tokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.tokens = &t
	return nil
}

func (m *memStore) Load(ctx context.Context) (sessionstore.Tokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		return sessionstore.Tokens{}, sessionstore.ErrNoSession
	}
	return *m.tokens, nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = nil
	return nil
}
