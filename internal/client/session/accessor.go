package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/filedrive/internal/client/client"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/dmitrijs2005/filedrive/internal/client/sessionstore"
	"github.com/dmitrijs2005/filedrive/internal/logging"
	"golang.org/x/sync/singleflight"
)

// DefaultSkew treats a token as expired slightly before its exp so it does
// not lapse in flight.
const DefaultSkew = 30 * time.Second

type Accessor struct {
	idp   IdentityProvider
	store Store
	log   logging.Logger

	now  func() time.Time
	skew time.Duration

	mu     sync.RWMutex
	tokens sessionstore.Tokens

	refreshGroup singleflight.Group
}

func NewAccessor(idp IdentityProvider, store Store, log logging.Logger) *Accessor {
	if log == nil {
		log = logging.Nop()
	}
	return &Accessor{
		idp:   idp,
		store: store,
		log:   log,
		now:   time.Now,
		skew:  DefaultSkew,
	}
}

func (a *Accessor) snapshot() sessionstore.Tokens {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tokens
}

func (a *Accessor) set(t sessionstore.Tokens) {
	a.mu.Lock()
	a.tokens = t
	a.mu.Unlock()
}

// LoggedIn reports whether tokens are held in memory. The tokens may still
// turn out to be unusable.
func (a *Accessor) LoggedIn() bool {
	t := a.snapshot()
	return t.IDToken != "" || t.RefreshToken != ""
}

// Credential returns the id token to present as the bearer credential. An
// expired token is refreshed once; every failure wraps client.ErrAuth.
func (a *Accessor) Credential(ctx context.Context) (string, error) {
	t := a.snapshot()
	if t.IDToken == "" && t.RefreshToken == "" {
		return "", fmt.Errorf("%w: no session", client.ErrAuth)
	}

	if t.IDToken != "" {
		claims, err := ParseClaims(t.IDToken)
		if err != nil {
			return "", fmt.Errorf("%w: %w", client.ErrAuth, err)
		}
		if !claims.Expired(a.now(), a.skew) {
			return t.IDToken, nil
		}
	}

	return a.refresh(ctx)
}

// refresh coalesces concurrent callers into one provider round trip.
func (a *Accessor) refresh(ctx context.Context) (string, error) {
	v, err, _ := a.refreshGroup.Do("refresh", func() (any, error) {
		cur := a.snapshot()
		if c, err := ParseClaims(cur.IDToken); err == nil && !c.Expired(a.now(), a.skew) {
			// refreshed by a caller that finished just before us
			return cur.IDToken, nil
		}
		if cur.RefreshToken == "" {
			return "", fmt.Errorf("%w: session expired", client.ErrAuth)
		}

		a.log.Debug(ctx, "refreshing session", "username", cur.Username)

		next, err := a.idp.RefreshAuth(ctx, cur.Username, cur.RefreshToken)
		if err != nil {
			a.log.Warn(ctx, "session refresh failed", "error", err)
			return "", fmt.Errorf("%w: refresh: %w", client.ErrAuth, err)
		}
		if _, err := ParseClaims(next.IDToken); err != nil {
			return "", fmt.Errorf("%w: refresh: %w", client.ErrAuth, err)
		}
		if next.RefreshToken == "" {
			next.RefreshToken = cur.RefreshToken
		}
		next.Username = cur.Username

		a.set(next)
		a.persist(ctx, next)
		return next.IDToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (a *Accessor) persist(ctx context.Context, t sessionstore.Tokens) {
	if a.store == nil {
		return
	}
	if err := a.store.Save(ctx, t); err != nil {
		a.log.Warn(ctx, "could not persist session", "error", err)
	}
}

// RoleAndSubject decodes the user's identity from the current credential.
func (a *Accessor) RoleAndSubject(ctx context.Context) (models.Identity, error) {
	cred, err := a.Credential(ctx)
	if err != nil {
		return models.Identity{}, err
	}
	claims, err := ParseClaims(cred)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", client.ErrAuth, err)
	}
	id := claims.Identity()
	if id.Username == "" {
		id.Username = a.snapshot().Username
	}
	return id, nil
}

// Login signs in with username and password and persists the new session.
func (a *Accessor) Login(ctx context.Context, username, password string) (models.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Identity{}, ErrInvalidLogin
	}

	t, err := a.idp.PasswordAuth(ctx, username, password)
	if err != nil {
		return models.Identity{}, err
	}
	claims, err := ParseClaims(t.IDToken)
	if err != nil {
		return models.Identity{}, err
	}
	if t.Username == "" {
		t.Username = username
	}

	a.set(t)
	a.persist(ctx, t)

	a.log.Info(ctx, "signed in", "username", username, "role", claims.Identity().Role)

	id := claims.Identity()
	if id.Username == "" {
		id.Username = username
	}
	return id, nil
}

// SignUp validates req and registers the user. The returned flag is true
// when the provider confirmed the account without a code.
func (a *Accessor) SignUp(ctx context.Context, req SignUpRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}
	return a.idp.SignUp(ctx, req)
}

func (a *Accessor) ConfirmSignUp(ctx context.Context, username, code string) error {
	username, code = strings.TrimSpace(username), strings.TrimSpace(code)
	if username == "" || code == "" {
		return ErrCodeMismatch
	}
	return a.idp.ConfirmSignUp(ctx, username, code)
}

// Restore resumes a persisted session. When nothing usable is stored, the
// store is cleared and the error wraps client.ErrAuth.
func (a *Accessor) Restore(ctx context.Context) (models.Identity, error) {
	if a.store == nil {
		return models.Identity{}, fmt.Errorf("%w: no session store", client.ErrAuth)
	}

	t, err := a.store.Load(ctx)
	if errors.Is(err, sessionstore.ErrNoSession) {
		return models.Identity{}, fmt.Errorf("%w: %w", client.ErrAuth, err)
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: load session: %w", client.ErrAuth, err)
	}

	a.set(t)
	id, err := a.RoleAndSubject(ctx)
	if err != nil {
		a.forget(ctx)
		return models.Identity{}, err
	}
	return id, nil
}

// Logout forgets the session locally and revokes the refresh token. A
// failed revocation is logged and does not fail the logout.
func (a *Accessor) Logout(ctx context.Context) error {
	t := a.snapshot()
	err := a.forget(ctx)

	if t.RefreshToken != "" && a.idp != nil {
		if rerr := a.idp.RevokeToken(ctx, t.RefreshToken); rerr != nil {
			a.log.Warn(ctx, "token revocation failed", "error", rerr)
		}
	}
	return err
}

// Forget drops the session without contacting the provider. Used when the
// backend has already rejected the credential.
func (a *Accessor) Forget(ctx context.Context) error {
	return a.forget(ctx)
}

func (a *Accessor) forget(ctx context.Context) error {
	a.set(sessionstore.Tokens{})
	if a.store == nil {
		return nil
	}
	if err := a.store.Clear(ctx); err != nil {
		a.log.Warn(ctx, "could not clear stored session", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
