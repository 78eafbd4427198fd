package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the Cognito id token the client reads.
type Claims struct {
	jwt.RegisteredClaims
	Groups   []string `json:"cognito:groups,omitempty"`
	Username string   `json:"cognito:username,omitempty"`
	Email    string   `json:"email,omitempty"`
	TokenUse string   `json:"token_use,omitempty"`
}

// ParseClaims decodes the payload of token without verifying its signature;
// the backend verifies it on every request.
func ParseClaims(token string) (*Claims, error) {
	c := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: no subject", ErrMalformedToken)
	}
	return c, nil
}

// Identity maps the claims to the user's identity. A missing or empty group
// list yields the viewer role.
func (c *Claims) Identity() models.Identity {
	return models.Identity{
		Role:     models.RoleFromGroups(c.Groups),
		Subject:  c.Subject,
		Username: c.Username,
		Email:    c.Email,
	}
}

// Expired reports whether the token is expired at now, allowing skew.
// Tokens without exp never expire on the client side.
func (c *Claims) Expired(now time.Time, skew time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Add(skew).Before(c.ExpiresAt.Time)
}
