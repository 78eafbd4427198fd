package session

import "errors"

var (
	// ErrInvalidLogin covers wrong credentials, unknown users and users that
	// have not confirmed their sign-up.
	ErrInvalidLogin = errors.New("invalid username/password or user is not confirmed")
	// ErrChallenge is returned when the provider asks for a step this client
	// does not support (MFA, forced password change).
	ErrChallenge      = errors.New("additional sign-in step required")
	ErrUserExists     = errors.New("an account with this email already exists")
	ErrCodeMismatch   = errors.New("invalid or expired confirmation code")
	ErrWeakPassword   = errors.New("password does not satisfy the password policy")
	ErrMalformedToken = errors.New("malformed token")
)
