// Package session owns the signed-in user's tokens.
//
// Accessor hands out the bearer credential for API calls, decodes the
// user's role and subject from it, and refreshes it once when it has
// expired. Tokens come from an IdentityProvider (Cognito in production)
// and are persisted through a Store so a restart resumes the session.
//
// Every failure to produce a credential wraps client.ErrAuth; callers treat
// it as the end of the session.
package session
