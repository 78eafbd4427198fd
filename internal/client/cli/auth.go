package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filedrive/internal/client/client"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/dmitrijs2005/filedrive/internal/client/session"
	"github.com/dmitrijs2005/filedrive/internal/client/state"
)

// getSimpleText and getPassword are indirections used by tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirmFn     = Confirm
)

// SignUp collects the registration form, validates it and registers the
// user. When the provider needs a confirmation code it is asked for right
// away; an empty answer defers it to the confirm command.
func (a *App) SignUp(ctx context.Context) error {
	var req session.SignUpRequest
	var err error

	if req.FullName, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if req.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}
	if score := session.PasswordStrength(req.Password); score > 0 {
		a.printf("Password strength: %s (%d/100)\n", session.StrengthLabel(score), score)
	}
	if req.ConfirmPassword, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	confirmed, err := a.sessions.SignUp(ctx, req)
	if err != nil {
		a.printf("Sign-up failed: %s\n", err)
		return err
	}

	email := strings.TrimSpace(req.Email)
	if confirmed {
		a.printf("Account %s created. You can login now.\n", email)
		return nil
	}

	a.lastSignUp = email
	a.printf("Account %s created. Check your email for the confirmation code.\n", email)
	return a.confirm(ctx, email)
}

// Confirm completes a sign-up with the emailed code.
func (a *App) Confirm(ctx context.Context, args []string) error {
	email := a.lastSignUp
	if len(args) > 0 {
		email = args[0]
	}
	if email == "" {
		var err error
		if email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
			return err
		}
	}
	return a.confirm(ctx, email)
}

func (a *App) confirm(ctx context.Context, email string) error {
	code, err := getSimpleText(a.reader, "Confirmation code (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if code == "" {
		a.printf("Run confirm %s when you have the code.\n", email)
		return nil
	}
	if err := a.sessions.ConfirmSignUp(ctx, email, code); err != nil {
		a.printf("Confirmation failed: %s\n", err)
		return err
	}
	a.lastSignUp = ""
	a.printf("Account confirmed. You can login now.\n")
	return nil
}

// Login prompts for credentials, signs in and loads the file list.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	id, err := a.sessions.Login(ctx, username, password)
	if err != nil {
		a.log.Info(ctx, "login failed", "username", username, "error", err)
		if errors.Is(err, session.ErrInvalidLogin) {
			a.printf("Invalid username/password or user is not confirmed.\n")
		} else {
			a.printf("Login failed: %s\n", err)
		}
		return err
	}

	a.state = state.LoggedIn(id)
	a.printf("Logged in as %s (%s).\n", displayName(id), id.Role)
	return a.List(ctx, nil)
}

// Logout ends the session on request.
func (a *App) Logout(ctx context.Context) error {
	err := a.sessions.Logout(ctx)
	a.state = state.LoggedOut()
	if err != nil {
		a.printf("Logged out, but the local session could not be cleared: %s\n", err)
		return err
	}
	a.printf("Logged out.\n")
	return nil
}

// Whoami prints the identity decoded from the current credential and
// refreshes the cached one with it.
func (a *App) Whoami(ctx context.Context) error {
	if !a.state.IsLoggedIn() {
		return nil
	}
	decoded, err := a.sessions.RoleAndSubject(ctx)
	if err != nil {
		if client.IsFatal(err) {
			a.expire(ctx, err)
		} else {
			a.printf("Cannot read identity: %s\n", err)
		}
		return err
	}
	a.state.Identity = &decoded
	id := &decoded
	var perms []string
	perms = append(perms, "view", "download")
	if id.CanUpload() {
		perms = append(perms, "upload")
	}
	switch id.Role {
	case models.RoleAdmin:
		perms = append(perms, "delete any file")
	case models.RoleEditor:
		perms = append(perms, "delete own files")
	}
	a.printf("%s\nrole:    %s\nsubject: %s\ncan:     %s\n", displayName(*id), id.Role, id.Subject, strings.Join(perms, ", "))
	return nil
}

func (a *App) usage(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	a.printf("Usage: %s\n", msg)
	return fmt.Errorf("usage: %s", msg)
}
