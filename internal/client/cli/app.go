package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filedrive/internal/client/client"
	"github.com/dmitrijs2005/filedrive/internal/client/config"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/dmitrijs2005/filedrive/internal/client/ops"
	"github.com/dmitrijs2005/filedrive/internal/client/services"
	"github.com/dmitrijs2005/filedrive/internal/client/session"
	"github.com/dmitrijs2005/filedrive/internal/client/state"
	"github.com/dmitrijs2005/filedrive/internal/logging"
)

// SessionExpiredMessage is printed whenever the session ends involuntarily.
const SessionExpiredMessage = "Session expired — please login again."

// Sessions is what the App needs from session.Accessor.
type Sessions interface {
	Credential(ctx context.Context) (string, error)
	RoleAndSubject(ctx context.Context) (models.Identity, error)
	Login(ctx context.Context, username, password string) (models.Identity, error)
	SignUp(ctx context.Context, req session.SignUpRequest) (bool, error)
	ConfirmSignUp(ctx context.Context, username, code string) error
	Restore(ctx context.Context) (models.Identity, error)
	Logout(ctx context.Context) error
	Forget(ctx context.Context) error
}

type App struct {
	sessions Sessions
	files    *services.FileService
	activity *services.ActivityService
	profile  *services.ProfileService

	state state.State

	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
	loc    *time.Location

	// lastSignUp prefills confirm after signup.
	lastSignUp string
}

// NewApp wires the services around api and sessions. in and out are the
// user's terminal.
func NewApp(cfg *config.Config, sessions Sessions, api client.Client, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	tracker := ops.NewTracker()
	objects := &http.Client{}

	return &App{
		sessions: sessions,
		files: services.NewFileService(api, sessions, tracker, objects, services.FileServiceConfig{
			MaxUploadSize: cfg.MaxUploadSize,
			DownloadDir:   cfg.DownloadDir,
		}, log.With("component", "files")),
		activity: services.NewActivityService(api, sessions, tracker, time.Local, log.With("component", "activity")),
		profile:  services.NewProfileService(api, sessions, tracker, log.With("component", "profile")),
		state:    state.LoggedOut(),
		reader:   bufio.NewReader(in),
		out:      out,
		log:      log,
		loc:      time.Local,
	}
}

// Run restores a previous session when possible and then serves the REPL
// until the user quits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	printlnFn("FileDrive CLI (type 'help' for commands)")
	a.restore(ctx)
	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) restore(ctx context.Context) {
	id, err := a.sessions.Restore(ctx)
	if err != nil {
		a.log.Debug(ctx, "no session restored", "error", err)
		return
	}
	a.state = state.LoggedIn(id)
	a.printf("Welcome back, %s (%s).\n", displayName(id), id.Role)
	_ = a.List(ctx, nil)
}

func (a *App) isLoggedIn() bool {
	return a.state.IsLoggedIn()
}

func (a *App) prompt() string {
	if !a.state.IsLoggedIn() {
		return "filedrive> "
	}
	id := a.state.Identity
	return fmt.Sprintf("filedrive (%s, %s)> ", displayName(*id), id.Role)
}

func displayName(id models.Identity) string {
	switch {
	case id.Email != "":
		return id.Email
	case id.Username != "":
		return id.Username
	}
	return id.Subject
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// apply installs next as the current state, prints its status, and turns
// fatal errors into a forced logout.
func (a *App) apply(ctx context.Context, next state.State, err error) error {
	if client.IsFatal(err) {
		a.expire(ctx, err)
		return err
	}
	a.state = next
	if next.Status != "" {
		fmt.Fprintln(a.out, next.Status)
	}
	return err
}

// expire ends the session after the backend or the provider rejected it.
func (a *App) expire(ctx context.Context, cause error) {
	a.log.Warn(ctx, "session ended", "error", cause)
	if err := a.sessions.Forget(ctx); err != nil {
		a.log.Error(ctx, "clearing session failed", "error", err)
	}
	a.state = state.LoggedOut()
	fmt.Fprintln(a.out, SessionExpiredMessage)
}
