package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool

	SignUp(ctx context.Context) error
	Confirm(ctx context.Context, args []string) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	List(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Groups(ctx context.Context, args []string) error
	Select(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error
	Activity(ctx context.Context, args []string) error
	Analytics(ctx context.Context) error
	Profile(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: signup, confirm, login, exit"
	helpLoggedIn  = "Available commands: whoami, ls, sort, groups, select, upload, download, delete, share, activity, analytics, profile, logout, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit". The
// prompt shows promptFn's status. Handler errors are not printed here;
// handlers report to the user themselves.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(promptFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "signup", "register":
				_ = a.SignUp(ctx)
			case "confirm":
				_ = a.Confirm(ctx, args)
			case "login":
				_ = a.Login(ctx)
			default:
				if knownLoggedIn(cmd) {
					printlnFn("Please login first.")
				} else {
					printlnFn("Unknown command:", cmd)
				}
			}
			continue
		}

		switch cmd {
		case "whoami":
			_ = a.Whoami(ctx)
		case "ls", "list", "l":
			_ = a.List(ctx, args)
		case "sort":
			_ = a.Sort(ctx, args)
		case "groups":
			_ = a.Groups(ctx, args)
		case "select":
			_ = a.Select(ctx, args)
		case "upload":
			_ = a.Upload(ctx, args)
		case "download", "get":
			_ = a.Download(ctx, args)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "share":
			_ = a.Share(ctx, args)
		case "activity", "history":
			_ = a.Activity(ctx, args)
		case "analytics":
			_ = a.Analytics(ctx)
		case "profile":
			_ = a.Profile(ctx, args)
		case "logout":
			_ = a.Logout(ctx)
		case "login", "signup", "register", "confirm":
			printlnFn("Already logged in. Use logout first.")
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func knownLoggedIn(cmd string) bool {
	switch cmd {
	case "whoami", "ls", "list", "l", "sort", "groups", "select", "upload", "download", "get",
		"delete", "rm", "share", "activity", "history", "analytics", "profile", "logout":
		return true
	}
	return false
}
