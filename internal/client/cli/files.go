package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filedrive/internal/client/directory"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
)

// List re-fetches the listing and shows it filtered by the optional query.
func (a *App) List(ctx context.Context, args []string) error {
	next, err := a.files.Refresh(ctx, a.state)
	if err != nil {
		return a.apply(ctx, next, err)
	}
	next.Query = strings.Join(args, " ")
	next.Status = ""
	_ = a.apply(ctx, next, nil)
	a.renderFiles(a.state.Visible())
	return nil
}

// Sort changes the order of the visible listing.
func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("sort <name-asc|name-desc|size-asc|size-desc>")
	}
	by, err := directory.ParseSortBy(args[0])
	if err != nil {
		a.printf("%s\n", err)
		return err
	}
	a.state.SortBy = by
	a.renderFiles(a.state.Visible())
	return nil
}

// Groups shows the visible files grouped by extension or owner.
func (a *App) Groups(ctx context.Context, args []string) error {
	mode := "ext"
	if len(args) > 0 {
		mode = strings.ToLower(args[0])
	}
	visible := a.state.Visible()
	switch mode {
	case "ext", "type", "extension":
		a.renderGroups(directory.GroupByExtension(visible), "(no extension)")
	case "owner":
		a.renderGroups(directory.GroupByOwner(visible), "(unknown owner)")
	default:
		return a.usage("groups [ext|owner]")
	}
	return nil
}

// Select picks the local file for the next upload.
func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("select <path>")
	}
	next, err := a.files.Select(a.state, strings.Join(args, " "))
	return a.apply(ctx, next, err)
}

// Upload sends the selected file, or selects path first when given.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) > 0 {
		if err := a.Select(ctx, args); err != nil {
			return err
		}
	}
	next, err := a.files.Upload(ctx, a.state)
	return a.apply(ctx, next, err)
}

// Download saves a file, or opens its link in the browser with --open.
func (a *App) Download(ctx context.Context, args []string) error {
	var id string
	open := false
	for _, arg := range args {
		switch arg {
		case "--open", "-o":
			open = true
		default:
			id = arg
		}
	}
	if id == "" {
		return a.usage("download <fileId> [--open]")
	}
	next, err := a.files.Download(ctx, a.state, id, open)
	return a.apply(ctx, next, err)
}

// Delete removes a file after a y/N confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("delete <fileId>")
	}
	confirm := func(f models.FileRecord) bool {
		ok, err := confirmFn(a.reader, "Delete "+f.FileName+"?", a.out)
		return err == nil && ok
	}
	next, err := a.files.Delete(ctx, a.state, args[0], confirm)
	return a.apply(ctx, next, err)
}

// Share grants access to another user. perms is a comma list of
// create,read,update,delete; read only by default.
func (a *App) Share(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 3 {
		return a.usage("share <fileId> [email] [read,update,delete,create]")
	}
	id := args[0]

	var with string
	if len(args) > 1 {
		with = args[1]
	} else {
		var err error
		if with, err = getSimpleText(a.reader, "Share with (email)", a.out); err != nil {
			return err
		}
	}

	perms := models.DefaultPermissions()
	if len(args) > 2 {
		var err error
		if perms, err = parsePermissions(args[2]); err != nil {
			a.printf("%s\n", err)
			return err
		}
	}

	next, err := a.files.Share(ctx, a.state, id, with, perms)
	return a.apply(ctx, next, err)
}

func parsePermissions(s string) (models.Permissions, error) {
	var p models.Permissions
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "create":
			p.Create = true
		case "read":
			p.Read = true
		case "update":
			p.Update = true
		case "delete":
			p.Delete = true
		case "":
		default:
			return models.Permissions{}, fmt.Errorf("unknown permission %q, want create, read, update or delete", part)
		}
	}
	return p, nil
}
