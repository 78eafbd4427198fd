package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/filedrive/internal/client/activity"
	"github.com/dmitrijs2005/filedrive/internal/common"
)

// Activity shows the activity log with optional from=, to=, action= and
// sort= filters.
func (a *App) Activity(ctx context.Context, args []string) error {
	q, err := a.parseActivityQuery(args)
	if err != nil {
		a.printf("%s\n", err)
		return a.usage("activity [from=YYYY-MM-DD] [to=YYYY-MM-DD] [action=all|upload|download|delete] [sort=date-desc|date-asc|name-asc|name-desc]")
	}

	next, rep, err := a.activity.Query(ctx, a.state, q)
	if err := a.apply(ctx, next, err); err != nil {
		return err
	}

	a.renderActivity(rep.Entries)
	s := rep.Summary
	a.printf("%d entries: %d uploads, %d downloads, %d deletes\n", s.Total, s.Uploads, s.Downloads, s.Deletes)
	return nil
}

func (a *App) parseActivityQuery(args []string) (activity.Query, error) {
	kv, rest := splitArgs(args)
	var q activity.Query
	if len(rest) > 0 {
		return q, &argError{rest[0]}
	}

	var err error
	if v, ok := kv["from"]; ok && v != "" {
		if q.From, err = activity.ParseDay(v, a.loc); err != nil {
			return q, err
		}
	}
	if v, ok := kv["to"]; ok && v != "" {
		if q.To, err = activity.ParseDay(v, a.loc); err != nil {
			return q, err
		}
	}
	q.Action = kv["action"]
	if q.SortBy, err = activity.ParseSortBy(kv["sort"]); err != nil {
		return q, err
	}
	for k := range kv {
		switch k {
		case "from", "to", "action", "sort":
		default:
			return q, &argError{k}
		}
	}
	return q, nil
}

type argError struct{ arg string }

func (e *argError) Error() string { return "unexpected argument " + e.arg }

// Analytics shows storage and activity aggregates.
func (a *App) Analytics(ctx context.Context) error {
	next, rep, err := a.activity.Analytics(ctx, a.state)
	if err := a.apply(ctx, next, err); err != nil {
		return err
	}

	o := rep.Overview
	a.printf("Total storage:   %s\nTotal files:     %d\nTotal downloads: %d\nActive users:    %d\n",
		common.HumanSize(o.TotalBytes), o.TotalFiles, o.TotalDownloads, o.ActiveUsers)
	a.renderStorage(rep.StorageByType)
	a.renderTrend(rep.Trend)
	return nil
}

// Profile shows the profile, or updates the full name when args are given.
func (a *App) Profile(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	next, p, err := a.profile.Get(ctx, a.state, name)
	if err := a.apply(ctx, next, err); err != nil {
		return err
	}
	a.printf("email: %s\nname:  %s\n", p.Email, p.FullName)
	if p.Role != "" {
		a.printf("role:  %s\n", p.Role)
	}
	return nil
}
