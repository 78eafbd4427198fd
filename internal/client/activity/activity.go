// Package activity filters, sorts and summarizes the activity log.
package activity

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/filedrive/internal/client/models"
)

// Source is the part of the backend API the viewer reads from.
type Source interface {
	ListActivity(ctx context.Context, credential string) ([]models.ActivityEntry, error)
}

// Viewer loads the activity log.
type Viewer struct {
	api Source
}

func NewViewer(api Source) *Viewer {
	return &Viewer{api: api}
}

func (v *Viewer) Load(ctx context.Context, credential string) ([]models.ActivityEntry, error) {
	return v.api.ListActivity(ctx, credential)
}

type SortBy string

const (
	SortDateDesc SortBy = "date-desc"
	SortDateAsc  SortBy = "date-asc"
	SortNameAsc  SortBy = "name-asc"
	SortNameDesc SortBy = "name-desc"
)

func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(s)) {
	case "", SortDateDesc:
		return SortDateDesc, nil
	case SortDateAsc:
		return SortDateAsc, nil
	case SortNameAsc:
		return SortNameAsc, nil
	case SortNameDesc:
		return SortNameDesc, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// AllActions disables the action filter.
const AllActions = "all"

// Query selects and orders entries. From and To are calendar days: From
// includes its whole day, To includes everything up to 23:59:59.999 of its
// day. Zero values leave the range open on that side.
type Query struct {
	From   time.Time
	To     time.Time
	Action string
	SortBy SortBy
}

// ParseDay parses "YYYY-MM-DD" as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Apply returns the entries matching q in q's order. entries is not
// modified. Entries whose timestamp cannot be parsed are dropped when a
// date bound is set and sort as the oldest otherwise. Date-only and
// zone-less timestamps are read in the location of the bounds, so an entry
// stamped with a day always falls on that day.
func Apply(entries []models.ActivityEntry, q Query) []models.ActivityEntry {
	loc := q.location()
	var from, to time.Time
	if !q.From.IsZero() {
		from = dayStart(q.From)
	}
	if !q.To.IsZero() {
		to = dayEnd(q.To)
	}
	action := strings.ToLower(strings.TrimSpace(q.Action))
	bounded := !from.IsZero() || !to.IsZero()

	out := make([]models.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		if action != "" && action != AllActions && string(e.Action) != action {
			continue
		}
		if bounded {
			ts, ok := e.TimeIn(loc)
			if !ok {
				continue
			}
			if !from.IsZero() && ts.Before(from) {
				continue
			}
			if !to.IsZero() && ts.After(to) {
				continue
			}
		}
		out = append(out, e)
	}

	sortEntries(out, q.SortBy, loc)
	return out
}

// location is where the bounds live; UTC when the range is open.
func (q Query) location() *time.Location {
	switch {
	case !q.From.IsZero():
		return q.From.Location()
	case !q.To.IsZero():
		return q.To.Location()
	}
	return time.UTC
}

func sortEntries(entries []models.ActivityEntry, by SortBy, loc *time.Location) {
	when := func(e models.ActivityEntry) time.Time {
		t, _ := e.TimeIn(loc)
		return t
	}
	name := func(e models.ActivityEntry) string { return strings.ToLower(e.FileName) }

	var less func(a, b models.ActivityEntry) bool
	switch by {
	case SortDateAsc:
		less = func(a, b models.ActivityEntry) bool { return when(a).Before(when(b)) }
	case SortNameAsc:
		less = func(a, b models.ActivityEntry) bool { return name(a) < name(b) }
	case SortNameDesc:
		less = func(a, b models.ActivityEntry) bool { return name(a) > name(b) }
	default:
		less = func(a, b models.ActivityEntry) bool { return when(a).After(when(b)) }
	}
	sort.SliceStable(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
}

// Summary counts entries per action.
type Summary struct {
	Total     int
	Uploads   int
	Downloads int
	Deletes   int
}

func Summarize(entries []models.ActivityEntry) Summary {
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		switch e.Action {
		case models.ActionUpload:
			s.Uploads++
		case models.ActionDownload:
			s.Downloads++
		case models.ActionDelete:
			s.Deletes++
		}
	}
	return s
}
