// Package directory holds the user's file listing: fetching it from the
// backend, and the pure helpers that filter, sort, group and edit it.
package directory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/filedrive/internal/client/models"
)

// Lister is the part of the backend API the directory needs.
type Lister interface {
	ListFiles(ctx context.Context, credential string) ([]models.FileRecord, error)
}

type Directory struct {
	api Lister
}

func New(api Lister) *Directory {
	return &Directory{api: api}
}

// Refresh fetches the authoritative listing. Callers replace their whole
// file set with the result; nothing is merged.
func (d *Directory) Refresh(ctx context.Context, credential string) ([]models.FileRecord, error) {
	return d.api.ListFiles(ctx, credential)
}

// Filter returns, in order, the files whose name contains q ignoring case.
// The result is always a new slice.
func Filter(files []models.FileRecord, q string) []models.FileRecord {
	out := make([]models.FileRecord, 0, len(files))
	if q == "" {
		return append(out, files...)
	}
	needle := strings.ToLower(q)
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.FileName), needle) {
			out = append(out, f)
		}
	}
	return out
}

type SortBy string

const (
	SortNameAsc  SortBy = "name-asc"
	SortNameDesc SortBy = "name-desc"
	SortSizeAsc  SortBy = "size-asc"
	SortSizeDesc SortBy = "size-desc"
)

var sortOrders = []SortBy{SortNameAsc, SortNameDesc, SortSizeAsc, SortSizeDesc}

// SortOrders lists the accepted sort keys.
func SortOrders() []SortBy {
	return append([]SortBy(nil), sortOrders...)
}

func ParseSortBy(s string) (SortBy, error) {
	for _, o := range sortOrders {
		if strings.EqualFold(s, string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Sort returns a sorted copy of files. Ties fall back to name, then id, so
// the result does not depend on the input order. An empty or unknown order
// returns the files unchanged.
func Sort(files []models.FileRecord, by SortBy) []models.FileRecord {
	out := append([]models.FileRecord(nil), files...)

	byName := func(a, b models.FileRecord) int {
		if c := strings.Compare(strings.ToLower(a.FileName), strings.ToLower(b.FileName)); c != 0 {
			return c
		}
		return strings.Compare(a.FileID, b.FileID)
	}
	bySize := func(a, b models.FileRecord) int {
		switch sa, sb := a.SizeOrZero(), b.SizeOrZero(); {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return byName(a, b)
	}

	var cmp func(a, b models.FileRecord) int
	switch by {
	case SortNameAsc:
		cmp = byName
	case SortNameDesc:
		cmp = func(a, b models.FileRecord) int { return byName(b, a) }
	case SortSizeAsc:
		cmp = bySize
	case SortSizeDesc:
		cmp = func(a, b models.FileRecord) int { return bySize(b, a) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) < 0 })
	return out
}

// Group is a set of files sharing a key, in listing order.
type Group struct {
	Key   string
	Files []models.FileRecord
}

// GroupByExtension groups by lowercased extension; files without one share
// the empty key. Groups are ordered by key.
func GroupByExtension(files []models.FileRecord) []Group {
	return groupBy(files, models.FileRecord.Extension)
}

// GroupByOwner groups by owner subject. Groups are ordered by key.
func GroupByOwner(files []models.FileRecord) []Group {
	return groupBy(files, func(f models.FileRecord) string { return f.Owner })
}

func groupBy(files []models.FileRecord, key func(models.FileRecord) string) []Group {
	idx := map[string]int{}
	var groups []Group
	for _, f := range files {
		k := key(f)
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Files = append(groups[i].Files, f)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// RemoveByID returns files without the record whose id is fileID, keeping
// the order of the others. The bool reports whether a record was removed.
func RemoveByID(files []models.FileRecord, fileID string) ([]models.FileRecord, bool) {
	out := make([]models.FileRecord, 0, len(files))
	removed := false
	for _, f := range files {
		if f.FileID == fileID {
			removed = true
			continue
		}
		out = append(out, f)
	}
	return out, removed
}

// Find returns the record with fileID.
func Find(files []models.FileRecord, fileID string) (models.FileRecord, bool) {
	for _, f := range files {
		if f.FileID == fileID {
			return f, true
		}
	}
	return models.FileRecord{}, false
}

// CanDelete: admin always, editor on own files, viewer never.
func CanDelete(id models.Identity, f models.FileRecord) bool {
	return id.CanDelete(f)
}

// CanUpload: admin and editor.
func CanUpload(id models.Identity) bool {
	return id.CanUpload()
}
