// Package analytics aggregates the file listing and activity log into the
// numbers shown on the analytics screen. Everything here is pure.
package analytics

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/filedrive/internal/client/models"
)

// TypeUsage is the storage taken by one file extension.
type TypeUsage struct {
	Type  string
	Files int
	Bytes int64
}

// StorageByType sums sizes per lowercased extension, largest first. Files
// without an extension are reported under "other".
func StorageByType(files []models.FileRecord) []TypeUsage {
	idx := map[string]int{}
	var out []TypeUsage
	for _, f := range files {
		ext := f.Extension()
		if ext == "" {
			ext = "other"
		}
		i, ok := idx[ext]
		if !ok {
			i = len(out)
			idx[ext] = i
			out = append(out, TypeUsage{Type: ext})
		}
		out[i].Files++
		out[i].Bytes += f.SizeOrZero()
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Bytes != out[j].Bytes {
			return out[i].Bytes > out[j].Bytes
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// DayCount is the activity of one calendar day.
type DayCount struct {
	Day       time.Time
	Uploads   int
	Downloads int
	Deletes   int
}

// Trend counts actions per calendar day in loc, oldest day first. Entries
// with unparseable timestamps are skipped; zone-less ones are read in loc.
func Trend(entries []models.ActivityEntry, loc *time.Location) []DayCount {
	if loc == nil {
		loc = time.Local
	}
	idx := map[time.Time]int{}
	var out []DayCount
	for _, e := range entries {
		ts, ok := e.TimeIn(loc)
		if !ok {
			continue
		}
		y, m, d := ts.In(loc).Date()
		key := time.Date(y, m, d, 0, 0, 0, 0, loc)
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, DayCount{Day: key})
		}
		switch e.Action {
		case models.ActionUpload:
			out[i].Uploads++
		case models.ActionDownload:
			out[i].Downloads++
		case models.ActionDelete:
			out[i].Deletes++
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// Overview is the headline numbers of the analytics screen.
type Overview struct {
	TotalFiles     int
	TotalBytes     int64
	TotalDownloads int
	ActiveUsers    int
}

// Summarize computes the overview. Active users are the distinct actors
// seen in the activity log.
func Summarize(files []models.FileRecord, entries []models.ActivityEntry) Overview {
	o := Overview{TotalFiles: len(files)}
	for _, f := range files {
		o.TotalBytes += f.SizeOrZero()
	}
	actors := map[string]struct{}{}
	for _, e := range entries {
		if e.Action == models.ActionDownload {
			o.TotalDownloads++
		}
		if e.Actor != "" {
			actors[e.Actor] = struct{}{}
		}
	}
	o.ActiveUsers = len(actors)
	return o
}
