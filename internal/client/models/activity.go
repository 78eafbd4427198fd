package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Action is the kind of operation recorded in the activity log.
type Action string

const (
	ActionUpload   Action = "upload"
	ActionDownload Action = "download"
	ActionDelete   Action = "delete"
)

// ActivityEntry is one read-only record of the activity log.
type ActivityEntry struct {
	Actor     string `json:"actor"`
	FileName  string `json:"fileName"`
	Action    Action `json:"action"`
	Timestamp string `json:"timestamp"`
	Size      *int64 `json:"size,omitempty"`
}

// UnmarshalJSON accepts "downloadedBy" as an alias of "actor"; the download
// history endpoint names the field that way.
func (a *ActivityEntry) UnmarshalJSON(b []byte) error {
	type plain ActivityEntry
	aux := struct {
		*plain
		DownloadedBy string `json:"downloadedBy"`
	}{plain: (*plain)(a)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if a.Actor == "" {
		a.Actor = aux.DownloadedBy
	}
	a.Action = Action(strings.ToLower(string(a.Action)))
	return nil
}

func (a ActivityEntry) Validate() error {
	if a.FileName == "" {
		return fmt.Errorf("%w: activity without fileName", ErrInvalidRecord)
	}
	if a.Timestamp == "" {
		return fmt.Errorf("%w: activity for %s without timestamp", ErrInvalidRecord, a.FileName)
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time parses the timestamp. Date-only and zone-less values are UTC.
func (a ActivityEntry) Time() (time.Time, bool) {
	return ParseTimestamp(a.Timestamp)
}

// TimeIn is Time with date-only and zone-less values read as wall time in
// loc.
func (a ActivityEntry) TimeIn(loc *time.Location) (time.Time, bool) {
	return ParseTimestampIn(a.Timestamp, loc)
}

// ParseTimestamp parses the timestamp formats the backend is known to emit.
func ParseTimestamp(s string) (time.Time, bool) {
	return ParseTimestampIn(s, time.UTC)
}

// ParseTimestampIn is ParseTimestamp with zone-less values placed in loc.
// Values carrying an offset keep it.
func ParseTimestampIn(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
