package analytics

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func size(n int64) *int64 { return &n }

func TestStorageByType(t *testing.T) {
	files := []models.FileRecord{
		{FileID: "1", FileName: "a.PDF", Size: size(100)},
		{FileID: "2", FileName: "b.pdf", Size: size(50)},
		{FileID: "3", FileName: "c.png", Size: size(150)},
		{FileID: "4", FileName: "Makefile", Size: size(5)},
		{FileID: "5", FileName: "d.txt"},
	}

	want := []TypeUsage{
		{Type: "pdf", Files: 2, Bytes: 150},
		{Type: "png", Files: 1, Bytes: 150},
		{Type: "other", Files: 1, Bytes: 5},
		{Type: "txt", Files: 1, Bytes: 0},
	}
	if diff := cmp.Diff(want, StorageByType(files)); diff != "" {
		t.Fatalf("StorageByType (-want +got):\n%s", diff)
	}
	assert.Empty(t, StorageByType(nil))
}

func TestTrend(t *testing.T) {
	entries := []models.ActivityEntry{
		{FileName: "a", Action: models.ActionUpload, Timestamp: "2024-01-02T10:00:00Z"},
		{FileName: "b", Action: models.ActionDownload, Timestamp: "2024-01-01T09:00:00Z"},
		{FileName: "c", Action: models.ActionDownload, Timestamp: "2024-01-02T23:30:00Z"},
		{FileName: "d", Action: models.ActionDelete, Timestamp: "2024-01-01"},
		{FileName: "e", Action: models.ActionUpload, Timestamp: "not a date"},
	}

	want := []DayCount{
		{Day: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Downloads: 1, Deletes: 1},
		{Day: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Uploads: 1, Downloads: 1},
	}
	if diff := cmp.Diff(want, Trend(entries, time.UTC)); diff != "" {
		t.Fatalf("Trend (-want +got):\n%s", diff)
	}
}

func TestTrend_Location(t *testing.T) {
	plus3 := time.FixedZone("UTC+3", 3*3600)
	entries := []models.ActivityEntry{
		{FileName: "c", Action: models.ActionDownload, Timestamp: "2024-01-02T23:30:00Z"},
	}
	got := Trend(entries, plus3)
	assert.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Day.Day())
}

func TestSummarize(t *testing.T) {
	files := []models.FileRecord{{FileID: "1", Size: size(10)}, {FileID: "2", Size: size(5)}, {FileID: "3"}}
	entries := []models.ActivityEntry{
		{Actor: "alice", Action: models.ActionDownload},
		{Actor: "alice", Action: models.ActionUpload},
		{Actor: "bob", Action: models.ActionDownload},
		{Action: models.ActionDownload},
	}

	assert.Equal(t, Overview{TotalFiles: 3, TotalBytes: 15, TotalDownloads: 3, ActiveUsers: 2}, Summarize(files, entries))
}

func TestTrend_DateOnlyStaysOnItsDay(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*3600)
	entries := []models.ActivityEntry{
		{FileName: "d", Action: models.ActionUpload, Timestamp: "2024-01-01"},
	}
	got := Trend(entries, west)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Day.Day())
}
