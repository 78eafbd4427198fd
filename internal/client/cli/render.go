package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/filedrive/internal/client/analytics"
	"github.com/dmitrijs2005/filedrive/internal/client/directory"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/dmitrijs2005/filedrive/internal/common"
)

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

func sizeText(f models.FileRecord) string {
	if f.Size == nil {
		return "-"
	}
	return common.HumanSize(*f.Size)
}

func uploadedText(s string) string {
	t, ok := models.ParseTimestamp(s)
	if !ok {
		if s == "" {
			return "-"
		}
		return s
	}
	return t.Local().Format("2006-01-02 15:04")
}

// renderFiles prints the listing with the actions the role allows.
func (a *App) renderFiles(files []models.FileRecord) {
	if len(files) == 0 {
		a.printf("No files.\n")
		return
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tOWNER\tUPLOADED\tACTIONS")
	for _, f := range files {
		actions := "download"
		if a.state.Identity != nil && directory.CanDelete(*a.state.Identity, f) {
			actions += ", delete"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", f.FileID, f.FileName, sizeText(f), f.Owner, uploadedText(f.UploadedAt), actions)
	}
	_ = tw.Flush()
}

func (a *App) renderGroups(groups []directory.Group, emptyKey string) {
	if len(groups) == 0 {
		a.printf("No files.\n")
		return
	}
	tw := a.table()
	fmt.Fprintln(tw, "GROUP\tFILES\tSIZE")
	for _, g := range groups {
		key := g.Key
		if key == "" {
			key = emptyKey
		}
		var total int64
		for _, f := range g.Files {
			total += f.SizeOrZero()
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", key, len(g.Files), common.HumanSize(total))
	}
	_ = tw.Flush()
}

func (a *App) renderActivity(entries []models.ActivityEntry) {
	if len(entries) == 0 {
		a.printf("No activity.\n")
		return
	}
	tw := a.table()
	fmt.Fprintln(tw, "WHEN\tUSER\tACTION\tFILE")
	for _, e := range entries {
		when := e.Timestamp
		if t, ok := e.TimeIn(a.loc); ok {
			when = t.In(a.loc).Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", when, e.Actor, e.Action, e.FileName)
	}
	_ = tw.Flush()
}

func (a *App) renderStorage(usage []analytics.TypeUsage) {
	if len(usage) == 0 {
		return
	}
	a.printf("\nStorage by file type\n")
	tw := a.table()
	fmt.Fprintln(tw, "TYPE\tFILES\tSIZE")
	for _, u := range usage {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", u.Type, u.Files, common.HumanSize(u.Bytes))
	}
	_ = tw.Flush()
}

func (a *App) renderTrend(days []analytics.DayCount) {
	if len(days) == 0 {
		return
	}
	a.printf("\nUpload & download trend\n")
	tw := a.table()
	fmt.Fprintln(tw, "DAY\tUPLOADS\tDOWNLOADS\tDELETES")
	for _, d := range days {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", d.Day.Format(time.DateOnly), d.Uploads, d.Downloads, d.Deletes)
	}
	_ = tw.Flush()
}
