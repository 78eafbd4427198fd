package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/filedrive/internal/client/activity"
	"github.com/dmitrijs2005/filedrive/internal/client/analytics"
	"github.com/dmitrijs2005/filedrive/internal/client/client"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/dmitrijs2005/filedrive/internal/client/ops"
	"github.com/dmitrijs2005/filedrive/internal/client/state"
	"github.com/dmitrijs2005/filedrive/internal/logging"
)

// ActivityReport is one filtered view of the activity log.
type ActivityReport struct {
	Entries []models.ActivityEntry
	Summary activity.Summary
}

// AnalyticsReport is what the analytics screen shows.
type AnalyticsReport struct {
	Overview      analytics.Overview
	StorageByType []analytics.TypeUsage
	Trend         []analytics.DayCount
}

type ActivityService struct {
	viewer  *activity.Viewer
	creds   Credentials
	tracker *ops.Tracker
	loc     *time.Location
	log     logging.Logger
}

func NewActivityService(api client.Client, creds Credentials, tracker *ops.Tracker, loc *time.Location, log logging.Logger) *ActivityService {
	if log == nil {
		log = logging.Nop()
	}
	if tracker == nil {
		tracker = ops.NewTracker()
	}
	if loc == nil {
		loc = time.Local
	}
	return &ActivityService{viewer: activity.NewViewer(api), creds: creds, tracker: tracker, loc: loc, log: log}
}

func (s *ActivityService) load(ctx context.Context) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	res := s.tracker.Run(ops.KindActivity, func() error {
		cred, err := s.creds.Credential(ctx)
		if err != nil {
			return err
		}
		entries, err = s.viewer.Load(ctx, cred)
		return err
	})
	return entries, res.Err
}

// Query loads the log and applies q. The summary counts the filtered
// entries.
func (s *ActivityService) Query(ctx context.Context, st state.State, q activity.Query) (state.State, ActivityReport, error) {
	entries, err := s.load(ctx)
	if err != nil {
		s.log.Warn(ctx, "activity failed", "error", err)
		return st.WithStatus(failure("Loading activity", err)), ActivityReport{}, err
	}

	shown := activity.Apply(entries, q)
	return st.WithStatus(""), ActivityReport{Entries: shown, Summary: activity.Summarize(shown)}, nil
}

// Analytics aggregates the current listing with the activity log.
func (s *ActivityService) Analytics(ctx context.Context, st state.State) (state.State, AnalyticsReport, error) {
	entries, err := s.load(ctx)
	if err != nil {
		s.log.Warn(ctx, "analytics failed", "error", err)
		return st.WithStatus(failure("Loading analytics", err)), AnalyticsReport{}, err
	}

	return st.WithStatus(""), AnalyticsReport{
		Overview:      analytics.Summarize(st.Files, entries),
		StorageByType: analytics.StorageByType(st.Files),
		Trend:         analytics.Trend(entries, s.loc),
	}, nil
}
