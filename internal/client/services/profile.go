package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filedrive/internal/client/client"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/dmitrijs2005/filedrive/internal/client/ops"
	"github.com/dmitrijs2005/filedrive/internal/client/state"
	"github.com/dmitrijs2005/filedrive/internal/logging"
)

type ProfileService struct {
	api     client.Client
	creds   Credentials
	tracker *ops.Tracker
	log     logging.Logger
}

func NewProfileService(api client.Client, creds Credentials, tracker *ops.Tracker, log logging.Logger) *ProfileService {
	if log == nil {
		log = logging.Nop()
	}
	if tracker == nil {
		tracker = ops.NewTracker()
	}
	return &ProfileService{api: api, creds: creds, tracker: tracker, log: log}
}

// Get returns the profile, or sets fullName first when it is not empty.
func (s *ProfileService) Get(ctx context.Context, st state.State, fullName string) (state.State, models.Profile, error) {
	fullName = strings.TrimSpace(fullName)

	var p models.Profile
	res := s.tracker.Run(ops.KindProfile, func() error {
		cred, err := s.creds.Credential(ctx)
		if err != nil {
			return err
		}
		if fullName != "" {
			p, err = s.api.UpdateProfile(ctx, cred, fullName)
			return err
		}
		p, err = s.api.GetProfile(ctx, cred)
		return err
	})
	if res.Err != nil {
		s.log.Warn(ctx, "profile failed", "error", res.Err)
		return st.WithStatus(failure("Profile", res.Err)), models.Profile{}, res.Err
	}

	if fullName != "" {
		return st.WithStatus(fmt.Sprintf("Name updated to %s.", p.FullName)), p, nil
	}
	return st.WithStatus(""), p, nil
}
