// Package state is the single piece of client state the CLI works on.
// Orchestrators take a State and return the next one; nothing else holds
// file or identity data.
package state

import (
	"github.com/dmitrijs2005/filedrive/internal/client/directory"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
)

type State struct {
	// Identity is nil while logged out.
	Identity *models.Identity
	// Files is the last authoritative listing, in backend order.
	Files []models.FileRecord
	// Query and SortBy shape Visible.
	Query  string
	SortBy directory.SortBy
	// Selection is the local path chosen for the next upload.
	Selection string
	// Status is the message for the last finished operation.
	Status string
}

// LoggedOut is the state shown before login and after a forced logout.
func LoggedOut() State {
	return State{}
}

// LoggedIn returns the initial state for a freshly authenticated user.
func LoggedIn(id models.Identity) State {
	return State{Identity: &id}
}

func (s State) IsLoggedIn() bool {
	return s.Identity != nil
}

// Visible is the filtered and sorted view of Files.
func (s State) Visible() []models.FileRecord {
	return directory.Sort(directory.Filter(s.Files, s.Query), s.SortBy)
}

// WithStatus returns s with msg as its status.
func (s State) WithStatus(msg string) State {
	s.Status = msg
	return s
}

// WithFiles returns s with files replacing the listing wholesale.
func (s State) WithFiles(files []models.FileRecord) State {
	s.Files = files
	return s
}
