// Package models defines the records exchanged with the file-storage backend
// and the identity decoded from the session credential.
package models

import "strings"

// Role is the coarse permission level carried by the credential's group claim.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// RoleFromGroups returns the lowercased first group, or RoleViewer when the
// list is empty or its first entry is blank.
func RoleFromGroups(groups []string) Role {
	if len(groups) == 0 {
		return RoleViewer
	}
	g := strings.ToLower(strings.TrimSpace(groups[0]))
	if g == "" {
		return RoleViewer
	}
	return Role(g)
}

// Identity is what the client knows about the signed-in user.
type Identity struct {
	Role     Role
	Subject  string
	Username string
	Email    string
}

// CanUpload reports whether the upload control should be offered.
func (i Identity) CanUpload() bool {
	return i.Role == RoleAdmin || i.Role == RoleEditor
}

// CanDelete reports whether the delete control should be offered for f:
// admins may delete anything, editors only their own files. This is a
// usability gate; the backend makes the authoritative decision.
func (i Identity) CanDelete(f FileRecord) bool {
	switch i.Role {
	case RoleAdmin:
		return true
	case RoleEditor:
		return f.Owner != "" && f.Owner == i.Subject
	default:
		return false
	}
}
