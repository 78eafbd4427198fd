package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFromGroups(t *testing.T) {
	tests := []struct {
		name   string
		groups []string
		want   Role
	}{
		{name: "nil claims", groups: nil, want: RoleViewer},
		{name: "empty claims", groups: []string{}, want: RoleViewer},
		{name: "blank first entry", groups: []string{"  "}, want: RoleViewer},
		{name: "admin", groups: []string{"Admin"}, want: RoleAdmin},
		{name: "first entry wins", groups: []string{"EDITOR", "admin"}, want: RoleEditor},
		{name: "unknown kept lowercased", groups: []string{"Auditors"}, want: Role("auditors")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleFromGroups(tt.groups))
		})
	}
}

func TestIdentity_CanDelete(t *testing.T) {
	file := FileRecord{FileID: "1", FileName: "a.pdf", StorageKey: "k/a.pdf", Owner: "u1"}

	tests := []struct {
		name string
		id   Identity
		want bool
	}{
		{name: "editor owner mismatch", id: Identity{Role: RoleEditor, Subject: "u2"}, want: false},
		{name: "editor owns file", id: Identity{Role: RoleEditor, Subject: "u1"}, want: true},
		{name: "admin any owner", id: Identity{Role: RoleAdmin, Subject: "u9"}, want: true},
		{name: "viewer owns file", id: Identity{Role: RoleViewer, Subject: "u1"}, want: false},
		{name: "unknown role", id: Identity{Role: "auditors", Subject: "u1"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.CanDelete(file))
		})
	}
}

func TestIdentity_CanDelete_EditorWithoutOwner(t *testing.T) {
	id := Identity{Role: RoleEditor, Subject: ""}
	assert.False(t, id.CanDelete(FileRecord{FileID: "1"}))
}

func TestIdentity_CanUpload(t *testing.T) {
	assert.True(t, Identity{Role: RoleAdmin}.CanUpload())
	assert.True(t, Identity{Role: RoleEditor}.CanUpload())
	assert.False(t, Identity{Role: RoleViewer}.CanUpload())
}
