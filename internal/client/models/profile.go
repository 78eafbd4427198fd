package models

// Profile is the user's profile as served by the backend.
type Profile struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role,omitempty"`
}

// Permissions are the grants offered when sharing a file.
type Permissions struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// DefaultPermissions grants read only.
func DefaultPermissions() Permissions {
	return Permissions{Read: true}
}

// ShareRequest grants another user access to a file.
type ShareRequest struct {
	FileID      string      `json:"fileId"`
	SharedWith  string      `json:"sharedWith"`
	Permissions Permissions `json:"permissions"`
}
