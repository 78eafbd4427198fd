package models

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var ErrInvalidRecord = errors.New("invalid record")

// FileRecord is one entry of the user's directory listing.
type FileRecord struct {
	FileID     string `json:"fileId"`
	FileName   string `json:"fileName"`
	StorageKey string `json:"s3Key"`
	Owner      string `json:"owner"`
	Size       *int64 `json:"size,omitempty"`
	UploadedAt string `json:"uploadDate,omitempty"`
}

// Validate checks the fields the client relies on.
func (f FileRecord) Validate() error {
	switch {
	case f.FileID == "":
		return fmt.Errorf("%w: file without fileId", ErrInvalidRecord)
	case f.FileName == "":
		return fmt.Errorf("%w: file %s without fileName", ErrInvalidRecord, f.FileID)
	case f.StorageKey == "":
		return fmt.Errorf("%w: file %s without s3Key", ErrInvalidRecord, f.FileID)
	case f.Size != nil && *f.Size < 0:
		return fmt.Errorf("%w: file %s has negative size", ErrInvalidRecord, f.FileID)
	}
	return nil
}

// Extension returns the lowercased extension without the dot, or "" when the
// name has none.
func (f FileRecord) Extension() string {
	return Extension(f.FileName)
}

// SizeOrZero returns the declared size, 0 when unknown.
func (f FileRecord) SizeOrZero() int64 {
	if f.Size == nil {
		return 0
	}
	return *f.Size
}

// Extension returns the lowercased extension of name without the dot.
func Extension(name string) string {
	ext := path.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ValidateListing validates every record and rejects duplicate file ids.
func ValidateListing(files []FileRecord) error {
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, dup := seen[f.FileID]; dup {
			return fmt.Errorf("%w: duplicate fileId %s", ErrInvalidRecord, f.FileID)
		}
		seen[f.FileID] = struct{}{}
	}
	return nil
}
