package models

import (
	"fmt"
	"net/url"
)

// UploadRequest asks the backend for a write destination.
type UploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// UploadTicket is a single-use presigned write destination.
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
}

func (t UploadTicket) Validate() error {
	return validateTicketURL("uploadUrl", t.UploadURL)
}

// DownloadTicket is a single-use presigned read destination.
type DownloadTicket struct {
	DownloadURL string `json:"downloadUrl"`
}

func (t DownloadTicket) Validate() error {
	return validateTicketURL("downloadUrl", t.DownloadURL)
}

// DeleteRequest identifies the file to remove.
type DeleteRequest struct {
	FileID     string `json:"fileId"`
	StorageKey string `json:"s3Key"`
}

func validateTicketURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidRecord, field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRecord, field, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %s is not an absolute URL", ErrInvalidRecord, field)
	}
	return nil
}
