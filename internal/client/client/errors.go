package client

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrAuth: there is no usable session. Forces logout.
	ErrAuth = errors.New("not signed in")
	// ErrSessionExpired: the backend rejected the credential. Forces logout.
	ErrSessionExpired = errors.New("session expired")
	// ErrNetwork: the request never produced an HTTP response.
	ErrNetwork = errors.New("network error")

	ErrFetch    = errors.New("fetch failed")
	ErrUpload   = errors.New("upload failed")
	ErrDownload = errors.New("download failed")
	ErrDelete   = errors.New("delete failed")
	ErrUpdate   = errors.New("update failed")
)

// StatusError is a non-2xx response. Body is the response text, which the
// backend uses as the human-readable failure message.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if msg := strings.TrimSpace(e.Body); msg != "" {
		return msg
	}
	return http.StatusText(e.Status)
}

// IsFatal reports whether err must end the session.
func IsFatal(err error) bool {
	return errors.Is(err, ErrAuth) || errors.Is(err, ErrSessionExpired)
}
