package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/dmitrijs2005/filedrive/internal/common"
	"github.com/dmitrijs2005/filedrive/internal/logging"
	"github.com/google/uuid"
)

const maxResponseBody = 10 << 20

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. "https://abc.execute-api.eu-north-1.amazonaws.com/prod").
func NewHTTPClient(baseURL string, httpClient *http.Client, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("api base url %q is not absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{baseURL: u, http: httpClient, log: log}, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context, credential string) ([]models.FileRecord, error) {
	var files []models.FileRecord
	if err := c.getList(ctx, credential, "/files", nil, "files", &files, ErrFetch); err != nil {
		return nil, err
	}
	if err := models.ValidateListing(files); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if files == nil {
		files = []models.FileRecord{}
	}
	return files, nil
}

func (c *HTTPClient) RequestUploadTicket(ctx context.Context, credential string, req models.UploadRequest) (models.UploadTicket, error) {
	var t models.UploadTicket
	if err := c.do(ctx, http.MethodPost, "/upload-url", nil, credential, req, &t, ErrUpload); err != nil {
		return models.UploadTicket{}, err
	}
	if err := t.Validate(); err != nil {
		return models.UploadTicket{}, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return t, nil
}

func (c *HTTPClient) RequestDownloadTicket(ctx context.Context, credential string, storageKey string) (models.DownloadTicket, error) {
	var t models.DownloadTicket
	q := url.Values{"s3Key": {storageKey}}
	if err := c.do(ctx, http.MethodGet, "/download-url", q, credential, nil, &t, ErrDownload); err != nil {
		return models.DownloadTicket{}, err
	}
	if err := t.Validate(); err != nil {
		return models.DownloadTicket{}, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	return t, nil
}

func (c *HTTPClient) DeleteFile(ctx context.Context, credential string, req models.DeleteRequest) error {
	return c.do(ctx, http.MethodDelete, "/delete-file", nil, credential, req, nil, ErrDelete)
}

// ListActivity reads the download history. Entries without an action are
// downloads, which is all that endpoint records.
func (c *HTTPClient) ListActivity(ctx context.Context, credential string) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	if err := c.getList(ctx, credential, "/download-history", nil, "activities", &entries, ErrFetch); err != nil {
		return nil, err
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
		if entries[i].Action == "" {
			entries[i].Action = models.ActionDownload
		}
	}
	if entries == nil {
		entries = []models.ActivityEntry{}
	}
	return entries, nil
}

func (c *HTTPClient) ShareFile(ctx context.Context, credential string, req models.ShareRequest) error {
	return c.do(ctx, http.MethodPost, "/permissions/add", nil, credential, req, nil, ErrUpdate)
}

func (c *HTTPClient) GetProfile(ctx context.Context, credential string) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, credential, nil, &p, ErrFetch); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, credential string, fullName string) (models.Profile, error) {
	var p models.Profile
	body := map[string]string{"fullName": fullName}
	if err := c.do(ctx, http.MethodPut, "/user/update-profile", nil, credential, body, &p, ErrUpdate); err != nil {
		return models.Profile{}, err
	}
	if p.FullName == "" {
		p.FullName = fullName
	}
	return p, nil
}

// getList decodes either a bare JSON array or an object wrapping the array
// under key; the legacy list endpoints answer {"files": [...]}.
func (c *HTTPClient) getList(ctx context.Context, credential, path string, q url.Values, key string, out any, opErr error) error {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, q, credential, nil, &raw, opErr); err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return fmt.Errorf("%w: %w: %v", opErr, models.ErrInvalidRecord, err)
		}
		inner, ok := wrapped[key]
		if !ok {
			return fmt.Errorf("%w: %w: object without %q", opErr, models.ErrInvalidRecord, key)
		}
		trimmed = inner
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: %w: %v", opErr, models.ErrInvalidRecord, err)
	}
	return nil
}

// do performs one request. in, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx body. opErr is the sentinel wrapped into
// non-auth, non-transport failures.
func (c *HTTPClient) do(ctx context.Context, method, path string, q url.Values, credential string, in, out any, opErr error) error {
	if credential == "" {
		return ErrAuth
	}

	u := c.baseURL.JoinPath(path)
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", opErr, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%w: %v", opErr, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+credential)
	req.Header.Set(common.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	log.Debug(ctx, "response received", "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode, data, opErr)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: %w: empty response body", opErr, models.ErrInvalidRecord)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w: %v", opErr, models.ErrInvalidRecord, err)
	}
	return nil
}

func mapStatus(status int, body []byte, opErr error) error {
	se := &StatusError{Status: status, Body: strings.TrimSpace(string(body))}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrSessionExpired, se)
	}
	return fmt.Errorf("%w: %w", opErr, se)
}

// StatusOf returns the HTTP status wrapped in err, or 0.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
