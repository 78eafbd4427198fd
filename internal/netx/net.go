package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/filedrive/internal/common"
)

// ErrStatus is wrapped when the object store answers with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

// PutPresigned uploads body to a presigned object-store URL. size is sent as
// Content-Length when non-negative; the presigned signature usually covers it.
func PutPresigned(ctx context.Context, client *http.Client, url, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = common.DefaultContentType
	}
	req.Header.Set(common.ContentTypeHeader, contentType)
	if size >= 0 {
		req.ContentLength = size
	}

	resp, err := httpClient(client).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s; body: %s", ErrStatus, resp.Status, string(b))
	}
	return nil
}

// GetPresigned streams the object behind a presigned URL into w and returns
// the number of bytes written.
func GetPresigned(ctx context.Context, client *http.Client, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := httpClient(client).Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("%w: %s; body: %s", ErrStatus, resp.Status, string(b))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("read object: %w", err)
	}
	return n, nil
}

func httpClient(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
