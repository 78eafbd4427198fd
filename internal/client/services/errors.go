package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filedrive/internal/client/client"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/dmitrijs2005/filedrive/internal/client/ops"
)

var (
	ErrForbidden    = errors.New("not permitted for your role")
	ErrNotFound     = errors.New("no such file")
	ErrNoSelection  = errors.New("no file selected")
	ErrTooLarge     = errors.New("file too large")
	ErrInvalidInput = errors.New("invalid input")
)

// Credentials yields the bearer credential for the next API call.
type Credentials interface {
	Credential(ctx context.Context) (string, error)
}

// failure renders err as the status line for a failed op.
func failure(op string, err error) string {
	var se *client.StatusError
	switch {
	case errors.Is(err, ops.ErrBusy):
		return fmt.Sprintf("%s is already in progress.", op)
	case errors.Is(err, client.ErrNetwork):
		return fmt.Sprintf("%s failed: network error, please try again.", op)
	case errors.As(err, &se):
		return fmt.Sprintf("%s failed: %s", op, se.Error())
	case errors.Is(err, models.ErrInvalidRecord):
		return fmt.Sprintf("%s failed: unexpected response from server.", op)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("%s failed: request timed out.", op)
	}
	return fmt.Sprintf("%s failed: %v", op, err)
}
