package client

import (
	"context"

	"github.com/dmitrijs2005/filedrive/internal/client/models"
)

// Client is the backend API contract. Every call carries the bearer
// credential obtained from the session.
type Client interface {
	ListFiles(ctx context.Context, credential string) ([]models.FileRecord, error)
	RequestUploadTicket(ctx context.Context, credential string, req models.UploadRequest) (models.UploadTicket, error)
	RequestDownloadTicket(ctx context.Context, credential string, storageKey string) (models.DownloadTicket, error)
	DeleteFile(ctx context.Context, credential string, req models.DeleteRequest) error
	ListActivity(ctx context.Context, credential string) ([]models.ActivityEntry, error)
	ShareFile(ctx context.Context, credential string, req models.ShareRequest) error
	GetProfile(ctx context.Context, credential string) (models.Profile, error)
	UpdateProfile(ctx context.Context, credential string, fullName string) (models.Profile, error)
}
