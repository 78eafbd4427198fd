package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/filedrive/internal/client/client"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
)

type fakeCreds struct {
	cred string
	err  error
}

func (f fakeCreds) Credential(context.Context) (string, error) { return f.cred, f.err }

type fakeClient struct {
	mu sync.Mutex

	files    []models.FileRecord
	listErr  error
	listCall int

	uploadTicket models.UploadTicket
	uploadErr    error
	uploadReqs   []models.UploadRequest

	downloadTicket models.DownloadTicket
	downloadErr    error
	downloadKeys   []string

	deleteErr  error
	deleteReqs []models.DeleteRequest

	activity    []models.ActivityEntry
	activityErr error

	shareErr  error
	shareReqs []models.ShareRequest

	profile    models.Profile
	profileErr error
	updated    []string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) ListFiles(ctx context.Context, credential string) ([]models.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCall++
	return f.files, f.listErr
}

func (f *fakeClient) RequestUploadTicket(ctx context.Context, credential string, req models.UploadRequest) (models.UploadTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadReqs = append(f.uploadReqs, req)
	return f.uploadTicket, f.uploadErr
}

func (f *fakeClient) RequestDownloadTicket(ctx context.Context, credential string, storageKey string) (models.DownloadTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadKeys = append(f.downloadKeys, storageKey)
	return f.downloadTicket, f.downloadErr
}

func (f *fakeClient) DeleteFile(ctx context.Context, credential string, req models.DeleteRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteReqs = append(f.deleteReqs, req)
	return f.deleteErr
}

func (f *fakeClient) ListActivity(ctx context.Context, credential string) ([]models.ActivityEntry, error) {
	return f.activity, f.activityErr
}

func (f *fakeClient) ShareFile(ctx context.Context, credential string, req models.ShareRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shareReqs = append(f.shareReqs, req)
	return f.shareErr
}

func (f *fakeClient) GetProfile(ctx context.Context, credential string) (models.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, credential string, fullName string) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, fullName)
	p := f.profile
	p.FullName = fullName
	return p, f.profileErr
}
