package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/filedrive/internal/client/client"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/dmitrijs2005/filedrive/internal/client/ops"
	"github.com/dmitrijs2005/filedrive/internal/client/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func size(n int64) *int64 { return &n }

func listing() []models.FileRecord {
	return []models.FileRecord{
		{FileID: "1", FileName: "a.pdf", StorageKey: "u1/a.pdf", Owner: "u1", Size: size(10)},
		{FileID: "2", FileName: "b.txt", StorageKey: "u2/b.txt", Owner: "u2", Size: size(20)},
		{FileID: "3", FileName: "c.png", StorageKey: "u1/c.png", Owner: "u1", Size: size(30)},
	}
}

func loggedIn(role models.Role, sub string) state.State {
	st := state.LoggedIn(models.Identity{Role: role, Subject: sub})
	st.Files = listing()
	return st
}

func newService(t *testing.T, fc *fakeClient) (*FileService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewFileService(fc, fakeCreds{cred: "tok"}, ops.NewTracker(), nil, FileServiceConfig{
		MaxUploadSize: 1 << 10,
		DownloadDir:   filepath.Join(dir, "download"),
	}, nil)
	return svc, dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestRefresh(t *testing.T) {
	fc := &fakeClient{files: listing()}
	svc, _ := newService(t, fc)

	st, err := svc.Refresh(context.Background(), state.LoggedIn(models.Identity{Role: models.RoleViewer}))
	require.NoError(t, err)
	assert.Len(t, st.Files, 3)
	assert.Equal(t, "3 file(s).", st.Status)
}

func TestRefresh_SessionExpired(t *testing.T) {
	expired := fmt.Errorf("%w: %w", client.ErrSessionExpired, &client.StatusError{Status: 401})
	fc := &fakeClient{listErr: expired}
	svc, _ := newService(t, fc)

	before := loggedIn(models.RoleAdmin, "u1")
	st, err := svc.Refresh(context.Background(), before)
	require.True(t, client.IsFatal(err))
	assert.Equal(t, before.Files, st.Files)
}

func TestRefresh_NoCredential(t *testing.T) {
	fc := &fakeClient{}
	svc := NewFileService(fc, fakeCreds{err: client.ErrAuth}, nil, nil, FileServiceConfig{}, nil)

	_, err := svc.Refresh(context.Background(), state.LoggedOut())
	require.ErrorIs(t, err, client.ErrAuth)
	assert.Zero(t, fc.listCall)
}

func TestSelect(t *testing.T) {
	svc, dir := newService(t, &fakeClient{})
	p := writeFile(t, dir, "small.txt", "hi")

	st, err := svc.Select(state.State{}, p)
	require.NoError(t, err)
	assert.Equal(t, p, st.Selection)
	assert.Equal(t, "Selected small.txt (2 B).", st.Status)

	_, err = svc.Select(state.State{}, filepath.Join(dir, "missing"))
	require.Error(t, err)

	_, err = svc.Select(state.State{}, dir)
	require.Error(t, err)

	big := writeFile(t, dir, "big.bin", string(make([]byte, 2<<10)))
	st, err = svc.Select(state.State{}, big)
	require.ErrorIs(t, err, ErrTooLarge)
	assert.Empty(t, st.Selection)
}

func TestUpload_Success(t *testing.T) {
	var gotBody []byte
	var gotCT string
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotCT = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer store.Close()

	after := append(listing(), models.FileRecord{FileID: "4", FileName: "new.txt", StorageKey: "u1/new.txt", Owner: "u1"})
	fc := &fakeClient{uploadTicket: models.UploadTicket{UploadURL: store.URL + "/u1/new.txt?sig=1"}, files: after}
	svc, dir := newService(t, fc)

	st := loggedIn(models.RoleEditor, "u1")
	st.Selection = writeFile(t, dir, "new.txt", "hello upload")

	next, err := svc.Upload(context.Background(), st)
	require.NoError(t, err)

	assert.Equal(t, []models.UploadRequest{{FileName: "new.txt", ContentType: "text/plain; charset=utf-8"}}, fc.uploadReqs)
	assert.Equal(t, "hello upload", string(gotBody))
	assert.Equal(t, "text/plain; charset=utf-8", gotCT)
	assert.Len(t, next.Files, 4, "re-fetched after upload")
	assert.Empty(t, next.Selection)
	assert.Equal(t, "Uploaded new.txt successfully.", next.Status)
}

func TestUpload_TicketFailureLeavesStateUnchanged(t *testing.T) {
	fc := &fakeClient{uploadErr: fmt.Errorf("%w: %w", client.ErrUpload, &client.StatusError{Status: 500, Body: "bucket unavailable"})}
	svc, dir := newService(t, fc)

	st := loggedIn(models.RoleAdmin, "u1")
	st.Selection = writeFile(t, dir, "x.txt", "x")

	next, err := svc.Upload(context.Background(), st)
	require.ErrorIs(t, err, client.ErrUpload)
	assert.Equal(t, st.Selection, next.Selection)
	assert.Equal(t, st.Files, next.Files)
	assert.Equal(t, "Upload failed: bucket unavailable", next.Status)
	assert.Zero(t, fc.listCall)
}

func TestUpload_TransferFailure(t *testing.T) {
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Request has expired", http.StatusForbidden)
	}))
	defer store.Close()

	fc := &fakeClient{uploadTicket: models.UploadTicket{UploadURL: store.URL}}
	svc, dir := newService(t, fc)

	st := loggedIn(models.RoleAdmin, "u1")
	st.Selection = writeFile(t, dir, "x.txt", "x")

	next, err := svc.Upload(context.Background(), st)
	require.ErrorIs(t, err, client.ErrUpload)
	assert.Equal(t, st.Selection, next.Selection)
	assert.Contains(t, next.Status, "Run upload again to retry.")
	assert.Zero(t, fc.listCall)
}

func TestUpload_RefreshFailureAfterTransfer(t *testing.T) {
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer store.Close()

	fc := &fakeClient{uploadTicket: models.UploadTicket{UploadURL: store.URL}, listErr: client.ErrNetwork}
	svc, dir := newService(t, fc)

	st := loggedIn(models.RoleAdmin, "u1")
	st.Selection = writeFile(t, dir, "x.txt", "x")

	next, err := svc.Upload(context.Background(), st)
	require.NoError(t, err)
	assert.Empty(t, next.Selection)
	assert.Equal(t, st.Files, next.Files)
	assert.Contains(t, next.Status, "Run ls to refresh")
}

func TestUpload_Gates(t *testing.T) {
	fc := &fakeClient{}
	svc, dir := newService(t, fc)

	_, err := svc.Upload(context.Background(), state.LoggedOut())
	require.ErrorIs(t, err, client.ErrAuth)

	viewer := loggedIn(models.RoleViewer, "u1")
	viewer.Selection = writeFile(t, dir, "x.txt", "x")
	_, err = svc.Upload(context.Background(), viewer)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Upload(context.Background(), loggedIn(models.RoleEditor, "u1"))
	require.ErrorIs(t, err, ErrNoSelection)

	big := loggedIn(models.RoleEditor, "u1")
	big.Selection = writeFile(t, dir, "big.bin", string(make([]byte, 2<<10)))
	_, err = svc.Upload(context.Background(), big)
	require.ErrorIs(t, err, ErrTooLarge)

	assert.Empty(t, fc.uploadReqs, "no request before the gates pass")
}

func TestDownload_Save(t *testing.T) {
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pdf bytes")
	}))
	defer store.Close()

	fc := &fakeClient{downloadTicket: models.DownloadTicket{DownloadURL: store.URL + "/obj"}}
	svc, dir := newService(t, fc)

	st := loggedIn(models.RoleViewer, "u9")
	next, err := svc.Download(context.Background(), st, "1", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1/a.pdf"}, fc.downloadKeys)

	want := filepath.Join(dir, "download", "a.pdf")
	b, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(b))
	assert.Contains(t, next.Status, want)
	assert.Equal(t, st.Files, next.Files)

	_, err = svc.Download(context.Background(), st, "1", false)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "download", "a (1).pdf"))
	require.NoError(t, err, "second download does not overwrite")
}

func TestDownload_FailureIsReported(t *testing.T) {
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "AccessDenied", http.StatusForbidden)
	}))
	defer store.Close()

	fc := &fakeClient{downloadTicket: models.DownloadTicket{DownloadURL: store.URL}}
	svc, dir := newService(t, fc)

	next, err := svc.Download(context.Background(), loggedIn(models.RoleViewer, "u9"), "1", false)
	require.ErrorIs(t, err, client.ErrDownload)
	assert.Contains(t, next.Status, "Download failed")

	entries, _ := os.ReadDir(filepath.Join(dir, "download"))
	assert.Empty(t, entries, "no partial file left behind")
}

func TestDownload_Open(t *testing.T) {
	orig := openBrowser
	t.Cleanup(func() { openBrowser = orig })

	var opened string
	openBrowser = func(u string) error { opened = u; return nil }

	fc := &fakeClient{downloadTicket: models.DownloadTicket{DownloadURL: "https://bucket.example/obj?sig=1"}}
	svc, _ := newService(t, fc)

	next, err := svc.Download(context.Background(), loggedIn(models.RoleViewer, "u9"), "2", true)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/obj?sig=1", opened)
	assert.Equal(t, "Opened b.txt in the browser.", next.Status)

	openBrowser = func(string) error { return errors.New("no display") }
	_, err = svc.Download(context.Background(), loggedIn(models.RoleViewer, "u9"), "2", true)
	require.ErrorIs(t, err, client.ErrDownload)
}

func TestDownload_UnknownID(t *testing.T) {
	svc, _ := newService(t, &fakeClient{})
	_, err := svc.Download(context.Background(), loggedIn(models.RoleViewer, "u9"), "42", false)
	require.ErrorIs(t, err, ErrNotFound)
}

func yes(models.FileRecord) bool { return true }
func no(models.FileRecord) bool  { return false }

func TestDelete_RemovesLocally(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newService(t, fc)

	next, err := svc.Delete(context.Background(), loggedIn(models.RoleAdmin, "u9"), "2", yes)
	require.NoError(t, err)

	assert.Equal(t, []models.DeleteRequest{{FileID: "2", StorageKey: "u2/b.txt"}}, fc.deleteReqs)
	require.Len(t, next.Files, 2)
	assert.Equal(t, "1", next.Files[0].FileID)
	assert.Equal(t, "3", next.Files[1].FileID)
	assert.Zero(t, fc.listCall, "no re-fetch after delete")
	assert.Equal(t, "Deleted b.txt.", next.Status)
}

func TestDelete_EditorCannotDeleteOthersFile(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newService(t, fc)

	next, err := svc.Delete(context.Background(), loggedIn(models.RoleEditor, "u2"), "1", yes)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, next.Files, 3)
	assert.Empty(t, fc.deleteReqs)

	_, err = svc.Delete(context.Background(), loggedIn(models.RoleEditor, "u1"), "1", yes)
	require.NoError(t, err)
}

func TestDelete_Cancelled(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newService(t, fc)

	next, err := svc.Delete(context.Background(), loggedIn(models.RoleAdmin, "u1"), "1", no)
	require.NoError(t, err)
	assert.Equal(t, "Deletion cancelled.", next.Status)
	assert.Len(t, next.Files, 3)
	assert.Empty(t, fc.deleteReqs)
}

func TestDelete_BackendRefuses(t *testing.T) {
	fc := &fakeClient{deleteErr: fmt.Errorf("%w: %w", client.ErrDelete, &client.StatusError{Status: 403, Body: "not yours"})}
	svc, _ := newService(t, fc)

	next, err := svc.Delete(context.Background(), loggedIn(models.RoleAdmin, "u1"), "1", yes)
	require.ErrorIs(t, err, client.ErrDelete)
	assert.False(t, client.IsFatal(err))
	assert.Len(t, next.Files, 3)
	assert.Equal(t, "Delete failed: not yours", next.Status)
}

func TestShare(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newService(t, fc)

	next, err := svc.Share(context.Background(), loggedIn(models.RoleEditor, "u1"), "1", "bob@example.com", models.DefaultPermissions())
	require.NoError(t, err)
	assert.Equal(t, "Shared a.pdf with bob@example.com.", next.Status)
	require.Len(t, fc.shareReqs, 1)
	assert.Equal(t, models.ShareRequest{FileID: "1", SharedWith: "bob@example.com", Permissions: models.Permissions{Read: true}}, fc.shareReqs[0])

	_, err = svc.Share(context.Background(), loggedIn(models.RoleEditor, "u1"), "1", "", models.DefaultPermissions())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFailureMessages(t *testing.T) {
	assert.Equal(t, "Upload failed: network error, please try again.", failure("Upload", client.ErrNetwork))
	assert.Equal(t, "Upload is already in progress.", failure("Upload", ops.ErrBusy))
	assert.Equal(t, "Loading files failed: unexpected response from server.",
		failure("Loading files", fmt.Errorf("%w: %w", client.ErrFetch, models.ErrInvalidRecord)))
	assert.Equal(t, "Profile failed: boom", failure("Profile", errors.New("boom")))
}
