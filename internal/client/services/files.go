package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filedrive/internal/client/client"
	"github.com/dmitrijs2005/filedrive/internal/client/directory"
	"github.com/dmitrijs2005/filedrive/internal/client/models"
	"github.com/dmitrijs2005/filedrive/internal/client/ops"
	"github.com/dmitrijs2005/filedrive/internal/client/state"
	"github.com/dmitrijs2005/filedrive/internal/common"
	"github.com/dmitrijs2005/filedrive/internal/filex"
	"github.com/dmitrijs2005/filedrive/internal/logging"
	"github.com/dmitrijs2005/filedrive/internal/netx"
	"github.com/pkg/browser"
)

// openBrowser is a seam for tests.
var openBrowser = browser.OpenURL

const sniffLen = 512

type FileServiceConfig struct {
	MaxUploadSize int64
	DownloadDir   string
}

type FileService struct {
	api     client.Client
	dir     *directory.Directory
	creds   Credentials
	tracker *ops.Tracker
	objects *http.Client
	cfg     FileServiceConfig
	log     logging.Logger
}

// NewFileService wires the file operations. objects is the HTTP client used
// for presigned object-store URLs; nil means http.DefaultClient.
func NewFileService(api client.Client, creds Credentials, tracker *ops.Tracker, objects *http.Client, cfg FileServiceConfig, log logging.Logger) *FileService {
	if log == nil {
		log = logging.Nop()
	}
	if tracker == nil {
		tracker = ops.NewTracker()
	}
	return &FileService{
		api:     api,
		dir:     directory.New(api),
		creds:   creds,
		tracker: tracker,
		objects: objects,
		cfg:     cfg,
		log:     log,
	}
}

// Refresh replaces the file set with the backend listing.
func (s *FileService) Refresh(ctx context.Context, st state.State) (state.State, error) {
	var files []models.FileRecord
	res := s.tracker.Run(ops.KindList, func() error {
		cred, err := s.creds.Credential(ctx)
		if err != nil {
			return err
		}
		files, err = s.dir.Refresh(ctx, cred)
		return err
	})
	if res.Err != nil {
		s.log.Warn(ctx, "listing failed", "error", res.Err)
		return st.WithStatus(failure("Loading files", res.Err)), res.Err
	}

	s.log.Debug(ctx, "files listed", "count", len(files))
	return st.WithFiles(files).WithStatus(fmt.Sprintf("%d file(s).", len(files))), nil
}

// Select validates path as the next upload and stores it in the state.
func (s *FileService) Select(st state.State, path string) (state.State, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return st.WithStatus(fmt.Sprintf("Cannot select %s: %v", path, err)), err
	}
	if fi.IsDir() {
		err := fmt.Errorf("%s is a directory", path)
		return st.WithStatus(fmt.Sprintf("Cannot select %s: it is a directory.", path)), err
	}
	if s.cfg.MaxUploadSize > 0 && fi.Size() > s.cfg.MaxUploadSize {
		return st.WithStatus(fmt.Sprintf("%s is larger than %s.", filepath.Base(path), common.HumanSize(s.cfg.MaxUploadSize))), ErrTooLarge
	}
	st.Selection = path
	return st.WithStatus(fmt.Sprintf("Selected %s (%s).", filepath.Base(path), common.HumanSize(fi.Size()))), nil
}

// Upload sends the selected file: ticket, then PUT of the raw bytes, then a
// fresh listing. A failed ticket request leaves the state untouched; a
// failed transfer discards the ticket and keeps the selection for a retry.
func (s *FileService) Upload(ctx context.Context, st state.State) (state.State, error) {
	if !st.IsLoggedIn() {
		return st, client.ErrAuth
	}
	if !directory.CanUpload(*st.Identity) {
		return st.WithStatus("Your role cannot upload files."), ErrForbidden
	}
	if st.Selection == "" {
		return st.WithStatus("Select a file first: select <path>."), ErrNoSelection
	}

	var (
		name  = filepath.Base(st.Selection)
		files []models.FileRecord
		stage string
	)
	res := s.tracker.Run(ops.KindUpload, func() error {
		var err error
		stage, files, err = s.upload(ctx, st.Selection)
		return err
	})

	if res.Err != nil {
		s.log.Warn(ctx, "upload failed", "file", name, "stage", stage, "error", res.Err)
		msg := failure("Upload", res.Err)
		if stage == "transfer" {
			msg += " Run upload again to retry."
		}
		return st.WithStatus(msg), res.Err
	}

	next := st
	next.Selection = ""
	if files == nil {
		return next.WithStatus(fmt.Sprintf("Uploaded %s. Run ls to refresh the list.", name)), nil
	}
	return next.WithFiles(files).WithStatus(fmt.Sprintf("Uploaded %s successfully.", name)), nil
}

// upload returns the stage it stopped at. A listing failure after a
// successful transfer is not an upload failure unless it is fatal; files is
// nil then.
func (s *FileService) upload(ctx context.Context, path string) (string, []models.FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return "open", nil, fmt.Errorf("%w: %w", client.ErrUpload, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "open", nil, fmt.Errorf("%w: %w", client.ErrUpload, err)
	}
	if s.cfg.MaxUploadSize > 0 && fi.Size() > s.cfg.MaxUploadSize {
		return "open", nil, fmt.Errorf("%w: %s exceeds %s", ErrTooLarge, common.HumanSize(fi.Size()), common.HumanSize(s.cfg.MaxUploadSize))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "open", nil, fmt.Errorf("%w: %w", client.ErrUpload, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "open", nil, fmt.Errorf("%w: %w", client.ErrUpload, err)
	}
	contentType := filex.ContentType(fi.Name(), head[:n])

	cred, err := s.creds.Credential(ctx)
	if err != nil {
		return "ticket", nil, err
	}

	ticket, err := s.api.RequestUploadTicket(ctx, cred, models.UploadRequest{
		FileName:    fi.Name(),
		ContentType: contentType,
	})
	if err != nil {
		return "ticket", nil, err
	}

	if err := netx.PutPresigned(ctx, s.objects, ticket.UploadURL, contentType, f, fi.Size()); err != nil {
		return "transfer", nil, fmt.Errorf("%w: %w", client.ErrUpload, err)
	}
	s.log.Info(ctx, "file uploaded", "file", fi.Name(), "bytes", fi.Size(), "content_type", contentType)

	files, err := s.api.ListFiles(ctx, cred)
	if err != nil {
		if client.IsFatal(err) {
			return "refresh", nil, err
		}
		s.log.Warn(ctx, "listing after upload failed", "error", err)
		return "refresh", nil, nil
	}
	return "done", files, nil
}

// Download fetches a download ticket for fileID and either saves the object
// into the download directory or, with open, hands the link to the system
// browser. Failures are reported in the status; the file set never changes.
func (s *FileService) Download(ctx context.Context, st state.State, fileID string, open bool) (state.State, error) {
	rec, ok := directory.Find(st.Files, fileID)
	if !ok {
		return st.WithStatus(fmt.Sprintf("No file with id %s. Run ls first.", fileID)), ErrNotFound
	}

	var msg string
	res := s.tracker.Run(ops.KindDownload, func() error {
		cred, err := s.creds.Credential(ctx)
		if err != nil {
			return err
		}
		ticket, err := s.api.RequestDownloadTicket(ctx, cred, rec.StorageKey)
		if err != nil {
			return err
		}

		if open {
			if err := openBrowser(ticket.DownloadURL); err != nil {
				return fmt.Errorf("%w: open browser: %w", client.ErrDownload, err)
			}
			msg = fmt.Sprintf("Opened %s in the browser.", rec.FileName)
			return nil
		}

		path, n, err := s.save(ctx, ticket.DownloadURL, rec.FileName)
		if err != nil {
			return err
		}
		msg = fmt.Sprintf("Saved %s to %s (%s).", rec.FileName, path, common.HumanSize(n))
		return nil
	})

	if res.Err != nil {
		s.log.Warn(ctx, "download failed", "file_id", fileID, "error", res.Err)
		return st.WithStatus(failure("Download", res.Err)), res.Err
	}
	s.log.Info(ctx, "file downloaded", "file_id", fileID, "open", open)
	return st.WithStatus(msg), nil
}

// save streams url into a temp file in the download directory and renames
// it into place, so a failed transfer leaves nothing behind.
func (s *FileService) save(ctx context.Context, url, name string) (string, int64, error) {
	dir, err := filex.EnsureDir(s.cfg.DownloadDir)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", client.ErrDownload, err)
	}

	tmp, err := os.CreateTemp(dir, ".filedrive-*.part")
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", client.ErrDownload, err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	n, err := netx.GetPresigned(ctx, s.objects, url, tmp)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", client.ErrDownload, err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("%w: %w", client.ErrDownload, err)
	}

	dst, err := filex.UniquePath(dir, name)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", client.ErrDownload, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", 0, fmt.Errorf("%w: %w", client.ErrDownload, err)
	}
	return dst, n, nil
}

// Delete removes fileID after confirm approves it. The role gate only
// decides whether the action is offered; the backend has the final say.
// On success the record is dropped locally without a new listing.
func (s *FileService) Delete(ctx context.Context, st state.State, fileID string, confirm func(models.FileRecord) bool) (state.State, error) {
	if !st.IsLoggedIn() {
		return st, client.ErrAuth
	}
	rec, ok := directory.Find(st.Files, fileID)
	if !ok {
		return st.WithStatus(fmt.Sprintf("No file with id %s. Run ls first.", fileID)), ErrNotFound
	}
	if !directory.CanDelete(*st.Identity, rec) {
		return st.WithStatus(fmt.Sprintf("You cannot delete %s.", rec.FileName)), ErrForbidden
	}
	if confirm == nil || !confirm(rec) {
		return st.WithStatus("Deletion cancelled."), nil
	}

	res := s.tracker.Run(ops.KindDelete, func() error {
		cred, err := s.creds.Credential(ctx)
		if err != nil {
			return err
		}
		return s.api.DeleteFile(ctx, cred, models.DeleteRequest{FileID: rec.FileID, StorageKey: rec.StorageKey})
	})
	if res.Err != nil {
		s.log.Warn(ctx, "delete failed", "file_id", fileID, "error", res.Err)
		return st.WithStatus(failure("Delete", res.Err)), res.Err
	}

	files, _ := directory.RemoveByID(st.Files, rec.FileID)
	s.log.Info(ctx, "file deleted", "file_id", fileID)
	return st.WithFiles(files).WithStatus(fmt.Sprintf("Deleted %s.", rec.FileName)), nil
}

// Share grants another user access to fileID.
func (s *FileService) Share(ctx context.Context, st state.State, fileID, with string, perms models.Permissions) (state.State, error) {
	rec, ok := directory.Find(st.Files, fileID)
	if !ok {
		return st.WithStatus(fmt.Sprintf("No file with id %s. Run ls first.", fileID)), ErrNotFound
	}
	if with == "" {
		return st.WithStatus("Enter the email of the user to share with."), ErrInvalidInput
	}

	res := s.tracker.Run(ops.KindShare, func() error {
		cred, err := s.creds.Credential(ctx)
		if err != nil {
			return err
		}
		return s.api.ShareFile(ctx, cred, models.ShareRequest{FileID: rec.FileID, SharedWith: with, Permissions: perms})
	})
	if res.Err != nil {
		s.log.Warn(ctx, "share failed", "file_id", fileID, "error", res.Err)
		return st.WithStatus(failure("Share", res.Err)), res.Err
	}
	return st.WithStatus(fmt.Sprintf("Shared %s with %s.", rec.FileName, with)), nil
}
