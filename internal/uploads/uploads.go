package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
)

const (
	KeyUploadDir     = "UPLOAD_DIR"
	DefaultUploadDir = "./uploads"
	// public prefix under which stored files are served
	URLPrefix      = "/uploads/"
	MaxUploadBytes = 5 << 20
)

var logger = logrus.WithField("from", "uploads")

// DiskStore keeps uploaded images as files in Dir.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		dir = DefaultUploadDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w, cannot create upload dir %s, %w", hub_errors.ErrInternal, dir, err)
	}
	return &DiskStore{Dir: dir}, nil
}

// SaveImage stores the content of r under a fresh name and returns its
// public url. Anything that is not an image is rejected.
func (d *DiskStore) SaveImage(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w, cannot read upload, %w", hub_errors.ErrInvalidRequest, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w, empty file", hub_errors.ErrInvalidInput)
	}
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf(
			"%w, file larger than %d bytes",
			hub_errors.ErrInvalidInput,
			MaxUploadBytes,
		)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf(
			"%w, only images can be uploaded, got %s",
			hub_errors.ErrInvalidInput,
			mtype.String(),
		)
	}

	name := uuid.NewString() + mtype.Extension()
	if err = os.WriteFile(filepath.Join(d.Dir, name), data, 0o644); err != nil {
		err = fmt.Errorf("%w, cannot write upload %s, %w", hub_errors.ErrInternal, name, err)
		logger.Error(err)
		return "", err
	}

	logger.WithFields(logrus.Fields{
		"file": name,
		"mime": mtype.String(),
		"size": len(data),
	}).Debug("stored upload")

	return URLPrefix + name, nil
}

// Delete removes the file behind a url returned by SaveImage.
// A missing file is not an error.
func (d *DiskStore) Delete(url string) error {
	name, ok := strings.CutPrefix(url, URLPrefix)
	if !ok || name == "" || name != filepath.Base(name) {
		return fmt.Errorf("%w, %s is not an uploaded file", hub_errors.ErrInvalidInput, url)
	}

	err := os.Remove(filepath.Join(d.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		err = fmt.Errorf("%w, cannot remove upload %s, %w", hub_errors.ErrInternal, name, err)
		logger.Error(err)
		return err
	}
	return nil
}
