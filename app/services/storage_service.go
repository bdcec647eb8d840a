package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxUploadSize is the ceiling for a single product image.
const MaxUploadSize = 5 << 20 // 5 MiB

var (
	ErrFileTooLarge = errors.New("Dosya boyutu 5 MB'ı aşamaz.")
	ErrNotAnImage   = errors.New("Sadece görsel dosyaları yüklenebilir.")
)

// StorageService stores uploaded product images and resolves their public
// URLs. Deletion is fire-and-forget from the catalog's point of view.
type StorageService interface {
	Upload(originalName string, r io.Reader, size int64) (string, error)
	Delete(name string) error
}

// LocalStorageService keeps images on local disk under a directory that is
// served statically.
type LocalStorageService struct {
	dir     string
	baseURL string
}

func NewLocalStorageService(dir, baseURL string) *LocalStorageService {
	return &LocalStorageService{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload validates the payload before anything touches disk: the declared
// size and the actual bytes are both checked against MaxUploadSize, and the
// content is sniffed so that only real image data gets through regardless of
// the file extension. The stored name is a timestamp plus a random suffix
// plus the original extension.
func (s *LocalStorageService) Upload(originalName string, r io.Reader, size int64) (string, error) {
	if size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotAnImage
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = mtype.Extension()
	}
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

// Delete removes a stored image by name. A missing file is not an error;
// anything else surfaces but never blocks a catalog mutation.
func (s *LocalStorageService) Delete(name string) error {
	// Base strips any path components a hostile key could smuggle in.
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
