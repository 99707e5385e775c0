package services

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BlobStore abstracts the file backend so handlers and the document service
// stay independent of where bytes actually live.
type BlobStore interface {
	// Save persists the stream and returns a stable URL for the blob.
	Save(originalName string, r io.Reader) (string, error)
	// Delete removes the blob behind url. Callers treat failures as
	// best-effort and never roll back metadata on error.
	Delete(url string) error
	// Resolve maps a stored URL back to a local path for serving.
	Resolve(url string) (string, error)
}

// DiskStore keeps uploads on the local filesystem under a single directory,
// served at /uploads. A CDN-backed store can replace it without touching the
// document service.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (d *DiskStore) Save(originalName string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), filepath.Ext(originalName))

	f, err := os.Create(filepath.Join(d.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return "/uploads/" + name, nil
}

func (d *DiskStore) Delete(url string) error {
	path, err := d.Resolve(url)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (d *DiskStore) Resolve(url string) (string, error) {
	name := filepath.Base(strings.TrimPrefix(url, "/uploads/"))
	if name == "" || name == "." || name == "/" {
		return "", errors.New("invalid file url")
	}
	return filepath.Join(d.dir, name), nil
}
