// Package storage keeps uploaded item photos and hands out their public URLs.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path uploaded files are served under.
const PublicPrefix = "/uploads"

// ImageStore persists processed images.
type ImageStore interface {
	// Save stores data and returns the URL it will be served from.
	Save(data []byte, ext string) (string, error)
	// Remove deletes a file previously returned by Save. URLs that do not
	// belong to the store are ignored.
	Remove(url string) error
}

// LocalImageStore writes images to a directory on disk.
type LocalImageStore struct {
	dir string
}

// NewLocalImageStore creates dir if needed and returns a store rooted there.
func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Dir is the directory files are written to.
func (s *LocalImageStore) Dir() string {
	return s.dir
}

// Save implements ImageStore.
func (s *LocalImageStore) Save(data []byte, ext string) (string, error) {
	name := uuid.New().String() + "." + strings.TrimPrefix(ext, ".")
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing image %s: %w", name, err)
	}
	return PublicPrefix + "/" + name, nil
}

// Remove implements ImageStore.
func (s *LocalImageStore) Remove(url string) error {
	name, ok := strings.CutPrefix(url, PublicPrefix+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing image %s: %w", name, err)
	}
	return nil
}
