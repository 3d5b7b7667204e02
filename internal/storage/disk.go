package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore keeps objects under <root>/<bucket>/ on the local filesystem and
// serves them through the /files static route.
type DiskStore struct {
	root    string
	bucket  string
	baseURL string
}

func NewDiskStore(root, bucket, baseURL string) *DiskStore {
	return &DiskStore{
		root:    filepath.Clean(root),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Bucket returns the bucket name objects are stored under.
func (s *DiskStore) Bucket() string { return s.bucket }

// Root returns the directory backing the bucket, for the static file route.
func (s *DiskStore) Root() string { return filepath.Join(s.root, s.bucket) }

func (s *DiskStore) objectPath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, s.bucket, clean), nil
}

func (s *DiskStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	dst, err := s.objectPath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("mkdir for object: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close object: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *DiskStore) Delete(ctx context.Context, key string) error {
	dst, err := s.objectPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

// PublicURL maps a key to the URL the /files route serves it under.
func (s *DiskStore) PublicURL(key string) string {
	return s.baseURL + "/files/" + s.bucket + "/" + key
}
