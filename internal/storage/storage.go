package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore is the boundary to the image bucket. Put returns a publicly
// resolvable URL for the stored object.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewObjectKey builds a bucket key for an uploaded file. The uuid suffix
// keeps two uploads landing in the same millisecond from overwriting each
// other.
func NewObjectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("uploads/%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

// ParseObjectURL extracts (bucket, key) from a public object URL of the form
// <base>/files/<bucket>/<key...>. Task rows store the full URL, so deletes
// have to recover the key from it.
func ParseObjectURL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("parse object url: %w", err)
	}
	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "files" {
		return "", "", fmt.Errorf("not an object url: %q", rawURL)
	}
	return parts[1], strings.Join(parts[2:], "/"), nil
}
