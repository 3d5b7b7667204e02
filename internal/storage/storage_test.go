package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjectKey(t *testing.T) {
	t.Run("keeps the original extension under uploads/", func(t *testing.T) {
		key := NewObjectKey("Invoice Scan.PNG")
		assert.True(t, strings.HasPrefix(key, "uploads/"))
		assert.True(t, strings.HasSuffix(key, ".png"))
	})

	t.Run("extensionless files get a bare key", func(t *testing.T) {
		key := NewObjectKey("README")
		assert.True(t, strings.HasPrefix(key, "uploads/"))
		assert.False(t, strings.Contains(key, "."))
	})

	t.Run("two keys for the same name never collide", func(t *testing.T) {
		a := NewObjectKey("photo.jpg")
		b := NewObjectKey("photo.jpg")
		assert.NotEqual(t, a, b)
	})
}

func TestParseObjectURL(t *testing.T) {
	t.Run("round trip through a disk store URL", func(t *testing.T) {
		s := NewDiskStore("/tmp/data", "task-images", "http://localhost:8080")
		url := s.PublicURL("uploads/123-abc.png")

		bucket, key, err := ParseObjectURL(url)
		require.NoError(t, err)
		assert.Equal(t, "task-images", bucket)
		assert.Equal(t, "uploads/123-abc.png", key)
	})

	t.Run("nested keys keep their path", func(t *testing.T) {
		bucket, key, err := ParseObjectURL("http://h/files/b/a/b/c.png")
		require.NoError(t, err)
		assert.Equal(t, "b", bucket)
		assert.Equal(t, "a/b/c.png", key)
	})

	t.Run("foreign URLs are rejected", func(t *testing.T) {
		_, _, err := ParseObjectURL("http://example.com/some/other/path.png")
		assert.Error(t, err)
	})

	t.Run("too-short paths are rejected", func(t *testing.T) {
		_, _, err := ParseObjectURL("http://h/files/onlybucket")
		assert.Error(t, err)
	})
}
