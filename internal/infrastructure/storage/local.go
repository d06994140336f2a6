// Package storage provides the image store backing product uploads.
//
// The local-disk implementation writes accepted files under a configured
// directory and returns URLs beneath /uploads/images, which the HTTP layer
// mounts statically. A remote object-storage backend can replace it behind
// the same port without touching the catalog service.
package storage

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shoply/catalog-system/internal/core/domain"
	"github.com/shoply/catalog-system/internal/core/ports"
)

// URLPrefix is the public path under which stored images are served.
const URLPrefix = "/uploads/images"

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

var allowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// LocalStore persists image uploads on the local filesystem.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the upload directory if needed and returns a store
// rooted at dir. baseURL prefixes returned URLs and may be empty for
// host-relative paths.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Save validates the upload against the image allow-list, writes the bytes
// under a collision-resistant name, and returns the public URL.
func (s *LocalStore) Save(ctx context.Context, upload ports.ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: extension %q", domain.ErrUnsupportedMedia, ext)
	}
	mediaType := upload.ContentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if _, ok := allowedMIMETypes[mediaType]; !ok {
		return "", fmt.Errorf("%w: content type %q", domain.ErrUnsupportedMedia, upload.ContentType)
	}

	name := storedName(ext)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, upload.Reader); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}

	return s.baseURL + URLPrefix + "/" + name, nil
}

// Dir returns the directory the HTTP layer should mount under URLPrefix.
func (s *LocalStore) Dir() string {
	return s.dir
}

// storedName builds a timestamp-based name with a short random suffix to
// avoid collisions between uploads in the same nanosecond.
func storedName(ext string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	}
	return fmt.Sprintf("%d_%x%s", time.Now().UnixNano(), b, ext)
}
