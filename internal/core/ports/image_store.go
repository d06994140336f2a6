package ports

import (
	"context"
	"io"
)

// ImageUpload is a single uploaded file as received by the transport layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ImageStore persists uploaded image bytes and returns a publicly
// dereferenceable URL. Implementations reject files outside the image
// allow-list with domain.ErrUnsupportedMedia before storing anything.
type ImageStore interface {
	Save(ctx context.Context, upload ImageUpload) (string, error)
}
