package storage

import (
	"context"
	"io"
)

// Uploader stores a media file and returns a durable public URL. The
// application does not manage storage paths, retention, or transformation.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.ReadSeeker) (string, error)
}
