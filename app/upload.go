package app

import (
	"context"
	"io"
)

// UploadService stores images referenced from post bodies.
type UploadService interface {
	// UploadImage sends size bytes from r and returns the public URL of the image.
	UploadImage(ctx context.Context, fileName, contentType string, size int64, r io.Reader) (string, error)
}
