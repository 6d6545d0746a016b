package ports

import (
	"context"
	"io"
)

type ObjectStorage interface {
	// Upload stores the object and returns its URL.
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
	Remove(ctx context.Context, bucket, objectName string) error
}
