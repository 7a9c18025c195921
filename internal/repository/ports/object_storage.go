package ports

import (
	"context"
	"io"
)

// ObjectStorage is the slice of an S3-compatible client that the
// object-backed booking record store uses. List returns object names under
// prefix, recursively.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
	Download(ctx context.Context, bucket, objectName string) ([]byte, error)
	List(ctx context.Context, bucket, prefix string) ([]string, error)
}
