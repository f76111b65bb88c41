package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service provides access to the poster object store.
type Service interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader) (string, error)
	ObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
}
