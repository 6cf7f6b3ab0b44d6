package port

import (
	"context"
	"io"
)

// ObjectDownloader abstracts reading objects out of cloud storage.
type ObjectDownloader interface {
	Download(ctx context.Context, bucket, key string, dst io.WriterAt) (int64, error)
}
