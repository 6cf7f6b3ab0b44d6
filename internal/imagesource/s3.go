package imagesource

import (
	"context"
	"fmt"
	"io"

	"ainoggo/internal/port"
)

// S3Object is an image stored in an S3-compatible bucket.
type S3Object struct {
	Bucket string
	Key    string

	downloader port.ObjectDownloader
}

// NewS3Object creates a source for s3://bucket/key.
func NewS3Object(downloader port.ObjectDownloader, bucket, key string) *S3Object {
	return &S3Object{Bucket: bucket, Key: key, downloader: downloader}
}

// Ref returns the s3://bucket/key form of the object.
func (o *S3Object) Ref() string {
	return fmt.Sprintf("s3://%s/%s", o.Bucket, o.Key)
}

// Fetch downloads the object straight into dst.
func (o *S3Object) Fetch(ctx context.Context, dst io.WriterAt) (int64, error) {
	return o.downloader.Download(ctx, o.Bucket, o.Key, dst)
}
