package port

import (
	"context"
	"io"
)

// ImageSource is a byte-readable image produced by a gallery pick, a camera
// capture or a remote object.
type ImageSource interface {
	// Ref identifies the image for display and logging.
	Ref() string
	// Fetch writes the whole image into dst and returns the number of bytes written.
	Fetch(ctx context.Context, dst io.WriterAt) (int64, error)
}

// StagedImage is an image materialized as a temporary local file.
type StagedImage struct {
	Path        string
	FileName    string
	ContentType string
	Data        []byte
}

// ImageStager materializes image sources before upload.
type ImageStager interface {
	Stage(ctx context.Context, src ImageSource) (*StagedImage, error)
	Remove(img *StagedImage)
}
