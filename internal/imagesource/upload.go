package imagesource

import (
	"context"
	"io"
)

// Upload is an image already held by the caller, typically a multipart form
// file received by the bridge server.
type Upload struct {
	Name string
	R    io.ReaderAt
	Size int64
}

// NewUpload creates a source reading size bytes from r.
func NewUpload(name string, r io.ReaderAt, size int64) *Upload {
	return &Upload{Name: name, R: r, Size: size}
}

// Ref returns "upload:" followed by the client-supplied name.
func (u *Upload) Ref() string {
	return "upload:" + u.Name
}

// Fetch copies Size bytes from R into dst.
func (u *Upload) Fetch(ctx context.Context, dst io.WriterAt) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return io.Copy(io.NewOffsetWriter(dst, 0), io.NewSectionReader(u.R, 0, u.Size))
}
