package imagesource

import (
	"context"
	"fmt"
	"io"
	"os"
)

// LocalFile is an image on the local filesystem, such as a gallery pick or a
// camera capture written to disk.
type LocalFile struct {
	Path string
}

// NewLocalFile creates a source for path.
func NewLocalFile(path string) *LocalFile {
	return &LocalFile{Path: path}
}

// Ref returns the file path.
func (l *LocalFile) Ref() string {
	return l.Path
}

// Fetch copies the file into dst. Directories are rejected.
func (l *LocalFile) Fetch(ctx context.Context, dst io.WriterAt) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f, err := os.Open(l.Path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s is a directory", l.Path)
	}
	return io.Copy(io.NewOffsetWriter(dst, 0), f)
}
