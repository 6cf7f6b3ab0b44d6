package imagesource

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"ainoggo/internal/domain"
	"ainoggo/internal/port"
)

// Factory builds an ImageSource from a parsed reference.
type Factory func(u *url.URL) (port.ImageSource, error)

// Resolver turns image references into sources, dispatching on URI scheme.
// Bare paths and file:// URIs resolve to LocalFile.
type Resolver struct {
	factories map[string]Factory

	confined  bool
	localRoot string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLocalRoot confines local references to files under root. Relative
// paths are taken relative to root. An empty root rejects every local
// reference.
func WithLocalRoot(root string) Option {
	return func(r *Resolver) {
		r.confined = true
		r.localRoot = root
	}
}

// NewResolver creates a Resolver that understands local paths. When
// downloader is non-nil, s3:// references are resolved as well.
func NewResolver(downloader port.ObjectDownloader, opts ...Option) *Resolver {
	r := &Resolver{factories: map[string]Factory{}}
	for _, opt := range opts {
		opt(r)
	}
	r.Register("file", func(u *url.URL) (port.ImageSource, error) {
		if u.Path == "" {
			return nil, fmt.Errorf("%w: file URI has no path", domain.ErrUnsupportedImageRef)
		}
		return NewLocalFile(u.Path), nil
	})
	if downloader != nil {
		r.Register("s3", func(u *url.URL) (port.ImageSource, error) {
			key := strings.TrimPrefix(u.Path, "/")
			if u.Host == "" || key == "" {
				return nil, fmt.Errorf("%w: s3 reference needs bucket and key", domain.ErrUnsupportedImageRef)
			}
			return NewS3Object(downloader, u.Host, key), nil
		})
	}
	return r
}

// Register adds or replaces the factory for scheme.
func (r *Resolver) Register(scheme string, factory Factory) {
	r.factories[strings.ToLower(scheme)] = factory
}

// Resolve parses ref and returns the matching source.
func (r *Resolver) Resolve(ref string) (port.ImageSource, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", domain.ErrUnsupportedImageRef)
	}
	if !strings.Contains(ref, "://") {
		return r.local(NewLocalFile(ref))
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedImageRef, err)
	}
	factory, ok := r.factories[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, fmt.Errorf("%w: scheme %q", domain.ErrUnsupportedImageRef, u.Scheme)
	}
	src, err := factory(u)
	if err != nil {
		return nil, err
	}
	if lf, ok := src.(*LocalFile); ok {
		return r.local(lf)
	}
	return src, nil
}

// local applies the local root, if any, to a filesystem source.
func (r *Resolver) local(lf *LocalFile) (port.ImageSource, error) {
	if !r.confined {
		return lf, nil
	}
	if r.localRoot == "" {
		return nil, fmt.Errorf("%w: local image references are disabled", domain.ErrImageRefForbidden)
	}

	root, err := filepath.Abs(r.localRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageRefForbidden, err)
	}
	path := lf.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)

	// Symlinks are followed when they exist so a link cannot point out of root.
	realRoot, realPath := root, path
	if p, err := filepath.EvalSymlinks(root); err == nil {
		realRoot = p
	}
	if p, err := filepath.EvalSymlinks(path); err == nil {
		realPath = p
	} else if dir, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		realPath = filepath.Join(dir, filepath.Base(path))
	}

	rel, err := filepath.Rel(realRoot, realPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return nil, fmt.Errorf("%w: %s is outside %s", domain.ErrImageRefForbidden, lf.Path, r.localRoot)
	}
	return NewLocalFile(path), nil
}
