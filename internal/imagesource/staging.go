package imagesource

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"ainoggo/internal/domain"
	"ainoggo/internal/port"
)

const (
	stagedPrefix     = "document-"
	defaultExtension = ".jpg"
	binaryType       = "application/octet-stream"
)

// Staging materializes images as temporary files in a single directory and
// removes them on request or at Cleanup. It implements port.ImageStager.
type Staging struct {
	dir string

	mu   sync.Mutex
	live map[string]struct{}
}

// NewStaging creates a staging area rooted at dir.
func NewStaging(dir string) *Staging {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Staging{dir: dir, live: make(map[string]struct{})}
}

// Stage copies src into a new file named document-<uuid><ext>. The extension
// and content type follow the detected image format; bytes that are not a
// recognised image are sent as application/octet-stream.
func (s *Staging) Stage(ctx context.Context, src port.ImageSource) (*port.StagedImage, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating staging dir: %w", err)
	}

	id := uuid.New().String()
	partPath := filepath.Join(s.dir, stagedPrefix+id+".part")
	f, err := os.OpenFile(partPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("creating staged file: %w", err)
	}

	n, fetchErr := src.Fetch(ctx, f)
	closeErr := f.Close()
	if fetchErr == nil && n == 0 {
		fetchErr = errors.New("image is empty")
	}
	if fetchErr == nil {
		fetchErr = closeErr
	}
	if fetchErr != nil {
		_ = os.Remove(partPath)
		return nil, fmt.Errorf("%w: %v", domain.ErrImageUnreadable, fetchErr)
	}

	data, err := os.ReadFile(partPath)
	if err != nil {
		_ = os.Remove(partPath)
		return nil, fmt.Errorf("%w: %v", domain.ErrImageUnreadable, err)
	}

	contentType, ext := binaryType, defaultExtension
	if mt := mimetype.Detect(data); strings.HasPrefix(mt.String(), "image/") {
		contentType = mt.String()
		if mt.Extension() != "" {
			ext = mt.Extension()
		}
	}

	name := stagedPrefix + id + ext
	path := filepath.Join(s.dir, name)
	if err := os.Rename(partPath, path); err != nil {
		_ = os.Remove(partPath)
		return nil, fmt.Errorf("renaming staged file: %w", err)
	}

	s.mu.Lock()
	s.live[path] = struct{}{}
	s.mu.Unlock()

	return &port.StagedImage{
		Path:        path,
		FileName:    name,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Remove deletes a staged file. Missing files are ignored.
func (s *Staging) Remove(img *port.StagedImage) {
	if img == nil {
		return
	}
	s.mu.Lock()
	delete(s.live, img.Path)
	s.mu.Unlock()

	if err := os.Remove(img.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("imagesource.Staging.Remove: %s: %v", img.Path, err)
	}
}

// Cleanup deletes every file this staging area still tracks.
func (s *Staging) Cleanup() {
	s.mu.Lock()
	paths := make([]string, 0, len(s.live))
	for p := range s.live {
		paths = append(paths, p)
	}
	s.live = make(map[string]struct{})
	s.mu.Unlock()

	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("imagesource.Staging.Cleanup: %s: %v", p, err)
		}
	}
}
