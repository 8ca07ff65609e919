// Package blob stores payment screenshots on the local filesystem so they
// can be served back verbatim from the public uploads path.
package blob

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/technovate-fest/event-registration/registrant"
)

var _ registrant.ArtifactStore = &FSStore{}

// extByContentType maps the accepted screenshot content types to the
// extension the stored file gets. Keys are server-chosen; nothing from the
// client filename ever reaches the filesystem.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
}

type FSStore struct {
	dir        string
	publicBase string
}

// NewFSStore creates the uploads directory if needed. publicBase is the URL
// path prefix the artifacts are served under, e.g. "/uploads".
func NewFSStore(dir string, publicBase string) (*FSStore, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create uploads dir %q: %w", dir, err)
	}

	return &FSStore{
		dir:        dir,
		publicBase: publicBase,
	}, nil
}

// Dir is the on-disk directory artifacts live in, for static serving.
func (s *FSStore) Dir() string {
	return s.dir
}

func (s *FSStore) Store(ctx context.Context, upload registrant.Upload) (string, error) {
	ext, ok := extByContentType[upload.ContentType]
	if !ok {
		return "", fmt.Errorf("no storage extension for content type %q", upload.ContentType)
	}

	key := uuid.NewString() + ext

	err := os.WriteFile(filepath.Join(s.dir, key), upload.Data, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to write artifact %q: %w", key, err)
	}

	return path.Join(s.publicBase, key), nil
}

func (s *FSStore) Remove(ctx context.Context, ref string) error {
	key := path.Base(ref)
	if key == "." || key == "/" || key == ".." {
		return fmt.Errorf("refusing to remove artifact with ref %q", ref)
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil {
		return fmt.Errorf("failed to remove artifact %q: %w", key, err)
	}

	return nil
}
