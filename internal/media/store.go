package media

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore persists movie images under root and maps stored paths to
// public URLs below baseURL.  Stored paths are slash-separated and relative
// to root (e.g. "movies/3f1c....jpg"), which is what the movies table keeps.
type DiskStore struct {
	root    string // filesystem directory holding all media
	baseURL string // URL prefix under which root is served
}

// NewDiskStore creates the movie image directory if needed and returns a
// store rooted at root.
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "movies"), 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the filesystem directory the store writes into.  The router
// serves this directory statically under the base URL.
func (s *DiskStore) Root() string { return s.root }

// SaveMovieImage writes data to a fresh uuid-named file with the given
// extension and returns the stored relative path.  A new name is generated
// on every save so replacing an image never reuses the old file.
func (s *DiskStore) SaveMovieImage(data []byte, ext string) (string, error) {
	rel := path.Join("movies", uuid.NewString()+ext)
	if err := os.WriteFile(filepath.Join(s.root, filepath.FromSlash(rel)), data, 0o644); err != nil {
		return "", err
	}
	return rel, nil
}

// Remove deletes the stored file for a relative path.  Removing an empty or
// already-deleted path is not an error; the reference is what matters.
func (s *DiskStore) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// URL maps a stored relative path to the public URL clients fetch it from.
// An empty path yields an empty URL, which serializes as null upstream.
func (s *DiskStore) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.baseURL + "/" + rel
}
