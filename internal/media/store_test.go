package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(t.TempDir(), "/media/")
	require.NoError(t, err)
	return s
}

func TestDiskStoreSaveAndRemove(t *testing.T) {
	s := newTestStore(t)

	rel, err := s.SaveMovieImage([]byte("payload"), ".png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "movies/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	data, err := os.ReadFile(filepath.Join(s.Root(), filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, s.Remove(rel))
	_, err = os.Stat(filepath.Join(s.Root(), filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreSaveGeneratesFreshNames(t *testing.T) {
	s := newTestStore(t)

	first, err := s.SaveMovieImage([]byte("a"), ".jpg")
	require.NoError(t, err)
	second, err := s.SaveMovieImage([]byte("b"), ".jpg")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDiskStoreRemoveTolerant(t *testing.T) {
	s := newTestStore(t)

	assert.NoError(t, s.Remove(""))
	assert.NoError(t, s.Remove("movies/never-written.png"))
}

func TestDiskStoreURL(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, "/media/movies/x.png", s.URL("movies/x.png"))
	assert.Equal(t, "", s.URL(""))
}
