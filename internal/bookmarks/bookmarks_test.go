package bookmarks

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMissingIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "bookmarks.txt"))
	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddKeepsOrderAndDuplicates(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "state", "bookmarks.txt"))

	require.NoError(t, s.Add("/srv/root/docs"))
	require.NoError(t, s.Add("/srv/root"))
	require.NoError(t, s.Add("/srv/root/docs"))

	list, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/root/docs", "/srv/root", "/srv/root/docs"}, list)
}

func TestAddRejectsLineBreaks(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "bookmarks.txt"))
	assert.Error(t, s.Add("/a\n/b"))
}
