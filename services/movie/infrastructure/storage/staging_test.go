package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/moviebox/services/movie/domain/models"
)

func newStager(t *testing.T) *Stager {
	t.Helper()
	s := NewStager(t.TempDir())
	require.NoError(t, s.Init())
	return s
}

func TestStager_StageWritesContent(t *testing.T) {
	s := newStager(t)

	f, err := s.Stage(strings.NewReader("frame-data"), models.SlotVideo, "clip.mp4", "video/mp4")
	require.NoError(t, err)

	assert.Equal(t, models.SlotVideo, f.Slot)
	assert.Equal(t, "clip.mp4", f.OriginalName)
	assert.Equal(t, "video/mp4", f.ContentType)
	assert.EqualValues(t, len("frame-data"), f.Size)
	assert.Equal(t, s.Dir(), filepath.Dir(f.TempPath))

	data, err := os.ReadFile(f.TempPath)
	require.NoError(t, err)
	assert.Equal(t, "frame-data", string(data))
}

func TestStager_StageFailureLeavesNothing(t *testing.T) {
	s := newStager(t)

	_, err := s.Stage(iotest.ErrReader(errors.New("client went away")), models.SlotThumbnail, "a.jpg", "image/jpeg")
	require.Error(t, err)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStager_Discard(t *testing.T) {
	s := newStager(t)
	a, err := s.Stage(strings.NewReader("a"), models.SlotThumbnail, "a.jpg", "image/jpeg")
	require.NoError(t, err)
	b, err := s.Stage(strings.NewReader("b"), models.SlotVideo, "b.mp4", "video/mp4")
	require.NoError(t, err)
	require.NoError(t, os.Remove(b.TempPath))

	s.Discard(a, nil, b)

	_, err = os.Stat(a.TempPath)
	assert.True(t, os.IsNotExist(err))
}

func TestStager_InitClearsLeftovers(t *testing.T) {
	s := newStager(t)
	_, err := s.Stage(strings.NewReader("stale"), models.SlotVideo, "old.mp4", "video/mp4")
	require.NoError(t, err)

	require.NoError(t, s.Init())

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
