package media

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageAndRelease(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	p, err := s.Stage("intro.mp4", strings.NewReader("fake video bytes"))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "intro.mp4", p.FileName)
	assert.Equal(t, int64(len("fake video bytes")), p.Size)

	_, statErr := os.Stat(p.Path)
	require.NoError(t, statErr)

	got, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, p.Path, got.Path)

	s.Release(p.ID)
	_, ok = s.Get(p.ID)
	assert.False(t, ok)
	_, statErr = os.Stat(p.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReleaseIsIdempotent(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	p, err := s.Stage("a.png", strings.NewReader("x"))
	require.NoError(t, err)

	s.Release(p.ID)
	s.Release(p.ID)
	s.Release("never-existed")
	s.Release("")

	assert.Equal(t, 0, s.Len())
}

func TestSequentialReplacementLeaksNothing(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	// Replace the same logical slot N times, releasing the prior holder
	// each round, the way the editor does.
	var current string
	for i := 0; i < 20; i++ {
		p, err := s.Stage("clip.mp4", strings.NewReader("v"))
		require.NoError(t, err)
		s.Release(current)
		current = p.ID
	}

	assert.Equal(t, 1, s.Len())
}

func TestCloseReleasesEverything(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	p1, err := s.Stage("a.mp4", strings.NewReader("a"))
	require.NoError(t, err)
	p2, err := s.Stage("b.mp4", strings.NewReader("b"))
	require.NoError(t, err)

	s.Close()
	s.Close() // second close is a no-op

	for _, p := range []Preview{p1, p2} {
		_, statErr := os.Stat(p.Path)
		assert.True(t, os.IsNotExist(statErr))
	}

	_, err = s.Stage("c.mp4", strings.NewReader("c"))
	assert.ErrorIs(t, err, ErrStoreClosed)
}
