package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestGetPlayback_Empty(t *testing.T) {
	m := setupTestManager(t)

	got, err := m.GetPlayback()

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveAndGetPlayback(t *testing.T) {
	m := setupTestManager(t)

	require.NoError(t, m.SavePlayback("/music/a.mp3", true))

	got, err := m.GetPlayback()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "/music/a.mp3", got.Source)
	assert.True(t, got.Loop)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSavePlayback_Overwrites(t *testing.T) {
	m := setupTestManager(t)

	require.NoError(t, m.SavePlayback("/music/a.mp3", true))
	require.NoError(t, m.SavePlayback("/music/b.mp3", false))

	got, err := m.GetPlayback()
	require.NoError(t, err)
	assert.Equal(t, "/music/b.mp3", got.Source)
	assert.False(t, got.Loop)
}

func TestOpenPath_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wavelet.db")

	m, err := OpenPath(path)
	require.NoError(t, err)
	require.NoError(t, m.SavePlayback("file:///music/a.flac", false))
	require.NoError(t, m.Close())

	m, err = OpenPath(path)
	require.NoError(t, err)
	defer m.Close()

	got, err := m.GetPlayback()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "file:///music/a.flac", got.Source)
}
