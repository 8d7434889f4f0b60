package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	root := t.TempDir()
	return NewManager(filepath.Join(root, "content"), filepath.Join(root, "exports"))
}

func TestPrepareIdempotent(t *testing.T) {
	m := newTestManager(t)

	dir, err := m.Prepare("17781234567", "2022")
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.DirExists(t, m.Layout().PrimaryDir("17781234567", "2022"))
	assert.DirExists(t, m.Layout().SecondaryDir("17781234567", "2022"))
	assert.DirExists(t, m.Layout().CombinedDir("17781234567", "2022"))

	again, err := m.Prepare("17781234567", "2022")
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}

func TestFinalizeRemovesIntermediatesOnly(t *testing.T) {
	m := newTestManager(t)
	layout := m.Layout()

	_, err := m.Prepare("17781234567", "2022")
	require.NoError(t, err)

	// Intermediates, the audio upload, and a rendered video.
	composite := filepath.Join(layout.CombinedDir("17781234567", "2022"), "2022-01-01.jpg")
	require.NoError(t, os.WriteFile(composite, []byte("jpg"), 0o644))
	require.NoError(t, os.WriteFile(layout.AudioPath("17781234567", "2022"), []byte("wav"), 0o644))
	video := layout.VideoPath(layout.VideoName("tok", "17781234567", "2022"))
	require.NoError(t, os.WriteFile(video, []byte("mp4"), 0o644))

	require.NoError(t, m.Finalize("17781234567", "2022"))

	assert.NoFileExists(t, composite)
	assert.NoDirExists(t, layout.CombinedDir("17781234567", "2022"))
	assert.FileExists(t, layout.AudioPath("17781234567", "2022"))
	assert.FileExists(t, video)
}

func TestFinalizeIdempotent(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Prepare("17781234567", "2022")
	require.NoError(t, err)

	require.NoError(t, m.Finalize("17781234567", "2022"))
	require.NoError(t, m.Finalize("17781234567", "2022"))

	// Never prepared at all is fine too.
	require.NoError(t, m.Finalize("16040000000", "2023"))
}

func TestAcquireConflict(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Acquire("17781234567", "2022"))

	err := m.Acquire("17781234567", "2022")
	assert.ErrorIs(t, err, ErrJobInFlight)

	// A different (identity, year) is unaffected.
	require.NoError(t, m.Acquire("17781234567", "2023"))
	require.NoError(t, m.Acquire("16040000000", "2022"))

	m.Release("17781234567", "2022")
	require.NoError(t, m.Acquire("17781234567", "2022"))
}

func TestVideoName(t *testing.T) {
	layout := Layout{ExportsRoot: "/exports"}

	name := layout.VideoName("abcdefghijKLMNOP", "17781234567", "2022")
	assert.Equal(t, "abcdefghij-17781234567-2022.mp4", name)

	// Deterministic for identical inputs.
	assert.Equal(t, name, layout.VideoName("abcdefghijKLMNOP", "17781234567", "2022"))

	// Tokens shorter than the prefix are used whole.
	assert.Equal(t, "short-17781234567-2022.mp4", layout.VideoName("short", "17781234567", "2022"))
}
