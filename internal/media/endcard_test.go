package media

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEndcardRenderer(t *testing.T) *EndcardRenderer {
	t.Helper()
	dir := t.TempDir()
	template := filepath.Join(dir, "endCard_template.jpg")
	writeJPEG(t, template, 400, 600, color.RGBA{R: 10, G: 10, B: 10, A: 255})

	// No font file on disk: the built-in fallback face keeps the render
	// deterministic.
	r, err := NewEndcardRenderer(template, filepath.Join(dir, "missing.ttf"))
	require.NoError(t, err)
	return r
}

func TestEndcardRenderIdempotent(t *testing.T) {
	r := newTestEndcardRenderer(t)
	dir := t.TempDir()

	stats := EndcardStats{FrameCount: 365, Year: "2022"}
	first := filepath.Join(dir, "first.jpg")
	second := filepath.Join(dir, "second.jpg")

	require.NoError(t, r.Render(stats, first))
	require.NoError(t, r.Render(stats, second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical stats must produce identical bytes")
}

func TestEndcardRenderDiffersByStats(t *testing.T) {
	r := newTestEndcardRenderer(t)
	dir := t.TempDir()

	first := filepath.Join(dir, "first.jpg")
	second := filepath.Join(dir, "second.jpg")
	require.NoError(t, r.Render(EndcardStats{FrameCount: 10, Year: "2022"}, first))
	require.NoError(t, r.Render(EndcardStats{FrameCount: 99, Year: "2022"}, second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEndcardRenderMissingTemplate(t *testing.T) {
	r, err := NewEndcardRenderer(filepath.Join(t.TempDir(), "missing.jpg"), "")
	require.NoError(t, err)

	err = r.Render(EndcardStats{FrameCount: 1, Year: "2022"}, filepath.Join(t.TempDir(), "out.jpg"))
	assert.Error(t, err)
}
