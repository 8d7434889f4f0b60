package media

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJPEG(t *testing.T, path string, w, h int, fill color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestCompositor(t *testing.T) *Compositor {
	t.Helper()
	outline := filepath.Join(t.TempDir(), "outline.png")
	writePNG(t, outline, insetWidth, insetHeight)

	c, err := NewCompositor(outline)
	require.NoError(t, err)
	return c
}

func TestComposite(t *testing.T) {
	c := newTestCompositor(t)
	dir := t.TempDir()

	primary := filepath.Join(dir, "primary.jpg")
	secondary := filepath.Join(dir, "secondary.jpg")
	out := filepath.Join(dir, "combined.jpg")
	writeJPEG(t, primary, 150, 200, color.RGBA{R: 200, A: 255})
	writeJPEG(t, secondary, 75, 100, color.RGBA{B: 200, A: 255})

	require.NoError(t, c.Composite(primary, secondary, out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	img, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, canvasWidth, img.Bounds().Dx())
	assert.Equal(t, canvasHeight, img.Bounds().Dy())
}

func TestCompositeCorruptInput(t *testing.T) {
	c := newTestCompositor(t)
	dir := t.TempDir()

	primary := filepath.Join(dir, "primary.jpg")
	corrupt := filepath.Join(dir, "secondary.jpg")
	writeJPEG(t, primary, 150, 200, color.RGBA{R: 200, A: 255})
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o644))

	err := c.Composite(primary, corrupt, filepath.Join(dir, "combined.jpg"))
	assert.Error(t, err)
}

func TestCompositeMissingInput(t *testing.T) {
	c := newTestCompositor(t)
	dir := t.TempDir()

	err := c.Composite(filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "nope2.jpg"), filepath.Join(dir, "out.jpg"))
	assert.Error(t, err)
}

func TestNewCompositorMissingTemplate(t *testing.T) {
	_, err := NewCompositor(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
