// Package media implements the image compositing and video assembly
// pipeline: daily capture pairs become composite frames, frames become a
// slideshow muxed against the uploaded audio track.
package media

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"golang.org/x/image/draw"

	// Capture downloads arrive as png, jpeg, or webp.
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Output geometry. The canvas matches the provider's capture resolution; the
// inset and its offset match the outline overlay template.
const (
	canvasWidth  = 1500
	canvasHeight = 2000

	insetWidth  = 375
	insetHeight = 500
	insetLeft   = 42
	insetTop    = 42
)

const compositeJPEGQuality = 90

// Compositor merges one day's primary and secondary captures into a single
// flattened frame with the outline overlay drawn around the inset.
type Compositor struct {
	outline image.Image
}

// NewCompositor loads the outline overlay template once. The template is a
// PNG with transparency sized to the inset.
func NewCompositor(outlinePath string) (*Compositor, error) {
	f, err := os.Open(outlinePath)
	if err != nil {
		return nil, fmt.Errorf("open outline template: %w", err)
	}
	defer f.Close()

	outline, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode outline template: %w", err)
	}
	return &Compositor{outline: outline}, nil
}

// Composite produces the flattened frame for one daily memory. A malformed
// or undecodable input fails only this frame; the caller decides whether to
// skip the day.
func (c *Compositor) Composite(primaryPath, secondaryPath, outPath string) error {
	primary, err := decodeImage(primaryPath)
	if err != nil {
		return fmt.Errorf("primary: %w", err)
	}
	secondary, err := decodeImage(secondaryPath)
	if err != nil {
		return fmt.Errorf("secondary: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	draw.CatmullRom.Scale(canvas, canvas.Bounds(), primary, primary.Bounds(), draw.Src, nil)

	inset := image.Rect(insetLeft, insetTop, insetLeft+insetWidth, insetTop+insetHeight)
	draw.CatmullRom.Scale(canvas, inset, secondary, secondary.Bounds(), draw.Over, nil)
	draw.ApproxBiLinear.Scale(canvas, inset, c.outline, c.outline.Bounds(), draw.Over, nil)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create composite: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, canvas, &jpeg.Options{Quality: compositeJPEGQuality}); err != nil {
		return fmt.Errorf("encode composite: %w", err)
	}
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
