package media

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// EndcardStats are the summary figures stamped onto the endcard template.
type EndcardStats struct {
	FrameCount int
	Year       string
}

// EndcardRenderer stamps summary statistics onto the endcard template. The
// render is deterministic: identical inputs produce identical bytes.
type EndcardRenderer struct {
	templatePath string
	face         font.Face
}

// NewEndcardRenderer loads the stamping font. If the font file is missing the
// renderer falls back to a built-in face so development setups without static
// assets still work.
func NewEndcardRenderer(templatePath, fontPath string) (*EndcardRenderer, error) {
	r := &EndcardRenderer{templatePath: templatePath, face: basicfont.Face7x13}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		return r, nil
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    96,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	r.face = face
	return r, nil
}

// Render stamps the stats onto the template and writes the endcard to
// outPath.
func (r *EndcardRenderer) Render(stats EndcardStats, outPath string) error {
	template, err := decodeImage(r.templatePath)
	if err != nil {
		return fmt.Errorf("endcard template: %w", err)
	}

	canvas := image.NewRGBA(template.Bounds())
	draw.Draw(canvas, canvas.Bounds(), template, template.Bounds().Min, draw.Src)

	bounds := canvas.Bounds()
	countText := fmt.Sprintf("%d", stats.FrameCount)

	// Count centered in the upper third, year centered in the lower third.
	r.stamp(canvas, countText, bounds.Dx()/2, bounds.Dy()/3)
	r.stamp(canvas, stats.Year, bounds.Dx()/2, bounds.Dy()*2/3)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create endcard: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, canvas, &jpeg.Options{Quality: compositeJPEGQuality}); err != nil {
		return fmt.Errorf("encode endcard: %w", err)
	}
	return nil
}

func (r *EndcardRenderer) stamp(dst draw.Image, text string, cx, cy int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: r.face,
	}
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(cx) - width/2,
		Y: fixed.I(cy),
	}
	d.DrawString(text)
}
