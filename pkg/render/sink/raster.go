package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/fonts"
)

// RasterOption configures raster rendering.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	scale    float64
	outlines bool
	quality  int
}

// WithScale multiplies the output resolution (default 1).
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithRasterOutlines strokes each tag rectangle.
func WithRasterOutlines() RasterOption { return func(r *rasterRenderer) { r.outlines = true } }

// WithJPEGQuality sets the JPEG quality in [1, 100] (default 95).
func WithJPEGQuality(q int) RasterOption {
	return func(r *rasterRenderer) { r.quality = min(100, max(1, q)) }
}

func newRasterRenderer(opts []RasterOption) rasterRenderer {
	r := rasterRenderer{scale: 1, quality: 95}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderImage draws the layout onto a new image the size of its canvas.
func RenderImage(l cloud.Layout, opts ...RasterOption) (image.Image, error) {
	r := newRasterRenderer(opts)
	return r.draw(l)
}

// RenderPNG renders the layout as PNG.
func RenderPNG(l cloud.Layout, opts ...RasterOption) ([]byte, error) {
	return RenderRaster(l, imaging.PNG, opts...)
}

// RenderRaster renders the layout in one of the imaging formats.
func RenderRaster(l cloud.Layout, format imaging.Format, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts)
	img, err := r.draw(l)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeImage writes the layout to w in the format implied by filename's
// extension (.png, .jpg, .jpeg, .gif, .bmp, .tif, .tiff).
func EncodeImage(w io.Writer, filename string, l cloud.Layout, opts ...RasterOption) error {
	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	r := newRasterRenderer(opts)
	img, err := r.draw(l)
	if err != nil {
		return err
	}
	return r.encode(w, img, format)
}

func (r rasterRenderer) encode(w io.Writer, img image.Image, format imaging.Format) error {
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(r.quality)); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

func (r rasterRenderer) draw(l cloud.Layout) (image.Image, error) {
	canvas := l.Canvas()
	placed, err := place(canvas, l.Tags)
	if err != nil {
		return nil, fmt.Errorf("font metrics: %w", err)
	}

	s := r.scale
	dc := gg.NewContext(scaled(canvas.W, s), scaled(canvas.H, s))
	dc.SetColor(l.Background)
	dc.Clear()

	// gg does not scale glyphs with the context transform, so faces are
	// created at the scaled size and coordinates are scaled by hand.
	faces := make(map[int]font.Face)
	defer func() {
		for _, f := range faces {
			_ = f.Close()
		}
	}()

	for _, p := range placed {
		size := scaled(p.FontSize, s)
		face, ok := faces[size]
		if !ok {
			face, err = fonts.NewFace(size)
			if err != nil {
				return nil, err
			}
			faces[size] = face
		}
		dc.SetFontFace(face)
		dc.SetColor(p.Color)
		dc.DrawString(p.Text, float64(p.Box.X)*s, float64(p.Baseline)*s)
	}

	if r.outlines {
		dc.SetColor(color.NRGBA{R: 255, A: 255})
		dc.SetLineWidth(max(1, s))
		for _, p := range placed {
			dc.DrawRectangle(float64(p.Box.X)*s, float64(p.Box.Y)*s, float64(p.Box.W)*s, float64(p.Box.H)*s)
			dc.Stroke()
		}
	}
	return dc.Image(), nil
}

func scaled(v int, s float64) int {
	return max(1, int(math.Round(float64(v)*s)))
}
