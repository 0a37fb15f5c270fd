package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

// ErrBoundsExceeded is matched by the error CheckFits returns when the placed
// rectangles do not fit the canvas.
var ErrBoundsExceeded = errors.New("layout exceeds canvas bounds")

// BoundsError describes a layout that does not fit its canvas.
type BoundsError struct {
	Extent geom.Rect // union of all placed rectangles
	Canvas geom.Rect // area the layout had to fit in
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("layout extent %v does not fit canvas %v (needs at least %v)",
		e.Extent, e.Canvas, e.Required())
}

// Unwrap makes errors.Is(err, ErrBoundsExceeded) hold.
func (e *BoundsError) Unwrap() error { return ErrBoundsExceeded }

// Required returns the smallest canvas size that would contain the extent
// with the canvas origin unchanged.
func (e *BoundsError) Required() geom.Size {
	return geom.Size{
		W: max(e.Canvas.Right(), e.Extent.Right()) - min(e.Canvas.X, e.Extent.X),
		H: max(e.Canvas.Bottom(), e.Extent.Bottom()) - min(e.Canvas.Y, e.Extent.Y),
	}
}

// Bounds returns the smallest rectangle containing every rectangle in rects,
// or the zero Rect when rects is empty.
func Bounds(rects []geom.Rect) geom.Rect {
	var b geom.Rect
	for _, r := range rects {
		b = b.Union(r)
	}
	return b
}

// CheckFits returns a *BoundsError when the union of rects is not contained
// in canvas. An empty layout always fits.
func CheckFits(rects []geom.Rect, canvas geom.Rect) error {
	if len(rects) == 0 {
		return nil
	}
	extent := Bounds(rects)
	if canvas.Contains(extent) {
		return nil
	}
	return &BoundsError{Extent: extent, Canvas: canvas}
}
