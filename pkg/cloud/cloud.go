package cloud

import (
	"errors"

	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layout"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// Auto canvas sizing.
const (
	MinWidth  = 800
	MinHeight = 600
	Padding   = 200
)

// Layout is an arranged tag cloud.
type Layout struct {
	Center     geom.Point   `json:"center" bson:"center"`
	Width      int          `json:"width,omitempty" bson:"width,omitempty"`
	Height     int          `json:"height,omitempty" bson:"height,omitempty"`
	Background tags.Color   `json:"background" bson:"background"`
	Tags       []tags.Tag   `json:"tags" bson:"tags"`
	Stats      layout.Stats `json:"stats" bson:"stats"`
}

// Rects returns the placed rectangles in placement order.
func (l Layout) Rects() []geom.Rect {
	out := make([]geom.Rect, len(l.Tags))
	for i, t := range l.Tags {
		out[i] = t.Rect
	}
	return out
}

// Bounds returns the union of all tag rectangles.
func (l Layout) Bounds() geom.Rect { return layout.Bounds(l.Rects()) }

// Canvas returns the area the layout is drawn on, in layout coordinates.
func (l Layout) Canvas() geom.Rect {
	if l.Width > 0 && l.Height > 0 {
		return geom.Rect{W: l.Width, H: l.Height}
	}
	b := l.Bounds()
	if b.Empty() {
		return geom.RectAround(l.Center, geom.Sz(MinWidth, MinHeight))
	}
	s := geom.Sz(max(MinWidth, b.W+Padding), max(MinHeight, b.H+Padding))
	return geom.RectAround(b.Center(), s)
}

// Fit reports a BOUNDS_EXCEEDED error when the tags do not fit the canvas.
func (l Layout) Fit() error {
	if err := layout.CheckFits(l.Rects(), l.Canvas()); err != nil {
		var be *layout.BoundsError
		if errors.As(err, &be) {
			req := be.Required()
			return tcerrors.Wrap(tcerrors.ErrCodeBoundsExceeded, err,
				"cloud needs a %dx%d canvas", req.W, req.H)
		}
		return tcerrors.Wrap(tcerrors.ErrCodeBoundsExceeded, err, "cloud does not fit the canvas")
	}
	return nil
}

// Arrange places tags in order with p. Each tag is measured at its font size
// and receives the rectangle the packer returns.
//
// On failure Arrange returns the tags placed so far along with an error
// naming the word that could not be placed.
func Arrange(in []tags.Tag, p *layout.Packer, m fonts.Measurer) (Layout, error) {
	l := Layout{Center: p.Center(), Tags: make([]tags.Tag, 0, len(in))}
	for _, t := range in {
		size, err := m.Measure(t.Text, t.FontSize)
		if err != nil {
			return finish(l, p), tcerrors.Wrap(tcerrors.ErrCodeInvalidSize, err, "measuring %q", t.Text)
		}
		r, err := p.PlaceNext(size)
		if err != nil {
			return finish(l, p), placementError(t.Text, err)
		}
		t.Rect = r
		l.Tags = append(l.Tags, t)
	}
	return finish(l, p), nil
}

func finish(l Layout, p *layout.Packer) Layout {
	l.Stats = p.Stats()
	return l
}

func placementError(word string, err error) error {
	switch {
	case errors.Is(err, layout.ErrInvalidSize):
		return tcerrors.Wrap(tcerrors.ErrCodeInvalidSize, err, "failed to arrange tag %q", word)
	case errors.Is(err, layout.ErrPlacementExhausted):
		return tcerrors.Wrap(tcerrors.ErrCodePlacementExhausted, err, "failed to arrange tag %q", word)
	}
	return tcerrors.Wrap(tcerrors.ErrCodeInternal, err, "failed to arrange tag %q", word)
}
