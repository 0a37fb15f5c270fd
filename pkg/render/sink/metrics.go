package sink

import (
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// placement is a tag translated onto the canvas with its baseline resolved.
type placement struct {
	tags.Tag
	Box      geom.Rect // rectangle in canvas coordinates
	Baseline int       // y of the text baseline in canvas coordinates
}

// place translates every tag so the canvas origin is (0, 0) and computes
// its baseline from the font metrics at the tag's size.
func place(canvas geom.Rect, in []tags.Tag) ([]placement, error) {
	m := fonts.NewFaceMeasurer()
	defer m.Close()

	out := make([]placement, len(in))
	for i, t := range in {
		met, err := m.Metrics(t.FontSize)
		if err != nil {
			return nil, err
		}
		box := t.Rect.Translate(-canvas.X, -canvas.Y)
		out[i] = placement{Tag: t, Box: box, Baseline: box.Y + met.Ascent}
	}
	return out, nil
}
