package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	outlines  bool
	embedFont bool
}

// WithOutlines strokes each tag rectangle.
func WithOutlines() SVGOption { return func(r *svgRenderer) { r.outlines = true } }

// WithoutEmbeddedFont skips the @font-face rule. Output is much smaller but
// viewers fall back to system fonts whose widths differ from the layout.
func WithoutEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = false } }

// RenderSVG renders the layout as an SVG document.
func RenderSVG(l cloud.Layout, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{embedFont: true}
	for _, opt := range opts {
		opt(&r)
	}

	canvas := l.Canvas()
	placed, err := place(canvas, l.Tags)
	if err != nil {
		return nil, fmt.Errorf("font metrics: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		canvas.W, canvas.H, canvas.W, canvas.H)

	if r.embedFont {
		fmt.Fprintf(&buf, "  <defs><style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style></defs>\n",
			fonts.FontFamily, fonts.TTFBase64())
	}

	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" %s/>`+"\n", svgPaint("fill", l.Background))

	fmt.Fprintf(&buf, `  <g font-family="%s">`+"\n", fonts.FallbackFontFamily)
	for _, p := range placed {
		fmt.Fprintf(&buf, `    <text x="%d" y="%d" font-size="%d" %s>%s</text>`+"\n",
			p.Box.X, p.Baseline, p.FontSize, svgPaint("fill", p.Color), escapeXML(p.Text))
	}
	buf.WriteString("  </g>\n")

	if r.outlines {
		buf.WriteString(`  <g fill="none" stroke="#ff0000" stroke-width="1">` + "\n")
		for _, p := range placed {
			fmt.Fprintf(&buf, `    <rect x="%d" y="%d" width="%d" height="%d"/>`+"\n",
				p.Box.X, p.Box.Y, p.Box.W, p.Box.H)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// svgPaint writes a fill or stroke attribute, adding an opacity attribute
// for translucent colours since SVG 1.1 has no alpha hex notation.
func svgPaint(attr string, c tags.Color) string {
	s := fmt.Sprintf(`%s="#%02x%02x%02x"`, attr, c.R, c.G, c.B)
	if c.A != 255 {
		s += fmt.Sprintf(` %s-opacity="%.3f"`, attr, c.Opacity())
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
