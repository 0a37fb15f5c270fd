package sink

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	outlines bool
	title    string
}

// WithPDFOutlines strokes each tag rectangle.
func WithPDFOutlines() PDFOption { return func(r *pdfRenderer) { r.outlines = true } }

// WithTitle sets the document title.
func WithTitle(t string) PDFOption { return func(r *pdfRenderer) { r.title = t } }

// RenderPDF renders the layout on a single page the size of its canvas, one
// point per pixel.
func RenderPDF(l cloud.Layout, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	canvas := l.Canvas()
	placed, err := place(canvas, l.Tags)
	if err != nil {
		return nil, fmt.Errorf("font metrics: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(canvas.W), Ht: float64(canvas.H)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if r.title != "" {
		pdf.SetTitle(r.title, true)
	}
	pdf.AddUTF8FontFromBytes(fonts.FontFamily, "", fonts.TTF())
	pdf.AddPage()

	setFill(pdf, l.Background)
	pdf.Rect(0, 0, float64(canvas.W), float64(canvas.H), "F")
	pdf.SetAlpha(1, "Normal")

	for _, p := range placed {
		pdf.SetFont(fonts.FontFamily, "", float64(p.FontSize))
		pdf.SetTextColor(int(p.Color.R), int(p.Color.G), int(p.Color.B))
		pdf.SetAlpha(p.Color.Opacity(), "Normal")
		pdf.Text(float64(p.Box.X), float64(p.Baseline), p.Text)
	}
	pdf.SetAlpha(1, "Normal")

	if r.outlines {
		pdf.SetDrawColor(255, 0, 0)
		pdf.SetLineWidth(1)
		for _, p := range placed {
			pdf.Rect(float64(p.Box.X), float64(p.Box.Y), float64(p.Box.W), float64(p.Box.H), "D")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func setFill(pdf *fpdf.Fpdf, c tags.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	pdf.SetAlpha(c.Opacity(), "Normal")
}
