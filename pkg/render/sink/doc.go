// Package sink writes arranged tag clouds to output formats.
//
// # Formats
//
// Every sink takes a [cloud.Layout] and draws it on the layout's canvas
// (see [cloud.Layout.Canvas]). Layout coordinates are translated so the
// canvas origin lands at (0, 0).
//
//   - [RenderSVG]: scalable vector output with the font embedded
//   - [RenderImage], [RenderPNG], [EncodeImage]: raster output drawn with
//     fogleman/gg and encoded with disintegration/imaging (PNG, JPEG, GIF,
//     BMP, TIFF)
//   - [RenderPDF]: a single page sized to the canvas, drawn with go-pdf/fpdf
//   - [RenderJSON]: the layout itself, indented
//
// Text is drawn with the same embedded font the layout was measured with,
// so each word fills the rectangle it was assigned. The baseline sits at the
// top of the rectangle plus the font's ascent.
//
// # Debugging
//
// [WithOutlines] and [WithRasterOutlines] stroke every tag rectangle, which
// makes gaps and compaction visible.
//
// [cloud.Layout]: github.com/matzehuels/tagcloud/pkg/cloud.Layout
// [cloud.Layout.Canvas]: github.com/matzehuels/tagcloud/pkg/cloud.Layout.Canvas
package sink
