package pipeline

import (
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
)

var rasterEncodings = map[string]imaging.Format{
	FormatPNG:  imaging.PNG,
	FormatJPEG: imaging.JPEG,
	FormatGIF:  imaging.GIF,
	FormatBMP:  imaging.BMP,
	FormatTIFF: imaging.TIFF,
}

// Render generates output artifacts in the requested formats.
func Render(l cloud.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	l = applyCanvas(l, opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(l, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders l in a single format. l is drawn as given; canvas
// options are not applied.
func RenderFormat(l cloud.Layout, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.Outlines {
			svgOpts = append(svgOpts, sink.WithOutlines())
		}
		data, err = sink.RenderSVG(l, svgOpts...)
	case FormatPDF:
		var pdfOpts []sink.PDFOption
		if opts.Outlines {
			pdfOpts = append(pdfOpts, sink.WithPDFOutlines())
		}
		data, err = sink.RenderPDF(l, append(pdfOpts, sink.WithTitle("tag cloud"))...)
	case FormatJSON:
		data, err = sink.RenderJSON(l)
	default:
		enc, ok := rasterEncodings[format]
		if !ok {
			return nil, tcerrors.New(tcerrors.ErrCodeUnsupported, "unsupported format: %s", format)
		}
		rasterOpts := []sink.RasterOption{sink.WithScale(opts.Scale)}
		if opts.Outlines {
			rasterOpts = append(rasterOpts, sink.WithRasterOutlines())
		}
		data, err = sink.RenderRaster(l, enc, rasterOpts...)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
