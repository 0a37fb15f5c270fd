// Package pkg provides the libraries behind the tagcloud tool.
//
// # Overview
//
// A tag cloud shows the words of a text sized by how often they occur. The
// libraries here turn text into such a cloud in four stages:
//
//	text file / request body
//	         ↓
//	    [text] package (read, normalise, drop stop words, count)
//	         ↓
//	    [tags] package (font size and colour per word)
//	         ↓
//	    [cloud] + [layout] packages (measure with [fonts], pack around a center)
//	         ↓
//	    [render/sink] package (PNG, JPEG, GIF, BMP, TIFF, SVG, PDF, JSON)
//
// [pipeline] runs the stages with caching ([cache]) and reports progress
// through [observability]. [server] exposes the pipeline over HTTP and keeps
// finished layouts in a [store].
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    InputPath: "words.txt",
//	    Formats:   []string{pipeline.FormatPNG, pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("cloud.png", result.Artifacts[pipeline.FormatPNG], 0o644)
//
// The placement engine can also be used on its own with raw sizes:
//
//	p := layout.NewPacker(geom.Pt(600, 450))
//	r, err := p.PlaceNext(geom.Sz(120, 40))
//
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/server
// [store]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/store
//
// [text]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/text
// [tags]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/tags
// [cloud]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/cloud
// [layout]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/layout
// [fonts]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/fonts
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/render/sink
package pkg
