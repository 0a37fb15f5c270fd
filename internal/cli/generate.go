package cli

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/tags"
	"github.com/matzehuels/tagcloud/pkg/text"
)

// stdinInput is the -i value that reads words from standard input.
const stdinInput = "-"

// generateOpts holds the command-line flags shared by generate and preview.
type generateOpts struct {
	input       string  // word file, or "-" for stdin
	output      string  // output file (single format) or base path
	formats     string  // comma-separated formats; empty derives from output
	width       int     // canvas width in pixels
	height      int     // canvas height in pixels
	fontMin     int     // font size of the least frequent word
	fontMax     int     // font size cap
	bgColor     string  // background colour
	colorScheme string  // random, frequency or gradient
	centerX     int     // spiral center, defaults to the canvas center
	centerY     int     // spiral center, defaults to the canvas center
	stopWords   string  // stop-word file; empty uses the built-in list
	noLowercase bool    // keep the input's case
	seed        uint64  // seed of the random colour scheme
	budget      int     // spiral attempts per word
	radius      float64 // spiral radius step factor
	scale       float64 // raster pixel density
	autoSize    bool    // size the canvas to the cloud
	strict      bool    // fail when tags leave the canvas
	outlines    bool    // draw tag rectangles
	noCache     bool    // bypass the layout and artifact cache
	refresh     bool    // recompute and overwrite cached entries
}

// addFlags registers the layout flags. Output flags are added by generate only.
func (o *generateOpts) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.input, "input", "i", "", "word file, one or more words per line (- for stdin)")
	f.IntVar(&o.width, "width", pipeline.DefaultWidth, "canvas width")
	f.IntVar(&o.height, "height", pipeline.DefaultHeight, "canvas height")
	f.IntVar(&o.fontMin, "font-min", tags.DefaultFontMin, "minimum font size")
	f.IntVar(&o.fontMax, "font-max", tags.DefaultFontMax, "maximum font size")
	f.StringVar(&o.bgColor, "bg-color", pipeline.DefaultBackground, "background colour (name, #rrggbb, #aarrggbb or r,g,b)")
	f.StringVar(&o.colorScheme, "color-scheme", pipeline.DefaultColorScheme, "colour scheme: random, frequency, gradient")
	f.IntVar(&o.centerX, "center-x", 0, "spiral center x (default canvas center)")
	f.IntVar(&o.centerY, "center-y", 0, "spiral center y (default canvas center)")
	f.StringVar(&o.stopWords, "stop-words", "", "stop-word file (default built-in list)")
	f.BoolVar(&o.noLowercase, "no-lowercase", false, "keep the input's case")
	f.Uint64Var(&o.seed, "seed", pipeline.DefaultSeed, "seed for the random colour scheme")
	f.IntVar(&o.budget, "budget", 0, "spiral attempts per word (default 10000)")
	f.Float64Var(&o.radius, "radius-factor", 0, "spiral spacing, larger spreads words further (default 0.05)")
	f.BoolVar(&o.autoSize, "auto-size", false, "size the canvas to the cloud")
	f.BoolVar(&o.noCache, "no-cache", false, "disable caching")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.RegisterFlagCompletionFunc("color-scheme", cobra.FixedCompletions(tags.SchemeNames, cobra.ShellCompDirectiveNoFileComp))
}

// pipelineOptions converts the flags into pipeline options.
func (o *generateOpts) pipelineOptions(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{
		FontMin:       o.fontMin,
		FontMax:       o.fontMax,
		ColorScheme:   o.colorScheme,
		Seed:          o.seed,
		AttemptBudget: o.budget,
		RadiusFactor:  o.radius,
		Width:         o.width,
		Height:        o.height,
		AutoCanvas:    o.autoSize,
		Background:    o.bgColor,
		Outlines:      o.outlines,
		Scale:         o.scale,
		Strict:        o.strict,
		KeepCase:      o.noLowercase,
		Refresh:       o.refresh,
	}

	if o.input == stdinInput {
		words, err := text.ReadWords(cmd.InOrStdin())
		if err != nil {
			return opts, err
		}
		opts.Words = words
	} else {
		opts.InputPath = o.input
	}

	if o.stopWords != "" {
		words, err := text.LoadStopWords(o.stopWords)
		if err != nil {
			return opts, err
		}
		opts.StopWords = words
	}

	flags := cmd.Flags()
	if flags.Changed("center-x") || flags.Changed("center-y") {
		c := geom.Pt(o.width/2, o.height/2)
		if flags.Changed("center-x") {
			c.X = o.centerX
		}
		if flags.Changed("center-y") {
			c.Y = o.centerY
		}
		opts.Center = &c
	}
	return opts, nil
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{output: defaultOutput, scale: 1}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a tag cloud from a word file",
		Long: `Generate counts the words of the input, drops stop words and packs the
remaining words around the canvas center, most frequent first.

The output format follows the extension of -o unless --format is given.
With several formats, -o is used as the base path.`,
		Example: `  tagcloud generate -i words.txt
  tagcloud generate -i words.txt -o cloud.svg --color-scheme gradient
  cat essay.txt | tagcloud generate -i - --format png,pdf,json -o out/essay`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd.Flags(), c.config.Generate.flagValues()); err != nil {
				return err
			}
			return c.runGenerate(cmd, &opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file, or base path for several formats")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png, jpg, gif, bmp, tiff, svg, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster pixel density")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when the cloud does not fit the canvas")
	cmd.Flags().BoolVar(&opts.outlines, "outlines", false, "draw the tag rectangles")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached results")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formatOrder, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	outputs, err := outputPaths(opts.output, opts.formats)
	if err != nil {
		return err
	}
	popts, err := opts.pipelineOptions(cmd)
	if err != nil {
		return err
	}
	for format := range outputs {
		popts.Formats = append(popts.Formats, format)
	}
	sortFormats(popts.Formats)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runWithSpinner(ctx, cmd.ErrOrStderr(), "Packing words...", func(ctx context.Context) (*pipeline.Result, error) {
		return runner.Execute(ctx, popts)
	})
	if err != nil {
		return err
	}
	prog.done("Placed %d tags", len(result.Layout.Tags))

	for _, format := range popts.Formats {
		path := outputs[format]
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Generated tag cloud")
	for _, format := range popts.Formats {
		printFile(outputs[format])
	}
	printStats(result.Stats.WordCount, result.Stats.TagCount, result.CacheInfo.LayoutHit)
	if !popts.Strict {
		if err := result.Layout.Fit(); err != nil {
			printWarning("%s", tcerrors.UserMessage(err))
		}
	}
	if opts.input != stdinInput {
		printNextStep("Step through the placements", fmt.Sprintf("%s preview -i %s", appName, opts.input))
	}
	return nil
}

// outputPaths maps each requested format to the file it is written to.
// Without --format the format comes from the output extension. Otherwise
// the output is used as given when its extension matches the only format,
// and as a base path in every other case.
func outputPaths(output, formats string) (map[string]string, error) {
	if err := tcerrors.ValidateOutputPath(output); err != nil {
		return nil, err
	}
	if formats == "" {
		format, err := pipeline.FormatFromPath(output)
		if err != nil {
			return nil, err
		}
		return map[string]string{format: output}, nil
	}

	list, err := parseFormats(formats)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, tcerrors.New(tcerrors.ErrCodeInvalidFormat, "no output format given")
	}
	if len(list) == 1 {
		if f, err := pipeline.FormatFromPath(output); err == nil && f == list[0] {
			return map[string]string{f: output}, nil
		}
	}

	base := basePath(output)
	out := make(map[string]string, len(list))
	for _, f := range list {
		out[f] = base + "." + f
	}
	return out, nil
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	ext := filepath.Ext(output)
	if _, err := pipeline.FormatFromPath(output); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// formatOrder is the order artifacts are written and listed in.
var formatOrder = []string{
	pipeline.FormatPNG, pipeline.FormatJPEG, pipeline.FormatGIF, pipeline.FormatBMP,
	pipeline.FormatTIFF, pipeline.FormatSVG, pipeline.FormatPDF, pipeline.FormatJSON,
}

func sortFormats(formats []string) {
	slices.SortFunc(formats, func(a, b string) int {
		return cmp.Compare(slices.Index(formatOrder, a), slices.Index(formatOrder, b))
	})
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
