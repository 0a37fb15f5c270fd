// Package pipeline provides the tag cloud pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Text: read words, normalise them, drop stop words, count frequencies
//  2. Layout: build styled tags and place them with a fresh [layout.Packer]
//  3. Render: draw the layout in the requested formats (SVG, PNG, JPEG, GIF,
//     BMP, TIFF, PDF, JSON)
//
// Layouts and artifacts are cached by content hash, so re-rendering the same
// words with the same options is a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Text:    "go go gopher channel",
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	words, err := pipeline.Words(opts)
//	l, err := runner.Arrange(ctx, words, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
//
// [layout.Packer]: github.com/matzehuels/tagcloud/pkg/layout.Packer
package pipeline

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layout"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 1200

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 900

	// DefaultSeed seeds the random colour scheme.
	DefaultSeed = uint64(42)

	// DefaultBackground is the default canvas colour.
	DefaultBackground = "indigo"

	// DefaultColorScheme is the default tag colouring.
	DefaultColorScheme = tags.SchemeRandom
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJPEG = "jpg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJPEG: true,
	FormatGIF:  true,
	FormatBMP:  true,
	FormatTIFF: true,
	FormatPDF:  true,
	FormatJSON: true,
}

// RasterFormats are the formats drawn as bitmaps.
var RasterFormats = []string{FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF}

// formatAliases maps file extensions to formats.
var formatAliases = map[string]string{
	"jpeg": FormatJPEG,
	"tif":  FormatTIFF,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the tag cloud pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Words takes precedence over Text, Text over InputPath.
	Text      string   `json:"text,omitempty"`
	Words     []string `json:"words,omitempty"`
	InputPath string   `json:"-"`
	StopWords []string `json:"stop_words,omitempty"` // empty selects the built-in list
	KeepCase  bool     `json:"keep_case,omitempty"`

	// Layout options
	FontMin       int         `json:"font_min,omitempty"`
	FontMax       int         `json:"font_max,omitempty"`
	ColorScheme   string      `json:"color_scheme,omitempty"`
	Seed          uint64      `json:"seed,omitempty"`
	Center        *geom.Point `json:"center,omitempty"` // defaults to the canvas center
	AttemptBudget int         `json:"attempt_budget,omitempty"`
	RadiusFactor  float64     `json:"radius_factor,omitempty"` // spiral spacing; larger spreads candidates further

	// Render options
	Width      int      `json:"width,omitempty"`
	Height     int      `json:"height,omitempty"`
	AutoCanvas bool     `json:"auto_canvas,omitempty"` // size the canvas to the cloud
	Background string   `json:"background,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Outlines   bool     `json:"outlines,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Strict     bool     `json:"strict,omitempty"` // fail when tags leave the canvas

	// Runtime options (not serialized)
	Logger   *log.Logger    `json:"-"`
	Measurer fonts.Measurer `json:"-"`
	Refresh  bool           `json:"-"` // bypass cache reads

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// JobID identifies this run in logs and stores.
	JobID string

	// InputHash is the content hash of the preprocessed word list.
	InputHash string

	// Layout is the arranged cloud.
	Layout cloud.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WordCount  int
	TagCount   int
	TextTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
	Packing    layout.Stats
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return tcerrors.New(tcerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatFromPath returns the output format implied by path's extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if alias, ok := formatAliases[ext]; ok {
		ext = alias
	}
	if ext == "" {
		return "", tcerrors.New(tcerrors.ErrCodeInvalidFormat, "output %q has no extension", path)
	}
	if err := ValidateFormat(ext); err != nil {
		return "", err
	}
	return ext, nil
}

// IsRaster reports whether format is drawn as a bitmap.
func IsRaster(format string) bool { return slices.Contains(RasterFormats, format) }

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForText(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForText checks that some input was given.
func (o *Options) ValidateForText() error {
	if len(o.Words) == 0 && o.Text == "" && o.InputPath == "" {
		return tcerrors.New(tcerrors.ErrCodeInvalidInput, "text, words or an input file is required")
	}
	if len(o.Words) == 0 && o.Text != "" {
		if err := tcerrors.ValidateText(o.Text); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.FontMin == 0 {
		o.FontMin = tags.DefaultFontMin
	}
	if o.FontMax == 0 {
		o.FontMax = max(o.FontMin, tags.DefaultFontMax)
	}
	if o.ColorScheme == "" {
		o.ColorScheme = DefaultColorScheme
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.AttemptBudget == 0 {
		o.AttemptBudget = layout.DefaultAttemptBudget
	}
	if o.RadiusFactor == 0 {
		o.RadiusFactor = layout.DefaultRadiusStepFactor
	}
	if o.Center == nil {
		w, h := o.Width, o.Height
		if w == 0 || h == 0 {
			w, h = DefaultWidth, DefaultHeight
		}
		c := geom.Pt(w/2, h/2)
		o.Center = &c
	}
	if o.Measurer == nil {
		o.Measurer = fonts.NewFaceMeasurer()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := tcerrors.ValidateFontRange(o.FontMin, o.FontMax); err != nil {
		return err
	}
	if _, err := tags.SchemeByName(o.ColorScheme, o.Seed); err != nil {
		return err
	}
	if o.AttemptBudget < 0 {
		return tcerrors.New(tcerrors.ErrCodeInvalidInput, "attempt budget must be positive, got %d", o.AttemptBudget)
	}
	if o.RadiusFactor < 0 {
		return tcerrors.New(tcerrors.ErrCodeInvalidInput, "radius factor must be positive, got %g", o.RadiusFactor)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if !o.AutoCanvas {
		if o.Width == 0 {
			o.Width = DefaultWidth
		}
		if o.Height == 0 {
			o.Height = DefaultHeight
		}
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.AutoCanvas {
		o.Width, o.Height = 0, 0
	}
	if err := tcerrors.ValidateCanvasSize(o.Width, o.Height); err != nil {
		return err
	}
	if _, err := tags.ParseColor(o.Background); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > 8 {
		return tcerrors.New(tcerrors.ErrCodeInvalidSize, "scale must be in (0, 8], got %g", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// Lowercase reports whether words are folded to lower case.
func (o *Options) Lowercase() bool { return !o.KeepCase }

// BackgroundColor returns the parsed background, falling back to the default.
func (o *Options) BackgroundColor() tags.Color {
	c, err := tags.ParseColorOr(o.Background, tags.Indigo)
	if err != nil {
		return tags.Indigo
	}
	return c
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		FontMin:       o.FontMin,
		FontMax:       o.FontMax,
		ColorScheme:   strings.ToLower(o.ColorScheme),
		Seed:          o.Seed,
		AttemptBudget: o.AttemptBudget,
		RadiusFactor:  o.RadiusFactor,
		Lowercase:     o.Lowercase(),
	}
	if o.Center != nil {
		k.CenterX, k.CenterY = o.Center.X, o.Center.Y
	}
	if len(o.StopWords) > 0 {
		k.StopWords = cache.Hash([]byte(strings.Join(o.StopWords, "\n")))
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		Background: o.BackgroundColor().Hex(),
		Outlines:   o.Outlines,
		Scale:      o.Scale,
	}
}
