package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
	"github.com/matzehuels/tagcloud/pkg/text"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it so caching behaves the same everywhere.
//
// The Runner keeps no per-job state: every Execute builds its own packer.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Measurer fonts.Measurer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Measurer: fonts.NewFaceMeasurer(),
	}
}

// Execute runs the complete text → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyRuntime(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		JobID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("job", result.JobID)
	hooks := observability.Pipeline()

	// Stage 1: Text
	textStart := time.Now()
	words, err := Words(opts)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	result.InputHash = InputHash(words)
	result.Stats.TextTime = time.Since(textStart)
	result.Stats.WordCount = len(words)
	result.Stats.TagCount = len(text.CountFrequencies(words))
	hooks.OnTextComplete(ctx, result.Stats.WordCount, result.Stats.TagCount, result.Stats.TextTime)

	logger.Info("preprocessed text",
		"words", result.Stats.WordCount,
		"tags", result.Stats.TagCount,
		"duration", result.Stats.TextTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, result.Stats.TagCount)
	l, layoutHit, err := r.ArrangeWithCacheInfo(ctx, words, opts)
	if err == nil && opts.Strict {
		err = l.Fit()
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, len(l.Tags), result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.Packing = l.Stats
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("arranged tags",
		"placed", len(l.Tags),
		"attempts", l.Stats.Attempts,
		"rescales", l.Stats.Rescales,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ArrangeWithCacheInfo builds the layout for words with caching and returns
// cache hit info. Layouts are cached only when every tag was placed.
func (r *Runner) ArrangeWithCacheInfo(ctx context.Context, words []string, opts Options) (cloud.Layout, bool, error) {
	r.applyRuntime(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return cloud.Layout{}, false, err
	}
	opts.SetRenderDefaults()

	cacheKey := r.Keyer.LayoutKey(InputHash(words), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := sink.ReadJSON(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return applyCanvas(cached, opts), true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeLayout)

	l, err := GenerateLayout(words, opts)
	if err != nil {
		return l, false, err
	}

	if data, err := sink.RenderJSON(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		} else {
			opts.Logger.Debug("layout cache write failed", "error", err)
		}
	}

	return l, false, nil
}

// Arrange is a convenience wrapper that calls ArrangeWithCacheInfo and discards the cache hit info.
func (r *Runner) Arrange(ctx context.Context, words []string, opts Options) (cloud.Layout, error) {
	l, _, err := r.ArrangeWithCacheInfo(ctx, words, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l cloud.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyRuntime(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	l = applyCanvas(l, opts)

	// Compute cache key from layout data
	layoutData, err := sink.RenderJSON(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)

	rendered, err := Render(l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l cloud.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if c, ok := r.Measurer.(io.Closer); ok {
		_ = c.Close()
	}
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyRuntime sets the runner's logger and measurer on options if not
// already set.
func (r *Runner) applyRuntime(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if opts.Measurer == nil {
		opts.Measurer = r.Measurer
	}
}
