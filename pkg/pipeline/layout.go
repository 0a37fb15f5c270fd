package pipeline

import (
	"github.com/matzehuels/tagcloud/pkg/cloud"
	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/layout"
	"github.com/matzehuels/tagcloud/pkg/tags"
	"github.com/matzehuels/tagcloud/pkg/text"
)

// GenerateLayout counts word frequencies, styles one tag per distinct word
// and arranges the tags with a new packer. Every call starts from an empty
// packer, so concurrent calls never share placement state.
//
// On a placement failure the partial layout is returned with the error.
func GenerateLayout(words []string, opts Options) (cloud.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return cloud.Layout{}, err
	}
	opts.SetRenderDefaults()

	freqs := text.CountFrequencies(words)
	if len(freqs) == 0 {
		return cloud.Layout{}, tcerrors.New(tcerrors.ErrCodeNoWords, "no words to arrange")
	}

	scheme, err := tags.SchemeByName(opts.ColorScheme, opts.Seed)
	if err != nil {
		return cloud.Layout{}, err
	}
	provider := tags.Provider{
		FontMin: opts.FontMin,
		FontMax: opts.FontMax,
		Scheme:  scheme,
	}
	ts := provider.Tags(freqs)

	p := layout.NewPacker(*opts.Center,
		layout.WithAttemptBudget(opts.AttemptBudget),
		layout.WithRadiusStepFactor(opts.RadiusFactor),
	)
	l, err := cloud.Arrange(ts, p, opts.Measurer)
	return applyCanvas(l, opts), err
}

// applyCanvas copies the render-time canvas settings onto l. Cached layouts
// are keyed without them, so they are applied on every run.
func applyCanvas(l cloud.Layout, opts Options) cloud.Layout {
	l.Width, l.Height = opts.Width, opts.Height
	if opts.AutoCanvas {
		l.Width, l.Height = 0, 0
	}
	l.Background = opts.BackgroundColor()
	return l
}
