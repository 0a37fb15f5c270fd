package tags

import (
	"math/rand/v2"
	"strings"

	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
)

// ColorScheme picks the colour of a tag. index is the tag's rank in
// placement order and total the number of tags.
type ColorScheme interface {
	ColorFor(t Tag, index, total int) Color
}

// Scheme names accepted by SchemeByName.
const (
	SchemeRandom    = "random"
	SchemeFrequency = "frequency"
	SchemeGradient  = "gradient"
)

// SchemeNames lists the valid scheme names.
var SchemeNames = []string{SchemeRandom, SchemeFrequency, SchemeGradient}

// PastelPalette is the palette of the random scheme.
var PastelPalette = []Color{
	RGB(255, 182, 193),
	RGB(173, 216, 230),
	RGB(144, 238, 144),
	RGB(255, 222, 173),
	RGB(221, 160, 221),
	RGB(240, 230, 140),
	RGB(176, 224, 230),
}

// RandomScheme picks palette colours at random. With the same seed it
// produces the same sequence.
type RandomScheme struct {
	rng     *rand.Rand
	palette []Color
}

// NewRandomScheme returns a random scheme over PastelPalette.
func NewRandomScheme(seed uint64) *RandomScheme {
	return &RandomScheme{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), palette: PastelPalette}
}

func (s *RandomScheme) ColorFor(Tag, int, int) Color {
	return s.palette[s.rng.IntN(len(s.palette))]
}

// FrequencyScheme moves from Low toward High as frequency grows, using the
// ratio f/(f+10). Frequent words approach High but never reach it.
type FrequencyScheme struct {
	Low, High Color
}

// DefaultFrequencyScheme runs from light goldenrod yellow to orange.
func DefaultFrequencyScheme() FrequencyScheme {
	return FrequencyScheme{Low: RGB(250, 250, 210), High: RGB(255, 165, 0)}
}

func (s FrequencyScheme) ColorFor(t Tag, _, _ int) Color {
	f := max(t.Frequency, 0)
	ratio := float64(f) / float64(f+10)
	return fromColorful(s.Low.colorful().BlendRgb(s.High.colorful(), ratio), 255)
}

// GradientScheme blends from First to Last by rank, in CIE L*a*b* space so
// that perceived lightness changes evenly.
type GradientScheme struct {
	First, Last Color
}

// DefaultGradientScheme runs from gold to deep pink.
func DefaultGradientScheme() GradientScheme {
	return GradientScheme{First: RGB(255, 215, 0), Last: RGB(255, 20, 147)}
}

func (s GradientScheme) ColorFor(_ Tag, index, total int) Color {
	t := 0.0
	if total > 1 {
		t = float64(index) / float64(total-1)
	}
	return fromColorful(s.First.colorful().BlendLab(s.Last.colorful(), t), 255)
}

// SchemeByName returns the default scheme for name, matched
// case-insensitively. seed is used by the random scheme only.
func SchemeByName(name string, seed uint64) (ColorScheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SchemeRandom:
		return NewRandomScheme(seed), nil
	case SchemeFrequency:
		return DefaultFrequencyScheme(), nil
	case SchemeGradient:
		return DefaultGradientScheme(), nil
	}
	return nil, tcerrors.New(tcerrors.ErrCodeInvalidScheme,
		"unknown colour scheme %q (want one of %s)", name, strings.Join(SchemeNames, ", "))
}
