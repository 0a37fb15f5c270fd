package tags

import (
	"cmp"
	"slices"

	"github.com/maruel/natural"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

// Tag is a word with its styling and, once arranged, its position.
type Tag struct {
	Text      string    `json:"text" bson:"text"`
	Frequency int       `json:"frequency" bson:"frequency"`
	FontSize  int       `json:"font_size" bson:"font_size"`
	Color     Color     `json:"color" bson:"color"`
	Rect      geom.Rect `json:"rect" bson:"rect"`
}

// Default font range.
const (
	DefaultFontMin = 20
	DefaultFontMax = 70
)

// Provider builds tags from word frequencies.
type Provider struct {
	FontMin  int
	FontMax  int
	FontSize FontSizeFunc // defaults to LinearFontSize
	Scheme   ColorScheme  // defaults to black text
}

// Tags returns one tag per word, most frequent first. Words with equal
// frequency are ordered naturally ("item2" before "item10") so the result
// does not depend on map iteration order.
func (p Provider) Tags(freqs map[string]int) []Tag {
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	slices.SortFunc(words, func(a, b string) int {
		if c := cmp.Compare(freqs[b], freqs[a]); c != 0 {
			return c
		}
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return cmp.Compare(a, b)
	})

	size := p.FontSize
	if size == nil {
		size = LinearFontSize
	}
	lo, hi := p.FontMin, p.FontMax
	if lo <= 0 {
		lo = DefaultFontMin
	}
	if hi < lo {
		hi = max(lo, DefaultFontMax)
	}

	out := make([]Tag, len(words))
	for i, w := range words {
		t := Tag{Text: w, Frequency: freqs[w], FontSize: size(freqs[w], lo, hi), Color: Black}
		if p.Scheme != nil {
			t.Color = p.Scheme.ColorFor(t, i, len(words))
		}
		out[i] = t
	}
	return out
}
