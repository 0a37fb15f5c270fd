package text

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultStopWords are dropped when a Preprocessor has no stop list.
var DefaultStopWords = []string{
	"a", "an", "the", "and", "or", "but", "in", "on", "at", "to",
	"of", "for", "with", "by", "as", "is", "was", "were", "be",
	"been", "have", "has", "had", "do", "does", "did", "will",
	"would", "should", "could", "may", "might", "must", "can",
}

// Preprocessor filters and normalises words. It is not safe for concurrent
// use; build one per job.
type Preprocessor struct {
	stop    map[string]struct{}
	lower   bool
	folder  cases.Caser
	toLower cases.Caser
}

// NewPreprocessor builds a preprocessor. An empty stopWords selects
// DefaultStopWords. Stop words match regardless of case.
func NewPreprocessor(stopWords []string, toLower bool) *Preprocessor {
	if len(stopWords) == 0 {
		stopWords = DefaultStopWords
	}
	p := &Preprocessor{
		stop:    make(map[string]struct{}, len(stopWords)),
		lower:   toLower,
		folder:  cases.Fold(),
		toLower: cases.Lower(language.Und),
	}
	for _, w := range stopWords {
		p.stop[p.fold(w)] = struct{}{}
	}
	return p
}

// Process returns the words that survive filtering, in input order.
func (p *Preprocessor) Process(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(norm.NFC.String(w))
		if p.lower {
			w = p.toLower.String(w)
		}
		if w == "" {
			continue
		}
		if _, stop := p.stop[p.fold(w)]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// IsStopWord reports whether w is filtered by p.
func (p *Preprocessor) IsStopWord(w string) bool {
	_, ok := p.stop[p.fold(w)]
	return ok
}

func (p *Preprocessor) fold(w string) string {
	return p.folder.String(norm.NFC.String(w))
}
