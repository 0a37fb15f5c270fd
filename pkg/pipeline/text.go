package pipeline

import (
	"strings"

	"github.com/matzehuels/tagcloud/pkg/cache"
	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/text"
)

// Words returns the preprocessed words of the input: read, normalised,
// optionally lowercased and stripped of stop words.
func Words(opts Options) ([]string, error) {
	if err := opts.ValidateForText(); err != nil {
		return nil, err
	}

	var raw []string
	switch {
	case len(opts.Words) > 0:
		raw = opts.Words
	case opts.Text != "":
		var err error
		raw, err = text.ReadWords(strings.NewReader(opts.Text))
		if err != nil {
			return nil, tcerrors.Wrap(tcerrors.ErrCodeInvalidInput, err, "cannot read text")
		}
	default:
		var err error
		raw, err = text.ReadFile(opts.InputPath)
		if err != nil {
			return nil, err
		}
	}

	words := text.NewPreprocessor(opts.StopWords, opts.Lowercase()).Process(raw)
	if len(words) == 0 {
		return nil, tcerrors.New(tcerrors.ErrCodeNoWords, "no words left after preprocessing")
	}
	return words, nil
}

// InputHash identifies a preprocessed word list for caching.
func InputHash(words []string) string {
	return cache.Hash([]byte(strings.Join(words, "\n")))
}
