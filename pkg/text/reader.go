package text

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"

	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
)

// ReadWords splits r into words. Words are separated by whitespace and lose
// any leading or trailing punctuation; inner punctuation ("don't",
// "e-mail") is kept.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		for _, f := range strings.FieldsFunc(sc.Text(), unicode.IsSpace) {
			if w := strings.TrimFunc(f, isEdgePunct); w != "" {
				words = append(words, w)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadFile reads the words of the file at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, tcerrors.Wrap(tcerrors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ErrCodeInvalidPath, err, "cannot read file %s", path)
	}
	defer f.Close()

	words, err := ReadWords(f)
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ErrCodeInvalidInput, err, "cannot read file %s", path)
	}
	return words, nil
}

// LoadStopWords reads a stop-word list with one word per line. Blank lines
// and lines starting with '#' are skipped.
func LoadStopWords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, tcerrors.Wrap(tcerrors.ErrCodeFileNotFound, err, "stop words file not found: %s", path)
	}
	if err != nil {
		return nil, tcerrors.Wrap(tcerrors.ErrCodeInvalidPath, err, "cannot read stop words %s", path)
	}

	var out []string
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

func isEdgePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
