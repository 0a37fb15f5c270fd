package text

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CountFrequencies counts words case-insensitively. The key of each entry is
// the first spelling seen.
func CountFrequencies(words []string) map[string]int {
	fold := cases.Fold()
	spelling := make(map[string]string)
	freqs := make(map[string]int)
	for _, w := range words {
		k := fold.String(norm.NFC.String(w))
		first, ok := spelling[k]
		if !ok {
			first = w
			spelling[k] = w
		}
		freqs[first]++
	}
	return freqs
}
