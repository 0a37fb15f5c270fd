// Package text turns raw input into word frequencies.
//
// The stages are:
//
//   - [ReadFile] / [ReadWords]: split input into words
//   - [Preprocessor.Process]: normalise, lowercase and drop stop words
//   - [CountFrequencies]: count occurrences, ignoring case
//
// Words are normalised to Unicode NFC before comparison so that composed and
// decomposed spellings of the same word are counted together.
package text
