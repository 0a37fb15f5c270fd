package tags

// FontSizeFunc maps a word frequency to a font size within [minSize, maxSize].
type FontSizeFunc func(freq, minSize, maxSize int) int

// LinearFontSize grows one unit per occurrence above minSize, capped at
// maxSize.
func LinearFontSize(freq, minSize, maxSize int) int {
	return max(minSize, min(maxSize, minSize+freq))
}
