// Package tags turns word frequencies into styled tags.
//
// A [Provider] orders words by descending frequency and assigns each a font
// size (see [LinearFontSize]) and a colour from a [ColorScheme]. The order of
// the returned tags is the order in which they should be placed: the most
// frequent word claims the center of the cloud.
//
// # Colours
//
// [Color] is an 8-bit RGBA value that marshals as a hex string. [ParseColor]
// accepts the formats users type on the command line:
//
//	red            named colours (SVG 1.1 keywords)
//	#f80 #ff8800   short and long hex
//	#80ff8800      hex with leading alpha
//	255,136,0      decimal r,g,b
//	128,255,136,0  decimal a,r,g,b
package tags
