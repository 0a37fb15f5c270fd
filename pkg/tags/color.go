package tags

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
)

// Color is a non-premultiplied 8-bit colour.
type Color struct {
	R, G, B, A uint8
}

// Common colours.
var (
	Black  = Color{0, 0, 0, 255}
	White  = Color{255, 255, 255, 255}
	Indigo = Color{75, 0, 130, 255}
)

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color { return Color{r, g, b, 255} }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA converts c to the standard library type.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// Hex formats c as #rrggbb, or #aarrggbb when it is not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// Opacity returns the alpha channel in [0, 1].
func (c Color) Opacity() float64 { return float64(c.A) / 255 }

func (c Color) String() string { return c.Hex() }

func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) colorful() colorful.Color {
	cf, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return cf
}

func fromColorful(cf colorful.Color, alpha uint8) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{r, g, b, alpha}
}

// ParseColor parses a colour in any of the formats listed in the package
// documentation. Names are matched case-insensitively.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, tcerrors.New(tcerrors.ErrCodeInvalidColor, "empty colour")
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{c.R, c.G, c.B, c.A}, nil
	}
	if c, ok := parseHex(s); ok {
		return c, nil
	}
	if c, ok := parseDecimal(s); ok {
		return c, nil
	}
	return Color{}, tcerrors.New(tcerrors.ErrCodeInvalidColor, "invalid colour format: %q", s)
}

// ParseColorOr parses s, returning def when s is blank.
func ParseColorOr(s string, def Color) (Color, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return ParseColor(s)
}

func parseHex(s string) (Color, bool) {
	h := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, false
	}
	switch len(h) {
	case 3:
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return Color{r * 17, g * 17, b * 17, 255}, true
	case 6:
		return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
	case 8:
		return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), uint8(v >> 24)}, true
	}
	return Color{}, false
}

func parseDecimal(s string) (Color, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, false
	}
	vals := make([]uint8, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || len(p) > 3 {
			return Color{}, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return Color{}, false
		}
		vals[i] = uint8(n)
	}
	if len(vals) == 3 {
		return Color{vals[0], vals[1], vals[2], 255}, true
	}
	return Color{vals[1], vals[2], vals[3], vals[0]}, true
}
