// Package csscolor parses the CSS color strings found in the catalog and
// formats colors back into CSS notation.
package csscolor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// RGBA is a color with an alpha channel. Components are in [0, 1].
type RGBA struct {
	colorful.Color
	A float64
}

// Parse reads a CSS color: hex, rgb()/rgba(), hsl()/hsla(), hwb() or one of
// the 148 named colors. Keywords without a fixed value, such as
// currentColor, do not parse.
func Parse(s string) (RGBA, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(strings.ToLower(s), "!important") {
		s = strings.TrimSpace(s[:len(s)-len("!important")])
	}
	if s == "" {
		return RGBA{}, false
	}

	c, err := csscolorparser.Parse(s)
	if err != nil {
		return RGBA{}, false
	}
	return RGBA{Color: colorful.Color{R: c.R, G: c.G, B: c.B}, A: c.A}, true
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func (c RGBA) Hex() string {
	if c.A >= 1 {
		return c.Clamped().Hex()
	}
	return fmt.Sprintf("%s%02x", c.Clamped().Hex(), uint8(math.Round(clamp(c.A)*255)))
}

// RGBString formats c as rgb() or rgba().
func (c RGBA) RGBString() string {
	r, g, b := c.Clamped().RGB255()
	if c.A >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(round(c.A, 2), 'f', -1, 64))
}

// HSLString formats c as hsl() or hsla().
func (c RGBA) HSLString() string {
	h, s, l := c.Clamped().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	hs := fmt.Sprintf("%d, %d%%, %d%%", int(math.Round(h)), int(math.Round(s*100)), int(math.Round(l*100)))
	if c.A >= 1 {
		return "hsl(" + hs + ")"
	}
	return fmt.Sprintf("hsla(%s, %s)", hs, strconv.FormatFloat(round(c.A, 2), 'f', -1, 64))
}

// Presentations returns the CSS notations offered when a user edits a color.
func (c RGBA) Presentations() []string {
	return []string{c.Hex(), c.RGBString(), c.HSLString()}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
