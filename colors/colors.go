// Package colors turns colour literals into pixels: CSS colour names, hex
// notation and RIFF palette files.
package colors

import (
	"fmt"
	"strings"

	"golang.org/x/image/colornames"

	"pixsketch/pixel"
)

// Named returns the CSS/SVG colour called name, matched case-insensitively.
func Named(name string) (pixel.RGBA, bool) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return pixel.RGBA{}, false
	}
	return pixel.RGBA(c), true
}

// MustNamed is like Named but panics on an unknown name. It is meant for
// colour literals in sketches.
func MustNamed(name string) pixel.RGBA {
	c, ok := Named(name)
	if !ok {
		panic(fmt.Sprintf("colors: unknown colour %q", name))
	}
	return c
}

// Parse reads a colour as #RGB, #RGBA, #RRGGBB, #RRGGBBAA or a CSS name.
func Parse(s string) (pixel.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		if c, ok := Named(s); ok {
			return c, nil
		}
		return pixel.RGBA{}, fmt.Errorf("unknown colour %q, should be #RGB, #RGBA, #RRGGBB, #RRGGBBAA or a colour name", s)
	}

	var (
		c   pixel.RGBA
		n   int
		err error
	)
	switch len(s) {
	case 4:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A = 0xFF
	case 5:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x%1x", &c.R, &c.G, &c.B, &c.A)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		c.A = 0xFF
	case 9:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		return pixel.RGBA{}, fmt.Errorf("invalid colour %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	if err != nil {
		return pixel.RGBA{}, fmt.Errorf("could not read colour %q: %w", s, err)
	} else if n < 3 {
		return pixel.RGBA{}, fmt.Errorf("insufficient colour fields in %q: %d", s, n)
	}
	return c, nil
}
