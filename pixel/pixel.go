// Package pixel defines the 4-byte RGBA pixel, the checked zero-copy views
// between raw bytes and pixels, and the storage contract bitmaps are built on.
package pixel

import (
	"errors"
	"image/color"
)

// Size is the number of bytes in one pixel.
const Size = 4

// ErrShapeMismatch is returned when a byte buffer cannot hold a whole number
// of pixels, or when its length does not match the requested dimensions.
var ErrShapeMismatch = errors.New("pixel: shape mismatch")

// RGBA is a straight (non-premultiplied) 8-bit colour, laid out in memory as
// R, G, B, A. It has the same layout as color.NRGBA.
type RGBA struct {
	R, G, B, A uint8
}

var _ color.Color = RGBA{}

// Common colours.
var (
	Transparent = RGBA{}
	Black       = RGBA{0x00, 0x00, 0x00, 0xff}
	White       = RGBA{0xff, 0xff, 0xff, 0xff}
	Red         = RGBA{0xff, 0x00, 0x00, 0xff}
	Green       = RGBA{0x00, 0xff, 0x00, 0xff}
	Blue        = RGBA{0x00, 0x00, 0xff, 0xff}
)

// Grey returns an opaque grey with all three channels set to v.
func Grey(v uint8) RGBA {
	return RGBA{v, v, v, 0xff}
}

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// NRGBA returns c as a color.NRGBA.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA(c)
}

// FromColor converts any colour to a straight RGBA pixel.
func FromColor(c color.Color) RGBA {
	if px, ok := c.(RGBA); ok {
		return px
	}
	return RGBA(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// Model converts colours to RGBA.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})
