package pixel

import (
	"fmt"

	"honnef.co/go/safeish"
)

// View reinterprets b as a slice of pixels without copying. The returned
// slice aliases b: writes through either are visible through the other.
// b must hold a whole number of pixels.
func View(b []byte) ([]RGBA, error) {
	if len(b)%Size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrShapeMismatch, len(b), Size)
	}
	if len(b) == 0 {
		return nil, nil
	}
	n := len(b) / Size
	px := safeish.SliceCast[[]RGBA](b)
	return px[:n:n], nil
}

// MustView is like View but panics if b does not hold a whole number of
// pixels.
func MustView(b []byte) []RGBA {
	px, err := View(b)
	if err != nil {
		panic(err)
	}
	return px
}

// ViewBytes reinterprets px as its underlying bytes without copying.
func ViewBytes(px []RGBA) []byte {
	if len(px) == 0 {
		return nil
	}
	n := len(px) * Size
	b := safeish.SliceCast[[]byte](px)
	return b[:n:n]
}

// Put writes c into the first four bytes of b.
func Put(b []byte, c RGBA) {
	_ = b[3]
	b[0], b[1], b[2], b[3] = c.R, c.G, c.B, c.A
}

// Get reads a pixel from the first four bytes of b.
func Get(b []byte) RGBA {
	_ = b[3]
	return RGBA{b[0], b[1], b[2], b[3]}
}
