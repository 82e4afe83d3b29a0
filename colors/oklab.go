package colors

import (
	"math"

	"pixsketch/pixel"
)

// Lab is a colour in the OKLab space, where euclidean distance follows
// perceived difference far better than in sRGB.
//
// https://bottosson.github.io/posts/oklab/
type Lab struct {
	L     float64 // perceived lightness
	A     float64 // how green/red the color is
	B     float64 // how blue/yellow the color is
	Alpha float64 // 0..1
}

// linear maps an 8-bit sRGB channel to linear light.
var linear = func() (t [256]float64) {
	for i := range t {
		x := float64(i) / 255
		if x >= 0.04045 {
			t[i] = math.Pow((x+0.055)/1.055, 2.4)
		} else {
			t[i] = x / 12.92
		}
	}
	return t
}()

// ToLab converts c to OKLab.
func ToLab(c pixel.RGBA) Lab {
	r, g, b := linear[c.R], linear[c.G], linear[c.B]

	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	return Lab{
		L:     0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A:     1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B:     0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
		Alpha: float64(c.A) / 255,
	}
}

// LabPalette matches colours against a palette by OKLab distance.
type LabPalette struct {
	pal Palette
	lab []Lab
}

// NewLabPalette converts every entry of p once.
func NewLabPalette(p Palette) *LabPalette {
	lp := &LabPalette{pal: p, lab: make([]Lab, len(p))}
	for i, c := range p {
		lp.lab[i] = ToLab(c)
	}
	return lp
}

// Index returns the index of the entry perceptually closest to c, or 0 for
// an empty palette.
func (p *LabPalette) Index(c pixel.RGBA) int {
	lc := ToLab(c)
	ret, bestSum := 0, math.MaxFloat64
	for i, v := range p.lab {
		dL := lc.L - v.L
		da := lc.A - v.A
		db := lc.B - v.B
		dA := lc.Alpha - v.Alpha
		sum := dL*dL + da*da + db*db + dA*dA
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

// Nearest returns the entry perceptually closest to c, or c itself for an
// empty palette.
func (p *LabPalette) Nearest(c pixel.RGBA) pixel.RGBA {
	if len(p.pal) == 0 {
		return c
	}
	return p.pal[p.Index(c)]
}
