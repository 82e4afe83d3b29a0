package raster

import (
	"image"
	"iter"
	"math"
)

// Barycentric holds the barycentric coordinates of a point relative to a
// triangle (a, b, c): U weighs a, V weighs b and W weighs c. They sum to 1.
type Barycentric struct {
	U, V, W float64
}

// Lerp interpolates three per-vertex values with the coordinates.
func (b Barycentric) Lerp(a, bv, c float64) float64 {
	return b.U*a + b.V*bv + b.W*c
}

// edges returns the integer numerators of (u, v, w) and their common
// denominator, twice the signed area of the triangle.
func edges(p, a, b, c image.Point) (nu, nv, nw, den int) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)

	den = v0.X*v1.Y - v1.X*v0.Y
	nv = v2.X*v1.Y - v1.X*v2.Y
	nw = v0.X*v2.Y - v2.X*v0.Y
	nu = den - nv - nw
	return nu, nv, nw, den
}

// BarycentricOf returns the barycentric coordinates of p in triangle
// (a, b, c). ok is false for a zero-area triangle, which has none.
func BarycentricOf(p, a, b, c image.Point) (bc Barycentric, ok bool) {
	nu, nv, nw, den := edges(p, a, b, c)
	if den == 0 {
		return Barycentric{}, false
	}
	d := 1 / float64(den)
	return Barycentric{U: float64(nu) * d, V: float64(nv) * d, W: float64(nw) * d}, true
}

// Triangle walks the bounding box of a triangle in row-major order and
// yields the points on or inside it, along with their barycentric
// coordinates. Containment is decided on exact integer edge functions, so
// points on a shared edge are never lost to rounding.
//
// Zero-area triangles yield nothing. The zero value yields nothing.
type Triangle struct {
	pts    [3]image.Point
	cur    image.Point
	lo, hi image.Point
	live   bool
}

// NewTriangle returns an unclipped rasterizer for triangle (a, b, c).
func NewTriangle(a, b, c image.Point) *Triangle {
	lo, hi := a, a
	for _, v := range [...]image.Point{b, c} {
		lo.X, lo.Y = min(lo.X, v.X), min(lo.Y, v.Y)
		hi.X, hi.Y = max(hi.X, v.X), max(hi.Y, v.Y)
	}
	return newTriangle([3]image.Point{a, b, c}, lo, hi)
}

// NewTriangleBounded is like NewTriangle but clamps the bounding box to
// [0, size.X-1] x [0, size.Y-1].
func NewTriangleBounded(a, b, c, size image.Point) *Triangle {
	t := NewTriangle(a, b, c)
	t.lo.X, t.lo.Y = max(t.lo.X, 0), max(t.lo.Y, 0)
	t.hi.X, t.hi.Y = min(t.hi.X, size.X-1), min(t.hi.Y, size.Y-1)
	t.cur = t.lo
	t.live = t.live && t.lo.X <= t.hi.X && t.lo.Y <= t.hi.Y
	return t
}

func newTriangle(pts [3]image.Point, lo, hi image.Point) *Triangle {
	_, _, _, den := edges(pts[0], pts[0], pts[1], pts[2])
	return &Triangle{
		pts:  pts,
		cur:  lo,
		lo:   lo,
		hi:   hi,
		live: den != 0,
	}
}

// Bounds returns the scanned bounding box, inclusive of hi.
func (t *Triangle) Bounds() (lo, hi image.Point) {
	return t.lo, t.hi
}

// Next returns the next covered point. ok is false once the bounding box is
// exhausted.
func (t *Triangle) Next() (p image.Point, bc Barycentric, ok bool) {
	a, b, c := t.pts[0], t.pts[1], t.pts[2]
	for t.live && t.cur.Y <= t.hi.Y {
		p = t.cur

		t.cur.X++
		if t.cur.X > t.hi.X {
			t.cur.X = t.lo.X
			t.cur.Y++
		}

		nu, nv, nw, den := edges(p, a, b, c)
		if den < 0 {
			nu, nv, nw, den = -nu, -nv, -nw, -den
		}
		if nu >= 0 && nv >= 0 && nw >= 0 {
			d := 1 / float64(den)
			return p, Barycentric{U: float64(nu) * d, V: float64(nv) * d, W: float64(nw) * d}, true
		}
	}
	t.live = false
	return image.Point{}, Barycentric{}, false
}

// All returns the remaining covered points as a sequence.
func (t *Triangle) All() iter.Seq2[image.Point, Barycentric] {
	return func(yield func(image.Point, Barycentric) bool) {
		for {
			p, bc, ok := t.Next()
			if !ok || !yield(p, bc) {
				return
			}
		}
	}
}

// TriangleBounded returns the points of triangle (a, b, c) that fall inside
// [0, size.X) x [0, size.Y). Each range starts from a fresh rasterizer.
func TriangleBounded(a, b, c, size image.Point) iter.Seq2[image.Point, Barycentric] {
	return func(yield func(image.Point, Barycentric) bool) {
		NewTriangleBounded(a, b, c, size).All()(yield)
	}
}

// Area returns the exact area of triangle (a, b, c).
func Area(a, b, c image.Point) float64 {
	_, _, _, den := edges(a, a, b, c)
	return math.Abs(float64(den)) / 2
}
