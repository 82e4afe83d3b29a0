package raster

import (
	"image"
	"iter"
)

// Bresenham steps through the integer points of a line segment, both
// endpoints included. Consecutive points are 8-adjacent and never repeat.
// Points come out in order of increasing major-axis coordinate, whichever
// endpoint was given first.
//
// The zero value yields nothing.
type Bresenham struct {
	cur   image.Point // in (major, minor) axis order
	dx    int         // major axis delta, >= 0
	sy    int         // minor axis step: -1, 0 or 1
	err   int
	derr  int // 2*|dy|
	end   int // last major coordinate, inclusive
	steep bool
	live  bool

	bounded bool
	size    image.Point
}

// NewLine returns a rasterizer for the segment from a to b.
func NewLine(a, b image.Point) *Bresenham {
	l := &Bresenham{}
	l.init(a, b)
	return l
}

// NewLineBounded is like NewLine but skips points outside
// [0, size.X) x [0, size.Y). Points are dropped, not clamped, so a line
// crossing the edge is truncated there.
func NewLineBounded(a, b, size image.Point) *Bresenham {
	l := NewLine(a, b)
	l.bounded = true
	l.size = size
	return l
}

func (l *Bresenham) init(a, b image.Point) {
	l.steep = abs(b.X-a.X) < abs(b.Y-a.Y)
	if l.steep {
		a.X, a.Y = a.Y, a.X
		b.X, b.Y = b.Y, b.X
	}
	if a.X > b.X {
		a, b = b, a
	}

	l.cur = a
	l.dx = b.X - a.X
	l.sy = sign(b.Y - a.Y)
	l.err = 0
	l.derr = 2 * abs(b.Y-a.Y)
	l.end = b.X
	l.live = true
}

// Next returns the next point of the line. ok is false once the line is
// exhausted.
func (l *Bresenham) Next() (p image.Point, ok bool) {
	for l.live && l.cur.X <= l.end {
		p = l.cur
		if l.steep {
			p.X, p.Y = p.Y, p.X
		}

		l.err += l.derr
		if l.err > l.dx {
			l.cur.Y += l.sy
			l.err -= 2 * l.dx
		}
		l.cur.X++

		if !l.bounded || p.In(image.Rectangle{Max: l.size}) {
			return p, true
		}
	}
	l.live = false
	return image.Point{}, false
}

// All returns the remaining points as a sequence.
func (l *Bresenham) All() iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		for {
			p, ok := l.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Line returns the points from a to b. Each range over the result starts
// from a fresh rasterizer.
func Line(a, b image.Point) iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		NewLine(a, b).All()(yield)
	}
}

// LineBounded is the bounded counterpart of Line.
func LineBounded(a, b, size image.Point) iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		NewLineBounded(a, b, size).All()(yield)
	}
}

func abs(v int) int {
	if v >= 0 {
		return v
	}
	return -v
}

func sign(v int) int {
	if v > 0 {
		return +1
	} else if v < 0 {
		return -1
	} else {
		return 0
	}
}
