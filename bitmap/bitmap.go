// Package bitmap implements a fixed-size 2D pixel buffer with immediate-mode
// drawing: a current stroke and fill colour (the pen) and operations that
// rasterize lines, triangles, rectangles and other bitmaps into it.
//
// A Bitmap wraps storage it does not resize. Wrap a host's frame buffer with
// FromBytes once per frame, or allocate an owned one with Alloc. Drawing
// mutates the storage in place.
//
// Thread safety: a Bitmap is not safe for concurrent use. The ParallelPixels
// family splits the work internally over disjoint pixels.
package bitmap

import (
	"errors"
	"fmt"
	"image"

	"pixsketch/pixel"
)

var (
	// ErrOutOfBounds is the panic value (wrapped) for direct pixel access
	// outside the bitmap.
	ErrOutOfBounds = errors.New("bitmap: position out of bounds")

	// ErrReadOnly is the panic value for drawing into storage that does not
	// implement pixel.BufMut, such as a chunk view.
	ErrReadOnly = errors.New("bitmap: storage is read-only")
)

// Bitmap is a width x height grid of RGBA pixels over some storage, plus the
// pen used by the drawing operations. ID identifies the bitmap to its owner
// (a canvas handle, a file name, a chunk origin) and is never interpreted.
type Bitmap[ID any] struct {
	id   ID
	buf  pixel.Buf
	size image.Point
	pen  Pen
}

// Image is an owned bitmap, usually decoded from a file. Its ID is a name.
type Image = Bitmap[string]

// Raster is anything that can be blitted: a size and row storage.
type Raster interface {
	Size() image.Point
	Storage() pixel.Buf
}

var _ Raster = (*Bitmap[int])(nil)

// New wraps buf as a bitmap of the given size with the default pen. It fails
// with pixel.ErrShapeMismatch unless buf holds exactly size.X*size.Y pixels.
func New[ID any](id ID, buf pixel.Buf, size image.Point) (*Bitmap[ID], error) {
	if err := pixel.Check(buf, size); err != nil {
		return nil, err
	}
	return &Bitmap[ID]{
		id:   id,
		buf:  buf,
		size: size,
		pen:  DefaultPen(),
	}, nil
}

// MustNew is like New but panics on a shape mismatch.
func MustNew[ID any](id ID, buf pixel.Buf, size image.Point) *Bitmap[ID] {
	b, err := New(id, buf, size)
	if err != nil {
		panic(err)
	}
	return b
}

// FromBytes wraps a raw RGBA byte buffer, such as a host frame buffer,
// without copying.
func FromBytes[ID any](id ID, b []byte, size image.Point) (*Bitmap[ID], error) {
	return New(id, pixel.Bytes(b), size)
}

// Alloc returns a bitmap over freshly allocated, zeroed storage. It panics
// with pixel.ErrShapeMismatch for a negative or oversized size.
func Alloc[ID any](id ID, size image.Point) *Bitmap[ID] {
	return MustNew(id, pixel.Alloc(size), size)
}

// ID returns the bitmap's identifier.
func (b *Bitmap[ID]) ID() ID { return b.id }

// Size returns the width and height in pixels.
func (b *Bitmap[ID]) Size() image.Point { return b.size }

// Width returns the width in pixels.
func (b *Bitmap[ID]) Width() int { return b.size.X }

// Height returns the height in pixels.
func (b *Bitmap[ID]) Height() int { return b.size.Y }

// Area returns width*height.
func (b *Bitmap[ID]) Area() int { return b.size.X * b.size.Y }

// Storage returns the underlying pixel storage.
func (b *Bitmap[ID]) Storage() pixel.Buf { return b.buf }

// Writable reports whether the drawing operations may be used.
func (b *Bitmap[ID]) Writable() bool {
	_, ok := b.buf.(pixel.BufMut)
	return ok
}

// Flat returns the whole pixel area as one slice when the storage is
// contiguous.
func (b *Bitmap[ID]) Flat() ([]pixel.RGBA, bool) {
	f, ok := b.buf.(pixel.Flat)
	if !ok {
		return nil, false
	}
	return pixel.MustView(f.Flat()), true
}

// Row returns row y as pixels.
func (b *Bitmap[ID]) Row(y int) []pixel.RGBA {
	return pixel.RowPixels(b.buf, y, b.size.X)
}

// RowMut returns row y as writable pixels.
func (b *Bitmap[ID]) RowMut(y int) []pixel.RGBA {
	return pixel.RowPixelsMut(b.writable(), y, b.size.X)
}

func (b *Bitmap[ID]) writable() pixel.BufMut {
	w, ok := b.buf.(pixel.BufMut)
	if !ok {
		panic(ErrReadOnly)
	}
	return w
}

func (b *Bitmap[ID]) mustContain(p image.Point) {
	if !p.In(b.Bounds()) {
		panic(fmt.Errorf("%w: %v outside %dx%d", ErrOutOfBounds, p, b.size.X, b.size.Y))
	}
}

// Pixel returns the pixel at p. It panics if p is outside the bitmap.
func (b *Bitmap[ID]) Pixel(p image.Point) pixel.RGBA {
	b.mustContain(p)
	return b.Row(p.Y)[p.X]
}

// SetPixel sets the pixel at p to c, ignoring the pen. It panics if p is
// outside the bitmap.
func (b *Bitmap[ID]) SetPixel(p image.Point, c pixel.RGBA) {
	b.mustContain(p)
	b.RowMut(p.Y)[p.X] = c
}

// AtUV samples the bitmap at normalized coordinates, (0, 0) being the
// top-left pixel and (1, 1) the bottom-right one. Coordinates are clamped to
// [0, 1].
func (b *Bitmap[ID]) AtUV(u, v float64) pixel.RGBA {
	u, v = min(max(u, 0), 1), min(max(v, 0), 1)
	x := int(u * float64(b.size.X-1))
	y := int(v * float64(b.size.Y-1))
	return b.Pixel(image.Pt(x, y))
}

// Clone returns a copy of b over owned contiguous storage, with the same ID
// and pen.
func (b *Bitmap[ID]) Clone() *Bitmap[ID] {
	buf := pixel.Alloc(b.size)
	for y := range b.size.Y {
		copy(buf.RowMut(y, b.size.X), b.buf.Row(y, b.size.X))
	}
	return &Bitmap[ID]{id: b.id, buf: buf, size: b.size, pen: b.pen}
}

// SubView returns a read-only view of the region r of b, which must lie
// within b unless it is empty. The view shares b's memory; its ID is r.Min.
func (b *Bitmap[ID]) SubView(r image.Rectangle) *Bitmap[image.Point] {
	r = canon(r)
	rows := b.subRows(r, b.buf.Row)
	buf, err := pixel.NewRows(rows, r.Dx())
	if err != nil {
		panic(err)
	}
	return MustNew(r.Min, buf, r.Size())
}

// SubViewMut is like SubView but the view can be drawn into. Views of
// disjoint regions may be written concurrently.
func (b *Bitmap[ID]) SubViewMut(r image.Rectangle) *Bitmap[image.Point] {
	r = canon(r)
	rows := b.subRows(r, b.writable().RowMut)
	buf, err := pixel.NewRowsMut(rows, r.Dx())
	if err != nil {
		panic(err)
	}
	return MustNew(r.Min, buf, r.Size())
}

// canon pulls Max up to Min on any axis where it lies below, so an inverted
// rectangle becomes an empty one anchored at Min.
func canon(r image.Rectangle) image.Rectangle {
	r.Max.X = max(r.Max.X, r.Min.X)
	r.Max.Y = max(r.Max.Y, r.Min.Y)
	return r
}

func (b *Bitmap[ID]) subRows(r image.Rectangle, row func(y, width int) []byte) [][]byte {
	if r.Empty() {
		return nil
	}
	if !r.In(b.Bounds()) {
		panic(fmt.Errorf("%w: %v outside %dx%d", ErrOutOfBounds, r, b.size.X, b.size.Y))
	}

	rows := make([][]byte, r.Dy())
	for i := range rows {
		rows[i] = row(r.Min.Y+i, b.size.X)[r.Min.X*pixel.Size : r.Max.X*pixel.Size]
	}
	return rows
}
