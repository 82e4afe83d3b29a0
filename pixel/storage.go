package pixel

import (
	"fmt"
	"image"
	"math"
)

// Buf is pixel storage with row access. The whole buffer does not have to be
// contiguous, but every row is.
//
// Row must return exactly width*Size bytes for every valid row index, panic
// for an invalid one, and never return overlapping memory for two different
// rows.
type Buf interface {
	// Len returns the number of pixel bytes reachable through the buffer.
	Len() int
	// Row returns the raw bytes of row y.
	Row(y, width int) []byte
}

// BufMut is pixel storage whose rows can be written.
type BufMut interface {
	Buf
	// RowMut returns the raw bytes of row y for writing.
	RowMut(y, width int) []byte
}

// Flat is storage known to be a single contiguous row-major block.
type Flat interface {
	Buf
	Flat() []byte
}

// FlatMut is writable contiguous storage. It unlocks whole-buffer fills and
// parallel iteration.
type FlatMut interface {
	BufMut
	Flat
	FlatMut() []byte
}

// Bytes is contiguous row-major storage, either owned (freshly allocated) or
// borrowed from a host frame buffer.
type Bytes []byte

var _ FlatMut = Bytes(nil)

// ByteLen returns the number of bytes needed for size.X by size.Y pixels.
// The error wraps ErrShapeMismatch for a negative size or one whose byte
// count does not fit in an int.
func ByteLen(size image.Point) (int, error) {
	if size.X < 0 || size.Y < 0 {
		return 0, fmt.Errorf("%w: negative size %v", ErrShapeMismatch, size)
	}
	if size.X != 0 && size.Y > math.MaxInt/Size/size.X {
		return 0, fmt.Errorf("%w: size %v overflows", ErrShapeMismatch, size)
	}
	return size.X * size.Y * Size, nil
}

// Alloc returns zeroed storage for size.X by size.Y pixels. It panics if
// ByteLen rejects size.
func Alloc(size image.Point) Bytes {
	n, err := ByteLen(size)
	if err != nil {
		panic(err)
	}
	return make(Bytes, n)
}

// Len implements Buf.
func (b Bytes) Len() int { return len(b) }

// Row implements Buf.
func (b Bytes) Row(y, width int) []byte {
	stride := width * Size
	return b[y*stride : (y+1)*stride : (y+1)*stride]
}

// RowMut implements BufMut.
func (b Bytes) RowMut(y, width int) []byte { return b.Row(y, width) }

// Flat implements Flat.
func (b Bytes) Flat() []byte { return b }

// FlatMut implements FlatMut.
func (b Bytes) FlatMut() []byte { return b }

// Rows is row-sparse read-only storage: a list of row slices that need not be
// adjacent in memory, such as the rows of a sub-region of a larger buffer.
type Rows struct {
	rows  [][]byte
	width int
}

var _ Buf = (*Rows)(nil)

// NewRows wraps rows as storage for rows of width pixels. Every row must be
// exactly width*Size bytes long.
func NewRows(rows [][]byte, width int) (*Rows, error) {
	for i, r := range rows {
		if len(r) != width*Size {
			return nil, fmt.Errorf("%w: row %d has %d bytes, want %d", ErrShapeMismatch, i, len(r), width*Size)
		}
	}
	return &Rows{rows: rows, width: width}, nil
}

// Len implements Buf.
func (r *Rows) Len() int { return len(r.rows) * r.width * Size }

// Row implements Buf.
func (r *Rows) Row(y, width int) []byte {
	if width != r.width {
		panic(fmt.Sprintf("pixel: row width %d requested from storage of width %d", width, r.width))
	}
	row := r.rows[y]
	return row[:len(row):len(row)]
}

// RowsMut is writable row-sparse storage. The rows must not overlap.
type RowsMut struct {
	Rows
}

var _ BufMut = (*RowsMut)(nil)

// NewRowsMut is like NewRows for rows that may be written.
func NewRowsMut(rows [][]byte, width int) (*RowsMut, error) {
	r, err := NewRows(rows, width)
	if err != nil {
		return nil, err
	}
	return &RowsMut{Rows: *r}, nil
}

// RowMut implements BufMut.
func (r *RowsMut) RowMut(y, width int) []byte { return r.Row(y, width) }

// Check reports whether buf holds exactly size.X by size.Y pixels.
func Check(buf Buf, size image.Point) error {
	want, err := ByteLen(size)
	if err != nil {
		return err
	}
	if buf.Len() != want {
		return fmt.Errorf("%w: storage has %d bytes, %dx%d needs %d", ErrShapeMismatch, buf.Len(), size.X, size.Y, want)
	}
	return nil
}

// RowPixels returns row y of buf as pixels.
func RowPixels(buf Buf, y, width int) []RGBA {
	return MustView(buf.Row(y, width))
}

// RowPixelsMut returns row y of buf as writable pixels.
func RowPixelsMut(buf BufMut, y, width int) []RGBA {
	return MustView(buf.RowMut(y, width))
}
