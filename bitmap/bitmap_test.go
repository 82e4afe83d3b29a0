package bitmap

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/draw"

	"pixsketch/pixel"
)

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Errorf("panic = %v, want %v", r, target)
		}
	}()
	fn()
}

func countColor[ID any](b *Bitmap[ID], c pixel.RGBA) int {
	n := 0
	for _, got := range b.Pixels() {
		if got == c {
			n++
		}
	}
	return n
}

// gradient returns a bitmap where every pixel encodes its own position.
func gradient(size image.Point) *Bitmap[string] {
	b := Alloc("gradient", size)
	for p, c := range b.PixelsMut() {
		*c = pixel.RGBA{R: uint8(p.X), G: uint8(p.Y), B: 7, A: 255}
	}
	return b
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		bytes   int
		size    image.Point
		wantErr error
	}{
		{"exact", 2 * 3 * pixel.Size, image.Pt(2, 3), nil},
		{"empty", 0, image.Pt(0, 0), nil},
		{"zero width", 0, image.Pt(0, 5), nil},
		{"short", 2*3*pixel.Size - 1, image.Pt(2, 3), pixel.ErrShapeMismatch},
		{"long", 2*3*pixel.Size + pixel.Size, image.Pt(2, 3), pixel.ErrShapeMismatch},
		{"negative", 0, image.Pt(-1, 0), pixel.ErrShapeMismatch},
		// the byte count wraps to zero
		{"overflow", 0, image.Pt(math.MaxInt/4+1, 4), pixel.ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := FromBytes(7, make([]byte, tt.bytes), tt.size)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FromBytes() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if b.Size() != tt.size || b.Width() != tt.size.X || b.Height() != tt.size.Y {
				t.Errorf("size = %v (%dx%d), want %v", b.Size(), b.Width(), b.Height(), tt.size)
			}
			if b.Area() != tt.size.X*tt.size.Y {
				t.Errorf("Area() = %d", b.Area())
			}
			if b.ID() != 7 {
				t.Errorf("ID() = %d, want 7", b.ID())
			}
		})
	}
}

func TestAllocBadSize(t *testing.T) {
	for _, size := range []image.Point{{-1, 3}, {3, -1}, {math.MaxInt/4 + 1, 4}, {math.MaxInt, math.MaxInt}} {
		expectPanic(t, pixel.ErrShapeMismatch, func() { Alloc("", size) })
	}
}

func TestFromBytesAliases(t *testing.T) {
	frame := make([]byte, 4*2*pixel.Size)
	b, err := FromBytes(struct{}{}, frame, image.Pt(4, 2))
	if err != nil {
		t.Fatal(err)
	}

	b.SetPixel(image.Pt(3, 1), pixel.Red)
	if got := pixel.Get(frame[(1*4+3)*pixel.Size:]); got != pixel.Red {
		t.Errorf("frame pixel = %v, want %v", got, pixel.Red)
	}

	pixel.Put(frame, pixel.Blue)
	if got := b.Pixel(image.Pt(0, 0)); got != pixel.Blue {
		t.Errorf("Pixel(0,0) = %v, want %v", got, pixel.Blue)
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	b := Alloc("", image.Pt(10, 5))
	for _, p := range []image.Point{{10, 0}, {0, 5}, {-1, 0}, {0, -1}, {100, 100}} {
		expectPanic(t, ErrOutOfBounds, func() { b.Pixel(p) })
		expectPanic(t, ErrOutOfBounds, func() { b.SetPixel(p, pixel.Red) })
	}
}

func TestPen(t *testing.T) {
	b := Alloc("", image.Pt(1, 1))

	if c, ok := b.StrokeColor(); !ok || c != pixel.White {
		t.Errorf("default stroke = %v, %v", c, ok)
	}
	if c, ok := b.FillColor(); !ok || c != pixel.Grey(0x80) {
		t.Errorf("default fill = %v, %v", c, ok)
	}

	b.Stroke(pixel.Red)
	b.Fill(pixel.Blue)
	saved := b.Pen()
	b.NoStroke()
	b.NoFill()
	if _, ok := b.StrokeColor(); ok {
		t.Error("stroke still set after NoStroke")
	}
	if _, ok := b.FillColor(); ok {
		t.Error("fill still set after NoFill")
	}

	b.SetPen(saved)
	if c, _ := b.StrokeColor(); c != pixel.Red {
		t.Errorf("restored stroke = %v", c)
	}
	if c, _ := b.FillColor(); c != pixel.Blue {
		t.Errorf("restored fill = %v", c)
	}
}

func TestNoFillIdempotent(t *testing.T) {
	a := Alloc("", image.Pt(20, 20))
	a.NoFill()
	want := a.Pen()

	b := Alloc("", image.Pt(20, 20))
	b.NoFill()
	b.Fill(pixel.Red)
	b.NoFill()
	if b.Pen() != want {
		t.Fatalf("pen = %+v, want %+v", b.Pen(), want)
	}

	b.NoStroke()
	b.Triangle(image.Pt(0, 0), image.Pt(10, 0), image.Pt(0, 10))
	b.Rect(image.Pt(2, 2), image.Pt(5, 5))
	if n := countColor(b, pixel.Transparent); n != b.Area() {
		t.Errorf("%d pixels drawn with fill and stroke disabled", b.Area()-n)
	}
}

func TestAtUV(t *testing.T) {
	b := gradient(image.Pt(3, 5))
	tests := []struct {
		u, v float64
		want image.Point
	}{
		{0, 0, image.Pt(0, 0)},
		{1, 1, image.Pt(2, 4)},
		{0.5, 0.5, image.Pt(1, 2)},
		{-1, 2, image.Pt(0, 4)},
		{0.99, 0, image.Pt(1, 0)},
	}
	for _, tt := range tests {
		if got, want := b.AtUV(tt.u, tt.v), b.Pixel(tt.want); got != want {
			t.Errorf("AtUV(%v, %v) = %v, want pixel %v = %v", tt.u, tt.v, got, tt.want, want)
		}
	}
}

func TestClone(t *testing.T) {
	b := gradient(image.Pt(4, 4))
	b.Fill(pixel.Red)
	c := b.Clone()

	if c.ID() != b.ID() || c.Pen() != b.Pen() {
		t.Error("Clone() did not keep ID and pen")
	}
	c.SetPixel(image.Pt(1, 1), pixel.Black)
	if b.Pixel(image.Pt(1, 1)) == pixel.Black {
		t.Error("Clone() shares memory with the original")
	}
	if c.Pixel(image.Pt(2, 3)) != b.Pixel(image.Pt(2, 3)) {
		t.Error("Clone() did not copy pixels")
	}

	view := b.SubView(image.Rect(1, 1, 3, 4)).Clone()
	if !view.Writable() {
		t.Error("clone of a view is not writable")
	}
	if got, want := view.Pixel(image.Pt(1, 2)), b.Pixel(image.Pt(2, 3)); got != want {
		t.Errorf("cloned view pixel = %v, want %v", got, want)
	}
}

func TestImageInterop(t *testing.T) {
	b := Alloc("", image.Pt(6, 4))

	if b.Bounds() != image.Rect(0, 0, 6, 4) {
		t.Errorf("Bounds() = %v", b.Bounds())
	}
	if b.At(6, 0) != pixel.Transparent || b.At(-1, 2) != pixel.Transparent {
		t.Error("At() outside bounds is not transparent")
	}

	// out of bounds writes are dropped
	b.Set(-1, 0, color.White)
	b.Set(0, 4, color.White)
	if n := countColor(b, pixel.Transparent); n != b.Area() {
		t.Errorf("Set() outside bounds wrote %d pixels", b.Area()-n)
	}

	draw.Draw(b, image.Rect(2, 1, 4, 3), image.NewUniform(color.NRGBA{R: 10, G: 20, B: 30, A: 255}), image.Point{}, draw.Src)
	want := pixel.RGBA{R: 10, G: 20, B: 30, A: 255}
	if n := countColor(b, want); n != 4 {
		t.Errorf("draw.Draw wrote %d pixels, want 4", n)
	}
	if got := pixel.FromColor(b.At(3, 2)); got != want {
		t.Errorf("At(3, 2) = %v, want %v", got, want)
	}

	nrgba := b.NRGBA()
	nrgba.SetNRGBA(0, 0, color.NRGBA{R: 1, A: 2})
	if got := b.Pixel(image.Pt(0, 0)); got != (pixel.RGBA{R: 1, A: 2}) {
		t.Errorf("NRGBA() does not share memory: %v", got)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	src.SetNRGBA(5, 6, color.NRGBA{R: 9, G: 8, B: 7, A: 6})
	sub := src.SubImage(image.Rect(4, 4, 8, 8))

	b := FromImage("sub", sub)
	if b.Size() != image.Pt(4, 4) || b.ID() != "sub" {
		t.Fatalf("FromImage() = %v %q", b.Size(), b.ID())
	}
	if got := b.Pixel(image.Pt(1, 2)); got != (pixel.RGBA{R: 9, G: 8, B: 7, A: 6}) {
		t.Errorf("pixel = %v", got)
	}

	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(1, 0, color.Gray{Y: 200})
	g := FromImage("gray", gray)
	if got := g.Pixel(image.Pt(1, 0)); got != (pixel.RGBA{R: 200, G: 200, B: 200, A: 255}) {
		t.Errorf("gray pixel = %v", got)
	}
}
