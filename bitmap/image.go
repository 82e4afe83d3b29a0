package bitmap

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"pixsketch/pixel"
)

var _ draw.Image = (*Bitmap[struct{}])(nil)

// Bounds returns the rectangle from (0, 0) to the bitmap's size.
func (b *Bitmap[ID]) Bounds() image.Rectangle {
	return image.Rectangle{Max: b.size}
}

// ColorModel returns pixel.Model (non-premultiplied 8-bit RGBA).
func (b *Bitmap[ID]) ColorModel() color.Model {
	return pixel.Model
}

// At returns the colour at (x, y), or transparent black outside the bitmap.
func (b *Bitmap[ID]) At(x, y int) color.Color {
	p := image.Pt(x, y)
	if !p.In(b.Bounds()) {
		return pixel.Transparent
	}
	return b.Row(y)[x]
}

// Set sets the pixel at (x, y) to c, converted to 8-bit non-premultiplied
// RGBA. Positions outside the bitmap are ignored.
func (b *Bitmap[ID]) Set(x, y int, c color.Color) {
	p := image.Pt(x, y)
	if !p.In(b.Bounds()) {
		return
	}
	b.RowMut(y)[x] = pixel.FromColor(c)
}

// NRGBA returns the bitmap as an *image.NRGBA. Contiguous storage is shared,
// so writes to either side are visible to the other. Any other storage is
// copied.
func (b *Bitmap[ID]) NRGBA() *image.NRGBA {
	if f, ok := b.buf.(pixel.Flat); ok {
		return &image.NRGBA{
			Pix:    f.Flat(),
			Stride: b.size.X * pixel.Size,
			Rect:   b.Bounds(),
		}
	}
	return b.Clone().NRGBA()
}

// FromImage converts any image to an owned bitmap named id. The result's
// origin is src's Bounds().Min.
func FromImage(id string, src image.Image) *Image {
	r := src.Bounds()
	dst := Alloc(id, r.Size())
	if nrgba, ok := src.(*image.NRGBA); ok {
		for y := range r.Dy() {
			off := nrgba.PixOffset(r.Min.X, r.Min.Y+y)
			copy(dst.RowMut(y), pixel.MustView(nrgba.Pix[off:off+r.Dx()*pixel.Size]))
		}
		return dst
	}
	draw.Draw(dst.NRGBA(), dst.Bounds(), src, r.Min, draw.Src)
	return dst
}
