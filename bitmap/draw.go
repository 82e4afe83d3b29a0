package bitmap

import (
	"image"

	"pixsketch/pixel"
	"pixsketch/raster"
)

// Background sets every pixel to c, ignoring the pen.
func (b *Bitmap[ID]) Background(c pixel.RGBA) {
	buf := b.writable()
	if b.Area() == 0 {
		return
	}

	if flat, ok := buf.(pixel.FlatMut); ok {
		raster.Fill(pixel.MustView(flat.FlatMut()), c)
		return
	}

	w := b.size.X
	raster.Fill(pixel.RowPixelsMut(buf, 0, w), c)
	first := buf.RowMut(0, w)
	for y := 1; y < b.size.Y; y++ {
		copy(buf.RowMut(y, w), first)
	}
}

// Clear sets every pixel to c.
func (b *Bitmap[ID]) Clear(c pixel.RGBA) {
	b.Background(c)
}

// Line draws a one pixel wide line from p0 to p1, both inclusive, in the
// stroke colour. Points outside the bitmap are skipped. Nothing is drawn
// without a stroke.
func (b *Bitmap[ID]) Line(p0, p1 image.Point) {
	c, ok := b.StrokeColor()
	if !ok {
		return
	}
	buf := b.writable()
	for p := range raster.LineBounded(p0, p1, b.size) {
		plot(buf, b.size.X, p, c)
	}
}

// Triangle fills the triangle p0 p1 p2 with the fill colour, then outlines
// it with the stroke colour. Either part is skipped when unset. A degenerate
// triangle has no interior but still gets its outline.
func (b *Bitmap[ID]) Triangle(p0, p1, p2 image.Point) {
	if c, ok := b.FillColor(); ok {
		buf := b.writable()
		for p := range raster.TriangleBounded(p0, p1, p2, b.size) {
			plot(buf, b.size.X, p, c)
		}
	}

	if _, ok := b.StrokeColor(); ok {
		b.Line(p0, p1)
		b.Line(p1, p2)
		b.Line(p2, p0)
	}
}

// Rect draws the axis-aligned rectangle at pos of the given size, clipped to
// the bitmap. The fill covers [pos, pos+size). The outline is drawn along
// the clipped rectangle's corners, so its right and bottom edges fall one
// pixel outside the fill.
func (b *Bitmap[ID]) Rect(pos, size image.Point) {
	r := image.Rectangle{Min: pos, Max: pos.Add(size)}.Intersect(b.Bounds())
	if r.Empty() {
		return
	}

	if c, ok := b.FillColor(); ok {
		buf := b.writable()
		w := b.size.X
		first := pixel.RowPixelsMut(buf, r.Min.Y, w)[r.Min.X:r.Max.X]
		raster.Fill(first, c)
		for y := r.Min.Y + 1; y < r.Max.Y; y++ {
			copy(pixel.RowPixelsMut(buf, y, w)[r.Min.X:r.Max.X], first)
		}
	}

	if _, ok := b.StrokeColor(); ok {
		tl, br := r.Min, r.Max
		tr, bl := image.Pt(br.X, tl.Y), image.Pt(tl.X, br.Y)
		b.Line(tl, tr)
		b.Line(bl, br)
		b.Line(tl, bl)
		b.Line(tr, br)
	}
}

func plot(buf pixel.BufMut, width int, p image.Point, c pixel.RGBA) {
	pixel.Put(buf.RowMut(p.Y, width)[p.X*pixel.Size:], c)
}
