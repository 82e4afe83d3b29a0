package bitmap

import (
	"image"

	"pixsketch/pixel"
)

// Image copies src into b with src's top-left corner at pos, row by row,
// clipped to b on every side. Pixels are replaced, not blended. The pen is
// not used. src must not share memory with b.
func (b *Bitmap[ID]) Image(src Raster, pos image.Point) {
	ss, ds := src.Size(), b.size

	lo := image.Pt(clamp(-pos.X, 0, ss.X), clamp(-pos.Y, 0, ss.Y))
	hi := image.Pt(min(ss.X, ds.X-pos.X), min(ss.Y, ds.Y-pos.Y))
	if hi.X <= lo.X || hi.Y <= lo.Y {
		return
	}

	sbuf, dbuf := src.Storage(), b.writable()
	for y := lo.Y; y < hi.Y; y++ {
		s := sbuf.Row(y, ss.X)[lo.X*pixel.Size : hi.X*pixel.Size]
		d := dbuf.RowMut(y+pos.Y, ds.X)[(lo.X+pos.X)*pixel.Size:]
		copy(d, s)
	}
}

// Paste is an older name for Image.
//
// Deprecated: use Image.
func (b *Bitmap[ID]) Paste(src Raster, pos image.Point) {
	b.Image(src, pos)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
