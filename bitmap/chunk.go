package bitmap

import (
	"image"
	"iter"
)

// Chunks yields the non-overlapping size.X x size.Y tiles of b in row-major
// order. Trailing pixels that do not fill a whole tile are not covered. Each
// tile is a read-only view sharing b's memory, identified by its top-left
// corner.
func (b *Bitmap[ID]) Chunks(size image.Point) iter.Seq[*Bitmap[image.Point]] {
	return b.OverlappingChunks(size, size)
}

// Windows yields every size.X x size.Y window of b, stepping by one pixel.
func (b *Bitmap[ID]) Windows(size image.Point) iter.Seq[*Bitmap[image.Point]] {
	return b.OverlappingChunks(size, image.Pt(1, 1))
}

// OverlappingChunks yields the size.X x size.Y views of b whose top-left
// corners lie on a step grid, for as long as the view fits. A non-positive
// size or step yields nothing.
func (b *Bitmap[ID]) OverlappingChunks(size, step image.Point) iter.Seq[*Bitmap[image.Point]] {
	return func(yield func(*Bitmap[image.Point]) bool) {
		if size.X <= 0 || size.Y <= 0 || step.X <= 0 || step.Y <= 0 {
			return
		}
		for y := 0; y+size.Y <= b.size.Y; y += step.Y {
			for x := 0; x+size.X <= b.size.X; x += step.X {
				p := image.Pt(x, y)
				if !yield(b.SubView(image.Rectangle{Min: p, Max: p.Add(size)})) {
					return
				}
			}
		}
	}
}

// ChunkCount returns how many views OverlappingChunks(size, step) yields, as
// columns and rows.
func (b *Bitmap[ID]) ChunkCount(size, step image.Point) image.Point {
	if size.X <= 0 || size.Y <= 0 || step.X <= 0 || step.Y <= 0 {
		return image.Point{}
	}
	count := func(total, size, step int) int {
		if total < size {
			return 0
		}
		return (total-size)/step + 1
	}
	return image.Pt(count(b.size.X, size.X, step.X), count(b.size.Y, size.Y, step.Y))
}
