package bitmap

import (
	"image"
	"iter"

	"pixsketch/parallel"
	"pixsketch/pixel"
)

// Pixels yields every pixel with its position, row by row.
func (b *Bitmap[ID]) Pixels() iter.Seq2[image.Point, pixel.RGBA] {
	return func(yield func(image.Point, pixel.RGBA) bool) {
		for y := range b.size.Y {
			for x, c := range b.Row(y) {
				if !yield(image.Pt(x, y), c) {
					return
				}
			}
		}
	}
}

// PixelsMut yields a pointer to every pixel with its position, row by row.
// Writes through the pointer land in the storage.
func (b *Bitmap[ID]) PixelsMut() iter.Seq2[image.Point, *pixel.RGBA] {
	return func(yield func(image.Point, *pixel.RGBA) bool) {
		for y := range b.size.Y {
			row := b.RowMut(y)
			for x := range row {
				if !yield(image.Pt(x, y), &row[x]) {
					return
				}
			}
		}
	}
}

// ParallelPixels calls fn for every pixel, spread over workers goroutines
// (GOMAXPROCS when workers < 1) started for the call. Calls happen in no
// particular order. Storage that is not contiguous is walked sequentially.
func (b *Bitmap[ID]) ParallelPixels(workers int, fn func(p image.Point, c pixel.RGBA)) {
	pool := parallel.Start(workers)
	defer pool.Wait(true)
	b.ParallelPixelsOn(pool, fn)
}

// ParallelPixelsOn is like ParallelPixels but runs on an existing pool,
// which stays open. It must not be called from one of the pool's workers.
func (b *Bitmap[ID]) ParallelPixelsOn(pool *parallel.Pool, fn func(p image.Point, c pixel.RGBA)) {
	px, ok := b.Flat()
	if !ok {
		for p, c := range b.Pixels() {
			fn(p, c)
		}
		return
	}

	w := b.size.X
	pool.ForSpans(len(px), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(image.Pt(i%w, i/w), px[i])
		}
	})
}

// ParallelPixelsMut is like ParallelPixels but hands out a pointer to each
// pixel. fn must only write through the pointer it was given.
func (b *Bitmap[ID]) ParallelPixelsMut(workers int, fn func(p image.Point, c *pixel.RGBA)) {
	pool := parallel.Start(workers)
	defer pool.Wait(true)
	b.ParallelPixelsMutOn(pool, fn)
}

// ParallelPixelsMutOn is ParallelPixelsMut on an existing pool.
func (b *Bitmap[ID]) ParallelPixelsMutOn(pool *parallel.Pool, fn func(p image.Point, c *pixel.RGBA)) {
	buf := b.writable()
	flat, ok := buf.(pixel.FlatMut)
	if !ok {
		for p, c := range b.PixelsMut() {
			fn(p, c)
		}
		return
	}

	px := pixel.MustView(flat.FlatMut())
	w := b.size.X
	pool.ForSpans(len(px), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(image.Pt(i%w, i/w), &px[i])
		}
	})
}
