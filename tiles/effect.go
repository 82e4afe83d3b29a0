// Package tiles implements tile based picture effects on top of the bitmap
// chunk iterators, and the command that applies them to a folder.
package tiles

import (
	"image"

	"pixsketch/bitmap"
	"pixsketch/colors"
	"pixsketch/pixel"
)

// Mosaic paints every whole tile of src with its average colour. Pixels
// past the last whole tile keep their colour.
func Mosaic(src *bitmap.Image, tile int) *bitmap.Image {
	dst := src.Clone()
	size := image.Pt(tile, tile)
	dst.NoStroke()
	for chunk := range src.Chunks(size) {
		dst.Fill(average(chunk))
		dst.Rect(chunk.ID(), size)
	}
	return dst
}

// Blur replaces every pixel at least radius pixels away from the border by
// the average of the square window centred on it.
func Blur(src *bitmap.Image, radius int) *bitmap.Image {
	dst := src.Clone()
	if radius < 1 {
		return dst
	}
	k := 2*radius + 1
	centre := image.Pt(radius, radius)
	for win := range src.Windows(image.Pt(k, k)) {
		dst.SetPixel(win.ID().Add(centre), average(win))
	}
	return dst
}

// Smooth averages overlapping tiles: each pixel becomes the mean of the
// averages of every tile covering it. Uncovered pixels keep their colour.
func Smooth(src *bitmap.Image, tile, step, workers int) *bitmap.Image {
	size := src.Size()
	sums := make([][4]int, size.X*size.Y)
	counts := make([]int, size.X*size.Y)

	for chunk := range src.OverlappingChunks(image.Pt(tile, tile), image.Pt(step, step)) {
		avg := average(chunk)
		origin := chunk.ID()
		for p := range chunk.Pixels() {
			i := (origin.Y+p.Y)*size.X + origin.X + p.X
			sums[i][0] += int(avg.R)
			sums[i][1] += int(avg.G)
			sums[i][2] += int(avg.B)
			sums[i][3] += int(avg.A)
			counts[i]++
		}
	}

	dst := src.Clone()
	dst.ParallelPixelsMut(workers, func(p image.Point, c *pixel.RGBA) {
		i := p.Y*size.X + p.X
		n := counts[i]
		if n == 0 {
			return
		}
		s := sums[i]
		*c = pixel.RGBA{
			R: uint8((s[0] + n/2) / n),
			G: uint8((s[1] + n/2) / n),
			B: uint8((s[2] + n/2) / n),
			A: uint8((s[3] + n/2) / n),
		}
	})
	return dst
}

// Matcher maps a colour to its closest palette entry. colors.Palette and
// *colors.LabPalette implement it.
type Matcher interface {
	Nearest(c pixel.RGBA) pixel.RGBA
}

var (
	_ Matcher = colors.Palette(nil)
	_ Matcher = (*colors.LabPalette)(nil)
)

// Remap replaces every pixel of img by its match, in place.
func Remap(img *bitmap.Image, m Matcher, workers int) {
	if m == nil {
		return
	}
	img.ParallelPixelsMut(workers, func(_ image.Point, c *pixel.RGBA) {
		*c = m.Nearest(*c)
	})
}

// average returns the rounded mean colour of b.
func average(b bitmap.Raster) pixel.RGBA {
	var r, g, bl, a, n int
	size := b.Size()
	for y := range size.Y {
		for _, c := range pixel.RowPixels(b.Storage(), y, size.X) {
			r += int(c.R)
			g += int(c.G)
			bl += int(c.B)
			a += int(c.A)
			n++
		}
	}
	if n == 0 {
		return pixel.RGBA{}
	}
	return pixel.RGBA{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((bl + n/2) / n),
		A: uint8((a + n/2) / n),
	}
}
