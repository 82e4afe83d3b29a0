package render

import (
	"fmt"
	"image"
	"iter"
	"math"

	"pixsketch/bitmap"
	"pixsketch/colors"
	"pixsketch/host"
	"pixsketch/parallel"
	"pixsketch/pixel"
)

// Sketch is a drawing program: a canvas size, a suggested frame count and a
// per-frame draw function.
type Sketch struct {
	Name   string
	Size   image.Point
	Frames int
	Draw   host.DrawFunc
	// Stop releases resources held between frames. It may be nil.
	Stop func()
}

// Names lists the built-in sketches.
var Names = []string{"shapes", "plasma", "image", "chunks", "windows", "overlap"}

// Shapes draws lines, triangles and rectangles on a blue background, with a
// line sweeping around the canvas centre.
func Shapes(size image.Point) Sketch {
	return Sketch{
		Name:   "shapes",
		Size:   size,
		Frames: 60,
		Draw: func(frame int, c *host.Canvas) error {
			w, h := c.Width(), c.Height()
			c.Background(pixel.Blue)

			c.Stroke(pixel.Red)
			c.Line(image.Pt(w/20, h/30), image.Pt(w/2, h/3))

			c.Stroke(pixel.Green)
			c.Line(image.Pt(w/8, h/3), image.Pt(0, h/30))
			c.Line(image.Pt(w*3/20, h/10), image.Pt(w*9/40, h*2/9))

			c.NoStroke()
			c.Fill(pixel.RGBA{R: 0xff, B: 0xff, A: 0xff})
			c.Triangle(image.Pt(w*3/5, h/10), image.Pt(w*9/10, h/2), image.Pt(w/2, h*2/5))

			c.Stroke(pixel.White)
			c.Fill(colors.MustNamed("dodgerblue"))
			c.Rect(image.Pt(w/10, h/2), image.Pt(w/4, h/3))

			c.NoFill()
			c.Stroke(colors.MustNamed("gold"))
			c.Triangle(image.Pt(w/2, h*9/10), image.Pt(w*3/4, h*3/5), image.Pt(w*9/10, h*9/10))

			angle := 2 * math.Pi * float64(frame) / 60
			r := float64(min(w, h)) / 3
			centre := image.Pt(w/2, h/2)
			tip := centre.Add(image.Pt(int(r*math.Cos(angle)), int(r*math.Sin(angle))))
			c.Stroke(pixel.White)
			c.Line(centre, tip)
			return nil
		},
	}
}

// Plasma fills every pixel from its position and the frame number, spread
// over the workers of pool. Every frame reuses the pool.
func Plasma(size image.Point, pool *parallel.Pool) Sketch {
	return Sketch{
		Name:   "plasma",
		Size:   size,
		Frames: 48,
		Draw: func(frame int, c *host.Canvas) error {
			t := float64(frame) / 8
			sx, sy := float64(c.Width()), float64(c.Height())
			c.ParallelPixelsMutOn(pool, func(p image.Point, px *pixel.RGBA) {
				x, y := float64(p.X)/sx*8, float64(p.Y)/sy*8
				v := math.Sin(x+t) + math.Sin(y-t) + math.Sin((x+y+t)/2)
				*px = pixel.RGBA{
					R: wave(v),
					G: wave(v + 2*math.Pi/3),
					B: wave(v + 4*math.Pi/3),
					A: 0xff,
				}
			})
			return nil
		},
	}
}

func wave(v float64) uint8 {
	return uint8(127.5 + 127.5*math.Sin(v))
}

// Show blits img at the origin of a canvas of the same size.
func Show(img *bitmap.Image) Sketch {
	return Sketch{
		Name:   "image",
		Size:   img.Size(),
		Frames: 1,
		Draw: func(_ int, c *host.Canvas) error {
			c.Image(img, image.Point{})
			return nil
		},
	}
}

// Reveal uncovers img one tile per frame on a dodgerblue canvas. mode picks
// the tiling: "chunks" (non-overlapping), "windows" (one pixel step) or
// "overlap" (step sized tiles). The sketch must be drawn frame by frame from
// frame 0, and Stop must be called when done.
func Reveal(img *bitmap.Image, mode string, tile, step image.Point) (Sketch, error) {
	var tiles iter.Seq[*bitmap.Bitmap[image.Point]]
	switch mode {
	case "chunks":
		tiles, step = img.Chunks(tile), tile
	case "windows":
		tiles, step = img.Windows(tile), image.Pt(1, 1)
	case "overlap":
		tiles = img.OverlappingChunks(tile, step)
	default:
		return Sketch{}, fmt.Errorf("unknown reveal mode %q", mode)
	}

	n := img.ChunkCount(tile, step)
	if n.X*n.Y == 0 {
		return Sketch{}, fmt.Errorf("tile %v with step %v does not fit in %v", tile, step, img.Size())
	}

	next, stop := iter.Pull(tiles)
	bg := colors.MustNamed("dodgerblue")
	return Sketch{
		Name:   mode,
		Size:   img.Size(),
		Frames: n.X * n.Y,
		// The host buffer persists between frames, so earlier tiles stay
		// visible.
		Draw: func(frame int, c *host.Canvas) error {
			if frame == 0 {
				c.Background(bg)
			}
			if chunk, ok := next(); ok {
				c.Image(chunk, chunk.ID())
			}
			return nil
		},
		Stop: stop,
	}, nil
}
