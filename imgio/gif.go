package imgio

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"log/slog"

	"golang.org/x/image/draw"

	"pixsketch/colors"
)

// Quantize maps img onto pal, optionally with Floyd-Steinberg error
// diffusion. The result's bounds start at (0, 0).
func Quantize(logger *slog.Logger, img image.Image, pal colors.Palette, dither bool) *image.Paletted {
	orNop(logger).Debug("applying palette", "colors", len(pal), "dither", dither)
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewPaletted(dr, pal.Colors())

	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
	} else {
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}
	return dest
}

// GIFWriter collects frames for an animated GIF.
type GIFWriter struct {
	logger *slog.Logger
	pal    colors.Palette
	dither bool
	delay  int
	anim   gif.GIF
}

// NewGIFWriter returns a writer quantizing frames onto pal (the Plan 9
// palette when empty) and showing each for delay hundredths of a second.
func NewGIFWriter(logger *slog.Logger, pal colors.Palette, delay int, dither bool) *GIFWriter {
	if len(pal) == 0 {
		pal = colors.FromColors(palette.Plan9)
	}
	return &GIFWriter{
		logger: orNop(logger),
		pal:    pal,
		dither: dither,
		delay:  delay,
	}
}

// Add quantizes img and appends it as the next frame. All frames must have
// the size of the first.
func (g *GIFWriter) Add(img image.Image) error {
	if n := len(g.anim.Image); n > 0 {
		if want, got := g.anim.Image[0].Rect.Size(), img.Bounds().Size(); want != got {
			return fmt.Errorf("frame %d is %v, want %v", n, got, want)
		}
	}

	g.anim.Image = append(g.anim.Image, Quantize(g.logger, img, g.pal, g.dither))
	g.anim.Delay = append(g.anim.Delay, g.delay)
	return nil
}

// Len returns the number of frames added.
func (g *GIFWriter) Len() int { return len(g.anim.Image) }

// Encode writes the animation, looping forever.
func (g *GIFWriter) Encode(w io.Writer) error {
	if len(g.anim.Image) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	if err := gif.EncodeAll(w, &g.anim); err != nil {
		return fmt.Errorf("could not encode GIF: %w", err)
	}
	return nil
}

// Save writes the animation to path with SaveFunc.
func (g *GIFWriter) Save(path string, overwrite bool) error {
	g.logger.Info("writing animation", "file", path, "frames", len(g.anim.Image))
	return SaveFunc(path, "gif", overwrite, func(w io.Writer, _ string) error {
		return g.Encode(w)
	})
}
