package host

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"pixsketch/colors"
	"pixsketch/imgio"
)

// PNGSequence writes every frame to its own file in Dir. Pattern is a
// fmt pattern taking the frame number; its extension picks the format.
type PNGSequence struct {
	Dir       string
	Pattern   string
	Overwrite bool
}

// Present implements Presenter.
func (s *PNGSequence) Present(frame int, img *image.NRGBA) error {
	pattern := s.Pattern
	if pattern == "" {
		pattern = "frame%04d.png"
	}
	return imgio.Save(img, filepath.Join(s.Dir, fmt.Sprintf(pattern, frame)), "", s.Overwrite)
}

// Close implements Presenter.
func (s *PNGSequence) Close() error { return nil }

// GIF collects frames into an animated GIF written to Path on Close.
type GIF struct {
	Path      string
	Overwrite bool
	w         *imgio.GIFWriter
}

// NewGIF returns a GIF presenter. See imgio.NewGIFWriter for the arguments.
func NewGIF(logger *slog.Logger, path string, pal colors.Palette, delay int, dither, overwrite bool) *GIF {
	return &GIF{
		Path:      path,
		Overwrite: overwrite,
		w:         imgio.NewGIFWriter(logger, pal, delay, dither),
	}
}

// Present implements Presenter. Frames are quantized immediately, so img is
// not retained.
func (g *GIF) Present(_ int, img *image.NRGBA) error {
	return g.w.Add(img)
}

// Close implements Presenter.
func (g *GIF) Close() error {
	if g.w.Len() == 0 {
		return nil
	}
	return g.w.Save(g.Path, g.Overwrite)
}
