//go:build ebiten

package host

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"pixsketch/bitmap"
)

// WindowConfig configures RunWindow.
type WindowConfig struct {
	ID    CanvasID
	Size  image.Point
	Scale int
	TPS   int
	Title string
}

// window adapts a DrawFunc to the ebiten.Game interface.
type window struct {
	cfg   WindowConfig
	draw  DrawFunc
	frame int
	buf   []byte
	pm    []byte
	img   *ebiten.Image
}

// RunWindow opens a window and calls draw once per tick until the window is
// closed or Escape/Q is pressed.
func RunWindow(cfg WindowConfig, draw DrawFunc) error {
	if cfg.Size.X <= 0 || cfg.Size.Y <= 0 {
		return fmt.Errorf("invalid canvas size %v", cfg.Size)
	}
	cfg.Scale = max(cfg.Scale, 1)

	w := &window{
		cfg:  cfg,
		draw: draw,
		buf:  make([]byte, cfg.Size.X*cfg.Size.Y*4),
		pm:   make([]byte, cfg.Size.X*cfg.Size.Y*4),
		img:  ebiten.NewImage(cfg.Size.X, cfg.Size.Y),
	}

	ebiten.SetWindowTitle(cfg.Title)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowSize(cfg.Size.X*cfg.Scale, cfg.Size.Y*cfg.Scale)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update draws the next frame into the buffer.
func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	canvas, err := bitmap.FromBytes(w.cfg.ID, w.buf, w.cfg.Size)
	if err != nil {
		return err
	}
	if err := w.draw(w.frame, canvas); err != nil {
		return fmt.Errorf("could not draw frame %d: %w", w.frame, err)
	}
	w.frame++
	return nil
}

// Draw uploads the buffer, premultiplied as ebiten expects, and scales it
// onto the screen.
func (w *window) Draw(screen *ebiten.Image) {
	for i := 0; i < len(w.buf); i += 4 {
		a := uint16(w.buf[i+3])
		w.pm[i+0] = uint8(uint16(w.buf[i+0]) * a / 0xff)
		w.pm[i+1] = uint8(uint16(w.buf[i+1]) * a / 0xff)
		w.pm[i+2] = uint8(uint16(w.buf[i+2]) * a / 0xff)
		w.pm[i+3] = uint8(a)
	}
	w.img.WritePixels(w.pm)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.cfg.Scale), float64(w.cfg.Scale))
	screen.DrawImage(w.img, op)
}

// Layout returns the logical screen size.
func (w *window) Layout(int, int) (int, int) {
	return w.cfg.Size.X * w.cfg.Scale, w.cfg.Size.Y * w.cfg.Scale
}
