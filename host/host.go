// Package host drives sketches: it owns a frame buffer, wraps it as a
// canvas bitmap every frame, calls the sketch's draw function and hands the
// result to a presenter (image files, an animated GIF or a window).
package host

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"pixsketch/bitmap"
)

// CanvasID identifies a canvas when a host drives several of them.
type CanvasID int

// Canvas is the bitmap a sketch draws on. It is a view over the host's
// frame buffer and is only valid during the draw call; its pen starts from
// the default every frame.
type Canvas = bitmap.Bitmap[CanvasID]

// DrawFunc draws frame number frame onto canvas.
type DrawFunc func(frame int, canvas *Canvas) error

// Presenter receives finished frames. img shares the host's frame buffer
// and must not be retained after Present returns.
type Presenter interface {
	Present(frame int, img *image.NRGBA) error
	Close() error
}

// Headless runs a fixed number of frames without a window.
type Headless struct {
	ID     CanvasID
	Size   image.Point
	Frames int
	Logger *slog.Logger
}

// Run draws h.Frames frames into one reused buffer and presents each. The
// presenter is closed at the end even when drawing fails. Cancelling ctx
// stops the loop between frames.
func (h *Headless) Run(ctx context.Context, draw DrawFunc, p Presenter) (err error) {
	logger := h.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if h.Size.X <= 0 || h.Size.Y <= 0 {
		return fmt.Errorf("invalid canvas size %v", h.Size)
	}

	defer func() {
		if cerr := p.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close presenter: %w", cerr)
		}
	}()

	buf := make([]byte, h.Size.X*h.Size.Y*4)
	for frame := range h.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}

		canvas, err := bitmap.FromBytes(h.ID, buf, h.Size)
		if err != nil {
			return err
		}
		if err := draw(frame, canvas); err != nil {
			return fmt.Errorf("could not draw frame %d: %w", frame, err)
		}
		if err := p.Present(frame, canvas.NRGBA()); err != nil {
			return fmt.Errorf("could not present frame %d: %w", frame, err)
		}
		logger.Debug("frame done", "canvas", h.ID, "frame", frame)
	}

	logger.Info("headless run done", "canvas", h.ID, "frames", h.Frames)
	return nil
}
