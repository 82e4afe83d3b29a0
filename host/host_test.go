package host

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"pixsketch/colors"
	"pixsketch/imgio"
	"pixsketch/pixel"
)

type recorder struct {
	frames []int
	pix    []*uint8
	first  []pixel.RGBA
	closed bool
	fail   int
}

func (r *recorder) Present(frame int, img *image.NRGBA) error {
	if r.fail > 0 && frame == r.fail {
		return errors.New("present failed")
	}
	r.frames = append(r.frames, frame)
	r.pix = append(r.pix, &img.Pix[0])
	r.first = append(r.first, pixel.Get(img.Pix))
	return nil
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

// stripe fills the canvas with one palette colour per frame.
func stripe(frame int, canvas *Canvas) error {
	canvas.Background(colors.Pico8[frame%len(colors.Pico8)])
	return nil
}

func TestHeadlessRun(t *testing.T) {
	h := &Headless{ID: 3, Size: image.Pt(8, 6), Frames: 4}
	rec := &recorder{}

	var ids []CanvasID
	err := h.Run(context.Background(), func(frame int, canvas *Canvas) error {
		ids = append(ids, canvas.ID())
		if canvas.Size() != h.Size {
			t.Errorf("canvas size = %v", canvas.Size())
		}
		if _, ok := canvas.FillColor(); !ok {
			t.Error("pen not reset")
		}
		canvas.NoFill()
		return stripe(frame, canvas)
	}, rec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(rec.frames) != 4 || !rec.closed {
		t.Fatalf("presented %v, closed %v", rec.frames, rec.closed)
	}
	for i, c := range rec.first {
		if c != colors.Pico8[i] {
			t.Errorf("frame %d colour = %v, want %v", i, c, colors.Pico8[i])
		}
		if rec.pix[i] != rec.pix[0] {
			t.Errorf("frame %d used a new buffer", i)
		}
		if ids[i] != 3 {
			t.Errorf("frame %d canvas id = %d", i, ids[i])
		}
	}
}

func TestHeadlessErrors(t *testing.T) {
	drawErr := errors.New("boom")
	tests := []struct {
		name    string
		h       Headless
		draw    DrawFunc
		fail    int
		ctx     func() context.Context
		wantErr error
		frames  int
	}{
		{
			name: "draw error",
			h:    Headless{Size: image.Pt(2, 2), Frames: 5},
			draw: func(frame int, c *Canvas) error {
				if frame == 2 {
					return drawErr
				}
				return stripe(frame, c)
			},
			wantErr: drawErr,
			frames:  2,
		},
		{
			name:   "present error",
			h:      Headless{Size: image.Pt(2, 2), Frames: 5},
			draw:   stripe,
			fail:   1,
			frames: 1,
		},
		{
			name: "cancelled",
			h:    Headless{Size: image.Pt(2, 2), Frames: 5},
			draw: stripe,
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErr: context.Canceled,
		},
		{
			name: "bad size",
			h:    Headless{Size: image.Pt(0, 2), Frames: 5},
			draw: stripe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx()
			}
			rec := &recorder{fail: tt.fail}

			err := tt.h.Run(ctx, tt.draw, rec)
			if err == nil {
				t.Fatal("Run() error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if len(rec.frames) != tt.frames {
				t.Errorf("presented %d frames, want %d", len(rec.frames), tt.frames)
			}
		})
	}
}

func TestPNGSequence(t *testing.T) {
	dir := t.TempDir()
	h := &Headless{Size: image.Pt(5, 3), Frames: 3}
	if err := h.Run(context.Background(), stripe, &PNGSequence{Dir: dir}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i := range 3 {
		img, format, err := imgio.Load(filepath.Join(dir, fmt.Sprintf("frame%04d.png", i)))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if format != "png" || img.Pixel(image.Pt(4, 2)) != colors.Pico8[i] {
			t.Errorf("frame %d: %q %v", i, format, img.Pixel(image.Pt(4, 2)))
		}
	}

	// second run refuses to overwrite
	if err := h.Run(context.Background(), stripe, &PNGSequence{Dir: dir}); !errors.Is(err, imgio.ErrExists) {
		t.Errorf("second Run() error = %v, want ErrExists", err)
	}
}

func TestGIFPresenter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	h := &Headless{Size: image.Pt(6, 6), Frames: 5}
	if err := h.Run(context.Background(), stripe, NewGIF(nil, path, colors.Pico8, 4, false, false)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 5 {
		t.Errorf("frames = %d, want 5", len(anim.Image))
	}
	if got := pixel.FromColor(anim.Image[4].At(0, 0)); got != colors.Pico8[4] {
		t.Errorf("last frame colour = %v", got)
	}
}
