package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"pixsketch/bitmap"
	"pixsketch/colors"
	"pixsketch/host"
	"pixsketch/imgio"
	"pixsketch/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Sketch    string         `arg:"" help:"Sketch to run: shapes, plasma, image, chunks, windows or overlap" enum:"shapes,plasma,image,chunks,windows,overlap" default:"shapes"`
	Image     string         `help:"Source picture for the image, chunks, windows and overlap sketches" type:"path"`
	Fit       int            `help:"Scale the source picture down to at most this width first" default:"0"`
	Width     int            `help:"Canvas width" default:"400" group:"canvas"`
	Height    int            `help:"Canvas height" default:"300" group:"canvas"`
	Frames    int            `help:"Number of frames to draw, 0 for the sketch's own count" default:"0" group:"canvas"`
	Tile      int            `help:"Tile edge for the chunks, windows and overlap sketches" default:"40" group:"tiles"`
	Step      int            `help:"Tile step for the overlap sketch" default:"7" group:"tiles"`
	Out       string         `help:"Output. A .gif file collects an animation; anything else is a folder receiving one picture per frame." default:"sketch.gif" group:"output"`
	Format    string         `help:"Picture format when writing a folder" enum:"png,bmp,tiff,jpeg,gif" default:"png" group:"output"`
	Palette   string         `help:"Palette name (bw, gray16, pico8, plan9, websafe) or PAL file in RIFF format for GIF output" default:"plan9" group:"output"`
	Dither    bool           `help:"Apply dithering to GIF output" default:"false" group:"output"`
	Delay     int            `help:"Delay between GIF frames in 100ths of a second" default:"4" group:"output"`
	Overwrite bool           `help:"Replace existing output files" default:"false" group:"output"`
	Window    bool           `help:"Show the sketch in a window instead of writing files (needs the ebiten build tag)" default:"false" group:"window"`
	Scale     int            `help:"Window pixel scale" default:"2" group:"window"`
	Pal       colors.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid canvas size: %dx%d", c.Width, c.Height)
	case c.Frames < 0:
		return fmt.Errorf("invalid frame count: %d", c.Frames)
	case c.Tile <= 0:
		return fmt.Errorf("invalid tile size: %d", c.Tile)
	case c.Step <= 0:
		return fmt.Errorf("invalid tile step: %d", c.Step)
	case c.Fit < 0:
		return fmt.Errorf("invalid fit width: %d", c.Fit)
	case c.Scale < 1:
		return fmt.Errorf("invalid window scale: %d", c.Scale)
	}

	if needsImage(c.Sketch) && c.Image == "" {
		return fmt.Errorf("sketch %q needs --image", c.Sketch)
	}

	if c.Window {
		return nil
	}

	out, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Out, err)
	}
	c.Out = out

	if c.Pal, err = colors.Lookup(c.Palette); err != nil {
		return err
	}

	return nil
}

func needsImage(name string) bool {
	return name != "shapes" && name != "plasma"
}

// Build returns the named sketch. img is required by every sketch except
// shapes and plasma; pool is only used by plasma.
func Build(name string, size image.Point, img *bitmap.Image, tile, step int, pool *parallel.Pool) (Sketch, error) {
	if !slices.Contains(Names, name) {
		return Sketch{}, fmt.Errorf("unknown sketch %q", name)
	}
	if needsImage(name) && img == nil {
		return Sketch{}, fmt.Errorf("sketch %q needs a source image", name)
	}

	switch name {
	case "shapes":
		return Shapes(size), nil
	case "plasma":
		return Plasma(size, pool), nil
	case "image":
		return Show(img), nil
	default:
		return Reveal(img, name, image.Pt(tile, tile), image.Pt(step, step))
	}
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	logger := slog.Default().With("sketch", c.Sketch)

	var img *bitmap.Image
	if needsImage(c.Sketch) {
		var err error
		if img, _, err = imgio.Load(c.Image); err != nil {
			return err
		}
		if c.Fit > 0 && img.Width() > c.Fit {
			if img, err = imgio.Fit(logger, img, imgio.FitOptions{Width: c.Fit}); err != nil {
				return fmt.Errorf("could not fit %q: %w", c.Image, err)
			}
		}
		logger = logger.With("image", c.Image)
	}

	sk, err := Build(c.Sketch, image.Pt(c.Width, c.Height), img, c.Tile, c.Step, pool)
	if err != nil {
		return err
	}
	if sk.Stop != nil {
		defer sk.Stop()
	}

	frames := sk.Frames
	if c.Frames > 0 {
		frames = c.Frames
	}

	if c.Window {
		return host.RunWindow(host.WindowConfig{
			Size:  sk.Size,
			Scale: c.Scale,
			Title: sk.Name,
		}, sk.Draw)
	}

	var p host.Presenter
	if strings.EqualFold(filepath.Ext(c.Out), ".gif") {
		p = host.NewGIF(logger, c.Out, c.Pal, c.Delay, c.Dither, c.Overwrite)
	} else {
		if err := os.MkdirAll(c.Out, 0o755); err != nil {
			return fmt.Errorf("unable to create destination folder %q: %w", c.Out, err)
		}
		p = &host.PNGSequence{Dir: c.Out, Pattern: "frame%04d." + c.Format, Overwrite: c.Overwrite}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h := &host.Headless{Size: sk.Size, Frames: frames, Logger: logger}
	if err := h.Run(ctx, sk.Draw, p); err != nil {
		return err
	}

	logger.Info("stats", "frames", frames, "size", sk.Size, "out", c.Out)
	return nil
}
