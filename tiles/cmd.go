package tiles

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"pixsketch/bitmap"
	"pixsketch/colors"
	"pixsketch/imgio"
	"pixsketch/parallel"

	"github.com/alecthomas/kong"
)

type OpParams struct {
	Scan       string         `help:"Source folder to scan" default:"."`
	Dest       string         `help:"Destination folder for processed pictures. Relative to scan dir if not absolute." default:"tiled"`
	Palette    string         `help:"Palette name (bw, gray16, pico8, plan9, websafe) or PAL file in RIFF format to remap the result to"`
	Format     string         `help:"Output format. If prefixed with 'unsup:' will convert only formats that cannot be written" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`
	Perceptual bool           `help:"Match palette colours by OKLab distance instead of RGB" default:"false"`
	Overwrite  bool           `help:"Replace existing destination files" default:"false"`
	Pal        colors.Palette `kong:"-"`
}

type CLICmd struct {
	Mosaic struct {
		OpParams
		Tile int `help:"Tile edge in pixels" default:"16"`
	} `cmd:"" help:"Paint every tile with its average colour"`
	Blur struct {
		OpParams
		Radius int `help:"Box blur radius in pixels" default:"2"`
	} `cmd:"" help:"Box blur through a sliding window"`
	Smooth struct {
		OpParams
		Tile int `help:"Tile edge in pixels" default:"16"`
		Step int `help:"Distance between overlapping tiles" default:"4"`
	} `cmd:"" help:"Average overlapping tiles"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	return c.validate(kctx.Selected().Name)
}

func (c *CLICmd) params(op string) *OpParams {
	switch op {
	case "mosaic":
		return &c.Mosaic.OpParams
	case "blur":
		return &c.Blur.OpParams
	case "smooth":
		return &c.Smooth.OpParams
	}
	return nil
}

func (c *CLICmd) validate(op string) error {
	conf := c.params(op)
	if conf == nil {
		return fmt.Errorf("unknown operation %q", op)
	}

	switch {
	case op == "mosaic" && c.Mosaic.Tile < 1:
		return fmt.Errorf("invalid tile size: %d", c.Mosaic.Tile)
	case op == "blur" && c.Blur.Radius < 1:
		return fmt.Errorf("invalid blur radius: %d", c.Blur.Radius)
	case op == "smooth" && c.Smooth.Tile < 1:
		return fmt.Errorf("invalid tile size: %d", c.Smooth.Tile)
	case op == "smooth" && c.Smooth.Step < 1:
		return fmt.Errorf("invalid tile step: %d", c.Smooth.Step)
	}

	scanDir, err := filepath.Abs(conf.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", conf.Scan, err)
	}
	conf.Scan = scanDir

	if !filepath.IsAbs(conf.Dest) {
		conf.Dest = filepath.Join(scanDir, conf.Dest)
	}

	if conf.Palette != "" {
		if conf.Pal, err = colors.Lookup(conf.Palette); err != nil {
			return err
		}
	}

	return nil
}

// effect returns the picture transform selected by op.
func (c *CLICmd) effect(op string, workers int) func(*bitmap.Image) *bitmap.Image {
	switch op {
	case "mosaic":
		return func(img *bitmap.Image) *bitmap.Image { return Mosaic(img, c.Mosaic.Tile) }
	case "blur":
		return func(img *bitmap.Image) *bitmap.Image { return Blur(img, c.Blur.Radius) }
	case "smooth":
		return func(img *bitmap.Image) *bitmap.Image {
			return Smooth(img, c.Smooth.Tile, c.Smooth.Step, workers)
		}
	}
	return nil
}

func (c *CLICmd) Run(kctx *kong.Context, pool *parallel.Pool) error {
	return c.run(kctx.Selected().Name, pool.Do, pool.Wait)
}

func (c *CLICmd) run(op string, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	conf := c.params(op)
	if conf == nil {
		return fmt.Errorf("unknown operation %q", op)
	}
	// files are already spread over the pool
	apply := c.effect(op, 1)

	var match Matcher
	if len(conf.Pal) > 0 {
		match = conf.Pal
		if conf.Perceptual {
			match = colors.NewLabPalette(conf.Pal)
		}
	}

	if err := os.MkdirAll(conf.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", conf.Dest, err)
	}

	files, err := os.ReadDir(conf.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", conf.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(conf.Scan, fileName)
				logger := slog.Default().With("file", filePath, "op", op)

				img, imgType, err := imgio.Load(filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not load image", "error", err)
					return
				}

				img = apply(img)
				Remap(img, match, 1)

				format := outFormat(imgType, conf.Format)
				destPath := filepath.Join(conf.Dest, strings.TrimSuffix(fileName, filepath.Ext(fileName))+"."+format)
				if err := imgio.Save(img.NRGBA(), destPath, format, conf.Overwrite); err != nil {
					errCount.Add(1)
					logger.Error("could not save image", "dest", destPath, "error", err)
					return
				}
				logger.Debug("processed", "dest", destPath, "size", img.Size())
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "op", op, "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

// outFormat picks the encoder for a picture decoded as imgType. An "unsup:"
// prefix keeps imgType whenever it can be written.
func outFormat(imgType, format string) string {
	format, unsupOnly := strings.CutPrefix(format, "unsup:")
	if format == "same" || (unsupOnly && slices.Contains(imgio.Formats, imgType)) {
		if slices.Contains(imgio.Formats, imgType) {
			return imgType
		}
		return "png"
	}
	return format
}
