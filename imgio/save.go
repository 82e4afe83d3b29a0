package imgio

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats lists the names Encode accepts.
var Formats = []string{"png", "jpeg", "gif", "bmp", "tiff"}

// ErrExists is returned by Save when the destination exists and overwriting
// was not requested.
var ErrExists = errors.New("imgio: destination file already exists")

// FormatOf returns the encoder name for path's extension, or "" if none
// matches.
func FormatOf(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "png":
		return "png"
	case "jpg", "jpeg":
		return "jpeg"
	case "gif":
		return "gif"
	case "bmp":
		return "bmp"
	case "tif", "tiff":
		return "tiff"
	}
	return ""
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case "jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestSpeed,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

// Save writes img to path. The format is taken from the extension when
// format is empty. The file is written under a temporary name in the same
// directory and renamed into place once complete, so readers never see a
// partial image.
func Save(img image.Image, path, format string, overwrite bool) error {
	return SaveFunc(path, format, overwrite, func(w io.Writer, format string) error {
		return Encode(w, img, format)
	})
}

// SaveFunc is like Save for callers with their own encoder, such as
// GIFWriter.
func SaveFunc(path, format string, overwrite bool, encode func(w io.Writer, format string) error) (err error) {
	if format == "" {
		if format = FormatOf(path); format == "" {
			return fmt.Errorf("cannot tell image format of %q", path)
		}
	}
	if !overwrite {
		if err := checkDest(path); err != nil {
			return err
		}
	}

	destDir, destName := filepath.Split(path)
	if destDir == "" {
		destDir = "."
	}
	outFile, err := os.CreateTemp(destDir, "."+destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	if err = encode(outFile, format); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}

	canRename = true
	return nil
}

func checkDest(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrExists, info.Name())
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
