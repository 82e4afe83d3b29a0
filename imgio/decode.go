// Package imgio moves bitmaps in and out of image files: decoding into owned
// bitmaps, aspect-aware resizing, palette quantization and atomic saving.
package imgio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"pixsketch/bitmap"
)

func orNop(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// Decode reads an image in any registered format and converts it to an
// owned bitmap named name. It also returns the format name.
func Decode(r io.Reader, name string) (*bitmap.Image, string, error) {
	img, imgType, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image %q: %w", name, err)
	}
	return bitmap.FromImage(name, img), imgType, nil
}

// Load decodes the image file at path. The bitmap is named after the file.
func Load(path string) (*bitmap.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer f.Close()

	return Decode(f, filepath.Base(path))
}

// Probe returns the dimensions and format of the image file at path without
// decoding its pixels.
func Probe(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer f.Close()

	conf, imgType, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("could not read image %q: %w", path, err)
	}
	return conf, imgType, nil
}
