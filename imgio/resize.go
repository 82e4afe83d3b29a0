package imgio

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"

	"pixsketch/bitmap"
	"pixsketch/pixel"
)

// FitOptions controls Fit. A zero Width or Height keeps the source's.
type FitOptions struct {
	Width, Height int
	// Crop trims the source to the target aspect ratio before scaling.
	Crop bool
	// Fill, when set and not cropping, letterboxes the scaled image on a
	// Width x Height canvas of this colour. Otherwise the result shrinks to
	// the scaled image.
	Fill *pixel.RGBA
}

// Fit scales img with Catmull-Rom resampling, preserving its aspect ratio.
// An image that already has the target size is returned unchanged.
func Fit(logger *slog.Logger, img *bitmap.Image, opts FitOptions) (*bitmap.Image, error) {
	if opts.Width < 0 || opts.Height < 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", opts.Width, opts.Height)
	}
	if img.Area() == 0 {
		return nil, fmt.Errorf("cannot resize empty image %q", img.ID())
	}

	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	destWidth := float64(opts.Width)
	if destWidth == 0 {
		destWidth = srcWidth
	}

	destHeight := float64(opts.Height)
	if destHeight == 0 {
		destHeight = srcHeight
	}

	if (srcWidth == destWidth) && (srcHeight == destHeight) {
		return img, nil
	}

	destSize := image.Rect(0, 0, int(destWidth), int(destHeight))
	destBounds := destSize

	srcAR := srcWidth / srcHeight
	destAR := destWidth / destHeight
	if opts.Crop {
		if srcAR < destAR {
			dh := int(math.Round((srcHeight - srcWidth/destAR) / 2))
			srcBounds.Min.Y += dh
			srcBounds.Max.Y -= dh
		} else if srcAR > destAR {
			dw := int(math.Round((srcWidth - srcHeight*destAR) / 2))
			srcBounds.Min.X += dw
			srcBounds.Max.X -= dw
		}
	} else {
		if srcAR < destAR {
			dw := destHeight * srcAR
			if opts.Fill == nil {
				destSize.Max.X = max(int(math.Round(dw)), 1)
				destBounds.Max.X = destSize.Max.X
			} else if destWidth > dw {
				idw := int(math.Round((destWidth - dw) / 2))
				destBounds.Min.X += idw
				destBounds.Max.X -= idw
			}
		} else if srcAR > destAR {
			dh := destWidth / srcAR
			if opts.Fill == nil {
				destSize.Max.Y = max(int(math.Round(dh)), 1)
				destBounds.Max.Y = destSize.Max.Y
			} else if destHeight > dh {
				idh := int(math.Round((destHeight - dh) / 2))
				destBounds.Min.Y += idh
				destBounds.Max.Y -= idh
			}
		}
	}

	orNop(logger).Info("resizing", "width", destBounds.Dx(), "height", destBounds.Dy())
	dest := bitmap.Alloc(img.ID(), destSize.Size())
	if opts.Fill != nil && !opts.Crop {
		dest.Background(*opts.Fill)
	}
	draw.CatmullRom.Scale(dest.NRGBA(), destBounds, img.NRGBA(), srcBounds, draw.Over, nil)

	return dest, nil
}
