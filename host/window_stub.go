//go:build !ebiten

package host

import (
	"errors"
	"image"
)

// ErrNoWindow is returned by RunWindow in builds without the ebiten tag.
var ErrNoWindow = errors.New("host: window support requires building with the 'ebiten' tag")

// WindowConfig configures RunWindow.
type WindowConfig struct {
	ID    CanvasID
	Size  image.Point
	Scale int
	TPS   int
	Title string
}

// RunWindow always fails without the ebiten build tag.
func RunWindow(WindowConfig, DrawFunc) error {
	return ErrNoWindow
}
