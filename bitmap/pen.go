package bitmap

import "pixsketch/pixel"

// Default pen colours.
var (
	DefaultStroke = pixel.White
	DefaultFill   = pixel.Grey(0x80)
)

// Pen is the current stroke (outline) and fill (interior) colour. Either can
// be unset, in which case the corresponding part of a shape is not drawn.
type Pen struct {
	stroke, fill       pixel.RGBA
	hasStroke, hasFill bool
}

// DefaultPen returns a white stroke and a mid-grey fill.
func DefaultPen() Pen {
	return Pen{
		stroke:    DefaultStroke,
		fill:      DefaultFill,
		hasStroke: true,
		hasFill:   true,
	}
}

// Stroke returns the stroke colour and whether one is set.
func (p Pen) Stroke() (pixel.RGBA, bool) { return p.stroke, p.hasStroke }

// Fill returns the fill colour and whether one is set.
func (p Pen) Fill() (pixel.RGBA, bool) { return p.fill, p.hasFill }

// Pen returns the current pen.
func (b *Bitmap[ID]) Pen() Pen { return b.pen }

// SetPen replaces the current pen, typically one saved earlier with Pen.
func (b *Bitmap[ID]) SetPen(p Pen) { b.pen = p }

// Fill sets the fill colour for the following drawing calls.
func (b *Bitmap[ID]) Fill(c pixel.RGBA) {
	b.pen.fill, b.pen.hasFill = c, true
}

// Stroke sets the stroke colour for the following drawing calls.
func (b *Bitmap[ID]) Stroke(c pixel.RGBA) {
	b.pen.stroke, b.pen.hasStroke = c, true
}

// NoFill disables filling for the following drawing calls.
func (b *Bitmap[ID]) NoFill() {
	b.pen.fill, b.pen.hasFill = pixel.RGBA{}, false
}

// NoStroke disables outlines for the following drawing calls.
func (b *Bitmap[ID]) NoStroke() {
	b.pen.stroke, b.pen.hasStroke = pixel.RGBA{}, false
}

// FillColor returns the fill colour and whether one is set.
func (b *Bitmap[ID]) FillColor() (pixel.RGBA, bool) { return b.pen.Fill() }

// StrokeColor returns the stroke colour and whether one is set.
func (b *Bitmap[ID]) StrokeColor() (pixel.RGBA, bool) { return b.pen.Stroke() }
