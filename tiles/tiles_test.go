package tiles

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"pixsketch/bitmap"
	"pixsketch/colors"
	"pixsketch/imgio"
	"pixsketch/parallel"
	"pixsketch/pixel"
)

// ramp sets R from x and G from y.
func ramp(w, h, dx, dy int) *bitmap.Image {
	img := bitmap.Alloc("ramp", image.Pt(w, h))
	for p, px := range img.PixelsMut() {
		*px = pixel.RGBA{R: uint8(p.X * dx), G: uint8(p.Y * dy), A: 0xff}
	}
	return img
}

func equal(a, b *bitmap.Image) bool {
	if a.Size() != b.Size() {
		return false
	}
	for p, c := range a.Pixels() {
		if b.Pixel(p) != c {
			return false
		}
	}
	return true
}

func TestMosaic(t *testing.T) {
	src := ramp(5, 4, 10, 10)
	got := Mosaic(src, 2)

	tests := []struct {
		p    image.Point
		want pixel.RGBA
	}{
		{image.Pt(0, 0), pixel.RGBA{R: 5, G: 5, A: 0xff}},
		{image.Pt(1, 1), pixel.RGBA{R: 5, G: 5, A: 0xff}},
		{image.Pt(3, 0), pixel.RGBA{R: 25, G: 5, A: 0xff}},
		{image.Pt(2, 3), pixel.RGBA{R: 25, G: 25, A: 0xff}},
		// past the last whole tile
		{image.Pt(4, 0), pixel.RGBA{R: 40, A: 0xff}},
		{image.Pt(4, 3), pixel.RGBA{R: 40, G: 30, A: 0xff}},
	}
	for _, tt := range tests {
		if c := got.Pixel(tt.p); c != tt.want {
			t.Errorf("pixel %v = %v, want %v", tt.p, c, tt.want)
		}
	}

	if !equal(src, ramp(5, 4, 10, 10)) {
		t.Error("Mosaic() modified its source")
	}
}

func TestBlur(t *testing.T) {
	src := bitmap.Alloc("dot", image.Pt(5, 5))
	src.Background(pixel.Black)
	src.SetPixel(image.Pt(2, 2), pixel.White)

	got := Blur(src, 1)
	spread := pixel.RGBA{R: 28, G: 28, B: 28, A: 0xff}
	tests := []struct {
		p    image.Point
		want pixel.RGBA
	}{
		{image.Pt(2, 2), spread},
		{image.Pt(1, 1), spread},
		{image.Pt(3, 2), spread},
		{image.Pt(0, 0), pixel.Black},
		{image.Pt(4, 2), pixel.Black},
	}
	for _, tt := range tests {
		if c := got.Pixel(tt.p); c != tt.want {
			t.Errorf("pixel %v = %v, want %v", tt.p, c, tt.want)
		}
	}

	if !equal(Blur(src, 0), src) {
		t.Error("Blur(0) changed the image")
	}
	if !equal(Blur(src, 3), src) {
		t.Error("Blur() with a window larger than the image changed it")
	}
}

func TestSmooth(t *testing.T) {
	src := ramp(3, 2, 30, 0)
	got := Smooth(src, 2, 1, 2)
	for x, r := range []uint8{15, 30, 45} {
		for y := range 2 {
			if c := got.Pixel(image.Pt(x, y)); c != (pixel.RGBA{R: r, A: 0xff}) {
				t.Errorf("pixel (%d,%d) = %v, want R %d", x, y, c, r)
			}
		}
	}

	// tiles that do not overlap match the mosaic
	big := ramp(6, 4, 20, 30)
	if !equal(Smooth(big, 2, 2, 4), Mosaic(big, 2)) {
		t.Error("Smooth(step = tile) differs from Mosaic()")
	}
}

func TestRemap(t *testing.T) {
	img := bitmap.Alloc("grey", image.Pt(4, 3))
	img.Background(pixel.Grey(200))
	img.SetPixel(image.Pt(1, 1), pixel.Grey(20))

	pal, _ := colors.Builtin("bw")
	Remap(img, pal, 3)
	if img.Pixel(image.Pt(0, 0)) != pixel.White || img.Pixel(image.Pt(1, 1)) != pixel.Black {
		t.Errorf("Remap() = %v, %v", img.Pixel(image.Pt(0, 0)), img.Pixel(image.Pt(1, 1)))
	}

	Remap(img, nil, 3)
	if img.Pixel(image.Pt(0, 0)) != pixel.White {
		t.Error("Remap(nil) changed the image")
	}

	mid := bitmap.Alloc("mid", image.Pt(3, 3))
	mid.Background(pixel.Grey(0x70))
	Remap(mid, colors.NewLabPalette(pal), 2)
	if got := mid.Pixel(image.Pt(2, 2)); got != pixel.White {
		t.Errorf("perceptual Remap() = %v, want white", got)
	}
}

func TestOutFormat(t *testing.T) {
	tests := []struct {
		imgType, format, want string
	}{
		{"png", "unsup:png", "png"},
		{"webp", "unsup:png", "png"},
		{"jpeg", "unsup:bmp", "jpeg"},
		{"webp", "unsup:bmp", "bmp"},
		{"webp", "same", "png"},
		{"gif", "same", "gif"},
		{"gif", "bmp", "bmp"},
	}
	for _, tt := range tests {
		if got := outFormat(tt.imgType, tt.format); got != tt.want {
			t.Errorf("outFormat(%q, %q) = %q, want %q", tt.imgType, tt.format, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		op      string
		setup   func(c *CLICmd)
		wantErr bool
	}{
		{"mosaic", "mosaic", func(c *CLICmd) { c.Mosaic.Tile = 4 }, false},
		{"blur palette", "blur", func(c *CLICmd) { c.Blur.Radius = 1; c.Blur.Palette = "pico8" }, false},
		{"smooth", "smooth", func(c *CLICmd) { c.Smooth.Tile = 4; c.Smooth.Step = 2 }, false},
		{"unknown op", "swirl", func(c *CLICmd) {}, true},
		{"zero tile", "mosaic", func(c *CLICmd) {}, true},
		{"zero radius", "blur", func(c *CLICmd) {}, true},
		{"zero step", "smooth", func(c *CLICmd) { c.Smooth.Tile = 4 }, true},
		{"scan is file", "mosaic", func(c *CLICmd) { c.Mosaic.Tile = 4; c.Mosaic.Scan = file }, true},
		{"bad palette", "mosaic", func(c *CLICmd) { c.Mosaic.Tile = 4; c.Mosaic.Palette = "nope" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c CLICmd
			for _, op := range []string{"mosaic", "blur", "smooth"} {
				p := c.params(op)
				p.Scan, p.Dest = dir, "out"
			}
			tt.setup(&c)

			err := c.validate(tt.op)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate(%q) error = %v, wantErr %v", tt.op, err, tt.wantErr)
			}
			if err == nil {
				if p := c.params(tt.op); p.Dest != filepath.Join(dir, "out") {
					t.Errorf("Dest = %q", p.Dest)
				}
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	if err := imgio.Save(ramp(6, 6, 10, 20), filepath.Join(dir, "a.png"), "", false); err != nil {
		t.Fatal(err)
	}
	if err := imgio.Save(ramp(4, 2, 30, 30), filepath.Join(dir, "b.bmp"), "", false); err != nil {
		t.Fatal(err)
	}

	var c CLICmd
	c.Mosaic.Scan, c.Mosaic.Dest, c.Mosaic.Format, c.Mosaic.Tile = dir, "out", "unsup:png", 3
	if err := c.validate("mosaic"); err != nil {
		t.Fatal(err)
	}

	pool := parallel.Start(2)
	if err := c.run("mosaic", pool.Do, pool.Wait); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	a, format, err := imgio.Load(filepath.Join(dir, "out", "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	if want := Mosaic(ramp(6, 6, 10, 20), 3); format != "png" || !equal(a, want) {
		t.Errorf("a.png is %q and does not match Mosaic()", format)
	}
	if _, format, err := imgio.Probe(filepath.Join(dir, "out", "b.bmp")); err != nil || format != "bmp" {
		t.Errorf("b.bmp: %q, %v", format, err)
	}

	// a second pass refuses to overwrite, and a non-image counts as an error
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	pool = parallel.Start(2)
	if err := c.run("mosaic", pool.Do, pool.Wait); err == nil || err.Error() != "error processing 3 files" {
		t.Errorf("second run() error = %v", err)
	}

	c.Mosaic.Overwrite = true
	pool = parallel.Start(1)
	if err := c.run("mosaic", pool.Do, pool.Wait); err == nil || err.Error() != "error processing 1 files" {
		t.Errorf("overwrite run() error = %v", err)
	}
}
