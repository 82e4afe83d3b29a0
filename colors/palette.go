package colors

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"image/color/palette"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/image/riff"

	"pixsketch/pixel"
)

/*
A .pal file is a RIFF form of type "PAL " holding one or more "data" chunks:

typedef struct tagLOGPALETTE {
  WORD         palVersion;    // 0x0300
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

// Palette is an ordered list of opaque colours.
type Palette []pixel.RGBA

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

const palVersion = 0x0300

// Pico8 is the 16 colour PICO-8 palette.
var Pico8 = Palette{
	{0x00, 0x00, 0x00, 0xff}, {0x1d, 0x2b, 0x53, 0xff}, {0x7e, 0x25, 0x53, 0xff}, {0x00, 0x87, 0x51, 0xff},
	{0xab, 0x52, 0x36, 0xff}, {0x5f, 0x57, 0x4f, 0xff}, {0xc2, 0xc3, 0xc7, 0xff}, {0xff, 0xf1, 0xe8, 0xff},
	{0xff, 0x00, 0x4d, 0xff}, {0xff, 0xa3, 0x00, 0xff}, {0xff, 0xec, 0x27, 0xff}, {0x00, 0xe4, 0x36, 0xff},
	{0x29, 0xad, 0xff, 0xff}, {0x83, 0x76, 0x9c, 0xff}, {0xff, 0x77, 0xa8, 0xff}, {0xff, 0xcc, 0xaa, 0xff},
}

// Greys returns n evenly spaced greys from black to white.
func Greys(n int) Palette {
	if n < 2 {
		return Palette{pixel.Black}
	}
	p := make(Palette, n)
	for i := range p {
		p[i] = pixel.Grey(uint8(i * 255 / (n - 1)))
	}
	return p
}

// FromColors converts a standard library palette.
func FromColors(cp color.Palette) Palette {
	p := make(Palette, len(cp))
	for i, c := range cp {
		p[i] = pixel.FromColor(c)
	}
	return p
}

// Colors returns p as a standard library palette, for image/gif.
func (p Palette) Colors() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c.NRGBA()
	}
	return cp
}

// Index returns the index of the entry closest to c by squared RGBA
// distance. It returns 0 for an empty palette.
func (p Palette) Index(c pixel.RGBA) int {
	ret, best := 0, math.MaxInt
	for i, v := range p {
		dr := int(c.R) - int(v.R)
		dg := int(c.G) - int(v.G)
		db := int(c.B) - int(v.B)
		da := int(c.A) - int(v.A)
		sum := dr*dr + dg*dg + db*db + da*da
		if sum < best {
			if sum == 0 {
				return i
			}
			ret, best = i, sum
		}
	}
	return ret
}

// Nearest returns the entry closest to c, or c itself for an empty palette.
func (p Palette) Nearest(c pixel.RGBA) pixel.RGBA {
	if len(p) == 0 {
		return c
	}
	return p[p.Index(c)]
}

// Builtin returns the palette called name: bw, gray16, pico8, plan9 or
// websafe.
func Builtin(name string) (Palette, bool) {
	switch strings.ToLower(name) {
	case "bw":
		return Palette{pixel.Black, pixel.White}, true
	case "gray16", "grey16":
		return Greys(16), true
	case "pico8":
		return Pico8, true
	case "plan9":
		return FromColors(palette.Plan9), true
	case "websafe":
		return FromColors(palette.WebSafe), true
	}
	return nil, false
}

// Lookup resolves a built-in palette name or the path of a .pal file, in
// which case the file's first palette is used.
func Lookup(nameOrPath string) (Palette, error) {
	if p, ok := Builtin(nameOrPath); ok {
		return p, nil
	}
	pals, err := LoadPalette(nameOrPath)
	if err != nil {
		return nil, err
	}
	return pals[0], nil
}

// LoadPalette reads every palette stored in the .pal file at path.
func LoadPalette(path string) ([]Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", path, err)
	}
	defer f.Close()

	pals, err := ReadPalettes(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette %q: %w", path, err)
	} else if len(pals) == 0 {
		return nil, fmt.Errorf("no palette in %q", path)
	}
	return pals, nil
}

// ReadPalettes decodes a RIFF palette stream. Nested LIST chunks of type
// "PAL " are flattened into the result.
func ReadPalettes(r io.Reader) ([]Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	return readPalettes(rd, string(formType[:]))
}

func readPalettes(r *riff.Reader, ident string) ([]Palette, error) {
	var res []Palette

	for {
		id, size, data, err := r.Next()
		if err != nil {
			if err == io.EOF {
				break
			}

			return res, fmt.Errorf("could not read chunk %q#%d: %w", ident, len(res), err)
		}

		switch id {
		case riff.LIST:
			listType, list, lerr := riff.NewListReader(size, data)
			if lerr != nil {
				return res, fmt.Errorf("could not read list from chunk %q#%d: %w", ident, len(res), lerr)
			} else if listType != palType {
				return res, fmt.Errorf("chunk %q#%d unsupported type: %s", ident, len(res), string(listType[:]))
			}

			listRes, lerr := readPalettes(list, fmt.Sprintf("%s%d.%s", ident, len(res), listType[:]))
			res = append(res, listRes...)
			if lerr != nil {
				return res, lerr
			}
		case dataType:
			pal, err := readPalette(data, fmt.Sprintf("%s%d", ident, len(res)))
			if err != nil {
				return res, err
			}
			res = append(res, pal)
		default:
			return res, fmt.Errorf("unsupported chunk type in %q#%d: %s", ident, len(res), id[:])
		}
	}

	return res, nil
}

func readPalette(r io.Reader, ident string) (Palette, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("could not read header from chunk %s: %w", ident, err)
	}

	if ver := binary.LittleEndian.Uint16(header[:2]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %#x", ident, ver)
	}

	count := int(binary.LittleEndian.Uint16(header[2:]))
	entries := make([]byte, count*4)
	if _, err := io.ReadFull(r, entries); err != nil {
		return nil, fmt.Errorf("could not read %d colors from chunk %s: %w", count, ident, err)
	}

	res := make(Palette, count)
	for i := range res {
		e := entries[i*4:]
		res[i] = pixel.RGBA{R: e[0], G: e[1], B: e[2], A: 0xFF}
	}

	return res, nil
}

// SavePalette writes pals to a .pal file at path.
func SavePalette(path string, pals ...Palette) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create palette %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close palette %q: %w", path, cerr)
		}
	}()

	if _, err := WritePalettes(f, pals); err != nil {
		return fmt.Errorf("could not write palette %q: %w", path, err)
	}
	return nil
}

// WritePalettes encodes pals as a RIFF palette stream, one data chunk per
// palette. It returns the number of colours written. Alpha is not stored.
func WritePalettes(w io.Writer, pals []Palette) (int64, error) {
	n := 4
	for _, pal := range pals {
		n += 4 + 4 + 4 + len(pal)*4 // chunk id + chunk size + palVersion + palNumEntries + 4 bytes/color
	}

	if err := writeBytes(w, riffType[:]); err != nil {
		return 0, fmt.Errorf("could not write RIFF magic: %w", err)
	}

	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return 0, fmt.Errorf("could not write document size: %w", err)
	}

	if err := writeBytes(w, palType[:]); err != nil {
		return 0, fmt.Errorf("could not write content type: %w", err)
	}

	var count int64
	for i, pal := range pals {
		n, err := writePalette(w, pal)
		count += n
		if err != nil {
			return count, fmt.Errorf("could not write chunk %d: %w", i, err)
		}
	}

	return count, nil
}

func writePalette(w io.Writer, pal Palette) (int64, error) {
	if len(pal) > math.MaxUint16 {
		return 0, fmt.Errorf("too many colors: %d", len(pal))
	}

	if err := writeBytes(w, dataType[:]); err != nil {
		return 0, fmt.Errorf("could not write type: %w", err)
	}

	n := 4 + len(pal)*4
	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return 0, fmt.Errorf("could not write chunk size: %w", err)
	}

	header := binary.LittleEndian.AppendUint16(nil, palVersion)
	header = binary.LittleEndian.AppendUint16(header, uint16(len(pal)))
	if err := writeBytes(w, header); err != nil {
		return 0, fmt.Errorf("could not write palette header: %w", err)
	}

	for i, c := range pal {
		if err := writeBytes(w, []byte{c.R, c.G, c.B, 0x00}); err != nil {
			return int64(i), fmt.Errorf("could not write color %d/%d: %w", i, len(pal), err)
		}
	}

	return int64(len(pal)), nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}
