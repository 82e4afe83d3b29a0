package colors

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

type CLICmd struct {
	Name      string `arg:"" help:"Palette to export: bw, gray16, pico8, plan9 or websafe" enum:"bw,gray16,pico8,plan9,websafe"`
	Out       string `arg:"" help:"Destination PAL file" type:"path"`
	Overwrite bool   `help:"Replace an existing file" default:"false"`
}

func (c *CLICmd) Run() error {
	pal, ok := Builtin(c.Name)
	if !ok {
		return fmt.Errorf("unknown palette %q", c.Name)
	}

	if !c.Overwrite {
		if _, err := os.Stat(c.Out); err == nil {
			return fmt.Errorf("destination file already exists: %q", filepath.Base(c.Out))
		}
	}

	if err := SavePalette(c.Out, pal); err != nil {
		return err
	}
	slog.Info("palette written", "name", c.Name, "colors", len(pal), "file", c.Out)
	return nil
}
