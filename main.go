package main

import (
	"log/slog"
	"os"

	"pixsketch/colors"
	"pixsketch/parallel"
	"pixsketch/render"
	"pixsketch/tiles"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers  int    `help:"Number of worker goroutines, 0 for one per CPU" default:"0"`
	LogLevel string `help:"Minimum log level" enum:"debug,info,warn,error" default:"info"`
	LogJSON  bool   `help:"Log as JSON instead of text" default:"false"`

	Render  render.CLICmd `cmd:"" help:"Run a drawing sketch into pictures, an animated GIF or a window"`
	Tiles   tiles.CLICmd  `cmd:"" help:"Apply tile effects to every picture in a folder"`
	Palette colors.CLICmd `cmd:"" help:"Write a built-in palette to a PAL file in RIFF format"`
}

func newLogger(level string, json bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pixsketch"),
		kong.Description("Software rasterizer sketches and tile effects on RGBA pixel buffers."),
		kong.UsageOnError(),
	)

	slog.SetDefault(newLogger(c.LogLevel, c.LogJSON))

	pool := parallel.Start(c.Workers)
	err := kctx.Run(pool)
	pool.Wait(true)
	kctx.FatalIfErrorf(err)
}
