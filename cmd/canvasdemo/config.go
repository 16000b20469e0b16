package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
)

// config is the demo configuration. Fields map to the TOML keys of the
// optional config file; command line flags override them.
type config struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Frames     int    `toml:"frames"`
	Background string `toml:"background"`
	Output     string `toml:"output"`
	Backend    string `toml:"backend"`
	Verbose    bool   `toml:"verbose"`
}

func defaultConfig() config {
	return config{
		Width:      800,
		Height:     600,
		Frames:     1,
		Background: "white",
		Output:     "canvasdemo.png",
		Backend:    backend.BackendSoftware,
	}
}

var errInvalidConfig = errors.New("canvasdemo: invalid config")

// loadConfig parses args. A -config file is decoded over the defaults and
// flags given explicitly on the command line win over both.
func loadConfig(args []string) (config, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("canvasdemo", flag.ContinueOnError)
	path := fs.String("config", "", "TOML config file")
	width := fs.Int("width", cfg.Width, "framebuffer width")
	height := fs.Int("height", cfg.Height, "framebuffer height")
	frames := fs.Int("frames", cfg.Frames, "number of frames to render")
	background := fs.String("background", cfg.Background, "background color (name or #hex)")
	output := fs.String("output", cfg.Output, "PNG output file (software backend)")
	name := fs.String("backend", cfg.Backend, "display backend")
	verbose := fs.Bool("v", cfg.Verbose, "debug logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *path != "" {
		if _, err := toml.DecodeFile(*path, &cfg); err != nil {
			return cfg, fmt.Errorf("canvasdemo: read config %s: %w", *path, err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "frames":
			cfg.Frames = *frames
		case "background":
			cfg.Background = *background
		case "output":
			cfg.Output = *output
		case "backend":
			cfg.Backend = *name
		case "v":
			cfg.Verbose = *verbose
		}
	})
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", errInvalidConfig, c.Width, c.Height)
	}
	if c.Frames < 1 {
		return fmt.Errorf("%w: frames %d", errInvalidConfig, c.Frames)
	}
	if _, ok := canvas.ParseColor(c.Background); !ok {
		return fmt.Errorf("%w: background %q", errInvalidConfig, c.Background)
	}
	return nil
}

// backgroundColor returns the parsed background; validate has checked it.
func (c config) backgroundColor() canvas.Color {
	col, _ := canvas.ParseColor(c.Background)
	return col
}
