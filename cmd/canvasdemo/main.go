// Command canvasdemo draws a small scene with the canvas library.
//
// With the software backend the last frame is written to a PNG file; with
// the ebiten backend the scene is shown in a window.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
	"github.com/gogpu/canvas/backend/ebiten"
	"github.com/gogpu/canvas/backend/software"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config) error {
	display, err := backend.Open(cfg.Backend, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	ctx, err := canvas.NewContext(display, canvas.WithUserTransform(true))
	if err != nil {
		return err
	}
	defer ctx.Close()

	frame := 0
	step := func() error {
		if err := drawScene(ctx, cfg.backgroundColor(), frame); err != nil {
			return err
		}
		frame++
		return ctx.Render()
	}

	switch d := display.(type) {
	case *ebiten.Display:
		return ebiten.Run(d, "canvasdemo", step)
	case *software.Display:
		for range cfg.Frames {
			if err := step(); err != nil {
				return err
			}
		}
		if err := d.SavePNG(cfg.Output); err != nil {
			return err
		}
		log.Printf("Demo saved to %s (%dx%d, %d frames)", cfg.Output, cfg.Width, cfg.Height, d.Frames())
		return nil
	default:
		return fmt.Errorf("canvasdemo: backend %q has no host loop", cfg.Backend)
	}
}

// drawScene draws one frame: the hello world diagonal, a filled triangle
// and a square spinning around the center.
func drawScene(ctx *canvas.Context, bg canvas.Color, frame int) error {
	w, h := ctx.Dimensions()
	if err := ctx.Clear(bg); err != nil {
		return err
	}

	ctx.StrokeColor(canvas.Red)
	ctx.MoveTo(100, 100)
	ctx.LineTo(400, 300)
	if err := ctx.Stroke(); err != nil {
		return err
	}

	ctx.FillColor(canvas.NewColor(0.2, 0.4, 0.9, 0.8))
	ctx.MoveTo(w*0.6, h*0.2)
	ctx.LineTo(w*0.9, h*0.8)
	ctx.LineTo(w*0.3, h*0.8)
	if err := ctx.Fill(); err != nil {
		return err
	}

	var err error
	ctx.WithState(func() {
		ctx.Translate(w/2, h/2)
		ctx.Rotate(float64(frame) * math.Pi / 60)
		ctx.StrokeColor(canvas.Black)
		ctx.MoveTo(-50, -50)
		ctx.LineTo(50, -50)
		ctx.LineTo(50, 50)
		ctx.LineTo(-50, 50)
		ctx.LineTo(-50, -50)
		err = ctx.Stroke()
	})
	return err
}
