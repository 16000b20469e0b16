// Package canvas provides an immediate-mode 2D vector canvas on a GPU.
//
// # Overview
//
// A Context keeps a small drawing state (the current path, stroke and fill
// colors, a transform stack) and turns every Stroke or Fill into a triangle
// mesh that is drawn with one GPU draw call. Window creation, the event loop
// and device negotiation belong to the host, which hands the Context a
// Display.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/canvas"
//	    "github.com/gogpu/canvas/backend/software"
//	)
//
//	display := software.New(1024, 768)
//	ctx, err := canvas.NewContext(display)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	ctx.Clear(canvas.White)
//	ctx.StrokeColor(canvas.Red)
//	ctx.MoveTo(100, 100)
//	ctx.LineTo(400, 300)
//	ctx.Stroke()
//	ctx.Render()
//
// # Backends
//
//   - backend/wgpu: gogpu/wgpu HAL device supplied by the host
//   - backend/software: CPU rasterizer into an image.RGBA
//   - backend/ebiten: Ebitengine window
//
// # Coordinate System
//
// Coordinates are pixels:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// The render matrix maps this space to normalized device coordinates. By
// default the transform stack is not part of it (see WithUserTransform).
//
// # Geometry
//
// Paths are made of straight segments only. Fills close every subpath
// implicitly and use the even-odd rule unless configured otherwise.
package canvas

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
