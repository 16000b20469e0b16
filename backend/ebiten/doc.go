// Package ebiten is a canvas.Display that draws with Ebitengine.
//
// Frames are rendered into an offscreen *ebiten.Image with DrawTriangles.
// Game adapts a Display to ebiten.Game so the image is shown in a window:
//
//	display := ebiten.NewDisplay(800, 600)
//	ctx, err := canvas.NewContext(display)
//	...
//	err = ebiten.Run(display, "canvas", func() error {
//	    ctx.Clear(canvas.White)
//	    ...
//	    return ctx.Render()
//	})
//
// Ebitengine indexes vertices with uint16, so a single draw is limited to
// 65535 vertices; larger meshes fail with ErrTooManyVertices.
package ebiten
