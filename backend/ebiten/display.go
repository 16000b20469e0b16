package ebiten

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrTooManyVertices is returned when a mesh does not fit 16-bit indices.
	ErrTooManyVertices = errors.New("ebiten: mesh exceeds 65535 vertices")

	// ErrFrameFinished is returned when a finished frame is used.
	ErrFrameFinished = errors.New("ebiten: frame already finished")

	// ErrForeignResource is returned when Draw receives a buffer or program
	// created by another display.
	ErrForeignResource = errors.New("ebiten: resource does not belong to this display")
)

// maxVertices is the vertex limit of one DrawTriangles call.
const maxVertices = 1<<16 - 1

func init() {
	backend.Register(backend.BackendEbiten, func(width, height int) (canvas.Display, error) {
		return NewDisplay(width, height), nil
	})
}

// Display renders canvas frames into an offscreen ebiten image.
type Display struct {
	target *ebiten.Image
	white  *ebiten.Image
	width  int
	height int
	frames int

	// Scratch slices reused across draws.
	vertices []ebiten.Vertex
	indices  []uint16
}

var _ canvas.Display = (*Display)(nil)

// NewDisplay creates a display with a width x height target. Non-positive
// sizes are clamped to 1.
func NewDisplay(width, height int) *Display {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	d := &Display{
		// The center pixel avoids sampling the edges of the source image.
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
	d.Resize(width, height)
	return d
}

// Resize replaces the target image.
func (d *Display) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if d.target != nil && d.width == width && d.height == height {
		return
	}
	if d.target != nil {
		d.target.Deallocate()
	}
	d.target = ebiten.NewImage(width, height)
	d.width, d.height = width, height
}

// Image returns the target image.
func (d *Display) Image() *ebiten.Image {
	return d.target
}

// Frames returns the number of finished frames.
func (d *Display) Frames() int {
	return d.frames
}

// FramebufferSize returns the target size in pixels.
func (d *Display) FramebufferSize() (width, height int) {
	return d.width, d.height
}

// CompileProgram validates the WGSL source with naga. Drawing always uses
// the flat color semantics of the default canvas shader.
func (d *Display) CompileProgram(src canvas.ShaderSource) (canvas.Program, error) {
	if _, err := canvas.CompileWGSL(src.WGSL); err != nil {
		return nil, fmt.Errorf("%s: %w", src.Label, err)
	}
	return &program{display: d}, nil
}

// NewVertexBuffer copies vertices.
func (d *Display) NewVertexBuffer(vertices []canvas.Vertex) (canvas.Buffer, error) {
	if len(vertices) > maxVertices {
		return nil, fmt.Errorf("%w: %d", ErrTooManyVertices, len(vertices))
	}
	return &buffer{display: d, vertices: append([]canvas.Vertex(nil), vertices...), n: len(vertices)}, nil
}

// NewIndexBuffer narrows indices to uint16.
func (d *Display) NewIndexBuffer(indices []uint32) (canvas.Buffer, error) {
	narrow := make([]uint16, len(indices))
	for i, idx := range indices {
		if idx > maxVertices {
			return nil, fmt.Errorf("%w: index %d", ErrTooManyVertices, idx)
		}
		narrow[i] = uint16(idx)
	}
	return &buffer{display: d, indices: narrow, n: len(indices)}, nil
}

// BeginFrame starts drawing into the target image.
func (d *Display) BeginFrame() (canvas.Frame, error) {
	return &frame{display: d}, nil
}

type program struct {
	display *Display
}

func (p *program) Release() {}

type buffer struct {
	display  *Display
	vertices []canvas.Vertex
	indices  []uint16
	n        int
}

func (b *buffer) Len() int { return b.n }

func (b *buffer) Release() {
	b.vertices, b.indices = nil, nil
}

type frame struct {
	display  *Display
	finished bool
}

// Clear fills the target with c.
func (f *frame) Clear(c canvas.Color) error {
	if f.finished {
		return ErrFrameFinished
	}
	f.display.target.Fill(c)
	return nil
}

// Draw renders the triangles with one DrawTriangles call.
func (f *frame) Draw(vb, ib canvas.Buffer, p canvas.Program, u canvas.Uniforms) error {
	if f.finished {
		return ErrFrameFinished
	}
	vbuf, ok1 := vb.(*buffer)
	ibuf, ok2 := ib.(*buffer)
	prog, ok3 := p.(*program)
	if !ok1 || !ok2 || !ok3 || vbuf.display != f.display || ibuf.display != f.display || prog.display != f.display {
		return ErrForeignResource
	}
	if len(ibuf.indices) == 0 {
		return nil
	}

	d := f.display
	d.vertices = buildVertices(d.vertices[:0], vbuf.vertices, u, d.width, d.height)
	d.indices = append(d.indices[:0], ibuf.indices[:len(ibuf.indices)/3*3]...)
	d.target.DrawTriangles(d.vertices, d.indices, d.white, &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		AntiAlias:      true,
	})
	return nil
}

// Finish completes the frame; the Game shows the target on its next Draw.
func (f *frame) Finish() error {
	if f.finished {
		return ErrFrameFinished
	}
	f.finished = true
	f.display.frames++
	return nil
}

// buildVertices maps positions through u.Matrix to pixels and paints them
// with the uniform color.
func buildVertices(dst []ebiten.Vertex, src []canvas.Vertex, u canvas.Uniforms, width, height int) []ebiten.Vertex {
	rgba := u.Color.Float32()
	w, h := float64(width), float64(height)
	for _, v := range src {
		nx, ny := u.Matrix.Apply(float64(v.X), float64(v.Y))
		dst = append(dst, ebiten.Vertex{
			DstX:   float32((nx + 1) / 2 * w),
			DstY:   float32((1 - ny) / 2 * h),
			SrcX:   1,
			SrcY:   1,
			ColorR: rgba[0],
			ColorG: rgba[1],
			ColorB: rgba[2],
			ColorA: rgba[3],
		})
	}
	return dst
}
