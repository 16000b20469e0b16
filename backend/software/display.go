package software

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
	"golang.org/x/image/vector"
)

// ErrFrameFinished is returned when a finished frame is used.
var ErrFrameFinished = errors.New("software: frame already finished")

// ErrForeignResource is returned when Draw receives a buffer or program
// created by another display.
var ErrForeignResource = errors.New("software: resource does not belong to this display")

// ErrReleased is returned when Draw receives a released buffer or program.
var ErrReleased = errors.New("software: resource released")

func init() {
	backend.Register(backend.BackendSoftware, func(width, height int) (canvas.Display, error) {
		return New(width, height), nil
	})
}

// Display rasterizes frames on the CPU.
//
// Drawing goes to a back buffer; Finish copies it to the presented image.
// Display is not safe for concurrent use.
type Display struct {
	back   *image.RGBA
	front  *image.RGBA
	raster *vector.Rasterizer
	frames int
}

var _ canvas.Display = (*Display)(nil)

// New creates a display with a width x height framebuffer. Non-positive
// sizes are clamped to 1.
func New(width, height int) *Display {
	d := &Display{}
	d.Resize(width, height)
	return d
}

// Resize replaces the framebuffer. The next draw uses the new size.
func (d *Display) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	r := image.Rect(0, 0, width, height)
	d.back = image.NewRGBA(r)
	d.front = image.NewRGBA(r)
	d.raster = vector.NewRasterizer(width, height)
}

// FramebufferSize returns the framebuffer size in pixels.
func (d *Display) FramebufferSize() (width, height int) {
	b := d.back.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the last presented frame. The image is overwritten by the
// next Finish.
func (d *Display) Image() *image.RGBA {
	return d.front
}

// Frames returns the number of presented frames.
func (d *Display) Frames() int {
	return d.frames
}

// SavePNG writes the last presented frame to path.
func (d *Display) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("software: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("software: close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, d.front); err != nil {
		return fmt.Errorf("software: encode %s: %w", path, err)
	}
	return nil
}

// CompileProgram validates the WGSL source with naga.
func (d *Display) CompileProgram(src canvas.ShaderSource) (canvas.Program, error) {
	words, err := canvas.CompileWGSL(src.WGSL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Label, err)
	}
	canvas.Logger().Info("software: program compiled", "label", src.Label, "spirvWords", len(words))
	return &program{display: d}, nil
}

// NewVertexBuffer copies vertices.
func (d *Display) NewVertexBuffer(vertices []canvas.Vertex) (canvas.Buffer, error) {
	return &buffer{display: d, vertices: append([]canvas.Vertex(nil), vertices...), n: len(vertices)}, nil
}

// NewIndexBuffer copies indices.
func (d *Display) NewIndexBuffer(indices []uint32) (canvas.Buffer, error) {
	return &buffer{display: d, indices: append([]uint32(nil), indices...), n: len(indices)}, nil
}

// BeginFrame starts drawing into the back buffer. Its previous contents
// are kept.
func (d *Display) BeginFrame() (canvas.Frame, error) {
	return &frame{display: d, target: d.back}, nil
}

type program struct {
	display  *Display
	released bool
}

func (p *program) Release() { p.released = true }

type buffer struct {
	display  *Display
	vertices []canvas.Vertex
	indices  []uint32
	n        int
	released bool
}

func (b *buffer) Len() int { return b.n }

func (b *buffer) Release() {
	b.vertices, b.indices = nil, nil
	b.released = true
}

type frame struct {
	display  *Display
	target   *image.RGBA
	draws    int
	finished bool
}

// Clear replaces every pixel with c.
func (f *frame) Clear(c canvas.Color) error {
	if f.finished {
		return ErrFrameFinished
	}
	draw.Draw(f.target, f.target.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

// Draw rasterizes the triangles of ib over vb.
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
	if vbuf.released || ibuf.released || prog.released {
		return ErrReleased
	}
	if len(ibuf.indices) == 0 {
		return nil
	}
	if f.target != f.display.back {
		// Resized mid-frame; draw into the new back buffer.
		f.target = f.display.back
	}

	b := f.target.Bounds()
	r := f.display.raster
	r.Reset(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	if n := rasterize(r, vbuf.vertices, ibuf.indices, u.Matrix, b.Dx(), b.Dy()); n == 0 {
		return nil
	}
	r.Draw(f.target, b, image.NewUniform(u.Color), image.Point{})
	f.draws++
	return nil
}

// Finish presents the back buffer.
func (f *frame) Finish() error {
	if f.finished {
		return ErrFrameFinished
	}
	f.finished = true
	d := f.display
	if d.front.Bounds() != d.back.Bounds() {
		d.front = image.NewRGBA(d.back.Bounds())
	}
	copy(d.front.Pix, d.back.Pix)
	d.frames++
	canvas.Logger().Debug("software: frame presented", "frame", d.frames, "draws", f.draws)
	return nil
}
