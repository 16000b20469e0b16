package canvas

import (
	"errors"
	"fmt"
	"io"
)

// FrameStats counts the work recorded in the frame in progress.
type FrameStats struct {
	// Frame is the zero-based number of the frame in progress.
	Frame uint64
	// DrawCalls is the number of draws issued by Stroke and Fill.
	DrawCalls int
	// Vertices and Indices are the totals uploaded for those draws.
	Vertices int
	Indices  int
	// Skipped is the number of strokes and fills dropped because
	// tessellation failed.
	Skipped int
}

// Context is an immediate-mode drawing context bound to a Display.
//
// A Context keeps the drawing state between calls: the path being built,
// the stroke and fill colors, and the transform stack. Every Stroke or Fill
// drains the current path, tessellates it into a triangle mesh and issues
// exactly one draw into the frame in progress. Render presents that frame
// and starts the next one.
//
// A Context is in one of two states. It is created with a frame in progress
// and stays there until Close, after which it is idle: drawing operations
// return ErrClosed.
//
// Context is not safe for concurrent use.
type Context struct {
	display     Display
	program     Program
	frame       Frame
	tessellator Tessellator

	stroke        StrokeOptions
	fill          FillOptions
	userTransform bool

	// Drawing state
	path        PathBuilder
	transforms  TransformStack
	strokeColor Color
	fillColor   Color

	stats  FrameStats
	closed bool
}

// Ensure Context implements io.Closer
var _ io.Closer = (*Context)(nil)

// NewContext compiles the shader program on d and opens the first frame.
//
// A shader that fails to compile is fatal: NewContext returns an error
// wrapping ErrShaderCompile and no Context.
//
//	ctx, err := canvas.NewContext(display)
//	if err != nil {
//	    return err
//	}
//	defer ctx.Close()
func NewContext(d Display, opts ...Option) (*Context, error) {
	if d == nil {
		return nil, ErrNilDisplay
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	tess := o.tessellator
	if tess == nil {
		tess = NewTessellator()
	}

	program, err := d.CompileProgram(o.shader)
	if err != nil {
		if !errors.Is(err, ErrShaderCompile) {
			err = fmt.Errorf("%w: %w", ErrShaderCompile, err)
		}
		return nil, err
	}

	frame, err := d.BeginFrame()
	if err != nil {
		program.Release()
		return nil, fmt.Errorf("canvas: begin frame: %w", err)
	}

	w, h := d.FramebufferSize()
	Logger().Info("canvas: context created",
		"shader", o.shader.Label, "width", w, "height", h,
		"userTransform", o.userTransform)

	return &Context{
		display:       d,
		program:       program,
		frame:         frame,
		tessellator:   tess,
		stroke:        o.stroke,
		fill:          o.fill,
		userTransform: o.userTransform,
		strokeColor:   Black,
		fillColor:     Black,
	}, nil
}

// Render finishes the frame in progress and begins the next one.
//
// When finishing fails the next frame is still started so a host loop can
// keep going; the finish error is returned either way.
func (c *Context) Render() error {
	if c.closed {
		return ErrClosed
	}

	var finishErr error
	if c.frame != nil {
		if err := c.frame.Finish(); err != nil {
			Logger().Warn("canvas: finish frame", "frame", c.stats.Frame, "err", err)
			finishErr = fmt.Errorf("canvas: finish frame: %w", err)
		}
	}
	c.frame = nil
	c.stats = FrameStats{Frame: c.stats.Frame + 1}

	frame, err := c.display.BeginFrame()
	if err != nil {
		return errors.Join(finishErr, fmt.Errorf("canvas: begin frame: %w", err))
	}
	c.frame = frame
	return finishErr
}

// currentFrame returns the frame in progress, starting one if a previous
// BeginFrame failed.
func (c *Context) currentFrame() (Frame, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.frame == nil {
		frame, err := c.display.BeginFrame()
		if err != nil {
			return nil, fmt.Errorf("canvas: begin frame: %w", err)
		}
		c.frame = frame
	}
	return c.frame, nil
}

// Clear fills the whole frame with col.
func (c *Context) Clear(col Color) error {
	frame, err := c.currentFrame()
	if err != nil {
		return err
	}
	return frame.Clear(col)
}

// Stroke strokes the current path with the stroke color and clears the path.
// An empty path still issues one draw with empty buffers.
func (c *Context) Stroke() error {
	return c.draw("stroke", c.strokeColor, func(p *Path) (*Mesh, error) {
		return c.tessellator.TessellateStroke(p, c.stroke)
	})
}

// Fill fills the current path with the fill color and clears the path.
// Every subpath is implicitly closed.
func (c *Context) Fill() error {
	return c.draw("fill", c.fillColor, func(p *Path) (*Mesh, error) {
		return c.tessellator.TessellateFill(p, c.fill)
	})
}

// draw drains the path, tessellates it and records one draw.
//
// The path is drained before anything can fail, so a failed draw never
// leaks its geometry into the next one. A tessellation failure skips the
// draw (logged and counted in Stats) and leaves the frame open for further
// drawing.
func (c *Context) draw(op string, col Color, tessellate func(*Path) (*Mesh, error)) error {
	path := c.path.Drain()
	frame, err := c.currentFrame()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	mesh, err := tessellate(path)
	if err == nil {
		err = mesh.Validate()
	}
	if err != nil {
		c.stats.Skipped++
		Logger().Warn("canvas: draw skipped", "op", op, "elements", path.Len(), "err", err)
		if !errors.Is(err, ErrTessellation) {
			err = fmt.Errorf("%w: %w", ErrTessellation, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if mesh == nil {
		mesh = &Mesh{}
	}

	vb, err := c.display.NewVertexBuffer(mesh.Vertices)
	if err != nil {
		return fmt.Errorf("%s: vertex buffer: %w: %w", op, ErrBufferAlloc, err)
	}
	defer vb.Release()

	ib, err := c.display.NewIndexBuffer(mesh.Indices)
	if err != nil {
		return fmt.Errorf("%s: index buffer: %w: %w", op, ErrBufferAlloc, err)
	}
	defer ib.Release()

	u := Uniforms{Matrix: c.RenderMatrix(), Color: col}
	if err := frame.Draw(vb, ib, c.program, u); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.stats.DrawCalls++
	c.stats.Vertices += len(mesh.Vertices)
	c.stats.Indices += len(mesh.Indices)
	Logger().Debug("canvas: draw", "op", op,
		"vertices", len(mesh.Vertices), "indices", len(mesh.Indices))
	return nil
}

// Close finishes the frame in progress and releases the shader program.
// Close is idempotent; drawing after Close returns ErrClosed.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var err error
	if c.frame != nil {
		if ferr := c.frame.Finish(); ferr != nil {
			err = fmt.Errorf("canvas: finish frame: %w", ferr)
		}
		c.frame = nil
	}
	if c.program != nil {
		c.program.Release()
		c.program = nil
	}
	c.path.Drain()

	Logger().Info("canvas: context closed", "frames", c.stats.Frame+1)
	return err
}

// Stats returns the counters of the frame in progress.
func (c *Context) Stats() FrameStats {
	return c.stats
}

// RenderMatrix returns the matrix the next draw will use.
//
// It is recomputed from the display's framebuffer size on every call, so a
// resized window takes effect on the next draw. By default it is the device
// matrix only; with WithUserTransform(true) the current transform is applied
// first.
func (c *Context) RenderMatrix() Mat3 {
	w, h := c.display.FramebufferSize()
	m := DeviceMatrix(w, h)
	if c.userTransform {
		m = m.Mul(c.transforms.Current().Matrix())
	}
	return m
}

// Dimensions returns the framebuffer size in pixels.
func (c *Context) Dimensions() (width, height float64) {
	w, h := c.display.FramebufferSize()
	return float64(w), float64(h)
}

// StrokeColor sets the color used by Stroke.
func (c *Context) StrokeColor(col Color) {
	c.strokeColor = col
}

// FillColor sets the color used by Fill.
func (c *Context) FillColor(col Color) {
	c.fillColor = col
}

// CurrentStrokeColor returns the color used by Stroke.
func (c *Context) CurrentStrokeColor() Color {
	return c.strokeColor
}

// CurrentFillColor returns the color used by Fill.
func (c *Context) CurrentFillColor() Color {
	return c.fillColor
}

// MoveTo starts a new subpath at (x, y).
func (c *Context) MoveTo(x, y float64) {
	c.path.MoveTo(x, y)
}

// LineTo adds a segment to (x, y). Without a current subpath it starts one.
func (c *Context) LineTo(x, y float64) {
	c.path.LineTo(x, y)
}

// PushMatrix saves the current transform.
func (c *Context) PushMatrix() {
	c.transforms.Push()
}

// PopMatrix restores the last saved transform, or the identity when
// nothing is saved.
func (c *Context) PopMatrix() {
	c.transforms.Pop()
}

// Rotate rotates the current transform by angle radians.
func (c *Context) Rotate(angle float64) {
	c.transforms.Rotate(angle)
}

// Scale scales the current transform uniformly.
func (c *Context) Scale(factor float64) {
	c.transforms.Scale(factor)
}

// Translate translates the current transform.
func (c *Context) Translate(dx, dy float64) {
	c.transforms.Translate(dx, dy)
}

// Transform composes t onto the current transform.
func (c *Context) Transform(t Similarity) {
	c.transforms.Transform(t)
}

// ResetTransform sets the current transform to the identity.
func (c *Context) ResetTransform() {
	c.transforms.Reset()
}

// CurrentTransform returns the current transform.
func (c *Context) CurrentTransform() Similarity {
	return c.transforms.Current()
}

// Save saves the current transform and returns a function restoring it.
// See TransformStack.Save.
func (c *Context) Save() (restore func()) {
	return c.transforms.Save()
}

// WithState runs fn between a push and a pop of the transform stack.
// The transform is restored even if fn panics.
func (c *Context) WithState(fn func()) {
	restore := c.Save()
	defer restore()
	fn()
}
