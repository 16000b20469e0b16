package canvas

import (
	"encoding/binary"
	"math"
)

// Display is the host-supplied GPU provider a Context draws through.
//
// A Display owns the device, the presentation surface and the shader
// compiler. Implementations live in the backend packages; tests use mocks.
type Display interface {
	// CompileProgram compiles a shader program.
	CompileProgram(src ShaderSource) (Program, error)

	// NewVertexBuffer uploads vertex positions. An empty slice yields a
	// valid zero-length buffer.
	NewVertexBuffer(vertices []Vertex) (Buffer, error)

	// NewIndexBuffer uploads a triangle list index buffer. An empty slice
	// yields a valid zero-length buffer.
	NewIndexBuffer(indices []uint32) (Buffer, error)

	// BeginFrame acquires the render target for the next frame.
	BeginFrame() (Frame, error)

	// FramebufferSize returns the current render target size in pixels.
	FramebufferSize() (width, height int)
}

// Frame is the render target of one frame. Draws accumulate until Finish.
type Frame interface {
	// Clear fills the whole target with c.
	Clear(c Color) error

	// Draw renders the indexed triangle list in ib over the positions in vb
	// with program p.
	Draw(vb, ib Buffer, p Program, u Uniforms) error

	// Finish completes the frame and hands it to the host for presentation.
	Finish() error
}

// Buffer is a GPU buffer created by a Display.
type Buffer interface {
	// Len returns the number of elements (vertices or indices).
	Len() int
	// Release frees the buffer. Calling Release twice is a no-op.
	Release()
}

// Program is a compiled shader program.
type Program interface {
	// Release frees the program. Calling Release twice is a no-op.
	Release()
}

// Uniforms are the per-draw shader parameters.
type Uniforms struct {
	// Matrix maps pixel coordinates to normalized device coordinates.
	Matrix Mat3
	// Color is the flat draw color, straight (not premultiplied) alpha.
	Color Color
}

// Bytes packs the uniforms in the WGSL layout of the canvas shader
// (UniformSize bytes, little-endian).
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformSize)
	cols := u.Matrix.Columns()
	off := UniformMatrixOffset
	for _, col := range cols {
		for _, v := range col {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}
	for i, v := range u.Color.Float32() {
		binary.LittleEndian.PutUint32(buf[UniformColorOffset+4*i:], math.Float32bits(v))
	}
	return buf
}
