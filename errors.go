package canvas

import "errors"

var (
	// ErrClosed is returned by drawing operations on a closed Context.
	ErrClosed = errors.New("canvas: context closed")

	// ErrTessellation is returned when a path cannot be turned into a mesh,
	// for instance because it contains non-finite coordinates.
	ErrTessellation = errors.New("canvas: tessellation failed")

	// ErrShaderCompile is returned when the shader program fails to compile.
	ErrShaderCompile = errors.New("canvas: shader compilation failed")

	// ErrBufferAlloc is returned when a vertex or index buffer cannot be created.
	ErrBufferAlloc = errors.New("canvas: buffer allocation failed")

	// ErrNilDisplay is returned by NewContext when no display is given.
	ErrNilDisplay = errors.New("canvas: nil display")
)
