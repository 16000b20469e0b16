package canvas

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/canvas.wgsl
var canvasShaderSource string

// Uniform buffer layout of the canvas shader: a mat3x3<f32> (three columns
// padded to 16 bytes each) followed by a vec4<f32> color.
const (
	UniformMatrixOffset = 0
	UniformColorOffset  = 48
	UniformSize         = 64
)

// ShaderSource describes a WGSL program with one vertex and one fragment
// entry point.
//
// A compatible shader reads a Uniforms block at @group(0) @binding(0)
// (mat3x3<f32> transform, vec4<f32> color), vertex positions as
// array<vec2<f32>> at binding 1 and the triangle list indices as array<u32>
// at binding 2.
type ShaderSource struct {
	Label         string
	WGSL          string
	VertexEntry   string
	FragmentEntry string
}

// DefaultShader returns the canvas shader: the vertex stage multiplies each
// position by the uniform matrix and the fragment stage outputs the uniform
// color.
func DefaultShader() ShaderSource {
	return ShaderSource{
		Label:         "canvas_flat",
		WGSL:          canvasShaderSource,
		VertexEntry:   "vs_main",
		FragmentEntry: "fs_main",
	}
}

// CompileWGSL compiles WGSL source to SPIR-V words.
// Errors wrap ErrShaderCompile.
func CompileWGSL(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V size %d is not a multiple of 4", ErrShaderCompile, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}
