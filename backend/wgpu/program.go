// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/canvas"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// program is a compiled canvas shader and its render pipeline.
type program struct {
	display  *Display
	label    string
	shader   hal.ShaderModule
	pipeline hal.RenderPipeline
}

// CompileProgram compiles src to SPIR-V with naga and builds a render
// pipeline for the display's surface format.
func (d *Display) CompileProgram(src canvas.ShaderSource) (canvas.Program, error) {
	if d.closed {
		return nil, ErrDisplayClosed
	}
	spirv, err := canvas.CompileWGSL(src.WGSL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Label, err)
	}

	shader, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  src.Label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: create shader module: %w", canvas.ErrShaderCompile, src.Label, err)
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  src.Label + "_pipeline",
		Layout: d.pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: src.VertexEntry,
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: src.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    d.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		d.device.DestroyShaderModule(shader)
		return nil, fmt.Errorf("%w: %s: create render pipeline: %w", canvas.ErrShaderCompile, src.Label, err)
	}

	canvas.Logger().Info("wgpu: program compiled", "label", src.Label, "spirvWords", len(spirv))
	return &program{display: d, label: src.Label, shader: shader, pipeline: pipeline}, nil
}

// Release destroys the pipeline and the shader module.
func (p *program) Release() {
	if p.pipeline != nil {
		p.display.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.shader != nil {
		p.display.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
