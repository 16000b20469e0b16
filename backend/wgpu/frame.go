// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/canvas"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// frame renders into one acquired surface view.
type frame struct {
	display  *Display
	view     hal.TextureView
	draws    int
	finished bool
}

// Clear runs a render pass that clears the view to c.
func (f *frame) Clear(c canvas.Color) error {
	if err := f.check(); err != nil {
		return err
	}
	p := c.Premultiply()
	cv := gputypes.Color{R: p.R, G: p.G, B: p.B, A: p.A}
	return f.pass("canvas_clear", gputypes.LoadOpClear, cv, nil)
}

// Draw renders len(ib) indices over the positions in vb. The uniform color
// is premultiplied to match the pipeline blend state.
func (f *frame) Draw(vb, ib canvas.Buffer, p canvas.Program, u canvas.Uniforms) error {
	if err := f.check(); err != nil {
		return err
	}
	vbuf, ok1 := vb.(*buffer)
	ibuf, ok2 := ib.(*buffer)
	prog, ok3 := p.(*program)
	if !ok1 || !ok2 || !ok3 || vbuf.display != f.display || ibuf.display != f.display || prog.display != f.display {
		return ErrForeignResource
	}
	if vbuf.buf == nil || ibuf.buf == nil || prog.pipeline == nil {
		return fmt.Errorf("wgpu: draw with released resource")
	}
	if ibuf.n == 0 {
		return nil
	}

	d := f.display
	uniformBuf, err := d.createAndUploadBuffer("canvas_uniforms", uniformBytes(u),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	defer d.device.DestroyBuffer(uniformBuf)

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "canvas_bind",
		Layout: d.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: canvas.UniformSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: vbuf.buf.NativeHandle(), Offset: 0, Size: vbuf.size}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: ibuf.buf.NativeHandle(), Offset: 0, Size: ibuf.size}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}
	defer d.device.DestroyBindGroup(bindGroup)

	err = f.pass("canvas_draw", gputypes.LoadOpLoad, gputypes.Color{}, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(prog.pipeline)
		rp.SetBindGroup(0, bindGroup, nil)
		rp.Draw(uint32(ibuf.n), 1, 0, 0) //nolint:gosec // index count bounded by mesh validation
	})
	if err != nil {
		return err
	}
	f.draws++
	return nil
}

// Finish presents the surface. Further use of the frame fails.
func (f *frame) Finish() error {
	if err := f.check(); err != nil {
		return err
	}
	f.finished = true
	if err := f.display.surface.Present(); err != nil {
		return fmt.Errorf("wgpu: present: %w", err)
	}
	canvas.Logger().Debug("wgpu: frame presented", "draws", f.draws)
	return nil
}

func (f *frame) check() error {
	if f.finished {
		return ErrFrameFinished
	}
	if f.display.closed {
		return ErrDisplayClosed
	}
	return nil
}

// pass encodes one render pass on the frame view and submits it.
func (f *frame) pass(label string, load gputypes.LoadOp, cv gputypes.Color, record func(hal.RenderPassEncoder)) error {
	d := f.display
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       f.view,
			LoadOp:     load,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: cv,
		}},
	})
	if record != nil {
		record(rp)
	}
	rp.End()

	return d.submit(encoder)
}

// uniformBytes packs u with a premultiplied color.
func uniformBytes(u canvas.Uniforms) []byte {
	u.Color = u.Color.Premultiply()
	return u.Bytes()
}
