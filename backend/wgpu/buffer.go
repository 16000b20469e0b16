// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/canvas"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// minBufferSize is the smallest allocation; empty meshes still bind a
// valid storage buffer.
const minBufferSize = 16

// buffer is a read-only storage buffer holding vertex positions or indices.
type buffer struct {
	display *Display
	buf     hal.Buffer
	size    uint64
	n       int
}

// Len returns the number of vertices or indices.
func (b *buffer) Len() int { return b.n }

// Release destroys the GPU buffer. Calling Release twice is a no-op.
func (b *buffer) Release() {
	if b.buf == nil {
		return
	}
	b.display.device.DestroyBuffer(b.buf)
	b.buf = nil
}

// NewVertexBuffer uploads positions as tightly packed vec2<f32>.
func (d *Display) NewVertexBuffer(vertices []canvas.Vertex) (canvas.Buffer, error) {
	return d.newStorageBuffer("canvas_positions", packVertices(vertices), len(vertices))
}

// NewIndexBuffer uploads triangle list indices as u32.
func (d *Display) NewIndexBuffer(indices []uint32) (canvas.Buffer, error) {
	return d.newStorageBuffer("canvas_indices", packIndices(indices), len(indices))
}

func (d *Display) newStorageBuffer(label string, data []byte, n int) (*buffer, error) {
	if d.closed {
		return nil, ErrDisplayClosed
	}
	buf, err := d.createAndUploadBuffer(label, data,
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return &buffer{display: d, buf: buf, size: uint64(max(len(data), minBufferSize)), n: n}, nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data, padded to
// minBufferSize.
func (d *Display) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	if len(data) < minBufferSize {
		padded := make([]byte, minBufferSize)
		copy(padded, data)
		data = padded
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	d.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func packVertices(vertices []canvas.Vertex) []byte {
	data := make([]byte, 8*len(vertices))
	for i, v := range vertices {
		binary.LittleEndian.PutUint32(data[8*i:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(data[8*i+4:], math.Float32bits(v.Y))
	}
	return data
}

func packIndices(indices []uint32) []byte {
	data := make([]byte, 4*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(data[4*i:], idx)
	}
	return data
}
