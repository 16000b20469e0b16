// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/canvas"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// submitTimeout bounds the wait for each submitted pass.
const submitTimeout = 5 * time.Second

// halProvider is implemented by device providers that expose the HAL
// device and queue behind the gpucontext interfaces.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Display is a canvas.Display backed by a HAL device and a host surface.
//
// Display is not safe for concurrent use.
type Display struct {
	device  hal.Device
	queue   hal.Queue
	surface Surface
	format  gputypes.TextureFormat

	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout

	// ownsSurface is set for displays opened through the registry, which
	// destroy their surface on Close.
	ownsSurface bool
	closed      bool
}

var _ canvas.Display = (*Display)(nil)

// NewDisplay creates a display that renders into surface using the device
// of provider. The pipeline targets provider.SurfaceFormat(), or
// BGRA8Unorm when the provider reports none.
func NewDisplay(provider gpucontext.DeviceProvider, surface Surface) (*Display, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if surface == nil {
		return nil, ErrNilSurface
	}
	device, queue, err := halDevices(provider)
	if err != nil {
		return nil, err
	}

	format := surfaceFormat(provider)
	d := &Display{
		device:  device,
		queue:   queue,
		surface: surface,
		format:  format,
	}
	if err := d.createLayouts(); err != nil {
		d.destroyLayouts()
		return nil, err
	}

	w, h := surface.Size()
	canvas.Logger().Info("wgpu: display created", "format", format, "width", w, "height", h)
	return d, nil
}

// surfaceFormat returns the provider's surface format, or BGRA8Unorm when
// it reports none.
func surfaceFormat(provider gpucontext.DeviceProvider) gputypes.TextureFormat {
	format := provider.SurfaceFormat()
	var undefined gputypes.TextureFormat
	if format == undefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return format
}

// halDevices extracts the HAL device and queue from provider.
func halDevices(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return device, queue, nil
}

// createLayouts creates the bind group and pipeline layouts shared by every
// program: uniforms at binding 0, positions at 1 and indices at 2.
func (d *Display) createLayouts() error {
	storage := &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}
	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "canvas_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{Binding: 1, Visibility: gputypes.ShaderStageVertex, Buffer: storage},
			{Binding: 2, Visibility: gputypes.ShaderStageVertex, Buffer: storage},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	d.bindLayout = bindLayout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "canvas_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{d.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout
	return nil
}

func (d *Display) destroyLayouts() {
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.bindLayout != nil {
		d.device.DestroyBindGroupLayout(d.bindLayout)
		d.bindLayout = nil
	}
}

// Format returns the color target format of the pipelines.
func (d *Display) Format() gputypes.TextureFormat {
	return d.format
}

// FramebufferSize returns the surface size in pixels.
func (d *Display) FramebufferSize() (width, height int) {
	return d.surface.Size()
}

// BeginFrame acquires the surface view for the next frame.
func (d *Display) BeginFrame() (canvas.Frame, error) {
	if d.closed {
		return nil, ErrDisplayClosed
	}
	view, err := d.surface.AcquireView()
	if err != nil {
		return nil, fmt.Errorf("wgpu: acquire surface view: %w", err)
	}
	return &frame{display: d, view: view}, nil
}

// Close destroys the shared layouts. Programs and buffers must be released
// by their owners. The surface belongs to the host unless the display was
// opened through the backend registry.
func (d *Display) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.destroyLayouts()
	if d.ownsSurface {
		if s, ok := d.surface.(interface{ Destroy() }); ok {
			s.Destroy()
		}
	}
	canvas.Logger().Info("wgpu: display closed")
	return nil
}

// submit ends encoding, submits the command buffer and waits for it.
func (d *Display) submit(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, submitTimeout)
	if err != nil {
		return fmt.Errorf("wgpu: wait for GPU: %w", err)
	}
	if !fenceOK {
		return ErrGPUTimeout
	}
	return nil
}
