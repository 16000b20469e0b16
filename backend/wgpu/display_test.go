// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// plainProvider implements gpucontext.DeviceProvider without HAL access.
type plainProvider struct {
	format gputypes.TextureFormat
}

func (p *plainProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (p *plainProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (p *plainProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (p *plainProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }

// halTestProvider adds HalDevice and HalQueue.
type halTestProvider struct {
	plainProvider
	device any
	queue  any
}

func (p *halTestProvider) HalDevice() any { return p.device }
func (p *halTestProvider) HalQueue() any  { return p.queue }

func newTestDisplay(t *testing.T, w, h int) (*Display, *TextureSurface) {
	t.Helper()
	device, queue := createNoopDevice(t)
	surface, err := NewTextureSurface(device, w, h, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewTextureSurface() error = %v", err)
	}
	t.Cleanup(surface.Destroy)

	provider := &halTestProvider{
		plainProvider: plainProvider{format: gputypes.TextureFormatBGRA8Unorm},
		device:        device,
		queue:         queue,
	}
	d, err := NewDisplay(provider, surface)
	if err != nil {
		t.Fatalf("NewDisplay() error = %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, surface
}

func TestNewDisplayErrors(t *testing.T) {
	device, queue := createNoopDevice(t)
	surface, err := NewTextureSurface(device, 8, 8, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewTextureSurface() error = %v", err)
	}
	defer surface.Destroy()

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		surface  Surface
		want     error
	}{
		{"nil provider", nil, surface, ErrNilProvider},
		{"nil surface", &plainProvider{}, nil, ErrNilSurface},
		{"no HAL", &plainProvider{}, surface, ErrNoHAL},
		{"wrong device type", &halTestProvider{device: "gpu", queue: queue}, surface, ErrNoHAL},
		{"wrong queue type", &halTestProvider{device: device, queue: 42}, surface, ErrNoHAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDisplay(tt.provider, tt.surface)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewDisplay() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewTextureSurfaceInvalidSize(t *testing.T) {
	device, _ := createNoopDevice(t)
	if _, err := NewTextureSurface(device, 0, 10, gputypes.TextureFormatBGRA8Unorm); err == nil {
		t.Error("NewTextureSurface(0, 10) expected error")
	}
}

func TestDisplayDefaultFormat(t *testing.T) {
	device, queue := createNoopDevice(t)
	surface, err := NewTextureSurface(device, 4, 4, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewTextureSurface() error = %v", err)
	}
	defer surface.Destroy()

	d, err := NewDisplay(&halTestProvider{device: device, queue: queue}, surface)
	if err != nil {
		t.Fatalf("NewDisplay() error = %v", err)
	}
	defer d.Close()
	if d.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want BGRA8Unorm", d.Format())
	}
}

func TestContextOnNoopDevice(t *testing.T) {
	d, surface := newTestDisplay(t, 800, 600)

	ctx, err := canvas.NewContext(d)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	if err := ctx.Clear(canvas.White); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	ctx.StrokeColor(canvas.Red)
	ctx.MoveTo(100, 100)
	ctx.LineTo(400, 300)
	if err := ctx.Stroke(); err != nil {
		t.Fatalf("Stroke() error = %v", err)
	}
	// Empty path: zero-length buffers, no pass recorded.
	if err := ctx.Stroke(); err != nil {
		t.Fatalf("empty Stroke() error = %v", err)
	}
	if got := ctx.Stats().DrawCalls; got != 2 {
		t.Errorf("DrawCalls = %d, want 2", got)
	}

	if err := ctx.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if surface.Presented != 1 {
		t.Errorf("Presented = %d, want 1", surface.Presented)
	}
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if surface.Presented != 2 {
		t.Errorf("Presented after Close = %d, want 2", surface.Presented)
	}
}

func TestFrameFinished(t *testing.T) {
	d, _ := newTestDisplay(t, 16, 16)

	f, err := d.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := f.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if err := f.Clear(canvas.Black); !errors.Is(err, ErrFrameFinished) {
		t.Errorf("Clear() after Finish error = %v, want ErrFrameFinished", err)
	}
	if err := f.Finish(); !errors.Is(err, ErrFrameFinished) {
		t.Errorf("second Finish() error = %v, want ErrFrameFinished", err)
	}
}

func TestDrawForeignResource(t *testing.T) {
	d1, _ := newTestDisplay(t, 16, 16)
	d2, _ := newTestDisplay(t, 16, 16)

	prog, err := d1.CompileProgram(canvas.DefaultShader())
	if err != nil {
		t.Fatalf("CompileProgram() error = %v", err)
	}
	defer prog.Release()

	vb, _ := d2.NewVertexBuffer([]canvas.Vertex{{X: 0, Y: 0}})
	defer vb.Release()
	ib, _ := d1.NewIndexBuffer([]uint32{0, 0, 0})
	defer ib.Release()

	f, err := d1.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := f.Draw(vb, ib, prog, canvas.Uniforms{}); !errors.Is(err, ErrForeignResource) {
		t.Errorf("Draw() error = %v, want ErrForeignResource", err)
	}
}

func TestDisplayClosed(t *testing.T) {
	d, _ := newTestDisplay(t, 16, 16)
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := d.BeginFrame(); !errors.Is(err, ErrDisplayClosed) {
		t.Errorf("BeginFrame() error = %v, want ErrDisplayClosed", err)
	}
	if _, err := d.CompileProgram(canvas.DefaultShader()); !errors.Is(err, ErrDisplayClosed) {
		t.Errorf("CompileProgram() error = %v, want ErrDisplayClosed", err)
	}
	if _, err := d.NewIndexBuffer(nil); !errors.Is(err, ErrDisplayClosed) {
		t.Errorf("NewIndexBuffer() error = %v, want ErrDisplayClosed", err)
	}
}

func TestBufferRelease(t *testing.T) {
	d, _ := newTestDisplay(t, 16, 16)

	b, err := d.NewVertexBuffer(nil)
	if err != nil {
		t.Fatalf("NewVertexBuffer(nil) error = %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if got := b.(*buffer).size; got != minBufferSize {
		t.Errorf("size = %d, want %d", got, minBufferSize)
	}
	b.Release()
	b.Release()
}

func TestUniformBytesPremultiplied(t *testing.T) {
	u := canvas.Uniforms{Matrix: canvas.Identity3(), Color: canvas.NewColor(1, 0.5, 0, 0.5)}
	data := uniformBytes(u)
	if len(data) != canvas.UniformSize {
		t.Fatalf("len = %d, want %d", len(data), canvas.UniformSize)
	}
	want := []float32{0.5, 0.25, 0, 0.5}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[canvas.UniformColorOffset+4*i:]))
		if got != w {
			t.Errorf("color[%d] = %v, want %v", i, got, w)
		}
	}
}

func TestPackVerticesAndIndices(t *testing.T) {
	v := packVertices([]canvas.Vertex{{X: 1.5, Y: -2}})
	if len(v) != 8 {
		t.Fatalf("len(packVertices) = %d, want 8", len(v))
	}
	if x := math.Float32frombits(binary.LittleEndian.Uint32(v[0:])); x != 1.5 {
		t.Errorf("x = %v, want 1.5", x)
	}
	if y := math.Float32frombits(binary.LittleEndian.Uint32(v[4:])); y != -2 {
		t.Errorf("y = %v, want -2", y)
	}

	idx := packIndices([]uint32{7, 0xFFFFFFFE})
	if got := binary.LittleEndian.Uint32(idx[4:]); got != 0xFFFFFFFE {
		t.Errorf("index[1] = %#x, want 0xFFFFFFFE", got)
	}
}
