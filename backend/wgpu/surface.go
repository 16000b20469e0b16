// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Surface is the presentation target owned by the host.
type Surface interface {
	// AcquireView returns the view to render the next frame into.
	AcquireView() (hal.TextureView, error)
	// Present hands the rendered frame to the compositor.
	Present() error
	// Size returns the surface size in pixels.
	Size() (width, height int)
}

// TextureSurface is an offscreen Surface backed by one render texture.
// Present is a no-op; Presented counts the calls.
type TextureSurface struct {
	device hal.Device
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int

	// Presented is the number of frames presented.
	Presented int
}

var _ Surface = (*TextureSurface)(nil)

// NewTextureSurface creates a width x height render texture on device.
func NewTextureSurface(device hal.Device, width, height int, format gputypes.TextureFormat) (*TextureSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid surface size %dx%d", width, height)
	}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: "canvas_offscreen",
		Size: hal.Extent3D{
			Width:              uint32(width),  //nolint:gosec // checked positive
			Height:             uint32(height), //nolint:gosec // checked positive
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create offscreen texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "canvas_offscreen_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create offscreen view: %w", err)
	}
	return &TextureSurface{device: device, tex: tex, view: view, width: width, height: height}, nil
}

// AcquireView returns the texture view.
func (s *TextureSurface) AcquireView() (hal.TextureView, error) {
	if s.view == nil {
		return nil, fmt.Errorf("wgpu: offscreen surface destroyed")
	}
	return s.view, nil
}

// Present records a presented frame.
func (s *TextureSurface) Present() error {
	s.Presented++
	return nil
}

// Size returns the texture size.
func (s *TextureSurface) Size() (width, height int) {
	return s.width, s.height
}

// Texture returns the render texture, for readback by the host.
func (s *TextureSurface) Texture() hal.Texture {
	return s.tex
}

// Destroy releases the texture and its view.
func (s *TextureSurface) Destroy() {
	if s.view != nil {
		s.device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.tex != nil {
		s.device.DestroyTexture(s.tex)
		s.tex = nil
	}
}
