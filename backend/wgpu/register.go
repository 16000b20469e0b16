// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// SurfaceFunc creates the surface of a display opened through the backend
// registry. Surfaces with a Destroy method are destroyed when the display
// closes.
type SurfaceFunc func(device hal.Device, width, height int, format gputypes.TextureFormat) (Surface, error)

// Register makes the device of provider available as backend.BackendWGPU.
//
// Unlike the other backends the wgpu backend cannot register itself: the
// device belongs to the host. newSurface creates the surface of each opened
// display; nil renders offscreen into a TextureSurface of the requested
// size.
//
//	if err := wgpu.Register(provider, nil); err != nil {
//	    return err
//	}
//	display, name, err := backend.OpenDefault(800, 600)
func Register(provider gpucontext.DeviceProvider, newSurface SurfaceFunc) error {
	if provider == nil {
		return ErrNilProvider
	}
	device, _, err := halDevices(provider)
	if err != nil {
		return err
	}
	if newSurface == nil {
		newSurface = offscreenSurface
	}

	backend.Register(backend.BackendWGPU, func(width, height int) (canvas.Display, error) {
		surface, err := newSurface(device, width, height, surfaceFormat(provider))
		if err != nil {
			return nil, err
		}
		if surface == nil {
			return nil, ErrNilSurface
		}
		d, err := NewDisplay(provider, surface)
		if err != nil {
			if s, ok := surface.(interface{ Destroy() }); ok {
				s.Destroy()
			}
			return nil, err
		}
		d.ownsSurface = true
		return d, nil
	})
	canvas.Logger().Info("wgpu: backend registered", "format", surfaceFormat(provider))
	return nil
}

func offscreenSurface(device hal.Device, width, height int, format gputypes.TextureFormat) (Surface, error) {
	s, err := NewTextureSurface(device, width, height, format)
	if err != nil {
		return nil, err
	}
	return s, nil
}
