// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu draws a canvas through a gogpu/wgpu HAL device.
//
// The host owns the device and the presentation surface. It hands both to
// NewDisplay: the device through a gpucontext.DeviceProvider that also
// exposes HalDevice() and HalQueue(), and the surface through the Surface
// interface. TextureSurface is an offscreen Surface for headless rendering.
//
//	display, err := wgpu.NewDisplay(provider, surface)
//	if err != nil {
//	    return err
//	}
//	defer display.Close()
//	ctx, err := canvas.NewContext(display)
//
// # Pipeline
//
// The canvas shader pulls vertices from storage buffers: positions at
// binding 1 and triangle list indices at binding 2, with the uniforms at
// binding 0. Each Draw is one render pass with a single non-indexed draw of
// len(indices) vertices, blended with premultiplied alpha.
//
// # Synchronization
//
// Every Clear and Draw is encoded, submitted and waited on before it
// returns, so buffers may be released as soon as Draw returns.
package wgpu
