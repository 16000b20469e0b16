// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import "errors"

var (
	// ErrNilProvider is returned when NewDisplay is called without a provider.
	ErrNilProvider = errors.New("wgpu: device provider is nil")

	// ErrNilSurface is returned when NewDisplay is called without a surface.
	ErrNilSurface = errors.New("wgpu: surface is nil")

	// ErrNoHAL is returned when the provider does not expose hal.Device and
	// hal.Queue through HalDevice and HalQueue.
	ErrNoHAL = errors.New("wgpu: provider does not expose HAL device and queue")

	// ErrDisplayClosed is returned by Display methods after Close.
	ErrDisplayClosed = errors.New("wgpu: display closed")

	// ErrFrameFinished is returned when a finished frame is used.
	ErrFrameFinished = errors.New("wgpu: frame already finished")

	// ErrForeignResource is returned when a buffer or program from another
	// display is passed to Draw.
	ErrForeignResource = errors.New("wgpu: resource does not belong to this display")

	// ErrGPUTimeout is returned when a submission does not complete in time.
	ErrGPUTimeout = errors.New("wgpu: timed out waiting for GPU")
)
