// Package backend is the registry of canvas display backends.
//
// A backend package registers a Factory from its init function, so a host
// selects backends by importing them:
//
//	import (
//	    "github.com/gogpu/canvas/backend"
//	    _ "github.com/gogpu/canvas/backend/software"
//	)
//
//	display, err := backend.Open(backend.BackendSoftware, 800, 600)
//
// Default picks the best registered backend in the order wgpu, ebiten,
// software. The wgpu backend needs a device owned by the host and is built
// with wgpu.NewDisplay instead of the registry.
package backend
