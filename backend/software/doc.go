// Package software is a CPU canvas.Display that rasterizes into an
// image.RGBA with golang.org/x/image/vector.
//
// It implements the fixed semantics of the default canvas shader: every
// position is multiplied by the uniform matrix and covered pixels are
// blended with the uniform color. Shader programs are still compiled with
// naga so an invalid WGSL source fails the same way as on the GPU.
//
// Importing the package registers it with the backend registry:
//
//	import _ "github.com/gogpu/canvas/backend/software"
//
//	display, err := backend.Open(backend.BackendSoftware, 800, 600)
package software
