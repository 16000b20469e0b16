package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/canvas"
)

// Backend name constants.
const (
	// BackendWGPU is the name of the gogpu/wgpu HAL backend.
	BackendWGPU = "wgpu"
	// BackendEbiten is the name of the Ebitengine backend.
	BackendEbiten = "ebiten"
	// BackendSoftware is the name of the CPU rasterizer backend.
	BackendSoftware = "software"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrInvalidSize is returned when a display is requested with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("backend: invalid framebuffer size")
)

// Factory creates a Display with the given framebuffer size.
//
// Backends that need a host-owned device (such as wgpu) register their
// factory once the host hands them the device.
type Factory func(width, height int) (canvas.Display, error)

// CheckSize validates a requested framebuffer size.
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}
