package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/canvas"
)

// registry holds registered display factories.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// A window beats an offscreen image.
	backendPriority = []string{BackendWGPU, BackendEbiten, BackendSoftware}
)

// Register registers a display factory with the given name.
// This is typically called from init() functions in backend packages.
// If a factory with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a factory from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Open creates a display from the named backend.
func Open(name string, width, height int) (canvas.Display, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}

	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, Available())
	}

	d, err := factory(width, height)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	canvas.Logger().Info("backend: display opened", "backend", name, "width", width, "height", height)
	return d, nil
}

// Default returns the name of the best available backend based on priority.
// Returns "" if no backends are registered.
func Default() string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if _, ok := factories[name]; ok {
			return name
		}
	}

	// Fallback: first available in name order
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	slices.Sort(names)
	return names[0]
}

// OpenDefault creates a display from the best available backend.
func OpenDefault(width, height int) (canvas.Display, string, error) {
	name := Default()
	if name == "" {
		return nil, "", ErrBackendNotAvailable
	}
	d, err := Open(name, width, height)
	return d, name, err
}
