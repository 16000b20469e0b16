package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/canvas"
	"github.com/google/go-cmp/cmp"
)

type stubDisplay struct {
	w, h int
}

func (d *stubDisplay) CompileProgram(canvas.ShaderSource) (canvas.Program, error) { return nil, nil }
func (d *stubDisplay) NewVertexBuffer([]canvas.Vertex) (canvas.Buffer, error)     { return nil, nil }
func (d *stubDisplay) NewIndexBuffer([]uint32) (canvas.Buffer, error)             { return nil, nil }
func (d *stubDisplay) BeginFrame() (canvas.Frame, error)                          { return nil, nil }
func (d *stubDisplay) FramebufferSize() (int, int)                                { return d.w, d.h }

func stubFactory(w, h int) (canvas.Display, error) {
	return &stubDisplay{w: w, h: h}, nil
}

// withRegistry swaps in an empty registry for the duration of a test.
func withRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := factories
	factories = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})
}

func TestRegisterAndOpen(t *testing.T) {
	withRegistry(t)
	Register("stub", stubFactory)

	if !IsRegistered("stub") {
		t.Fatal("IsRegistered(stub) = false")
	}
	d, err := Open("stub", 320, 200)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	w, h := d.FramebufferSize()
	if w != 320 || h != 200 {
		t.Errorf("FramebufferSize() = %dx%d, want 320x200", w, h)
	}

	Unregister("stub")
	if IsRegistered("stub") {
		t.Error("IsRegistered(stub) after Unregister = true")
	}
}

func TestOpenUnknown(t *testing.T) {
	withRegistry(t)
	_, err := Open("missing", 10, 10)
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(missing) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestOpenInvalidSize(t *testing.T) {
	withRegistry(t)
	Register("stub", stubFactory)

	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open("stub", tt.w, tt.h); !errors.Is(err, ErrInvalidSize) {
				t.Errorf("Open(%d, %d) error = %v, want ErrInvalidSize", tt.w, tt.h, err)
			}
		})
	}
}

func TestOpenFactoryError(t *testing.T) {
	withRegistry(t)
	boom := errors.New("boom")
	Register("broken", func(int, int) (canvas.Display, error) { return nil, boom })

	if _, err := Open("broken", 10, 10); !errors.Is(err, boom) {
		t.Errorf("Open(broken) error = %v, want wrapped boom", err)
	}
}

func TestAvailableSorted(t *testing.T) {
	withRegistry(t)
	Register("zeta", stubFactory)
	Register(BackendSoftware, stubFactory)
	Register("alpha", stubFactory)

	want := []string{"alpha", BackendSoftware, "zeta"}
	if diff := cmp.Diff(want, Available()); diff != "" {
		t.Errorf("Available() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultPriority(t *testing.T) {
	withRegistry(t)
	if got := Default(); got != "" {
		t.Errorf("Default() on empty registry = %q, want empty", got)
	}
	if _, _, err := OpenDefault(10, 10); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("OpenDefault() error = %v, want ErrBackendNotAvailable", err)
	}

	Register("custom", stubFactory)
	if got := Default(); got != "custom" {
		t.Errorf("Default() = %q, want custom fallback", got)
	}

	Register(BackendSoftware, stubFactory)
	if got := Default(); got != BackendSoftware {
		t.Errorf("Default() = %q, want %q", got, BackendSoftware)
	}

	Register(BackendEbiten, stubFactory)
	d, name, err := OpenDefault(64, 48)
	if err != nil {
		t.Fatalf("OpenDefault() error = %v", err)
	}
	if name != BackendEbiten {
		t.Errorf("OpenDefault() name = %q, want %q", name, BackendEbiten)
	}
	if w, h := d.FramebufferSize(); w != 64 || h != 48 {
		t.Errorf("FramebufferSize() = %dx%d, want 64x48", w, h)
	}
}
