package software

import (
	"errors"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
	"golang.org/x/image/vector"
)

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func assertRGBA(t *testing.T, d *Display, x, y int, want color.RGBA) {
	t.Helper()
	got := d.Image().RGBAAt(x, y)
	if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
		t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
	}
}

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func TestNewAndResize(t *testing.T) {
	d := New(64, 32)
	if w, h := d.FramebufferSize(); w != 64 || h != 32 {
		t.Errorf("FramebufferSize() = %dx%d, want 64x32", w, h)
	}
	d.Resize(0, -5)
	if w, h := d.FramebufferSize(); w != 1 || h != 1 {
		t.Errorf("FramebufferSize() after Resize(0, -5) = %dx%d, want 1x1", w, h)
	}
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendSoftware) {
		t.Fatal("software backend not registered")
	}
	d, err := backend.Open(backend.BackendSoftware, 20, 10)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if w, h := d.FramebufferSize(); w != 20 || h != 10 {
		t.Errorf("FramebufferSize() = %dx%d, want 20x10", w, h)
	}
}

func TestHelloWorldStroke(t *testing.T) {
	d := New(800, 600)
	ctx, err := canvas.NewContext(d)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	defer ctx.Close()

	if err := ctx.Clear(canvas.White); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	ctx.StrokeColor(canvas.Red)
	ctx.MoveTo(100, 100)
	ctx.LineTo(400, 300)
	if err := ctx.Stroke(); err != nil {
		t.Fatalf("Stroke() error = %v", err)
	}
	if err := ctx.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if d.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", d.Frames())
	}
	// Midpoint of the segment is covered.
	got := d.Image().RGBAAt(250, 200)
	if got.R < 200 || got.G > 100 || got.B > 100 {
		t.Errorf("midpoint pixel = %v, want red", got)
	}
	assertRGBA(t, d, 10, 10, white)
	assertRGBA(t, d, 250, 100, white)
	assertRGBA(t, d, 700, 500, white)
}

func TestFilledSquareNoSeams(t *testing.T) {
	d := New(40, 40)
	ctx, err := canvas.NewContext(d)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	defer ctx.Close()

	_ = ctx.Clear(canvas.White)
	ctx.FillColor(canvas.Blue)
	ctx.MoveTo(10, 10)
	ctx.LineTo(30, 10)
	ctx.LineTo(30, 30)
	ctx.LineTo(10, 30)
	if err := ctx.Fill(); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if err := ctx.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			assertRGBA(t, d, x, y, blue)
		}
	}
	assertRGBA(t, d, 5, 5, white)
	assertRGBA(t, d, 35, 20, white)
	assertRGBA(t, d, 20, 35, white)
}

func TestFrameKeepsBackBufferUntilFinish(t *testing.T) {
	d := New(8, 8)
	f, err := d.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := f.Clear(canvas.Red); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	// Not presented yet.
	if got := d.Image().RGBAAt(4, 4); got != (color.RGBA{}) {
		t.Errorf("Image() before Finish = %v, want transparent", got)
	}
	if err := f.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	assertRGBA(t, d, 4, 4, red)

	if err := f.Clear(canvas.Blue); !errors.Is(err, ErrFrameFinished) {
		t.Errorf("Clear() after Finish error = %v, want ErrFrameFinished", err)
	}
	if err := f.Draw(nil, nil, nil, canvas.Uniforms{}); !errors.Is(err, ErrFrameFinished) {
		t.Errorf("Draw() after Finish error = %v, want ErrFrameFinished", err)
	}
	if err := f.Finish(); !errors.Is(err, ErrFrameFinished) {
		t.Errorf("second Finish() error = %v, want ErrFrameFinished", err)
	}
}

func TestDrawResourceErrors(t *testing.T) {
	d1, d2 := New(8, 8), New(8, 8)
	prog, err := d1.CompileProgram(canvas.DefaultShader())
	if err != nil {
		t.Fatalf("CompileProgram() error = %v", err)
	}
	vb, _ := d1.NewVertexBuffer([]canvas.Vertex{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})
	ib, _ := d1.NewIndexBuffer([]uint32{0, 1, 2})
	foreign, _ := d2.NewIndexBuffer([]uint32{0, 1, 2})

	f, _ := d1.BeginFrame()
	if err := f.Draw(vb, foreign, prog, canvas.Uniforms{}); !errors.Is(err, ErrForeignResource) {
		t.Errorf("Draw(foreign) error = %v, want ErrForeignResource", err)
	}
	ib.Release()
	ib.Release()
	if err := f.Draw(vb, ib, prog, canvas.Uniforms{}); !errors.Is(err, ErrReleased) {
		t.Errorf("Draw(released) error = %v, want ErrReleased", err)
	}
}

func TestBuffersCopyInput(t *testing.T) {
	d := New(4, 4)
	in := []uint32{0, 1, 2}
	b, err := d.NewIndexBuffer(in)
	if err != nil {
		t.Fatalf("NewIndexBuffer() error = %v", err)
	}
	in[0] = 9
	if got := b.(*buffer).indices[0]; got != 0 {
		t.Errorf("buffer aliases caller slice: indices[0] = %d", got)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
}

func TestCompileProgramInvalid(t *testing.T) {
	d := New(4, 4)
	src := canvas.DefaultShader()
	src.WGSL = "fn broken( {"
	if _, err := d.CompileProgram(src); !errors.Is(err, canvas.ErrShaderCompile) {
		t.Errorf("CompileProgram() error = %v, want ErrShaderCompile", err)
	}
	if _, err := canvas.NewContext(d, canvas.WithShader(src)); !errors.Is(err, canvas.ErrShaderCompile) {
		t.Errorf("NewContext() error = %v, want ErrShaderCompile", err)
	}
}

func TestSavePNG(t *testing.T) {
	d := New(12, 7)
	f, _ := d.BeginFrame()
	_ = f.Clear(canvas.Red)
	_ = f.Finish()

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := d.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 7 {
		t.Errorf("bounds = %v, want 12x7", b)
	}
	r, g, b, a := img.At(3, 3).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 || a>>8 != 255 {
		t.Errorf("pixel = %d,%d,%d,%d, want opaque red", r, g, b, a)
	}

	if err := d.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("SavePNG() into missing directory expected error")
	}
}

func TestResizeBetweenFrames(t *testing.T) {
	d := New(10, 10)
	ctx, err := canvas.NewContext(d)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	defer ctx.Close()

	d.Resize(20, 5)
	if w, h := ctx.Dimensions(); w != 20 || h != 5 {
		t.Errorf("Dimensions() = %vx%v, want 20x5", w, h)
	}
	_ = ctx.Clear(canvas.Red)
	if err := ctx.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if b := d.Image().Bounds(); b.Dx() != 20 || b.Dy() != 5 {
		t.Errorf("Image() bounds = %v, want 20x5", b)
	}
}

func TestRasterizeSkips(t *testing.T) {
	m := canvas.DeviceMatrix(10, 10)
	nan := float32(math.NaN())
	tests := []struct {
		name     string
		vertices []canvas.Vertex
		indices  []uint32
		want     int
	}{
		{"ccw", []canvas.Vertex{{X: 1, Y: 1}, {X: 9, Y: 1}, {X: 1, Y: 9}}, []uint32{0, 1, 2}, 1},
		{"cw", []canvas.Vertex{{X: 1, Y: 1}, {X: 9, Y: 1}, {X: 1, Y: 9}}, []uint32{0, 2, 1}, 1},
		{"degenerate", []canvas.Vertex{{X: 1, Y: 1}, {X: 5, Y: 5}, {X: 9, Y: 9}}, []uint32{0, 1, 2}, 0},
		{"out of range index", []canvas.Vertex{{X: 1, Y: 1}}, []uint32{0, 1, 2}, 0},
		{"nan vertex", []canvas.Vertex{{X: nan, Y: 1}, {X: 9, Y: 1}, {X: 1, Y: 9}}, []uint32{0, 1, 2}, 0},
		{"offscreen", []canvas.Vertex{{X: -50, Y: -50}, {X: -40, Y: -50}, {X: -50, Y: -40}}, []uint32{0, 1, 2}, 0},
		{"partial list", []canvas.Vertex{{X: 1, Y: 1}, {X: 9, Y: 1}}, []uint32{0, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := vector.NewRasterizer(10, 10)
			if got := rasterize(r, tt.vertices, tt.indices, m, 10, 10); got != tt.want {
				t.Errorf("rasterize() = %d, want %d", got, tt.want)
			}
		})
	}
}
