package canvas

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestClosePath(t *testing.T) {
	var b PathBuilder
	b.ClosePath() // no subpath: no-op
	b.MoveTo(0, 0)
	b.LineTo(10, 0)
	b.LineTo(10, 10)
	b.ClosePath()
	b.ClosePath() // already closed
	b.LineTo(0, 10)

	want := []Contour{
		{Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 0}}, Closed: true},
		{Points: []Point{{0, 0}, {0, 10}}},
	}
	if diff := cmp.Diff(want, b.Drain().Contours()); diff != "" {
		t.Errorf("Contours() mismatch (-want +got):\n%s", diff)
	}
}

func TestClosePath_AtStart(t *testing.T) {
	var b PathBuilder
	b.MoveTo(0, 0)
	b.LineTo(10, 0)
	b.LineTo(0, 0)
	b.ClosePath()

	p := b.Drain()
	want := []PathElement{MoveTo{Pt(0, 0)}, LineTo{Pt(10, 0)}, LineTo{Pt(0, 0)}, Close{}}
	if diff := cmp.Diff(want, p.Elements()); diff != "" {
		t.Errorf("Elements() mismatch (-want +got):\n%s", diff)
	}
	minX, minY, maxX, maxY := p.Bounds()
	if minX != 0 || minY != 0 || maxX != 10 || maxY != 0 {
		t.Errorf("Bounds() = (%v, %v, %v, %v), want (0, 0, 10, 0)", minX, minY, maxX, maxY)
	}
	if c := p.Transform(Translation(1, 1)).Contours(); len(c) != 1 || !c[0].Closed {
		t.Errorf("transformed contours = %v, want one closed contour", c)
	}
}

func TestRect(t *testing.T) {
	var b PathBuilder
	b.Rect(1, 2, 3, 4)
	want := [][]Point{{{1, 2}, {4, 2}, {4, 6}, {1, 6}, {1, 2}}}
	if diff := cmp.Diff(want, b.Drain().Subpaths()); diff != "" {
		t.Errorf("Rect mismatch (-want +got):\n%s", diff)
	}
}

func TestShapeMinimums(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *PathBuilder)
	}{
		{"polyline of one", func(b *PathBuilder) { b.Polyline(Pt(0, 0)) }},
		{"polygon of two", func(b *PathBuilder) { b.Polygon(Pt(0, 0), Pt(1, 1)) }},
		{"regular polygon of two", func(b *PathBuilder) { b.RegularPolygon(2, 0, 0, 1, 0) }},
		{"star of two", func(b *PathBuilder) { b.Star(0, 0, 2, 1, 2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b PathBuilder
			tt.build(&b)
			if b.Len() != 0 {
				t.Errorf("Len() = %d, want 0", b.Len())
			}
		})
	}
}

func TestRegularPolygon(t *testing.T) {
	var b PathBuilder
	b.RegularPolygon(4, 0, 0, 1, 0)
	want := [][]Point{{{1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 0}}}
	opt := cmpopts.EquateApprox(0, 1e-12)
	if diff := cmp.Diff(want, b.Drain().Subpaths(), opt); diff != "" {
		t.Errorf("RegularPolygon mismatch (-want +got):\n%s", diff)
	}
}

func TestStarFillArea(t *testing.T) {
	var b PathBuilder
	b.Star(0, 0, 10, 5, 5)
	sub := b.Drain()
	if n := len(sub.Subpaths()[0]); n != 11 {
		t.Fatalf("star points = %d, want 11", n)
	}

	mesh, err := NewTessellator().TessellateFill(sub, DefaultFillOptions())
	if err != nil {
		t.Fatalf("TessellateFill() error = %v", err)
	}
	// Ten triangles from the center to each edge of the outline.
	want := 0.0
	for i := range 10 {
		a0 := -math.Pi/2 + float64(i)*math.Pi/5
		a1 := a0 + math.Pi/5
		r0, r1 := 10.0, 5.0
		if i%2 == 1 {
			r0, r1 = r1, r0
		}
		want += 0.5 * r0 * r1 * math.Sin(a1-a0)
	}
	if got := meshArea(mesh); math.Abs(got-want) > 1e-2 {
		t.Errorf("star area = %v, want %v", got, want)
	}
}

func TestContextShapes(t *testing.T) {
	ctx := newTestContext(t, newMockDisplay(100, 100))
	ctx.DrawRectangle(10, 10, 20, 20)
	ctx.DrawPolygon(Pt(50, 50), Pt(60, 50), Pt(55, 60))
	ctx.DrawRegularPolygon(6, 80, 80, 10, 0)
	ctx.DrawStar(20, 80, 10, 4, 5)
	ctx.MoveTo(0, 0)
	ctx.LineTo(5, 0)
	ctx.ClosePath()
	// Every closed shape ends with a Close element.
	if got := ctx.path.Len(); got != 6+5+8+12+4 {
		t.Errorf("path elements = %d, want %d", got, 6+5+8+12+4)
	}
}

// covered reports whether (x, y) lies inside a triangle of m.
func covered(m *Mesh, x, y float64) bool {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		d1 := (float64(b.X)-float64(a.X))*(y-float64(a.Y)) - (float64(b.Y)-float64(a.Y))*(x-float64(a.X))
		d2 := (float64(c.X)-float64(b.X))*(y-float64(b.Y)) - (float64(c.Y)-float64(b.Y))*(x-float64(b.X))
		d3 := (float64(a.X)-float64(c.X))*(y-float64(c.Y)) - (float64(a.Y)-float64(c.Y))*(x-float64(c.X))
		neg := d1 < 0 || d2 < 0 || d3 < 0
		pos := d1 > 0 || d2 > 0 || d3 > 0
		if !(neg && pos) {
			return true
		}
	}
	return false
}

func TestStrokeRect_ClosingCorner(t *testing.T) {
	joins := []struct {
		name string
		join LineJoin
	}{
		{"miter", LineJoinMiter},
		{"round", LineJoinRound},
		{"bevel", LineJoinBevel},
	}
	for _, tt := range joins {
		t.Run(tt.name, func(t *testing.T) {
			var b PathBuilder
			b.Rect(0, 0, 100, 100)
			opts := DefaultStrokeOptions().WithWidth(10).WithJoin(tt.join)
			m, err := NewTessellator().TessellateStroke(b.Drain(), opts)
			if err != nil {
				t.Fatalf("TessellateStroke: %v", err)
			}

			// (-2, -2) is the closing corner; the others must match it.
			for _, p := range []Point{{-2, -2}, {102, -2}, {102, 102}, {-2, 102}} {
				if !covered(m, p.X, p.Y) {
					t.Errorf("corner point %v not covered", p)
				}
			}
			for _, p := range []Point{{50, 50}, {10, 10}, {50, -6}, {106, 50}} {
				if covered(m, p.X, p.Y) {
					t.Errorf("point %v off the stroke is covered", p)
				}
			}
		})
	}

	// Miter joins reach the outer corner everywhere, the closing one included.
	var b PathBuilder
	b.Rect(0, 0, 100, 100)
	m, err := NewTessellator().TessellateStroke(b.Drain(), DefaultStrokeOptions().WithWidth(10))
	if err != nil {
		t.Fatalf("TessellateStroke: %v", err)
	}
	for _, p := range []Point{{-4, -4}, {104, -4}, {104, 104}, {-4, 104}} {
		if !covered(m, p.X, p.Y) {
			t.Errorf("miter corner %v not covered", p)
		}
	}
	// Ring area: 110^2 - 90^2.
	if got := meshArea(m); math.Abs(got-4000) > 1 {
		t.Errorf("stroke area = %v, want 4000", got)
	}
}
