package software

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/canvas"
	"golang.org/x/image/vector"
)

// rasterize adds every triangle of the list to r in pixel space and
// returns how many were added.
//
// All triangles are added with the same orientation so the shared edges of
// adjacent triangles cancel in the coverage accumulation and the mesh
// renders without seams. Degenerate triangles, triangles with non-finite or
// out of range vertices, and triangles outside the target are skipped.
func rasterize(r *vector.Rasterizer, vertices []canvas.Vertex, indices []uint32, m canvas.Mat3, width, height int) int {
	w, h := float32(width), float32(height)
	added := 0
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= len(vertices) || int(i1) >= len(vertices) || int(i2) >= len(vertices) {
			continue
		}
		a, ok0 := toPixel(m, vertices[i0], w, h)
		b, ok1 := toPixel(m, vertices[i1], w, h)
		c, ok2 := toPixel(m, vertices[i2], w, h)
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		if math32.Max(a[0], math32.Max(b[0], c[0])) < 0 || math32.Min(a[0], math32.Min(b[0], c[0])) > w ||
			math32.Max(a[1], math32.Max(b[1], c[1])) < 0 || math32.Min(a[1], math32.Min(b[1], c[1])) > h {
			continue
		}
		cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
		switch {
		case cross == 0:
			continue
		case cross < 0:
			b, c = c, b
		}
		r.MoveTo(a[0], a[1])
		r.LineTo(b[0], b[1])
		r.LineTo(c[0], c[1])
		r.ClosePath()
		added++
	}
	return added
}

// limit bounds pixel coordinates handed to the rasterizer.
const limit = 1 << 20

// toPixel maps a vertex through m to normalized device coordinates and
// then to pixels with the origin at the top-left.
func toPixel(m canvas.Mat3, v canvas.Vertex, w, h float32) ([2]float32, bool) {
	nx, ny := m.Apply(float64(v.X), float64(v.Y))
	x := (float32(nx) + 1) / 2 * w
	y := (1 - float32(ny)) / 2 * h
	if math32.IsNaN(x) || math32.IsNaN(y) || math32.Abs(x) > limit || math32.Abs(y) > limit {
		return [2]float32{}, false
	}
	return [2]float32{x, y}, true
}
