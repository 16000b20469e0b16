package canvas

import (
	"fmt"
	"math"
)

// Vertex is a 2D vertex position as uploaded to the GPU.
type Vertex struct {
	X, Y float32
}

// Mesh is an indexed triangle list produced by tessellation.
// Every three consecutive indices form one triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Indices) == 0
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the vertices as
// (minX, minY, maxX, maxY). An empty mesh returns all zeros.
func (m *Mesh) Bounds() (minX, minY, maxX, maxY float32) {
	if m == nil || len(m.Vertices) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.MaxFloat32, math.MaxFloat32
	maxX, maxY = -math.MaxFloat32, -math.MaxFloat32
	for _, v := range m.Vertices {
		minX = min(minX, v.X)
		minY = min(minY, v.Y)
		maxX = max(maxX, v.X)
		maxY = max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY
}

// Validate checks that the index list is a whole number of triangles and
// that every index refers to an existing vertex.
func (m *Mesh) Validate() error {
	if m == nil {
		return nil
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrTessellation, len(m.Indices))
	}
	n := uint64(len(m.Vertices))
	for i, idx := range m.Indices {
		if uint64(idx) >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrTessellation, idx, i, n)
		}
	}
	return nil
}
