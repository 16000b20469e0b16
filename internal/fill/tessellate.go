// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fill

import (
	"errors"
	"math"
	"sort"
)

// Rule selects how winding numbers map to inside/outside.
type Rule int

const (
	// EvenOdd fills regions crossed an odd number of times.
	EvenOdd Rule = iota
	// NonZero fills regions with a non-zero winding number.
	NonZero
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case EvenOdd:
		return "EvenOdd"
	case NonZero:
		return "NonZero"
	default:
		return "Unknown"
	}
}

func (r Rule) inside(winding int) bool {
	if r == NonZero {
		return winding != 0
	}
	return winding%2 != 0
}

// ErrIndexOverflow is returned when a mesh needs more vertices than a
// 32-bit index can address.
var ErrIndexOverflow = errors.New("fill: mesh exceeds 32-bit index range")

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Point
	Indices  []uint32
}

// crossing is an active edge evaluated over one band.
type crossing struct {
	top, mid, bottom float64
	winding          int
}

// Tessellate triangulates the interior of the given polygons under rule.
//
// Every polygon is implicitly closed. The plane is cut into horizontal bands
// at every vertex and every edge intersection, so no two edges cross inside a
// band. Within a band the crossing edges are ordered by X and each inside
// span becomes a trapezoid (two triangles, or one when a side collapses).
// Concave and self-intersecting polygons are handled the same way.
func Tessellate(polygons [][]Point, rule Rule) (*Mesh, error) {
	edges := buildEdges(polygons)
	mb := newMeshBuilder()
	if len(edges) == 0 {
		return mb.mesh, nil
	}

	ys := bandBoundaries(edges)

	var (
		active    []edge
		crossings []crossing
		next      int
	)
	for b := 0; b+1 < len(ys); b++ {
		ya, yb := ys[b], ys[b+1]

		for next < len(edges) && edges[next].Y0 <= ya {
			active = append(active, edges[next])
			next++
		}
		kept := active[:0]
		for _, e := range active {
			if e.Y1 > ya {
				kept = append(kept, e)
			}
		}
		active = kept
		if len(active) < 2 {
			continue
		}

		ym := 0.5 * (ya + yb)
		crossings = crossings[:0]
		for _, e := range active {
			crossings = append(crossings, crossing{
				top:     e.xAt(ya),
				mid:     e.xAt(ym),
				bottom:  e.xAt(yb),
				winding: e.Winding,
			})
		}
		sort.Slice(crossings, func(i, j int) bool { return crossings[i].mid < crossings[j].mid })

		winding := 0
		for k := 0; k+1 < len(crossings); k++ {
			winding += crossings[k].winding
			if !rule.inside(winding) {
				continue
			}
			l, r := crossings[k], crossings[k+1]
			if err := mb.trapezoid(ya, yb, l.top, r.top, l.bottom, r.bottom); err != nil {
				return nil, err
			}
		}
	}

	return mb.mesh, nil
}

// bandBoundaries returns the sorted, deduplicated Y coordinates of every edge
// endpoint and every proper edge intersection.
func bandBoundaries(edges []edge) []float64 {
	ys := make([]float64, 0, 2*len(edges))
	for _, e := range edges {
		ys = append(ys, e.Y0, e.Y1)
	}
	// edges are sorted by Y0, so only edges starting above e.Y1 can meet e.
	for i, a := range edges {
		for j := i + 1; j < len(edges) && edges[j].Y0 < a.Y1; j++ {
			if y, ok := crossingY(a, edges[j]); ok {
				ys = append(ys, y)
			}
		}
	}
	sort.Float64s(ys)

	out := ys[:0]
	for _, y := range ys {
		if len(out) > 0 && y == out[len(out)-1] {
			continue
		}
		out = append(out, y)
	}
	return out
}

type meshBuilder struct {
	mesh  *Mesh
	index map[Point]uint32
}

func newMeshBuilder() *meshBuilder {
	return &meshBuilder{
		mesh:  &Mesh{},
		index: make(map[Point]uint32),
	}
}

// vertex returns the index of p, adding it when new.
func (mb *meshBuilder) vertex(p Point) (uint32, error) {
	if i, ok := mb.index[p]; ok {
		return i, nil
	}
	if uint64(len(mb.mesh.Vertices)) >= math.MaxUint32 {
		return 0, ErrIndexOverflow
	}
	i := uint32(len(mb.mesh.Vertices))
	mb.mesh.Vertices = append(mb.mesh.Vertices, p)
	mb.index[p] = i
	return i, nil
}

// trapezoid emits the span between the left and right edges of a band.
func (mb *meshBuilder) trapezoid(ya, yb, topL, topR, botL, botR float64) error {
	topOpen := topR > topL
	botOpen := botR > botL
	if !topOpen && !botOpen {
		return nil
	}

	var pts []Point
	switch {
	case topOpen && botOpen:
		pts = []Point{{topL, ya}, {topR, ya}, {botR, yb}, {topL, ya}, {botR, yb}, {botL, yb}}
	case topOpen:
		pts = []Point{{topL, ya}, {topR, ya}, {botR, yb}}
	default:
		pts = []Point{{topL, ya}, {botR, yb}, {botL, yb}}
	}
	for _, p := range pts {
		v, err := mb.vertex(p)
		if err != nil {
			return err
		}
		mb.mesh.Indices = append(mb.mesh.Indices, v)
	}
	return nil
}
