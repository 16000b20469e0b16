// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fill

import "sort"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// edge is a non-horizontal polygon edge normalized so that Y0 < Y1.
type edge struct {
	X0, Y0 float64
	X1, Y1 float64

	// Winding is +1 when the original edge pointed toward increasing Y,
	// -1 otherwise.
	Winding int
}

// newEdge returns the normalized edge from a to b.
// Horizontal edges have no Y extent and are rejected.
func newEdge(a, b Point) (edge, bool) {
	if a.Y == b.Y {
		return edge{}, false
	}
	if a.Y < b.Y {
		return edge{X0: a.X, Y0: a.Y, X1: b.X, Y1: b.Y, Winding: 1}, true
	}
	return edge{X0: b.X, Y0: b.Y, X1: a.X, Y1: a.Y, Winding: -1}, true
}

// xAt returns the X coordinate of the edge at y. y is clamped to the edge span.
func (e edge) xAt(y float64) float64 {
	switch {
	case y <= e.Y0:
		return e.X0
	case y >= e.Y1:
		return e.X1
	}
	t := (y - e.Y0) / (e.Y1 - e.Y0)
	return e.X0 + (e.X1-e.X0)*t
}

// buildEdges collects the edges of every polygon, each implicitly closed.
// The result is sorted by Y0.
func buildEdges(polygons [][]Point) []edge {
	var edges []edge
	for _, poly := range polygons {
		n := len(poly)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			if e, ok := newEdge(poly[i], poly[(i+1)%n]); ok {
				edges = append(edges, e)
			}
		}
	}
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Y0 < edges[j].Y0 })
	return edges
}

// crossingY returns the Y coordinate where a and b properly cross, if they
// do so strictly inside both Y spans.
func crossingY(a, b edge) (float64, bool) {
	lo := max(a.Y0, b.Y0)
	hi := min(a.Y1, b.Y1)
	if hi <= lo {
		return 0, false
	}
	// Horizontal separation at both ends of the shared span.
	d0 := a.xAt(lo) - b.xAt(lo)
	d1 := a.xAt(hi) - b.xAt(hi)
	if d0 == 0 || d1 == 0 || (d0 < 0) == (d1 < 0) {
		return 0, false
	}
	t := d0 / (d0 - d1)
	y := lo + (hi-lo)*t
	if y <= lo || y >= hi {
		return 0, false
	}
	return y, true
}
