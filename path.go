package canvas

import "math"

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at Point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a straight segment from the current point to Point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// Close closes the current subpath. Strokes join its last segment to the
// first instead of capping both ends.
type Close struct{}

func (Close) isPathElement() {}

// Path is an immutable sequence of subpaths made of straight segments.
// Paths are produced by PathBuilder.Drain.
type Path struct {
	elements []PathElement
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	if p == nil {
		return nil
	}
	return p.elements
}

// Len returns the number of elements.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.elements)
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p.Len() == 0
}

// Contour is the point list of one subpath.
type Contour struct {
	Points []Point
	// Closed is set when the subpath ended with Close.
	Closed bool
}

// Contours returns every subpath in order. A subpath consisting of a lone
// MoveTo yields a single-point contour.
func (p *Path) Contours() []Contour {
	var (
		cur Contour
		all []Contour
	)
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case MoveTo:
			if len(cur.Points) > 0 {
				all = append(all, cur)
			}
			cur = Contour{Points: []Point{e.Point}}
		case LineTo:
			cur.Points = append(cur.Points, e.Point)
		case Close:
			cur.Closed = len(cur.Points) > 0
		}
	}
	if len(cur.Points) > 0 {
		all = append(all, cur)
	}
	return all
}

// Subpaths returns the points of every subpath in order, without the
// closed flags. See Contours.
func (p *Path) Subpaths() [][]Point {
	contours := p.Contours()
	if len(contours) == 0 {
		return nil
	}
	all := make([][]Point, len(contours))
	for i, c := range contours {
		all[i] = c.Points
	}
	return all
}

// Bounds returns the axis-aligned bounding box of all points as
// (minX, minY, maxX, maxY). An empty path returns all zeros.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	first := true
	for _, el := range p.Elements() {
		var pt Point
		switch e := el.(type) {
		case MoveTo:
			pt = e.Point
		case LineTo:
			pt = e.Point
		default:
			continue
		}
		if first {
			minX, minY, maxX, maxY = pt.X, pt.Y, pt.X, pt.Y
			first = false
			continue
		}
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY
}

// Transform returns a copy of the path with s applied to every point.
func (p *Path) Transform(s Similarity) *Path {
	out := &Path{elements: make([]PathElement, 0, p.Len())}
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case MoveTo:
			x, y := s.Apply(e.Point.X, e.Point.Y)
			out.elements = append(out.elements, MoveTo{Point: Pt(x, y)})
		case LineTo:
			x, y := s.Apply(e.Point.X, e.Point.Y)
			out.elements = append(out.elements, LineTo{Point: Pt(x, y)})
		case Close:
			out.elements = append(out.elements, e)
		}
	}
	return out
}

// PathBuilder accumulates move/line commands until drained.
// The zero value is an empty builder.
type PathBuilder struct {
	elements []PathElement
	open     bool
	closed   bool
	start    Point
	current  Point
}

// MoveTo starts a new subpath at (x, y). The previous subpath is left open.
func (b *PathBuilder) MoveTo(x, y float64) {
	b.elements = append(b.elements, MoveTo{Point: Pt(x, y)})
	b.open = true
	b.closed = false
	b.start = Pt(x, y)
	b.current = b.start
}

// LineTo appends a segment from the current point to (x, y).
// Without a current subpath, LineTo starts one at (x, y). Right after
// ClosePath it starts a new subpath at the closed subpath's start.
func (b *PathBuilder) LineTo(x, y float64) {
	if !b.open {
		if !b.closed {
			b.MoveTo(x, y)
			return
		}
		b.MoveTo(b.start.X, b.start.Y)
	}
	b.elements = append(b.elements, LineTo{Point: Pt(x, y)})
	b.current = Pt(x, y)
}

// ClosePath adds a segment back to the start of the current subpath unless
// the current point is already there, and marks the subpath closed. A
// following LineTo starts a new subpath at the same start point.
func (b *PathBuilder) ClosePath() {
	if !b.open {
		return
	}
	if b.current != b.start {
		b.LineTo(b.start.X, b.start.Y)
	}
	b.elements = append(b.elements, Close{})
	b.open = false
	b.closed = true
}

// Len returns the number of accumulated elements.
func (b *PathBuilder) Len() int {
	return len(b.elements)
}

// Drain returns the accumulated path and resets the builder to empty.
// The returned path does not share storage with the builder.
func (b *PathBuilder) Drain() *Path {
	p := &Path{elements: b.elements}
	b.elements = nil
	b.open = false
	b.closed = false
	return p
}
