package canvas

import "math"

// Rect adds a closed rectangle subpath.
func (b *PathBuilder) Rect(x, y, w, h float64) {
	b.MoveTo(x, y)
	b.LineTo(x+w, y)
	b.LineTo(x+w, y+h)
	b.LineTo(x, y+h)
	b.ClosePath()
}

// Polyline adds an open subpath through pts. Fewer than two points add
// nothing.
func (b *PathBuilder) Polyline(pts ...Point) {
	if len(pts) < 2 {
		return
	}
	b.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		b.LineTo(p.X, p.Y)
	}
}

// Polygon adds a closed subpath through pts. Fewer than three points add
// nothing.
func (b *PathBuilder) Polygon(pts ...Point) {
	if len(pts) < 3 {
		return
	}
	b.Polyline(pts...)
	b.ClosePath()
}

// RegularPolygon adds a regular polygon with n sides centered at (x, y).
// The first vertex is at angle rotation.
func (b *PathBuilder) RegularPolygon(n int, x, y, r, rotation float64) {
	if n < 3 {
		return
	}
	step := 2 * math.Pi / float64(n)
	pts := make([]Point, n)
	for i := range pts {
		a := rotation + step*float64(i)
		pts[i] = Pt(x+r*math.Cos(a), y+r*math.Sin(a))
	}
	b.Polygon(pts...)
}

// Star adds a star with the given number of points, alternating between
// the outer and inner radius, with the first point straight up.
func (b *PathBuilder) Star(cx, cy, outerRadius, innerRadius float64, points int) {
	if points < 3 {
		return
	}
	step := math.Pi / float64(points)
	pts := make([]Point, 2*points)
	for i := range pts {
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		a := -math.Pi/2 + float64(i)*step
		pts[i] = Pt(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	b.Polygon(pts...)
}

// ClosePath closes the current subpath with a segment to its start.
func (c *Context) ClosePath() {
	c.path.ClosePath()
}

// DrawRectangle adds a closed rectangle to the current path.
func (c *Context) DrawRectangle(x, y, w, h float64) {
	c.path.Rect(x, y, w, h)
}

// DrawPolygon adds a closed polygon through pts to the current path.
func (c *Context) DrawPolygon(pts ...Point) {
	c.path.Polygon(pts...)
}

// DrawRegularPolygon adds a regular polygon with n sides to the current path.
func (c *Context) DrawRegularPolygon(n int, x, y, r, rotation float64) {
	c.path.RegularPolygon(n, x, y, r, rotation)
}

// DrawStar adds a star to the current path.
func (c *Context) DrawStar(cx, cy, outerRadius, innerRadius float64, points int) {
	c.path.Star(cx, cy, outerRadius, innerRadius, points)
}
