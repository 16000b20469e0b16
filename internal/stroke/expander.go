package stroke

import (
	"math"
)

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Stroke defines the style for stroke expansion.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStroke returns a stroke with default settings.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// Polygon is a closed outline. The last point connects back to the first.
type Polygon []Point

// maxArcSegments bounds the flattening of a single round cap or join.
const maxArcSegments = 256

// Expander converts stroked polylines to outline polygons.
type Expander struct {
	style Stroke

	// Tolerance for arc flattening.
	tolerance float64

	forward  []Point
	backward []Point
	output   []Polygon

	startPt   Point
	startNorm Vec2
	startTan  Vec2
	lastPt    Point
	lastTan   Vec2
	lastNorm  Vec2 // normal at lastPt (scaled by radius), used for end cap

	// Join threshold for skipping small joins
	joinThresh float64
}

// NewExpander creates a new stroke expander with the given style.
func NewExpander(style Stroke) *Expander {
	return &Expander{
		style:     style,
		tolerance: 0.25,
	}
}

// SetTolerance sets the arc flattening tolerance. Non-positive values are ignored.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Subpath is a polyline to stroke. A closed subpath joins its last point
// back to the first and gets no caps.
type Subpath struct {
	Points []Point
	Closed bool
}

// Expand converts each open polyline to an outline polygon. Polylines with
// no segment of non-zero length produce nothing.
func (e *Expander) Expand(polylines [][]Point) []Polygon {
	subpaths := make([]Subpath, len(polylines))
	for i, pts := range polylines {
		subpaths[i] = Subpath{Points: pts}
	}
	return e.ExpandSubpaths(subpaths)
}

// ExpandSubpaths converts subpaths to outline polygons. An open subpath
// yields one polygon: forward side, end cap, backward side, start cap. A
// closed subpath yields two rings of opposite orientation, the forward and
// the backward side, which fill the band between them under non-zero.
func (e *Expander) ExpandSubpaths(subpaths []Subpath) []Polygon {
	e.reset()
	if e.style.Width <= 0 {
		return nil
	}

	for _, sp := range subpaths {
		if len(sp.Points) == 0 {
			continue
		}
		e.startPt = sp.Points[0]
		e.lastPt = sp.Points[0]
		for _, p := range sp.Points[1:] {
			e.segment(p)
		}
		if sp.Closed && len(e.forward) > 0 {
			e.segment(e.startPt)
			e.finishClosed()
			continue
		}
		e.finish()
	}

	out := e.output
	e.output = nil
	return out
}

// segment strokes a line from the last point to p. Zero-length segments are
// skipped.
func (e *Expander) segment(p Point) {
	if p == e.lastPt {
		return
	}
	tangent := p.Sub(e.lastPt)
	e.doJoin(tangent)
	e.lastTan = tangent
	e.doLine(tangent, p)
}

func (e *Expander) reset() {
	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
	e.output = nil
	e.startPt = Point{}
	e.startNorm = Vec2{}
	e.startTan = Vec2{}
	e.lastPt = Point{}
	e.lastTan = Vec2{}
	e.lastNorm = Vec2{}
	if e.style.Width > 0 {
		e.joinThresh = 2.0 * e.tolerance / e.style.Width
	}
}

func (e *Expander) normal(tangent Vec2) Vec2 {
	return tangent.Perp().Scale(0.5 * e.style.Width / tangent.Length())
}

// doJoin handles joining the current segment to the previous one.
func (e *Expander) doJoin(tan0 Vec2) {
	norm := e.normal(tan0)
	p0 := e.lastPt

	if len(e.forward) == 0 {
		e.forward = append(e.forward, p0.Add(norm.Neg()))
		e.backward = append(e.backward, p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}
	e.joinWithPrevious(p0, norm, tan0)
}

func (e *Expander) joinWithPrevious(p0 Point, norm, tan0 Vec2) {
	ab := e.lastTan
	cd := tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Nearly collinear: keep both sides continuous without a join.
	if dot > 0.0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward = append(e.forward, p0.Add(norm.Neg()))
		e.backward = append(e.backward, p0.Add(norm))
		return
	}

	lastNorm := e.normal(ab)

	// A counter-clockwise turn puts the forward side on the outside.
	outer, inner := &e.forward, &e.backward
	outerLast, outerNorm, innerNorm := lastNorm.Neg(), norm.Neg(), norm
	if cross < 0 {
		outer, inner = &e.backward, &e.forward
		outerLast, outerNorm, innerNorm = lastNorm, norm, norm.Neg()
	}

	switch e.style.Join {
	case LineJoinMiter:
		limitSq := e.style.MiterLimit * e.style.MiterLimit
		if 2.0*hypot < (hypot+dot)*limitSq {
			miter := outerLast.Add(outerNorm).Scale(hypot / (hypot + dot))
			*outer = append(*outer, p0.Add(miter))
		}
		*outer = append(*outer, p0.Add(outerNorm))
	case LineJoinRound:
		angle := math.Atan2(cross, dot)
		*outer = e.appendArc(*outer, p0, outerLast, angle)
	default:
		*outer = append(*outer, p0.Add(outerNorm))
	}

	*inner = append(*inner, p0, p0.Add(innerNorm))
}

// doLine extends both paths with a line segment.
func (e *Expander) doLine(tangent Vec2, p1 Point) {
	norm := e.normal(tangent)
	e.forward = append(e.forward, p1.Add(norm.Neg()))
	e.backward = append(e.backward, p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish completes an open subpath with caps and emits its outline.
func (e *Expander) finish() {
	if len(e.forward) == 0 {
		return
	}

	poly := make(Polygon, 0, len(e.forward)+len(e.backward)+8)
	poly = append(poly, e.forward...)
	poly = e.appendCap(poly, e.lastPt, e.lastNorm.Neg())
	for i := len(e.backward) - 1; i >= 0; i-- {
		poly = append(poly, e.backward[i])
	}
	poly = e.appendCap(poly, e.startPt, e.startNorm)
	e.output = append(e.output, poly)

	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
}

// finishClosed joins the closing segment to the first one and emits both
// sides as rings.
func (e *Expander) finishClosed() {
	e.joinWithPrevious(e.startPt, e.startNorm, e.startTan)

	fwd := make(Polygon, len(e.forward))
	copy(fwd, e.forward)
	back := make(Polygon, 0, len(e.backward))
	for i := len(e.backward) - 1; i >= 0; i-- {
		back = append(back, e.backward[i])
	}
	e.output = append(e.output, fwd, back)

	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
}

// appendCap appends the interior points of a cap that starts at center+norm
// and ends at center-norm. Butt caps have none.
func (e *Expander) appendCap(out Polygon, center Point, norm Vec2) Polygon {
	switch e.style.Cap {
	case LineCapRound:
		out = e.appendArc(out, center, norm, math.Pi)
		// The arc ends on the opposite side, which the caller appends next.
		return out[:len(out)-1]
	case LineCapSquare:
		return append(out,
			transformPoint(center, norm, Point{X: 1, Y: 1}),
			transformPoint(center, norm, Point{X: -1, Y: 1}),
		)
	default:
		return out
	}
}

// appendArc appends the points of an arc around center starting at
// center+from and sweeping angle radians. The start point is not appended.
func (e *Expander) appendArc(out []Point, center Point, from Vec2, angle float64) []Point {
	radius := from.Length()
	n := arcSegments(radius, e.tolerance, angle)
	a0 := from.Angle()
	step := angle / float64(n)
	for i := 1; i <= n; i++ {
		a := a0 + step*float64(i)
		out = append(out, Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return out
}

// arcSegments returns the number of chords needed to keep the sagitta of an
// arc of the given radius within tolerance.
func arcSegments(radius, tolerance, angle float64) int {
	sweep := math.Abs(angle)
	if radius <= tolerance || sweep == 0 {
		return 1
	}
	maxStep := 2 * math.Acos(1-tolerance/radius)
	steps := math.Ceil(sweep / maxStep)
	if maxStep <= 0 || steps > maxArcSegments {
		return maxArcSegments
	}
	return max(1, int(steps))
}

// transformPoint applies the affine transform: [norm.x, norm.y, -norm.y, norm.x, center.x, center.y].
func transformPoint(center Point, norm Vec2, p Point) Point {
	return Point{
		X: norm.X*p.X - norm.Y*p.Y + center.X,
		Y: norm.Y*p.X + norm.X*p.Y + center.Y,
	}
}
