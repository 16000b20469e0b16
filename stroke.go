package canvas

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

// StrokeOptions defines how paths are stroked.
type StrokeOptions struct {
	// Width is the line width in pixels. Default: 2.0
	Width float64

	// Tolerance is the maximum distance between a flattened round cap or
	// join and the true arc. Default: 0.1
	Tolerance float64

	// Join is the shape of line joins. Default: LineJoinMiter
	Join LineJoin

	// Cap is the shape of line endpoints. Default: LineCapButt
	Cap LineCap

	// MiterLimit is the limit for miter joins before they become bevels.
	// Default: 4.0
	MiterLimit float64
}

// DefaultStrokeOptions returns the stroke options used by a new Context:
// a 2-pixel line with butt caps and miter joins at tolerance 0.1.
func DefaultStrokeOptions() StrokeOptions {
	return StrokeOptions{
		Width:      2.0,
		Tolerance:  0.1,
		Join:       LineJoinMiter,
		Cap:        LineCapButt,
		MiterLimit: 4.0,
	}
}

// WithWidth returns a copy of the options with the given width.
func (s StrokeOptions) WithWidth(w float64) StrokeOptions {
	s.Width = w
	return s
}

// WithCap returns a copy of the options with the given line cap style.
func (s StrokeOptions) WithCap(lineCap LineCap) StrokeOptions {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy of the options with the given line join style.
func (s StrokeOptions) WithJoin(join LineJoin) StrokeOptions {
	s.Join = join
	return s
}

// WithMiterLimit returns a copy of the options with the given miter limit.
// A value of 1.0 effectively disables miter joins.
func (s StrokeOptions) WithMiterLimit(limit float64) StrokeOptions {
	s.MiterLimit = limit
	return s
}

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleEvenOdd fills regions crossed an odd number of times.
	FillRuleEvenOdd FillRule = iota
	// FillRuleNonZero fills regions with a non-zero winding number.
	FillRuleNonZero
)

// String returns the rule name.
func (r FillRule) String() string {
	switch r {
	case FillRuleEvenOdd:
		return "EvenOdd"
	case FillRuleNonZero:
		return "NonZero"
	default:
		return "Unknown"
	}
}

// FillOptions defines how paths are filled.
type FillOptions struct {
	// Tolerance is kept for parity with StrokeOptions. Paths hold only
	// straight segments, so filling never flattens. Default: 0.1
	Tolerance float64

	// Rule is the fill rule. Default: FillRuleEvenOdd
	Rule FillRule
}

// DefaultFillOptions returns the fill options used by a new Context.
func DefaultFillOptions() FillOptions {
	return FillOptions{
		Tolerance: 0.1,
		Rule:      FillRuleEvenOdd,
	}
}
