// Package stroke expands stroked polylines into closed outline polygons.
//
// A stroke becomes a polygon per subpath:
//  1. The forward offset path goes forward (offset by -width/2 along the normal)
//  2. The end cap connects forward to backward
//  3. The backward offset path (offset by +width/2) is reversed
//  4. The start cap closes the outline
//
// The inner side of every join is routed through the join center, so the
// outlines are meant to be filled with the non-zero rule.
//
// # Line Caps
//
//   - LineCapButt: flat cap ending exactly at the endpoint
//   - LineCapRound: semicircular cap with radius = width/2
//   - LineCapSquare: square cap extending width/2 beyond the endpoint
//
// # Line Joins
//
//   - LineJoinMiter: sharp corner, bevelled past the miter limit
//   - LineJoinRound: circular arc at corners
//   - LineJoinBevel: straight line across the corner
//
// Round caps and joins are flattened to line segments whose deviation from
// the true arc stays within the expander tolerance.
//
// # Usage
//
//	expander := stroke.NewExpander(stroke.Stroke{
//	    Width:      2.0,
//	    Cap:        stroke.LineCapButt,
//	    Join:       stroke.LineJoinMiter,
//	    MiterLimit: 4.0,
//	})
//	expander.SetTolerance(0.1)
//
//	outlines := expander.Expand([][]stroke.Point{
//	    {{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}},
//	})
//
// The algorithm follows tiny-skia (path/src/stroker.rs) and kurbo (src/stroke.rs).
package stroke
