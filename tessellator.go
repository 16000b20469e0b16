package canvas

import (
	"fmt"
	"math"

	"github.com/gogpu/canvas/internal/fill"
	"github.com/gogpu/canvas/internal/stroke"
)

// Tessellator converts paths to triangle meshes.
//
// Implementations must return an empty mesh and a nil error for an empty
// path, and an error wrapping ErrTessellation for input they cannot handle.
type Tessellator interface {
	TessellateStroke(p *Path, opts StrokeOptions) (*Mesh, error)
	TessellateFill(p *Path, opts FillOptions) (*Mesh, error)
}

// NewTessellator returns the default tessellator.
//
// Strokes are expanded into outline polygons (forward offset, cap, reversed
// backward offset, cap; closed subpaths get a join and two rings instead of
// caps) and those outlines are filled with the non-zero rule.
// Fills triangulate every subpath, implicitly closed, with a horizontal band
// sweep. Concave and self-intersecting paths are supported by both.
func NewTessellator() Tessellator {
	return &sweepTessellator{}
}

type sweepTessellator struct{}

// TessellateStroke implements Tessellator.
func (t *sweepTessellator) TessellateStroke(p *Path, opts StrokeOptions) (*Mesh, error) {
	contours, err := flatContours(p)
	if err != nil || len(contours) == 0 {
		return &Mesh{}, err
	}

	strokeSubpaths := make([]stroke.Subpath, len(contours))
	for i, c := range contours {
		pts := make([]stroke.Point, len(c.Points))
		for j, pt := range c.Points {
			pts[j] = stroke.Point(pt)
		}
		strokeSubpaths[i] = stroke.Subpath{Points: pts, Closed: c.Closed}
	}

	expander := stroke.NewExpander(stroke.Stroke{
		Width:      opts.Width,
		Cap:        stroke.LineCap(opts.Cap),
		Join:       stroke.LineJoin(opts.Join),
		MiterLimit: opts.MiterLimit,
	})
	expander.SetTolerance(opts.Tolerance)
	outlines := expander.ExpandSubpaths(strokeSubpaths)

	polygons := make([][]fill.Point, len(outlines))
	for i, outline := range outlines {
		pts := make([]fill.Point, len(outline))
		for j, pt := range outline {
			pts[j] = fill.Point(pt)
		}
		polygons[i] = pts
	}
	return fillPolygons(polygons, fill.NonZero)
}

// TessellateFill implements Tessellator.
func (t *sweepTessellator) TessellateFill(p *Path, opts FillOptions) (*Mesh, error) {
	contours, err := flatContours(p)
	if err != nil || len(contours) == 0 {
		return &Mesh{}, err
	}

	polygons := make([][]fill.Point, len(contours))
	for i, c := range contours {
		pts := make([]fill.Point, len(c.Points))
		for j, pt := range c.Points {
			pts[j] = fill.Point(pt)
		}
		polygons[i] = pts
	}

	rule := fill.EvenOdd
	if opts.Rule == FillRuleNonZero {
		rule = fill.NonZero
	}
	return fillPolygons(polygons, rule)
}

// flatContours returns the contours of p after checking that every
// coordinate survives the conversion to GPU vertices.
func flatContours(p *Path) ([]Contour, error) {
	contours := p.Contours()
	for _, c := range contours {
		for _, pt := range c.Points {
			if !fitsFloat32(pt.X) || !fitsFloat32(pt.Y) {
				return nil, fmt.Errorf("%w: coordinate (%v, %v) is not a finite float32", ErrTessellation, pt.X, pt.Y)
			}
		}
	}
	return contours, nil
}

func fillPolygons(polygons [][]fill.Point, rule fill.Rule) (*Mesh, error) {
	fm, err := fill.Tessellate(polygons, rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTessellation, err)
	}
	m := &Mesh{
		Vertices: make([]Vertex, len(fm.Vertices)),
		Indices:  fm.Indices,
	}
	for i, v := range fm.Vertices {
		if !fitsFloat32(v.X) || !fitsFloat32(v.Y) {
			return nil, fmt.Errorf("%w: vertex (%v, %v) exceeds float32 range", ErrTessellation, v.X, v.Y)
		}
		m.Vertices[i] = Vertex{X: float32(v.X), Y: float32(v.Y)}
	}
	return m, nil
}

// fitsFloat32 reports whether x converts to a finite float32. NaN does not.
func fitsFloat32(x float64) bool {
	return math.Abs(x) <= math.MaxFloat32
}
