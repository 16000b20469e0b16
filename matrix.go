package canvas

import "math"

// Similarity is a 2D similarity transformation: a uniform scale, a rotation
// (radians, counter-clockwise in a y-up frame) and a translation. Points are
// mapped as
//
//	p' = Scale * R(Angle) * p + (TX, TY)
//
// Unlike a general affine matrix, a Similarity cannot express shear or
// non-uniform scale, and the composition of two similarities is again a
// similarity.
//
// The zero value has Scale 0 and collapses every point; use
// IdentitySimilarity for the neutral element.
type Similarity struct {
	Scale  float64
	Angle  float64
	TX, TY float64
}

// IdentitySimilarity returns the identity transformation.
func IdentitySimilarity() Similarity {
	return Similarity{Scale: 1}
}

// Rotation creates a rotation about the origin (angle in radians).
func Rotation(angle float64) Similarity {
	return Similarity{Scale: 1, Angle: angle}
}

// Scaling creates a uniform scaling about the origin.
func Scaling(factor float64) Similarity {
	return Similarity{Scale: factor}
}

// Translation creates a translation.
func Translation(dx, dy float64) Similarity {
	return Similarity{Scale: 1, TX: dx, TY: dy}
}

// Mul composes two similarities (s * other): the result applies other first,
// then s.
func (s Similarity) Mul(other Similarity) Similarity {
	tx, ty := s.linear(other.TX, other.TY)
	return Similarity{
		Scale: s.Scale * other.Scale,
		Angle: normalizeAngle(s.Angle + other.Angle),
		TX:    tx + s.TX,
		TY:    ty + s.TY,
	}
}

// Apply transforms the point (x, y).
func (s Similarity) Apply(x, y float64) (float64, float64) {
	lx, ly := s.linear(x, y)
	return lx + s.TX, ly + s.TY
}

// linear applies scale and rotation without translation.
func (s Similarity) linear(x, y float64) (float64, float64) {
	sin, cos := math.Sincos(s.Angle)
	return s.Scale * (cos*x - sin*y), s.Scale * (sin*x + cos*y)
}

// Inverse returns the inverse transformation.
// Returns the identity if the scale is zero.
func (s Similarity) Inverse() Similarity {
	if s.Scale == 0 {
		return IdentitySimilarity()
	}
	inv := Similarity{Scale: 1 / s.Scale, Angle: normalizeAngle(-s.Angle)}
	tx, ty := inv.linear(s.TX, s.TY)
	inv.TX, inv.TY = -tx, -ty
	return inv
}

// IsIdentity reports whether s is the identity within eps.
func (s Similarity) IsIdentity(eps float64) bool {
	return math.Abs(s.Scale-1) <= eps &&
		math.Abs(math.Sin(s.Angle)) <= eps && math.Cos(s.Angle) > 0 &&
		math.Abs(s.TX) <= eps && math.Abs(s.TY) <= eps
}

// Matrix returns the homogeneous 3x3 matrix of s.
func (s Similarity) Matrix() Mat3 {
	sin, cos := math.Sincos(s.Angle)
	return Mat3{
		{s.Scale * cos, -s.Scale * sin, s.TX},
		{s.Scale * sin, s.Scale * cos, s.TY},
		{0, 0, 1},
	}
}

// normalizeAngle wraps an angle into (-pi, pi].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Mat3 is a row-major 3x3 matrix operating on homogeneous 2D points:
//
//	| m[0][0] m[0][1] m[0][2] |   | x |
//	| m[1][0] m[1][1] m[1][2] | * | y |
//	| m[2][0] m[2][1] m[2][2] |   | 1 |
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Mul multiplies two matrices (m * other).
func (m Mat3) Mul(other Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*other[0][j] + m[i][1]*other[1][j] + m[i][2]*other[2][j]
		}
	}
	return r
}

// Apply transforms the point (x, y), dividing by the homogeneous coordinate
// when it is not 1.
func (m Mat3) Apply(x, y float64) (float64, float64) {
	px := m[0][0]*x + m[0][1]*y + m[0][2]
	py := m[1][0]*x + m[1][1]*y + m[1][2]
	w := m[2][0]*x + m[2][1]*y + m[2][2]
	if w != 1 && w != 0 {
		px /= w
		py /= w
	}
	return px, py
}

// Columns returns the matrix in the layout of a WGSL mat3x3<f32> uniform:
// three columns, each padded to a 16-byte vec4.
func (m Mat3) Columns() [3][4]float32 {
	var c [3][4]float32
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			c[col][row] = float32(m[row][col])
		}
	}
	return c
}

// DeviceMatrix maps framebuffer pixel coordinates (origin top-left, y down)
// to normalized device coordinates (origin center, y up, [-1, 1]).
//
// The matrix is built as: flip Y, then translate by (-width/2, height/2),
// then scale by (2/width, 2/height). Non-positive dimensions yield the
// identity.
func DeviceMatrix(width, height int) Mat3 {
	if width <= 0 || height <= 0 {
		return Identity3()
	}
	w, h := float64(width), float64(height)

	flip := Mat3{
		{1, 0, 0},
		{0, -1, 0},
		{0, 0, 1},
	}
	translate := Mat3{
		{1, 0, -w / 2},
		{0, 1, h / 2},
		{0, 0, 1},
	}
	scale := Mat3{
		{2 / w, 0, 0},
		{0, 2 / h, 0},
		{0, 0, 1},
	}
	return scale.Mul(translate.Mul(flip))
}
