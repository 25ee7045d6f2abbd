package spatial

import "math"

// Matrix3 is a 3x3 matrix, row-major. Used throughout the orientation engine
// as the direction-cosine matrix (DCM) that rotates vectors from a parent
// frame into a body-fixed or otherwise child frame.
type Matrix3 [3][3]float64

// Identity3 is the 3x3 identity matrix.
var Identity3 = Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// MulVec returns M*v.
func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul returns M*N.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += m[i][k] * n[k][j]
			}
			r[i][j] = s
		}
	}
	return r
}

// Transpose returns M^T.
func (m Matrix3) Transpose() Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Add returns M+N, used to sum the product-rule terms of a rotation matrix's
// time derivative (orientation.ComposeRADecWRate).
func (m Matrix3) Add(n Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] + n[i][j]
		}
	}
	return r
}

// Sub returns M-N.
func (m Matrix3) Sub(n Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] - n[i][j]
		}
	}
	return r
}

// FrobeniusNorm returns sqrt(sum of squares of all elements), used by the
// rotation-orthogonality property.
func (m Matrix3) FrobeniusNorm() float64 {
	var s float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += m[i][j] * m[i][j]
		}
	}
	return math.Sqrt(s)
}

// RotationZ returns the elementary right-handed rotation by angle (radians)
// about the Z axis, in the SPICE/IAU R3 convention (rotates the frame, not
// the vector): R3(a) = [[cos a, sin a, 0], [-sin a, cos a, 0], [0, 0, 1]].
func RotationZ(angle float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

// RotationX returns the elementary rotation by angle (radians) about the X
// axis: R1(a) = [[1,0,0],[0,cos a, sin a],[0,-sin a, cos a]].
func RotationX(angle float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	}
}

// RotationY returns the elementary rotation by angle (radians) about the Y
// axis: R2(a) = [[cos a,0,-sin a],[0,1,0],[sin a,0,cos a]].
func RotationY(angle float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{c, 0, -s},
		{0, 1, 0},
		{s, 0, c},
	}
}

// RotationZRate returns d/dt[R3(angle)] given angle's own time derivative
// rate, by differentiating the closed-form R3 entries.
func RotationZRate(angle, rate float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{-s * rate, c * rate, 0},
		{-c * rate, -s * rate, 0},
		{0, 0, 0},
	}
}

// RotationXRate returns d/dt[R1(angle)] given angle's own time derivative
// rate.
func RotationXRate(angle, rate float64) Matrix3 {
	s, c := math.Sincos(angle)
	return Matrix3{
		{0, 0, 0},
		{0, -s * rate, c * rate},
		{0, -c * rate, -s * rate},
	}
}
