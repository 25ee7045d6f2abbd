// Package spatial provides the position/velocity vector and rotation-matrix
// value types shared by the DAF decoder, interpolation engine, frame graph,
// and orientation engine. It is a minimal linear-algebra collaborator kept
// separate from the core geometry packages: everything here is plain
// arithmetic on [3]float64/[3][3]float64, matching the array-based idiom
// the rest of this codebase already used per-package before it was
// promoted to a single shared type.
package spatial

import "math"

// Vector3 is a Cartesian 3-vector. Components are caller-defined units —
// km, km/s, or dimensionless, depending on context.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Neg returns -v.
func (v Vector3) Neg() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Scale returns s*v.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{s * v.X, s * v.Y, s * v.Z}
}

// Dot returns the scalar product v·w.
func (v Vector3) Dot(w Vector3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the vector product v×w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Array returns v as a plain [3]float64, for interop with array-based code.
func (v Vector3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// FromArray builds a Vector3 from a plain [3]float64.
func FromArray(a [3]float64) Vector3 {
	return Vector3{a[0], a[1], a[2]}
}
