// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Vector performs 2 element vector related math needed for the simulation.

import "math"

// V2 is a 2 element vector. This can also be used as a point.
type V2 struct {
	X float64 // increments as X moves to the right.
	Y float64 // increments as Y moves down (screen space, y-down).
}

// NewV2 allocates and returns a new zero length vector.
func NewV2() *V2 { return &V2{} }

// Eq (==) returns true if each element in the vector v has the same value
// as the corresponding element in vector a.
func (v *V2) Eq(a *V2) bool { return v.X == a.X && v.Y == a.Y }

// Aeq (~=) almost-equals returns true if all the elements in vector v have
// essentially the same value as the corresponding elements in vector a.
// Used where a direct comparison is unlikely to return true due to floats.
func (v *V2) Aeq(a *V2) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) }

// AeqZ (~=) almost equals zero returns true if the square length of the
// vector is close enough to zero that it makes no difference.
func (v *V2) AeqZ() bool { return v.Dot(v) < Epsilon }

// GetS returns the float64 values of the vector.
func (v *V2) GetS() (x, y float64) { return v.X, v.Y }

// SetS (=) sets the vector elements to the given values.
// The updated vector v is returned.
func (v *V2) SetS(x, y float64) *V2 {
	v.X, v.Y = x, y
	return v
}

// Set (=, copy, clone) sets the elements of vector v to have the same values
// as the elements of vector a. The updated vector v is returned.
func (v *V2) Set(a *V2) *V2 {
	v.X, v.Y = a.X, a.Y
	return v
}

// Add (+) sets vector v to be the vector sum of a+b.
// The updated vector v is returned.
func (v *V2) Add(a, b *V2) *V2 {
	v.X, v.Y = a.X+b.X, a.Y+b.Y
	return v
}

// Sub (-) sets vector v to be the vector difference of a-b.
// The updated vector v is returned.
func (v *V2) Sub(a, b *V2) *V2 {
	v.X, v.Y = a.X-b.X, a.Y-b.Y
	return v
}

// Scale (*) sets vector v to be vector a with each element scaled by s.
// The updated vector v is returned.
func (v *V2) Scale(a *V2, s float64) *V2 {
	v.X, v.Y = a.X*s, a.Y*s
	return v
}

// Neg (-v) sets vector v to be vector a with each element negated.
// The updated vector v is returned.
func (v *V2) Neg(a *V2) *V2 {
	v.X, v.Y = -a.X, -a.Y
	return v
}

// Dot (.) returns the dot product of vector v and vector a.
func (v *V2) Dot(a *V2) float64 { return v.X*a.X + v.Y*a.Y }

// Cross (x) returns the scalar z-component of the 3D cross product of
// vector v and vector a, treating both as 3D vectors with z=0.
func (v *V2) Cross(a *V2) float64 { return v.X*a.Y - v.Y*a.X }

// CrossSV returns the vector s x v (scalar cross vector), the 2D analog of
// the 3D cross product of a z-axis scalar and a vector in the xy plane.
func CrossSV(s float64, v *V2) *V2 { return &V2{-s * v.Y, s * v.X} }

// CrossVS returns the vector v x s (vector cross scalar).
func CrossVS(v *V2, s float64) *V2 { return &V2{s * v.Y, -s * v.X} }

// Len (length) returns the magnitude of vector v.
func (v *V2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// LenSqr (length squared) returns the square of the magnitude of vector v.
// Use this in preference to Len when possible since it avoids the sqrt.
func (v *V2) LenSqr() float64 { return v.X*v.X + v.Y*v.Y }

// Unit (unit vector, normalize) sets vector v to be vector a scaled to
// have a length of 1. Vector a with a zero length is turned into the
// zero vector. The updated vector v is returned.
func (v *V2) Unit(a *V2) *V2 {
	lsqr := a.X*a.X + a.Y*a.Y
	if lsqr < Epsilon {
		v.X, v.Y = 0, 0
		return v
	}
	invLen := 1 / math.Sqrt(lsqr)
	v.X, v.Y = a.X*invLen, a.Y*invLen
	return v
}

// Perp sets vector v to be the left perpendicular (rotate 90 degrees
// counter-clockwise) of vector a. The updated vector v is returned.
func (v *V2) Perp(a *V2) *V2 {
	v.X, v.Y = -a.Y, a.X
	return v
}

// Lerp sets vector v to the linear interpolation of a to b by ratio t.
// The updated vector v is returned.
func (v *V2) Lerp(a, b *V2, t float64) *V2 {
	v.X, v.Y = a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t
	return v
}

// V2Zero is the zero vector, useful as a read-only default.
var V2Zero = V2{0, 0}
