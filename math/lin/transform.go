// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "math"

// T is a 2D transform for rotation and translation. Rotation is stored as
// an angle plus its cached sin/cos so that repeated vector rotations avoid
// paying for math.Sincos on every call. T is used as a simplification and
// optimization instead of keeping all transform information recomputed
// from the angle on every use.
type T struct {
	Pos   V2      // Location (translation, origin).
	angle float64 // Rotation in radians, always in [0, 2*PI).
	sin   float64 // cached sin(angle)
	cos   float64 // cached cos(angle)
}

// NewT allocates and returns an identity transform.
func NewT() *T { return &T{cos: 1} }

// Angle returns the current rotation angle in radians, in [0, 2*PI).
func (t *T) Angle() float64 { return t.angle }

// SetAngle sets the rotation angle, normalizing it to [0, 2*PI) and
// refreshing the cached sin/cos. The updated transform t is returned.
func (t *T) SetAngle(radians float64) *T {
	t.angle = Nang(radians)
	t.sin, t.cos = math.Sincos(t.angle)
	return t
}

// SetI updates transform t to be the identity transform.
// The updated transform t is returned.
func (t *T) SetI() *T {
	t.Pos.SetS(0, 0)
	t.angle, t.sin, t.cos = 0, 0, 1
	return t
}

// Set (=, copy, clone) assigns all the elements of transform a to transform
// t. The updated transform t is returned.
func (t *T) Set(a *T) *T {
	t.Pos.Set(&a.Pos)
	t.angle, t.sin, t.cos = a.angle, a.sin, a.cos
	return t
}

// Rotate sets v to be vector a rotated by transform t's angle, without
// translation. The updated vector v is returned.
func (t *T) Rotate(v, a *V2) *V2 {
	x, y := a.X, a.Y
	v.X = x*t.cos - y*t.sin
	v.Y = x*t.sin + y*t.cos
	return v
}

// InvRotate sets v to be vector a rotated by the inverse of transform t's
// angle, without translation. The updated vector v is returned.
func (t *T) InvRotate(v, a *V2) *V2 {
	x, y := a.X, a.Y
	v.X = x*t.cos + y*t.sin
	v.Y = -x*t.sin + y*t.cos
	return v
}

// ToWorld sets v to be local point a transformed into world space: rotated
// by t's angle then translated by t's position. The updated vector v is
// returned.
func (t *T) ToWorld(v, a *V2) *V2 {
	t.Rotate(v, a)
	v.X += t.Pos.X
	v.Y += t.Pos.Y
	return v
}

// ToLocal sets v to be world point a transformed into t's local space: the
// inverse of ToWorld. The updated vector v is returned.
func (t *T) ToLocal(v, a *V2) *V2 {
	dx, dy := a.X-t.Pos.X, a.Y-t.Pos.Y
	return t.InvRotate(v, v.SetS(dx, dy))
}

// Integrate advances transform t by linear velocity lv and angular
// velocity av over timestep dt using semi-implicit Euler: position moves
// by lv*dt, angle moves by av*dt. The updated transform t is returned.
func (t *T) Integrate(lv *V2, av, dt float64) *T {
	t.Pos.X += lv.X * dt
	t.Pos.Y += lv.Y * dt
	t.SetAngle(t.angle + av*dt)
	return t
}
