// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// Solver is an un-optimized, scaled-down, golang version of the Bullet
// physics bullet-2.81-rev2613/src/.../btSequentialImpulseConstraintSolver
// which has the following license:
//
//    Bullet Continuous Collision Detection and Physics Library
//    Copyright (c) 2003-2006 Erwin Coumans  http://continuousphysics.com/Bullet/
//
//    This software is provided 'as-is', without any express or implied warranty.
//    In no event will the authors be held liable for any damages arising from the use of this software.
//    Permission is granted to anyone to use this software for any purpose,
//    including commercial applications, and to alter it and redistribute it freely,
//    subject to the following restrictions:
//
//    1. The origin of this software must not be misrepresented; you must not claim that you wrote the original software.
//       If you use this software in a product, an acknowledgment in the product documentation would be appreciated but is not required.
//    2. Altered source versions must be plainly marked as such, and must not be misrepresented as being the original software.
//    3. This notice may not be removed or altered from any source distribution.

package physics

import (
	"math"

	"github.com/galyenlogic/impulse2d/math/lin"
)

// solveManifold resolves every contact in man via sequential impulses:
// warm-start with the cached impulses, then run SolverIterations passes
// applying a Baumgarte-biased normal impulse and a Coulomb-clamped
// tangent impulse. Pairs where both bodies carry infinite mass are
// skipped; a separating contact (vn > 0) is skipped within an iteration.
// The solution technique is Projected Gauss-Seidel (PGS).
func solveManifold(man *Manifold, dt float64) {
	a, b := man.BodyA, man.BodyB
	invMassA, invMassB := a.mot.InverseMass, b.mot.InverseMass
	invIA, invIB := a.mot.InverseInertia, b.mot.InverseInertia
	if invMassA == 0 && invMassB == 0 {
		return
	}

	n := man.Direction
	t := lin.V2{X: -n.Y, Y: n.X} // rot90(n)

	for i := 0; i < man.Count; i++ {
		c := &man.Contacts[i]
		ra := vSub(c.Point, a.tx.Pos)
		rb := vSub(c.Point, b.tx.Pos)
		warm := vAdd(vScale(n, c.NormalImpulse), vScale(t, c.TangentImpulse))
		applyPairImpulse(a, b, ra, rb, warm, invMassA, invMassB, invIA, invIB)
	}

	for iter := 0; iter < SolverIterations; iter++ {
		for i := 0; i < man.Count; i++ {
			c := &man.Contacts[i]
			ra := vSub(c.Point, a.tx.Pos)
			rb := vSub(c.Point, b.tx.Pos)

			vrel := relativeVelocity(a, b, ra, rb)
			vn := vDot(vrel, n)
			if vn > 0 {
				continue
			}

			kn := invMassA + invMassB + invIA*sqr(vCross(ra, n)) + invIB*sqr(vCross(rb, n))
			if kn <= 0 {
				continue
			}
			bias := baumgarteBias(c.Depth, dt)
			lambdaN := (-(1+man.Restitution)*vn + bias) / kn

			old := c.NormalImpulse
			c.NormalImpulse = math.Max(0, old+lambdaN)
			lambdaN = c.NormalImpulse - old
			applyPairImpulse(a, b, ra, rb, vScale(n, lambdaN), invMassA, invMassB, invIA, invIB)

			vrel = relativeVelocity(a, b, ra, rb)
			vt := vDot(vrel, t)
			kt := invMassA + invMassB + invIA*sqr(vCross(ra, t)) + invIB*sqr(vCross(rb, t))
			if kt <= 0 {
				continue
			}
			lambdaT := -vt / kt
			maxFriction := man.Friction * c.NormalImpulse

			oldT := c.TangentImpulse
			c.TangentImpulse = lin.Clamp(oldT+lambdaT, -maxFriction, maxFriction)
			lambdaT = c.TangentImpulse - oldT
			applyPairImpulse(a, b, ra, rb, vScale(t, lambdaT), invMassA, invMassB, invIA, invIB)
		}
	}
}

// relativeVelocity computes v2 + w2 x r2 - v1 - w1 x r1, the relative
// velocity of the two bodies at the contact point.
func relativeVelocity(a, b *Body, ra, rb lin.V2) lin.V2 {
	wa := lin.CrossSV(a.mot.AngularVelocity, ra)
	wb := lin.CrossSV(b.mot.AngularVelocity, rb)
	vA := vAdd(a.mot.LinearVelocity, *wa)
	vB := vAdd(b.mot.LinearVelocity, *wb)
	return vSub(vB, vA)
}

// applyPairImpulse applies impulse negatively to a and positively to b,
// at the relative contact points ra/rb.
func applyPairImpulse(a, b *Body, ra, rb, impulse lin.V2, invMassA, invMassB, invIA, invIB float64) {
	a.mot.LinearVelocity = vSub(a.mot.LinearVelocity, vScale(impulse, invMassA))
	a.mot.AngularVelocity -= invIA * vCross(ra, impulse)
	b.mot.LinearVelocity = vAdd(b.mot.LinearVelocity, vScale(impulse, invMassB))
	b.mot.AngularVelocity += invIB * vCross(rb, impulse)
}

// baumgarteBias computes the position-stabilization velocity bias
// b = -(Baumgarte/dt) * min(0, -depth+Slop), correcting positional error
// gradually while suppressing jitter once depth settles below Slop.
func baumgarteBias(depth, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return -(Baumgarte / dt) * math.Min(0, -depth+Slop)
}

func vCross(a, b lin.V2) float64 { return a.X*b.Y - a.Y*b.X }
func sqr(x float64) float64      { return x * x }
