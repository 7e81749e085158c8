// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"

	"github.com/galyenlogic/impulse2d/math/lin"
)

// collide is the function prototype for narrow-phase algorithms. It
// takes two shapes with their transforms and returns a contact manifold,
// or false if the shapes do not overlap. Direction in the returned
// manifold points from shape a toward shape b.
type collide func(sa Shape, txa *lin.T, sb Shape, txb *lin.T) (Manifold, bool)

// algorithms dispatches on the two shapes' Type() to the algorithm that
// handles that pairing, mirroring the collider/algorithms dispatch table
// pattern used for narrow-phase collision.
var algorithms = [NumShapes][NumShapes]collide{}

func init() {
	algorithms[CircleShape][CircleShape] = collideCircles
	algorithms[CircleShape][PolygonShape] = collideCirclePolygon
	algorithms[PolygonShape][CircleShape] = collidePolygonCircle
	algorithms[PolygonShape][PolygonShape] = collidePolygons
}

// computeCollision dispatches to the narrow-phase algorithm for the pair
// of shape types and, on a hit, fills in the manifold's combined
// friction and restitution from the two shapes' materials.
func computeCollision(sa Shape, txa *lin.T, sb Shape, txb *lin.T) (Manifold, bool) {
	fn := algorithms[sa.Type()][sb.Type()]
	if fn == nil {
		return Manifold{}, false
	}
	man, ok := fn(sa, txa, sb, txb)
	if !ok {
		return Manifold{}, false
	}
	man.Friction = combinedFriction(sa.Mat(), sb.Mat())
	man.Restitution = combinedRestitution(sa.Mat(), sb.Mat())
	return man, true
}

// collide
// ============================================================================
// small value-based vector helpers, local to narrow-phase math.

func vSub(a, b lin.V2) lin.V2        { return lin.V2{X: a.X - b.X, Y: a.Y - b.Y} }
func vAdd(a, b lin.V2) lin.V2        { return lin.V2{X: a.X + b.X, Y: a.Y + b.Y} }
func vScale(a lin.V2, s float64) lin.V2 { return lin.V2{X: a.X * s, Y: a.Y * s} }
func vNeg(a lin.V2) lin.V2           { return lin.V2{X: -a.X, Y: -a.Y} }
func vDot(a, b lin.V2) float64       { return a.X*b.X + a.Y*b.Y }
func vLen(a lin.V2) float64          { return math.Sqrt(a.X*a.X + a.Y*a.Y) }
func vUnit(a lin.V2) lin.V2 {
	l := vLen(a)
	if l < lin.Epsilon {
		return lin.V2{}
	}
	return lin.V2{X: a.X / l, Y: a.Y / l}
}

func toWorld(t *lin.T, v lin.V2) lin.V2 {
	out := lin.NewV2()
	t.ToWorld(out, &v)
	return *out
}
func toLocal(t *lin.T, v lin.V2) lin.V2 {
	out := lin.NewV2()
	t.ToLocal(out, &v)
	return *out
}
func rotate(t *lin.T, v lin.V2) lin.V2 {
	out := lin.NewV2()
	t.Rotate(out, &v)
	return *out
}
func invRotate(t *lin.T, v lin.V2) lin.V2 {
	out := lin.NewV2()
	t.InvRotate(out, &v)
	return *out
}

// preserveDirection flips dir if it opposes the vector from a to b,
// preserving the body1 -> body2 manifold-direction convention.
func preserveDirection(dir, posA, posB lin.V2) lin.V2 {
	p2p1 := vSub(posB, posA)
	if vDot(dir, p2p1) < 0 {
		return vNeg(dir)
	}
	return dir
}

// vector helpers
// ============================================================================
// circle-circle

// collideCircles implements circle/circle overlap per the separation
// test |p2-p1|^2 <= (r1+r2)^2.
func collideCircles(sa Shape, txa *lin.T, sb Shape, txb *lin.T) (Manifold, bool) {
	ca, cb := sa.(*circle), sb.(*circle)
	delta := vSub(txb.Pos, txa.Pos)
	rsum := ca.R + cb.R
	distSqr := delta.X*delta.X + delta.Y*delta.Y
	if distSqr > rsum*rsum {
		return Manifold{}, false
	}
	dist := math.Sqrt(distSqr)
	dir := lin.V2{X: 1, Y: 0}
	if dist > lin.Epsilon {
		dir = vScale(delta, 1/dist)
	} else {
		dist = 0
	}
	point := vAdd(txa.Pos, vScale(dir, ca.R))

	man := Manifold{Direction: dir, Count: 1}
	man.Contacts[0] = Contact{ID: 0, Point: point, Depth: rsum - dist}
	return man, true
}

// circle-circle
// ============================================================================
// circle-polygon

// collideCirclePolygon implements circle/polygon per the Voronoi-region
// classification against the polygon's axis of maximum penetration.
func collideCirclePolygon(sa Shape, txa *lin.T, sb Shape, txb *lin.T) (Manifold, bool) {
	circ := sa.(*circle)
	poly := sb.(*polygon)
	n := poly.Count()

	center := toLocal(txb, txa.Pos)

	separation := -math.MaxFloat64
	faceIdx := 0
	for i := 0; i < n; i++ {
		normal := poly.Normal(i)
		v := poly.Vertex(i)
		s := vDot(normal, vSub(center, v))
		if s > circ.R {
			return Manifold{}, false
		}
		if s > separation {
			separation = s
			faceIdx = i
		}
	}

	v1 := poly.Vertex(faceIdx)
	v2 := poly.Vertex((faceIdx + 1) % n)

	var dirLocal, pointLocal lin.V2
	var depth float64

	if separation < lin.Epsilon {
		// Center lies inside the polygon.
		dirLocal = vNeg(poly.Normal(faceIdx))
		depth = circ.R - separation
		pointLocal = vAdd(center, vScale(dirLocal, circ.R))
	} else {
		edge := vSub(v2, v1)
		u1 := vSub(center, v1)
		u2 := vSub(center, v2)
		dot1 := vDot(u1, edge)
		dot2 := vDot(u2, vNeg(edge))

		switch {
		case dot1 <= 0:
			dist := vLen(u1)
			if dist > circ.R {
				return Manifold{}, false
			}
			if dist > lin.Epsilon {
				dirLocal = vScale(u1, 1/dist)
			} else {
				dirLocal = poly.Normal(faceIdx)
			}
			depth = circ.R - dist
			pointLocal = v1
		case dot2 <= 0:
			dist := vLen(u2)
			if dist > circ.R {
				return Manifold{}, false
			}
			if dist > lin.Epsilon {
				dirLocal = vScale(u2, 1/dist)
			} else {
				dirLocal = poly.Normal(faceIdx)
			}
			depth = circ.R - dist
			pointLocal = v2
		default:
			dirLocal = vNeg(poly.Normal(faceIdx))
			depth = circ.R - separation
			pointLocal = vAdd(center, vScale(dirLocal, circ.R))
		}
	}

	dir := vUnit(rotate(txb, dirLocal))
	point := toWorld(txb, pointLocal)
	dir = preserveDirection(dir, txa.Pos, txb.Pos)

	man := Manifold{Direction: dir, Count: 1}
	man.Contacts[0] = Contact{ID: faceIdx, Point: point, Depth: depth}
	return man, true
}

// collidePolygonCircle handles the (polygon, circle) ordering by
// delegating to collideCirclePolygon with the arguments swapped, then
// negating direction to restore the a -> b convention.
func collidePolygonCircle(sa Shape, txa *lin.T, sb Shape, txb *lin.T) (Manifold, bool) {
	man, ok := collideCirclePolygon(sb, txb, sa, txa)
	if !ok {
		return Manifold{}, false
	}
	man.Direction = vNeg(man.Direction)
	return man, true
}

// circle-polygon
// ============================================================================
// polygon-polygon

// axisOfLeastPenetration runs SAT using a's face normals against b,
// returning the index of a's best-separating face and its signed
// separation (negative means overlap along that axis).
func axisOfLeastPenetration(a, b *polygon, txa, txb *lin.T) (int, float64) {
	best := -math.MaxFloat64
	bestIdx := 0
	for i := 0; i < a.Count(); i++ {
		nWorld := rotate(txa, a.Normal(i))
		nInB := invRotate(txb, nWorld)

		vWorld := toWorld(txa, a.Vertex(i))
		vInB := toLocal(txb, vWorld)

		support := polySupport(b, vNeg(nInB))
		d := vDot(nInB, vSub(support, vInB))
		if d > best {
			best = d
			bestIdx = i
		}
	}
	return bestIdx, best
}

// polySupport returns the vertex of p, in its own local space, with the
// greatest projection along dir.
func polySupport(p *polygon, dir lin.V2) lin.V2 {
	best := p.Vertex(0)
	bestProj := vDot(best, dir)
	for i := 1; i < p.Count(); i++ {
		v := p.Vertex(i)
		proj := vDot(v, dir)
		if proj > bestProj {
			bestProj = proj
			best = v
		}
	}
	return best
}

// findIncidentFace returns the world-space endpoints of the face on inc
// whose normal is most anti-parallel to ref's reference-face normal, and
// the local index of that face on inc.
func findIncidentFace(ref, inc *polygon, txref, txinc *lin.T, refIdx int) (lin.V2, lin.V2, int) {
	refNormalWorld := rotate(txref, ref.Normal(refIdx))
	refNormalInInc := invRotate(txinc, refNormalWorld)

	incFace := 0
	minDot := math.MaxFloat64
	for i := 0; i < inc.Count(); i++ {
		d := vDot(refNormalInInc, inc.Normal(i))
		if d < minDot {
			minDot = d
			incFace = i
		}
	}
	v0 := toWorld(txinc, inc.Vertex(incFace))
	v1 := toWorld(txinc, inc.Vertex((incFace+1)%inc.Count()))
	return v0, v1, incFace
}

// clipSegment is the Sutherland-Hodgman clip of a 2-point segment
// against the half-plane {p : dot(n, p) <= c}.
func clipSegment(n lin.V2, c float64, face [2]lin.V2) ([2]lin.V2, int) {
	var out [2]lin.V2
	sp := 0
	d1 := vDot(n, face[0]) - c
	d2 := vDot(n, face[1]) - c
	if d1 <= 0 {
		out[sp] = face[0]
		sp++
	}
	if d2 <= 0 {
		out[sp] = face[1]
		sp++
	}
	if d1*d2 < 0 && sp < 2 {
		alpha := d1 / (d1 - d2)
		out[sp] = vAdd(face[0], vScale(vSub(face[1], face[0]), alpha))
		sp++
	}
	return out, sp
}

// collidePolygons implements polygon/polygon SAT with Sutherland-Hodgman
// clipping of the incident edge against the reference edge's side
// planes, per the algorithm in Section 4.3.
func collidePolygons(sa Shape, txa *lin.T, sb Shape, txb *lin.T) (Manifold, bool) {
	pa, pb := sa.(*polygon), sb.(*polygon)

	faceA, penA := axisOfLeastPenetration(pa, pb, txa, txb)
	if penA >= 0 {
		return Manifold{}, false
	}
	faceB, penB := axisOfLeastPenetration(pb, pa, txb, txa)
	if penB >= 0 {
		return Manifold{}, false
	}

	var refPoly, incPoly *polygon
	var txref, txinc *lin.T
	var refIdx int
	flip := false

	// Bias toward keeping A as reference so that two nearly-equal
	// separations don't flip-flop the reference face between steps.
	if penB > penA+0.001*math.Abs(penA) {
		refPoly, incPoly, txref, txinc, refIdx, flip = pb, pa, txb, txa, faceB, true
	} else {
		refPoly, incPoly, txref, txinc, refIdx, flip = pa, pb, txa, txb, faceA, false
	}

	incV0, incV1, incFace := findIncidentFace(refPoly, incPoly, txref, txinc, refIdx)

	v1 := toWorld(txref, refPoly.Vertex(refIdx))
	v2 := toWorld(txref, refPoly.Vertex((refIdx+1)%refPoly.Count()))

	sidePlane := vUnit(vSub(v2, v1))
	refNormal := lin.V2{X: sidePlane.Y, Y: -sidePlane.X}

	refC := vDot(refNormal, v1)
	negSide := -vDot(sidePlane, v1)
	posSide := vDot(sidePlane, v2)

	face := [2]lin.V2{incV0, incV1}
	var n int
	face, n = clipSegment(vNeg(sidePlane), negSide, face)
	if n < 2 {
		return Manifold{}, false
	}
	face, n = clipSegment(sidePlane, posSide, face)
	if n < 2 {
		return Manifold{}, false
	}

	direction := refNormal
	flipBit := 0
	if flip {
		direction = vNeg(refNormal)
		flipBit = 1
	}
	direction = preserveDirection(direction, txa.Pos, txb.Pos)

	man := Manifold{Direction: direction}
	cp := 0
	if sep := vDot(refNormal, face[0]) - refC; sep <= 0 {
		man.Contacts[cp] = Contact{ID: (incFace << 2) | flipBit, Point: face[0], Depth: -sep}
		cp++
	}
	if sep := vDot(refNormal, face[1]) - refC; sep <= 0 {
		man.Contacts[cp] = Contact{ID: (incFace << 2) | 2 | flipBit, Point: face[1], Depth: -sep}
		cp++
	}
	man.Count = cp
	if cp == 0 {
		return Manifold{}, false
	}
	return man, true
}
