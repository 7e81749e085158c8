// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// raycast contains ray casting logic. It is separate from full collision
// tracking and often used to answer questions like "what is the user
// clicking on?".

import (
	"math"

	"github.com/galyenlogic/impulse2d/math/lin"
)

// Ray is a half-line used for picking and line-of-sight queries.
// direction need not be unit length; the raycaster normalizes it.
type Ray struct {
	Origin      lin.V2
	Direction   lin.V2
	MaxDistance float64
}

// RaycastHit describes where a ray met a body.
type RaycastHit struct {
	Body     *Body
	Point    lin.V2
	Normal   lin.V2
	Distance float64
	Inside   bool // Advisory only; see computeRaycast for polygons.
}

// cast is the function prototype for ray casting algorithms, keyed by
// the target shape's Type().
type cast func(origin, dir lin.V2, maxDist float64, shape Shape, tx *lin.T) (RaycastHit, bool)

// castAlgorithms holds the algorithm for each shape a ray can be tested
// against.
var castAlgorithms = map[int]cast{
	CircleShape:  castRayCircle,
	PolygonShape: castRayPolygon,
}

// computeRaycast normalizes ray.Direction and dispatches to the
// algorithm for body's shape. A body with no shape never reports a hit.
func computeRaycast(body *Body, ray Ray) (RaycastHit, bool) {
	if body.shape == nil {
		return RaycastHit{}, false
	}
	fn := castAlgorithms[body.shape.Type()]
	if fn == nil {
		return RaycastHit{}, false
	}
	dir := vUnit(ray.Direction)
	hit, ok := fn(ray.Origin, dir, ray.MaxDistance, body.shape, body.tx)
	if !ok {
		return RaycastHit{}, false
	}
	hit.Body = body
	return hit, true
}

// ============================================================================
// ray-circle cast

// castRayCircle solves the classic ray-sphere quadratic restricted to
// the plane, accepting the near root within [0, maxDist].
func castRayCircle(origin, dir lin.V2, maxDist float64, shape Shape, tx *lin.T) (RaycastHit, bool) {
	c := shape.(*circle)
	toCenter := vSub(tx.Pos, origin)
	proj := vDot(dir, toCenter)
	if proj < 0 {
		return RaycastHit{}, false
	}
	radius2 := c.R * c.R
	perp2 := vDot(toCenter, toCenter) - proj*proj
	if perp2 > radius2 {
		return RaycastHit{}, false
	}
	dist := proj - math.Sqrt(radius2-perp2)
	if dist < 0 || dist > maxDist {
		return RaycastHit{}, false
	}
	point := vAdd(origin, vScale(dir, dist))
	normal := vUnit(vSub(origin, point))
	return RaycastHit{Point: point, Normal: normal, Distance: dist, Inside: perp2 < 0}, true
}

// ray-circle cast
// ============================================================================
// ray-polygon cast

// castRayPolygon intersects the ray with each edge of the polygon using
// the parametric line-line formula, keeping the smallest non-negative
// distance within maxDist. inside is true iff the number of edges the
// infinite ray crosses is odd.
func castRayPolygon(origin, dir lin.V2, maxDist float64, shape Shape, tx *lin.T) (RaycastHit, bool) {
	p := shape.(*polygon)
	n := p.Count()

	bestDist := math.Inf(1)
	bestEdge := -1
	crossings := 0

	for i := 0; i < n; i++ {
		a := toWorld(tx, p.Vertex(i))
		b := toWorld(tx, p.Vertex((i+1)%n))
		edge := vSub(b, a)

		denom := dir.X*edge.Y - dir.Y*edge.X
		if !lin.AeqZ(denom) {
			toA := vSub(a, origin)
			t := (toA.X*edge.Y - toA.Y*edge.X) / denom // distance along ray
			u := (toA.X*dir.Y - toA.Y*dir.X) / denom    // distance along edge
			if t >= 0 && t <= maxDist && u >= 0 && u <= 1 {
				if t < bestDist {
					bestDist = t
					bestEdge = i
				}
			}
			if t >= 0 && u >= 0 && u <= 1 {
				crossings++
			}
		}
	}

	if bestEdge < 0 {
		return RaycastHit{}, false
	}
	a := toWorld(tx, p.Vertex(bestEdge))
	b := toWorld(tx, p.Vertex((bestEdge+1)%n))
	edge := vSub(b, a)
	normal := vUnit(lin.V2{X: -edge.Y, Y: edge.X})
	point := vAdd(origin, vScale(dir, bestDist))
	return RaycastHit{Point: point, Normal: normal, Distance: bestDist, Inside: crossings%2 == 1}, true
}
