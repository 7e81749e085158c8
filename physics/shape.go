// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"

	"github.com/galyenlogic/impulse2d/math/lin"
)

// Material describes the physical properties combined with a shape to
// determine behaviour during collision resolution.
type Material struct {
	Density     float64 // Density >= 0. Mass = Density * Area.
	Friction    float64 // Friction >= 0. Combined by arithmetic mean.
	Restitution float64 // Restitution in [0, 1]. Combined by minimum.
}

// clamp brings a material's fields into their documented ranges.
func (m Material) clamp() Material {
	if m.Density < 0 {
		m.Density = 0
	}
	if m.Friction < 0 {
		m.Friction = 0
	}
	if m.Restitution < 0 {
		m.Restitution = 0
	} else if m.Restitution > 1 {
		m.Restitution = 1
	}
	return m
}

// Shape is a physics collision primitive used for 2D collision detection.
// A Shape is always in local space centered at the origin. Combine a shape
// with a transform to position the shape anywhere in world space.
type Shape interface {
	Type() int            // Type returns the shape type.
	Area() float64         // Area is useful for mass = density*area.
	Mat() Material         // Mat returns the shape's material.
	SetMat(mat Material)   // SetMat replaces the shape's material.

	// Aabb updates ab to be the axis aligned bounding box for this shape,
	// in the space defined by the transform. The updated AABB ab is
	// returned.
	Aabb(transform *lin.T, ab *AABB) *AABB

	// Contains returns true if local-space point p lies on or within the
	// shape's boundary.
	Contains(p lin.V2) bool

	// computeMass returns the mass and rotational inertia about the
	// center of mass for the given density.
	computeMass(density float64) (mass, inertia float64)
}

// Enumerate the shapes handled by physics and returned by Shape.Type().
const (
	CircleShape  = iota // Considered convex (curving outwards).
	PolygonShape        // Convex polygon: flat edges, straight normals.
	NumShapes           // Keep this last.
)

// Currently the shapes are so simple they are all kept in this one file.

// Shape interface
// ============================================================================
// circle shape

// circle is a collision shape primitive that is defined by a radius
// around the origin.
type circle struct {
	mat Material
	R   float64
}

// NewCircle creates a Circle shape. Non-positive radius values cause
// construction to fail, returning nil.
func NewCircle(mat Material, radius float64) Shape {
	if radius <= 0 {
		return nil
	}
	return &circle{mat: mat.clamp(), R: radius}
}

// Implements Shape.Type
func (c *circle) Type() int { return CircleShape }

// Implements Shape.Mat
func (c *circle) Mat() Material { return c.mat }

// Implements Shape.SetMat
func (c *circle) SetMat(mat Material) { c.mat = mat.clamp() }

// Implements Shape.Area
func (c *circle) Area() float64 { return lin.PI * c.R * c.R }

// Implements Shape.Aabb
func (c *circle) Aabb(t *lin.T, ab *AABB) *AABB {
	ab.X, ab.Y = t.Pos.X-c.R, t.Pos.Y-c.R
	ab.Width, ab.Height = 2*c.R, 2*c.R
	return ab
}

// Implements Shape.Contains
func (c *circle) Contains(p lin.V2) bool {
	return p.LenSqr() <= c.R*c.R
}

// Implements Shape.computeMass
func (c *circle) computeMass(density float64) (mass, inertia float64) {
	mass = density * c.Area()
	inertia = 0.5 * mass * c.R * c.R
	return mass, inertia
}

// circle
// ============================================================================
// polygon shape

// polygon is a collision shape primitive defined as the convex hull of up
// to MaxPolyVertices points, stored counter-clockwise, along with the
// outward unit normal of each edge.
type polygon struct {
	mat     Material
	verts   []lin.V2
	normals []lin.V2
	area    float64
}

// NewPolygon reduces an unordered set of up to MaxPolyVertices points to
// their CCW convex hull via gift wrapping (Jarvis march). Construction
// fails, returning nil, if fewer than 3 points remain after reduction or
// more than MaxPolyVertices points were given.
func NewPolygon(mat Material, points []lin.V2) Shape {
	if len(points) < 3 || len(points) > MaxPolyVertices {
		return nil
	}
	hull := jarvisMarch(points)
	if len(hull) < 3 {
		return nil
	}
	p := &polygon{mat: mat.clamp(), verts: hull}
	p.computeNormals()
	p.area = polygonArea(p.verts)
	return p
}

// NewRectangle returns the convex hull of an axis-aligned box with the
// given half-extents, as the four CCW corners. Negative input values are
// turned positive.
func NewRectangle(mat Material, halfWidth, halfHeight float64) Shape {
	hw, hh := math.Abs(halfWidth), math.Abs(halfHeight)
	pts := []lin.V2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	return NewPolygon(mat, pts)
}

// jarvisMarch reduces an unordered point set to its CCW convex hull.
func jarvisMarch(points []lin.V2) []lin.V2 {
	// Find the leftmost-lowest point to start from; it is guaranteed to
	// be on the hull.
	start := 0
	for i, p := range points {
		if p.X < points[start].X || (p.X == points[start].X && p.Y < points[start].Y) {
			start = i
		}
	}

	hull := []lin.V2{}
	current := start
	for {
		hull = append(hull, points[current])
		next := (current + 1) % len(points)
		for i := range points {
			if i == current {
				continue
			}
			cr := cross3(points[current], points[next], points[i])
			if cr < 0 {
				next = i
			} else if cr == 0 {
				// co-linear: keep the farther point.
				if dist2(points[current], points[i]) > dist2(points[current], points[next]) {
					next = i
				}
			}
		}
		current = next
		if current == start {
			break
		}
		if len(hull) > len(points) {
			break // defensive: should never trigger for a valid point set.
		}
	}
	return hull
}

// cross3 returns the signed area (2x the cross product) of the turn
// a->b->c. Positive means a counter-clockwise turn.
func cross3(a, b, c lin.V2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func dist2(a, b lin.V2) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// computeNormals sets normals[i] to the unit left-perpendicular of edge
// (v[i-1] -> v[i]).
func (p *polygon) computeNormals() {
	n := len(p.verts)
	p.normals = make([]lin.V2, n)
	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		edge := lin.V2{X: p.verts[i].X - p.verts[prev].X, Y: p.verts[i].Y - p.verts[prev].Y}
		norm := lin.NewV2()
		norm.Perp(&edge)
		norm.Unit(norm)
		p.normals[i] = *norm
	}
}

// polygonArea computes ½·|Σ cross(v_i−v_0, v_{i+1}−v_0)|.
func polygonArea(verts []lin.V2) float64 {
	if len(verts) < 3 {
		return 0
	}
	sum := 0.0
	v0 := verts[0]
	for i := 1; i < len(verts)-1; i++ {
		a := lin.V2{X: verts[i].X - v0.X, Y: verts[i].Y - v0.Y}
		b := lin.V2{X: verts[i+1].X - v0.X, Y: verts[i+1].Y - v0.Y}
		sum += a.Cross(&b)
	}
	return math.Abs(sum) / 2
}

// Implements Shape.Type
func (p *polygon) Type() int { return PolygonShape }

// Implements Shape.Mat
func (p *polygon) Mat() Material { return p.mat }

// Implements Shape.SetMat
func (p *polygon) SetMat(mat Material) { p.mat = mat.clamp() }

// Implements Shape.Area
func (p *polygon) Area() float64 { return p.area }

// Count returns the number of vertices in the hull.
func (p *polygon) Count() int { return len(p.verts) }

// Vertex returns local-space vertex i.
func (p *polygon) Vertex(i int) lin.V2 { return p.verts[i] }

// Normal returns the outward unit normal of edge i (the edge running
// from vertex i-1 to vertex i).
func (p *polygon) Normal(i int) lin.V2 { return p.normals[i] }

// Implements Shape.Aabb
func (p *polygon) Aabb(t *lin.T, ab *AABB) *AABB {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	world := lin.NewV2()
	for _, v := range p.verts {
		t.ToWorld(world, &v)
		minX, minY = math.Min(minX, world.X), math.Min(minY, world.Y)
		maxX, maxY = math.Max(maxX, world.X), math.Max(maxY, world.Y)
	}
	ab.X, ab.Y = minX, minY
	ab.Width, ab.Height = maxX-minX, maxY-minY
	return ab
}

// Implements Shape.Contains
func (p *polygon) Contains(pt lin.V2) bool {
	for i, n := range p.normals {
		edge := lin.V2{X: pt.X - p.verts[i].X, Y: pt.Y - p.verts[i].Y}
		if n.Dot(&edge) > lin.Epsilon {
			return false
		}
	}
	return true
}

// Implements Shape.computeMass
func (p *polygon) computeMass(density float64) (mass, inertia float64) {
	mass = density * p.area
	if p.area <= lin.Epsilon {
		return mass, 0
	}
	var numer, denom float64
	n := len(p.verts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vi, vj := p.verts[i], p.verts[j]
		crossij := vj.Cross(&vi)
		integral := vj.Dot(&vj) + vj.Dot(&vi) + vi.Dot(&vi)
		numer += crossij * integral
		denom += crossij
	}
	if lin.AeqZ(denom) {
		return mass, 0
	}
	inertia = (density / 6.0) * (numer / denom)
	if inertia < 0 {
		inertia = -inertia
	}
	return mass, inertia
}
