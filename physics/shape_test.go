// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"
	"testing"

	"github.com/galyenlogic/impulse2d/math/lin"
)

// aeq reports whether a and b are within tol of each other, for
// assertions too loose for lin.Aeq's fixed epsilon.
func aeq(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestNewCircleRejectsNonPositiveRadius(t *testing.T) {
	if NewCircle(Material{Density: 1}, 0) != nil {
		t.Error("zero radius should fail")
	}
	if NewCircle(Material{Density: 1}, -1) != nil {
		t.Error("negative radius should fail")
	}
}

func TestCircleAreaAndMass(t *testing.T) {
	c := NewCircle(Material{Density: 2}, 3)
	if !lin.Aeq(c.Area(), lin.PI*9) {
		t.Errorf("area = %v, want %v", c.Area(), lin.PI*9)
	}
	mass, inertia := c.(*circle).computeMass(2)
	wantMass := 2 * lin.PI * 9
	if !lin.Aeq(mass, wantMass) {
		t.Errorf("mass = %v, want %v", mass, wantMass)
	}
	wantInertia := 0.5 * wantMass * 9
	if !lin.Aeq(inertia, wantInertia) {
		t.Errorf("inertia = %v, want %v", inertia, wantInertia)
	}
}

func TestCircleContains(t *testing.T) {
	c := NewCircle(Material{Density: 1}, 2)
	if !c.Contains(lin.V2{X: 1, Y: 1}) {
		t.Error("point inside circle should be contained")
	}
	if c.Contains(lin.V2{X: 3, Y: 0}) {
		t.Error("point outside circle should not be contained")
	}
}

func TestCircleAabb(t *testing.T) {
	c := NewCircle(Material{Density: 1}, 2)
	tx := lin.NewT()
	tx.Pos = lin.V2{X: 5, Y: 5}
	var ab AABB
	c.Aabb(tx, &ab)
	if ab.X != 3 || ab.Y != 3 || ab.Width != 4 || ab.Height != 4 {
		t.Errorf("aabb = %+v, want {3 3 4 4}", ab)
	}
}

func TestNewPolygonRejectsDegenerateInput(t *testing.T) {
	if NewPolygon(Material{Density: 1}, []lin.V2{{X: 0, Y: 0}, {X: 1, Y: 0}}) != nil {
		t.Error("fewer than 3 points should fail")
	}
	collinear := []lin.V2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	if NewPolygon(Material{Density: 1}, collinear) != nil {
		t.Error("collinear points should reduce below 3 hull vertices and fail")
	}
	tooMany := make([]lin.V2, MaxPolyVertices+1)
	for i := range tooMany {
		tooMany[i] = lin.V2{X: float64(i), Y: float64(i * i)}
	}
	if NewPolygon(Material{Density: 1}, tooMany) != nil {
		t.Error("more than MaxPolyVertices points should fail")
	}
}

func TestNewRectangleIsCCWWithOutwardNormals(t *testing.T) {
	r := NewRectangle(Material{Density: 1}, 2, 1).(*polygon)
	if r.Count() != 4 {
		t.Fatalf("count = %d, want 4", r.Count())
	}
	if !lin.Aeq(r.Area(), 8) {
		t.Errorf("area = %v, want 8", r.Area())
	}
	// Every vertex should lie on the polygon's own boundary (dot product
	// with its edge normals never strictly positive).
	for i := 0; i < r.Count(); i++ {
		if !r.Contains(r.Vertex(i)) {
			t.Errorf("vertex %d not reported as contained in its own polygon", i)
		}
	}
	if !r.Contains(lin.V2{X: 0, Y: 0}) {
		t.Error("origin should be inside the rectangle")
	}
	if r.Contains(lin.V2{X: 5, Y: 5}) {
		t.Error("far point should be outside the rectangle")
	}
}

func TestPolygonMassOfUnitSquare(t *testing.T) {
	sq := NewRectangle(Material{Density: 1}, 1, 1).(*polygon)
	mass, inertia := sq.computeMass(1)
	if !lin.Aeq(mass, 4) {
		t.Errorf("mass = %v, want 4", mass)
	}
	// Analytic inertia of a 2x2 square about its center, unit density:
	// I = mass * (w^2+h^2) / 12 = 4 * 8 / 12.
	want := 4.0 * (4.0 + 4.0) / 12.0
	if !aeq(inertia, want, 1e-6) {
		t.Errorf("inertia = %v, want %v", inertia, want)
	}
}

func TestPolygonAabbRotated(t *testing.T) {
	sq := NewRectangle(Material{Density: 1}, 1, 1)
	tx := lin.NewT()
	tx.SetAngle(lin.PI / 4)
	var ab AABB
	sq.Aabb(tx, &ab)
	diag := 2 * 1.41421356
	if !aeq(ab.Width, diag, 1e-3) {
		t.Errorf("width = %v, want ~%v", ab.Width, diag)
	}
}

func TestJarvisMarchReducesToHull(t *testing.T) {
	// A square plus a point strictly inside it should reduce to the square.
	pts := []lin.V2{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
		{X: 0, Y: 0},
	}
	p := NewPolygon(Material{Density: 1}, pts)
	if p == nil {
		t.Fatal("construction failed")
	}
	if p.(*polygon).Count() != 4 {
		t.Errorf("hull count = %d, want 4", p.(*polygon).Count())
	}
}
