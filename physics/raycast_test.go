// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/galyenlogic/impulse2d/math/lin"
)

func TestRaycastHitsCircle(t *testing.T) {
	b := NewBody(Static, lin.V2{X: 5, Y: 0})
	b.SetShape(NewCircle(Material{Density: 1}, 1))

	ray := Ray{Origin: lin.V2{X: 0, Y: 0}, Direction: lin.V2{X: 1, Y: 0}, MaxDistance: 10}
	hit, ok := computeRaycast(b, ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !lin.Aeq(hit.Distance, 4) {
		t.Errorf("distance = %v, want 4", hit.Distance)
	}
	if hit.Normal.X >= 0 {
		t.Errorf("normal should point back toward the ray origin, got %+v", hit.Normal)
	}
}

func TestRaycastMissesCircle(t *testing.T) {
	b := NewBody(Static, lin.V2{X: 0, Y: 5})
	b.SetShape(NewCircle(Material{Density: 1}, 1))

	ray := Ray{Origin: lin.V2{X: 0, Y: 0}, Direction: lin.V2{X: 1, Y: 0}, MaxDistance: 10}
	if _, ok := computeRaycast(b, ray); ok {
		t.Error("ray travelling away from the circle should not hit")
	}
}

func TestRaycastRespectsMaxDistance(t *testing.T) {
	b := NewBody(Static, lin.V2{X: 100, Y: 0})
	b.SetShape(NewCircle(Material{Density: 1}, 1))

	ray := Ray{Origin: lin.V2{}, Direction: lin.V2{X: 1, Y: 0}, MaxDistance: 5}
	if _, ok := computeRaycast(b, ray); ok {
		t.Error("hit beyond max distance should be rejected")
	}
}

func TestRaycastHitsPolygon(t *testing.T) {
	b := NewBody(Static, lin.V2{X: 5, Y: 0})
	b.SetShape(NewRectangle(Material{Density: 1}, 1, 1))

	ray := Ray{Origin: lin.V2{}, Direction: lin.V2{X: 1, Y: 0}, MaxDistance: 10}
	hit, ok := computeRaycast(b, ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !lin.Aeq(hit.Distance, 4) {
		t.Errorf("distance = %v, want 4", hit.Distance)
	}
}

func TestRaycastOriginInsidePolygonReportsInside(t *testing.T) {
	b := NewBody(Static, lin.V2{})
	b.SetShape(NewRectangle(Material{Density: 1}, 5, 5))

	ray := Ray{Origin: lin.V2{}, Direction: lin.V2{X: 1, Y: 0}, MaxDistance: 10}
	hit, ok := computeRaycast(b, ray)
	if !ok {
		t.Fatal("expected a hit on the far wall from inside")
	}
	if !hit.Inside {
		t.Error("ray originating inside the polygon should report Inside")
	}
}

func TestRaycastNoShapeNeverHits(t *testing.T) {
	b := NewBody(Static, lin.V2{})
	ray := Ray{Origin: lin.V2{X: -5}, Direction: lin.V2{X: 1}, MaxDistance: 10}
	if _, ok := computeRaycast(b, ray); ok {
		t.Error("shapeless body should never be hit")
	}
}
