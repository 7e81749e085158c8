// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/galyenlogic/impulse2d/math/lin"
)

func dynamicCircle(pos lin.V2, mat Material) *Body {
	b := NewBody(Dynamic, pos)
	b.SetShape(NewCircle(mat, 1))
	return b
}

func TestSolveManifoldSeparatesApproachingBodies(t *testing.T) {
	a := dynamicCircle(lin.V2{X: 0}, Material{Density: 1})
	b := dynamicCircle(lin.V2{X: 1.8}, Material{Density: 1})
	a.SetLinearVelocity(lin.V2{X: 1})
	b.SetLinearVelocity(lin.V2{X: -1})

	man := Manifold{BodyA: a, BodyB: b, Direction: lin.V2{X: 1}, Count: 1}
	man.Contacts[0] = Contact{Point: lin.V2{X: 0.9}, Depth: 0.2}

	solveManifold(&man, 1.0/60.0)

	rel := relativeVelocity(a, b, lin.V2{}, lin.V2{})
	vn := vDot(rel, man.Direction)
	if vn > 1e-6 {
		t.Errorf("post-solve relative velocity along normal = %v, should not still be approaching", vn)
	}
}

func TestSolveManifoldAppliesRestitution(t *testing.T) {
	a := dynamicCircle(lin.V2{X: 0}, Material{Density: 1, Restitution: 1})
	b := dynamicCircle(lin.V2{X: 2}, Material{Density: 1, Restitution: 1})
	a.SetLinearVelocity(lin.V2{X: 1})
	b.SetLinearVelocity(lin.V2{X: -1})

	man := Manifold{BodyA: a, BodyB: b, Direction: lin.V2{X: 1}, Count: 1, Restitution: 1}
	man.Contacts[0] = Contact{Point: lin.V2{X: 1}, Depth: 0}

	solveManifold(&man, 1.0/60.0)

	// Perfectly elastic, equal-mass head-on collision should roughly
	// exchange velocities.
	if a.Motion().LinearVelocity.X >= 0 {
		t.Errorf("a should rebound negative, got %v", a.Motion().LinearVelocity.X)
	}
	if b.Motion().LinearVelocity.X <= 0 {
		t.Errorf("b should rebound positive, got %v", b.Motion().LinearVelocity.X)
	}
}

func TestSolveManifoldRestingContactStaysAtRest(t *testing.T) {
	ground := NewBody(Static, lin.V2{Y: 2})
	ground.SetShape(NewRectangle(Material{Density: 1}, 5, 1))
	box := dynamicCircle(lin.V2{Y: 0}, Material{Density: 1})

	man := Manifold{BodyA: box, BodyB: ground, Direction: lin.V2{X: 0, Y: 1}, Count: 1}
	man.Contacts[0] = Contact{Point: lin.V2{Y: 1}, Depth: 0}

	solveManifold(&man, 1.0/60.0)

	if box.Motion().LinearVelocity.Y < -1e-6 {
		t.Errorf("a resting body with zero relative velocity should not be pulled through the surface, vy = %v", box.Motion().LinearVelocity.Y)
	}
}

func TestSolveManifoldSkipsInfiniteMassPair(t *testing.T) {
	a := NewBody(Static, lin.V2{})
	b := NewBody(Static, lin.V2{X: 1})
	man := Manifold{BodyA: a, BodyB: b, Direction: lin.V2{X: 1}, Count: 1}
	man.Contacts[0] = Contact{Point: lin.V2{X: 0.5}, Depth: 0.5}

	// Must not panic despite both bodies carrying zero inverse mass.
	solveManifold(&man, 1.0/60.0)
}

func TestBaumgarteBiasZeroWithinSlop(t *testing.T) {
	if got := baumgarteBias(0, 1.0/60.0); got != 0 {
		t.Errorf("bias for zero depth = %v, want 0", got)
	}
	if got := baumgarteBias(Slop, 1.0/60.0); got != 0 {
		t.Errorf("bias at exactly Slop = %v, want 0", got)
	}
}

func TestBaumgarteBiasPositiveBeyondSlop(t *testing.T) {
	got := baumgarteBias(Slop*2, 1.0/60.0)
	if got <= 0 {
		t.Errorf("bias for depth beyond Slop should be positive, got %v", got)
	}
}

func TestWarmStartAppliesCachedImpulseBeforeIterating(t *testing.T) {
	a := dynamicCircle(lin.V2{X: 0}, Material{Density: 1})
	b := dynamicCircle(lin.V2{X: 2}, Material{Density: 1})

	man := Manifold{BodyA: a, BodyB: b, Direction: lin.V2{X: 1}, Count: 1}
	man.Contacts[0] = Contact{Point: lin.V2{X: 1}, NormalImpulse: 1}

	solveManifold(&man, 1.0/60.0)

	if b.Motion().LinearVelocity.X <= 0 {
		t.Errorf("warm-started normal impulse should push b away, got %v", b.Motion().LinearVelocity.X)
	}
	if a.Motion().LinearVelocity.X >= 0 {
		t.Errorf("warm-started normal impulse should push a away, got %v", a.Motion().LinearVelocity.X)
	}
}
