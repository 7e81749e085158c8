// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"sync"

	"github.com/galyenlogic/impulse2d/math/lin"
)

// BodyType controls how a Body participates in the simulation.
type BodyType int

const (
	// Static bodies never move: velocity is pinned to zero and mass is
	// treated as infinite (inverseMass, inverseInertia == 0).
	Static BodyType = iota
	// Kinematic bodies have user-controlled velocity, are treated as
	// infinite mass, and are unaffected by forces or gravity.
	Kinematic
	// Dynamic bodies are fully simulated.
	Dynamic
)

// Flag bits force zero inverse-mass or inverse-inertia even on a Dynamic
// body, e.g. to pin a body's rotation or let it push others without
// being pushed back.
type Flag uint32

const (
	// FixedRotation forces inverseInertia to 0.
	FixedRotation Flag = 1 << iota
	// InfiniteMass forces inverseMass to 0.
	InfiniteMass
)

// Motion holds the per-body state consumed by the dynamics and solver
// stages: mass properties, velocities, and the force accumulator.
type Motion struct {
	Mass, InverseMass       float64
	Inertia, InverseInertia float64
	GravityScale            float64
	LinearVelocity          lin.V2
	AngularVelocity         float64
	Force                   lin.V2
	Torque                  float64
}

// Body is a single rigid object participating in a simulation. A Body
// owns a transform and motion state but only references its Shape; the
// same shape may be reused by multiple bodies.
type Body struct {
	bid   uint32
	typ   BodyType
	flags Flag
	shape Shape
	tx    *lin.T
	mot   Motion
	aabb  AABB
	User  interface{} // Opaque, never dereferenced by the engine.
}

var bodyUUID uint32
var bodyUUIDMutex sync.Mutex // Concurrency safety for id allocation.

// NewBody returns a new Body of the given type, positioned at pos with
// no rotation and no shape. Use SetShape to attach a shape.
func NewBody(typ BodyType, pos lin.V2) *Body {
	b := &Body{typ: typ, tx: lin.NewT()}
	b.tx.Pos = pos
	b.mot.GravityScale = 1
	bodyUUIDMutex.Lock()
	b.bid = bodyUUID
	bodyUUID++
	bodyUUIDMutex.Unlock()
	return b
}

// Type returns the body's simulation type.
func (b *Body) Type() BodyType { return b.typ }

// SetType changes the body's simulation type and recomputes mass
// properties accordingly. Switching to Static pins velocity to zero.
func (b *Body) SetType(typ BodyType) {
	b.typ = typ
	if typ == Static {
		b.mot.LinearVelocity = lin.V2{}
		b.mot.AngularVelocity = 0
	}
	b.refreshMass()
}

// Flags returns the body's current flag bits.
func (b *Body) Flags() Flag { return b.flags }

// SetFlags replaces the body's flag bits and recomputes mass properties.
func (b *Body) SetFlags(flags Flag) {
	b.flags = flags
	b.refreshMass()
}

// Shape returns the body's current shape, or nil if none is attached.
func (b *Body) Shape() Shape { return b.shape }

// SetShape attaches shape to the body, or detaches the current shape if
// shape is nil. Mass properties and the AABB are refreshed.
func (b *Body) SetShape(shape Shape) {
	b.shape = shape
	b.refreshMass()
	b.refreshAabb()
}

// Transform returns the body's world transform.
func (b *Body) Transform() *lin.T { return b.tx }

// SetTransform repositions and reorients the body, refreshing its AABB.
func (b *Body) SetTransform(pos lin.V2, angle float64) {
	b.tx.Pos = pos
	b.tx.SetAngle(angle)
	b.refreshAabb()
}

// Motion returns a copy of the body's current motion state.
func (b *Body) Motion() Motion { return b.mot }

// SetLinearVelocity sets the body's linear velocity directly. A no-op on
// Static bodies, whose velocity is always pinned to zero.
func (b *Body) SetLinearVelocity(v lin.V2) {
	if b.typ == Static {
		return
	}
	b.mot.LinearVelocity = v
}

// SetAngularVelocity sets the body's angular velocity directly. A no-op
// on Static bodies, whose velocity is always pinned to zero.
func (b *Body) SetAngularVelocity(w float64) {
	if b.typ == Static {
		return
	}
	b.mot.AngularVelocity = w
}

// SetGravityScale sets the multiplier applied to the world's gravity
// vector before it affects this body. Only meaningful for Dynamic bodies.
func (b *Body) SetGravityScale(scale float64) { b.mot.GravityScale = scale }

// AABB returns the body's current world-space bounding box.
func (b *Body) AABB() AABB { return b.aabb }

// Eq returns true if a and b are the same body.
func (b *Body) Eq(a *Body) bool { return b.bid == a.bid }

// pairID generates a unique id for bodies a and b, independent of
// calling order, for use as a contact-cache key.
func (b *Body) pairID(a *Body) uint64 {
	id0, id1 := b.bid, a.bid
	if id0 > id1 {
		id0, id1 = id1, id0
	}
	return uint64(id0)<<32 + uint64(id1)
}

// ApplyForce adds force, acting at world point, to the body's force and
// torque accumulators. Ignored for non-Dynamic bodies.
func (b *Body) ApplyForce(point, force lin.V2) {
	if b.typ != Dynamic {
		return
	}
	b.mot.Force.X += force.X
	b.mot.Force.Y += force.Y
	r := lin.V2{X: point.X - b.tx.Pos.X, Y: point.Y - b.tx.Pos.Y}
	b.mot.Torque += r.Cross(&force)
}

// ApplyImpulse immediately changes the body's linear and angular
// velocity by impulse, applied at world point. Ignored for bodies with
// zero inverse mass.
func (b *Body) ApplyImpulse(point, impulse lin.V2) {
	if b.mot.InverseMass == 0 {
		return
	}
	b.mot.LinearVelocity.X += impulse.X * b.mot.InverseMass
	b.mot.LinearVelocity.Y += impulse.Y * b.mot.InverseMass
	r := lin.V2{X: point.X - b.tx.Pos.X, Y: point.Y - b.tx.Pos.Y}
	b.mot.AngularVelocity += b.mot.InverseInertia * r.Cross(&impulse)
}

// ContainsPoint returns true if world point p lies within the body's
// shape. A body with no shape never contains any point.
func (b *Body) ContainsPoint(p lin.V2) bool {
	if b.shape == nil {
		return false
	}
	local := lin.NewV2()
	b.tx.ToLocal(local, &p)
	return b.shape.Contains(*local)
}

// applyGravity adds g, scaled by gravityScale and mass, to the force
// accumulator. Ignored for non-Dynamic bodies.
func (b *Body) applyGravity(g lin.V2) {
	if b.typ != Dynamic {
		return
	}
	b.mot.Force.X += g.X * b.mot.GravityScale * b.mot.Mass
	b.mot.Force.Y += g.Y * b.mot.GravityScale * b.mot.Mass
}

// integrateVelocity updates linear and angular velocity from the current
// force and torque accumulators. Ignored for non-Dynamic bodies.
func (b *Body) integrateVelocity(dt float64) {
	if b.typ != Dynamic {
		return
	}
	m := &b.mot
	m.LinearVelocity.X += m.Force.X * m.InverseMass * dt
	m.LinearVelocity.Y += m.Force.Y * m.InverseMass * dt
	m.AngularVelocity += m.Torque * m.InverseInertia * dt
}

// integratePosition advances the transform by the current velocities and
// refreshes the AABB. Static bodies never move.
func (b *Body) integratePosition(dt float64) {
	if b.typ == Static {
		return
	}
	b.tx.Integrate(&b.mot.LinearVelocity, b.mot.AngularVelocity, dt)
	b.refreshAabb()
}

// clearForces resets the force and torque accumulators to zero.
func (b *Body) clearForces() {
	b.mot.Force = lin.V2{}
	b.mot.Torque = 0
}

// refreshMass recomputes mass, inertia, and their inverses from the
// current shape, type, and flags. Static and Kinematic bodies, and
// bodies with no shape, carry zero mass properties (treated as infinite
// mass by the solver).
func (b *Body) refreshMass() {
	m := &b.mot
	m.Mass, m.Inertia, m.InverseMass, m.InverseInertia = 0, 0, 0, 0
	if b.typ != Dynamic || b.shape == nil {
		return
	}
	mass, inertia := b.shape.computeMass(b.shape.Mat().Density)
	m.Mass, m.Inertia = mass, inertia
	if b.flags&InfiniteMass == 0 && !lin.AeqZ(mass) {
		m.InverseMass = 1 / mass
	}
	if b.flags&FixedRotation == 0 && !lin.AeqZ(inertia) {
		m.InverseInertia = 1 / inertia
	}
}

// refreshAabb recomputes the body's world-space bounding box from its
// shape and transform. A body with no shape gets a zero-sized box at its
// position.
func (b *Body) refreshAabb() {
	if b.shape == nil {
		b.aabb = AABB{X: b.tx.Pos.X, Y: b.tx.Pos.Y}
		return
	}
	b.shape.Aabb(b.tx, &b.aabb)
}
