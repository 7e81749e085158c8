// Copyright © 2024 Galvanized Logic Inc.

// Package physics is a real-time simulation of 2D rigid body physics.
// Physics applies simulated forces to bodies and resolves the contacts
// between them, updating each body's position and orientation based on
// forces and collisions.
package physics

import (
	"log/slog"
	"math"

	"github.com/galyenlogic/impulse2d/math/lin"
)

// CollisionHandler holds the pre/post step callbacks a World invokes
// once per cached manifold, synchronously on the caller's goroutine.
// PreStep may mutate the manifold; setting Count to 0 suppresses
// constraint solving for that pair this step (e.g. a sensor contact
// that reports but does not resolve).
type CollisionHandler struct {
	PreStep  func(*Manifold)
	PostStep func(*Manifold)
}

// World owns all bodies added to it, the broad-phase spatial hash, the
// persistent contact cache, a fixed-step time accumulator, and an
// optional collision handler. A World does not take exclusive ownership
// of its bodies: removal returns them to the caller.
type World struct {
	gravity lin.V2
	hash    *SpatialHash
	cache   *ContactCache
	bodies  []*Body
	index   map[uint32]int

	accumulator float64
	lastTime    float64
	now         func() float64

	handler CollisionHandler
}

// NewWorld creates an empty world with the given gravity and broad-phase
// cell size. now supplies the injected wall-clock reading used by
// Update; pass nil if only Step will be used.
func NewWorld(gravity lin.V2, cellSize float64, now func() float64) *World {
	w := &World{
		gravity: gravity,
		hash:    NewSpatialHash(cellSize),
		cache:   NewContactCache(),
		bodies:  make([]*Body, 0, MaxBodies),
		index:   map[uint32]int{},
		now:     now,
	}
	if now != nil {
		w.lastTime = now()
	}
	return w
}

// AddBody adds b to the world. Returns false, without inserting, if the
// world is at capacity or b is already present.
func (w *World) AddBody(b *Body) bool {
	if len(w.bodies) >= MaxBodies {
		return false
	}
	if _, exists := w.index[b.bid]; exists {
		return false
	}
	w.index[b.bid] = len(w.bodies)
	w.bodies = append(w.bodies, b)
	return true
}

// RemoveBody removes b from the world, returning it to the caller.
// Returns false if b is not present. Removal swaps the last body into
// the freed slot; body identity, not slice position, is the stable
// handle used by the contact cache.
func (w *World) RemoveBody(b *Body) bool {
	idx, ok := w.index[b.bid]
	if !ok {
		return false
	}
	last := len(w.bodies) - 1
	w.bodies[idx] = w.bodies[last]
	w.index[w.bodies[idx].bid] = idx
	w.bodies[last] = nil
	w.bodies = w.bodies[:last]
	delete(w.index, b.bid)
	return true
}

// SetCollisionHandler installs the pre/post step callbacks, replacing
// any previously set handler. A zero-value CollisionHandler disables
// both callbacks.
func (w *World) SetCollisionHandler(h CollisionHandler) { w.handler = h }

// Step advances the simulation by exactly dt: rebuild the broad-phase
// index, enumerate candidate pairs and refresh the contact cache, fire
// preStep, integrate gravity and velocity, solve cached manifolds
// (warm-start then SolverIterations passes), integrate position, fire
// postStep, then clear forces and the broad-phase index. A non-positive
// dt is a no-op.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.rebuildBroadPhase()
	w.enumeratePairs()

	w.cache.Manifolds(func(m *Manifold) {
		if w.handler.PreStep != nil {
			w.handler.PreStep(m)
		}
	})

	for _, b := range w.bodies {
		b.applyGravity(w.gravity)
		b.integrateVelocity(dt)
	}

	w.cache.Manifolds(func(m *Manifold) {
		if m.Count == 0 {
			return
		}
		solveManifold(m, dt)
	})

	for _, b := range w.bodies {
		b.integratePosition(dt)
	}

	w.cache.Manifolds(func(m *Manifold) {
		if w.handler.PostStep != nil {
			w.handler.PostStep(m)
		}
	})

	for _, b := range w.bodies {
		b.clearForces()
	}
	w.hash.Clear()
}

// Update is the real-time wrapper around Step: it accumulates elapsed
// wall-clock time since the last call using the world's injected now()
// source, then runs Step(dt) zero or more times until the accumulator
// drops below dt. This keeps step size deterministic independent of
// frame rate. A non-positive dt is a no-op.
func (w *World) Update(dt float64) {
	if dt <= 0 || w.now == nil {
		return
	}
	now := w.now()
	elapsed := now - w.lastTime
	w.lastTime = now
	w.accumulator += elapsed
	for w.accumulator >= dt {
		w.Step(dt)
		w.accumulator -= dt
	}
}

// Raycast rebuilds the broad-phase index with every body's current AABB,
// queries it with the AABB spanning the ray segment, and invokes fn on
// every candidate that the ray actually hits. Ordering across candidates
// is unspecified.
func (w *World) Raycast(ray Ray, fn func(RaycastHit) bool) {
	w.hash.Clear()
	for i, b := range w.bodies {
		w.hash.Insert(i, b.aabb)
	}
	ctx := &raycastCtx{world: w, ray: ray, fn: fn}
	w.hash.Query(raySegmentAABB(ray), queryRaycastCallback, ctx)
}

func raySegmentAABB(ray Ray) AABB {
	dir := vUnit(ray.Direction)
	end := vAdd(ray.Origin, vScale(dir, ray.MaxDistance))
	minX, maxX := math.Min(ray.Origin.X, end.X), math.Max(ray.Origin.X, end.X)
	minY, maxY := math.Min(ray.Origin.Y, end.Y), math.Max(ray.Origin.Y, end.Y)
	return AABB{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

type raycastCtx struct {
	world *World
	ray   Ray
	fn    func(RaycastHit) bool
}

func queryRaycastCallback(i int, ctxAny any) bool {
	ctx := ctxAny.(*raycastCtx)
	if i < 0 || i >= len(ctx.world.bodies) {
		slog.Warn("raycast query returned stale body index", "index", i)
		return false
	}
	hit, ok := computeRaycast(ctx.world.bodies[i], ctx.ray)
	if !ok {
		return false
	}
	return ctx.fn(hit)
}

// rebuildBroadPhase clears the spatial hash and reinserts every body's
// current AABB, keyed by its slice index.
func (w *World) rebuildBroadPhase() {
	w.hash.Clear()
	for i, b := range w.bodies {
		w.hash.Insert(i, b.aabb)
	}
}

// enumeratePairs queries the hash once per body, narrow-phase tests
// surviving candidates, and inserts/refreshes/evicts contact-cache
// entries accordingly.
func (w *World) enumeratePairs() {
	for i, bi := range w.bodies {
		ctx := &pairCtx{world: w, i: i, bi: bi}
		w.hash.Query(bi.aabb, queryPairCallback, ctx)
	}
}

type pairCtx struct {
	world *World
	i     int
	bi    *Body
}

// queryPairCallback rejects j <= i (avoiding double counting) and pairs
// where both bodies carry zero inverse mass, rejects candidates whose
// AABBs don't actually overlap (the hash reports false positives from
// shared cells; narrow phase is expensive enough to make this cheap
// reject worth doing first), then runs narrow phase and updates the
// contact cache on the result.
func queryPairCallback(j int, ctxAny any) bool {
	ctx := ctxAny.(*pairCtx)
	if j <= ctx.i {
		return false
	}
	bj := ctx.world.bodies[j]
	if ctx.bi.mot.InverseMass == 0 && bj.mot.InverseMass == 0 {
		return false
	}
	if ctx.bi.shape == nil || bj.shape == nil {
		return false
	}
	if !ctx.bi.aabb.Overlaps(&bj.aabb) {
		return false
	}
	man, ok := computeCollision(ctx.bi.shape, ctx.bi.tx, bj.shape, bj.tx)
	if !ok {
		ctx.world.cache.Evict(ctx.bi, bj)
		return false
	}
	man.BodyA, man.BodyB = ctx.bi, bj
	ctx.world.cache.Upsert(ctx.bi, bj, man)
	return true
}
