// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galyenlogic/impulse2d/math/lin"

// Contact is a single point where two shapes touch or overlap. id
// encodes the incident-edge vertex indices plus a bit distinguishing
// which body supplied the reference edge, so the same physical contact
// keeps the same id across steps regardless of body order.
type Contact struct {
	ID             int
	Point          lin.V2
	Depth          float64
	NormalImpulse  float64 // Warm-start cache, accumulated by the solver.
	TangentImpulse float64 // Warm-start cache, accumulated by the solver.
}

// Manifold describes the contact region between two bodies. Direction
// always points from body A toward body B.
type Manifold struct {
	BodyA, BodyB *Body
	Direction    lin.V2
	Contacts     [2]Contact
	Count        int
	Friction     float64
	Restitution  float64
}

// contactPair is the entry stored in a ContactCache: a manifold between
// two bodies, carried across steps so that matching contact ids preserve
// their warm-start impulses.
type contactPair struct {
	pid uint64
	man Manifold
}

// ContactCache is a pair-keyed set of manifolds, keyed by the unordered
// pair of body identities. Entries live across steps: refreshed when a
// pair still collides, evicted when it does not.
type ContactCache struct {
	pairs map[uint64]*contactPair
}

// NewContactCache creates an empty contact cache.
func NewContactCache() *ContactCache {
	return &ContactCache{pairs: map[uint64]*contactPair{}}
}

// Upsert inserts or refreshes the manifold for (a, b). Per-contact warm
// start impulses are preserved for contact ids that match the previous
// step's manifold; friction and restitution are kept from the existing
// entry on an update and computed fresh only on first insert.
func (cache *ContactCache) Upsert(a, b *Body, man Manifold) {
	pid := a.pairID(b)
	existing, ok := cache.pairs[pid]
	if !ok {
		cache.pairs[pid] = &contactPair{pid: pid, man: man}
		return
	}
	prev := existing.man
	for i := 0; i < man.Count; i++ {
		for j := 0; j < prev.Count; j++ {
			if man.Contacts[i].ID == prev.Contacts[j].ID {
				man.Contacts[i].NormalImpulse = prev.Contacts[j].NormalImpulse
				man.Contacts[i].TangentImpulse = prev.Contacts[j].TangentImpulse
				break
			}
		}
	}
	man.Friction, man.Restitution = prev.Friction, prev.Restitution
	existing.man = man
}

// Evict removes any cached entry for the pair (a, b).
func (cache *ContactCache) Evict(a, b *Body) {
	delete(cache.pairs, a.pairID(b))
}

// Manifolds returns every currently cached manifold. The order is
// unspecified.
func (cache *ContactCache) Manifolds(fn func(*Manifold)) {
	for _, p := range cache.pairs {
		fn(&p.man)
	}
}

// Clear removes every cached entry.
func (cache *ContactCache) Clear() {
	for k := range cache.pairs {
		delete(cache.pairs, k)
	}
}

// combinedFriction is the arithmetic mean of the two materials'
// frictions, clamped non-negative.
func combinedFriction(a, b Material) float64 {
	f := (a.Friction + b.Friction) / 2
	if f < 0 {
		return 0
	}
	return f
}

// combinedRestitution is the minimum of the two materials'
// restitutions, clamped non-negative.
func combinedRestitution(a, b Material) float64 {
	r := a.Restitution
	if b.Restitution < r {
		r = b.Restitution
	}
	if r < 0 {
		return 0
	}
	return r
}
