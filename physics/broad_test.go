// Copyright © 2024 Galvanized Logic Inc.

package physics

import "testing"

func TestSpatialHashFindsOverlappingInsert(t *testing.T) {
	h := NewSpatialHash(1)
	h.Insert(1, AABB{X: 0, Y: 0, Width: 1, Height: 1})

	found := false
	h.Query(AABB{X: 0.5, Y: 0.5, Width: 0.1, Height: 0.1}, func(v int, _ any) bool {
		if v == 1 {
			found = true
		}
		return true
	}, nil)
	if !found {
		t.Error("overlapping query should find the inserted value")
	}
}

func TestSpatialHashNoFalseNegative(t *testing.T) {
	h := NewSpatialHash(2)
	// An AABB spanning several cells must be discoverable from a query
	// box touching any one of those cells.
	wide := AABB{X: -5, Y: 0, Width: 10, Height: 1}
	h.Insert(7, wide)

	found := false
	h.Query(AABB{X: 4, Y: 0, Width: 0.5, Height: 0.5}, func(v int, _ any) bool {
		if v == 7 {
			found = true
		}
		return true
	}, nil)
	if !found {
		t.Error("query touching any spanned cell should find the value")
	}
}

func TestSpatialHashQueryDedupes(t *testing.T) {
	h := NewSpatialHash(1)
	// Insert into a region spanning multiple cells so the same value
	// lands in more than one cell bucket.
	h.Insert(3, AABB{X: 0, Y: 0, Width: 3, Height: 3})

	count := 0
	h.Query(AABB{X: 0, Y: 0, Width: 3, Height: 3}, func(v int, _ any) bool {
		if v == 3 {
			count++
		}
		return true
	}, nil)
	if count != 1 {
		t.Errorf("value reported %d times, want exactly 1", count)
	}
}

func TestSpatialHashDisjointNotFound(t *testing.T) {
	h := NewSpatialHash(1)
	h.Insert(1, AABB{X: 0, Y: 0, Width: 1, Height: 1})

	found := false
	h.Query(AABB{X: 100, Y: 100, Width: 1, Height: 1}, func(v int, _ any) bool {
		found = true
		return true
	}, nil)
	if found {
		t.Error("disjoint query should not find unrelated value")
	}
}

func TestSpatialHashClearRetainsCapacityButDrops(t *testing.T) {
	h := NewSpatialHash(1)
	h.Insert(1, AABB{X: 0, Y: 0, Width: 1, Height: 1})
	h.Clear()

	found := false
	h.Query(AABB{X: 0, Y: 0, Width: 1, Height: 1}, func(v int, _ any) bool {
		found = true
		return true
	}, nil)
	if found {
		t.Error("cleared hash should report no values")
	}

	// Cell keys remain present (capacity retained), just emptied.
	if len(h.cells) == 0 {
		t.Error("expected Clear to retain cell map keys, not delete them")
	}
}

func TestFloorDivNegative(t *testing.T) {
	if got := floorDiv(-0.5, 1); got != -1 {
		t.Errorf("floorDiv(-0.5, 1) = %d, want -1", got)
	}
	if got := floorDiv(0.5, 1); got != 0 {
		t.Errorf("floorDiv(0.5, 1) = %d, want 0", got)
	}
	if got := floorDiv(-1, 1); got != -1 {
		t.Errorf("floorDiv(-1, 1) = %d, want -1", got)
	}
}
