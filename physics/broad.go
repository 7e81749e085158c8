// Copyright © 2024 Galvanized Logic Inc.

package physics

import "sort"

// cell is a single grid coordinate in the spatial hash.
type cell struct{ cx, cy int32 }

// SpatialHash is a uniform-grid broad-phase index mapping integer cells
// to lists of inserted integer values (body indices). Cell size is fixed
// at construction. Per-cell lists and the dedup scratch buffer are
// reused across Clear calls to avoid per-step allocation.
type SpatialHash struct {
	size    float64
	cells   map[cell][]int
	scratch []int
}

// NewSpatialHash creates a hash with the given cell size. A non-positive
// size is replaced with 1 to keep the grid well defined.
func NewSpatialHash(size float64) *SpatialHash {
	if size <= 0 {
		size = 1
	}
	return &SpatialHash{size: size, cells: map[cell][]int{}}
}

// span returns the inclusive range of cells overlapped by ab.
func (h *SpatialHash) span(ab AABB) (minX, minY, maxX, maxY int32) {
	minX = floorDiv(ab.X, h.size)
	minY = floorDiv(ab.Y, h.size)
	maxX = floorDiv(ab.X+ab.Width, h.size)
	maxY = floorDiv(ab.Y+ab.Height, h.size)
	return
}

func floorDiv(v, size float64) int32 {
	q := v / size
	i := int32(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}

// Insert writes value into every cell overlapped by AABB ab.
func (h *SpatialHash) Insert(value int, ab AABB) {
	minX, minY, maxX, maxY := h.span(ab)
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			k := cell{cx, cy}
			h.cells[k] = append(h.cells[k], value)
		}
	}
}

// Query collects the values from every cell overlapped by ab, sorts and
// deduplicates them, and invokes fn once per unique value. fn's return
// value is not inspected by the hash; callers interpret it as they see
// fit.
func (h *SpatialHash) Query(ab AABB, fn func(value int, ctx any) bool, ctx any) {
	h.scratch = h.scratch[:0]
	minX, minY, maxX, maxY := h.span(ab)
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			if vals, ok := h.cells[cell{cx, cy}]; ok {
				h.scratch = append(h.scratch, vals...)
			}
		}
	}
	if len(h.scratch) == 0 {
		return
	}
	sort.Ints(h.scratch)
	prev := h.scratch[0]
	fn(prev, ctx)
	for _, v := range h.scratch[1:] {
		if v == prev {
			continue
		}
		prev = v
		fn(v, ctx)
	}
}

// Clear truncates every per-cell list and the dedup scratch buffer
// without deallocating them, preserving capacity for the next step.
func (h *SpatialHash) Clear() {
	for k, v := range h.cells {
		h.cells[k] = v[:0]
	}
	h.scratch = h.scratch[:0]
}
