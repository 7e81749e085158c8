// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// AABB is an axis aligned bounding box used to surround arbitrary shapes
// during broad phase collision detection. AABB is not a primitive shape
// for narrow phase collision; use Circle or Polygon instead.
type AABB struct {
	X, Y          float64 // Bottom-left corner (minimum point).
	Width, Height float64 // Extents. Always >= 0.
}

// Overlaps returns true if AABB a and b intersect. Returns false if a and
// b are disjoint or are only touching along an edge or corner.
func (a *AABB) Overlaps(b *AABB) bool {
	return a.X < b.X+b.Width && a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height && a.Y+a.Height > b.Y
}
