// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import "github.com/galyenlogic/impulse2d/math/lin"

// Numeric constants that make up part of the engine's public contract.
// These values are fixed by design and must match exactly across
// implementations.
const (
	// MaxPolyVertices is the maximum number of vertices a polygon shape
	// may have.
	MaxPolyVertices = 8

	// PixelsPerUnit converts between simulation units and screen pixels.
	PixelsPerUnit = 16.0

	// Baumgarte is the position-stabilization bias factor used by the
	// contact solver.
	Baumgarte = 0.24

	// Slop is the allowed penetration depth below which the Baumgarte
	// bias is not applied, to suppress jitter on resting contacts.
	Slop = 0.01

	// SolverIterations is the number of sequential-impulse passes the
	// solver runs per step.
	SolverIterations = 12

	// MaxBodies is the maximum number of bodies a single world may hold.
	MaxBodies = 4096
)

// DefaultGravity is the gravity vector used when a world isn't given one.
var DefaultGravity = lin.V2{X: 0, Y: 9.8}

// PixelsToUnits converts a pixel measurement into simulation units.
func PixelsToUnits(pixels float64) float64 { return pixels / PixelsPerUnit }

// UnitsToPixels converts a simulation-unit measurement into pixels.
func UnitsToPixels(units float64) float64 { return units * PixelsPerUnit }
