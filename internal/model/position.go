package model

import "math"

// Position is a point on the ground plane of a map.
// Value type, passed by value.
type Position struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// NewPosition creates a Position at (x, z).
func NewPosition(x, z float64) Position {
	return Position{X: x, Z: z}
}

// Clamp returns the position confined to [-limitX, limitX] × [-limitZ, limitZ].
func (p Position) Clamp(limitX, limitZ float64) Position {
	p.X = clamp(p.X, -limitX, limitX)
	p.Z = clamp(p.Z, -limitZ, limitZ)
	return p
}

// DistanceTo returns the euclidean distance to another position.
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Z-other.Z)
}

// DistanceSquared returns the squared distance (no sqrt, hot path).
func (p Position) DistanceSquared(other Position) float64 {
	dx := p.X - other.X
	dz := p.Z - other.Z
	return dx*dx + dz*dz
}

// Length returns the distance from the map origin.
func (p Position) Length() float64 {
	return math.Hypot(p.X, p.Z)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
