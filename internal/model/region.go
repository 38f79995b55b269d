package model

// Region is an axis-aligned rectangle on a map.
// Containment is inclusive on every edge.
type Region struct {
	ID   string  `json:"id" toml:"id"`
	MinX float64 `json:"minX" toml:"min_x"`
	MaxX float64 `json:"maxX" toml:"max_x"`
	MinZ float64 `json:"minZ" toml:"min_z"`
	MaxZ float64 `json:"maxZ" toml:"max_z"`
}

// Contains reports whether pos lies inside the region.
func (r Region) Contains(pos Position) bool {
	return pos.X >= r.MinX && pos.X <= r.MaxX && pos.Z >= r.MinZ && pos.Z <= r.MaxZ
}

// Center returns the midpoint of the region.
func (r Region) Center() Position {
	return Position{X: (r.MinX + r.MaxX) / 2, Z: (r.MinZ + r.MaxZ) / 2}
}
