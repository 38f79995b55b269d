package model

import "math"

// MapID identifies a map definition.
type MapID string

// DefaultMapID is the map every new player joins.
const DefaultMapID MapID = "default"

// DefaultJitterRadius is used when a spawn point does not set one.
const DefaultJitterRadius = 2.0

// SpawnPoint is a place where monsters of one enemy type appear.
type SpawnPoint struct {
	ID             string
	MapID          MapID
	Position       Position
	EnemyType      EnemyType
	MinLevel       int
	MaxLevel       int
	JitterRadius   float64
	RespawnSeconds int
}

// AcceptsLevel reports whether the average player level falls into the
// spawn point's level range. A zero MaxLevel means no upper bound.
func (s SpawnPoint) AcceptsLevel(level float64) bool {
	maxLevel := float64(s.MaxLevel)
	if s.MaxLevel <= 0 {
		maxLevel = math.Inf(1)
	}
	return level >= float64(s.MinLevel) && level <= maxLevel
}

// MapDefinition is the static geometry of one map.
type MapDefinition struct {
	ID          MapID
	Name        string
	LimitX      float64
	LimitZ      float64
	SafeZones   []Region
	SpawnPoints []SpawnPoint
}

// IsInSafeZone reports whether pos lies inside any safe zone of the map.
func (m *MapDefinition) IsInSafeZone(pos Position) bool {
	for _, zone := range m.SafeZones {
		if zone.Contains(pos) {
			return true
		}
	}
	return false
}

// ClampToBounds confines pos to the map bounds.
func (m *MapDefinition) ClampToBounds(pos Position) Position {
	return pos.Clamp(m.LimitX, m.LimitZ)
}

// InBounds reports whether pos lies inside the map bounds (inclusive).
func (m *MapDefinition) InBounds(pos Position) bool {
	return pos.X >= -m.LimitX && pos.X <= m.LimitX && pos.Z >= -m.LimitZ && pos.Z <= m.LimitZ
}

// FirstSafeSpot returns the centre of the first safe zone.
// Returns false if the map has no safe zones.
func (m *MapDefinition) FirstSafeSpot() (Position, bool) {
	if len(m.SafeZones) == 0 {
		return Position{}, false
	}
	return m.SafeZones[0].Center(), true
}
