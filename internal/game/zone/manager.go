// Package zone answers geometric questions about maps: bounds, safe zones,
// the wild annulus monsters roam in, and spawn point jitter.
package zone

import (
	"math"
	"math/rand/v2"

	"github.com/udisondev/soulbound/internal/model"
)

// minProjectLength is the distance below which a point counts as the origin.
const minProjectLength = 0.001

// MapRepository provides static map definitions.
type MapRepository interface {
	Get(id model.MapID) (*model.MapDefinition, bool)
	All() []*model.MapDefinition
}

// Manager wraps a MapRepository with the geometry used by AI, spawning
// and player movement. Not safe for concurrent use: the random source is
// owned by the caller's goroutine (the simulation serialises access).
type Manager struct {
	maps       MapRepository
	defaultMap model.MapID
	rng        *rand.Rand
}

// NewManager creates a zone manager. A nil rng uses a randomly seeded PCG.
func NewManager(maps MapRepository, defaultMap model.MapID, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Manager{maps: maps, defaultMap: defaultMap, rng: rng}
}

// CurrentMap returns the default map definition.
// Returns false if the catalog does not define it.
func (m *Manager) CurrentMap() (*model.MapDefinition, bool) {
	return m.maps.Get(m.defaultMap)
}

// DefaultMapID returns the map new players join.
func (m *Manager) DefaultMapID() model.MapID {
	return m.defaultMap
}

// IsInSafeZone reports whether pos lies in a safe zone of the given map.
// Unknown maps have no safe zones.
func (m *Manager) IsInSafeZone(id model.MapID, pos model.Position) bool {
	def, ok := m.maps.Get(id)
	if !ok {
		return false
	}
	return def.IsInSafeZone(pos)
}

// ClampToBounds confines pos to the bounds of the given map.
// Unknown maps leave pos unchanged.
func (m *Manager) ClampToBounds(id model.MapID, pos model.Position) model.Position {
	def, ok := m.maps.Get(id)
	if !ok {
		return pos
	}
	return def.ClampToBounds(pos)
}

// ConfineToWild clamps pos to the current map bounds and then pushes it
// radially out of the safe radius around the origin. A point at the origin
// is moved to (safeRadius, 0).
func (m *Manager) ConfineToWild(pos model.Position, world model.WorldState) model.Position {
	return ProjectOutOfSafeRadius(m.clampCurrent(pos, world), world.SafeRadius)
}

// clampCurrent clamps to the current map, or to ±MapLimit when the
// catalog lacks it.
func (m *Manager) clampCurrent(pos model.Position, world model.WorldState) model.Position {
	if def, ok := m.CurrentMap(); ok {
		return def.ClampToBounds(pos)
	}
	if world.MapLimit > 0 {
		return pos.Clamp(world.MapLimit, world.MapLimit)
	}
	return pos
}

// ProjectOutOfSafeRadius moves a point inside the radius onto its boundary.
func ProjectOutOfSafeRadius(pos model.Position, safeRadius float64) model.Position {
	dist := pos.Length()
	if dist >= safeRadius {
		return pos
	}
	if dist < minProjectLength {
		return model.NewPosition(safeRadius, 0)
	}
	scale := safeRadius / dist
	return model.NewPosition(pos.X*scale, pos.Z*scale)
}

// RandomWildPosition picks a point in the annulus
// [WildRadiusMin, WildRadiusMax] around the origin, clamped to bounds.
func (m *Manager) RandomWildPosition(world model.WorldState) model.Position {
	radius := m.uniform(world.WildRadiusMin, world.WildRadiusMax)
	angle := m.uniform(0, 2*math.Pi)
	return m.clampCurrent(model.NewPosition(math.Cos(angle)*radius, math.Sin(angle)*radius), world)
}

// RandomNear jitters the spawn point position within its jitter radius.
func (m *Manager) RandomNear(sp model.SpawnPoint) model.Position {
	jitter := sp.JitterRadius
	if jitter <= 0 {
		return sp.Position
	}
	angle := m.uniform(0, 2*math.Pi)
	radius := m.uniform(0, jitter)
	return model.NewPosition(
		sp.Position.X+math.Cos(angle)*radius,
		sp.Position.Z+math.Sin(angle)*radius,
	)
}

// Uniform draws from [lo, hi) using the manager's random source.
func (m *Manager) Uniform(lo, hi float64) float64 {
	return m.uniform(lo, hi)
}

// IntN draws from [0, n).
func (m *Manager) IntN(n int) int {
	return m.rng.IntN(n)
}

func (m *Manager) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + m.rng.Float64()*(hi-lo)
}
