// Package player implements player life cycle rules: damage, death with XP
// penalty, respawn, movement and progression.
package player

import (
	"github.com/udisondev/soulbound/internal/game/zone"
	"github.com/udisondev/soulbound/internal/model"
	"github.com/udisondev/soulbound/internal/world"
)

// DeathXPPenalty is the fraction of current XP lost on death.
const DeathXPPenalty = 0.1

// DamageResult is the outcome of ApplyDamage.
type DamageResult struct {
	Player model.Player
	Died   bool
}

// DeathResult is the outcome of HandleDeath.
type DeathResult struct {
	Player model.Player
	XPLost int
}

// Service applies life cycle rules to players stored in a repository.
// Methods returning ok=false were called with an unknown player (or map).
type Service struct {
	players  world.PlayerRepository
	maps     zone.MapRepository
	leveling LevelingStrategy
}

// NewService creates a player service. A nil strategy means LinearLeveling.
func NewService(players world.PlayerRepository, maps zone.MapRepository, leveling LevelingStrategy) *Service {
	if leveling == nil {
		leveling = LinearLeveling{}
	}
	return &Service{players: players, maps: maps, leveling: leveling}
}

// Leveling returns the strategy used for XP thresholds.
func (s *Service) Leveling() LevelingStrategy {
	return s.leveling
}

// ApplyDamage subtracts max(1, amount-defense) from the player's HP.
// Damage already reduced by the combat resolver is applied with defense 0.
func (s *Service) ApplyDamage(id model.PlayerID, amount, defense int) (DamageResult, bool) {
	p, ok := s.players.FindByID(id)
	if !ok {
		return DamageResult{}, false
	}
	p = p.ApplyDamage(amount, defense)
	s.players.Save(p)
	return DamageResult{Player: p, Died: p.IsDead()}, true
}

// HandleDeath kills the player and takes floor(10%) of their XP.
func (s *Service) HandleDeath(id model.PlayerID) (DeathResult, bool) {
	p, ok := s.players.FindByID(id)
	if !ok {
		return DeathResult{}, false
	}
	loss := int(float64(p.Experience) * DeathXPPenalty)
	p.Experience = max(0, p.Experience-loss)
	p = p.Kill()
	s.players.Save(p)
	return DeathResult{Player: p, XPLost: loss}, true
}

// Respawn revives the player at full HP in the centre of their map's first
// safe zone, or at their spawn position if the map has none.
// Respawning a living player just moves and heals them.
func (s *Service) Respawn(id model.PlayerID) (model.Player, bool) {
	p, ok := s.players.FindByID(id)
	if !ok {
		return model.Player{}, false
	}
	def, ok := s.maps.Get(p.MapID)
	if !ok {
		return model.Player{}, false
	}
	pos, ok := def.FirstSafeSpot()
	if !ok {
		pos = p.SpawnPosition
	}
	p = p.Revive(pos)
	s.players.Save(p)
	return p, true
}

// Move clamps (x, z) to the player's map bounds and stores it.
// Dead players, unknown players and players on an unknown map do not
// move (ok=false).
func (s *Service) Move(id model.PlayerID, x, z float64) (model.Player, bool) {
	p, ok := s.players.FindByID(id)
	if !ok || p.IsDead() {
		return model.Player{}, false
	}
	def, ok := s.maps.Get(p.MapID)
	if !ok {
		return model.Player{}, false
	}
	p = p.WithPosition(def.ClampToBounds(model.NewPosition(x, z)))
	s.players.Save(p)
	return p, true
}

// AddExperience awards XP to a stored player.
func (s *Service) AddExperience(id model.PlayerID, gained int) (model.Player, bool, bool) {
	p, ok := s.players.FindByID(id)
	if !ok {
		return model.Player{}, false, false
	}
	p, leveled := AddExperience(p, gained, s.leveling)
	s.players.Save(p)
	return p, leveled, true
}
