package model

// PlayerID identifies a player. The transport derives it from the
// lower-cased display name.
type PlayerID string

// Default stats for a freshly created player.
const (
	DefaultPlayerMaxHP     = 100
	DefaultPlayerAttack    = 14
	DefaultPlayerDefense   = 4
	DefaultPlayerMoveSpeed = 6.0
	DefaultNextLevelXP     = 100
)

// Stats holds the combat stats of a player.
type Stats struct {
	MaxHP     int     `json:"maxHp"`
	CurrentHP int     `json:"hp"`
	Attack    int     `json:"attack"`
	Defense   int     `json:"defense"`
	MoveSpeed float64 `json:"moveSpeed"`
}

// DefaultStats returns stats of a level 1 player at full health.
func DefaultStats() Stats {
	return Stats{
		MaxHP:     DefaultPlayerMaxHP,
		CurrentHP: DefaultPlayerMaxHP,
		Attack:    DefaultPlayerAttack,
		Defense:   DefaultPlayerDefense,
		MoveSpeed: DefaultPlayerMoveSpeed,
	}
}

// WithMaxHPDelta grows (or shrinks) MaxHP, keeping it at least 1
// and CurrentHP within it.
func (s Stats) WithMaxHPDelta(delta int) Stats {
	s.MaxHP = max(1, s.MaxHP+delta)
	s.CurrentHP = min(s.CurrentHP, s.MaxHP)
	return s
}

// Player is a connected (or persisted) player character.
// Value type: repositories store and hand out copies.
//
// Invariant: Dead == (Stats.CurrentHP <= 0).
type Player struct {
	ID            PlayerID
	Name          string
	MapID         MapID
	Position      Position
	SpawnPosition Position
	Level         int
	Experience    int
	NextLevelXP   int
	Stats         Stats
	Dead          bool
}

// NewPlayer creates a level 1 player standing at spawn.
func NewPlayer(id PlayerID, name string, mapID MapID, spawn Position) Player {
	return Player{
		ID:            id,
		Name:          name,
		MapID:         mapID,
		Position:      spawn,
		SpawnPosition: spawn,
		Level:         1,
		Experience:    0,
		NextLevelXP:   DefaultNextLevelXP,
		Stats:         DefaultStats(),
	}
}

// IsDead reports whether the player is dead.
func (p Player) IsDead() bool {
	return p.Dead || p.Stats.CurrentHP <= 0
}

// ApplyDamage subtracts max(1, amount-defense) from current HP, floored at 0.
func (p Player) ApplyDamage(amount, defense int) Player {
	effective := max(1, amount-defense)
	p.Stats.CurrentHP = max(0, p.Stats.CurrentHP-effective)
	p.Dead = p.Stats.CurrentHP == 0
	return p
}

// Kill forces the player into the dead state.
func (p Player) Kill() Player {
	p.Stats.CurrentHP = 0
	p.Dead = true
	return p
}

// Revive brings the player back to life at pos with full health.
func (p Player) Revive(pos Position) Player {
	p.Position = pos
	p.Stats.CurrentHP = p.Stats.MaxHP
	p.Dead = false
	return p
}

// WithPosition returns the player moved to pos.
func (p Player) WithPosition(pos Position) Player {
	p.Position = pos
	return p
}
