package combat

import (
	"math"
	"math/rand/v2"

	"github.com/udisondev/soulbound/internal/model"
)

// RandomFactorFunc draws a damage roll factor from [lo, hi].
type RandomFactorFunc func(lo, hi float64) float64

// UniformFactor draws uniformly from [lo, hi] using math/rand/v2.
func UniformFactor(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rand.Float64()*(hi-lo)
}

// FixedFactor returns a RandomFactorFunc that always yields f.
func FixedFactor(f float64) RandomFactorFunc {
	return func(_, _ float64) float64 { return f }
}

// Resolve computes damage of one hit:
//
//	base   = attack - defense
//	damage = max(1, round(base * multiplier * r)),  r ∈ [lo, hi]
//
// The floor of 1 guarantees that every fight ends.
func Resolve(attack, defense int, multiplier, lo, hi float64, roll RandomFactorFunc) int {
	if roll == nil {
		roll = UniformFactor
	}
	base := float64(attack - defense)
	scaled := base * multiplier * roll(lo, hi)
	return max(1, int(math.Round(scaled)))
}

// Resolver applies CombatBalance to player/monster exchanges.
type Resolver struct {
	roll RandomFactorFunc
}

// NewResolver creates a resolver. A nil roll uses UniformFactor.
func NewResolver(roll RandomFactorFunc) *Resolver {
	if roll == nil {
		roll = UniformFactor
	}
	return &Resolver{roll: roll}
}

// PlayerToMonster returns damage dealt by a player hit.
func (r *Resolver) PlayerToMonster(attacker model.Player, defender model.Monster, balance model.CombatBalance) int {
	return Resolve(attacker.Stats.Attack, defender.Defense,
		balance.PlayerToEnemyMultiplier, balance.RandomFactorMin, balance.RandomFactorMax, r.roll)
}

// MonsterToPlayer returns damage dealt by monster contact.
func (r *Resolver) MonsterToPlayer(attacker model.Monster, defender model.Player, balance model.CombatBalance) int {
	return Resolve(attacker.Attack, defender.Stats.Defense,
		balance.EnemyToPlayerMultiplier, balance.RandomFactorMin, balance.RandomFactorMax, r.roll)
}
