package player

import "github.com/udisondev/soulbound/internal/model"

// Stat growth per level gained.
const (
	LevelUpMaxHP   = 20
	LevelUpAttack  = 2
	LevelUpDefense = 1
)

// LevelingStrategy returns the XP needed to advance from level to level+1.
type LevelingStrategy interface {
	NextLevelXP(level int) int
}

// LinearLeveling requires 100 XP per current level.
type LinearLeveling struct{}

func (LinearLeveling) NextLevelXP(level int) int {
	return 100 * level
}

// AddExperience adds gained XP and applies every level-up it unlocks.
// Level-ups within one award are all charged against the threshold the
// player held when the award arrived; the next threshold is recomputed
// once afterwards. Each level grants +20 max HP, +2 attack and +1 defense
// and heals to the new max. Returns true if at least one level was gained.
func AddExperience(p model.Player, gained int, strategy LevelingStrategy) (model.Player, bool) {
	if gained > 0 {
		p.Experience += gained
	}

	need := max(1, p.NextLevelXP)
	leveled := false
	for p.Experience >= need {
		p.Experience -= need
		p.Level++
		p.Stats = p.Stats.WithMaxHPDelta(LevelUpMaxHP)
		p.Stats.Attack += LevelUpAttack
		p.Stats.Defense += LevelUpDefense
		p.Stats.CurrentHP = p.Stats.MaxHP
		leveled = true
	}
	p.NextLevelXP = max(1, strategy.NextLevelXP(p.Level))
	return p, leveled
}
