package spawn

import (
	"math"

	"github.com/udisondev/soulbound/internal/model"
)

// LevelScalePercent is the stat bonus, in percent, per player level above an
// enemy's minimum level.
const LevelScalePercent = 5

// StatScaler derives the stats of a spawned monster from its definition and
// the average level of online players.
type StatScaler interface {
	Scale(def model.EnemyDefinition, avgLevel float64) model.EnemyStats
}

// LinearScaler scales HP, attack, defense and XP reward by
// 1 + 0.05*max(0, floor(avgLevel)-def.MinLevel). Results are truncated and
// the XP reward never drops below the base. Move speed is unchanged.
type LinearScaler struct{}

func (LinearScaler) Scale(def model.EnemyDefinition, avgLevel float64) model.EnemyStats {
	return ScaleLinear(def, avgLevel)
}

// ScaleLinear is the LinearScaler formula, exported for scalers that fall
// back to it.
func ScaleLinear(def model.EnemyDefinition, avgLevel float64) model.EnemyStats {
	base := def.BaseStats
	delta := max(0, int(math.Floor(avgLevel))-def.MinLevel)
	percent := 100 + delta*LevelScalePercent

	// integer percent keeps truncation exact (80*1.15 is 91.999... in float64)
	scale := func(v int) int { return v * percent / 100 }

	return model.EnemyStats{
		MaxHP:     scale(base.MaxHP),
		Attack:    scale(base.Attack),
		Defense:   scale(base.Defense),
		MoveSpeed: base.MoveSpeed,
		XPReward:  max(base.XPReward, scale(base.XPReward)),
	}
}
