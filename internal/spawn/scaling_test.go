package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/soulbound/internal/model"
)

func TestScaleLinear(t *testing.T) {
	orc := model.EnemyDefinition{
		Type:      "ORC",
		BaseStats: model.EnemyStats{MaxHP: 120, Attack: 18, Defense: 5, MoveSpeed: 1.8, XPReward: 80},
		MinLevel:  3,
		MaxLevel:  6,
	}
	skeleton := model.EnemyDefinition{
		Type:      "SKELETON",
		BaseStats: model.EnemyStats{MaxHP: 80, Attack: 14, Defense: 3, MoveSpeed: 2.6, XPReward: 50},
		MinLevel:  2,
	}

	tests := []struct {
		name     string
		def      model.EnemyDefinition
		avgLevel float64
		want     model.EnemyStats
	}{
		{
			name:     "below min level is unscaled",
			def:      orc,
			avgLevel: 1,
			want:     orc.BaseStats,
		},
		{
			name:     "two levels above",
			def:      orc,
			avgLevel: 5,
			want:     model.EnemyStats{MaxHP: 132, Attack: 19, Defense: 5, MoveSpeed: 1.8, XPReward: 88},
		},
		{
			name:     "average level is floored",
			def:      orc,
			avgLevel: 5.9,
			want:     model.EnemyStats{MaxHP: 132, Attack: 19, Defense: 5, MoveSpeed: 1.8, XPReward: 88},
		},
		{
			name:     "truncation is exact",
			def:      skeleton,
			avgLevel: 5,
			want:     model.EnemyStats{MaxHP: 92, Attack: 16, Defense: 3, MoveSpeed: 2.6, XPReward: 57},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearScaler{}.Scale(tt.def, tt.avgLevel)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.XPReward, tt.def.BaseStats.XPReward)
		})
	}
}
