package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/soulbound/internal/model"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		attack     int
		defense    int
		multiplier float64
		factor     float64
		want       int
	}{
		{"20 vs 5 at x1", 20, 5, 1.0, 1.0, 15},
		{"multiplier doubles", 20, 5, 2.0, 1.0, 30},
		{"roll rounds up", 10, 5, 1.0, 1.1, 6},
		{"roll rounds down", 10, 5, 1.0, 0.88, 4},
		{"defense equals attack floors to 1", 10, 10, 1.0, 1.0, 1},
		{"defense far above attack floors to 1", 3, 500, 1.0, 1.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.attack, tt.defense, tt.multiplier, 0.9, 1.1, FixedFactor(tt.factor))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_NeverBelowOne(t *testing.T) {
	for attack := 0; attack < 40; attack += 3 {
		for defense := 0; defense < 200; defense += 7 {
			got := Resolve(attack, defense, 1.0, 0.9, 1.1, nil)
			assert.GreaterOrEqual(t, got, 1, "Resolve(%d, %d)", attack, defense)
		}
	}
}

func TestUniformFactor_Bounds(t *testing.T) {
	for range 1000 {
		f := UniformFactor(0.9, 1.1)
		assert.GreaterOrEqual(t, f, 0.9)
		assert.LessOrEqual(t, f, 1.1)
	}
	assert.Equal(t, 1.0, UniformFactor(1.0, 1.0))
}

func TestResolver_PlayerToMonster(t *testing.T) {
	r := NewResolver(FixedFactor(1.0))
	p := model.NewPlayer("p", "P", model.DefaultMapID, model.Position{})
	p.Stats.Attack = 20
	m := model.Monster{ID: 1, HP: 60, MaxHP: 60, Defense: 5}

	dmg := r.PlayerToMonster(p, m, model.DefaultCombatBalance())
	assert.Equal(t, 15, dmg)

	m.HP -= dmg
	assert.Equal(t, 45, m.HP)
}

func TestResolver_MonsterToPlayer_UsesOwnMultiplier(t *testing.T) {
	r := NewResolver(FixedFactor(1.0))
	p := model.NewPlayer("p", "P", model.DefaultMapID, model.Position{})
	m := model.Monster{Attack: 14}

	balance := model.DefaultCombatBalance()
	balance.EnemyToPlayerMultiplier = 0.5

	assert.Equal(t, 5, r.MonsterToPlayer(m, p, balance)) // (14-4)*0.5
}
