package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPlayer() Player {
	return NewPlayer("hero", "Hero", DefaultMapID, NewPosition(0, 0))
}

func TestNewPlayer_Defaults(t *testing.T) {
	p := newTestPlayer()

	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.Experience)
	assert.Equal(t, 100, p.NextLevelXP)
	assert.Equal(t, 100, p.Stats.MaxHP)
	assert.Equal(t, 100, p.Stats.CurrentHP)
	assert.False(t, p.IsDead())
	assert.Equal(t, p.Position, p.SpawnPosition)
}

func TestPlayer_ApplyDamage(t *testing.T) {
	tests := []struct {
		name     string
		amount   int
		defense  int
		wantHP   int
		wantDead bool
	}{
		{"plain hit", 30, 0, 70, false},
		{"defense absorbs part", 30, 10, 80, false},
		{"defense exceeds attack still deals 1", 5, 50, 99, false},
		{"exactly lethal", 100, 0, 0, true},
		{"overkill floors at zero", 500, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer().ApplyDamage(tt.amount, tt.defense)
			assert.Equal(t, tt.wantHP, p.Stats.CurrentHP)
			assert.Equal(t, tt.wantDead, p.Dead)
			assert.Equal(t, p.Dead, p.Stats.CurrentHP == 0, "dead iff hp == 0")
		})
	}
}

func TestPlayer_KillAndRevive(t *testing.T) {
	p := newTestPlayer().Kill()
	assert.True(t, p.IsDead())
	assert.Equal(t, 0, p.Stats.CurrentHP)

	p = p.Revive(NewPosition(3, 4))
	assert.False(t, p.IsDead())
	assert.Equal(t, p.Stats.MaxHP, p.Stats.CurrentHP)
	assert.Equal(t, NewPosition(3, 4), p.Position)
}

func TestStats_WithMaxHPDelta(t *testing.T) {
	s := DefaultStats().WithMaxHPDelta(20)
	assert.Equal(t, 120, s.MaxHP)
	assert.Equal(t, 100, s.CurrentHP)

	s = DefaultStats().WithMaxHPDelta(-500)
	assert.Equal(t, 1, s.MaxHP)
	assert.Equal(t, 1, s.CurrentHP)
}
