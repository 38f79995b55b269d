package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/soulbound/internal/model"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "MonsterKilled", MonsterKilled.String())
	assert.Equal(t, "PlayerRespawned", PlayerRespawned.String())
	assert.Equal(t, "Unknown", Kind(0).String())
}

func TestConstructors_SetKind(t *testing.T) {
	m := model.Monster{ID: 7, HP: 10}
	p := model.NewPlayer("a", "A", model.DefaultMapID, model.Position{})

	assert.Equal(t, MonsterSpawned, NewMonsterSpawned(m).Kind)
	assert.Equal(t, MonsterMoved, NewMonsterMoved(m).Kind)
	assert.Equal(t, MonsterUpdated, NewMonsterUpdated(m).Kind)
	assert.Equal(t, PlayerUpdated, NewPlayerUpdated(p).Kind)
	assert.Equal(t, PlayerRespawned, NewPlayerRespawned(p).Kind)

	killed := NewMonsterKilled(7, "a")
	assert.Equal(t, MonsterKilled, killed.Kind)
	assert.Equal(t, model.MonsterID(7), killed.MonsterID)
	assert.Equal(t, model.PlayerID("a"), killed.KillerID)

	died := NewPlayerDied(p, 12)
	assert.Equal(t, PlayerDied, died.Kind)
	assert.Equal(t, 12, died.XPLost)
}
