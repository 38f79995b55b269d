package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/soulbound/internal/model"
	"github.com/udisondev/soulbound/internal/world"
)

type staticMaps map[model.MapID]*model.MapDefinition

func (s staticMaps) Get(id model.MapID) (*model.MapDefinition, bool) {
	m, ok := s[id]
	return m, ok
}

func (s staticMaps) All() []*model.MapDefinition {
	var out []*model.MapDefinition
	for _, m := range s {
		out = append(out, m)
	}
	return out
}

func newTestService(t *testing.T, safeZones ...model.Region) (*Service, *world.PlayerStore) {
	t.Helper()
	players := world.NewPlayerStore()
	maps := staticMaps{
		model.DefaultMapID: {ID: model.DefaultMapID, LimitX: 45, LimitZ: 45, SafeZones: safeZones},
	}
	return NewService(players, maps, nil), players
}

func TestService_ApplyDamage(t *testing.T) {
	svc, players := newTestService(t)
	players.Save(model.NewPlayer("alice", "Alice", model.DefaultMapID, model.Position{}))

	res, ok := svc.ApplyDamage("alice", 15, 0)
	require.True(t, ok)
	assert.Equal(t, 85, res.Player.Stats.CurrentHP)
	assert.False(t, res.Died)

	res, ok = svc.ApplyDamage("alice", 2, 10)
	require.True(t, ok)
	assert.Equal(t, 84, res.Player.Stats.CurrentHP, "damage is floored at 1")

	res, ok = svc.ApplyDamage("alice", 500, 0)
	require.True(t, ok)
	assert.True(t, res.Died)
	assert.Equal(t, 0, res.Player.Stats.CurrentHP)

	_, ok = svc.ApplyDamage("nobody", 10, 0)
	assert.False(t, ok)
}

func TestService_HandleDeath(t *testing.T) {
	tests := []struct {
		name       string
		xp         int
		wantLost   int
		wantRemain int
	}{
		{"zero xp", 0, 0, 0},
		{"floors the loss", 95, 9, 86},
		{"round figure", 50, 5, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, players := newTestService(t)
			p := model.NewPlayer("alice", "Alice", model.DefaultMapID, model.Position{})
			p.Experience = tt.xp
			players.Save(p)

			res, ok := svc.HandleDeath("alice")
			require.True(t, ok)
			assert.Equal(t, tt.wantLost, res.XPLost)
			assert.Equal(t, tt.wantRemain, res.Player.Experience)
			assert.True(t, res.Player.Dead)
			assert.Equal(t, 0, res.Player.Stats.CurrentHP)
		})
	}
}

func TestService_Respawn(t *testing.T) {
	safe := model.Region{ID: "safe", MinX: -12, MaxX: 12, MinZ: -2, MaxZ: 6}
	svc, players := newTestService(t, safe)
	p := model.NewPlayer("alice", "Alice", model.DefaultMapID, model.NewPosition(30, 30))
	players.Save(p.Kill())

	first, ok := svc.Respawn("alice")
	require.True(t, ok)
	assert.Equal(t, model.NewPosition(0, 2), first.Position)
	assert.False(t, first.Dead)
	assert.Equal(t, first.Stats.MaxHP, first.Stats.CurrentHP)

	second, ok := svc.Respawn("alice")
	require.True(t, ok)
	assert.Equal(t, first, second, "respawn is idempotent")
}

func TestService_RespawnFallsBackToSpawnPosition(t *testing.T) {
	svc, players := newTestService(t)
	spawn := model.NewPosition(5, -7)
	p := model.NewPlayer("alice", "Alice", model.DefaultMapID, spawn).WithPosition(model.NewPosition(20, 20))
	players.Save(p.Kill())

	got, ok := svc.Respawn("alice")
	require.True(t, ok)
	assert.Equal(t, spawn, got.Position)
}

func TestService_RespawnUnknown(t *testing.T) {
	svc, players := newTestService(t)

	_, ok := svc.Respawn("ghost")
	assert.False(t, ok)

	lost := model.NewPlayer("lost", "Lost", "nowhere", model.Position{})
	players.Save(lost.Kill())
	_, ok = svc.Respawn("lost")
	assert.False(t, ok, "unknown map yields nothing")
}

func TestService_Move(t *testing.T) {
	svc, players := newTestService(t)
	players.Save(model.NewPlayer("alice", "Alice", model.DefaultMapID, model.Position{}))

	got, ok := svc.Move("alice", 100, -3)
	require.True(t, ok)
	assert.Equal(t, model.NewPosition(45, -3), got.Position)

	dead, _ := players.FindByID("alice")
	players.Save(dead.Kill())

	_, ok = svc.Move("alice", 1, 1)
	assert.False(t, ok)
	frozen, _ := players.FindByID("alice")
	assert.Equal(t, model.NewPosition(45, -3), frozen.Position)
}

func TestService_MoveOnUnknownMapRejected(t *testing.T) {
	svc, players := newTestService(t)
	players.Save(model.NewPlayer("lost", "Lost", "nowhere", model.NewPosition(1, 2)))

	_, ok := svc.Move("lost", 500, 500)
	assert.False(t, ok)

	stored, _ := players.FindByID("lost")
	assert.Equal(t, model.NewPosition(1, 2), stored.Position)
}

func TestService_AddExperience(t *testing.T) {
	svc, players := newTestService(t)
	players.Save(model.NewPlayer("alice", "Alice", model.DefaultMapID, model.Position{}))

	got, leveled, ok := svc.AddExperience("alice", 250)
	require.True(t, ok)
	assert.True(t, leveled)
	assert.Equal(t, 3, got.Level)

	stored, _ := players.FindByID("alice")
	assert.Equal(t, got, stored)

	_, _, ok = svc.AddExperience("ghost", 10)
	assert.False(t, ok)
}
