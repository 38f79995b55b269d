package sim

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/soulbound/internal/ai"
	"github.com/udisondev/soulbound/internal/event"
	"github.com/udisondev/soulbound/internal/game/combat"
	"github.com/udisondev/soulbound/internal/game/player"
	"github.com/udisondev/soulbound/internal/game/zone"
	"github.com/udisondev/soulbound/internal/model"
	"github.com/udisondev/soulbound/internal/spawn"
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

type staticEnemies []model.EnemyDefinition

func (s staticEnemies) Find(t model.EnemyType) (model.EnemyDefinition, bool) {
	for _, d := range s {
		if d.Type == t {
			return d, true
		}
	}
	return model.EnemyDefinition{}, false
}

func (s staticEnemies) All() []model.EnemyDefinition { return s }

type fixture struct {
	sim      *Simulation
	players  *world.PlayerStore
	monsters *world.MonsterStore
	spawner  *spawn.Manager
	brain    *ai.TickManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithLeveling(t, nil)
}

func newFixtureWithLeveling(t *testing.T, leveling player.LevelingStrategy) *fixture {
	t.Helper()
	maps := staticMaps{
		model.DefaultMapID: {
			ID:        model.DefaultMapID,
			Name:      "Starting Area",
			LimitX:    45,
			LimitZ:    45,
			SafeZones: []model.Region{{ID: "safe-center", MinX: -12, MaxX: 12, MinZ: -12, MaxZ: 12}},
			SpawnPoints: []model.SpawnPoint{
				{ID: "sp-1", MapID: model.DefaultMapID, Position: model.NewPosition(-15, 10), EnemyType: "GOBLIN", MinLevel: 1, MaxLevel: 5, JitterRadius: 2},
				{ID: "sp-2", MapID: model.DefaultMapID, Position: model.NewPosition(15, -12), EnemyType: "GOBLIN", MinLevel: 1, MaxLevel: 5, JitterRadius: 2},
			},
		},
	}
	enemies := staticEnemies{
		{Type: "GOBLIN", DisplayName: "Goblin", BaseStats: model.EnemyStats{MaxHP: 50, Attack: 10, Defense: 2, MoveSpeed: 2.4, XPReward: 25}, Weight: 4, MinLevel: 1, MaxLevel: 3},
	}

	zones := zone.NewManager(maps, model.DefaultMapID, rand.New(rand.NewPCG(42, 99)))
	players := world.NewPlayerStore()
	monsters := world.NewMonsterStore()
	life := player.NewService(players, maps, leveling)
	resolver := combat.NewResolver(combat.FixedFactor(1))
	spawner := spawn.NewManager(zones, players, monsters, world.NewMonsterIDGenerator(), enemies)
	brain := ai.NewTickManager(zones, players, monsters, life, resolver, nil)

	s := New(Deps{
		Zones:       zones,
		Players:     players,
		Monsters:    monsters,
		State:       world.NewStateStore(model.DefaultWorldState()),
		Life:        life,
		Spawner:     spawner,
		AI:          brain,
		Resolver:    resolver,
		TickSeconds: 0.2,
	})
	return &fixture{sim: s, players: players, monsters: monsters, spawner: spawner, brain: brain}
}

func monsterAt(id model.MonsterID, pos model.Position, hp, defense int) model.Monster {
	return model.Monster{
		ID: id, Name: "Goblin", Type: "GOBLIN",
		HP: hp, MaxHP: hp, Attack: 10, Defense: defense, XPReward: 25,
		MoveSpeed: 2.4, Position: pos, Spawn: pos,
	}
}

func kinds(events []event.Event) []event.Kind {
	out := make([]event.Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestSimulation_Join(t *testing.T) {
	f := newFixture(t)
	f.monsters.Save(monsterAt(1, model.NewPosition(20, 0), 50, 2))

	p, monsters := f.sim.Join("alice", "Alice")
	assert.Equal(t, model.PlayerID("alice"), p.ID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, model.Position{}, p.Position)
	assert.Equal(t, model.Position{}, p.SpawnPosition)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 100, p.NextLevelXP)
	assert.Len(t, monsters, 1)

	p.Experience = 70
	f.players.Save(p)

	again, _ := f.sim.Join("alice", "Alice")
	assert.Equal(t, 70, again.Experience, "rejoining reuses the stored player")
}

type steepLeveling struct{}

func (steepLeveling) NextLevelXP(level int) int { return 50 * level }

func TestSimulation_JoinUsesLevelingThreshold(t *testing.T) {
	f := newFixtureWithLeveling(t, steepLeveling{})

	p, _ := f.sim.Join("alice", "Alice")
	assert.Equal(t, 50, p.NextLevelXP)

	stored, ok := f.players.FindByID("alice")
	require.True(t, ok)
	assert.Equal(t, 50, stored.NextLevelXP)
}

func TestSimulation_Attack_DamageScenario(t *testing.T) {
	f := newFixture(t)
	p, _ := f.sim.Join("alice", "Alice")
	p.Stats.Attack = 20
	p.Position = model.NewPosition(20, 0)
	f.players.Save(p)
	f.monsters.Save(monsterAt(1, model.NewPosition(21, 0), 60, 5))

	events := f.sim.Attack("alice", 1, 0, nil)

	require.Equal(t, []event.Kind{event.MonsterUpdated}, kinds(events))
	hit := events[0].Monster
	assert.Equal(t, 45, hit.HP)
	assert.InDelta(t, 23.4, hit.Position.X, 1e-9, "knocked back away from the attacker")

	stored, _ := f.monsters.FindByID(1)
	assert.Equal(t, hit, stored)
}

func TestSimulation_Attack_Kill(t *testing.T) {
	f := newFixture(t)
	p, _ := f.sim.Join("alice", "Alice")
	p.Position = model.NewPosition(20, 0)
	f.players.Save(p)
	f.monsters.Save(monsterAt(7, model.NewPosition(20, 1), 5, 2))
	f.sim.WorldTick()

	id := model.MonsterID(7)
	events := f.sim.Attack("alice", 0, 0, &id)

	require.Equal(t, []event.Kind{event.MonsterKilled, event.PlayerUpdated}, kinds(events))
	assert.Equal(t, id, events[0].MonsterID)
	assert.Equal(t, model.PlayerID("alice"), events[0].KillerID)
	assert.Equal(t, 25, events[1].Player.Experience)

	_, alive := f.monsters.FindByID(id)
	assert.False(t, alive)
	_, hasState := f.brain.State(id)
	assert.False(t, hasState)
	assert.Equal(t, 1, f.spawner.Queue().Len())

	assert.Empty(t, f.sim.Attack("alice", 0, 0, &id), "stale monster id is a no-op")
}

func TestSimulation_Attack_ArcAndRange(t *testing.T) {
	f := newFixture(t)
	p, _ := f.sim.Join("alice", "Alice")
	p.Position = model.NewPosition(20, 0)
	f.players.Save(p)
	f.monsters.Save(monsterAt(1, model.NewPosition(20, -1), 50, 2)) // behind
	f.monsters.Save(monsterAt(2, model.NewPosition(20, 5), 50, 2))  // out of range

	assert.Empty(t, f.sim.Attack("alice", 0, 0, nil), "zero facing defaults to +z")
	assert.Len(t, f.sim.Attack("alice", 0, -1, nil), 1)
}

func TestSimulation_DeadPlayerIsFrozen(t *testing.T) {
	f := newFixture(t)
	p, _ := f.sim.Join("alice", "Alice")
	p.Position = model.NewPosition(20, 0)
	f.players.Save(p.Kill())
	f.monsters.Save(monsterAt(1, model.NewPosition(20, 1), 50, 2))

	assert.Empty(t, f.sim.Attack("alice", 0, 1, nil))
	f.sim.UpdatePosition("alice", 30, 30)

	stored, _ := f.players.FindByID("alice")
	assert.Equal(t, model.NewPosition(20, 0), stored.Position)
	assert.True(t, stored.Dead)
	assert.Equal(t, 0, stored.Stats.CurrentHP)
}

func TestSimulation_UpdatePositionClamps(t *testing.T) {
	f := newFixture(t)
	f.sim.Join("alice", "Alice")

	f.sim.UpdatePosition("alice", 100, -100)
	stored, _ := f.players.FindByID("alice")
	assert.Equal(t, model.NewPosition(45, -45), stored.Position)

	f.sim.UpdatePosition("ghost", 1, 1)
	_, ok := f.players.FindByID("ghost")
	assert.False(t, ok)
}

func TestSimulation_DeathAndRespawn(t *testing.T) {
	f := newFixture(t)
	p, _ := f.sim.Join("alice", "Alice")
	p.Position = model.NewPosition(20, 0)
	p.Stats.CurrentHP = 1
	f.players.Save(p)
	f.monsters.Save(monsterAt(1, model.NewPosition(20, 0), 50, 2))

	var died *event.Event
	for _, e := range f.sim.WorldTick() {
		if e.Kind == event.PlayerDied {
			died = &e
		}
	}
	require.NotNil(t, died)
	assert.Equal(t, 0, died.XPLost)
	assert.Equal(t, 0, died.Player.Experience, "xp never goes negative")
	assert.Equal(t, 0, died.Player.Stats.CurrentHP)

	events := f.sim.Respawn("alice")
	require.Equal(t, []event.Kind{event.PlayerRespawned, event.PlayerUpdated}, kinds(events))
	revived := events[0].Player
	assert.False(t, revived.Dead)
	assert.Equal(t, revived.Stats.MaxHP, revived.Stats.CurrentHP)
	assert.Equal(t, model.Position{}, revived.Position)

	again := f.sim.Respawn("alice")
	assert.Equal(t, revived, again[0].Player, "respawn is idempotent")

	assert.Empty(t, f.sim.Respawn("ghost"))
}

func TestSimulation_TicksKeepInvariants(t *testing.T) {
	f := newFixture(t)
	ws := f.sim.WorldState()
	p, _ := f.sim.Join("alice", "Alice")
	p.Position = model.NewPosition(-16, 10)
	f.players.Save(p)

	spawned := f.sim.SpawnTick()
	require.Len(t, spawned, ws.MaxMonsters)

	for i := range 300 {
		f.sim.WorldTick()
		if i%5 == 0 {
			f.sim.SpawnTick()
		}
		assert.LessOrEqual(t, len(f.sim.Monsters()), ws.MaxMonsters)
	}

	for _, m := range f.sim.Monsters() {
		assert.GreaterOrEqual(t, m.Position.Length(), ws.SafeRadius-1e-9)
		assert.LessOrEqual(t, m.Position.X, 45.0)
		assert.GreaterOrEqual(t, m.Position.X, -45.0)
		assert.LessOrEqual(t, m.Position.Z, 45.0)
		assert.GreaterOrEqual(t, m.Position.Z, -45.0)
	}
	for _, p := range f.sim.Players() {
		assert.Equal(t, p.Stats.CurrentHP <= 0, p.Dead)
	}
}

func TestSimulation_DisconnectAndRestore(t *testing.T) {
	f := newFixture(t)
	f.sim.Join("alice", "Alice")

	p, ok := f.sim.Disconnect("alice")
	require.True(t, ok)
	assert.Equal(t, model.PlayerID("alice"), p.ID)
	assert.Len(t, f.sim.Players(), 1, "disconnect keeps the record")

	saved := model.NewPlayer("bob", "Bob", model.DefaultMapID, model.Position{})
	saved.Level = 4
	f.sim.Restore([]model.Player{saved})

	bob, _ := f.sim.Join("bob", "Bob")
	assert.Equal(t, 4, bob.Level)
}

func TestLoop_PublishesUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu  sync.Mutex
		got int
	)
	pub := PublisherFunc(func(events []event.Event) {
		mu.Lock()
		got += len(events)
		mu.Unlock()
		cancel()
	})
	tick := func() []event.Event {
		return []event.Event{event.NewMonsterKilled(1, "alice")}
	}

	loop := NewLoop("test", time.Millisecond, tick, pub, nil)
	err := loop.Start(ctx)

	require.ErrorIs(t, err, context.Canceled)
	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, got, 1)
}
