// Package sim is the entry point of the world simulation. Every inbound
// command and both periodic ticks go through Simulation, which returns the
// domain events the transport should broadcast.
package sim

import (
	"sync"

	"go.uber.org/zap"

	"github.com/udisondev/soulbound/internal/ai"
	"github.com/udisondev/soulbound/internal/event"
	"github.com/udisondev/soulbound/internal/game/combat"
	"github.com/udisondev/soulbound/internal/game/player"
	"github.com/udisondev/soulbound/internal/game/zone"
	"github.com/udisondev/soulbound/internal/model"
	"github.com/udisondev/soulbound/internal/spawn"
	"github.com/udisondev/soulbound/internal/world"
)

// Deps wires a Simulation.
type Deps struct {
	Zones    *zone.Manager
	Players  world.PlayerRepository
	Monsters world.MonsterRepository
	State    *world.StateStore
	Life     *player.Service
	Spawner  *spawn.Manager
	AI       *ai.TickManager
	Resolver *combat.Resolver
	// TickSeconds is the world tick period; the AI integrates movement over it.
	TickSeconds float64
	Log         *zap.Logger
}

// Simulation serialises all world mutations behind one mutex, so a world
// tick, a spawn tick and player commands never interleave on the same
// entity. Unknown IDs yield no events and no error.
type Simulation struct {
	mu sync.Mutex

	zones    *zone.Manager
	players  world.PlayerRepository
	monsters world.MonsterRepository
	state    *world.StateStore
	life     *player.Service
	spawner  *spawn.Manager
	brain    *ai.TickManager
	resolver *combat.Resolver
	dt       float64
	log      *zap.Logger
}

// New creates a simulation from its dependencies.
func New(d Deps) *Simulation {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulation{
		zones:    d.Zones,
		players:  d.Players,
		monsters: d.Monsters,
		state:    d.State,
		life:     d.Life,
		spawner:  d.Spawner,
		brain:    d.AI,
		resolver: d.Resolver,
		dt:       d.TickSeconds,
		log:      log,
	}
}

// Join returns the known player or creates a fresh one standing in the
// centre of the default map's first safe zone (the origin without one),
// together with a snapshot of live monsters.
func (s *Simulation) Join(id model.PlayerID, name string) (model.Player, []model.Monster) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players.FindByID(id)
	if !ok {
		spawnPos := model.Position{}
		if def, ok := s.zones.CurrentMap(); ok {
			if safe, ok := def.FirstSafeSpot(); ok {
				spawnPos = safe
			}
		}
		p = model.NewPlayer(id, name, s.zones.DefaultMapID(), spawnPos)
		p.NextLevelXP = max(1, s.life.Leveling().NextLevelXP(p.Level))
		s.log.Info("new player created", zap.String("player", string(id)), zap.String("name", name))
	}
	s.players.Save(p)

	return p, s.monsters.FindAll()
}

// Disconnect keeps the player record and returns its last snapshot for
// persistence.
func (s *Simulation) Disconnect(id model.PlayerID) (model.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players.FindByID(id)
}

// UpdatePosition moves a living player to (x, z) clamped to map bounds.
func (s *Simulation) UpdatePosition(id model.PlayerID, x, z float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.life.Move(id, x, z)
}

// Attack swings at monsters within player attack range in the 180° arc
// around (fx, fz). A zero facing means forward (0, 1). A non-nil target
// restricts the swing to that monster.
func (s *Simulation) Attack(id model.PlayerID, fx, fz float64, target *model.MonsterID) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	attacker, ok := s.players.FindByID(id)
	if !ok || attacker.IsDead() {
		return nil
	}
	ws := s.state.Get()

	var candidates []model.Monster
	if target != nil {
		if m, ok := s.monsters.FindByID(*target); ok {
			candidates = append(candidates, m)
		}
	} else {
		candidates = s.monsters.FindAll()
	}

	nx, nz := combat.NormalizeFacing(fx, fz)
	var events []event.Event
	for _, m := range candidates {
		if !combat.CanHit(attacker.Position, m.Position, nx, nz, ws.PlayerAttackRange) {
			continue
		}
		m.HP -= s.resolver.PlayerToMonster(attacker, m, ws.Combat)
		if m.IsDead() {
			events = s.killMonster(attacker.ID, m, events)
			continue
		}
		m.Position = s.zones.ConfineToWild(combat.Knockback(attacker.Position, m.Position, combat.KnockbackDistance), ws)
		s.monsters.Save(m)
		events = append(events, event.NewMonsterUpdated(m))
	}
	return events
}

// killMonster removes a monster, queues its respawn and rewards the killer.
func (s *Simulation) killMonster(killer model.PlayerID, m model.Monster, events []event.Event) []event.Event {
	s.monsters.Delete(m.ID)
	s.brain.Forget(m.ID)
	at := s.spawner.ScheduleRespawn()

	events = append(events, event.NewMonsterKilled(m.ID, killer))

	p, leveled, ok := s.life.AddExperience(killer, m.XPReward)
	if ok {
		events = append(events, event.NewPlayerUpdated(p))
	}

	s.log.Info("monster killed",
		zap.Int64("monster", int64(m.ID)),
		zap.String("by", string(killer)),
		zap.Int("xp", m.XPReward),
		zap.Bool("levelUp", leveled),
		zap.Time("respawnAt", at))
	return events
}

// Respawn revives the player. Emits PlayerRespawned then PlayerUpdated.
func (s *Simulation) Respawn(id model.PlayerID) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.life.Respawn(id)
	if !ok {
		return nil
	}
	return []event.Event{event.NewPlayerRespawned(p), event.NewPlayerUpdated(p)}
}

// SpawnTick maintains the monster population.
func (s *Simulation) SpawnTick() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawner.SpawnTick(s.state.Get())
}

// WorldTick advances monster AI and contact combat by one tick.
func (s *Simulation) WorldTick() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.brain.Tick(s.state.Get(), s.dt)
}

// Players returns a snapshot of every known player.
func (s *Simulation) Players() []model.Player {
	return s.players.FindAll()
}

// Monsters returns a snapshot of every live monster.
func (s *Simulation) Monsters() []model.Monster {
	return s.monsters.FindAll()
}

// WorldState returns the current tunables.
func (s *Simulation) WorldState() model.WorldState {
	return s.state.Get()
}

// Restore loads persisted players into the world, replacing records with
// the same ID. Called once at startup before any session connects.
func (s *Simulation) Restore(players []model.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range players {
		s.players.Save(p)
	}
}
