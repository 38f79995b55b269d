// Package ai drives monsters each world tick: chase the nearest exposed
// player, otherwise wander the wild, and hurt players on contact.
package ai

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/udisondev/soulbound/internal/event"
	"github.com/udisondev/soulbound/internal/game/combat"
	"github.com/udisondev/soulbound/internal/game/player"
	"github.com/udisondev/soulbound/internal/game/zone"
	"github.com/udisondev/soulbound/internal/model"
	"github.com/udisondev/soulbound/internal/world"
)

// TickManager runs monster behaviour. Tick must not be called concurrently
// with itself; the simulation serialises it with every other mutation.
type TickManager struct {
	states     sync.Map     // map[model.MonsterID]*MoveState
	stateCount atomic.Int32 // cached count of states (O(1) access)

	zones    *zone.Manager
	players  world.PlayerRepository
	monsters world.MonsterRepository
	life     *player.Service
	resolver *combat.Resolver
	log      *zap.Logger
}

// NewTickManager creates a new AI tick manager.
func NewTickManager(
	zones *zone.Manager,
	players world.PlayerRepository,
	monsters world.MonsterRepository,
	life *player.Service,
	resolver *combat.Resolver,
	log *zap.Logger,
) *TickManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &TickManager{
		zones:    zones,
		players:  players,
		monsters: monsters,
		life:     life,
		resolver: resolver,
		log:      log,
	}
}

// Forget drops the move state of a dead monster.
func (m *TickManager) Forget(id model.MonsterID) {
	if _, ok := m.states.LoadAndDelete(id); ok {
		m.stateCount.Add(-1)
	}
}

// StateCount returns the number of monsters with steering state.
func (m *TickManager) StateCount() int {
	return int(m.stateCount.Load())
}

// State returns a copy of a monster's move state (for tests and debugging).
func (m *TickManager) State(id model.MonsterID) (MoveState, bool) {
	v, ok := m.states.Load(id)
	if !ok {
		return MoveState{}, false
	}
	return *v.(*MoveState), true
}

// Tick advances every live monster by dt seconds.
func (m *TickManager) Tick(ws model.WorldState, dt float64) []event.Event {
	var events []event.Event
	for _, mon := range m.monsters.FindAll() {
		events = m.tickMonster(mon, ws, dt, events)
	}
	return events
}

func (m *TickManager) tickMonster(mon model.Monster, ws model.WorldState, dt float64, events []event.Event) []event.Event {
	state := m.stateFor(mon.ID, ws)

	var target model.Position
	if prey, ok := m.nearestExposedPlayer(mon.Position, ws); ok {
		state.Timer = ChaseMemory
		target = prey.Position
		if IsDebugEnabled() {
			m.log.Debug("monster chasing",
				zap.Int64("monster", int64(mon.ID)),
				zap.String("player", string(prey.ID)))
		}
	} else {
		state.Timer -= dt
		if mon.Position.DistanceTo(state.Target) < WanderArriveDistance || state.Timer <= 0 {
			m.retarget(state, ws)
		}
		target = state.Target
	}

	speed := mon.MoveSpeed
	if speed <= 0 {
		speed = ws.MonsterSpeed
	}
	next := StepToward(mon.Position, target, speed*dt)
	if next != mon.Position {
		next = m.zones.ConfineToWild(next, ws)
	}
	if next != mon.Position {
		mon.Position = next
		m.monsters.Save(mon)
		events = append(events, event.NewMonsterMoved(mon))
	}

	return m.contactDamage(mon, ws, events)
}

// contactDamage hits every living, exposed player within attack radius once.
func (m *TickManager) contactDamage(mon model.Monster, ws model.WorldState, events []event.Event) []event.Event {
	for _, p := range m.players.FindAll() {
		if p.IsDead() || m.zones.IsInSafeZone(p.MapID, p.Position) {
			continue
		}
		if mon.Position.DistanceTo(p.Position) > ws.AttackRadius {
			continue
		}

		dmg := m.resolver.MonsterToPlayer(mon, p, ws.Combat)
		res, ok := m.life.ApplyDamage(p.ID, dmg, 0)
		if !ok {
			continue
		}
		if !res.Died {
			events = append(events, event.NewPlayerUpdated(res.Player))
			continue
		}

		death, ok := m.life.HandleDeath(p.ID)
		if !ok {
			continue
		}
		m.log.Info("player killed by monster",
			zap.String("player", string(p.ID)),
			zap.Int64("monster", int64(mon.ID)),
			zap.Int("xpLost", death.XPLost))
		events = append(events, event.NewPlayerDied(death.Player, death.XPLost))
	}
	return events
}

// nearestExposedPlayer finds the closest living player outside every safe
// zone and within chase radius.
func (m *TickManager) nearestExposedPlayer(from model.Position, ws model.WorldState) (model.Player, bool) {
	var (
		best     model.Player
		bestDist = ws.ChaseRadius
		found    bool
	)
	for _, p := range m.players.FindAll() {
		if p.IsDead() || m.zones.IsInSafeZone(p.MapID, p.Position) {
			continue
		}
		if d := from.DistanceTo(p.Position); d <= bestDist {
			best, bestDist, found = p, d, true
		}
	}
	return best, found
}

func (m *TickManager) stateFor(id model.MonsterID, ws model.WorldState) *MoveState {
	if v, ok := m.states.Load(id); ok {
		return v.(*MoveState)
	}
	state := &MoveState{}
	m.retarget(state, ws)
	m.states.Store(id, state)
	m.stateCount.Add(1)
	return state
}

func (m *TickManager) retarget(state *MoveState, ws model.WorldState) {
	state.Target = m.zones.RandomWildPosition(ws)
	state.Timer = m.zones.Uniform(MinWanderTimer, MaxWanderTimer)
}
