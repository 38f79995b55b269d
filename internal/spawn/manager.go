// Package spawn maintains the monster population: initial fill, scheduled
// respawns after kills, spawn point placement and level-based stat scaling.
package spawn

import (
	"time"

	"go.uber.org/zap"

	"github.com/udisondev/soulbound/internal/event"
	"github.com/udisondev/soulbound/internal/game/zone"
	"github.com/udisondev/soulbound/internal/model"
	"github.com/udisondev/soulbound/internal/world"
)

// Respawn delay bounds after a monster dies.
const (
	MinRespawnDelay = 5 * time.Second
	MaxRespawnDelay = 10 * time.Second
)

// EnemyDefinitionProvider looks up enemy definitions. All returns them in
// catalog order; the first one is the fallback for unknown types.
type EnemyDefinitionProvider interface {
	Find(t model.EnemyType) (model.EnemyDefinition, bool)
	All() []model.EnemyDefinition
}

// Manager spawns monsters into the monster repository.
// Not safe for concurrent use; the simulation serialises calls.
type Manager struct {
	zones    *zone.Manager
	players  world.PlayerRepository
	monsters world.MonsterRepository
	ids      *world.MonsterIDGenerator
	enemies  EnemyDefinitionProvider
	scaler   StatScaler
	queue    *RespawnQueue
	now      func() time.Time
	log      *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithScaler replaces LinearScaler.
func WithScaler(s StatScaler) Option {
	return func(m *Manager) {
		if s != nil {
			m.scaler = s
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a spawn manager.
func NewManager(
	zones *zone.Manager,
	players world.PlayerRepository,
	monsters world.MonsterRepository,
	ids *world.MonsterIDGenerator,
	enemies EnemyDefinitionProvider,
	opts ...Option,
) *Manager {
	m := &Manager{
		zones:    zones,
		players:  players,
		monsters: monsters,
		ids:      ids,
		enemies:  enemies,
		scaler:   LinearScaler{},
		queue:    NewRespawnQueue(),
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Queue exposes the pending respawn tasks.
func (m *Manager) Queue() *RespawnQueue {
	return m.queue
}

// SpawnTick tops the population up to the cap when nothing is scheduled,
// then spawns one monster per due respawn task while below the cap.
// Due tasks beyond the cap are dropped.
func (m *Manager) SpawnTick(ws model.WorldState) []event.Event {
	var events []event.Event

	if m.queue.Len() == 0 {
		if missing := ws.MaxMonsters - m.monsters.Count(); missing > 0 {
			for range missing {
				if mon, ok := m.SpawnMonster(ws); ok {
					events = append(events, event.NewMonsterSpawned(mon))
				}
			}
		}
	}

	due := m.queue.DrainDue(m.now())
	for i := range due {
		if m.monsters.Count() >= ws.MaxMonsters {
			m.log.Debug("respawn tasks discarded at population cap",
				zap.Int("discarded", len(due)-i),
				zap.Int("cap", ws.MaxMonsters))
			break
		}
		if mon, ok := m.SpawnMonster(ws); ok {
			events = append(events, event.NewMonsterSpawned(mon))
		}
	}

	return events
}

// ScheduleRespawn queues one population slot at now + U[5s, 10s].
func (m *Manager) ScheduleRespawn() time.Time {
	delay := MinRespawnDelay + time.Duration(m.zones.Uniform(0, float64(MaxRespawnDelay-MinRespawnDelay)))
	at := m.now().Add(delay)
	m.queue.Schedule(at)
	return at
}

// SpawnMonster places one monster on the current map.
// Returns false if the map has no spawn points or no enemy definitions exist.
func (m *Manager) SpawnMonster(ws model.WorldState) (model.Monster, bool) {
	current, ok := m.zones.CurrentMap()
	if !ok || len(current.SpawnPoints) == 0 {
		return model.Monster{}, false
	}

	avgLevel := m.AveragePlayerLevel()
	sp := m.pickSpawnPoint(current.SpawnPoints, avgLevel)

	def, ok := m.definitionFor(sp.EnemyType)
	if !ok {
		m.log.Warn("no enemy definitions available")
		return model.Monster{}, false
	}

	pos := m.zones.ConfineToWild(m.zones.RandomNear(sp), ws)
	stats := m.scaler.Scale(def, avgLevel)

	mon := model.Monster{
		ID:        m.ids.Next(),
		Name:      def.DisplayName,
		Type:      def.Type,
		HP:        stats.MaxHP,
		MaxHP:     stats.MaxHP,
		Attack:    stats.Attack,
		Defense:   stats.Defense,
		XPReward:  stats.XPReward,
		MoveSpeed: stats.MoveSpeed,
		Position:  pos,
		Spawn:     pos,
	}
	m.monsters.Save(mon)

	m.log.Debug("monster spawned",
		zap.Int64("id", int64(mon.ID)),
		zap.String("type", string(mon.Type)),
		zap.String("spawnPoint", sp.ID),
		zap.Float64("avgLevel", avgLevel))

	return mon, true
}

// AveragePlayerLevel returns the mean level of all known players, or 1
// when there are none.
func (m *Manager) AveragePlayerLevel() float64 {
	players := m.players.FindAll()
	if len(players) == 0 {
		return 1
	}
	total := 0
	for _, p := range players {
		total += p.Level
	}
	return float64(total) / float64(len(players))
}

func (m *Manager) pickSpawnPoint(points []model.SpawnPoint, avgLevel float64) model.SpawnPoint {
	candidates := make([]model.SpawnPoint, 0, len(points))
	for _, sp := range points {
		if sp.AcceptsLevel(avgLevel) {
			candidates = append(candidates, sp)
		}
	}
	if len(candidates) == 0 {
		candidates = points
	}
	return candidates[m.zones.IntN(len(candidates))]
}

func (m *Manager) definitionFor(t model.EnemyType) (model.EnemyDefinition, bool) {
	if def, ok := m.enemies.Find(t); ok {
		return def, true
	}
	all := m.enemies.All()
	if len(all) == 0 {
		return model.EnemyDefinition{}, false
	}
	return all[0], true
}
