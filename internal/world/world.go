// Package world holds the live state of the simulation: players, monsters
// and the global tunables. Stores hand out value copies; a caller that
// modifies an entity must Save it back.
package world

import (
	"sync"
	"sync/atomic"

	"github.com/udisondev/soulbound/internal/model"
)

// PlayerRepository stores players by ID.
type PlayerRepository interface {
	FindByID(id model.PlayerID) (model.Player, bool)
	Save(p model.Player)
	FindAll() []model.Player
	Delete(id model.PlayerID)
}

// MonsterRepository stores live monsters by ID.
type MonsterRepository interface {
	FindByID(id model.MonsterID) (model.Monster, bool)
	Save(m model.Monster)
	FindAll() []model.Monster
	Delete(id model.MonsterID)
	Count() int
}

// PlayerStore is the in-memory PlayerRepository.
type PlayerStore struct {
	players sync.Map // map[model.PlayerID]model.Player
}

// NewPlayerStore creates an empty player store.
func NewPlayerStore() *PlayerStore {
	return &PlayerStore{}
}

// FindByID returns a copy of the player.
func (s *PlayerStore) FindByID(id model.PlayerID) (model.Player, bool) {
	v, ok := s.players.Load(id)
	if !ok {
		return model.Player{}, false
	}
	return v.(model.Player), true
}

// Save inserts or replaces the player.
func (s *PlayerStore) Save(p model.Player) {
	s.players.Store(p.ID, p)
}

// FindAll returns a snapshot of all players in no particular order.
func (s *PlayerStore) FindAll() []model.Player {
	var out []model.Player
	s.players.Range(func(_, v any) bool {
		out = append(out, v.(model.Player))
		return true
	})
	return out
}

// Delete removes the player. Unknown IDs are ignored.
func (s *PlayerStore) Delete(id model.PlayerID) {
	s.players.Delete(id)
}

// MonsterStore is the in-memory MonsterRepository.
type MonsterStore struct {
	monsters sync.Map // map[model.MonsterID]model.Monster
	count    atomic.Int32
}

// NewMonsterStore creates an empty monster store.
func NewMonsterStore() *MonsterStore {
	return &MonsterStore{}
}

// FindByID returns a copy of the monster.
func (s *MonsterStore) FindByID(id model.MonsterID) (model.Monster, bool) {
	v, ok := s.monsters.Load(id)
	if !ok {
		return model.Monster{}, false
	}
	return v.(model.Monster), true
}

// Save inserts or replaces the monster.
func (s *MonsterStore) Save(m model.Monster) {
	if _, loaded := s.monsters.Swap(m.ID, m); !loaded {
		s.count.Add(1)
	}
}

// FindAll returns a snapshot of all monsters in no particular order.
func (s *MonsterStore) FindAll() []model.Monster {
	var out []model.Monster
	s.monsters.Range(func(_, v any) bool {
		out = append(out, v.(model.Monster))
		return true
	})
	return out
}

// Delete removes the monster. Unknown IDs are ignored.
func (s *MonsterStore) Delete(id model.MonsterID) {
	if _, loaded := s.monsters.LoadAndDelete(id); loaded {
		s.count.Add(-1)
	}
}

// Count returns the live monster population.
func (s *MonsterStore) Count() int {
	return int(s.count.Load())
}

// StateStore holds the current WorldState. Reads never block.
type StateStore struct {
	state atomic.Pointer[model.WorldState]
}

// NewStateStore creates a store holding initial.
func NewStateStore(initial model.WorldState) *StateStore {
	s := &StateStore{}
	s.Save(initial)
	return s
}

// Get returns a copy of the current world state.
func (s *StateStore) Get() model.WorldState {
	return *s.state.Load()
}

// Save replaces the world state.
func (s *StateStore) Save(ws model.WorldState) {
	s.state.Store(&ws)
}
