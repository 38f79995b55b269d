package world

import (
	"sync/atomic"

	"github.com/udisondev/soulbound/internal/model"
)

// MonsterIDGenerator hands out process-unique monster IDs.
// IDs start at 1 and are never reused.
type MonsterIDGenerator struct {
	next atomic.Int64
}

// NewMonsterIDGenerator creates a generator whose first ID is 1.
func NewMonsterIDGenerator() *MonsterIDGenerator {
	return &MonsterIDGenerator{}
}

// Next returns the next monster ID.
// Thread-safe via atomic increment.
func (g *MonsterIDGenerator) Next() model.MonsterID {
	return model.MonsterID(g.next.Add(1))
}
