package model

// MonsterID identifies a live monster. IDs are process-unique and never reused.
type MonsterID int64

// Monster is a hostile creature roaming the wild.
// Value type: repositories store and hand out copies.
type Monster struct {
	ID        MonsterID `json:"id"`
	Name      string    `json:"name"`
	Type      EnemyType `json:"type"`
	HP        int       `json:"hp"`
	MaxHP     int       `json:"maxHp"`
	Attack    int       `json:"attack"`
	Defense   int       `json:"defense"`
	XPReward  int       `json:"xpReward"`
	MoveSpeed float64   `json:"moveSpeed"`
	Position  Position  `json:"position"`
	Spawn     Position  `json:"spawn"`
}

// IsDead reports whether the monster has no HP left.
func (m Monster) IsDead() bool {
	return m.HP <= 0
}
