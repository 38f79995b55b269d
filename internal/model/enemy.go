package model

// EnemyType tags an enemy definition ("GOBLIN", "ORC", ...).
type EnemyType string

// EnemyStats are the combat stats of a monster kind.
type EnemyStats struct {
	MaxHP     int     `toml:"max_hp"`
	Attack    int     `toml:"attack"`
	Defense   int     `toml:"defense"`
	MoveSpeed float64 `toml:"move_speed"`
	XPReward  int     `toml:"xp_reward"`
}

// EnemyDefinition is a catalog entry for one monster kind.
type EnemyDefinition struct {
	Type        EnemyType
	DisplayName string
	BaseStats   EnemyStats
	Weight      int
	MinLevel    int
	MaxLevel    int
}
