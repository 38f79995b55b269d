package model

// CombatBalance tunes damage rolls.
type CombatBalance struct {
	PlayerToEnemyMultiplier float64 `yaml:"player_to_enemy_multiplier"`
	EnemyToPlayerMultiplier float64 `yaml:"enemy_to_player_multiplier"`
	RandomFactorMin         float64 `yaml:"random_factor_min"`
	RandomFactorMax         float64 `yaml:"random_factor_max"`
}

// DefaultCombatBalance returns x1 multipliers with a ±10% roll.
func DefaultCombatBalance() CombatBalance {
	return CombatBalance{
		PlayerToEnemyMultiplier: 1.0,
		EnemyToPlayerMultiplier: 1.0,
		RandomFactorMin:         0.9,
		RandomFactorMax:         1.1,
	}
}

// WorldState holds the global tunables of the simulation.
// It is passed explicitly into tick functions.
type WorldState struct {
	// MapLimit bounds monster movement when the catalog lacks the current map.
	MapLimit          float64       `yaml:"map_limit"`
	SafeRadius        float64       `yaml:"safe_radius"`
	WildRadiusMin     float64       `yaml:"wild_radius_min"`
	WildRadiusMax     float64       `yaml:"wild_radius_max"`
	MaxMonsters       int           `yaml:"max_monsters"`
	MonsterSpeed      float64       `yaml:"monster_speed"`
	ChaseRadius       float64       `yaml:"chase_radius"`
	AttackRadius      float64       `yaml:"attack_radius"`
	PlayerAttackRange float64       `yaml:"player_attack_range"`
	Combat            CombatBalance `yaml:"combat"`
}

// DefaultWorldState returns the tunables of the starting area.
func DefaultWorldState() WorldState {
	return WorldState{
		MapLimit:          45,
		SafeRadius:        12,
		WildRadiusMin:     18,
		WildRadiusMax:     44,
		MaxMonsters:       8,
		MonsterSpeed:      2.25,
		ChaseRadius:       20,
		AttackRadius:      1.8,
		PlayerAttackRange: 2.2,
		Combat:            DefaultCombatBalance(),
	}
}
