// Package catalog loads static world data (maps, safe zones, spawn points
// and enemy definitions) from TOML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/udisondev/soulbound/internal/model"
)

//go:embed default_catalog.toml
var defaultCatalog []byte

type fileFormat struct {
	Maps    []mapEntry   `toml:"maps"`
	Enemies []enemyEntry `toml:"enemies"`
}

type mapEntry struct {
	ID          string         `toml:"id"`
	Name        string         `toml:"name"`
	LimitX      float64        `toml:"limit_x"`
	LimitZ      float64        `toml:"limit_z"`
	SafeZones   []model.Region `toml:"safe_zones"`
	SpawnPoints []spawnEntry   `toml:"spawn_points"`
}

type spawnEntry struct {
	ID             string   `toml:"id"`
	X              float64  `toml:"x"`
	Z              float64  `toml:"z"`
	EnemyType      string   `toml:"enemy_type"`
	MinLevel       int      `toml:"min_level"`
	MaxLevel       int      `toml:"max_level"`
	JitterRadius   *float64 `toml:"jitter_radius"`
	RespawnSeconds int      `toml:"respawn_seconds"`
}

type enemyEntry struct {
	Type        string           `toml:"type"`
	DisplayName string           `toml:"display_name"`
	Weight      int              `toml:"weight"`
	MinLevel    int              `toml:"min_level"`
	MaxLevel    int              `toml:"max_level"`
	Stats       model.EnemyStats `toml:"stats"`
}

// Catalog is the immutable static world data.
type Catalog struct {
	maps    MapTable
	enemies EnemyTable
}

// Default parses the built-in catalog.
func Default() (*Catalog, error) {
	c, err := Parse(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog TOML.
func Parse(data []byte) (*Catalog, error) {
	var f fileFormat
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, err
	}

	c := &Catalog{
		maps:    MapTable{byID: make(map[model.MapID]*model.MapDefinition, len(f.Maps))},
		enemies: EnemyTable{byType: make(map[model.EnemyType]model.EnemyDefinition, len(f.Enemies))},
	}

	for _, e := range f.Enemies {
		def, err := e.definition()
		if err != nil {
			return nil, err
		}
		if _, dup := c.enemies.byType[def.Type]; dup {
			return nil, fmt.Errorf("duplicate enemy type %q", def.Type)
		}
		c.enemies.byType[def.Type] = def
		c.enemies.ordered = append(c.enemies.ordered, def)
	}
	if len(c.enemies.ordered) == 0 {
		return nil, errors.New("catalog defines no enemies")
	}

	for _, m := range f.Maps {
		def, err := m.definition()
		if err != nil {
			return nil, err
		}
		if _, dup := c.maps.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate map id %q", def.ID)
		}
		c.maps.byID[def.ID] = def
		c.maps.ordered = append(c.maps.ordered, def)
	}
	if len(c.maps.ordered) == 0 {
		return nil, errors.New("catalog defines no maps")
	}

	return c, nil
}

// Maps returns the map table.
func (c *Catalog) Maps() *MapTable {
	return &c.maps
}

// Enemies returns the enemy definition table.
func (c *Catalog) Enemies() *EnemyTable {
	return &c.enemies
}

func (e enemyEntry) definition() (model.EnemyDefinition, error) {
	if e.Type == "" {
		return model.EnemyDefinition{}, errors.New("enemy without type")
	}
	if e.Stats.MaxHP <= 0 {
		return model.EnemyDefinition{}, fmt.Errorf("enemy %q: max_hp must be positive", e.Type)
	}
	name := e.DisplayName
	if name == "" {
		name = e.Type
	}
	return model.EnemyDefinition{
		Type:        model.EnemyType(e.Type),
		DisplayName: name,
		BaseStats:   e.Stats,
		Weight:      e.Weight,
		MinLevel:    e.MinLevel,
		MaxLevel:    e.MaxLevel,
	}, nil
}

func (m mapEntry) definition() (*model.MapDefinition, error) {
	if m.ID == "" {
		return nil, errors.New("map without id")
	}
	if m.LimitX <= 0 || m.LimitZ <= 0 {
		return nil, fmt.Errorf("map %q: limits must be positive", m.ID)
	}

	def := &model.MapDefinition{
		ID:        model.MapID(m.ID),
		Name:      m.Name,
		LimitX:    m.LimitX,
		LimitZ:    m.LimitZ,
		SafeZones: m.SafeZones,
	}

	for _, z := range m.SafeZones {
		if z.MinX > z.MaxX || z.MinZ > z.MaxZ {
			return nil, fmt.Errorf("map %q: safe zone %q has inverted bounds", m.ID, z.ID)
		}
	}

	for _, s := range m.SpawnPoints {
		sp := model.SpawnPoint{
			ID:             s.ID,
			MapID:          def.ID,
			Position:       model.NewPosition(s.X, s.Z),
			EnemyType:      model.EnemyType(s.EnemyType),
			MinLevel:       max(1, s.MinLevel),
			MaxLevel:       s.MaxLevel,
			JitterRadius:   model.DefaultJitterRadius,
			RespawnSeconds: s.RespawnSeconds,
		}
		if s.JitterRadius != nil {
			sp.JitterRadius = *s.JitterRadius
		}
		if !def.InBounds(sp.Position) {
			return nil, fmt.Errorf("map %q: spawn point %q outside bounds", m.ID, s.ID)
		}
		def.SpawnPoints = append(def.SpawnPoints, sp)
	}

	return def, nil
}

// MapTable looks up map definitions. Satisfies zone.MapRepository.
type MapTable struct {
	byID    map[model.MapID]*model.MapDefinition
	ordered []*model.MapDefinition
}

// Get returns a map by ID.
func (t *MapTable) Get(id model.MapID) (*model.MapDefinition, bool) {
	m, ok := t.byID[id]
	return m, ok
}

// All returns every map in file order.
func (t *MapTable) All() []*model.MapDefinition {
	return t.ordered
}

// EnemyTable looks up enemy definitions. Satisfies spawn.EnemyDefinitionProvider.
type EnemyTable struct {
	byType  map[model.EnemyType]model.EnemyDefinition
	ordered []model.EnemyDefinition
}

// Find returns the definition for an enemy type.
func (t *EnemyTable) Find(typ model.EnemyType) (model.EnemyDefinition, bool) {
	d, ok := t.byType[typ]
	return d, ok
}

// All returns every definition in file order.
func (t *EnemyTable) All() []model.EnemyDefinition {
	return t.ordered
}
