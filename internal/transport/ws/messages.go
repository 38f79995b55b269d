package ws

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/soulbound/internal/event"
	"github.com/udisondev/soulbound/internal/model"
)

// Inbound message types.
const (
	TypeJoin    = "join"
	TypeAttack  = "attack"
	TypePos     = "pos"
	TypeRespawn = "respawn"
)

// Outbound message types.
const (
	TypeJoinAck         = "join_ack"
	TypeMonsterSpawn    = "monster_spawn"
	TypeMonsterMove     = "monster_move"
	TypeMonsterUpdate   = "monster_update"
	TypeMonsterKilled   = "monster_killed"
	TypePlayerUpdate    = "player_update"
	TypePlayerDead      = "player_dead"
	TypePlayerRespawned = "player_respawned"
)

// DefaultPlayerName is used when join carries no usable name.
const DefaultPlayerName = "Player"

// Default attack facing when the client omits it.
const (
	defaultFacingX = 0.0
	defaultFacingZ = 1.0
)

// Envelope is the frame every message travels in, both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// AttackRequest is the payload of an attack message. Missing facing
// components fall back to (0, 1).
type AttackRequest struct {
	FX        *float64         `json:"fx"`
	FZ        *float64         `json:"fz"`
	MonsterID *model.MonsterID `json:"monsterId"`
}

// Facing returns the facing vector with defaults applied.
func (r AttackRequest) Facing() (float64, float64) {
	fx, fz := defaultFacingX, defaultFacingZ
	if r.FX != nil {
		fx = *r.FX
	}
	if r.FZ != nil {
		fz = *r.FZ
	}
	return fx, fz
}

// PosRequest is the payload of a pos message. Both coordinates are required.
type PosRequest struct {
	X *float64 `json:"x"`
	Z *float64 `json:"z"`
}

// PlayerDTO is the wire form of a player.
type PlayerDTO struct {
	ID          model.PlayerID `json:"id"`
	Name        string         `json:"name"`
	Level       int            `json:"level"`
	XP          int            `json:"xp"`
	NextLevelXP int            `json:"nextLevelXp"`
	HP          int            `json:"hp"`
	MaxHP       int            `json:"maxHp"`
	Attack      int            `json:"attack"`
	Defense     int            `json:"defense"`
	MoveSpeed   float64        `json:"moveSpeed"`
	X           float64        `json:"x"`
	Z           float64        `json:"z"`
	SpawnX      float64        `json:"spawnX"`
	SpawnZ      float64        `json:"spawnZ"`
	MapID       model.MapID    `json:"mapId"`
	Dead        bool           `json:"dead"`
}

func playerDTO(p model.Player) PlayerDTO {
	return PlayerDTO{
		ID:          p.ID,
		Name:        p.Name,
		Level:       p.Level,
		XP:          p.Experience,
		NextLevelXP: p.NextLevelXP,
		HP:          p.Stats.CurrentHP,
		MaxHP:       p.Stats.MaxHP,
		Attack:      p.Stats.Attack,
		Defense:     p.Stats.Defense,
		MoveSpeed:   p.Stats.MoveSpeed,
		X:           p.Position.X,
		Z:           p.Position.Z,
		SpawnX:      p.SpawnPosition.X,
		SpawnZ:      p.SpawnPosition.Z,
		MapID:       p.MapID,
		Dead:        p.IsDead(),
	}
}

// MonsterDTO is the wire form of a monster.
type MonsterDTO struct {
	ID        model.MonsterID `json:"id"`
	Name      string          `json:"name"`
	Type      model.EnemyType `json:"type"`
	HP        int             `json:"hp"`
	MaxHP     int             `json:"maxHp"`
	Attack    int             `json:"attack"`
	Defense   int             `json:"defense"`
	XPReward  int             `json:"xpReward"`
	MoveSpeed float64         `json:"moveSpeed"`
	X         float64         `json:"x"`
	Z         float64         `json:"z"`
	SpawnX    float64         `json:"spawnX"`
	SpawnZ    float64         `json:"spawnZ"`
}

func monsterDTO(m model.Monster) MonsterDTO {
	return MonsterDTO{
		ID:        m.ID,
		Name:      m.Name,
		Type:      m.Type,
		HP:        m.HP,
		MaxHP:     m.MaxHP,
		Attack:    m.Attack,
		Defense:   m.Defense,
		XPReward:  m.XPReward,
		MoveSpeed: m.MoveSpeed,
		X:         m.Position.X,
		Z:         m.Position.Z,
		SpawnX:    m.Spawn.X,
		SpawnZ:    m.Spawn.Z,
	}
}

// MonsterKilledDTO announces a kill.
type MonsterKilledDTO struct {
	ID model.MonsterID `json:"id"`
	By model.PlayerID  `json:"by"`
}

// PlayerDiedDTO announces a player death.
type PlayerDiedDTO struct {
	PlayerID model.PlayerID `json:"playerId"`
	MapID    model.MapID    `json:"mapId"`
	XPLost   int            `json:"xpLost"`
	XPAfter  int            `json:"xpAfter"`
	Level    int            `json:"level"`
}

// PlayerRespawnedDTO announces a respawn.
type PlayerRespawnedDTO struct {
	PlayerID    model.PlayerID `json:"playerId"`
	MapID       model.MapID    `json:"mapId"`
	X           float64        `json:"x"`
	Z           float64        `json:"z"`
	HP          int            `json:"hp"`
	MaxHP       int            `json:"maxHp"`
	Level       int            `json:"level"`
	XP          int            `json:"xp"`
	NextLevelXP int            `json:"nextLevelXp"`
}

func encode(msgType string, data any) ([]byte, error) {
	b, err := json.Marshal(outbound{Type: msgType, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", msgType, err)
	}
	return b, nil
}

// EncodeEvent maps a domain event to its wire message.
func EncodeEvent(e event.Event) ([]byte, error) {
	switch e.Kind {
	case event.MonsterSpawned:
		return encode(TypeMonsterSpawn, monsterDTO(e.Monster))
	case event.MonsterMoved:
		return encode(TypeMonsterMove, monsterDTO(e.Monster))
	case event.MonsterUpdated:
		return encode(TypeMonsterUpdate, monsterDTO(e.Monster))
	case event.MonsterKilled:
		return encode(TypeMonsterKilled, MonsterKilledDTO{ID: e.MonsterID, By: e.KillerID})
	case event.PlayerUpdated:
		return encode(TypePlayerUpdate, playerDTO(e.Player))
	case event.PlayerDied:
		p := e.Player
		return encode(TypePlayerDead, PlayerDiedDTO{
			PlayerID: p.ID,
			MapID:    p.MapID,
			XPLost:   e.XPLost,
			XPAfter:  p.Experience,
			Level:    p.Level,
		})
	case event.PlayerRespawned:
		p := e.Player
		return encode(TypePlayerRespawned, PlayerRespawnedDTO{
			PlayerID:    p.ID,
			MapID:       p.MapID,
			X:           p.Position.X,
			Z:           p.Position.Z,
			HP:          p.Stats.CurrentHP,
			MaxHP:       p.Stats.MaxHP,
			Level:       p.Level,
			XP:          p.Experience,
			NextLevelXP: p.NextLevelXP,
		})
	default:
		return nil, fmt.Errorf("unknown event kind %d", e.Kind)
	}
}
