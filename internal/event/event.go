// Package event defines the domain events produced by the simulation.
// The transport maps each kind to a wire message independently.
package event

import "github.com/udisondev/soulbound/internal/model"

// Kind tags the variant carried by an Event.
type Kind uint8

const (
	MonsterSpawned Kind = iota + 1
	MonsterMoved
	MonsterUpdated
	MonsterKilled
	PlayerUpdated
	PlayerDied
	PlayerRespawned
)

var kindNames = map[Kind]string{
	MonsterSpawned:  "MonsterSpawned",
	MonsterMoved:    "MonsterMoved",
	MonsterUpdated:  "MonsterUpdated",
	MonsterKilled:   "MonsterKilled",
	PlayerUpdated:   "PlayerUpdated",
	PlayerDied:      "PlayerDied",
	PlayerRespawned: "PlayerRespawned",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Event is a tagged variant. Which fields are set depends on Kind:
//
//	MonsterSpawned, MonsterMoved, MonsterUpdated: Monster
//	MonsterKilled:                                MonsterID, KillerID
//	PlayerUpdated, PlayerRespawned:               Player (post-state snapshot)
//	PlayerDied:                                   Player, XPLost
type Event struct {
	Kind      Kind
	Monster   model.Monster
	MonsterID model.MonsterID
	KillerID  model.PlayerID
	Player    model.Player
	XPLost    int
}

func NewMonsterSpawned(m model.Monster) Event {
	return Event{Kind: MonsterSpawned, Monster: m}
}

func NewMonsterMoved(m model.Monster) Event {
	return Event{Kind: MonsterMoved, Monster: m}
}

func NewMonsterUpdated(m model.Monster) Event {
	return Event{Kind: MonsterUpdated, Monster: m}
}

func NewMonsterKilled(id model.MonsterID, killer model.PlayerID) Event {
	return Event{Kind: MonsterKilled, MonsterID: id, KillerID: killer}
}

func NewPlayerUpdated(p model.Player) Event {
	return Event{Kind: PlayerUpdated, Player: p}
}

// NewPlayerDied carries the post-death snapshot: Player.Experience is the
// XP left after the penalty.
func NewPlayerDied(p model.Player, xpLost int) Event {
	return Event{Kind: PlayerDied, Player: p, XPLost: xpLost}
}

func NewPlayerRespawned(p model.Player) Event {
	return Event{Kind: PlayerRespawned, Player: p}
}
