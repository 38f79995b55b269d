package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/soulbound/internal/model"
)

const playerColumns = `player_id, name, map_id, x, z, spawn_x, spawn_z,
	level, experience, next_level_xp,
	max_hp, current_hp, attack, defense, move_speed, dead`

const upsertPlayer = `
	INSERT INTO players (` + playerColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (player_id) DO UPDATE SET
		name = EXCLUDED.name,
		map_id = EXCLUDED.map_id,
		x = EXCLUDED.x,
		z = EXCLUDED.z,
		spawn_x = EXCLUDED.spawn_x,
		spawn_z = EXCLUDED.spawn_z,
		level = EXCLUDED.level,
		experience = EXCLUDED.experience,
		next_level_xp = EXCLUDED.next_level_xp,
		max_hp = EXCLUDED.max_hp,
		current_hp = EXCLUDED.current_hp,
		attack = EXCLUDED.attack,
		defense = EXCLUDED.defense,
		move_speed = EXCLUDED.move_speed,
		dead = EXCLUDED.dead,
		updated_at = NOW()`

// PlayerRepository stores player records in the players table.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// FindByID loads a player by ID.
// Returns nil if the player does not exist (not an error).
func (r *PlayerRepository) FindByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE player_id = $1`, string(id))
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading player %q: %w", id, err)
	}
	return &p, nil
}

// FindAll loads every stored player.
func (r *PlayerRepository) FindAll(ctx context.Context) ([]model.Player, error) {
	rows, err := r.db.Query(ctx, `SELECT `+playerColumns+` FROM players ORDER BY player_id`)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating players: %w", err)
	}
	return players, nil
}

// Save inserts or updates a player.
func (r *PlayerRepository) Save(ctx context.Context, p model.Player) error {
	if _, err := r.db.Exec(ctx, upsertPlayer, playerArgs(p)...); err != nil {
		return fmt.Errorf("saving player %q: %w", p.ID, err)
	}
	return nil
}

// SaveAll upserts players in one batch inside a transaction.
func (r *PlayerRepository) SaveAll(ctx context.Context, players []model.Player) error {
	if len(players) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(upsertPlayer, playerArgs(p)...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving %d players: %w", len(players), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit players: %w", err)
	}
	return nil
}

// Delete removes a player. Unknown IDs are not an error.
func (r *PlayerRepository) Delete(ctx context.Context, id model.PlayerID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM players WHERE player_id = $1`, string(id)); err != nil {
		return fmt.Errorf("deleting player %q: %w", id, err)
	}
	return nil
}

func playerArgs(p model.Player) []any {
	return []any{
		string(p.ID), p.Name, string(p.MapID),
		p.Position.X, p.Position.Z, p.SpawnPosition.X, p.SpawnPosition.Z,
		p.Level, p.Experience, p.NextLevelXP,
		p.Stats.MaxHP, p.Stats.CurrentHP, p.Stats.Attack, p.Stats.Defense, p.Stats.MoveSpeed,
		p.IsDead(),
	}
}

func scanPlayer(row pgx.Row) (model.Player, error) {
	var (
		p     model.Player
		id    string
		mapID string
	)
	err := row.Scan(
		&id, &p.Name, &mapID,
		&p.Position.X, &p.Position.Z, &p.SpawnPosition.X, &p.SpawnPosition.Z,
		&p.Level, &p.Experience, &p.NextLevelXP,
		&p.Stats.MaxHP, &p.Stats.CurrentHP, &p.Stats.Attack, &p.Stats.Defense, &p.Stats.MoveSpeed,
		&p.Dead,
	)
	if err != nil {
		return model.Player{}, err
	}
	p.ID = model.PlayerID(id)
	p.MapID = model.MapID(mapID)
	// dead follows hp, whatever the stored flag says
	p.Dead = p.Stats.CurrentHP <= 0
	return p, nil
}
