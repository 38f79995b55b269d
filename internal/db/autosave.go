package db

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/udisondev/soulbound/internal/model"
)

// PlayerSource provides player snapshots to persist.
type PlayerSource interface {
	Players() []model.Player
}

// Autosaver periodically writes every player snapshot to the database.
type Autosaver struct {
	repo     *PlayerRepository
	source   PlayerSource
	interval time.Duration
	log      *zap.Logger
}

// NewAutosaver creates an autosave loop.
func NewAutosaver(repo *PlayerRepository, source PlayerSource, interval time.Duration, log *zap.Logger) *Autosaver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Autosaver{repo: repo, source: source, interval: interval, log: log}
}

// Start runs the autosave loop (blocks until context is canceled).
// A final flush runs on shutdown with a fresh short deadline.
func (a *Autosaver) Start(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.log.Info("autosave started", zap.Duration("interval", a.interval))

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			if err := a.Flush(flushCtx); err != nil {
				a.log.Error("final autosave failed", zap.Error(err))
			}
			cancel()
			a.log.Info("autosave stopped")
			return ctx.Err()

		case <-ticker.C:
			if err := a.Flush(ctx); err != nil {
				a.log.Error("autosave failed", zap.Error(err))
			}
		}
	}
}

// Flush saves every player now.
func (a *Autosaver) Flush(ctx context.Context) error {
	players := a.source.Players()
	if err := a.repo.SaveAll(ctx, players); err != nil {
		return err
	}
	a.log.Debug("players saved", zap.Int("count", len(players)))
	return nil
}
