package sim

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/udisondev/soulbound/internal/event"
)

// Publisher receives the events produced by a tick.
type Publisher interface {
	Publish(events []event.Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(events []event.Event)

func (f PublisherFunc) Publish(events []event.Event) { f(events) }

// Loop calls a tick function at a fixed interval and publishes what it returns.
type Loop struct {
	name     string
	interval time.Duration
	tick     func() []event.Event
	pub      Publisher
	log      *zap.Logger
}

// NewLoop creates a tick loop. Typical ticks are Simulation.WorldTick and
// Simulation.SpawnTick.
func NewLoop(name string, interval time.Duration, tick func() []event.Event, pub Publisher, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{name: name, interval: interval, tick: tick, pub: pub, log: log}
}

// Start runs the loop (blocks until context is canceled).
func (l *Loop) Start(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.log.Info("tick loop started", zap.String("loop", l.name), zap.Duration("interval", l.interval))

	for {
		select {
		case <-ctx.Done():
			l.log.Info("tick loop stopping", zap.String("loop", l.name))
			return ctx.Err()

		case <-ticker.C:
			if events := l.tick(); len(events) > 0 {
				l.pub.Publish(events)
			}
		}
	}
}
