package ws

import (
	"sync"

	"go.uber.org/zap"

	"github.com/udisondev/soulbound/internal/event"
)

// Hub tracks connected sessions and fans simulation events out to them.
// Thread-safe for concurrent access.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uint64]*Session
	log      *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		sessions: make(map[uint64]*Session, 64),
		log:      log,
	}
}

// Register adds a session.
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID()] = s
}

// Unregister removes a session.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s.ID())
}

// Count returns the number of registered sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast queues msg on every session.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.sessions {
		s.Send(msg)
	}
}

// Publish encodes each event once and broadcasts it, in order.
func (h *Hub) Publish(events []event.Event) {
	for _, e := range events {
		msg, err := EncodeEvent(e)
		if err != nil {
			h.log.Error("encoding event", zap.Stringer("kind", e.Kind), zap.Error(err))
			continue
		}
		h.Broadcast(msg)
	}
}

// CloseAll closes every session; their read loops then unregister them.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.sessions {
		s.Close()
	}
}
