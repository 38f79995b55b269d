// Package ws is the websocket transport: it decodes client commands into
// simulation calls and broadcasts the resulting events to every session.
package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/udisondev/soulbound/internal/event"
	"github.com/udisondev/soulbound/internal/model"
)

const maxMessageSize = 4096

// Game is the part of the simulation the transport drives.
type Game interface {
	Join(id model.PlayerID, name string) (model.Player, []model.Monster)
	Disconnect(id model.PlayerID) (model.Player, bool)
	UpdatePosition(id model.PlayerID, x, z float64)
	Attack(id model.PlayerID, fx, fz float64, target *model.MonsterID) []event.Event
	Respawn(id model.PlayerID) []event.Event
}

// HandlerConfig tunes sessions created by a Handler.
type HandlerConfig struct {
	SendQueueSize int
	WriteTimeout  time.Duration
	ReadTimeout   time.Duration
	// OnDisconnect receives the last snapshot of a joined player whose
	// session closed. Optional.
	OnDisconnect func(model.Player)
	Logger       *zap.Logger
}

// Handler upgrades HTTP requests and runs one read loop per connection.
type Handler struct {
	game     Game
	hub      *Hub
	cfg      HandlerConfig
	log      *zap.Logger
	upgrader websocket.Upgrader
	nextID   atomic.Uint64
}

// NewHandler creates a handler publishing through hub.
func NewHandler(game Game, hub *Hub, cfg HandlerConfig) *Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	return &Handler{
		game: game,
		hub:  hub,
		cfg:  cfg,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}

	s := newSession(h.nextID.Add(1), conn, h.cfg.SendQueueSize, h.cfg.WriteTimeout, h.log)
	h.hub.Register(s)
	go s.writePump()
	h.log.Info("ws connected", zap.Uint64("session", s.ID()), zap.String("remote", r.RemoteAddr))

	defer h.closeSession(s)
	h.readLoop(s)
}

func (h *Handler) readLoop(s *Session) {
	s.conn.SetReadLimit(maxMessageSize)
	for {
		if err := s.conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout)); err != nil {
			return
		}
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("read failed", zap.Error(err))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			s.log.Debug("discarding malformed message", zap.Error(err))
			continue
		}
		h.dispatch(s, env)
	}
}

func (h *Handler) dispatch(s *Session, env Envelope) {
	if env.Type == TypeJoin {
		h.handleJoin(s, env.Data)
		return
	}

	playerID := s.PlayerID()
	if playerID == "" {
		return
	}

	switch env.Type {
	case TypeAttack:
		var req AttackRequest
		if len(env.Data) > 0 && json.Unmarshal(env.Data, &req) != nil {
			req = AttackRequest{}
		}
		fx, fz := req.Facing()
		h.hub.Publish(h.game.Attack(playerID, fx, fz, req.MonsterID))

	case TypePos:
		var req PosRequest
		if err := json.Unmarshal(env.Data, &req); err != nil || req.X == nil || req.Z == nil {
			return
		}
		h.game.UpdatePosition(playerID, *req.X, *req.Z)

	case TypeRespawn:
		h.hub.Publish(h.game.Respawn(playerID))

	default:
		s.log.Debug("unknown message type", zap.String("type", env.Type))
	}
}

func (h *Handler) handleJoin(s *Session, data json.RawMessage) {
	name := DefaultPlayerName
	var raw string
	if len(data) > 0 && json.Unmarshal(data, &raw) == nil && strings.TrimSpace(raw) != "" {
		name = strings.TrimSpace(raw)
	}
	id := model.PlayerID(strings.ToLower(name))

	if previous := s.bind(id); previous != "" && previous != id {
		h.release(previous)
	}

	p, monsters := h.game.Join(id, name)

	ack, err := encode(TypeJoinAck, playerDTO(p))
	if err != nil {
		s.log.Error("encoding join ack", zap.Error(err))
		return
	}
	s.Send(ack)
	for _, m := range monsters {
		msg, err := encode(TypeMonsterSpawn, monsterDTO(m))
		if err != nil {
			s.log.Error("encoding monster", zap.Int64("monster", int64(m.ID)), zap.Error(err))
			continue
		}
		s.Send(msg)
	}
	s.log.Info("player joined", zap.String("player", string(id)), zap.Int("monsters", len(monsters)))
}

func (h *Handler) closeSession(s *Session) {
	h.hub.Unregister(s)
	s.Close()
	if id := s.PlayerID(); id != "" {
		h.release(id)
	}
	h.log.Info("ws disconnected", zap.Uint64("session", s.ID()))
}

func (h *Handler) release(id model.PlayerID) {
	p, ok := h.game.Disconnect(id)
	if ok && h.cfg.OnDisconnect != nil {
		h.cfg.OnDisconnect(p)
	}
}
