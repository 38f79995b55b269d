package ws

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/udisondev/soulbound/internal/model"
)

// Default write queue / timeout constants.
// Overridden by config values when available.
const (
	defaultSendQueueSize = 256
	defaultWriteTimeout  = 5 * time.Second
	defaultReadTimeout   = 120 * time.Second
)

// Session is one websocket connection. Writes go through a bounded queue
// drained by writePump; the read loop lives in Handler.
type Session struct {
	id   uint64
	conn *websocket.Conn
	log  *zap.Logger

	mu       sync.Mutex
	playerID model.PlayerID

	sendCh    chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once
	dropped   atomic.Int64

	writeTimeout time.Duration
}

func newSession(id uint64, conn *websocket.Conn, sendQueueSize int, writeTimeout time.Duration, log *zap.Logger) *Session {
	if sendQueueSize <= 0 {
		sendQueueSize = defaultSendQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &Session{
		id:           id,
		conn:         conn,
		log:          log.With(zap.Uint64("session", id)),
		sendCh:       make(chan []byte, sendQueueSize),
		closeCh:      make(chan struct{}),
		writeTimeout: writeTimeout,
	}
}

// ID returns the process-unique session id.
func (s *Session) ID() uint64 { return s.id }

// PlayerID returns the player bound by join, or "" before that.
func (s *Session) PlayerID() model.PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

func (s *Session) bind(id model.PlayerID) (previous model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous = s.playerID
	s.playerID = id
	return previous
}

// Dropped returns how many messages were discarded on a full queue.
func (s *Session) Dropped() int64 { return s.dropped.Load() }

// Send queues a message without blocking. A full queue drops the message
// for this session only.
func (s *Session) Send(msg []byte) bool {
	select {
	case <-s.closeCh:
		return false
	default:
	}
	select {
	case s.sendCh <- msg:
		return true
	default:
		if s.dropped.Add(1) == 1 {
			s.log.Warn("send queue full, dropping messages")
		}
		return false
	}
}

// writePump is the only goroutine writing to conn.
func (s *Session) writePump() {
	for {
		select {
		case msg := <-s.sendCh:
			if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
				s.log.Warn("set write deadline failed", zap.Error(err))
				s.Close()
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.log.Debug("write failed", zap.Error(err))
				s.Close()
				return
			}
		case <-s.closeCh:
			return
		}
	}
}

// Close stops the writer and closes the connection. Safe to call multiple times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
		_ = s.conn.Close()
	})
}
