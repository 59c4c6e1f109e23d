package gateway

import (
	"errors"
	"sync"
	"time"

	"book-notify/pkg/logger"
	"book-notify/pkg/metrics"
	"book-notify/services/notification/internal/registry"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	ErrSessionClosed = errors.New("session closed")
	ErrSendQueueFull = errors.New("session send queue full")
)

// State is the lifecycle position of a live session.
type State int

const (
	StateUnauthenticated State = iota
	StateRegistered
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateRegistered:
		return "registered"
	case StateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Session is one authenticated websocket connection. It implements
// registry.Conn; frames handed to Send are written by a single writer goroutine.
type Session struct {
	id     string
	userID string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}

	registry registry.Registry
	opts     Options
	logger   *logger.Logger
	onClose  func(*Session)

	mu    sync.Mutex
	state State
}

func newSession(userID string, conn *websocket.Conn, reg registry.Registry, opts Options, log *logger.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:       id,
		userID:   userID,
		conn:     conn,
		send:     make(chan []byte, opts.SendBuffer),
		done:     make(chan struct{}),
		registry: reg,
		opts:     opts,
		logger:   log.With("session_id", id),
		state:    StateUnauthenticated,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Send queues a frame without blocking. A session whose queue is full is
// closed rather than left behind with a gap in its stream.
func (s *Session) Send(payload []byte) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.send <- payload:
		return nil
	default:
		s.logger.Warn("[WS] Send queue full for user %s, closing session", s.userID)
		s.Close()
		return ErrSendQueueFull
	}
}

// register moves the session into the registry. It fails if the session was
// closed before it got there.
func (s *Session) register() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnauthenticated {
		return false
	}
	s.registry.Register(s.userID, s)
	s.state = StateRegistered
	metrics.ActiveConnections.Inc()
	return true
}

// Close deregisters the session and releases the socket. Safe to call any
// number of times from any goroutine.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateDisconnected {
		s.mu.Unlock()
		return
	}
	wasRegistered := s.state == StateRegistered
	s.state = StateDisconnected
	close(s.done)
	if wasRegistered {
		s.registry.Deregister(s.userID, s)
		metrics.ActiveConnections.Dec()
	}
	s.mu.Unlock()

	_ = s.conn.Close()
	if s.onClose != nil {
		s.onClose(s)
	}
	s.logger.Info("[WS] Session closed for user %s", s.userID)
}

// Done is closed once the session has disconnected.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) readPump() {
	defer s.Close()

	s.conn.SetReadLimit(s.opts.ReadLimit)
	if err := s.conn.SetReadDeadline(time.Now().Add(s.opts.PongWait)); err != nil {
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.opts.PongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Warn("[WS] Unexpected close for user %s: %v", s.userID, err)
			}
			return
		}

		var msg clientFrame
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Debug("[WS] Ignoring malformed frame from user %s", s.userID)
			continue
		}

		if msg.Type == FramePing {
			pong, err := encodePong()
			if err != nil {
				continue
			}
			if err := s.Send(pong); err != nil {
				return
			}
		}
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(s.opts.PingPeriod())
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case payload := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.logger.Warn("[WS] Write failed for user %s: %v", s.userID, err)
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.done:
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(s.opts.WriteWait))
			return
		}
	}
}
