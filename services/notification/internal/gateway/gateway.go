package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"book-notify/pkg/config"
	"book-notify/pkg/logger"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/registry"

	"github.com/gorilla/websocket"
)

const (
	defaultSendBuffer = 64
	defaultWriteWait  = 10 * time.Second
	defaultPongWait   = 60 * time.Second
	defaultReadLimit  = 4096
)

// Authenticator resolves a connection credential to a user id.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// UnreadCounter supplies the unread count sent in the connected frame.
type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type Options struct {
	SendBuffer int
	WriteWait  time.Duration
	PongWait   time.Duration
	ReadLimit  int64
}

func DefaultOptions() Options {
	return Options{
		SendBuffer: defaultSendBuffer,
		WriteWait:  defaultWriteWait,
		PongWait:   defaultPongWait,
		ReadLimit:  defaultReadLimit,
	}
}

func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg.WSSendBuffer > 0 {
		opts.SendBuffer = cfg.WSSendBuffer
	}
	if cfg.WSWriteWait > 0 {
		opts.WriteWait = cfg.WSWriteWait
	}
	if cfg.WSPongWait > 0 {
		opts.PongWait = cfg.WSPongWait
	}
	return opts
}

// PingPeriod must stay below PongWait so a healthy peer never times out.
func (o Options) PingPeriod() time.Duration {
	return (o.PongWait * 9) / 10
}

// Gateway owns the live sessions of this process.
type Gateway struct {
	auth     Authenticator
	registry registry.Registry
	unread   UnreadCounter
	opts     Options
	logger   *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

func New(auth Authenticator, reg registry.Registry, unread UnreadCounter, opts Options, log *logger.Logger) *Gateway {
	return &Gateway{
		auth:     auth,
		registry: reg,
		unread:   unread,
		opts:     opts,
		logger:   log,
		sessions: make(map[string]*Session),
	}
}

// Authenticate verifies a credential before the protocol upgrade.
func (g *Gateway) Authenticate(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing token", entity.ErrUnauthorized)
	}
	userID, err := g.auth.Authenticate(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrUnauthorized, err)
	}
	if userID == "" {
		return "", fmt.Errorf("%w: token has no subject", entity.ErrUnauthorized)
	}
	return userID, nil
}

// Serve registers an upgraded connection for userID and blocks until the
// session disconnects.
func (g *Gateway) Serve(ctx context.Context, userID string, conn *websocket.Conn) {
	session := newSession(userID, conn, g.registry, g.opts, g.logger)
	session.onClose = g.forget

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		session.Close()
		return
	}
	g.sessions[session.id] = session
	g.mu.Unlock()

	if !session.register() {
		return
	}
	g.logger.Info("[WS] User %s connected, session %s", userID, session.id)

	var unread int64
	if g.unread != nil {
		count, err := g.unread.UnreadCount(ctx, userID)
		if err != nil {
			g.logger.Warn("[WS] Failed to load unread count for user %s: %v", userID, err)
		} else {
			unread = count
		}
	}
	if frame, err := encodeConnected(session.id, unread); err == nil {
		_ = session.Send(frame)
	}

	go session.writePump()
	session.readPump()
}

func (g *Gateway) forget(s *Session) {
	g.mu.Lock()
	delete(g.sessions, s.id)
	g.mu.Unlock()
}

func (g *Gateway) SessionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sessions)
}

// Shutdown disconnects every session and refuses new ones.
func (g *Gateway) Shutdown() {
	g.mu.Lock()
	g.closed = true
	sessions := make([]*Session, 0, len(g.sessions))
	for _, s := range g.sessions {
		sessions = append(sessions, s)
	}
	g.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	g.logger.Info("[WS] Gateway shut down, closed %d sessions", len(sessions))
}
