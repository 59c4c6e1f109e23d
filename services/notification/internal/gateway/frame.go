package gateway

import (
	"book-notify/services/notification/internal/entity"

	"github.com/goccy/go-json"
)

const (
	FrameConnected    = "connected"
	FrameNotification = "notification"
	FramePing         = "ping"
	FramePong         = "pong"
)

// Frame is the envelope of every server-to-client websocket message.
type Frame struct {
	Type         string               `json:"type"`
	SessionID    string               `json:"session_id,omitempty"`
	UnreadCount  *int64               `json:"unread_count,omitempty"`
	Notification *entity.Notification `json:"notification,omitempty"`
}

type clientFrame struct {
	Type string `json:"type"`
}

func EncodeNotification(n *entity.Notification) ([]byte, error) {
	return json.Marshal(Frame{Type: FrameNotification, Notification: n})
}

func encodeConnected(sessionID string, unread int64) ([]byte, error) {
	return json.Marshal(Frame{Type: FrameConnected, SessionID: sessionID, UnreadCount: &unread})
}

func encodePong() ([]byte, error) {
	return json.Marshal(Frame{Type: FramePong})
}
