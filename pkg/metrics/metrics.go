package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Live connections currently held by this process.
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notify_ws_active_connections",
			Help: "Current number of registered live websocket connections",
		},
	)

	ConnectionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_ws_connections_rejected_total",
			Help: "Total number of live connection attempts rejected before registration",
		},
		[]string{"reason"}, // "missing_token", "invalid_token", "upgrade_failed"
	)

	// Dispatch outcome per notification type.
	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_notifications_dispatched_total",
			Help: "Total number of notifications processed by the dispatcher",
		},
		[]string{"type", "outcome"}, // "stored", "suppressed", "failed"
	)

	LivePushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_live_pushes_total",
			Help: "Total number of live push attempts per result",
		},
		[]string{"result"}, // "sent", "dropped", "relayed", "relay_failed"
	)

	TriggersRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_triggers_rejected_total",
			Help: "Total number of trigger events rejected by validation",
		},
		[]string{"source"}, // "http", "queue"
	)
)
