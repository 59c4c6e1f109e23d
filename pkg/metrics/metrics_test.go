package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLivePushesCounter(t *testing.T) {
	before := testutil.ToFloat64(LivePushes.WithLabelValues("sent"))

	LivePushes.WithLabelValues("sent").Inc()
	LivePushes.WithLabelValues("sent").Inc()

	assert.Equal(t, before+2, testutil.ToFloat64(LivePushes.WithLabelValues("sent")))
}

func TestActiveConnectionsGauge(t *testing.T) {
	ActiveConnections.Set(0)
	ActiveConnections.Inc()
	ActiveConnections.Inc()
	ActiveConnections.Dec()

	assert.Equal(t, float64(1), testutil.ToFloat64(ActiveConnections))
}

func TestNotificationsDispatchedLabels(t *testing.T) {
	NotificationsDispatched.WithLabelValues("comment_reply", "stored").Inc()

	assert.GreaterOrEqual(t, testutil.ToFloat64(NotificationsDispatched.WithLabelValues("comment_reply", "stored")), float64(1))
}
