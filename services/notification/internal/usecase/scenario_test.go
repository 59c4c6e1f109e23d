package usecase

import (
	"context"
	"sync"
	"testing"

	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/gateway"
	"book-notify/services/notification/internal/model"
	"book-notify/services/notification/internal/registry"
	"book-notify/services/notification/internal/repo/persistent"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type capturingConn struct {
	id     string
	mu     sync.Mutex
	frames [][]byte
}

func (c *capturingConn) ID() string { return c.id }

func (c *capturingConn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, payload)
	return nil
}

func (c *capturingConn) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

type deliveryStack struct {
	registry *registry.ShardedRegistry
	prefs    PreferenceUseCase
	inbox    InboxUseCase
	ingest   IngestionUseCase
}

func newDeliveryStack(t *testing.T) *deliveryStack {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.NotificationModel{}, &model.PreferenceModel{}))

	log := testLogger()
	reg := registry.New()
	prefRepo := persistent.NewPreferenceRepository(db)
	notifRepo := persistent.NewNotificationRepository(db)
	dispatcher := NewDispatcher(prefRepo, notifRepo, gateway.NewLocalPusher(reg, log), log)

	return &deliveryStack{
		registry: reg,
		prefs:    NewPreferenceUseCase(prefRepo, log),
		inbox:    NewInboxUseCase(notifRepo, log),
		ingest:   NewIngestionUseCase(dispatcher, log),
	}
}

func TestScenario_StoredAndListed(t *testing.T) {
	s := newDeliveryStack(t)
	ctx := context.Background()
	userA := uuid.NewString()

	_, err := s.prefs.Replace(ctx, entity.Preferences{UserID: userA, InAppEnabled: true, CommentReply: true})
	require.NoError(t, err)

	result, err := s.ingest.Ingest(ctx, entity.TriggerEvent{
		Type: entity.TypeCommentReply, RecipientID: userA,
		ActorName: "Bob", BookTitle: "Dune", BookID: "b1", CommentID: "c1",
	})
	require.NoError(t, err)
	assert.True(t, result.Stored)
	assert.Zero(t, result.Pushed)

	page, err := s.inbox.List(ctx, userA, 1, 10, entity.FilterAll)
	require.NoError(t, err)
	require.Len(t, page.Notifications, 1)

	n := page.Notifications[0]
	assert.Equal(t, result.NotificationID, n.ID)
	assert.Equal(t, entity.TypeCommentReply, n.Type)
	assert.Contains(t, n.Title, "Bob")
	assert.Contains(t, n.Link, "b1")
	assert.Contains(t, n.Link, "c1")
	assert.False(t, n.IsRead)
}

func TestScenario_MasterOffSuppressesEverything(t *testing.T) {
	s := newDeliveryStack(t)
	ctx := context.Background()
	userB := uuid.NewString()
	conn := &capturingConn{id: "b-conn"}
	s.registry.Register(userB, conn)

	_, err := s.prefs.Replace(ctx, entity.Preferences{
		UserID: userB, InAppEnabled: false,
		CommentReply: true, NewRating: true, BookUpdate: true, NewFollower: true,
	})
	require.NoError(t, err)

	events := []entity.TriggerEvent{
		{Type: entity.TypeCommentReply, RecipientID: userB, ActorName: "Bob", BookTitle: "Dune", BookID: "b1", CommentID: "c1"},
		{Type: entity.TypeNewRating, RecipientID: userB, ActorName: "Bob", BookTitle: "Dune", BookID: "b1", Rating: intPtr(3)},
		{Type: entity.TypeBookUpdate, RecipientID: userB, BookTitle: "Dune", BookID: "b1"},
		{Type: entity.TypeNewFollower, RecipientID: userB, ActorName: "Bob"},
	}
	for _, ev := range events {
		result, err := s.ingest.Ingest(ctx, ev)
		require.NoError(t, err)
		assert.True(t, result.Suppressed)
	}

	page, err := s.inbox.List(ctx, userB, 1, 10, entity.FilterAll)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Zero(t, conn.Frames())
}

func TestScenario_EveryConnectionReceivesOneRecord(t *testing.T) {
	s := newDeliveryStack(t)
	ctx := context.Background()
	userC := uuid.NewString()
	first := &capturingConn{id: "c-1"}
	second := &capturingConn{id: "c-2"}
	s.registry.Register(userC, first)
	s.registry.Register(userC, second)

	_, err := s.prefs.Replace(ctx, entity.Preferences{UserID: userC, InAppEnabled: true, NewRating: true})
	require.NoError(t, err)

	result, err := s.ingest.Ingest(ctx, entity.TriggerEvent{
		Type: entity.TypeNewRating, RecipientID: userC,
		ActorName: "Ann", BookTitle: "Dune", BookID: "b1", Rating: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pushed)
	assert.Equal(t, 1, first.Frames())
	assert.Equal(t, 1, second.Frames())
	assert.Contains(t, string(first.frames[0]), result.NotificationID)

	page, err := s.inbox.List(ctx, userC, 1, 10, entity.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestScenario_DroppedConnectionStillStores(t *testing.T) {
	s := newDeliveryStack(t)
	ctx := context.Background()
	userD := uuid.NewString()
	conn := &capturingConn{id: "d-1"}
	s.registry.Register(userD, conn)
	s.registry.Deregister(userD, conn)

	result, err := s.ingest.Ingest(ctx, entity.TriggerEvent{
		Type: entity.TypeNewFollower, RecipientID: userD, ActorName: "Eve",
	})
	require.NoError(t, err)
	assert.True(t, result.Stored)
	assert.Zero(t, result.Pushed)
	assert.Zero(t, conn.Frames())

	// Reconnect and read the inbox.
	s.registry.Register(userD, &capturingConn{id: "d-2"})
	page, err := s.inbox.List(ctx, userD, 1, 10, entity.FilterAll)
	require.NoError(t, err)
	require.Len(t, page.Notifications, 1)
	assert.Equal(t, result.NotificationID, page.Notifications[0].ID)
	assert.Equal(t, int64(1), page.Unread)
}
