package usecase

import (
	"context"
	"io"
	"sync"

	"book-notify/pkg/logger"
	"book-notify/services/notification/internal/entity"

	"github.com/stretchr/testify/mock"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationRepo) List(ctx context.Context, userID string, filter entity.ReadFilter, limit, offset int) ([]entity.Notification, int64, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	notifications, _ := args.Get(0).([]entity.Notification)
	return notifications, args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *mockNotificationRepo) DeleteAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockPreferenceRepo struct {
	mock.Mock
}

func (m *mockPreferenceRepo) GetOrCreate(ctx context.Context, userID string) (entity.Preferences, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(entity.Preferences), args.Error(1)
}

func (m *mockPreferenceRepo) Replace(ctx context.Context, prefs entity.Preferences) (entity.Preferences, error) {
	args := m.Called(ctx, prefs)
	return args.Get(0).(entity.Preferences), args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, n *entity.Notification) (DispatchResult, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(DispatchResult), args.Error(1)
}

// recordingPusher remembers every notification it was asked to push.
type recordingPusher struct {
	mu     sync.Mutex
	pushed []*entity.Notification
	result int
}

func (p *recordingPusher) Push(_ context.Context, n *entity.Notification) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed = append(p.pushed, n)
	return p.result
}

func (p *recordingPusher) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pushed)
}

func testLogger() *logger.Logger {
	return logger.NewWithConfig("error", "json", io.Discard)
}
