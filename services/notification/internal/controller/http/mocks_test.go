package http

import (
	"context"
	"io"

	"book-notify/pkg/logger"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type mockInboxUseCase struct {
	mock.Mock
}

func (m *mockInboxUseCase) List(ctx context.Context, userID string, page, pageSize int, filter entity.ReadFilter) (*entity.NotificationPage, error) {
	args := m.Called(ctx, userID, page, pageSize, filter)
	result, _ := args.Get(0).(*entity.NotificationPage)
	return result, args.Error(1)
}

func (m *mockInboxUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInboxUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *mockInboxUseCase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInboxUseCase) Delete(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *mockInboxUseCase) DeleteAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockPreferenceUseCase struct {
	mock.Mock
}

func (m *mockPreferenceUseCase) Get(ctx context.Context, userID string) (entity.Preferences, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(entity.Preferences), args.Error(1)
}

func (m *mockPreferenceUseCase) Replace(ctx context.Context, prefs entity.Preferences) (entity.Preferences, error) {
	args := m.Called(ctx, prefs)
	return args.Get(0).(entity.Preferences), args.Error(1)
}

type mockIngestionUseCase struct {
	mock.Mock
}

func (m *mockIngestionUseCase) Normalize(event entity.TriggerEvent) (*entity.Notification, error) {
	args := m.Called(event)
	n, _ := args.Get(0).(*entity.Notification)
	return n, args.Error(1)
}

func (m *mockIngestionUseCase) Ingest(ctx context.Context, event entity.TriggerEvent) (usecase.DispatchResult, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(usecase.DispatchResult), args.Error(1)
}

func testLogger() *logger.Logger {
	return logger.NewWithConfig("error", "json", io.Discard)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for the JWT middleware.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
