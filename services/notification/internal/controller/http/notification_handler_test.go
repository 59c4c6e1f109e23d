package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"book-notify/services/notification/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func inboxRouter(uc *mockInboxUseCase, userID string) *gin.Engine {
	handler := NewNotificationHandler(uc, testLogger())
	router := setupTestRouter()
	router.Use(asUser(userID))
	for _, prefix := range []string{"/notifications", "/users/:user_id/notifications"} {
		g := router.Group(prefix)
		g.GET("", handler.GetNotifications)
		g.GET("/unread-count", handler.GetUnreadCount)
		g.PUT("/read-all", handler.MarkAllRead)
		g.PUT("/:id/read", handler.MarkRead)
		g.DELETE("/read", handler.DeleteReadNotifications)
		g.DELETE("/:id", handler.DeleteNotification)
	}
	return router
}

func TestGetNotifications_Unauthorized(t *testing.T) {
	router := inboxRouter(new(mockInboxUseCase), "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["error"], "Unauthorized")
}

func TestGetNotifications_Success(t *testing.T) {
	uc := new(mockInboxUseCase)
	uc.On("List", mock.Anything, "user-1", 2, 5, entity.FilterUnread).Return(&entity.NotificationPage{
		Notifications: []entity.Notification{{ID: "n-1", UserID: "user-1", Title: "New follower"}},
		Page:          2,
		PageSize:      5,
		Total:         6,
		Unread:        6,
	}, nil)
	router := inboxRouter(uc, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications?page=2&page_size=5&filter=unread", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var page entity.NotificationPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(6), page.Total)
	require.Len(t, page.Notifications, 1)
	assert.Equal(t, "n-1", page.Notifications[0].ID)
}

func TestGetNotifications_DefaultsAndBadFilter(t *testing.T) {
	uc := new(mockInboxUseCase)
	uc.On("List", mock.Anything, "user-1", 1, 20, entity.FilterAll).Return(&entity.NotificationPage{Page: 1, PageSize: 20}, nil)
	router := inboxRouter(uc, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications?page=abc", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/notifications?filter=archived", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	uc.AssertNumberOfCalls(t, "List", 1)
}

func TestGetNotifications_OtherUsersInboxForbidden(t *testing.T) {
	uc := new(mockInboxUseCase)
	router := inboxRouter(uc, "user-1")

	for _, tc := range []struct{ method, path string }{
		{"GET", "/users/user-2/notifications"},
		{"GET", "/users/user-2/notifications/unread-count"},
		{"PUT", "/users/user-2/notifications/read-all"},
		{"PUT", "/users/user-2/notifications/n-1/read"},
		{"DELETE", "/users/user-2/notifications/n-1"},
		{"DELETE", "/users/user-2/notifications/read"},
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(tc.method, tc.path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tc.method, tc.path)
	}

	uc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetNotifications_OwnInboxByUserPath(t *testing.T) {
	uc := new(mockInboxUseCase)
	uc.On("UnreadCount", mock.Anything, "user-1").Return(int64(4), nil)
	router := inboxRouter(uc, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/user-1/notifications/unread-count", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unread":4}`, w.Body.String())
}

func TestMarkRead(t *testing.T) {
	uc := new(mockInboxUseCase)
	uc.On("MarkRead", mock.Anything, "user-1", "n-1").Return(nil)
	uc.On("MarkRead", mock.Anything, "user-1", "n-404").Return(entity.ErrNotFound)
	router := inboxRouter(uc, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/notifications/n-1/read", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("PUT", "/notifications/n-404/read", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkAllRead(t *testing.T) {
	uc := new(mockInboxUseCase)
	uc.On("MarkAllRead", mock.Anything, "user-1").Return(int64(3), nil)
	router := inboxRouter(uc, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/notifications/read-all", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(3), response["updated"])
}

func TestDeleteNotification(t *testing.T) {
	uc := new(mockInboxUseCase)
	uc.On("Delete", mock.Anything, "user-1", "n-1").Return(nil)
	uc.On("DeleteAllRead", mock.Anything, "user-1").Return(int64(2), nil)
	router := inboxRouter(uc, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/notifications/n-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/notifications/read", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertCalled(t, "DeleteAllRead", mock.Anything, "user-1")
	uc.AssertNotCalled(t, "Delete", mock.Anything, "user-1", "read")
}

func TestInbox_StorageFailureHidesCause(t *testing.T) {
	uc := new(mockInboxUseCase)
	uc.On("UnreadCount", mock.Anything, "user-1").Return(int64(0), entity.ErrStorage)
	router := inboxRouter(uc, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications/unread-count", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "storage")
}
