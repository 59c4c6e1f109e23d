package persistent

import (
	"context"
	"testing"
	"time"

	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every pooled connection would otherwise get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.NotificationModel{}, &model.PreferenceModel{}))
	return db
}

func seedNotification(t *testing.T, repo NotificationRepository, userID, title string, createdAt time.Time) entity.Notification {
	t.Helper()
	n := &entity.Notification{
		UserID:    userID,
		Type:      entity.TypeCommentReply,
		Title:     title,
		Message:   "message for " + title,
		Link:      "/books/b1/comments/c1",
		Data:      map[string]interface{}{"book_id": "b1"},
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), n))
	return *n
}

func TestNotificationRepository_CreateAssignsIdentity(t *testing.T) {
	repo := NewNotificationRepository(setupTestDB(t))

	n := &entity.Notification{
		UserID:  "user-1",
		Type:    entity.TypeNewFollower,
		Title:   "New follower",
		Message: "Bob started following you",
	}
	require.NoError(t, repo.Create(context.Background(), n))

	assert.NotEmpty(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())

	list, total, err := repo.List(context.Background(), "user-1", entity.FilterAll, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].ID)
	assert.Empty(t, list[0].Link)
	assert.False(t, list[0].IsRead)
}

func TestNotificationRepository_ListOrderAndPagination(t *testing.T) {
	repo := NewNotificationRepository(setupTestDB(t))
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	oldest := seedNotification(t, repo, "user-1", "first", base)
	middle := seedNotification(t, repo, "user-1", "second", base.Add(time.Minute))
	newest := seedNotification(t, repo, "user-1", "third", base.Add(2*time.Minute))
	seedNotification(t, repo, "user-2", "other", base.Add(3*time.Minute))

	page1, total, err := repo.List(context.Background(), "user-1", entity.FilterAll, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page1, 2)
	assert.Equal(t, newest.ID, page1[0].ID)
	assert.Equal(t, middle.ID, page1[1].ID)
	assert.Equal(t, "b1", page1[0].Data["book_id"])

	page2, _, err := repo.List(context.Background(), "user-1", entity.FilterAll, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, oldest.ID, page2[0].ID)
}

func TestNotificationRepository_Filters(t *testing.T) {
	repo := NewNotificationRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	read := seedNotification(t, repo, "user-1", "read", base)
	unread := seedNotification(t, repo, "user-1", "unread", base.Add(time.Minute))
	require.NoError(t, repo.MarkRead(ctx, "user-1", read.ID))

	unreadList, unreadTotal, err := repo.List(ctx, "user-1", entity.FilterUnread, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unreadTotal)
	require.Len(t, unreadList, 1)
	assert.Equal(t, unread.ID, unreadList[0].ID)

	readList, readTotal, err := repo.List(ctx, "user-1", entity.FilterRead, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), readTotal)
	require.Len(t, readList, 1)
	assert.Equal(t, read.ID, readList[0].ID)
	assert.True(t, readList[0].IsRead)

	count, err := repo.CountUnread(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	repo := NewNotificationRepository(setupTestDB(t))
	ctx := context.Background()
	n := seedNotification(t, repo, "user-1", "title", time.Now().UTC())

	require.NoError(t, repo.MarkRead(ctx, "user-1", n.ID))
	require.NoError(t, repo.MarkRead(ctx, "user-1", n.ID))

	list, _, err := repo.List(ctx, "user-1", entity.FilterAll, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)
	assert.Equal(t, n.CreatedAt.Unix(), list[0].CreatedAt.Unix())
}

func TestNotificationRepository_MarkRead_NotOwnedLooksMissing(t *testing.T) {
	repo := NewNotificationRepository(setupTestDB(t))
	ctx := context.Background()
	n := seedNotification(t, repo, "user-1", "title", time.Now().UTC())

	assert.ErrorIs(t, repo.MarkRead(ctx, "user-2", n.ID), entity.ErrNotFound)
	assert.ErrorIs(t, repo.MarkRead(ctx, "user-1", "00000000-0000-0000-0000-000000000000"), entity.ErrNotFound)

	list, _, err := repo.List(ctx, "user-1", entity.FilterUnread, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	repo := NewNotificationRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Now().UTC()
	seedNotification(t, repo, "user-1", "a", base)
	seedNotification(t, repo, "user-1", "b", base.Add(time.Second))
	seedNotification(t, repo, "user-2", "c", base)

	affected, err := repo.MarkAllRead(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	count, err := repo.CountUnread(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotificationRepository_Delete(t *testing.T) {
	repo := NewNotificationRepository(setupTestDB(t))
	ctx := context.Background()
	n := seedNotification(t, repo, "user-1", "title", time.Now().UTC())

	assert.ErrorIs(t, repo.Delete(ctx, "user-2", n.ID), entity.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "user-1", n.ID))
	assert.ErrorIs(t, repo.Delete(ctx, "user-1", n.ID), entity.ErrNotFound)

	list, total, err := repo.List(ctx, "user-1", entity.FilterAll, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, list)
}

func TestNotificationRepository_DeleteAllRead(t *testing.T) {
	repo := NewNotificationRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Now().UTC()
	read := seedNotification(t, repo, "user-1", "read", base)
	unread := seedNotification(t, repo, "user-1", "unread", base.Add(time.Second))
	otherRead := seedNotification(t, repo, "user-2", "other", base)
	require.NoError(t, repo.MarkRead(ctx, "user-1", read.ID))
	require.NoError(t, repo.MarkRead(ctx, "user-2", otherRead.ID))

	removed, err := repo.DeleteAllRead(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	list, _, err := repo.List(ctx, "user-1", entity.FilterAll, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, unread.ID, list[0].ID)

	_, otherTotal, err := repo.List(ctx, "user-2", entity.FilterAll, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherTotal)
}

func TestPreferenceRepository_GetOrCreatePersistsDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	prefs, err := repo.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", prefs.UserID)
	assert.True(t, prefs.InAppEnabled)
	assert.True(t, prefs.CommentReply)
	assert.True(t, prefs.NewRating)
	assert.True(t, prefs.BookUpdate)
	assert.True(t, prefs.NewFollower)

	var count int64
	require.NoError(t, db.Model(&model.PreferenceModel{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	again, err := repo.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, prefs.UserID, again.UserID)
	require.NoError(t, db.Model(&model.PreferenceModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPreferenceRepository_Replace(t *testing.T) {
	repo := NewPreferenceRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	replaced, err := repo.Replace(ctx, entity.Preferences{
		UserID:       "user-1",
		InAppEnabled: true,
		CommentReply: false,
		NewRating:    true,
		BookUpdate:   false,
		NewFollower:  true,
	})
	require.NoError(t, err)
	assert.False(t, replaced.CommentReply)

	stored, err := repo.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, stored.InAppEnabled)
	assert.False(t, stored.CommentReply)
	assert.True(t, stored.NewRating)
	assert.False(t, stored.BookUpdate)
	assert.True(t, stored.NewFollower)
}

func TestPreferenceRepository_ReplaceWithoutExistingRow(t *testing.T) {
	repo := NewPreferenceRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.Replace(ctx, entity.Preferences{UserID: "user-9"})
	require.NoError(t, err)

	stored, err := repo.GetOrCreate(ctx, "user-9")
	require.NoError(t, err)
	assert.False(t, stored.InAppEnabled)
	assert.False(t, stored.NewFollower)
}
