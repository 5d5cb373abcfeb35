package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestNotificationCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notifications`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Create(&models.Notification{
		UserID:  42,
		Type:    models.NotificationProjectCollaborationAdded,
		Title:   "Added to project",
		Message: "You are now a collaborator on \"Website\"",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "type", "title", "message", "is_read"}).
		AddRow(2, 42, string(models.NotificationProjectCollaborationAdded), "Added to project", "msg", false).
		AddRow(1, 42, string(models.NotificationTaskAssigned), "Task assigned", "msg", true)

	mock.ExpectQuery("SELECT (.+) FROM `notifications` WHERE user_id").
		WithArgs(uint64(42)).
		WillReturnRows(rows)

	notifications, err := repo.ListByUser(42, false)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, models.NotificationProjectCollaborationAdded, notifications[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationListByUserUnreadOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "type", "title", "message", "is_read"}).
		AddRow(2, 42, string(models.NotificationProjectCollaborationAdded), "Added to project", "msg", false)

	mock.ExpectQuery("SELECT (.+) FROM `notifications` WHERE user_id = (.+) AND is_read").
		WithArgs(uint64(42), false).
		WillReturnRows(rows)

	notifications, err := repo.ListByUser(42, true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationMarkRead(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `notifications` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkRead(2, 42)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationMarkReadWrongOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `notifications` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.MarkRead(2, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
