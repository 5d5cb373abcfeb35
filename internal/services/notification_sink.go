package services

import (
	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/aokumo/dept-task-api/internal/repository"
)

// NotificationSink receives notification records emitted by domain events.
// It is injected so tests can substitute a recording implementation. Sinks
// are best-effort: a failing sink is logged by the caller and never rolls
// back the mutation that triggered it.
type NotificationSink interface {
	Notify(notification *models.Notification) error
}

type repositoryNotificationSink struct {
	repo repository.NotificationRepository
}

// NewRepositoryNotificationSink returns a sink that persists notifications.
func NewRepositoryNotificationSink(repo repository.NotificationRepository) NotificationSink {
	return &repositoryNotificationSink{repo: repo}
}

func (s *repositoryNotificationSink) Notify(notification *models.Notification) error {
	return s.repo.Create(notification)
}
