package models

import "time"

type NotificationType string

const (
	NotificationProjectCollaborationAdded NotificationType = "PROJECT_COLLABORATION_ADDED"
	NotificationTaskAssigned              NotificationType = "TASK_ASSIGNED"
)

// Notification is an append-only side-effect record. It never feeds back into
// domain state; failure to create one must not fail the triggering mutation.
type Notification struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	UserID    uint64           `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	TaskID    *uint64          `json:"task_id"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`

	// Relations
	User UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
