package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectCollaborator is derived membership: a row exists exactly while the
// user holds at least one task assignment inside the project. The assignment
// set is the source of truth; this table is maintained by the collaborator
// service at every assignment mutation.
type ProjectCollaborator struct {
	ProjectID    uint64         `gorm:"primarykey" json:"project_id"`
	UserID       uint64         `gorm:"primarykey" json:"user_id"`
	DepartmentID uint64         `gorm:"not null" json:"department_id"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
