package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskAssignment struct {
	TaskID       uint64         `gorm:"primarykey" json:"task_id"`
	UserID       uint64         `gorm:"primarykey" json:"user_id"`
	AssignedByID uint64         `gorm:"not null" json:"assigned_by_id"`
	AssignedAt   time.Time      `json:"assigned_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task       Task        `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User       UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssignedBy UserProfile `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
}
