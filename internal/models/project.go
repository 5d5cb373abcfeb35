package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
)

type Project struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Priority     int            `gorm:"not null;default:5" json:"priority"`
	Status       ProjectStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	DepartmentID uint64         `gorm:"not null" json:"department_id"`
	CreatorID    uint64         `gorm:"not null" json:"creator_id"`
	IsArchived   bool           `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Department    Department            `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Creator       UserProfile           `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Tasks         []Task                `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Collaborators []ProjectCollaborator `gorm:"foreignKey:ProjectID" json:"collaborators,omitempty"`
}
