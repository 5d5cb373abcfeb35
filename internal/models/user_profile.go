package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleStaff   Role = "STAFF"
	RoleManager Role = "MANAGER"
	RoleHRAdmin Role = "HR_ADMIN"
)

type UserProfile struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName  string         `gorm:"type:varchar(100);not null" json:"display_name"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'STAFF'" json:"role"`
	DepartmentID uint64         `gorm:"not null" json:"department_id"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Department     Department       `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	OwnedTasks     []Task           `gorm:"foreignKey:OwnerID" json:"-"`
	Assignments    []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
	Collaborations []ProjectCollaborator `gorm:"foreignKey:UserID" json:"-"`
}

// IsHRAdmin reports whether the user holds the HR administrator role.
func (u *UserProfile) IsHRAdmin() bool {
	return u.Role == RoleHRAdmin
}
