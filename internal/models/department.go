package models

import (
	"time"

	"gorm.io/gorm"
)

type Department struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(200);not null" json:"name"`
	ParentID  *uint64        `gorm:"index" json:"parent_id"`
	JoinCode  string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"-"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Parent   *Department   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Department  `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Members  []UserProfile `gorm:"foreignKey:DepartmentID" json:"members,omitempty"`
	Projects []Project     `gorm:"foreignKey:DepartmentID" json:"projects,omitempty"`
}
