package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TO_DO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

type Task struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	Title             string         `gorm:"not null" json:"title"`
	Description       string         `gorm:"type:text;not null" json:"description"`
	Priority          int            `gorm:"not null;default:5" json:"priority"`
	Status            TaskStatus     `gorm:"type:varchar(20);not null;default:'TO_DO'" json:"status"`
	DueDate           *time.Time     `json:"due_date"`
	StartDate         *time.Time     `json:"start_date"`
	OwnerID           uint64         `gorm:"not null" json:"owner_id"`
	DepartmentID      uint64         `gorm:"not null" json:"department_id"`
	ProjectID         *uint64        `gorm:"index" json:"project_id"`
	ParentTaskID      *uint64        `gorm:"index" json:"parent_task_id"`
	IsRecurring       bool           `gorm:"not null;default:false" json:"is_recurring"`
	RecurringInterval *int           `json:"recurring_interval"`
	IsArchived        bool           `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner       UserProfile      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Department  Department       `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Project     *Project         `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	ParentTask  *Task            `gorm:"foreignKey:ParentTaskID" json:"parent_task,omitempty"`
	Subtasks    []Task           `gorm:"foreignKey:ParentTaskID" json:"subtasks,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
	Tags        []TaskTag        `gorm:"foreignKey:TaskID" json:"tags,omitempty"`
	Comments    []TaskComment    `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

// AssigneeIDs returns the user IDs of the preloaded assignment set.
func (t *Task) AssigneeIDs() []uint64 {
	ids := make([]uint64, 0, len(t.Assignments))
	for _, a := range t.Assignments {
		ids = append(ids, a.UserID)
	}
	return ids
}

// IsAssignedTo reports whether the preloaded assignment set contains the user.
func (t *Task) IsAssignedTo(userID uint64) bool {
	for _, a := range t.Assignments {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
