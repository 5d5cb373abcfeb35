package models

import "time"

type TaskTag struct {
	TaskID    uint64    `gorm:"primarykey" json:"task_id"`
	Name      string    `gorm:"primarykey;type:varchar(50)" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
