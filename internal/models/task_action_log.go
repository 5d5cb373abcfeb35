package models

import "time"

type TaskAction string

const (
	TaskActionCreated         TaskAction = "CREATED"
	TaskActionUpdated         TaskAction = "UPDATED"
	TaskActionStatusChanged   TaskAction = "STATUS_CHANGED"
	TaskActionAssigneeAdded   TaskAction = "ASSIGNEE_ADDED"
	TaskActionAssigneeRemoved TaskAction = "ASSIGNEE_REMOVED"
	TaskActionProjectLinked   TaskAction = "PROJECT_LINKED"
	TaskActionArchived        TaskAction = "ARCHIVED"
	TaskActionUnarchived      TaskAction = "UNARCHIVED"
	TaskActionDeleted         TaskAction = "DELETED"
)

type TaskActionLog struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	TaskID    uint64     `gorm:"not null;index" json:"task_id"`
	ActorID   uint64     `gorm:"not null" json:"actor_id"`
	Action    TaskAction `gorm:"type:varchar(30);not null" json:"action"`
	Detail    string     `gorm:"type:text" json:"detail"`
	CreatedAt time.Time  `json:"created_at"`
}
