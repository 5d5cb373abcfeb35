package dto

import (
	"time"

	"github.com/aokumo/dept-task-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Role        models.Role `json:"role"`
}

// TaskAssignmentDTO represents a task assignment in API responses
type TaskAssignmentDTO struct {
	User       UserDTO   `json:"user"`
	AssignedAt time.Time `json:"assigned_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                uint64              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Priority          int                 `json:"priority"`
	Status            models.TaskStatus   `json:"status"`
	DueDate           *time.Time          `json:"due_date"`
	StartDate         *time.Time          `json:"start_date"`
	OwnerID           uint64              `json:"owner_id"`
	DepartmentID      uint64              `json:"department_id"`
	ProjectID         *uint64             `json:"project_id"`
	ParentTaskID      *uint64             `json:"parent_task_id"`
	IsRecurring       bool                `json:"is_recurring"`
	RecurringInterval *int                `json:"recurring_interval"`
	IsArchived        bool                `json:"is_archived"`
	Tags              []string            `json:"tags"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Owner             *UserDTO            `json:"owner,omitempty"`
	Assignments       []TaskAssignmentDTO `json:"assignments,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID        uint64            `json:"id"`
	Title     string            `json:"title"`
	Priority  int               `json:"priority"`
	Status    models.TaskStatus `json:"status"`
	DueDate   *time.Time        `json:"due_date"`
	OwnerID   uint64            `json:"owner_id"`
	ProjectID *uint64           `json:"project_id"`
	Owner     *UserDTO          `json:"owner,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
}

// TaskHierarchyDTO represents a task with its parent and direct subtasks
type TaskHierarchyDTO struct {
	Task     TaskDTO           `json:"task"`
	Parent   *TaskDTO          `json:"parent,omitempty"`
	Subtasks []TaskListItemDTO `json:"subtasks"`
}

// TaskCommentDTO represents a task comment in API responses
type TaskCommentDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	Body      string    `json:"body"`
	Author    *UserDTO  `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserDTO converts a UserProfile model to UserDTO
func ToUserDTO(user models.UserProfile) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		Priority:          task.Priority,
		Status:            task.Status,
		DueDate:           task.DueDate,
		StartDate:         task.StartDate,
		OwnerID:           task.OwnerID,
		DepartmentID:      task.DepartmentID,
		ProjectID:         task.ProjectID,
		ParentTaskID:      task.ParentTaskID,
		IsRecurring:       task.IsRecurring,
		RecurringInterval: task.RecurringInterval,
		IsArchived:        task.IsArchived,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}

	dto.Tags = make([]string, len(task.Tags))
	for i, tag := range task.Tags {
		dto.Tags[i] = tag.Name
	}

	if task.Owner.ID != 0 {
		owner := ToUserDTO(task.Owner)
		dto.Owner = &owner
	}

	if len(task.Assignments) > 0 {
		dto.Assignments = make([]TaskAssignmentDTO, len(task.Assignments))
		for i, assignment := range task.Assignments {
			dto.Assignments[i] = TaskAssignmentDTO{
				User:       ToUserDTO(assignment.User),
				AssignedAt: assignment.AssignedAt,
			}
		}
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	dto := TaskListItemDTO{
		ID:        task.ID,
		Title:     task.Title,
		Priority:  task.Priority,
		Status:    task.Status,
		DueDate:   task.DueDate,
		OwnerID:   task.OwnerID,
		ProjectID: task.ProjectID,
		CreatedAt: task.CreatedAt,
	}

	if task.Owner.ID != 0 {
		owner := ToUserDTO(task.Owner)
		dto.Owner = &owner
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}

// ToTaskCommentDTO converts a TaskComment model to TaskCommentDTO
func ToTaskCommentDTO(comment models.TaskComment) TaskCommentDTO {
	dto := TaskCommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}

	if comment.Author.ID != 0 {
		author := ToUserDTO(comment.Author)
		dto.Author = &author
	}

	return dto
}
