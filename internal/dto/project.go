package dto

import (
	"time"

	"github.com/aokumo/dept-task-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID           uint64               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Priority     int                  `json:"priority"`
	Status       models.ProjectStatus `json:"status"`
	DepartmentID uint64               `json:"department_id"`
	CreatorID    uint64               `json:"creator_id"`
	IsArchived   bool                 `json:"is_archived"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:           project.ID,
		Name:         project.Name,
		Description:  project.Description,
		Priority:     project.Priority,
		Status:       project.Status,
		DepartmentID: project.DepartmentID,
		CreatorID:    project.CreatorID,
		IsArchived:   project.IsArchived,
		CreatedAt:    project.CreatedAt,
		UpdatedAt:    project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

// ToUserDTOs converts a slice of profiles
func ToUserDTOs(users []models.UserProfile) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
