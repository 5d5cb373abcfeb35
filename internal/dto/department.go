package dto

import (
	"time"

	"github.com/aokumo/dept-task-api/internal/models"
)

// DepartmentDTO represents a department in API responses. The join code is
// only populated for HR administrators.
type DepartmentDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *uint64   `json:"parent_id"`
	JoinCode  string    `json:"join_code,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDepartmentDTO converts a Department model to DepartmentDTO
func ToDepartmentDTO(department models.Department, includeJoinCode bool) DepartmentDTO {
	dto := DepartmentDTO{
		ID:        department.ID,
		Name:      department.Name,
		ParentID:  department.ParentID,
		IsActive:  department.IsActive,
		CreatedAt: department.CreatedAt,
	}
	if includeJoinCode {
		dto.JoinCode = department.JoinCode
	}
	return dto
}

// ToDepartmentDTOs converts a slice of departments
func ToDepartmentDTOs(departments []models.Department, includeJoinCode bool) []DepartmentDTO {
	dtos := make([]DepartmentDTO, len(departments))
	for i, department := range departments {
		dtos[i] = ToDepartmentDTO(department, includeJoinCode)
	}
	return dtos
}
