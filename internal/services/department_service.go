package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/aokumo/dept-task-api/internal/repository"
	"github.com/aokumo/dept-task-api/internal/utils"
	"gorm.io/gorm"
)

var ErrDepartmentNameRequired = errors.New("department name is required")

// DepartmentService manages the department tree and its join codes.
type DepartmentService struct {
	deptRepo repository.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(deptRepo repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{deptRepo: deptRepo}
}

// CreateDepartmentInput represents parameters to create a department.
type CreateDepartmentInput struct {
	Name     string
	ParentID *uint64
}

// CreateDepartment creates a department with a fresh join code. HR admins
// only; the department tree is organization structure, not task data.
func (s *DepartmentService) CreateDepartment(input CreateDepartmentInput, actor *models.UserProfile) (*models.Department, error) {
	if !actor.IsHRAdmin() {
		return nil, ErrUnauthorized
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrDepartmentNameRequired
	}

	if input.ParentID != nil {
		if _, err := s.deptRepo.FindByID(*input.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, fmt.Errorf("failed to find parent department: %w", err)
		}
	}

	joinCode, err := utils.GenerateJoinCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate join code: %w", err)
	}

	department := &models.Department{
		Name:     name,
		ParentID: input.ParentID,
		JoinCode: joinCode,
		IsActive: true,
	}
	if err := s.deptRepo.Create(department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return department, nil
}

// GetDepartment returns a department the actor can see: their own subtree for
// managers and staff, anything for HR admins.
func (s *DepartmentService) GetDepartment(id uint64, actor *models.UserProfile) (*models.Department, error) {
	department, err := s.deptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}

	if !actor.IsHRAdmin() {
		reachable, err := s.deptRepo.ReachableIDs(actor.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve department hierarchy: %w", err)
		}
		if _, ok := reachable[id]; !ok {
			return nil, ErrUnauthorized
		}
	}

	return department, nil
}

// ListDepartments returns the departments visible to the actor.
func (s *DepartmentService) ListDepartments(actor *models.UserProfile) ([]models.Department, error) {
	var ids []uint64
	if !actor.IsHRAdmin() {
		reachable, err := s.deptRepo.ReachableIDs(actor.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve department hierarchy: %w", err)
		}
		for id := range reachable {
			ids = append(ids, id)
		}
	}

	departments, err := s.deptRepo.List(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

// RegenerateJoinCode rotates the department's join code, invalidating the
// previous one. HR admins only.
func (s *DepartmentService) RegenerateJoinCode(id uint64, actor *models.UserProfile) (*models.Department, error) {
	if !actor.IsHRAdmin() {
		return nil, ErrUnauthorized
	}

	department, err := s.deptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}

	joinCode, err := utils.GenerateJoinCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate join code: %w", err)
	}

	department.JoinCode = joinCode
	if err := s.deptRepo.Update(department); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	return department, nil
}
