package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aokumo/dept-task-api/internal/constants"
	"github.com/aokumo/dept-task-api/internal/models"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrPriorityOutOfRange  = fmt.Errorf("priority must be between %d and %d", constants.MinPriority, constants.MaxPriority)
	ErrNoAssignees         = errors.New("at least one assignee is required")
	ErrTooManyAssignees    = fmt.Errorf("a task can have at most %d assignees", constants.MaxTaskAssignees)
	ErrProjectNameRequired = errors.New("project name is required")
	ErrProjectNameTooLong  = fmt.Errorf("project name must be at most %d characters", constants.MaxProjectNameLength)

	ErrSubtaskDepthExceeded = fmt.Errorf("%s: Maximum subtask depth is 2 levels", constants.SubtaskDepthErrorCode)
)

// validateTitle rejects empty or whitespace-only titles.
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// validateDescription rejects empty or whitespace-only descriptions.
func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrDescriptionRequired
	}
	return nil
}

// normalizePriority applies the default when absent and range-checks otherwise.
func normalizePriority(priority *int) (int, error) {
	if priority == nil {
		return constants.DefaultPriority, nil
	}
	if *priority < constants.MinPriority || *priority > constants.MaxPriority {
		return 0, ErrPriorityOutOfRange
	}
	return *priority, nil
}

// validateAssigneeCount checks the 1..5 bound. Existence of the users is a
// repository concern checked separately.
func validateAssigneeCount(count int) error {
	if count < constants.MinTaskAssignees {
		return ErrNoAssignees
	}
	if count > constants.MaxTaskAssignees {
		return ErrTooManyAssignees
	}
	return nil
}

// validateParentDepth enforces the two-level hierarchy: a parent task may not
// itself have a parent.
func validateParentDepth(parent *models.Task) error {
	if parent.ParentTaskID != nil {
		return ErrSubtaskDepthExceeded
	}
	return nil
}

// normalizeProjectName trims the name and checks emptiness and length.
func normalizeProjectName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrProjectNameRequired
	}
	if len(trimmed) > constants.MaxProjectNameLength {
		return "", ErrProjectNameTooLong
	}
	return trimmed, nil
}
