package services

import (
	"strings"
	"testing"

	"github.com/aokumo/dept-task-api/internal/constants"
	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, validateTitle("Quarterly report"))
	assert.ErrorIs(t, validateTitle(""), ErrTitleRequired)
	assert.ErrorIs(t, validateTitle("   "), ErrTitleRequired)
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, validateDescription("Compile Q3 numbers"))
	assert.ErrorIs(t, validateDescription(""), ErrDescriptionRequired)
	assert.ErrorIs(t, validateDescription("\t\n"), ErrDescriptionRequired)
}

func TestNormalizePriority(t *testing.T) {
	got, err := normalizePriority(nil)
	assert.NoError(t, err)
	assert.Equal(t, constants.DefaultPriority, got)

	for _, p := range []int{1, 5, 10} {
		p := p
		got, err := normalizePriority(&p)
		assert.NoError(t, err)
		assert.Equal(t, p, got)
	}

	for _, p := range []int{0, -1, 11, 100} {
		p := p
		_, err := normalizePriority(&p)
		assert.ErrorIs(t, err, ErrPriorityOutOfRange)
	}
}

func TestValidateAssigneeCount(t *testing.T) {
	assert.ErrorIs(t, validateAssigneeCount(0), ErrNoAssignees)
	assert.NoError(t, validateAssigneeCount(1))
	assert.NoError(t, validateAssigneeCount(5))
	assert.ErrorIs(t, validateAssigneeCount(6), ErrTooManyAssignees)
}

func TestValidateParentDepth(t *testing.T) {
	topLevel := &models.Task{ID: 1}
	assert.NoError(t, validateParentDepth(topLevel))

	parentID := uint64(1)
	subtask := &models.Task{ID: 2, ParentTaskID: &parentID}
	err := validateParentDepth(subtask)
	assert.ErrorIs(t, err, ErrSubtaskDepthExceeded)
	assert.True(t, strings.HasPrefix(err.Error(), constants.SubtaskDepthErrorCode))
}

func TestNormalizeProjectName(t *testing.T) {
	name, err := normalizeProjectName("  Website Redesign  ")
	assert.NoError(t, err)
	assert.Equal(t, "Website Redesign", name)

	_, err = normalizeProjectName("   ")
	assert.ErrorIs(t, err, ErrProjectNameRequired)

	_, err = normalizeProjectName(strings.Repeat("x", constants.MaxProjectNameLength+1))
	assert.ErrorIs(t, err, ErrProjectNameTooLong)
}

func TestStatusTransitionAllowed(t *testing.T) {
	tests := []struct {
		from, to models.TaskStatus
		want     bool
	}{
		{models.TaskStatusTodo, models.TaskStatusInProgress, true},
		{models.TaskStatusTodo, models.TaskStatusCompleted, false},
		{models.TaskStatusTodo, models.TaskStatusBlocked, false},
		{models.TaskStatusInProgress, models.TaskStatusBlocked, true},
		{models.TaskStatusInProgress, models.TaskStatusCompleted, true},
		{models.TaskStatusBlocked, models.TaskStatusInProgress, true},
		{models.TaskStatusBlocked, models.TaskStatusCompleted, false},
		{models.TaskStatusCompleted, models.TaskStatusTodo, true},
		{models.TaskStatusCompleted, models.TaskStatusInProgress, true},
		{models.TaskStatusCompleted, models.TaskStatusBlocked, false},
		// same-status updates are accepted as no-ops
		{models.TaskStatusBlocked, models.TaskStatusBlocked, true},
		{models.TaskStatusCompleted, models.TaskStatusCompleted, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusTransitionAllowed(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
