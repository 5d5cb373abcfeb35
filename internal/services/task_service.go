package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/aokumo/dept-task-api/internal/authz"
	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/aokumo/dept-task-api/internal/pkg/logger"
	"github.com/aokumo/dept-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound            = errors.New("task not found")
	ErrOwnerNotFound           = errors.New("task owner not found or inactive")
	ErrDepartmentNotFound      = errors.New("department not found or inactive")
	ErrAssigneesNotFound       = errors.New("one or more assignees do not exist or are inactive")
	ErrAssigneeNotFound        = errors.New("assignee not found or inactive")
	ErrProjectNotFound         = errors.New("project not found")
	ErrProjectArchived         = errors.New("project is archived")
	ErrLastAssignee            = errors.New("task must keep at least one assignee")
	ErrUnauthorized            = errors.New("user is not authorized to perform this action")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// statusTransitions is the allowed-edge table of the task status machine.
// COMPLETED admits explicit reopening; nothing transitions automatically.
var statusTransitions = map[models.TaskStatus][]models.TaskStatus{
	models.TaskStatusTodo:       {models.TaskStatusInProgress},
	models.TaskStatusInProgress: {models.TaskStatusBlocked, models.TaskStatusCompleted},
	models.TaskStatusBlocked:    {models.TaskStatusInProgress},
	models.TaskStatusCompleted:  {models.TaskStatusTodo, models.TaskStatusInProgress},
}

func statusTransitionAllowed(from, to models.TaskStatus) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TaskService orchestrates task mutations: validation, authorization,
// persistence, collaborator derivation and notification emission, in that
// order. Side effects after the primary write are best-effort.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	deptRepo    repository.DepartmentRepository
	collab      *CollaboratorService
	log         *logger.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	deptRepo repository.DepartmentRepository,
	collab *CollaboratorService,
	log *logger.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		deptRepo:    deptRepo,
		collab:      collab,
		log:         log,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title             string
	Description       string
	Priority          *int
	DueDate           *time.Time
	StartDate         *time.Time
	OwnerID           uint64
	DepartmentID      uint64
	ProjectID         *uint64
	ParentTaskID      *uint64
	IsRecurring       bool
	RecurringInterval *int
	Tags              []string
	AssigneeIDs       []uint64
	// AllowArchivedProject permits linking into an archived project, for
	// elevated callers backfilling historical work.
	AllowArchivedProject bool
}

// CreateTask validates everything up front, persists the task with its
// assignment rows in one transaction, then derives collaborators and emits
// notifications per assignee. No partial write is observable on failure.
func (s *TaskService) CreateTask(input CreateTaskInput, actor *models.UserProfile) (*models.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	priority, err := normalizePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	assigneeIDs := uniqueUint64(input.AssigneeIDs)
	if err := validateAssigneeCount(len(assigneeIDs)); err != nil {
		return nil, err
	}

	a, err := s.actorFor(actor)
	if err != nil {
		return nil, err
	}
	resource := authz.Resource{DepartmentID: input.DepartmentID, OwnerID: input.OwnerID, AssigneeIDs: assigneeIDs}
	if !authz.CanActInDepartment(a, input.DepartmentID, authz.ActionWrite) ||
		!authz.CanAct(a, resource, authz.ActionWrite) {
		return nil, ErrUnauthorized
	}

	owner, err := s.userRepo.FindByID(input.OwnerID)
	if err != nil || !owner.IsActive {
		return nil, ErrOwnerNotFound
	}

	department, err := s.deptRepo.FindByID(input.DepartmentID)
	if err != nil || !department.IsActive {
		return nil, ErrDepartmentNotFound
	}

	assignees := make([]*models.UserProfile, 0, len(assigneeIDs))
	for _, id := range assigneeIDs {
		assignee, err := s.userRepo.FindByID(id)
		if err != nil || !assignee.IsActive {
			return nil, ErrAssigneesNotFound
		}
		assignees = append(assignees, assignee)
	}

	if input.ProjectID != nil {
		project, err := s.projectRepo.FindByID(*input.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		if project.IsArchived && !input.AllowArchivedProject {
			return nil, ErrProjectArchived
		}
	}

	if input.ParentTaskID != nil {
		parent, err := s.taskRepo.FindByID(*input.ParentTaskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskNotFound
			}
			return nil, fmt.Errorf("failed to find parent task: %w", err)
		}
		if err := validateParentDepth(parent); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:             input.Title,
		Description:       input.Description,
		Priority:          priority,
		Status:            models.TaskStatusTodo,
		DueDate:           input.DueDate,
		StartDate:         input.StartDate,
		OwnerID:           input.OwnerID,
		DepartmentID:      input.DepartmentID,
		ProjectID:         input.ProjectID,
		ParentTaskID:      input.ParentTaskID,
		IsRecurring:       input.IsRecurring,
		RecurringInterval: input.RecurringInterval,
	}

	now := time.Now()
	assignments := make([]models.TaskAssignment, len(assignees))
	for i, assignee := range assignees {
		assignments[i] = models.TaskAssignment{
			UserID:       assignee.ID,
			AssignedByID: actor.ID,
			AssignedAt:   now,
		}
	}

	if err := s.taskRepo.Create(task, assignments); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logAction(task.ID, actor.ID, models.TaskActionCreated, fmt.Sprintf("task %q created", task.Title))

	if len(input.Tags) > 0 {
		if err := s.taskRepo.ReplaceTags(task.ID, input.Tags); err != nil {
			s.log.Warn("failed to set tags on new task", "task_id", task.ID, "error", err)
		}
	}

	// Assignment rows are persisted; collaborator derivation and the
	// notification for each user follow, in that order per user. Failures
	// here are logged, never rolled back.
	for _, assignee := range assignees {
		if err := s.collab.OnAssigneeAdded(task, assignee); err != nil {
			s.log.Warn("collaborator derivation failed",
				"task_id", task.ID,
				"user_id", assignee.ID,
				"error", err,
			)
		}
	}

	return s.taskRepo.FindByIDFull(task.ID)
}

// GetTask returns a task with related data, authorizing the read.
func (s *TaskService) GetTask(taskID uint64, actor *models.UserProfile) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionRead); err != nil {
		return nil, err
	}

	return task, nil
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	DepartmentID    *uint64
	ProjectID       *uint64
	Status          *models.TaskStatus
	AssignedToMe    bool
	DueToday        bool
	IncludeArchived bool
	SortByDueDate   bool
	Page            int
	PageSize        int
}

// ListTasks returns tasks visible to the actor. Staff see only tasks they
// own or are assigned to; managers see their reachable departments; HR
// admins see the requested department or their own.
func (s *TaskService) ListTasks(input ListTasksInput, actor *models.UserProfile) ([]models.Task, int64, error) {
	a, err := s.actorFor(actor)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.TaskFilter{
		ProjectID:       input.ProjectID,
		Status:          input.Status,
		IncludeArchived: input.IncludeArchived,
		SortByDueDate:   input.SortByDueDate,
		Page:            input.Page,
		PageSize:        input.PageSize,
	}

	switch actor.Role {
	case models.RoleHRAdmin:
		if input.DepartmentID != nil {
			filter.DepartmentIDs = []uint64{*input.DepartmentID}
		} else {
			filter.DepartmentIDs = []uint64{actor.DepartmentID}
		}
	case models.RoleManager:
		for id := range a.ReachableDepartments {
			filter.DepartmentIDs = append(filter.DepartmentIDs, id)
		}
		if input.DepartmentID != nil {
			if _, ok := a.ReachableDepartments[*input.DepartmentID]; !ok {
				return nil, 0, ErrUnauthorized
			}
			filter.DepartmentIDs = []uint64{*input.DepartmentID}
		}
	default:
		filter.DepartmentIDs = []uint64{actor.DepartmentID}
		filter.TouchedByUserID = &actor.ID
	}

	if input.AssignedToMe {
		filter.AssignedUserID = &actor.ID
	}
	if input.DueToday {
		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)
		filter.DueDateFrom = &startOfDay
		filter.DueDateTo = &endOfDay
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// AddAssignee appends one assignment, derives collaborator membership and
// notifies first-time collaborators.
func (s *TaskService) AddAssignee(taskID, userID uint64, actor *models.UserProfile) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionWrite); err != nil {
		return nil, err
	}

	assignee, err := s.userRepo.FindByID(userID)
	if err != nil || !assignee.IsActive {
		return nil, ErrAssigneeNotFound
	}

	if !task.IsAssignedTo(userID) {
		count, err := s.taskRepo.CountAssignments(taskID)
		if err != nil {
			return nil, fmt.Errorf("failed to count assignments: %w", err)
		}
		if err := validateAssigneeCount(int(count) + 1); err != nil {
			return nil, err
		}
	}

	assignment := &models.TaskAssignment{
		TaskID:       taskID,
		UserID:       userID,
		AssignedByID: actor.ID,
		AssignedAt:   time.Now(),
	}
	if err := s.taskRepo.AddAssignment(assignment); err != nil {
		return nil, fmt.Errorf("failed to add assignment: %w", err)
	}

	s.logAction(taskID, actor.ID, models.TaskActionAssigneeAdded, fmt.Sprintf("user %d assigned", userID))

	if err := s.collab.OnAssigneeAdded(task, assignee); err != nil {
		s.log.Warn("collaborator derivation failed",
			"task_id", taskID,
			"user_id", userID,
			"error", err,
		)
	}

	return s.taskRepo.FindByIDFull(taskID)
}

// RemoveAssignee removes one assignment, refusing to empty the set.
// Removing another user's assignment requires MANAGER or above.
func (s *TaskService) RemoveAssignee(taskID, userID uint64, actor *models.UserProfile) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionWrite); err != nil {
		return nil, err
	}
	if userID != actor.ID && actor.Role == models.RoleStaff {
		return nil, ErrUnauthorized
	}

	if err := s.taskRepo.RemoveAssignment(taskID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrLastAssignment):
			return nil, ErrLastAssignee
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrAssigneeNotFound
		default:
			return nil, fmt.Errorf("failed to remove assignment: %w", err)
		}
	}

	s.logAction(taskID, actor.ID, models.TaskActionAssigneeRemoved, fmt.Sprintf("user %d unassigned", userID))

	// The assignment row is gone, so the remaining-assignment count seen by
	// the derivation excludes it. No notification on removal.
	if err := s.collab.OnAssigneeRemoved(task.ProjectID, userID); err != nil {
		s.log.Warn("collaborator derivation failed",
			"task_id", taskID,
			"user_id", userID,
			"error", err,
		)
	}

	return s.taskRepo.FindByIDFull(taskID)
}

// UpdateTitle updates the task title.
func (s *TaskService) UpdateTitle(taskID uint64, title string, actor *models.UserProfile) (*models.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	return s.updateField(taskID, actor, "title", func(task *models.Task) {
		task.Title = title
	})
}

// UpdateDescription updates the task description.
func (s *TaskService) UpdateDescription(taskID uint64, description string, actor *models.UserProfile) (*models.Task, error) {
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	return s.updateField(taskID, actor, "description", func(task *models.Task) {
		task.Description = description
	})
}

// UpdatePriority updates the task priority within bounds.
func (s *TaskService) UpdatePriority(taskID uint64, priority int, actor *models.UserProfile) (*models.Task, error) {
	normalized, err := normalizePriority(&priority)
	if err != nil {
		return nil, err
	}
	return s.updateField(taskID, actor, "priority", func(task *models.Task) {
		task.Priority = normalized
	})
}

// UpdateDeadline updates due and start dates. Nil clears.
func (s *TaskService) UpdateDeadline(taskID uint64, dueDate, startDate *time.Time, actor *models.UserProfile) (*models.Task, error) {
	return s.updateField(taskID, actor, "deadline", func(task *models.Task) {
		task.DueDate = dueDate
		task.StartDate = startDate
	})
}

// UpdateRecurring updates the recurrence flag and interval.
func (s *TaskService) UpdateRecurring(taskID uint64, isRecurring bool, interval *int, actor *models.UserProfile) (*models.Task, error) {
	return s.updateField(taskID, actor, "recurrence", func(task *models.Task) {
		task.IsRecurring = isRecurring
		task.RecurringInterval = interval
	})
}

// UpdateStatus moves the task along the status machine. Completing a
// recurring task reschedules it: the due date advances by the interval and
// the task returns to TO_DO.
func (s *TaskService) UpdateStatus(taskID uint64, status models.TaskStatus, actor *models.UserProfile) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionWrite); err != nil {
		return nil, err
	}

	if !statusTransitionAllowed(task.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, task.Status, status)
	}

	previous := task.Status
	task.Status = status

	detail := fmt.Sprintf("%s -> %s", previous, status)
	if status == models.TaskStatusCompleted && task.IsRecurring && task.RecurringInterval != nil {
		if task.DueDate != nil {
			next := task.DueDate.AddDate(0, 0, *task.RecurringInterval)
			task.DueDate = &next
		}
		// Completing a recurring task reschedules it instead of leaving it
		// COMPLETED; the log records the status the row actually ends on.
		task.Status = models.TaskStatusTodo
		detail = fmt.Sprintf("%s -> %s (recurring, rescheduled)", previous, task.Status)
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.logAction(taskID, actor.ID, models.TaskActionStatusChanged, detail)

	return s.taskRepo.FindByIDFull(taskID)
}

// SetTags replaces the task's tag set.
func (s *TaskService) SetTags(taskID uint64, tags []string, actor *models.UserProfile) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionWrite); err != nil {
		return nil, err
	}

	if err := s.taskRepo.ReplaceTags(taskID, uniqueStrings(tags)); err != nil {
		return nil, fmt.Errorf("failed to replace tags: %w", err)
	}

	s.logAction(taskID, actor.ID, models.TaskActionUpdated, "tags replaced")

	return s.taskRepo.FindByIDFull(taskID)
}

// AssignToProject links or unlinks the task's project. Linking runs the
// collaborator derivation for every current assignee; unlinking leaves
// collaborators of the old project derived from their remaining assignments
// there, which the per-task counting already covers.
func (s *TaskService) AssignToProject(taskID uint64, projectID *uint64, actor *models.UserProfile) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionWrite); err != nil {
		return nil, err
	}

	if projectID != nil {
		if _, err := s.projectRepo.FindByID(*projectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
	}

	task.ProjectID = projectID
	task.Project = nil
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to link project: %w", err)
	}

	detail := "project cleared"
	if projectID != nil {
		detail = fmt.Sprintf("linked to project %d", *projectID)
	}
	s.logAction(taskID, actor.ID, models.TaskActionProjectLinked, detail)

	if projectID != nil {
		for _, assignment := range task.Assignments {
			assignee := assignment.User
			if assignee.ID == 0 {
				continue
			}
			if err := s.collab.OnAssigneeAdded(task, &assignee); err != nil {
				s.log.Warn("collaborator derivation failed",
					"task_id", taskID,
					"user_id", assignee.ID,
					"error", err,
				)
			}
		}
	}

	return s.taskRepo.FindByIDFull(taskID)
}

// ArchiveTask soft-archives the task.
func (s *TaskService) ArchiveTask(taskID uint64, actor *models.UserProfile) (*models.Task, error) {
	task, err := s.setArchived(taskID, actor, true)
	if err != nil {
		return nil, err
	}
	s.logAction(taskID, actor.ID, models.TaskActionArchived, "")
	return task, nil
}

// UnarchiveTask reverses archival.
func (s *TaskService) UnarchiveTask(taskID uint64, actor *models.UserProfile) (*models.Task, error) {
	task, err := s.setArchived(taskID, actor, false)
	if err != nil {
		return nil, err
	}
	s.logAction(taskID, actor.ID, models.TaskActionUnarchived, "")
	return task, nil
}

// DeleteTask hard-deletes a task with its assignment and tag rows.
// HR admins only.
func (s *TaskService) DeleteTask(taskID uint64, actor *models.UserProfile) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}

	if err := s.authorizeTask(actor, task, authz.ActionDelete); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logAction(taskID, actor.ID, models.TaskActionDeleted, fmt.Sprintf("task %q deleted", task.Title))
	return nil
}

// TaskHierarchy is the parent chain and direct subtasks of a task. The depth
// invariant bounds the chain to a single ancestor and forbids nesting below
// the subtask level.
type TaskHierarchy struct {
	Task     *models.Task
	Parent   *models.Task
	Subtasks []models.Task
}

// GetTaskHierarchy returns the task with its parent and direct children.
func (s *TaskService) GetTaskHierarchy(taskID uint64, actor *models.UserProfile) (*TaskHierarchy, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionRead); err != nil {
		return nil, err
	}

	hierarchy := &TaskHierarchy{Task: task}

	if task.ParentTaskID != nil {
		parent, err := s.taskRepo.FindByID(*task.ParentTaskID, "Assignments")
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find parent task: %w", err)
		}
		hierarchy.Parent = parent
	}

	subtasks, err := s.taskRepo.ListSubtasks(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	hierarchy.Subtasks = subtasks

	return hierarchy, nil
}

// AddComment appends a comment to a task the actor can read.
func (s *TaskService) AddComment(taskID uint64, body string, actor *models.UserProfile) (*models.TaskComment, error) {
	if err := validateDescription(body); err != nil {
		return nil, err
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionRead); err != nil {
		return nil, err
	}

	comment := &models.TaskComment{
		TaskID:   taskID,
		AuthorID: actor.ID,
		Body:     body,
	}
	if err := s.taskRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}

// ListComments lists a task's comments for an authorized reader.
func (s *TaskService) ListComments(taskID uint64, actor *models.UserProfile) ([]models.TaskComment, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionRead); err != nil {
		return nil, err
	}

	return s.taskRepo.ListComments(taskID)
}

// updateField is the shared fetch-authorize-mutate-persist-log path of the
// single-field update operations.
func (s *TaskService) updateField(taskID uint64, actor *models.UserProfile, field string, mutate func(*models.Task)) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionWrite); err != nil {
		return nil, err
	}

	mutate(task)

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logAction(taskID, actor.ID, models.TaskActionUpdated, field+" updated")

	return s.taskRepo.FindByIDFull(taskID)
}

func (s *TaskService) setArchived(taskID uint64, actor *models.UserProfile, archived bool) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTask(actor, task, authz.ActionWrite); err != nil {
		return nil, err
	}

	task.IsArchived = archived
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDFull(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// authorizeTask maps the task to a predicate resource and checks the action.
func (s *TaskService) authorizeTask(actor *models.UserProfile, task *models.Task, action authz.Action) error {
	a, err := s.actorFor(actor)
	if err != nil {
		return err
	}
	if !authz.CanAct(a, authz.TaskResource(task), action) {
		return ErrUnauthorized
	}
	return nil
}

// actorFor resolves the reachable department set once per operation so the
// predicate itself stays I/O-free.
func (s *TaskService) actorFor(actor *models.UserProfile) (authz.Actor, error) {
	var reachable map[uint64]struct{}
	if actor.Role == models.RoleManager {
		var err error
		reachable, err = s.deptRepo.ReachableIDs(actor.DepartmentID)
		if err != nil {
			return authz.Actor{}, fmt.Errorf("failed to resolve department hierarchy: %w", err)
		}
	}
	return authz.ActorFor(actor, reachable), nil
}

func (s *TaskService) logAction(taskID, actorID uint64, action models.TaskAction, detail string) {
	entry := &models.TaskActionLog{
		TaskID:  taskID,
		ActorID: actorID,
		Action:  action,
		Detail:  detail,
	}
	if err := s.taskRepo.LogAction(entry); err != nil {
		s.log.Warn("failed to log task action", "task_id", taskID, "action", action, "error", err)
	}
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}

// uniqueStrings removes duplicate values from a slice of strings
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
