package repository

import (
	"time"

	"github.com/aokumo/dept-task-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create persists a task together with its initial assignment rows in a
	// single transaction
	Create(task *models.Task, assignments []models.TaskAssignment) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindByIDFull finds a task with owner, project, assignments and tags loaded
	FindByIDFull(id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete hard-deletes a task and cascades assignment, tag and comment rows
	Delete(id uint64) error

	// AddAssignment upserts a single assignment row
	AddAssignment(assignment *models.TaskAssignment) error

	// RemoveAssignment removes one assignment, refusing to empty the set.
	// Returns ErrLastAssignment when the task would be left with none.
	RemoveAssignment(taskID, userID uint64) error

	// CountAssignments counts the live assignment rows of a task
	CountAssignments(taskID uint64) (int64, error)

	// ListSubtasks returns the direct children of a task
	ListSubtasks(parentID uint64) ([]models.Task, error)

	// ListAssignedInProject returns tasks in a project that the user is
	// assigned to, with assignments preloaded
	ListAssignedInProject(projectID, userID uint64) ([]models.Task, error)

	// ReplaceTags replaces the tag set of a task
	ReplaceTags(taskID uint64, names []string) error

	// AddComment appends a comment to a task
	AddComment(comment *models.TaskComment) error

	// ListComments lists the comments of a task, oldest first
	ListComments(taskID uint64) ([]models.TaskComment, error)

	// LogAction appends a task action log row
	LogAction(entry *models.TaskActionLog) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	DepartmentIDs   []uint64
	ProjectID       *uint64
	Status          *models.TaskStatus
	OwnerID         *uint64
	AssignedUserID  *uint64
	// TouchedByUserID limits results to tasks the user owns or is assigned
	// to, the visibility floor for staff.
	TouchedByUserID *uint64
	IncludeArchived bool
	DueDateFrom     *time.Time
	DueDateTo       *time.Time
	SortByDueDate   bool
	Page            int
	PageSize        int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindActiveByName finds a non-archived project by case-insensitive name
	FindActiveByName(name string) (*models.Project, error)

	// List retrieves projects scoped to departments
	List(departmentIDs []uint64, includeArchived bool) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// IsCollaborator reports whether the user holds a collaborator row
	IsCollaborator(projectID, userID uint64) (bool, error)

	// UpsertCollaborator creates the collaborator row if absent
	UpsertCollaborator(collaborator *models.ProjectCollaborator) error

	// RemoveCollaboratorIfNoAssignments deletes the collaborator row when the
	// user no longer holds any assignment on the project's tasks
	RemoveCollaboratorIfNoAssignments(projectID, userID uint64) error

	// ListCollaboratorProfiles returns the de-duplicated profiles of users
	// holding at least one assignment in the project, derived from the live
	// assignment set
	ListCollaboratorProfiles(projectID uint64) ([]models.UserProfile, error)

	// ListCollaboratorIDs returns the user IDs of the project's collaborator rows
	ListCollaboratorIDs(projectID uint64) ([]uint64, error)
}

// UserRepository defines the interface for user profile data access
type UserRepository interface {
	// Create creates a new user profile
	Create(user *models.UserProfile) error

	// FindByID finds a profile by ID
	FindByID(id uint64) (*models.UserProfile, error)

	// FindByEmail finds a profile by email
	FindByEmail(email string) (*models.UserProfile, error)
}

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	// Create creates a new department
	Create(department *models.Department) error

	// FindByID finds a department by ID
	FindByID(id uint64) (*models.Department, error)

	// FindByJoinCode finds a department by join code
	FindByJoinCode(code string) (*models.Department, error)

	// List returns departments filtered to the given IDs; nil means all
	List(ids []uint64) ([]models.Department, error)

	// Update updates a department
	Update(department *models.Department) error

	// ReachableIDs returns the department plus all transitive subordinates,
	// as a set keyed by department ID
	ReachableIDs(rootID uint64) (map[uint64]struct{}, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create appends a notification row
	Create(notification *models.Notification) error

	// ListByUser lists a user's notifications, newest first
	ListByUser(userID uint64, unreadOnly bool) ([]models.Notification, error)

	// MarkRead flags a notification as read, scoped to its owner
	MarkRead(id, userID uint64) error
}
