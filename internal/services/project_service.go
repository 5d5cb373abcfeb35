package services

import (
	"errors"
	"fmt"

	"github.com/aokumo/dept-task-api/internal/authz"
	"github.com/aokumo/dept-task-api/internal/constants"
	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/aokumo/dept-task-api/internal/pkg/logger"
	"github.com/aokumo/dept-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrDuplicateProjectName = errors.New("an active project with this name already exists")
	ErrCollaboratorNotFound = errors.New("user is not a collaborator on this project")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	deptRepo    repository.DepartmentRepository
	collab      *CollaboratorService
	log         *logger.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	deptRepo repository.DepartmentRepository,
	collab *CollaboratorService,
	log *logger.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		deptRepo:    deptRepo,
		collab:      collab,
		log:         log,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	Priority    *int
	// DepartmentID overrides the actor's own department; only elevated
	// actors may place a project elsewhere.
	DepartmentID *uint64
}

// CreateProject creates a project. The name must be unique case-insensitively
// among all non-archived projects, across departments; archiving a project
// frees its name.
func (s *ProjectService) CreateProject(input CreateProjectInput, actor *models.UserProfile) (*models.Project, error) {
	name, err := normalizeProjectName(input.Name)
	if err != nil {
		return nil, err
	}

	priority, err := normalizePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	departmentID := actor.DepartmentID
	if input.DepartmentID != nil {
		departmentID = *input.DepartmentID
	}

	a, err := s.actorFor(actor)
	if err != nil {
		return nil, err
	}
	if !authz.CanActInDepartment(a, departmentID, authz.ActionWrite) {
		return nil, ErrUnauthorized
	}

	if _, err := s.deptRepo.FindByID(departmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}

	if _, err := s.projectRepo.FindActiveByName(name); err == nil {
		return nil, ErrDuplicateProjectName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check project name: %w", err)
	}

	project := &models.Project{
		Name:         name,
		Description:  input.Description,
		Priority:     priority,
		Status:       models.ProjectStatusActive,
		DepartmentID: departmentID,
		CreatorID:    actor.ID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project the actor may read.
func (s *ProjectService) GetProject(projectID uint64, actor *models.UserProfile) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeProject(actor, project, authz.ActionRead); err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects returns projects in the actor's visible departments.
func (s *ProjectService) ListProjects(includeArchived bool, actor *models.UserProfile) ([]models.Project, error) {
	var departmentIDs []uint64
	switch actor.Role {
	case models.RoleManager:
		reachable, err := s.deptRepo.ReachableIDs(actor.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve department hierarchy: %w", err)
		}
		for id := range reachable {
			departmentIDs = append(departmentIDs, id)
		}
	default:
		departmentIDs = []uint64{actor.DepartmentID}
	}

	projects, err := s.projectRepo.List(departmentIDs, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProjectInput represents mutable project fields.
type UpdateProjectInput struct {
	Description *string
	Priority    *int
	Status      *models.ProjectStatus
}

// UpdateProject updates a project's description, priority or status.
func (s *ProjectService) UpdateProject(projectID uint64, input UpdateProjectInput, actor *models.UserProfile) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeProject(actor, project, authz.ActionWrite); err != nil {
		return nil, err
	}

	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Priority != nil {
		priority, err := normalizePriority(input.Priority)
		if err != nil {
			return nil, err
		}
		project.Priority = priority
	}
	if input.Status != nil {
		project.Status = *input.Status
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// GetProjectCollaborators returns the de-duplicated collaborator set,
// derived from the live assignment rows rather than the cached table.
func (s *ProjectService) GetProjectCollaborators(projectID uint64, actor *models.UserProfile) ([]models.UserProfile, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeProject(actor, project, authz.ActionRead); err != nil {
		return nil, err
	}

	profiles, err := s.projectRepo.ListCollaboratorProfiles(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	return profiles, nil
}

// RemoveProjectCollaborator removes the user's assignment from every task of
// the project. The operation is atomic by contract: if any of those removals
// would leave a task without assignees, nothing is removed. MANAGER+ only.
func (s *ProjectService) RemoveProjectCollaborator(projectID, userID uint64, actor *models.UserProfile) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}

	if err := s.authorizeProject(actor, project, authz.ActionRemoveCollaborator); err != nil {
		return err
	}

	tasks, err := s.taskRepo.ListAssignedInProject(projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to list assigned tasks: %w", err)
	}
	if len(tasks) == 0 {
		return ErrCollaboratorNotFound
	}

	// Pre-check every affected task before touching any row, so a
	// last-assignee violation on one task aborts the whole removal.
	for _, task := range tasks {
		if len(task.Assignments) <= constants.MinTaskAssignees {
			return ErrLastAssignee
		}
	}

	for _, task := range tasks {
		if err := s.taskRepo.RemoveAssignment(task.ID, userID); err != nil {
			if errors.Is(err, repository.ErrLastAssignment) {
				return ErrLastAssignee
			}
			return fmt.Errorf("failed to remove assignment: %w", err)
		}
		s.logRemoval(task.ID, actor.ID, userID)
	}

	if err := s.collab.OnAssigneeRemoved(&projectID, userID); err != nil {
		s.log.Warn("collaborator derivation failed",
			"project_id", projectID,
			"user_id", userID,
			"error", err,
		)
	}

	return nil
}

// ArchiveProject archives a project, freeing its name for reuse. Task and
// collaborator records are left untouched.
func (s *ProjectService) ArchiveProject(projectID uint64, actor *models.UserProfile) (*models.Project, error) {
	return s.setArchived(projectID, actor, true)
}

// UnarchiveProject restores an archived project.
func (s *ProjectService) UnarchiveProject(projectID uint64, actor *models.UserProfile) (*models.Project, error) {
	return s.setArchived(projectID, actor, false)
}

func (s *ProjectService) setArchived(projectID uint64, actor *models.UserProfile, archived bool) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeProject(actor, project, authz.ActionWrite); err != nil {
		return nil, err
	}

	project.IsArchived = archived
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

func (s *ProjectService) findProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) authorizeProject(actor *models.UserProfile, project *models.Project, action authz.Action) error {
	a, err := s.actorFor(actor)
	if err != nil {
		return err
	}

	collaboratorIDs, err := s.projectRepo.ListCollaboratorIDs(project.ID)
	if err != nil {
		return fmt.Errorf("failed to list collaborator ids: %w", err)
	}

	if !authz.CanAct(a, authz.ProjectResource(project, collaboratorIDs), action) {
		return ErrUnauthorized
	}
	return nil
}

func (s *ProjectService) actorFor(actor *models.UserProfile) (authz.Actor, error) {
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

func (s *ProjectService) logRemoval(taskID, actorID, userID uint64) {
	entry := &models.TaskActionLog{
		TaskID:  taskID,
		ActorID: actorID,
		Action:  models.TaskActionAssigneeRemoved,
		Detail:  fmt.Sprintf("user %d unassigned via collaborator removal", userID),
	}
	if err := s.taskRepo.LogAction(entry); err != nil {
		s.log.Warn("failed to log task action", "task_id", taskID, "error", err)
	}
}
