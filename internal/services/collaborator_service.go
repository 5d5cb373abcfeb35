package services

import (
	"fmt"

	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/aokumo/dept-task-api/internal/pkg/logger"
	"github.com/aokumo/dept-task-api/internal/repository"
)

// CollaboratorService keeps the derived ProjectCollaborator table consistent
// with the live task-assignment set. It runs once per affected user at every
// assignment mutation point; it never scans the whole project.
type CollaboratorService struct {
	projectRepo repository.ProjectRepository
	sink        NotificationSink
	log         *logger.Logger
}

// NewCollaboratorService creates a new CollaboratorService
func NewCollaboratorService(projectRepo repository.ProjectRepository, sink NotificationSink, log *logger.Logger) *CollaboratorService {
	return &CollaboratorService{
		projectRepo: projectRepo,
		sink:        sink,
		log:         log,
	}
}

// OnAssigneeAdded grants collaborator membership after an assignment write.
// The collaborator row carries the assignee's own current department, not
// the project's. First-time collaborators get one notification; re-assigning
// an existing collaborator is a no-op and emits nothing.
func (s *CollaboratorService) OnAssigneeAdded(task *models.Task, assignee *models.UserProfile) error {
	if task.ProjectID == nil {
		return nil
	}
	projectID := *task.ProjectID

	already, err := s.projectRepo.IsCollaborator(projectID, assignee.ID)
	if err != nil {
		return fmt.Errorf("failed to check collaborator membership: %w", err)
	}
	if already {
		return nil
	}

	collaborator := &models.ProjectCollaborator{
		ProjectID:    projectID,
		UserID:       assignee.ID,
		DepartmentID: assignee.DepartmentID,
	}
	if err := s.projectRepo.UpsertCollaborator(collaborator); err != nil {
		return fmt.Errorf("failed to create collaborator: %w", err)
	}

	s.notifyNewCollaborator(task, assignee, projectID)
	return nil
}

// OnAssigneeRemoved drops collaborator membership once the user holds no
// remaining assignment in the project. Must run after the assignment row
// itself is gone so the remaining count excludes it.
func (s *CollaboratorService) OnAssigneeRemoved(projectID *uint64, userID uint64) error {
	if projectID == nil {
		return nil
	}

	if err := s.projectRepo.RemoveCollaboratorIfNoAssignments(*projectID, userID); err != nil {
		return fmt.Errorf("failed to reconcile collaborator removal: %w", err)
	}
	return nil
}

// notifyNewCollaborator emits the PROJECT_COLLABORATION_ADDED notification.
// Sink failures are logged, never propagated.
func (s *CollaboratorService) notifyNewCollaborator(task *models.Task, assignee *models.UserProfile, projectID uint64) {
	projectName := fmt.Sprintf("project #%d", projectID)
	if task.Project != nil {
		projectName = task.Project.Name
	} else if project, err := s.projectRepo.FindByID(projectID); err == nil {
		projectName = project.Name
	}

	taskID := task.ID
	notification := &models.Notification{
		UserID:  assignee.ID,
		Type:    models.NotificationProjectCollaborationAdded,
		Title:   "Added to project",
		Message: fmt.Sprintf("You are now a collaborator on %q", projectName),
		TaskID:  &taskID,
	}

	if err := s.sink.Notify(notification); err != nil {
		s.log.Warn("failed to emit collaborator notification",
			"project_id", projectID,
			"user_id", assignee.ID,
			"error", err,
		)
	}
}
