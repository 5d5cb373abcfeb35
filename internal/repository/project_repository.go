package repository

import (
	"github.com/aokumo/dept-task-api/internal/database"
	"github.com/aokumo/dept-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindActiveByName finds a non-archived project by case-insensitive name.
// Archived projects are excluded so their names are free for reuse.
func (r *GormProjectRepository) FindActiveByName(name string) (*models.Project, error) {
	var project models.Project
	if err := r.db.
		Scopes(database.NotArchived).
		Where("LOWER(name) = LOWER(?)", name).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects scoped to departments
func (r *GormProjectRepository) List(departmentIDs []uint64, includeArchived bool) ([]models.Project, error) {
	var projects []models.Project

	if len(departmentIDs) == 0 {
		return []models.Project{}, nil
	}

	query := r.db.Where("department_id IN ?", departmentIDs)
	if !includeArchived {
		query = query.Scopes(database.NotArchived)
	}

	err := query.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// IsCollaborator reports whether the user holds a collaborator row
func (r *GormProjectRepository) IsCollaborator(projectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectCollaborator{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// UpsertCollaborator creates the collaborator row if absent; re-granting an
// existing membership revives the row rather than duplicating it
func (r *GormProjectRepository) UpsertCollaborator(collaborator *models.ProjectCollaborator) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted_at": gorm.Expr("NULL")}),
		}).
		Create(collaborator).Error
}

// RemoveCollaboratorIfNoAssignments deletes the collaborator row once the
// user's last assignment in the project is gone. Runs the count and the
// delete in one transaction.
func (r *GormProjectRepository) RemoveCollaboratorIfNoAssignments(projectID, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := countUserAssignments(tx, projectID, userID, &count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		return tx.Where("project_id = ? AND user_id = ?", projectID, userID).
			Delete(&models.ProjectCollaborator{}).Error
	})
}

func countUserAssignments(db *gorm.DB, projectID, userID uint64, count *int64) error {
	return db.Model(&models.TaskAssignment{}).
		Joins("JOIN tasks ON tasks.id = task_assignments.task_id").
		Where("tasks.project_id = ?", projectID).
		Where("tasks.deleted_at IS NULL").
		Where("task_assignments.user_id = ?", userID).
		Count(count).Error
}

// ListCollaboratorProfiles derives the collaborator set from the live
// assignment rows rather than reading the cached collaborator table
func (r *GormProjectRepository) ListCollaboratorProfiles(projectID uint64) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := r.db.Model(&models.UserProfile{}).
		Scopes(database.ActiveUsers).
		Distinct("user_profiles.*").
		Joins("JOIN task_assignments ON task_assignments.user_id = user_profiles.id").
		Joins("JOIN tasks ON tasks.id = task_assignments.task_id").
		Where("tasks.project_id = ?", projectID).
		Where("tasks.deleted_at IS NULL").
		Where("task_assignments.deleted_at IS NULL").
		Find(&profiles).Error
	return profiles, err
}

// ListCollaboratorIDs returns the user IDs of the project's collaborator rows
func (r *GormProjectRepository) ListCollaboratorIDs(projectID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.ProjectCollaborator{}).
		Where("project_id = ?", projectID).
		Pluck("user_id", &ids).Error
	return ids, err
}
