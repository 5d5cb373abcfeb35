package repository

import (
	"errors"

	"github.com/aokumo/dept-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrLastAssignment is returned when removing an assignment would leave the
// task with an empty assignment set.
var ErrLastAssignment = errors.New("task repository: task must keep at least one assignee")

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create persists the task and its initial assignments atomically
func (r *GormTaskRepository) Create(task *models.Task, assignments []models.TaskAssignment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		for i := range assignments {
			assignments[i].TaskID = task.ID
		}

		return tx.Create(&assignments).Error
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindByIDFull loads a task with the relations the domain service needs
func (r *GormTaskRepository) FindByIDFull(id uint64) (*models.Task, error) {
	return r.FindByID(id, "Owner", "Project", "Assignments", "Assignments.User", "Tags")
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	if len(filter.DepartmentIDs) == 0 {
		return []models.Task{}, 0, nil
	}

	query := r.db.Model(&models.Task{}).Where("tasks.department_id IN ?", filter.DepartmentIDs)

	if !filter.IncludeArchived {
		query = query.Where("tasks.is_archived = ?", false)
	}
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.OwnerID != nil {
		query = query.Where("tasks.owner_id = ?", *filter.OwnerID)
	}
	if filter.AssignedUserID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", *filter.AssignedUserID).
			Where("task_assignments.deleted_at IS NULL")
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}
	if filter.TouchedByUserID != nil {
		touchSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", *filter.TouchedByUserID).
			Where("task_assignments.deleted_at IS NULL")
		query = query.Where("tasks.owner_id = ? OR EXISTS (?)", *filter.TouchedByUserID, touchSubQuery)
	}
	if filter.DueDateFrom != nil {
		query = query.Where("tasks.due_date >= ?", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		query = query.Where("tasks.due_date < ?", *filter.DueDateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.SortByDueDate {
		listQuery = listQuery.Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC")
	} else {
		listQuery = listQuery.Order("tasks.created_at DESC")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Owner").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete hard-deletes a task and its owned rows
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("task_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.Task{}, id).Error
	})
}

// AddAssignment upserts an assignment row, reviving a soft-deleted one
func (r *GormTaskRepository) AddAssignment(assignment *models.TaskAssignment) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted_at": gorm.Expr("NULL")}),
		}).
		Create(assignment).Error
}

// RemoveAssignment deletes one assignment inside a transaction that first
// verifies another assignee remains, so racing removals serialize on the row.
func (r *GormTaskRepository) RemoveAssignment(taskID, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var assignment models.TaskAssignment
		if err := tx.Where("task_id = ? AND user_id = ?", taskID, userID).
			First(&assignment).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.TaskAssignment{}).
			Where("task_id = ?", taskID).
			Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastAssignment
		}

		return tx.Where("task_id = ? AND user_id = ?", taskID, userID).
			Delete(&models.TaskAssignment{}).Error
	})
}

// CountAssignments counts the live assignment rows of a task
func (r *GormTaskRepository) CountAssignments(taskID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.TaskAssignment{}).
		Where("task_id = ?", taskID).
		Count(&count).Error
	return count, err
}

// ListSubtasks returns the direct children of a task
func (r *GormTaskRepository) ListSubtasks(parentID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("parent_task_id = ?", parentID).
		Preload("Assignments").
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// ListAssignedInProject returns the project's tasks the user is assigned to
func (r *GormTaskRepository) ListAssignedInProject(projectID, userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id").
		Where("tasks.project_id = ?", projectID).
		Where("task_assignments.user_id = ?", userID).
		Where("task_assignments.deleted_at IS NULL").
		Preload("Assignments").
		Find(&tasks).Error
	return tasks, err
}

// ReplaceTags swaps the task's tag set atomically
func (r *GormTaskRepository) ReplaceTags(taskID uint64, names []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}

		if len(names) == 0 {
			return nil
		}

		tags := make([]models.TaskTag, len(names))
		for i, name := range names {
			tags[i] = models.TaskTag{TaskID: taskID, Name: name}
		}

		return tx.Create(&tags).Error
	})
}

// AddComment appends a comment to a task
func (r *GormTaskRepository) AddComment(comment *models.TaskComment) error {
	return r.db.Create(comment).Error
}

// ListComments lists the comments of a task, oldest first
func (r *GormTaskRepository) ListComments(taskID uint64) ([]models.TaskComment, error) {
	var comments []models.TaskComment
	err := r.db.Where("task_id = ?", taskID).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// LogAction appends a task action log row
func (r *GormTaskRepository) LogAction(entry *models.TaskActionLog) error {
	return r.db.Create(entry).Error
}
