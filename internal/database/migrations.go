package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database. The
// existence check reads pg_indexes, so this only runs on postgres; mysql and
// sqlite rely on the indexes AutoMigrate declares from model tags.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for department/project scoping and sorting
		{"tasks", "idx_tasks_department_id", "department_id"},
		{"tasks", "idx_tasks_owner_id", "owner_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Assignment lookups drive collaborator derivation
		{"task_assignments", "idx_task_assignments_task_id", "task_id"},
		{"task_assignments", "idx_task_assignments_user_id", "user_id"},

		// Collaborator visibility queries
		{"project_collaborators", "idx_project_collaborators_project_id", "project_id"},
		{"project_collaborators", "idx_project_collaborators_user_id", "user_id"},

		// Projects are looked up by active name for uniqueness checks
		{"projects", "idx_projects_department_id", "department_id"},

		// Notification inbox queries
		{"notifications", "idx_notifications_user_id", "user_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
