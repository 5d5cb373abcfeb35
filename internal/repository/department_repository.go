package repository

import (
	"github.com/aokumo/dept-task-api/internal/models"
	"gorm.io/gorm"
)

// GormDepartmentRepository is a GORM implementation of DepartmentRepository
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Create creates a new department
func (r *GormDepartmentRepository) Create(department *models.Department) error {
	return r.db.Create(department).Error
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(id uint64) (*models.Department, error) {
	var department models.Department
	if err := r.db.First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// FindByJoinCode finds a department by join code
func (r *GormDepartmentRepository) FindByJoinCode(code string) (*models.Department, error) {
	var department models.Department
	if err := r.db.Where("join_code = ?", code).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// List returns departments filtered to the given IDs; nil means all
func (r *GormDepartmentRepository) List(ids []uint64) ([]models.Department, error) {
	var departments []models.Department
	query := r.db.Order("name ASC")
	if ids != nil {
		query = query.Where("id IN ?", ids)
	}
	err := query.Find(&departments).Error
	return departments, err
}

// Update updates a department
func (r *GormDepartmentRepository) Update(department *models.Department) error {
	return r.db.Save(department).Error
}

// ReachableIDs walks the parent/child edges breadth-first and returns the
// root department plus every transitive subordinate. The tree is small
// (one row per department), so it is loaded whole rather than queried
// recursively.
func (r *GormDepartmentRepository) ReachableIDs(rootID uint64) (map[uint64]struct{}, error) {
	var departments []models.Department
	if err := r.db.Select("id", "parent_id").Find(&departments).Error; err != nil {
		return nil, err
	}

	children := make(map[uint64][]uint64, len(departments))
	for _, d := range departments {
		if d.ParentID != nil {
			children[*d.ParentID] = append(children[*d.ParentID], d.ID)
		}
	}

	reachable := map[uint64]struct{}{rootID: {}}
	queue := []uint64{rootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if _, seen := reachable[child]; seen {
				continue
			}
			reachable[child] = struct{}{}
			queue = append(queue, child)
		}
	}

	return reachable, nil
}
