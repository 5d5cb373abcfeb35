package repository

import (
	"github.com/aokumo/dept-task-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user profile
func (r *GormUserRepository) Create(user *models.UserProfile) error {
	return r.db.Create(user).Error
}

// FindByID finds a profile by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a profile by email
func (r *GormUserRepository) FindByEmail(email string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
