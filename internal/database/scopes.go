package database

import "gorm.io/gorm"

// NotArchived limits a query to rows whose is_archived flag is unset.
func NotArchived(db *gorm.DB) *gorm.DB {
	return db.Where("is_archived = ?", false)
}

// ActiveUsers limits a query to active user profiles.
func ActiveUsers(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
