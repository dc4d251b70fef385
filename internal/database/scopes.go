package database

import (
	"gorm.io/gorm"
)

// AssignedTo restricts a task query to one team member; an empty id keeps all tasks
func AssignedTo(memberID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if memberID == "" {
			return db
		}
		return db.Where("assigned_to = ?", memberID)
	}
}

// BoardOrder sorts tasks the way the board renders them inside a column
func BoardOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
