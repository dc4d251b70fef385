package repository

import (
	"github.com/yukikurage/team-dashboard/internal/database"
	"github.com/yukikurage/team-dashboard/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// List retrieves tasks in board order
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := r.db.Model(&models.Task{}).Scopes(database.AssignedTo(filter.AssignedTo))
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Scopes(database.BoardOrder).Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateStatus writes status and updated_at; gorm.ErrRecordNotFound when no row matched
func (r *GormTaskRepository) UpdateStatus(patch models.TaskPatch) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ?", patch.ID).
		UpdateColumns(map[string]interface{}{
			"status":     patch.Status,
			"updated_at": patch.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
