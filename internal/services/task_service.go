package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/team-dashboard/internal/models"
	"github.com/yukikurage/team-dashboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrTaskIDRequired = errors.New("task id is required")
	ErrInvalidStatus  = errors.New("status must be one of To Do, In Progress, Done")
)

// TaskService handles the mock task API business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// PatchTaskInput represents a partial task update
type PatchTaskInput struct {
	ID        string
	Status    *models.TaskStatus
	UpdatedAt *time.Time
}

// ListTasks returns every task, optionally restricted to one assignee
func (s *TaskService) ListTasks(assignedTo string) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{AssignedTo: assignedTo})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// PatchTask merges the update into the stored task and returns the result
func (s *TaskService) PatchTask(input PatchTaskInput) (*models.Task, error) {
	if input.ID == "" {
		return nil, ErrTaskIDRequired
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	task, err := s.taskRepo.FindByID(input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.UpdatedAt != nil {
		task.UpdatedAt = input.UpdatedAt.UTC()
	} else {
		task.UpdatedAt = s.now().UTC()
	}

	patch := models.TaskPatch{ID: task.ID, Status: task.Status, UpdatedAt: task.UpdatedAt}
	if err := s.taskRepo.UpdateStatus(patch); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}
