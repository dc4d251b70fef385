package repository

import (
	"github.com/yukikurage/team-dashboard/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// List retrieves all tasks, optionally restricted to one assignee
	List(filter TaskFilter) ([]models.Task, error)

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// UpdateStatus writes a new status and update timestamp for a task
	UpdateStatus(patch models.TaskPatch) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssignedTo string
	Status     *models.TaskStatus
}

// MemberRepository defines the interface for team member data access
type MemberRepository interface {
	// List retrieves all team members
	List() ([]models.TeamMember, error)

	// FindByID finds a team member by ID
	FindByID(id string) (*models.TeamMember, error)

	// Update saves a team member
	Update(member *models.TeamMember) error
}
