package dto

import (
	"time"

	"github.com/yukikurage/team-dashboard/internal/board"
	"github.com/yukikurage/team-dashboard/internal/models"
	"github.com/yukikurage/team-dashboard/internal/tasks"
)

// ColumnDTO is one board column
type ColumnDTO struct {
	ID    models.TaskStatus `json:"id"`
	Title string            `json:"title"`
	Tasks []models.Task     `json:"tasks"`
}

// BoardResponse is the full board for one member filter
type BoardResponse struct {
	Member  string          `json:"member"`
	Columns []ColumnDTO     `json:"columns"`
	Stats   tasks.TaskStats `json:"stats"`
}

// TaskListResponse represents the tasks of one member filter
type TaskListResponse struct {
	Member string        `json:"member"`
	Tasks  []models.Task `json:"tasks"`
	Total  int           `json:"total"`
}

// MoveTaskRequest represents a synchronous move from one column to another
type MoveTaskRequest struct {
	From models.TaskStatus `json:"from" binding:"required"`
	To   models.TaskStatus `json:"to" binding:"required"`
}

// MoveTaskResponse is the outcome of a synchronous move; Code is set on failure
type MoveTaskResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// PatchTaskRequest represents the mock API patch body; omitted fields keep their value
type PatchTaskRequest struct {
	ID        string             `json:"id"`
	Status    *models.TaskStatus `json:"status"`
	UpdatedAt *time.Time         `json:"updatedAt"`
}

// DragStartRequest starts dragging a task
type DragStartRequest struct {
	TaskID string `json:"taskId" binding:"required"`
}

// DragDropRequest ends a drag over a column or a card inside one
type DragDropRequest struct {
	ColumnID    string `json:"columnId"`
	ContainerID string `json:"containerId"`
}

// DragResponse reports the machine state after a drag request
type DragResponse struct {
	Accepted bool        `json:"accepted"`
	State    board.State `json:"state"`
	Drop     *board.Drop `json:"drop,omitempty"`
}

// Conversion functions

// ToColumns converts grouped tasks into the three board columns in display order
func ToColumns(grouped map[models.TaskStatus][]models.Task) []ColumnDTO {
	columns := make([]ColumnDTO, 0, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		list := grouped[status]
		if list == nil {
			list = []models.Task{}
		}
		columns = append(columns, ColumnDTO{
			ID:    status,
			Title: string(status),
			Tasks: list,
		})
	}
	return columns
}

// ToDropTarget converts a drop request to a board target
func (r DragDropRequest) ToDropTarget() board.DropTarget {
	return board.DropTarget{ColumnID: r.ColumnID, ContainerID: r.ContainerID}
}
