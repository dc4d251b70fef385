package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// TaskStatuses lists the board columns in display order
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// IsValid reports whether s is one of the three board columns
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID          string       `gorm:"primarykey;type:varchar(64)" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'To Do'" json:"status"`
	AssignedTo  string       `gorm:"type:varchar(64);not null" json:"assignedTo"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	CreatedAt   time.Time    `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// TaskPatch is the body sent to the remote service when a task changes column
type TaskPatch struct {
	ID        string     `json:"id"`
	Status    TaskStatus `json:"status"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
