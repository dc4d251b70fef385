package tasks

import (
	"errors"
	"fmt"

	"github.com/yukikurage/team-dashboard/internal/models"
)

// MoveFailedMessage is the user-facing text of every failed move
const MoveFailedMessage = "Failed to move task"

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrStatusMismatch = errors.New("task is not in the source column")
	ErrInvalidStatus  = errors.New("unknown task status")
	ErrUnconfirmed    = errors.New("remote confirmation does not match the task")
)

// LoadError means neither the local store nor the remote service produced a task list
type LoadError struct {
	StoreErr  error
	RemoteErr error
}

func (e *LoadError) Error() string {
	if e.StoreErr != nil {
		return fmt.Sprintf("load tasks: local store: %v; remote: %v", e.StoreErr, e.RemoteErr)
	}
	return fmt.Sprintf("load tasks: %v", e.RemoteErr)
}

func (e *LoadError) Unwrap() []error {
	var errs []error
	if e.StoreErr != nil {
		errs = append(errs, e.StoreErr)
	}
	if e.RemoteErr != nil {
		errs = append(errs, e.RemoteErr)
	}
	return errs
}

// MoveError reports a move that was rejected or rolled back. Message is safe to show to users.
type MoveError struct {
	TaskID  string
	From    models.TaskStatus
	To      models.TaskStatus
	Message string
	Err     error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move task %s from %q to %q: %v", e.TaskID, e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
