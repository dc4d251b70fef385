// Package tasks owns the dashboard's task list and the move protocol that
// keeps it in sync with the local store and the remote service.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yukikurage/team-dashboard/internal/constants"
	"github.com/yukikurage/team-dashboard/internal/localstore"
	"github.com/yukikurage/team-dashboard/internal/models"
	"github.com/yukikurage/team-dashboard/internal/remote"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Confirmation describes a finished move
type Confirmation struct {
	TaskID    string            `json:"taskId"`
	From      models.TaskStatus `json:"from"`
	To        models.TaskStatus `json:"to"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Message   string            `json:"message"`
}

// MoveResult is the UI-facing outcome of a move
type MoveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Result flattens the return values of Move into a MoveResult
func Result(c Confirmation, err error) MoveResult {
	if err != nil {
		var moveErr *MoveError
		if errors.As(err, &moveErr) && moveErr.Message != "" {
			return MoveResult{Success: false, Message: moveErr.Message}
		}
		return MoveResult{Success: false, Message: MoveFailedMessage}
	}
	return MoveResult{Success: true, Message: c.Message}
}

// Repository is the single source of truth for tasks in a dashboard process.
// The task slice is never modified in place: every change swaps in a new
// slice, so a captured slice is an immutable snapshot.
type Repository struct {
	store  localstore.Store
	remote remote.TaskService
	log    *zap.Logger
	key    string
	now    func() time.Time

	mu     sync.RWMutex
	tasks  []models.Task
	loaded bool

	// persistMu orders local store writes so the stored list never goes
	// back to a state older than the one in memory at write time.
	persistMu sync.Mutex
	loads     singleflight.Group
}

func NewRepository(store localstore.Store, taskService remote.TaskService, log *zap.Logger) *Repository {
	return &Repository{
		store:  store,
		remote: taskService,
		log:    log.Named("tasks"),
		key:    constants.StorageKeyTasks,
		now:    time.Now,
	}
}

// Load returns the task list, reading the local store first and falling back
// to the remote service. Only the first successful call touches either, and
// concurrent callers share it, so one caller going away does not fail the rest.
func (r *Repository) Load(ctx context.Context) ([]models.Task, error) {
	if tasks, ok := r.current(); ok {
		return tasks, nil
	}

	_, err, _ := r.loads.Do("load", func() (interface{}, error) {
		if _, ok := r.current(); ok {
			return nil, nil
		}
		return nil, r.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	tasks, _ := r.current()
	return tasks, nil
}

func (r *Repository) load(ctx context.Context) error {
	var stored []models.Task
	found, storeErr := r.store.Get(ctx, r.key, &stored)
	if storeErr != nil {
		r.log.Warn("local store read failed, falling back to remote", zap.Error(storeErr))
	}
	if storeErr == nil && found && stored != nil {
		r.replace(r.dedupe(stored))
		r.log.Debug("tasks loaded from local store", zap.Int("count", len(stored)))
		return nil
	}

	fetched, err := r.remote.FetchAll(ctx)
	if err != nil {
		r.log.Error("task load failed", zap.Error(err))
		return &LoadError{StoreErr: storeErr, RemoteErr: err}
	}

	tasks := r.dedupe(fetched)
	if err := r.store.Set(ctx, r.key, tasks); err != nil {
		r.log.Warn("failed to cache fetched tasks", zap.Error(err))
	}
	r.replace(tasks)
	r.log.Info("tasks loaded from remote", zap.Int("count", len(tasks)))
	return nil
}

// Move changes the column of a task. The change is applied in memory and in
// the local store before the remote service confirms it; if the remote call
// fails the repository returns to the list it held when this call started.
//
// Once issued, a move runs to completion even if ctx is cancelled; the
// remote client's timeout bounds the confirm.
//
// Overlapping moves of the same task are not serialized: a later call may
// snapshot the earlier call's optimistic state, so its rollback restores that
// state rather than the one before the first move.
func (r *Repository) Move(ctx context.Context, taskID string, from, to models.TaskStatus) (Confirmation, error) {
	if from == to {
		return Confirmation{
			TaskID:  taskID,
			From:    from,
			To:      to,
			Message: fmt.Sprintf("Task is already in %q", to),
		}, nil
	}

	fail := func(err error) (Confirmation, error) {
		return Confirmation{}, &MoveError{TaskID: taskID, From: from, To: to, Message: MoveFailedMessage, Err: err}
	}

	if !to.IsValid() {
		return fail(fmt.Errorf("%w: %q", ErrInvalidStatus, to))
	}

	bg := context.WithoutCancel(ctx)
	if _, err := r.Load(bg); err != nil {
		return fail(err)
	}

	snapshot, updatedAt, err := r.apply(taskID, from, to)
	if err != nil {
		return fail(err)
	}

	if err := r.persist(bg); err != nil {
		r.rollback(bg, snapshot)
		r.log.Warn("move rolled back: local store write failed", zap.String("task_id", taskID), zap.Error(err))
		return fail(err)
	}

	confirmed, err := r.remote.Patch(bg, models.TaskPatch{ID: taskID, Status: to, UpdatedAt: updatedAt})
	if err == nil && confirmed.ID != taskID {
		err = fmt.Errorf("%w: got id %q", ErrUnconfirmed, confirmed.ID)
	}
	if err != nil {
		r.rollback(bg, snapshot)
		r.log.Warn("move rolled back: remote confirm failed",
			zap.String("task_id", taskID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.Error(err),
		)
		return fail(err)
	}

	r.log.Info("task moved",
		zap.String("task_id", taskID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	return Confirmation{
		TaskID:    taskID,
		From:      from,
		To:        to,
		UpdatedAt: updatedAt,
		Message:   fmt.Sprintf("Task moved to %q", to),
	}, nil
}

// apply swaps in a list with the task moved and returns the list it replaced
func (r *Repository) apply(taskID string, from, to models.TaskStatus) ([]models.Task, time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := indexOf(r.tasks, taskID)
	if idx < 0 {
		return nil, time.Time{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if r.tasks[idx].Status != from {
		return nil, time.Time{}, fmt.Errorf("%w: task is in %q", ErrStatusMismatch, r.tasks[idx].Status)
	}

	snapshot := r.tasks
	next := clone(r.tasks)
	updatedAt := r.nextTimestamp(next[idx].UpdatedAt)
	next[idx].Status = to
	next[idx].UpdatedAt = updatedAt
	r.tasks = next

	return snapshot, updatedAt, nil
}

func (r *Repository) rollback(ctx context.Context, snapshot []models.Task) {
	r.mu.Lock()
	r.tasks = snapshot
	r.mu.Unlock()

	if err := r.persist(ctx); err != nil {
		r.log.Error("failed to restore local store after rollback", zap.Error(err))
	}
}

// persist writes the current in-memory list to the local store
func (r *Repository) persist(ctx context.Context) error {
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	r.mu.RLock()
	tasks := r.tasks
	r.mu.RUnlock()

	return r.store.Set(ctx, r.key, tasks)
}

// nextTimestamp returns the current time at millisecond precision, moved
// forward if needed so it is strictly after prev.
func (r *Repository) nextTimestamp(prev time.Time) time.Time {
	now := r.now().UTC().Truncate(time.Millisecond)
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

// Loaded reports whether a task list is held in memory
func (r *Repository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Tasks returns a copy of the current list
func (r *Repository) Tasks() []models.Task {
	tasks, _ := r.current()
	if tasks == nil {
		return []models.Task{}
	}
	return tasks
}

// Find returns the current state of one task
func (r *Repository) Find(taskID string) (models.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := indexOf(r.tasks, taskID); idx >= 0 {
		return r.tasks[idx], true
	}
	return models.Task{}, false
}

// ForMember returns the tasks assigned to memberID, or all tasks when it is empty
func (r *Repository) ForMember(memberID string) []models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return FilterByAssignee(r.tasks, memberID)
}

// ByStatus groups the member's tasks into board columns
func (r *Repository) ByStatus(memberID string) map[models.TaskStatus][]models.Task {
	return GroupByStatus(r.ForMember(memberID))
}

// Stats projects the member's tasks into TaskStats
func (r *Repository) Stats(memberID string) TaskStats {
	return ComputeStats(r.ForMember(memberID))
}

func (r *Repository) current() ([]models.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return nil, false
	}
	return clone(r.tasks), true
}

func (r *Repository) replace(tasks []models.Task) {
	r.mu.Lock()
	r.tasks = tasks
	r.loaded = true
	r.mu.Unlock()
}

// dedupe keeps the first occurrence of every id
func (r *Repository) dedupe(tasks []models.Task) []models.Task {
	seen := make(map[string]struct{}, len(tasks))
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if _, dup := seen[task.ID]; dup {
			r.log.Warn("dropping duplicate task id", zap.String("task_id", task.ID))
			continue
		}
		seen[task.ID] = struct{}{}
		out = append(out, task)
	}
	return out
}

func indexOf(tasks []models.Task, taskID string) int {
	for i := range tasks {
		if tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

func clone(tasks []models.Task) []models.Task {
	if tasks == nil {
		return nil
	}
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}
