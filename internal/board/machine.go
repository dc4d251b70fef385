// Package board tracks drag and drop on the task board and turns drops into
// task moves.
package board

import (
	"context"
	"sync"

	"github.com/yukikurage/team-dashboard/internal/models"
	"github.com/yukikurage/team-dashboard/internal/notify"
	"github.com/yukikurage/team-dashboard/internal/tasks"
	"go.uber.org/zap"
)

// Mover is the part of the task repository the board needs
type Mover interface {
	Find(taskID string) (models.Task, bool)
	Move(ctx context.Context, taskID string, from, to models.TaskStatus) (tasks.Confirmation, error)
}

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseDragging Phase = "dragging"
)

// State is a snapshot of the machine. TaskID and Source are set only while dragging.
type State struct {
	Phase  Phase             `json:"phase"`
	TaskID string            `json:"taskId,omitempty"`
	Source models.TaskStatus `json:"source,omitempty"`
}

// DropTarget is where a dragged task was released. A drop on a card reports
// the card's column as ContainerID, which wins over ColumnID.
type DropTarget struct {
	ColumnID    string `json:"columnId"`
	ContainerID string `json:"containerId,omitempty"`
}

// Column returns the effective target column
func (t DropTarget) Column() models.TaskStatus {
	if t.ContainerID != "" {
		return models.TaskStatus(t.ContainerID)
	}
	return models.TaskStatus(t.ColumnID)
}

// Drop describes what a drop did
type Drop struct {
	Dispatched bool              `json:"dispatched"`
	TaskID     string            `json:"taskId,omitempty"`
	From       models.TaskStatus `json:"from,omitempty"`
	To         models.TaskStatus `json:"to,omitempty"`
}

// Machine is the Idle/Dragging state machine of one board view
type Machine struct {
	mover Mover
	sink  notify.Sink
	log   *zap.Logger

	mu    sync.Mutex
	state State

	moves sync.WaitGroup
}

func NewMachine(mover Mover, sink notify.Sink, log *zap.Logger) *Machine {
	return &Machine{
		mover: mover,
		sink:  sink,
		log:   log.Named("board"),
		state: State{Phase: PhaseIdle},
	}
}

// Start begins dragging taskID. It is ignored while another drag is active or
// when the task is unknown.
func (m *Machine) Start(taskID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Phase == PhaseDragging {
		return false
	}
	task, ok := m.mover.Find(taskID)
	if !ok {
		m.log.Debug("drag start ignored: unknown task", zap.String("task_id", taskID))
		return false
	}

	m.state = State{Phase: PhaseDragging, TaskID: task.ID, Source: task.Status}
	return true
}

// Drop ends the current drag. A drop on a valid column other than the source
// dispatches a move in the background; the machine is Idle again on return
// and the move outcome goes to the sink.
func (m *Machine) Drop(ctx context.Context, target DropTarget) Drop {
	m.mu.Lock()
	state := m.state
	m.state = State{Phase: PhaseIdle}
	m.mu.Unlock()

	if state.Phase != PhaseDragging {
		return Drop{}
	}

	to := target.Column()
	if !to.IsValid() || to == state.Source {
		return Drop{TaskID: state.TaskID, From: state.Source}
	}

	moveCtx := context.WithoutCancel(ctx)
	m.moves.Add(1)
	go func() {
		defer m.moves.Done()
		m.report(tasks.Result(m.mover.Move(moveCtx, state.TaskID, state.Source, to)))
	}()

	return Drop{Dispatched: true, TaskID: state.TaskID, From: state.Source, To: to}
}

// Cancel abandons the current drag without moving anything
func (m *Machine) Cancel() {
	m.mu.Lock()
	m.state = State{Phase: PhaseIdle}
	m.mu.Unlock()
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Wait blocks until every dispatched move has reported
func (m *Machine) Wait() {
	m.moves.Wait()
}

func (m *Machine) report(result tasks.MoveResult) {
	if m.sink == nil {
		return
	}
	if result.Success {
		m.sink.Notify(notify.KindSuccess, result.Message)
		return
	}
	m.sink.Notify(notify.KindError, result.Message)
}
