package board

import (
	"sync"
	"time"

	"github.com/yukikurage/team-dashboard/internal/notify"
	"go.uber.org/zap"
)

// Board is the per-session view state: its drag machine and its notifications
type Board struct {
	ID            string
	Machine       *Machine
	Notifications *notify.Center

	lastSeen time.Time
}

// Registry hands out one Board per session id
type Registry struct {
	mover    Mover
	duration time.Duration
	log      *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	boards map[string]*Board
}

// NewRegistry creates boards whose notifications dismiss after duration
func NewRegistry(mover Mover, duration time.Duration, log *zap.Logger) *Registry {
	return &Registry{
		mover:    mover,
		duration: duration,
		log:      log,
		now:      time.Now,
		boards:   make(map[string]*Board),
	}
}

// Get returns the board for id, creating it on first use
func (r *Registry) Get(id string) *Board {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.boards[id]
	if !ok {
		log := r.log.With(zap.String("board_id", id))
		center := notify.NewCenter(r.duration, log)
		b = &Board{
			ID:            id,
			Machine:       NewMachine(r.mover, center, log),
			Notifications: center,
		}
		r.boards[id] = b
	}
	b.lastSeen = r.now()
	return b
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.boards)
}

// Wait blocks until the moves dispatched by every board have reported
func (r *Registry) Wait() {
	r.mu.Lock()
	boards := make([]*Board, 0, len(r.boards))
	for _, b := range r.boards {
		boards = append(boards, b)
	}
	r.mu.Unlock()

	for _, b := range boards {
		b.Machine.Wait()
	}
}

// Sweep drops boards not used within maxIdle and returns how many were removed
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, b := range r.boards {
		if b.lastSeen.Before(cutoff) {
			b.Notifications.Clear()
			delete(r.boards, id)
			removed++
		}
	}
	return removed
}
