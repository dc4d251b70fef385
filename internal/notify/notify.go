// Package notify collects transient user notifications that dismiss themselves.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives notifications
type Sink interface {
	Notify(kind Kind, message string) string
}

// Center keeps active notifications until their display interval elapses
type Center struct {
	duration time.Duration
	log      *zap.Logger

	mu     sync.Mutex
	items  []Notification
	timers map[string]*time.Timer
}

// NewCenter creates a Center whose notifications last duration; zero keeps them until dismissed
func NewCenter(duration time.Duration, log *zap.Logger) *Center {
	return &Center{
		duration: duration,
		log:      log.Named("notify"),
		timers:   make(map[string]*time.Timer),
	}
}

func (c *Center) Notify(kind Kind, message string) string {
	return c.NotifyFor(kind, message, c.duration)
}

// NotifyFor adds a notification with its own display interval and returns its id
func (c *Center) NotifyFor(kind Kind, message string, duration time.Duration) string {
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
	}

	c.mu.Lock()
	c.items = append(c.items, n)
	if duration > 0 {
		c.timers[n.ID] = time.AfterFunc(duration, func() { c.Dismiss(n.ID) })
	}
	c.mu.Unlock()

	switch kind {
	case KindError:
		c.log.Warn(message, zap.String("notification_id", n.ID))
	default:
		c.log.Info(message, zap.String("notification_id", n.ID), zap.String("kind", string(kind)))
	}

	return n.ID
}

func (c *Center) Success(message string) string { return c.Notify(KindSuccess, message) }
func (c *Center) Error(message string) string   { return c.Notify(KindError, message) }
func (c *Center) Info(message string) string    { return c.Notify(KindInfo, message) }

// Active returns the notifications that have not been dismissed, oldest first
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Dismiss removes a notification and reports whether it was active
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}

	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every notification
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.items = nil
}
