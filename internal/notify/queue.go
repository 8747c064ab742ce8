// Package notify provides the transient notification queue that backs
// toast messages, decoupled from the handlers that trigger them so it can
// be tested without any rendering environment.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one transient message destined for a session's UI
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Queue holds pending notifications per session, bounded per session with
// oldest-first eviction.
type Queue struct {
	mu      sync.Mutex
	pending map[string][]Notification
	limit   int
}

// NewQueue creates a notification queue keeping at most limit entries per
// session.
func NewQueue(limit int) *Queue {
	if limit <= 0 {
		limit = 20
	}
	return &Queue{
		pending: make(map[string][]Notification),
		limit:   limit,
	}
}

// Push enqueues a notification for the given session
func (q *Queue) Push(sid string, level Level, message string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	list := append(q.pending[sid], n)
	if len(list) > q.limit {
		list = list[len(list)-q.limit:]
	}
	q.pending[sid] = list
	return n
}

// Drain returns and clears the session's pending notifications in FIFO
// order.
func (q *Queue) Drain(sid string) []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	list := q.pending[sid]
	delete(q.pending, sid)
	return list
}

// Len reports the number of pending notifications for a session
func (q *Queue) Len(sid string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending[sid])
}
