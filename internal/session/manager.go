package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager maps browser session IDs to controllers, creating and hydrating
// them on demand and sweeping idle ones.
type Manager struct {
	mu          sync.RWMutex
	controllers map[string]*Controller
	store       Store
	logger      *zap.Logger
	maxIdle     time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewManager creates a session manager over the given durable store
func NewManager(store Store, maxIdle, sweepInterval time.Duration, logger *zap.Logger) *Manager {
	m := &Manager{
		controllers: make(map[string]*Controller),
		store:       store,
		logger:      logger,
		maxIdle:     maxIdle,
		stop:        make(chan struct{}),
	}
	if sweepInterval > 0 {
		go m.sweep(sweepInterval)
	}
	return m
}

// Get returns the controller for sid, creating and hydrating one on first
// sight. Hydration runs before the controller is returned, so callers never
// observe the Initializing state.
func (m *Manager) Get(ctx context.Context, sid string) *Controller {
	m.mu.RLock()
	ctrl, ok := m.controllers[sid]
	m.mu.RUnlock()

	if ok {
		ctrl.Touch()
		return ctrl
	}

	m.mu.Lock()
	if ctrl, ok = m.controllers[sid]; !ok {
		ctrl = NewController(sid, m.store, m.logger)
		m.controllers[sid] = ctrl
	}
	m.mu.Unlock()

	ctrl.Hydrate(ctx)
	ctrl.Touch()
	return ctrl
}

// NewSessionID generates a random url-safe session identifier
func NewSessionID() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

// Stop terminates the sweep goroutine
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// sweep drops controllers idle past maxIdle. Their durable records stay in
// the store until TTL; a returning browser simply re-hydrates.
func (m *Manager) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.maxIdle)
			m.mu.Lock()
			for sid, ctrl := range m.controllers {
				if ctrl.idleSince().Before(cutoff) {
					delete(m.controllers, sid)
					m.logger.Debug("swept idle session controller",
						zap.String("session_id", sid),
					)
				}
			}
			m.mu.Unlock()
		}
	}
}
