package api

import (
	"sync"
	"time"
)

// connectivityProbe tracks whether the backend looked reachable on the last
// attempt. After a transport failure, requests short-circuit to a network
// error until the recheck interval passes — one doomed call should not turn
// into a pile-up of guaranteed timeouts.
type connectivityProbe struct {
	mu          sync.Mutex
	offline     bool
	lastFailure time.Time
	recheck     time.Duration
}

func newConnectivityProbe(recheck time.Duration) *connectivityProbe {
	if recheck <= 0 {
		recheck = 30 * time.Second
	}
	return &connectivityProbe{recheck: recheck}
}

// Online reports whether a request should be attempted. While offline, one
// attempt is allowed through each recheck interval to detect recovery.
func (p *connectivityProbe) Online() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.offline {
		return true
	}
	if time.Since(p.lastFailure) >= p.recheck {
		// Let this caller be the probe attempt.
		p.lastFailure = time.Now()
		return true
	}
	return false
}

func (p *connectivityProbe) MarkFailure() {
	p.mu.Lock()
	p.offline = true
	p.lastFailure = time.Now()
	p.mu.Unlock()
}

func (p *connectivityProbe) MarkSuccess() {
	p.mu.Lock()
	p.offline = false
	p.mu.Unlock()
}
