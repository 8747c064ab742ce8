package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/moodmunch/web/internal/domain/user"
	"github.com/moodmunch/web/pkg/errors"
)

// State is the controller's authentication state
type State int

const (
	StateInitializing State = iota
	StateAnonymous
	StateAuthenticated
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is one coherent view of the session, published atomically on
// every transition so observers never see memory and storage mid-change.
type Snapshot struct {
	State           State      `json:"-"`
	IsAuthenticated bool       `json:"is_authenticated"`
	Loading         bool       `json:"loading"`
	Token           string     `json:"-"`
	User            *user.User `json:"user,omitempty"`
	Theme           string     `json:"theme,omitempty"`
}

// Controller owns one browser session's authentication state machine:
// Initializing at construction, resolved by Hydrate to Authenticated or
// Anonymous, then moved by Login, Logout and UpdateUser. Every
// status-changing transition updates memory and the durable store under a
// single lock hold.
type Controller struct {
	mu     sync.RWMutex
	sid    string
	store  Store
	logger *zap.Logger

	state State
	token string
	user  *user.User
	theme string

	subs []chan Snapshot

	lastSeen time.Time
}

// NewController creates a controller in the Initializing state
func NewController(sid string, store Store, logger *zap.Logger) *Controller {
	return &Controller{
		sid:      sid,
		store:    store,
		logger:   logger,
		state:    StateInitializing,
		lastSeen: time.Now(),
	}
}

// Hydrate resolves Initializing by consulting the durable store. A record
// with both token and user yields Authenticated; anything else — missing,
// partial, corrupt, a store error, or an expired token — yields Anonymous.
// Store failures never propagate.
func (c *Controller) Hydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInitializing {
		return
	}

	rec, ok, err := c.store.Read(ctx, c.sid)
	if err != nil {
		c.logger.Warn("session store read failed, starting anonymous",
			zap.String("session_id", c.sid),
			zap.Error(err),
		)
		c.toAnonymousLocked()
		return
	}
	if !ok || !rec.Complete() {
		c.theme = rec.Theme
		c.toAnonymousLocked()
		return
	}
	if tokenExpired(rec.Token) {
		c.logger.Debug("stored token expired, starting anonymous",
			zap.String("session_id", c.sid),
		)
		c.theme = rec.Theme
		c.toAnonymousLocked()
		return
	}

	c.token = rec.Token
	c.user = rec.User
	c.theme = rec.Theme
	c.state = StateAuthenticated
	c.notifyLocked()
}

// Login moves the session to Authenticated and persists token and user as
// one logical unit. A persistence failure degrades the session back to
// Anonymous instead of raising: durability is best-effort, and memory must
// never claim a state the mirror could not record.
func (c *Controller) Login(ctx context.Context, token string, u *user.User) error {
	if token == "" || u == nil {
		return errors.NewValidationError("login requires both a token and a user")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
	c.user = u
	c.state = StateAuthenticated

	if err := c.store.Write(ctx, c.sid, c.recordLocked()); err != nil {
		c.logger.Warn("session persist failed on login, degrading to anonymous",
			zap.String("session_id", c.sid),
			zap.Error(err),
		)
		c.toAnonymousLocked()
		return nil
	}

	c.notifyLocked()
	return nil
}

// Logout clears memory and durable storage as one logical unit
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(ctx, c.sid); err != nil {
		c.logger.Warn("session store clear failed on logout",
			zap.String("session_id", c.sid),
			zap.Error(err),
		)
	}
	c.toAnonymousLocked()
}

// UpdateUser merges a profile edit into the in-memory user and re-persists.
// This is the Authenticated self-loop: no re-authentication, no token
// refresh. A persist failure is logged only — authentication status did not
// change, so there is nothing to degrade.
func (c *Controller) UpdateUser(ctx context.Context, update user.ProfileUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAuthenticated || c.user == nil {
		return errors.NewUnauthorizedError("no signed-in user to update")
	}

	merged := c.user.Merge(update)
	c.user = &merged

	if err := c.store.Write(ctx, c.sid, c.recordLocked()); err != nil {
		c.logger.Warn("session persist failed on profile update",
			zap.String("session_id", c.sid),
			zap.Error(err),
		)
	}

	c.notifyLocked()
	return nil
}

// SetTheme stores the display theme preference alongside the session
func (c *Controller) SetTheme(ctx context.Context, theme string) error {
	if theme != "light" && theme != "dark" {
		return errors.NewValidationError(`theme must be "light" or "dark"`)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.theme = theme
	if err := c.store.Write(ctx, c.sid, c.recordLocked()); err != nil {
		c.logger.Warn("session persist failed on theme change",
			zap.String("session_id", c.sid),
			zap.Error(err),
		)
	}
	return nil
}

// Snapshot returns a coherent view of the current session state
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// IsAuthenticated reports whether the session holds both token and user
func (c *Controller) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == StateAuthenticated
}

// Token returns the bearer token, empty while anonymous
func (c *Controller) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User returns the signed-in user, nil while anonymous
func (c *Controller) User() *user.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Loading reports whether the session is still Initializing
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == StateInitializing
}

// Subscribe returns a channel receiving a snapshot per state transition.
// Slow subscribers miss intermediate snapshots rather than block the
// controller.
func (c *Controller) Subscribe() <-chan Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Snapshot, 4)
	c.subs = append(c.subs, ch)
	return ch
}

// Touch records activity for idle-session sweeping
func (c *Controller) Touch() {
	c.mu.Lock()
	c.lastSeen = time.Now()
	c.mu.Unlock()
}

func (c *Controller) idleSince() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSeen
}

func (c *Controller) toAnonymousLocked() {
	c.token = ""
	c.user = nil
	c.state = StateAnonymous
	c.notifyLocked()
}

func (c *Controller) recordLocked() Record {
	return Record{
		Token: c.token,
		User:  c.user,
		Theme: c.theme,
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:           c.state,
		IsAuthenticated: c.state == StateAuthenticated,
		Loading:         c.state == StateInitializing,
		Token:           c.token,
		User:            c.user,
		Theme:           c.theme,
	}
}

func (c *Controller) notifyLocked() {
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// tokenExpired parses the bearer token's exp claim without verifying the
// signature — verification is the server's job, this only avoids hydrating
// a session the backend is guaranteed to reject. Tokens that don't parse
// as JWTs are given the benefit of the doubt.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
