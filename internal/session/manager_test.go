package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moodmunch/web/internal/domain/user"
)

func TestManagerGetHydratesBeforeReturning(t *testing.T) {
	store := newMemStore()
	store.records["sid"] = Record{Token: "tok", User: &user.User{ID: "u1"}}
	m := NewManager(store, time.Hour, 0, zaptest.NewLogger(t))
	defer m.Stop()

	ctrl := m.Get(context.Background(), "sid")
	assert.False(t, ctrl.Loading(), "callers must never observe Initializing")
	assert.True(t, ctrl.IsAuthenticated())
}

func TestManagerGetReturnsSameController(t *testing.T) {
	m := NewManager(newMemStore(), time.Hour, 0, zaptest.NewLogger(t))
	defer m.Stop()

	a := m.Get(context.Background(), "sid")
	b := m.Get(context.Background(), "sid")
	assert.Same(t, a, b)

	other := m.Get(context.Background(), "other")
	assert.NotSame(t, a, other)
}

func TestNewSessionIDIsUniqueAndURLSafe(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewSessionID()
		require.NotEmpty(t, id)
		assert.NotContains(t, id, "/")
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestManagerStopIsIdempotent(t *testing.T) {
	m := NewManager(newMemStore(), time.Hour, time.Minute, zaptest.NewLogger(t))
	m.Stop()
	m.Stop()
}
