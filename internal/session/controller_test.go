package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moodmunch/web/internal/domain/user"
	"github.com/moodmunch/web/pkg/errors"
)

// memStore is an in-memory Store with switchable failure modes
type memStore struct {
	records  map[string]Record
	readErr  error
	writeErr error
	clearErr error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]Record)}
}

func (s *memStore) Read(_ context.Context, sid string) (Record, bool, error) {
	if s.readErr != nil {
		return Record{}, false, s.readErr
	}
	rec, ok := s.records[sid]
	return rec, ok, nil
}

func (s *memStore) Write(_ context.Context, sid string, rec Record) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.records[sid] = rec
	return nil
}

func (s *memStore) Clear(_ context.Context, sid string) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	delete(s.records, sid)
	return nil
}

func testUser() *user.User {
	return &user.User{ID: "u1", Email: "ada@example.com", Name: "Ada"}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestHydrateCompleteRecord(t *testing.T) {
	store := newMemStore()
	store.records["sid"] = Record{
		Token: signedToken(t, time.Now().Add(time.Hour)),
		User:  testUser(),
		Theme: "dark",
	}
	c := NewController("sid", store, zaptest.NewLogger(t))

	c.Hydrate(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.True(t, snap.IsAuthenticated)
	assert.False(t, snap.Loading)
	assert.Equal(t, "Ada", snap.User.Name)
	assert.Equal(t, "dark", snap.Theme)
}

func TestHydratePartialRecordStartsAnonymous(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{"token without user", Record{Token: "tok"}},
		{"user without token", Record{User: testUser()}},
		{"empty record", Record{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.records["sid"] = tt.rec
			c := NewController("sid", store, zaptest.NewLogger(t))

			c.Hydrate(context.Background())

			snap := c.Snapshot()
			assert.Equal(t, StateAnonymous, snap.State)
			assert.False(t, snap.IsAuthenticated)
			assert.Nil(t, snap.User)
			assert.Empty(t, snap.Token)
		})
	}
}

func TestHydrateKeepsThemeFromPartialRecord(t *testing.T) {
	store := newMemStore()
	store.records["sid"] = Record{Theme: "dark"}
	c := NewController("sid", store, zaptest.NewLogger(t))

	c.Hydrate(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Equal(t, "dark", snap.Theme)
}

func TestHydrateExpiredTokenStartsAnonymous(t *testing.T) {
	store := newMemStore()
	store.records["sid"] = Record{
		Token: signedToken(t, time.Now().Add(-time.Hour)),
		User:  testUser(),
	}
	c := NewController("sid", store, zaptest.NewLogger(t))

	c.Hydrate(context.Background())
	assert.False(t, c.IsAuthenticated())
}

func TestHydrateOpaqueTokenGetsBenefitOfTheDoubt(t *testing.T) {
	store := newMemStore()
	store.records["sid"] = Record{Token: "not-a-jwt", User: testUser()}
	c := NewController("sid", store, zaptest.NewLogger(t))

	c.Hydrate(context.Background())
	assert.True(t, c.IsAuthenticated())
}

func TestHydrateStoreFailureStartsAnonymous(t *testing.T) {
	store := newMemStore()
	store.readErr = fmt.Errorf("disk on fire")
	c := NewController("sid", store, zaptest.NewLogger(t))

	c.Hydrate(context.Background())

	assert.False(t, c.IsAuthenticated())
	assert.False(t, c.Loading(), "a store failure must still resolve Initializing")
}

func TestHydrateIsIdempotent(t *testing.T) {
	store := newMemStore()
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())

	require.NoError(t, c.Login(context.Background(), "tok", testUser()))

	// A second hydrate must not clobber the logged-in state
	c.Hydrate(context.Background())
	assert.True(t, c.IsAuthenticated())
}

func TestLoginPersistsTokenAndUserTogether(t *testing.T) {
	store := newMemStore()
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())

	require.NoError(t, c.Login(context.Background(), "tok", testUser()))

	assert.True(t, c.IsAuthenticated())
	rec := store.records["sid"]
	assert.Equal(t, "tok", rec.Token)
	require.NotNil(t, rec.User)
	assert.Equal(t, "u1", rec.User.ID)
}

func TestLoginRequiresBothTokenAndUser(t *testing.T) {
	store := newMemStore()
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())

	assert.True(t, errors.Is(c.Login(context.Background(), "", testUser()), errors.CodeValidationFailed))
	assert.True(t, errors.Is(c.Login(context.Background(), "tok", nil), errors.CodeValidationFailed))
	assert.False(t, c.IsAuthenticated())
}

func TestLoginPersistFailureDegradesToAnonymous(t *testing.T) {
	store := newMemStore()
	store.writeErr = fmt.Errorf("store unavailable")
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())

	err := c.Login(context.Background(), "tok", testUser())
	require.NoError(t, err, "persist failures degrade, they do not propagate")

	snap := c.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.User)
}

func TestLogoutClearsMemoryAndStore(t *testing.T) {
	store := newMemStore()
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())
	require.NoError(t, c.Login(context.Background(), "tok", testUser()))

	c.Logout(context.Background())

	assert.False(t, c.IsAuthenticated())
	assert.Empty(t, c.Token())
	_, ok := store.records["sid"]
	assert.False(t, ok)
}

func TestLogoutSurvivesStoreFailure(t *testing.T) {
	store := newMemStore()
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())
	require.NoError(t, c.Login(context.Background(), "tok", testUser()))

	store.clearErr = fmt.Errorf("store unavailable")
	c.Logout(context.Background())

	assert.False(t, c.IsAuthenticated(), "memory clears even when the store does not")
}

func TestUpdateUserMergesAndRepersists(t *testing.T) {
	store := newMemStore()
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())
	require.NoError(t, c.Login(context.Background(), "tok", testUser()))

	name := "Ada Lovelace"
	err := c.UpdateUser(context.Background(), user.ProfileUpdate{
		Name:      &name,
		Allergies: []string{"peanuts"},
	})
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.Equal(t, "Ada Lovelace", snap.User.Name)
	assert.Equal(t, []string{"peanuts"}, snap.User.Allergies)
	assert.Equal(t, "ada@example.com", snap.User.Email, "unset fields stay put")
	assert.Equal(t, "Ada Lovelace", store.records["sid"].User.Name)
}

func TestUpdateUserRequiresAuthentication(t *testing.T) {
	store := newMemStore()
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())

	name := "x"
	err := c.UpdateUser(context.Background(), user.ProfileUpdate{Name: &name})
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestUpdateUserPersistFailureKeepsAuthentication(t *testing.T) {
	store := newMemStore()
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())
	require.NoError(t, c.Login(context.Background(), "tok", testUser()))

	store.writeErr = fmt.Errorf("store unavailable")
	name := "Ada L"
	require.NoError(t, c.UpdateUser(context.Background(), user.ProfileUpdate{Name: &name}))

	assert.True(t, c.IsAuthenticated(), "auth status did not change, nothing to degrade")
	assert.Equal(t, "Ada L", c.User().Name)
}

func TestSetThemeValidatesValues(t *testing.T) {
	store := newMemStore()
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())

	require.NoError(t, c.SetTheme(context.Background(), "dark"))
	assert.Equal(t, "dark", c.Snapshot().Theme)
	assert.Equal(t, "dark", store.records["sid"].Theme)

	err := c.SetTheme(context.Background(), "sepia")
	assert.True(t, errors.Is(err, errors.CodeValidationFailed))
}

func TestSubscribeReceivesTransitions(t *testing.T) {
	store := newMemStore()
	c := NewController("sid", store, zaptest.NewLogger(t))
	c.Hydrate(context.Background())

	ch := c.Subscribe()
	require.NoError(t, c.Login(context.Background(), "tok", testUser()))

	select {
	case snap := <-ch:
		assert.True(t, snap.IsAuthenticated)
	default:
		t.Fatal("expected a snapshot after login")
	}
}
