package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moodmunch/web/internal/domain/user"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	rec := Record{
		Token: "tok",
		User:  &user.User{ID: "u1", Email: "ada@example.com", Name: "Ada"},
		Theme: "dark",
	}
	require.NoError(t, store.Write(ctx, "sid", rec))

	got, ok, err := store.Read(ctx, "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestFileStoreMissingRecord(t *testing.T) {
	store := newTestFileStore(t)

	_, ok, err := store.Read(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreCorruptRecordReadsAsMissing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "sid.json"), []byte("{not json"), 0o600))

	_, ok, err := store.Read(context.Background(), "sid")
	require.NoError(t, err, "corrupt data fails open, never hard")
	assert.False(t, ok)
}

func TestFileStoreClear(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "sid", Record{Token: "tok"}))
	require.NoError(t, store.Clear(ctx, "sid"))

	_, ok, err := store.Read(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)

	// clearing a missing record is not an error
	require.NoError(t, store.Clear(ctx, "sid"))
}

func TestFileStoreRefusesPathSeparators(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "../escape", Record{Token: "tok"}))
	assert.NoFileExists(t, filepath.Join(store.dir, "..", "escape.json"))
}

func TestRecordComplete(t *testing.T) {
	u := &user.User{ID: "u1"}
	assert.True(t, Record{Token: "tok", User: u}.Complete())
	assert.False(t, Record{Token: "tok"}.Complete())
	assert.False(t, Record{User: u}.Complete())
	assert.False(t, Record{}.Complete())
}
