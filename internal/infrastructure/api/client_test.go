package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moodmunch/web/internal/domain/mood"
	"github.com/moodmunch/web/internal/domain/user"
	"github.com/moodmunch/web/internal/infrastructure/config"
	"github.com/moodmunch/web/pkg/errors"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := &config.Config{
		Backend: config.BackendConfig{
			BaseURL:        baseURL,
			RequestTimeout: 2 * time.Second,
			AudioTimeout:   4 * time.Second,
			ProbeInterval:  time.Minute,
		},
	}
	return NewClient(cfg, zaptest.NewLogger(t))
}

func TestBearerTokenAttachedOnlyWhenPresent(t *testing.T) {
	var authHeaders []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	ctx := context.Background()

	_, err := c.Health(ctx)
	require.NoError(t, err)

	_, err = c.MoodToday(ctx, "tok-123")
	require.NoError(t, err)

	require.Len(t, authHeaders, 2)
	assert.Empty(t, authHeaders[0])
	assert.Equal(t, "Bearer tok-123", authHeaders[1])
}

func TestUpstreamDetailPassedThroughVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Please verify your email address"})
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	_, _, err := c.Login(context.Background(), user.Credentials{Email: "a@b.c", Password: "x"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeUpstreamError))
	assert.Equal(t, "Please verify your email address", errors.UserMessage(err))

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode())
}

func TestUnparseableErrorPayloadGetsGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>nginx error</html>"))
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	_, err := c.MoodToday(context.Background(), "tok")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeUpstreamError))
	assert.Equal(t, "Request failed", errors.UserMessage(err))
}

func TestTimeoutMapsToUpstreamTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	cfg := &config.Config{
		Backend: config.BackendConfig{
			BaseURL:        server.URL,
			RequestTimeout: 50 * time.Millisecond,
			AudioTimeout:   time.Second,
			ProbeInterval:  time.Minute,
		},
	}
	c := NewClient(cfg, zaptest.NewLogger(t))

	_, err := c.MoodToday(context.Background(), "tok")
	assert.True(t, errors.Is(err, errors.CodeUpstreamTimeout))
}

func TestTransportFailureMapsToNetworkUnavailable(t *testing.T) {
	// Reserve a port, then close it so nothing is listening.
	server := httptest.NewServer(http.NotFoundHandler())
	deadURL := server.URL
	server.Close()

	c := testClient(t, deadURL)
	_, err := c.Health(context.Background())
	assert.True(t, errors.Is(err, errors.CodeNetworkUnavailable))

	// The probe is now tripped: the next call short-circuits without
	// waiting out another connection attempt.
	start := time.Now()
	_, err = c.Health(context.Background())
	assert.True(t, errors.Is(err, errors.CodeNetworkUnavailable))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestProbeAllowsOneRecheckPerInterval(t *testing.T) {
	p := newConnectivityProbe(50 * time.Millisecond)

	assert.True(t, p.Online())

	p.MarkFailure()
	assert.False(t, p.Online())

	time.Sleep(60 * time.Millisecond)
	assert.True(t, p.Online(), "one probe attempt per interval")
	assert.False(t, p.Online(), "only one")

	p.MarkSuccess()
	assert.True(t, p.Online())
	assert.True(t, p.Online())
}

func TestLoginNormalizesMongoID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok",
			"token_type":   "bearer",
			"expires_in":   2592000,
			"user": map[string]interface{}{
				"_id":   "64ab12cd",
				"email": "ada@example.com",
				"name":  "Ada",
			},
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	token, u, err := c.Login(context.Background(), user.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "tok", token)
	assert.Equal(t, "64ab12cd", u.ID, "_id collapses into id before leaving this package")
}

func TestRecipeHistoryNormalizesIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"recipes": []map[string]interface{}{
				{"id": "a1", "recipe": map[string]interface{}{"title": "One"}, "mood": "happy"},
				{"_id": "b2", "recipe": map[string]interface{}{"title": "Two"}, "mood": "calm"},
			},
			"total": 2,
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	records, err := c.RecipeHistory(context.Background(), "tok", 5)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "a1", records[0].ID)
	assert.Equal(t, "b2", records[1].ID)
	assert.Equal(t, mood.MoodCalm, records[1].Mood)
}

func TestToggleFavoriteReturnsServerState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/rec-1/favorite", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"recipe_id":    "rec-1",
			"is_favorited": true,
			"message":      "Recipe added to favorites",
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	favorited, err := c.ToggleFavorite(context.Background(), "tok", "rec-1")
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestCanonicalID(t *testing.T) {
	assert.Equal(t, "a", canonicalID("a", "b"))
	assert.Equal(t, "b", canonicalID("", "b"))
	assert.Equal(t, "", canonicalID("", ""))
}
