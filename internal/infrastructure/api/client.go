// Package api implements the single HTTP gateway to the MoodMunch backend.
// Every sub-resource — auth, ingredients, recipes, users, analytics, mood,
// health — routes through one call primitive that attaches the bearer
// token, enforces the request deadline, and maps failures onto the typed
// error taxonomy callers branch on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/moodmunch/web/internal/infrastructure/config"
	"github.com/moodmunch/web/pkg/errors"
)

// Client handles communication with the backend API
type Client struct {
	baseURL     string
	httpClient  *http.Client
	audioClient *http.Client
	logger      *zap.Logger
	metrics     *clientMetrics
	probe       *connectivityProbe
}

// NewClient creates a new API client instance. The audio client carries an
// extended timeout; transcription uploads routinely outlive the ordinary
// request deadline.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Backend.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Backend.RequestTimeout,
		},
		audioClient: &http.Client{
			Timeout: cfg.Backend.AudioTimeout,
		},
		logger:  logger,
		metrics: newClientMetrics(cfg.Features.EnableMetrics),
		probe:   newConnectivityProbe(cfg.Backend.ProbeInterval),
	}
}

// upstreamError is the FastAPI-style error payload: {"detail": "..."}
type upstreamError struct {
	Detail string `json:"detail"`
}

// call issues one JSON request. The Authorization header is attached if and
// only if token is non-empty. A nil body sends no payload; a nil out
// discards the response body after the status check.
func (c *Client) call(ctx context.Context, method, path, token string, body, out interface{}) error {
	if !c.probe.Online() {
		c.metrics.observe(method, path, "offline", 0)
		return errors.NewNetworkError(nil)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(c.httpClient, req, method, path, out)
}

// do executes a prepared request and maps the outcome onto the error
// taxonomy. Timeouts become UPSTREAM_TIMEOUT so callers can show a retry
// affordance; transport failures become NETWORK_UNAVAILABLE and trip the
// probe so the next calls short-circuit instead of timing out in turn.
func (c *Client) do(httpClient *http.Client, req *http.Request, method, path string, out interface{}) error {
	start := time.Now()

	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
	)

	resp, err := httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.metrics.observe(method, path, "timeout", time.Since(start))
			return errors.NewTimeoutError(err)
		}
		c.probe.MarkFailure()
		c.metrics.observe(method, path, "network_error", time.Since(start))
		return errors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	c.probe.MarkSuccess()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(method, path, "read_error", time.Since(start))
		return errors.NewNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.observe(method, path, fmt.Sprintf("http_%d", resp.StatusCode), time.Since(start))

		var ue upstreamError
		if jsonErr := json.Unmarshal(respBody, &ue); jsonErr != nil || ue.Detail == "" {
			c.logger.Warn("unparseable error payload from backend",
				zap.Int("status", resp.StatusCode),
				zap.String("path", path),
			)
			return errors.NewUpstreamError(resp.StatusCode, "")
		}
		return errors.NewUpstreamError(resp.StatusCode, ue.Detail)
	}

	c.metrics.observe(method, path, "ok", time.Since(start))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if stderrors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

// canonicalID collapses the backend's inconsistent id/_id naming into one
// field before results leave this package.
func canonicalID(ids ...string) string {
	for _, id := range ids {
		if id != "" {
			return id
		}
	}
	return ""
}

// Health pings the backend liveness endpoint and returns its display-only
// statistics payload for the landing page.
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.call(ctx, http.MethodGet, "/health", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
