// Package webserver provides the web frontend HTTP server: the JSON surface
// the single-page app talks to, with a session cookie on the browser side
// and a bearer token on the backend side.
package webserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/moodmunch/web/internal/domain/mood"
	"github.com/moodmunch/web/internal/domain/recipe"
	"github.com/moodmunch/web/internal/infrastructure/api"
	"github.com/moodmunch/web/internal/infrastructure/config"
	"github.com/moodmunch/web/internal/notify"
	"github.com/moodmunch/web/internal/session"
	"github.com/moodmunch/web/pkg/errors"
	"github.com/moodmunch/web/pkg/healthcheck"
)

type contextKey string

const (
	sessionContextKey   contextKey = "session-controller"
	sessionIDContextKey contextKey = "session-id"
)

// WebServer represents the web frontend HTTP server
type WebServer struct {
	config        *config.Config
	logger        *zap.Logger
	server        *http.Server
	router        *chi.Mux
	apiClient     *api.Client
	sessions      *session.Manager
	notifications *notify.Queue
	gate          *mood.Gate
	workflow      *recipe.Workflow
	healthCheck   *healthcheck.HealthCheck
}

// NewWebServer creates a new web frontend server instance
func NewWebServer(
	cfg *config.Config,
	log *zap.Logger,
	apiClient *api.Client,
	sessions *session.Manager,
	healthCheck *healthcheck.HealthCheck,
) *WebServer {
	server := &WebServer{
		config:        cfg,
		logger:        log,
		apiClient:     apiClient,
		sessions:      sessions,
		notifications: notify.NewQueue(20),
		gate:          mood.NewGate(apiClient, log),
		workflow:      recipe.NewWorkflow(apiClient, log),
		healthCheck:   healthCheck,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the web frontend routes
func (s *WebServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.sessionMiddleware)

	// Health and landing page statistics
	r.Get("/health", s.handleHealthCheck)

	// Session state for the SPA shell
	r.Get("/session", s.handleSession)
	r.Put("/session/theme", s.handleSetTheme)
	r.Get("/notifications", s.handleNotifications)

	// Auth
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)
	r.Post("/auth/verify-email", s.handleVerifyEmail)
	r.Post("/auth/resend-verification", s.handleResendVerification)
	r.Post("/auth/forgot-password", s.handleForgotPassword)
	r.Post("/auth/reset-password", s.handleResetPassword)

	// Authenticated surface
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post("/auth/change-password", s.handleChangePassword)

		r.Post("/ingredients/extract-from-text", s.handleExtractFromText)
		r.Post("/ingredients/extract-from-audio", s.handleExtractFromAudio)

		r.Get("/mood/today", s.handleMoodToday)
		r.Post("/mood/daily-log", s.handleMoodLog)
		r.Get("/mood/insights", s.handleMoodInsights)
		r.Get("/mood/history", s.handleMoodHistory)

		r.Post("/recipes/generate", s.handleGenerate)
		r.Get("/recipes/history", s.handleHistory)
		r.Get("/recipes/favorites", s.handleFavorites)
		r.Post("/recipes/{id}/favorite", s.handleToggleFavorite)
		r.Post("/recipes/{id}/rate", s.handleRate)
		r.Delete("/recipes/history/{id}", s.handleDeleteHistoryItem)

		r.Get("/users/me", s.handleProfile)
		r.Put("/users/me", s.handleUpdateProfile)

		if s.config.Features.EnableAnalytics {
			r.Get("/analytics/dashboard", s.handleDashboard)
			r.Get("/analytics/mood-trends", s.handleMoodTrends)
			r.Get("/analytics/ingredient-stats", s.handleIngredientStats)
		}
	})

	return r
}

// Start begins serving requests
func (s *WebServer) Start() error {
	s.logger.Info("Starting web frontend server",
		zap.String("addr", s.server.Addr),
	)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down web frontend server")
	s.sessions.Stop()
	return s.server.Shutdown(ctx)
}

// Router exposes the route tree for tests
func (s *WebServer) Router() http.Handler {
	return s.router
}

// sessionMiddleware resolves the session cookie to a hydrated controller,
// minting a cookie for first-time visitors.
func (s *WebServer) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if cookie, err := r.Cookie(s.config.Session.CookieName); err == nil && cookie.Value != "" {
			sid = cookie.Value
		} else {
			sid = session.NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     s.config.Session.CookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.config.Session.Secure,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(s.config.Session.MaxAge.Seconds()),
			})
		}

		ctrl := s.sessions.Get(r.Context(), sid)
		ctx := context.WithValue(r.Context(), sessionContextKey, ctrl)
		ctx = context.WithValue(ctx, sessionIDContextKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth rejects requests from anonymous sessions
func (s *WebServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctrl := s.controller(r)
		if !ctrl.IsAuthenticated() {
			s.writeError(w, r, errors.NewUnauthorizedError(""))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// controller returns the session controller bound to this request
func (s *WebServer) controller(r *http.Request) *session.Controller {
	return r.Context().Value(sessionContextKey).(*session.Controller)
}

// sessionID returns the session identifier bound to this request, which on
// a first visit is the freshly minted one rather than the (absent) cookie.
func (s *WebServer) sessionID(r *http.Request) string {
	if sid, ok := r.Context().Value(sessionIDContextKey).(string); ok {
		return sid
	}
	return ""
}

func (s *WebServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("failed to encode response", zap.Error(err))
		}
	}
}

// writeError maps any error onto the JSON error envelope. AppError messages
// pass through to the UI verbatim; everything else is masked.
func (s *WebServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errors.Wrap(err, "request failed")
	requestID := middleware.GetReqID(r.Context())

	if appErr.Code == errors.CodeInternal {
		s.logger.Error("request failed",
			zap.String("request_id", requestID),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	s.writeJSON(w, appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}

func (s *WebServer) decode(r *http.Request, out interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return errors.NewBadRequestError("request body is not valid JSON")
	}
	return nil
}

// handleHealthCheck aggregates dependency health plus the backend's
// display-only statistics for the landing page.
func (s *WebServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response := s.healthCheck.Check(r.Context())

	status := http.StatusOK
	if response.Status == healthcheck.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	payload := map[string]interface{}{
		"status":  response.Status,
		"version": response.Version,
		"checks":  response.Checks,
	}
	if stats, err := s.apiClient.Health(r.Context()); err == nil {
		payload["backend"] = stats
	}

	s.writeJSON(w, status, payload)
}
