package webserver

import (
	"net/http"

	"github.com/moodmunch/web/internal/notify"
	"github.com/moodmunch/web/pkg/errors"
)

// handleSession returns the current session snapshot for the SPA shell
func (s *WebServer) handleSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.controller(r).Snapshot())
}

// handleSetTheme stores the light/dark preference with the session
func (s *WebServer) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctrl := s.controller(r)
	if err := ctrl.SetTheme(r.Context(), body.Theme); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// handleNotifications drains the session's pending toast messages
func (s *WebServer) handleNotifications(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(r)
	pending := s.notifications.Drain(sid)
	if pending == nil {
		pending = []notify.Notification{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": pending,
	})
}

// handleProfile returns the signed-in user's profile, refreshed from the
// backend so the session mirror cannot drift silently.
func (s *WebServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller(r)

	u, err := s.apiClient.GetProfile(r.Context(), ctrl.Token())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, u)
}

// handleUpdateProfile applies a partial edit server-side first, then merges
// it into the session only after the backend confirmed it.
func (s *WebServer) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update struct {
		Name               *string  `json:"name,omitempty"`
		DietaryPreferences []string `json:"dietary_preferences,omitempty"`
		Allergies          []string `json:"allergies,omitempty"`
		HealthGoals        []string `json:"health_goals,omitempty"`
	}
	if err := s.decode(r, &update); err != nil {
		s.writeError(w, r, err)
		return
	}
	if update.Name != nil && *update.Name == "" {
		s.writeError(w, r, errors.NewValidationError("name cannot be empty"))
		return
	}

	ctrl := s.controller(r)
	profileUpdate := toProfileUpdate(update.Name, update.DietaryPreferences, update.Allergies, update.HealthGoals)

	if _, err := s.apiClient.UpdateProfile(r.Context(), ctrl.Token(), profileUpdate); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := ctrl.UpdateUser(r.Context(), profileUpdate); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.notifications.Push(s.sessionID(r), notify.LevelSuccess, "Profile updated")
	s.writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// handleDashboard proxies the analytics dashboard aggregate
func (s *WebServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.apiClient.GetDashboard(r.Context(), s.controller(r).Token())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dashboard)
}

// handleMoodTrends proxies mood trend analytics
func (s *WebServer) handleMoodTrends(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)
	trends, err := s.apiClient.GetMoodTrends(r.Context(), s.controller(r).Token(), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"trends": trends})
}

// handleIngredientStats proxies per-ingredient usage statistics
func (s *WebServer) handleIngredientStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.apiClient.GetIngredientStats(r.Context(), s.controller(r).Token())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"ingredients": stats})
}
