package webserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moodmunch/web/internal/domain/recipe"
	"github.com/moodmunch/web/internal/notify"
	"github.com/moodmunch/web/pkg/errors"
)

// handleGenerate runs the full generation pipeline. Validation failures
// (an empty ingredient list, a missing mood) never reach the backend.
func (s *WebServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req recipe.GenerateRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	generated, err := s.workflow.Generate(r.Context(), s.controller(r).Token(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, generated)
}

// handleHistory returns the user's recent generation history
func (s *WebServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	records, err := s.apiClient.RecipeHistory(r.Context(), s.controller(r).Token(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []recipe.HistoryRecord{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"recipes": records})
}

// handleFavorites returns the user's favorited history records
func (s *WebServer) handleFavorites(w http.ResponseWriter, r *http.Request) {
	records, err := s.apiClient.Favorites(r.Context(), s.controller(r).Token())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []recipe.HistoryRecord{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"favorites": records})
}

// handleToggleFavorite flips a record's favorite flag. The response carries
// the server-confirmed state; a failure queues a toast and changes nothing.
func (s *WebServer) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		s.writeError(w, r, errors.NewValidationError("recipe id is required"))
		return
	}

	favorited, err := s.apiClient.ToggleFavorite(r.Context(), s.controller(r).Token(), recordID)
	if err != nil {
		s.notifications.Push(s.sessionID(r), notify.LevelError, "Could not update favorite. Please try again.")
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipe_id":    recordID,
		"is_favorited": favorited,
	})
}

// handleRate stores a 1-5 star rating on a history record
func (s *WebServer) handleRate(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		s.writeError(w, r, errors.NewValidationError("recipe id is required"))
		return
	}

	var body struct {
		Rating int `json:"rating"`
	}
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		s.writeError(w, r, errors.NewValidationError("rating must be between 1 and 5"))
		return
	}

	if err := s.apiClient.RateRecipe(r.Context(), s.controller(r).Token(), recordID, body.Rating); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipe_id": recordID,
		"rating":    body.Rating,
	})
}

// handleDeleteHistoryItem removes a record from the user's history
func (s *WebServer) handleDeleteHistoryItem(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		s.writeError(w, r, errors.NewValidationError("recipe id is required"))
		return
	}

	if err := s.apiClient.DeleteHistoryItem(r.Context(), s.controller(r).Token(), recordID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": recordID})
}
