package webserver

import (
	"net/http"

	"github.com/moodmunch/web/internal/domain/mood"
	"github.com/moodmunch/web/internal/infrastructure/api"
)

// handleMoodToday reports whether the recipe flow can skip the daily
// questionnaire. A failed backend query comes back as an unset context, so
// the SPA shows the questionnaire rather than an error.
func (s *WebServer) handleMoodToday(w http.ResponseWriter, r *http.Request) {
	moodCtx := s.gate.Check(r.Context(), s.controller(r).Token())
	s.writeJSON(w, http.StatusOK, moodCtx)
}

// handleMoodLog completes the 3-question daily flow and returns the derived
// mood context. Posting again the same day overwrites that day's entry.
func (s *WebServer) handleMoodLog(w http.ResponseWriter, r *http.Request) {
	var answers mood.Answers
	if err := s.decode(r, &answers); err != nil {
		s.writeError(w, r, err)
		return
	}

	moodCtx, err := s.gate.Complete(r.Context(), s.controller(r).Token(), answers)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, moodCtx)
}

// handleMoodInsights proxies aggregated mood analytics
func (s *WebServer) handleMoodInsights(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)
	insights, err := s.apiClient.GetMoodInsights(r.Context(), s.controller(r).Token(), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, insights)
}

// handleMoodHistory proxies past daily logs
func (s *WebServer) handleMoodHistory(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)
	limit := queryInt(r, "limit", 50)
	logs, err := s.apiClient.MoodHistory(r.Context(), s.controller(r).Token(), days, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if logs == nil {
		logs = []api.MoodHistoryEntry{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}
