package webserver

import (
	"net/http"
	"strings"

	"github.com/moodmunch/web/pkg/errors"
)

// handleExtractFromText turns free-form text into an ingredient list
func (s *WebServer) handleExtractFromText(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		s.writeError(w, r, errors.NewValidationError("text is required"))
		return
	}

	result, err := s.apiClient.ExtractFromText(r.Context(), s.controller(r).Token(), body.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleExtractFromAudio streams an uploaded audio clip to the backend for
// transcription. The upload is size-capped and the file never touches disk.
func (s *WebServer) handleExtractFromAudio(w http.ResponseWriter, r *http.Request) {
	if !s.config.Features.EnableVoiceInput {
		s.writeError(w, r, errors.NewBadRequestError("voice input is not enabled"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.Backend.MaxAudioBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, errors.NewBadRequestError("audio upload requires a \"file\" form field"))
		return
	}
	defer file.Close()

	result, extractErr := s.apiClient.ExtractFromAudio(r.Context(), s.controller(r).Token(), header.Filename, file)
	if extractErr != nil {
		s.writeError(w, r, extractErr)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
