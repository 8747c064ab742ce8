package api

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/moodmunch/web/pkg/errors"
)

// ExtractionResult is the backend's answer to an ingredient extraction
// request, from either text or audio.
type ExtractionResult struct {
	Ingredients   []string `json:"ingredients"`
	Transcription string   `json:"transcription,omitempty"`
	Source        string   `json:"source"`
	Confidence    float64  `json:"confidence,omitempty"`
}

// ExtractFromText extracts ingredient names from free-form text
func (c *Client) ExtractFromText(ctx context.Context, token, text string) (*ExtractionResult, error) {
	payload := map[string]string{"text": text}
	var out ExtractionResult
	if err := c.call(ctx, http.MethodPost, "/ingredients/extract-from-text", token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExtractFromAudio uploads a recorded audio clip as multipart form data and
// returns the transcribed ingredients. This is the one request that bypasses
// the JSON primitive: it streams the file and runs on the extended-timeout
// client.
func (c *Client) ExtractFromAudio(ctx context.Context, token, filename string, audio io.Reader) (*ExtractionResult, error) {
	if !c.probe.Online() {
		return nil, errors.NewNetworkError(nil)
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, audio); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ingredients/extract-from-audio", pr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create upload request")
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	var out ExtractionResult
	if err := c.do(c.audioClient, req, http.MethodPost, "/ingredients/extract-from-audio", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
