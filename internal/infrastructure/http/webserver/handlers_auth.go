package webserver

import (
	"net/http"

	"github.com/moodmunch/web/internal/domain/user"
	"github.com/moodmunch/web/pkg/errors"
)

// handleRegister creates an account. There is no auto-login: the backend
// sends a verification email and the SPA shows a "check your email" state.
func (s *WebServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg user.Registration
	if err := s.decode(r, &reg); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := reg.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.apiClient.Register(r.Context(), reg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    created,
	})
}

// handleLogin authenticates against the backend and moves the session to
// Authenticated in one transition.
func (s *WebServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds user.Credentials
	if err := s.decode(r, &creds); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := creds.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, u, err := s.apiClient.Login(r.Context(), creds)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctrl := s.controller(r)
	if err := ctrl.Login(r.Context(), token, u); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// handleLogout clears the session; always succeeds from the SPA's view
func (s *WebServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller(r)
	ctrl.Logout(r.Context())
	s.writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// handleVerifyEmail redeems the verification token from the email link
func (s *WebServer) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Token == "" {
		s.writeError(w, r, errors.NewValidationError("verification token is required"))
		return
	}

	resp, err := s.apiClient.VerifyEmail(r.Context(), body.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *WebServer) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Email == "" {
		s.writeError(w, r, errors.NewValidationError("email is required"))
		return
	}

	resp, err := s.apiClient.ResendVerification(r.Context(), body.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *WebServer) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Email == "" {
		s.writeError(w, r, errors.NewValidationError("email is required"))
		return
	}

	resp, err := s.apiClient.ForgotPassword(r.Context(), body.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *WebServer) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Token == "" {
		s.writeError(w, r, errors.NewValidationError("reset token is required"))
		return
	}
	if len(body.NewPassword) < 8 {
		s.writeError(w, r, errors.NewValidationError("password must be at least 8 characters"))
		return
	}

	resp, err := s.apiClient.ResetPassword(r.Context(), body.Token, body.NewPassword)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *WebServer) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var change user.PasswordChange
	if err := s.decode(r, &change); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := change.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctrl := s.controller(r)
	resp, err := s.apiClient.ChangePassword(r.Context(), ctrl.Token(), change)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}
