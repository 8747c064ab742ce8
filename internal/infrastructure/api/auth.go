package api

import (
	"context"
	"net/http"

	"github.com/moodmunch/web/internal/domain/user"
)

// LoginResponse is the token-and-user pair a successful login returns
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	User        userBlock `json:"user"`
}

// userBlock tolerates both id spellings the backend emits
type userBlock struct {
	ID                 string   `json:"id"`
	MongoID            string   `json:"_id"`
	Email              string   `json:"email"`
	Name               string   `json:"name"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	HealthGoals        []string `json:"health_goals"`
}

func (b userBlock) toUser() user.User {
	return user.User{
		ID:                 canonicalID(b.ID, b.MongoID),
		Email:              b.Email,
		Name:               b.Name,
		DietaryPreferences: b.DietaryPreferences,
		Allergies:          b.Allergies,
		HealthGoals:        b.HealthGoals,
	}
}

// StatusResponse is the generic message payload non-login auth endpoints
// return.
type StatusResponse struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// Register creates a new account. The backend sends a verification email;
// there is no auto-login, the returned profile is informational only.
func (c *Client) Register(ctx context.Context, reg user.Registration) (*user.User, error) {
	var block userBlock
	if err := c.call(ctx, http.MethodPost, "/auth/register", "", reg, &block); err != nil {
		return nil, err
	}
	created := block.toUser()
	return &created, nil
}

// Login authenticates and returns the bearer token with the user profile
func (c *Client) Login(ctx context.Context, creds user.Credentials) (string, *user.User, error) {
	var resp LoginResponse
	if err := c.call(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return "", nil, err
	}
	u := resp.User.toUser()
	return resp.AccessToken, &u, nil
}

// VerifyEmail redeems an email verification token
func (c *Client) VerifyEmail(ctx context.Context, token string) (*StatusResponse, error) {
	var resp StatusResponse
	payload := map[string]string{"token": token}
	if err := c.call(ctx, http.MethodPost, "/auth/verify-email", "", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResendVerification requests a fresh verification email
func (c *Client) ResendVerification(ctx context.Context, email string) (*StatusResponse, error) {
	var resp StatusResponse
	payload := map[string]string{"email": email}
	if err := c.call(ctx, http.MethodPost, "/auth/resend-verification", "", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword starts the password reset flow
func (c *Client) ForgotPassword(ctx context.Context, email string) (*StatusResponse, error) {
	var resp StatusResponse
	payload := map[string]string{"email": email}
	if err := c.call(ctx, http.MethodPost, "/auth/forgot-password", "", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetPassword redeems a reset token with the new password
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (*StatusResponse, error) {
	var resp StatusResponse
	payload := map[string]string{"token": token, "new_password": newPassword}
	if err := c.call(ctx, http.MethodPost, "/auth/reset-password", "", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangePassword changes the password of the signed-in user
func (c *Client) ChangePassword(ctx context.Context, token string, change user.PasswordChange) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.call(ctx, http.MethodPost, "/auth/change-password", token, change, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
