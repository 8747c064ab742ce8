package api

import (
	"context"
	"net/http"

	"github.com/moodmunch/web/internal/domain/user"
)

// GetProfile fetches the signed-in user's profile
func (c *Client) GetProfile(ctx context.Context, token string) (*user.User, error) {
	var block userBlock
	if err := c.call(ctx, http.MethodGet, "/users/me", token, nil, &block); err != nil {
		return nil, err
	}
	u := block.toUser()
	return &u, nil
}

// UpdateProfile applies a partial profile edit server-side
func (c *Client) UpdateProfile(ctx context.Context, token string, update user.ProfileUpdate) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.call(ctx, http.MethodPut, "/users/me", token, update, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
