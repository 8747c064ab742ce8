package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/moodmunch/web/internal/domain/mood"
	"github.com/moodmunch/web/internal/domain/recipe"
)

// historyItem tolerates both id spellings before normalization
type historyItem struct {
	ID          string        `json:"id"`
	MongoID     string        `json:"_id"`
	Recipe      recipe.Recipe `json:"recipe"`
	Mood        mood.Mood     `json:"mood"`
	Rating      int           `json:"rating"`
	IsFavorited bool          `json:"is_favorited"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (h historyItem) toRecord() recipe.HistoryRecord {
	return recipe.HistoryRecord{
		ID:          canonicalID(h.ID, h.MongoID),
		Recipe:      h.Recipe,
		Mood:        h.Mood,
		Rating:      h.Rating,
		IsFavorited: h.IsFavorited,
		CreatedAt:   h.CreatedAt,
	}
}

// GenerateRecipe asks the backend for a recipe matching the ingredients,
// mood and preferences. The response carries no identifier.
func (c *Client) GenerateRecipe(ctx context.Context, token string, req recipe.GenerateRequest) (*recipe.Recipe, error) {
	var out recipe.Recipe
	if err := c.call(ctx, http.MethodPost, "/recipes/generate", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecipeHistory fetches the user's most recent history records
func (c *Client) RecipeHistory(ctx context.Context, token string, limit int) ([]recipe.HistoryRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var resp struct {
		Recipes []historyItem `json:"recipes"`
		Total   int           `json:"total"`
	}
	path := fmt.Sprintf("/recipes/history?limit=%d", limit)
	if err := c.call(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	records := make([]recipe.HistoryRecord, 0, len(resp.Recipes))
	for _, item := range resp.Recipes {
		records = append(records, item.toRecord())
	}
	return records, nil
}

// Favorites fetches the user's favorited history records
func (c *Client) Favorites(ctx context.Context, token string) ([]recipe.HistoryRecord, error) {
	var resp struct {
		Favorites []historyItem `json:"favorites"`
		Total     int           `json:"total"`
	}
	if err := c.call(ctx, http.MethodGet, "/recipes/favorites", token, nil, &resp); err != nil {
		return nil, err
	}
	records := make([]recipe.HistoryRecord, 0, len(resp.Favorites))
	for _, item := range resp.Favorites {
		records = append(records, item.toRecord())
	}
	return records, nil
}

// ToggleFavorite flips the favorite flag of a history record and returns
// the server-confirmed state, which is the single source of truth.
func (c *Client) ToggleFavorite(ctx context.Context, token, recordID string) (bool, error) {
	var resp struct {
		RecipeID    string `json:"recipe_id"`
		IsFavorited bool   `json:"is_favorited"`
		Message     string `json:"message"`
	}
	path := "/recipes/" + url.PathEscape(recordID) + "/favorite"
	if err := c.call(ctx, http.MethodPost, path, token, nil, &resp); err != nil {
		return false, err
	}
	return resp.IsFavorited, nil
}

// RateRecipe stores a 1-5 star rating on a history record
func (c *Client) RateRecipe(ctx context.Context, token, recordID string, stars int) error {
	payload := map[string]int{"rating": stars}
	path := "/recipes/" + url.PathEscape(recordID) + "/rate"
	return c.call(ctx, http.MethodPost, path, token, payload, nil)
}

// DeleteHistoryItem removes a record from the user's history
func (c *Client) DeleteHistoryItem(ctx context.Context, token, recordID string) error {
	path := "/recipes/history/" + url.PathEscape(recordID)
	return c.call(ctx, http.MethodDelete, path, token, nil, nil)
}
