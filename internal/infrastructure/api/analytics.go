package api

import (
	"context"
	"fmt"
	"net/http"
)

// Dashboard is the analytics aggregate shown on the user's dashboard
type Dashboard struct {
	TotalRecipes    int                      `json:"total_recipes"`
	FavoriteCount   int                      `json:"favorite_count"`
	TopIngredients  []IngredientUsage        `json:"top_ingredients"`
	RecentActivity  []map[string]interface{} `json:"recent_activity"`
	MoodTrendsCount int                      `json:"mood_trends_count"`
}

// IngredientUsage is one entry of the top-ingredients ranking
type IngredientUsage struct {
	Ingredient string `json:"ingredient"`
	UsageCount int    `json:"usage_count"`
}

// MoodTrend is one day's mood aggregate
type MoodTrend struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// GetDashboard fetches the analytics dashboard aggregate
func (c *Client) GetDashboard(ctx context.Context, token string) (*Dashboard, error) {
	var out Dashboard
	if err := c.call(ctx, http.MethodGet, "/analytics/dashboard", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMoodTrends fetches mood trends over the last N days
func (c *Client) GetMoodTrends(ctx context.Context, token string, days int) ([]MoodTrend, error) {
	if days <= 0 {
		days = 30
	}
	var resp struct {
		Trends []MoodTrend `json:"trends"`
	}
	path := fmt.Sprintf("/analytics/mood-trends?days=%d", days)
	if err := c.call(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Trends, nil
}

// GetIngredientStats fetches per-ingredient usage statistics
func (c *Client) GetIngredientStats(ctx context.Context, token string) ([]IngredientUsage, error) {
	var resp struct {
		Ingredients []IngredientUsage `json:"ingredients"`
	}
	if err := c.call(ctx, http.MethodGet, "/analytics/ingredient-stats", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Ingredients, nil
}
