package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/moodmunch/web/internal/domain/mood"
)

// MoodToday asks the backend whether the user has logged a mood today.
// The server decides what "today" means.
func (c *Client) MoodToday(ctx context.Context, token string) (*mood.TodayStatus, error) {
	var out mood.TodayStatus
	if err := c.call(ctx, http.MethodGet, "/mood/today", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogDailyMood persists today's mood log, overwriting an existing entry for
// the current day.
func (c *Client) LogDailyMood(ctx context.Context, token string, log mood.DailyLog) error {
	return c.call(ctx, http.MethodPost, "/mood/daily-log", token, log, nil)
}

// MoodInsights summarizes mood logs over the given window
type MoodInsights struct {
	MostCommonMood     string         `json:"most_common_mood"`
	AverageEnergyLevel float64        `json:"average_energy_level"`
	PreferredMealType  string         `json:"preferred_meal_type"`
	MoodTrend          string         `json:"mood_trend"`
	TotalLogs          int            `json:"total_logs"`
	LogsThisWeek       int            `json:"logs_this_week"`
	EnergyTrend        string         `json:"energy_trend"`
	MoodDistribution   map[string]int `json:"mood_distribution,omitempty"`
	MealDistribution   map[string]int `json:"meal_distribution,omitempty"`
}

// GetMoodInsights fetches aggregated mood analytics over the last N days
func (c *Client) GetMoodInsights(ctx context.Context, token string, days int) (*MoodInsights, error) {
	if days <= 0 {
		days = 30
	}
	var out MoodInsights
	path := fmt.Sprintf("/mood/insights?days=%d", days)
	if err := c.call(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MoodHistoryEntry is one past daily log
type MoodHistoryEntry struct {
	Mood           mood.Mood           `json:"mood"`
	EnergyLevel    int                 `json:"energy_level"`
	MealPreference mood.MealPreference `json:"meal_preference"`
	EmotionalState mood.EmotionalState `json:"emotional_state"`
	Timestamp      time.Time           `json:"timestamp"`
}

// MoodHistory fetches past daily logs within the window
func (c *Client) MoodHistory(ctx context.Context, token string, days, limit int) ([]MoodHistoryEntry, error) {
	if days <= 0 {
		days = 30
	}
	if limit <= 0 {
		limit = 50
	}
	var resp struct {
		Logs []MoodHistoryEntry `json:"logs"`
	}
	path := fmt.Sprintf("/mood/history?days=%d&limit=%d", days, limit)
	if err := c.call(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}
