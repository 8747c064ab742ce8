// Package recipe holds the recipe model and the generation workflow: the
// one multi-step control flow in the product, from ingredient collection
// through mood-steered generation to history-identifier recovery.
package recipe

import (
	"time"

	"github.com/moodmunch/web/internal/domain/mood"
)

// Cuisine is the cuisine preference sent with a generation request
type Cuisine string

const (
	CuisineAny           Cuisine = "any"
	CuisineItalian       Cuisine = "italian"
	CuisineChinese       Cuisine = "chinese"
	CuisineIndian        Cuisine = "indian"
	CuisineMexican       Cuisine = "mexican"
	CuisineAmerican      Cuisine = "american"
	CuisineJapanese      Cuisine = "japanese"
	CuisineFrench        Cuisine = "french"
	CuisineThai          Cuisine = "thai"
	CuisineMediterranean Cuisine = "mediterranean"
)

// NutritionInfo is the per-serving nutrition summary of a generated recipe
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber,omitempty"`
	Sugar    float64 `json:"sugar,omitempty"`
	Sodium   float64 `json:"sodium,omitempty"`
}

// Recipe is a generated recipe as returned by the backend
type Recipe struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Ingredients  []string      `json:"ingredients"`
	Instructions []string      `json:"instructions"`
	PrepTime     int           `json:"prep_time"`
	CookTime     int           `json:"cook_time"`
	TotalTime    int           `json:"total_time"`
	Servings     int           `json:"servings"`
	Difficulty   string        `json:"difficulty"`
	CuisineType  string        `json:"cuisine_type"`
	Nutrition    NutritionInfo `json:"nutrition_info"`
	Tags         []string      `json:"tags,omitempty"`
	MoodMessage  string        `json:"mood_message,omitempty"`
}

// HistoryRecord wraps a recipe with its persistent identity. The backend
// assigns the ID at generation time; the generate response itself never
// carries one.
type HistoryRecord struct {
	ID          string    `json:"id"`
	Recipe      Recipe    `json:"recipe"`
	Mood        mood.Mood `json:"mood,omitempty"`
	Rating      int       `json:"rating,omitempty"`
	IsFavorited bool      `json:"is_favorited"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerateRequest is the payload for recipe generation
type GenerateRequest struct {
	Ingredients       []string  `json:"ingredients"`
	Mood              mood.Mood `json:"mood"`
	CuisinePreference Cuisine   `json:"cuisine_preference"`
	Servings          int       `json:"servings"`
}

// Generated pairs the recipe with the history identifier recovered after
// generation, when recovery succeeded. An empty ID means the recipe is
// displayable but cannot be favorited or shared.
type Generated struct {
	Recipe   Recipe `json:"recipe"`
	RecordID string `json:"record_id,omitempty"`
}
