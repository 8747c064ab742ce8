// Package testutils provides test data factories for consistent test data
// generation across packages.
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/moodmunch/web/internal/domain/mood"
	"github.com/moodmunch/web/internal/domain/recipe"
	"github.com/moodmunch/web/internal/domain/user"
)

// Factory produces domain fixtures from a seeded faker so failures reproduce
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory creates a factory with a deterministic seed
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// User builds a complete user profile
func (f *Factory) User() user.User {
	return user.User{
		ID:    uuid.NewString(),
		Email: f.faker.Email(),
		Name:  f.faker.Name(),
		DietaryPreferences: []string{
			f.faker.RandomString([]string{"vegetarian", "vegan", "pescatarian", "omnivore"}),
		},
		Allergies:   []string{f.faker.RandomString([]string{"peanuts", "shellfish", "gluten", "dairy"})},
		HealthGoals: []string{f.faker.RandomString([]string{"weight_loss", "muscle_gain", "heart_health"})},
	}
}

// Registration builds a valid registration payload for the given password
func (f *Factory) Registration(password string) user.Registration {
	return user.Registration{
		Name:            f.faker.Name(),
		Email:           f.faker.Email(),
		Password:        password,
		ConfirmPassword: password,
	}
}

// Recipe builds a plausible generated recipe
func (f *Factory) Recipe() recipe.Recipe {
	prep := f.faker.Number(5, 30)
	cook := f.faker.Number(10, 60)
	return recipe.Recipe{
		Title:       f.faker.Dinner(),
		Description: f.faker.Sentence(12),
		Ingredients: []string{f.faker.Vegetable(), f.faker.Fruit(), f.faker.Vegetable()},
		Instructions: []string{
			f.faker.Sentence(8),
			f.faker.Sentence(8),
			f.faker.Sentence(8),
		},
		PrepTime:    prep,
		CookTime:    cook,
		TotalTime:   prep + cook,
		Servings:    f.faker.Number(1, 6),
		Difficulty:  f.faker.RandomString([]string{"easy", "medium", "hard"}),
		CuisineType: f.faker.RandomString([]string{"italian", "mexican", "thai", "american"}),
		Nutrition: recipe.NutritionInfo{
			Calories: float64(f.faker.Number(200, 900)),
			Protein:  float64(f.faker.Number(5, 60)),
			Carbs:    float64(f.faker.Number(10, 120)),
			Fat:      float64(f.faker.Number(5, 50)),
		},
	}
}

// HistoryRecord builds a history entry wrapping a generated recipe
func (f *Factory) HistoryRecord() recipe.HistoryRecord {
	return recipe.HistoryRecord{
		ID:        uuid.NewString(),
		Recipe:    f.Recipe(),
		Mood:      mood.Mood(f.faker.RandomString([]string{"happy", "calm", "tired", "energetic"})),
		CreatedAt: time.Now().Add(-time.Duration(f.faker.Number(1, 72)) * time.Hour),
	}
}

// Answers builds a valid questionnaire answer set
func (f *Factory) Answers() mood.Answers {
	return mood.Answers{
		EnergyLevel:    f.faker.Number(1, 10),
		MealPreference: mood.MealPreference(f.faker.RandomString([]string{"comfort", "light", "hearty", "quick"})),
		EmotionalState: mood.EmotionalState(f.faker.RandomString([]string{"happy", "sad", "stressed", "calm"})),
	}
}
