// Package mood implements the daily mood model: the canonical mood labels,
// the three-question answer set, and the derivation that folds the answers
// into a single label used to steer recipe generation.
package mood

import (
	"time"

	"github.com/moodmunch/web/pkg/errors"
)

// Mood is the canonical mood label attached to a recipe generation request
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodEnergetic Mood = "energetic"
	MoodTired     Mood = "tired"
	MoodStressed  Mood = "stressed"
	MoodCalm      Mood = "calm"
	MoodExcited   Mood = "excited"
	MoodBored     Mood = "bored"
)

// MealPreference is the meal-type answer of the daily questionnaire
type MealPreference string

const (
	MealComfort MealPreference = "comfort"
	MealLight   MealPreference = "light"
	MealHearty  MealPreference = "hearty"
	MealQuick   MealPreference = "quick"
)

// EmotionalState is the emotion answer of the daily questionnaire.
// "energetic" and "tired" are derived labels only, never direct answers.
type EmotionalState string

const (
	EmotionHappy    EmotionalState = "happy"
	EmotionSad      EmotionalState = "sad"
	EmotionStressed EmotionalState = "stressed"
	EmotionCalm     EmotionalState = "calm"
	EmotionExcited  EmotionalState = "excited"
	EmotionBored    EmotionalState = "bored"
	EmotionUnset    EmotionalState = ""
)

// Answers holds the raw responses of the sequential 3-question flow
type Answers struct {
	EnergyLevel    int            `json:"energy_level"`
	MealPreference MealPreference `json:"meal_preference"`
	EmotionalState EmotionalState `json:"emotional_state"`
}

// Validate checks the answers before derivation or submission
func (a Answers) Validate() error {
	if a.EnergyLevel < 1 || a.EnergyLevel > 10 {
		return errors.NewValidationError("energy level must be between 1 and 10")
	}
	switch a.MealPreference {
	case MealComfort, MealLight, MealHearty, MealQuick, "":
	default:
		return errors.NewValidationError("meal preference must be one of: comfort, light, hearty, quick")
	}
	switch a.EmotionalState {
	case EmotionHappy, EmotionSad, EmotionStressed, EmotionCalm, EmotionExcited, EmotionBored, EmotionUnset:
	default:
		return errors.NewValidationError("emotional state must be one of: happy, sad, stressed, calm, excited, bored")
	}
	return nil
}

// Derive folds the three answers into one mood label.
//
// An explicit emotional state wins, except for two fine-tuning overrides:
// very low energy combined with a quick-meal preference reads as fatigue,
// and very high energy on a positive baseline upgrades to energetic. With
// no emotional state the fallback order is energy thresholds, then meal
// type, then the default positive label. The precedence is deliberately
// kept exactly as the product shipped it, including the absence of an
// override for high energy with a negative emotional state.
func Derive(a Answers) Mood {
	if a.EmotionalState != EmotionUnset {
		if a.EnergyLevel <= 3 && a.MealPreference == MealQuick {
			return MoodTired
		}
		if a.EnergyLevel >= 8 && a.EmotionalState == EmotionHappy {
			return MoodEnergetic
		}
		return Mood(a.EmotionalState)
	}

	if a.EnergyLevel <= 3 {
		return MoodTired
	}
	if a.EnergyLevel >= 8 {
		return MoodEnergetic
	}
	if a.MealPreference == MealComfort {
		return MoodCalm
	}
	return MoodHappy
}

// DailyLog is one user's mood entry for a calendar day. The server enforces
// one per user per day; the current day's entry may be overwritten.
type DailyLog struct {
	Mood           Mood           `json:"mood"`
	EnergyLevel    int            `json:"energy_level"`
	MealPreference MealPreference `json:"meal_preference"`
	EmotionalState EmotionalState `json:"emotional_state"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Context is the resolved mood context a generation request runs under
type Context struct {
	Mood           Mood           `json:"mood"`
	EnergyLevel    int            `json:"energy_level"`
	MealPreference MealPreference `json:"meal_preference"`
	EmotionalState EmotionalState `json:"emotional_state"`
	LoggedToday    bool           `json:"logged_today"`
}
