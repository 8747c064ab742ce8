package mood

import (
	"context"

	"go.uber.org/zap"
)

// TodayStatus is the backend's answer to "has this user logged a mood
// today". The server is the authority on "today", avoiding client clock skew.
type TodayStatus struct {
	LoggedToday    bool           `json:"logged_today"`
	Mood           Mood           `json:"mood,omitempty"`
	EnergyLevel    int            `json:"energy_level,omitempty"`
	MealPreference MealPreference `json:"meal_preference,omitempty"`
	EmotionalState EmotionalState `json:"emotional_state,omitempty"`
}

// API is the slice of the backend client the gate needs
type API interface {
	MoodToday(ctx context.Context, token string) (*TodayStatus, error)
	LogDailyMood(ctx context.Context, token string, log DailyLog) error
}

// Gate decides, once per day, whether recipe generation must be preceded
// by the mood questionnaire.
type Gate struct {
	api    API
	logger *zap.Logger
}

// NewGate creates a daily mood gate backed by the given API client
func NewGate(api API, logger *zap.Logger) *Gate {
	return &Gate{
		api:    api,
		logger: logger,
	}
}

// Check consults the backend for today's log. A logged day returns the
// adopted context with LoggedToday set; a missing log — or a failed query,
// which must not block the user — returns an unset context so the caller
// presents the questionnaire.
func (g *Gate) Check(ctx context.Context, token string) Context {
	status, err := g.api.MoodToday(ctx, token)
	if err != nil {
		g.logger.Warn("mood gate query failed, falling back to questionnaire", zap.Error(err))
		return Context{}
	}
	if !status.LoggedToday {
		return Context{}
	}

	return Context{
		Mood:           status.Mood,
		EnergyLevel:    status.EnergyLevel,
		MealPreference: status.MealPreference,
		EmotionalState: status.EmotionalState,
		LoggedToday:    true,
	}
}

// Complete finishes the 3-question flow: validates the answers, derives the
// canonical mood, and persists the log server-side. Persistence is
// best-effort — a failure is logged and the derived context still returned,
// so a flaky backend never blocks generation. Completing again on the same
// day overwrites that day's entry (the Update affordance).
func (g *Gate) Complete(ctx context.Context, token string, answers Answers) (Context, error) {
	if err := answers.Validate(); err != nil {
		return Context{}, err
	}

	derived := Derive(answers)

	log := DailyLog{
		Mood:           derived,
		EnergyLevel:    answers.EnergyLevel,
		MealPreference: answers.MealPreference,
		EmotionalState: answers.EmotionalState,
	}
	if err := g.api.LogDailyMood(ctx, token, log); err != nil {
		g.logger.Warn("failed to persist daily mood log", zap.Error(err))
	}

	return Context{
		Mood:           derived,
		EnergyLevel:    answers.EnergyLevel,
		MealPreference: answers.MealPreference,
		EmotionalState: answers.EmotionalState,
		LoggedToday:    true,
	}, nil
}
