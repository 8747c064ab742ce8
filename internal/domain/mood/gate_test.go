package mood

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moodmunch/web/pkg/errors"
)

type fakeMoodAPI struct {
	today    *TodayStatus
	todayErr error
	logErr   error
	logged   []DailyLog
}

func (f *fakeMoodAPI) MoodToday(ctx context.Context, token string) (*TodayStatus, error) {
	return f.today, f.todayErr
}

func (f *fakeMoodAPI) LogDailyMood(ctx context.Context, token string, log DailyLog) error {
	f.logged = append(f.logged, log)
	return f.logErr
}

func TestGateCheckLoggedToday(t *testing.T) {
	api := &fakeMoodAPI{today: &TodayStatus{
		LoggedToday:    true,
		Mood:           MoodCalm,
		EnergyLevel:    6,
		MealPreference: MealComfort,
		EmotionalState: EmotionCalm,
	}}
	gate := NewGate(api, zaptest.NewLogger(t))

	got := gate.Check(context.Background(), "token")
	assert.True(t, got.LoggedToday)
	assert.Equal(t, MoodCalm, got.Mood)
	assert.Equal(t, 6, got.EnergyLevel)
}

func TestGateCheckNotLogged(t *testing.T) {
	api := &fakeMoodAPI{today: &TodayStatus{LoggedToday: false}}
	gate := NewGate(api, zaptest.NewLogger(t))

	got := gate.Check(context.Background(), "token")
	assert.False(t, got.LoggedToday)
	assert.Empty(t, got.Mood)
}

func TestGateCheckQueryFailureFallsBackToQuestionnaire(t *testing.T) {
	api := &fakeMoodAPI{todayErr: errors.NewNetworkError(nil)}
	gate := NewGate(api, zaptest.NewLogger(t))

	got := gate.Check(context.Background(), "token")
	assert.False(t, got.LoggedToday, "a failed query must not block the user")
}

func TestGateCompleteDerivesAndPersists(t *testing.T) {
	api := &fakeMoodAPI{}
	gate := NewGate(api, zaptest.NewLogger(t))

	got, err := gate.Complete(context.Background(), "token", Answers{
		EnergyLevel:    9,
		MealPreference: MealLight,
		EmotionalState: EmotionHappy,
	})
	require.NoError(t, err)

	assert.Equal(t, MoodEnergetic, got.Mood)
	assert.True(t, got.LoggedToday)
	require.Len(t, api.logged, 1)
	assert.Equal(t, MoodEnergetic, api.logged[0].Mood)
	assert.Equal(t, 9, api.logged[0].EnergyLevel)
}

func TestGateCompleteRejectsInvalidAnswers(t *testing.T) {
	api := &fakeMoodAPI{}
	gate := NewGate(api, zaptest.NewLogger(t))

	_, err := gate.Complete(context.Background(), "token", Answers{EnergyLevel: 0})
	assert.True(t, errors.Is(err, errors.CodeValidationFailed))
	assert.Empty(t, api.logged, "invalid answers must not reach the backend")
}

func TestGateCompletePersistFailureStillReturnsContext(t *testing.T) {
	api := &fakeMoodAPI{logErr: errors.NewTimeoutError(nil)}
	gate := NewGate(api, zaptest.NewLogger(t))

	got, err := gate.Complete(context.Background(), "token", Answers{EnergyLevel: 5})
	require.NoError(t, err, "a flaky backend must not block generation")
	assert.True(t, got.LoggedToday)
	assert.Equal(t, MoodHappy, got.Mood)
}
