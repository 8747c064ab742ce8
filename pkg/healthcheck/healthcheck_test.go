package healthcheck

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func staticChecker(status Status) Checker {
	return CheckerFunc(func(ctx context.Context) Check {
		return Run("static", func() (Status, string) {
			return status, ""
		})
	})
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"one unhealthy wins", []Status{StatusDegraded, StatusUnhealthy}, StatusUnhealthy},
		{"no checkers", nil, StatusHealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := New("test", zaptest.NewLogger(t))
			for i, s := range tt.statuses {
				hc.Register(string(rune('a'+i)), staticChecker(s))
			}

			resp := hc.Check(context.Background())
			assert.Equal(t, tt.want, resp.Status)
			assert.Len(t, resp.Checks, len(tt.statuses))
			assert.Equal(t, "test", resp.Version)
		})
	}
}

func TestCheckResultsAreCached(t *testing.T) {
	hc := New("test", zaptest.NewLogger(t))
	hc.SetCacheTTL(time.Minute)

	calls := 0
	hc.Register("counted", CheckerFunc(func(ctx context.Context) Check {
		calls++
		return Check{Name: "counted", Status: StatusHealthy}
	}))

	hc.Check(context.Background())
	hc.Check(context.Background())
	assert.Equal(t, 1, calls)
}

func TestCacheExpires(t *testing.T) {
	hc := New("test", zaptest.NewLogger(t))
	hc.SetCacheTTL(time.Millisecond)

	calls := 0
	hc.Register("counted", CheckerFunc(func(ctx context.Context) Check {
		calls++
		return Check{Name: "counted", Status: StatusHealthy}
	}))

	hc.Check(context.Background())
	time.Sleep(5 * time.Millisecond)
	hc.Check(context.Background())
	assert.Equal(t, 2, calls)
}

func TestRunFillsTiming(t *testing.T) {
	check := Run("probe", func() (Status, string) {
		return StatusDegraded, "slow"
	})
	require.Equal(t, "probe", check.Name)
	assert.Equal(t, StatusDegraded, check.Status)
	assert.Equal(t, "slow", check.Message)
	assert.False(t, check.LastChecked.IsZero())
}
