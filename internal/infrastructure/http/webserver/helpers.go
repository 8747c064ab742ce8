package webserver

import (
	"net/http"
	"strconv"

	"github.com/moodmunch/web/internal/domain/user"
)

// queryInt reads an integer query parameter, falling back on absence or junk
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func toProfileUpdate(name *string, dietary, allergies, goals []string) user.ProfileUpdate {
	return user.ProfileUpdate{
		Name:               name,
		DietaryPreferences: dietary,
		Allergies:          allergies,
		HealthGoals:        goals,
	}
}
