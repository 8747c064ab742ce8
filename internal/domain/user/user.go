// Package user defines the user profile model owned by the session layer
// and the client-side validation applied before auth requests go out.
package user

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/moodmunch/web/pkg/errors"
)

var validate = validator.New()

// User is the profile the backend returns at login and on /users/me.
// It is created server-side at registration and only ever merged locally.
type User struct {
	ID                 string   `json:"id"`
	Email              string   `json:"email"`
	Name               string   `json:"name"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	HealthGoals        []string `json:"health_goals"`
}

// Registration is the payload for a new account. Validation mirrors the
// server's rules so obviously bad submissions never cost a round trip.
type Registration struct {
	Name               string   `json:"name" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required,min=8"`
	ConfirmPassword    string   `json:"confirm_password" validate:"required"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	HealthGoals        []string `json:"health_goals"`
}

// Validate applies the client-side pre-submission checks
func (r Registration) Validate() error {
	if err := validate.Struct(r); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return errors.NewValidationError(describeFieldErrors(verrs))
		}
		return errors.NewValidationError(err.Error())
	}
	if r.Password != r.ConfirmPassword {
		return errors.NewValidationError("passwords do not match")
	}
	return nil
}

// ProfileUpdate is a partial profile edit; nil fields are left untouched
type ProfileUpdate struct {
	Name               *string  `json:"name,omitempty"`
	DietaryPreferences []string `json:"dietary_preferences,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	HealthGoals        []string `json:"health_goals,omitempty"`
}

// Merge returns a copy of u with the update's set fields applied
func (u User) Merge(update ProfileUpdate) User {
	merged := u
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.DietaryPreferences != nil {
		merged.DietaryPreferences = update.DietaryPreferences
	}
	if update.Allergies != nil {
		merged.Allergies = update.Allergies
	}
	if update.HealthGoals != nil {
		merged.HealthGoals = update.HealthGoals
	}
	return merged
}

// Credentials is the login payload
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate applies the client-side pre-submission checks
func (c Credentials) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return errors.NewValidationError(describeFieldErrors(verrs))
		}
		return errors.NewValidationError(err.Error())
	}
	return nil
}

// PasswordChange is the change-password payload for a signed-in user
type PasswordChange struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Validate applies the client-side pre-submission checks
func (p PasswordChange) Validate() error {
	if err := validate.Struct(p); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return errors.NewValidationError(describeFieldErrors(verrs))
		}
		return errors.NewValidationError(err.Error())
	}
	return nil
}

func describeFieldErrors(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, strings.ToLower(fe.Field())+" is required")
		case "email":
			msgs = append(msgs, "email address is not valid")
		case "min":
			msgs = append(msgs, strings.ToLower(fe.Field())+" must be at least "+fe.Param()+" characters")
		default:
			msgs = append(msgs, strings.ToLower(fe.Field())+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
