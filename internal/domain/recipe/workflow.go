package recipe

import (
	"context"

	"go.uber.org/zap"

	"github.com/moodmunch/web/pkg/errors"
)

// API is the slice of the backend client the workflow needs
type API interface {
	GenerateRecipe(ctx context.Context, token string, req GenerateRequest) (*Recipe, error)
	RecipeHistory(ctx context.Context, token string, limit int) ([]HistoryRecord, error)
}

// Workflow runs the generation pipeline: deduplicate ingredients, refuse an
// empty list before any network call, generate, then recover the new
// record's identifier from history so the result can be favorited.
type Workflow struct {
	api    API
	logger *zap.Logger
}

// NewWorkflow creates a recipe generation workflow
func NewWorkflow(api API, logger *zap.Logger) *Workflow {
	return &Workflow{
		api:    api,
		logger: logger,
	}
}

// Generate executes the pipeline. A generation failure carries the server's
// message verbatim; the caller keeps its ingredient list intact for retry.
// A failure recovering the history identifier is not an error — the recipe
// is returned without an ID.
func (w *Workflow) Generate(ctx context.Context, token string, req GenerateRequest) (*Generated, error) {
	set := NewIngredientSet(req.Ingredients...)
	if set.Len() == 0 {
		return nil, errors.NewValidationError("at least one ingredient is required")
	}
	req.Ingredients = set.Items()

	if req.Mood == "" {
		return nil, errors.NewValidationError("a mood is required to generate a recipe")
	}
	if req.CuisinePreference == "" {
		req.CuisinePreference = CuisineAny
	}
	if req.Servings <= 0 {
		req.Servings = 2
	}

	generated, err := w.api.GenerateRecipe(ctx, token, req)
	if err != nil {
		return nil, err
	}

	result := &Generated{Recipe: *generated}

	// The generate response has no identifier; the newest history record
	// does. Fetch it immediately so favoriting and sharing can reference
	// the recipe.
	records, err := w.api.RecipeHistory(ctx, token, 1)
	if err != nil {
		w.logger.Warn("could not recover history record id after generation", zap.Error(err))
		return result, nil
	}
	if len(records) > 0 {
		result.RecordID = records[0].ID
	}

	return result, nil
}
