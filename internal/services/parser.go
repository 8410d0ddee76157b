package services

import (
	"encoding/json"
	"log/slog"

	"github.com/foodtok/foodtok-backend/internal/models"
)

// ParseAnalysis decodes the model's raw response into an AnalysisResult.
// The model has no contractual JSON guarantee, so a malformed response is an
// expected outcome: it yields the degraded placeholder result rather than an
// error. Decoded results always have non-nil containers; callers never need
// to check for field presence.
func ParseAnalysis(raw string) *models.AnalysisResult {
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		slog.Warn("Analysis response is not valid JSON, recording degraded result.", "error", err)
		return models.FailedAnalysis()
	}

	if result.PrimaryFoodTags == nil {
		result.PrimaryFoodTags = []string{}
	}
	if result.Ingredients == nil {
		result.Ingredients = []models.Ingredient{}
	}
	if result.RecipeSteps == nil {
		result.RecipeSteps = []models.RecipeStep{}
	}

	return &result
}
