package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/foodtok/foodtok-backend/internal/models"
)

const pizzaResponse = `{
	"primary_food_tags": ["pizza", "italian"],
	"detailed_food_description": "A pepperoni pizza with a thick crust.",
	"quantified_ingredients": [
		{"ingredient": "pizza dough", "quantity": "500g"},
		{"ingredient": "mozzarella cheese", "quantity": "300g"}
	],
	"detailed_step_by_step_recipe": [
		{"step": 1, "instruction": "Preheat oven to 220°C."},
		{"step": 2, "instruction": "Bake for 15-20 minutes."}
	],
	"content_moderation": {"is_food_related": true, "is_nsfw": false}
}`

func TestParseAnalysisValidResponse(t *testing.T) {
	result := ParseAnalysis(pizzaResponse)

	if want := []string{"pizza", "italian"}; !reflect.DeepEqual(result.PrimaryFoodTags, want) {
		t.Fatalf("PrimaryFoodTags = %v, want %v", result.PrimaryFoodTags, want)
	}
	if result.Description != "A pepperoni pizza with a thick crust." {
		t.Fatalf("unexpected description: %q", result.Description)
	}
	if len(result.Ingredients) != 2 || result.Ingredients[0].Quantity != "500g" {
		t.Fatalf("unexpected ingredients: %+v", result.Ingredients)
	}
	if len(result.RecipeSteps) != 2 || result.RecipeSteps[1].Step != 2 {
		t.Fatalf("unexpected recipe steps: %+v", result.RecipeSteps)
	}
	if !result.Moderation.IsFoodRelated || result.Moderation.IsNsfw {
		t.Fatalf("unexpected moderation: %+v", result.Moderation)
	}
}

func TestParseAnalysisFillsMissingFields(t *testing.T) {
	result := ParseAnalysis(`{"detailed_food_description": "Just a description."}`)

	if result.PrimaryFoodTags == nil || len(result.PrimaryFoodTags) != 0 {
		t.Fatalf("PrimaryFoodTags = %#v, want empty non-nil slice", result.PrimaryFoodTags)
	}
	if result.Ingredients == nil || len(result.Ingredients) != 0 {
		t.Fatalf("Ingredients = %#v, want empty non-nil slice", result.Ingredients)
	}
	if result.RecipeSteps == nil || len(result.RecipeSteps) != 0 {
		t.Fatalf("RecipeSteps = %#v, want empty non-nil slice", result.RecipeSteps)
	}
	if result.Description != "Just a description." {
		t.Fatalf("unexpected description: %q", result.Description)
	}
}

func TestParseAnalysisMalformedInput(t *testing.T) {
	inputs := []string{
		"I'm sorry, I cannot analyze this video.",
		"",
		`["a", "json", "array"]`,
		`{"primary_food_tags": "not-a-list"}`,
	}

	for _, raw := range inputs {
		result := ParseAnalysis(raw)
		if !reflect.DeepEqual(result, models.FailedAnalysis()) {
			t.Fatalf("ParseAnalysis(%q) = %+v, want degraded result", raw, result)
		}
	}
}

func TestParseAnalysisIsDeterministic(t *testing.T) {
	for _, raw := range []string{pizzaResponse, "not json at all"} {
		first := ParseAnalysis(raw)
		second := ParseAnalysis(raw)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("parsing %q twice gave different results: %+v vs %+v", raw, first, second)
		}
	}
}

func TestParseAnalysisRoundTrip(t *testing.T) {
	original := &models.AnalysisResult{
		PrimaryFoodTags: []string{"tacos", "mexican"},
		Description:     "Korean BBQ tacos with kimchi slaw.",
		Ingredients: []models.Ingredient{
			{Ingredient: "corn tortillas", Quantity: "6"},
			{Ingredient: "beef short rib", Quantity: "400g"},
		},
		RecipeSteps: []models.RecipeStep{
			{Step: 1, Instruction: "Marinate 400g of beef short rib."},
			{Step: 2, Instruction: "Grill and slice thin."},
		},
		Moderation: models.ContentModeration{IsFoodRelated: true},
	}

	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	parsed := ParseAnalysis(string(encoded))
	if !reflect.DeepEqual(parsed, original) {
		t.Fatalf("round-trip mismatch:\n got %+v\nwant %+v", parsed, original)
	}
}
