package models

// FailedAnalysisDescription is the placeholder written when the model's
// response could not be decoded.
const FailedAnalysisDescription = "Failed to analyze video"

// AnalysisResult is the structured output we ask the model to produce for a
// food video. The JSON keys mirror the reference schema embedded in the
// analysis prompt.
type AnalysisResult struct {
	PrimaryFoodTags []string          `json:"primary_food_tags"`
	Description     string            `json:"detailed_food_description"`
	Ingredients     []Ingredient      `json:"quantified_ingredients"`
	RecipeSteps     []RecipeStep      `json:"detailed_step_by_step_recipe"`
	Moderation      ContentModeration `json:"content_moderation"`
}

// Ingredient pairs an ingredient name with its quantity as free text
// ("500g", "1 tbsp").
type Ingredient struct {
	Ingredient string `json:"ingredient" firestore:"ingredient"`
	Quantity   string `json:"quantity" firestore:"quantity"`
}

// RecipeStep is one numbered instruction. Steps are 1-based.
type RecipeStep struct {
	Step        int    `json:"step" firestore:"step"`
	Instruction string `json:"instruction" firestore:"instruction"`
}

// ContentModeration carries the model's moderation verdict. Reason is only
// populated when one of the flags indicates a problem.
type ContentModeration struct {
	IsFoodRelated bool   `json:"is_food_related"`
	IsNsfw        bool   `json:"is_nsfw"`
	Reason        string `json:"reason,omitempty"`
}

// FailedAnalysis returns the degraded result recorded when the model replied
// with something that is not valid JSON. All containers are empty but
// non-nil, matching the guarantee made for decoded results.
func FailedAnalysis() *AnalysisResult {
	return &AnalysisResult{
		PrimaryFoodTags: []string{},
		Description:     FailedAnalysisDescription,
		Ingredients:     []Ingredient{},
		RecipeSteps:     []RecipeStep{},
	}
}
