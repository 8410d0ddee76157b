package gcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrAnalysis indicates that the remote analysis call itself failed
// (network, quota, malformed request). A syntactically bad response body is
// not an ErrAnalysis; that is handled downstream by the parser.
var ErrAnalysis = errors.New("analysis service failure")

// AnalysisPromptVersion identifies the prompt template below. Bump it when
// the requested schema changes so stored results can be traced to a prompt.
const AnalysisPromptVersion = "v1"

// AnalysisPrompt is the fixed instruction sent with every video.
const AnalysisPrompt = `Video analysis, returning primary food tags (e.g. pizza, and or italian,
but not dough or tomato sauce), detailed description of the food in the
video, quantified ingredients, detailed step by step recipe with
quantified ingredient usage, and content moderation
(if topic is_food_related, or topic is_nsfw, also add a "reason"
field that states why content moderation failed).

Format your response as JSON with these fields:
{
    "primary_food_tags": [
        "pizza",
        "italian"
    ],
    "detailed_food_description": "A pepperoni pizza with a thick crust, topped with mozzarella cheese and sliced pepperoni. Appears to be baked in a home oven.",
    "quantified_ingredients": [
        {"ingredient": "pizza dough", "quantity": "500g"},
        {"ingredient": "tomato sauce", "quantity": "200ml"}
    ],
    "detailed_step_by_step_recipe": [
        {"step": 1, "instruction": "Preheat oven to 220°C (425°F)."},
        {"step": 2, "instruction": "Spread 200ml of tomato sauce evenly over the dough."}
    ],
    "content_moderation": {
        "is_food_related": true,
        "is_nsfw": false,
        "reason": null
    }
}`

// SecretFetcher resolves a named credential at call time.
type SecretFetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// GeminiAnalyzer sends one video locator plus the fixed prompt to Gemini and
// returns the raw response text. The API key is fetched fresh on every call;
// the analyzer itself carries no per-request state.
type GeminiAnalyzer struct {
	secrets    SecretFetcher
	secretName string
	model      string
}

// NewGeminiAnalyzer creates an analyzer using the given model, with the API
// key resolved through secrets under secretName.
func NewGeminiAnalyzer(secrets SecretFetcher, secretName, model string) *GeminiAnalyzer {
	return &GeminiAnalyzer{
		secrets:    secrets,
		secretName: secretName,
		model:      model,
	}
}

// Analyze asks the model for a structured description of the video at
// locator (a gs:// URI). The returned text is expected, but not guaranteed,
// to be JSON.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, locator string) (string, error) {
	apiKey, err := a.secrets.Fetch(ctx, a.secretName)
	if err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("%w: create client: %v", ErrAnalysis, err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(locator, "video/mp4"),
			genai.NewPartFromText(AnalysisPrompt),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		// Force JSON output. Low temperature for deterministic structure.
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}

	resp, err := client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %v", ErrAnalysis, err)
	}

	return trimJSONFences(resp.Text()), nil
}

// trimJSONFences strips markdown code fences the model sometimes wraps its
// JSON in, despite the response MIME type setting.
func trimJSONFences(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
