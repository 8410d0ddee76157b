package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foodtok/foodtok-backend/internal/gcp"
	"github.com/foodtok/foodtok-backend/internal/models"
)

// Outcome summarizes what a single pipeline invocation did.
type Outcome string

const (
	// OutcomeSkipped means the event was gated out; nothing was written.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeProcessed means a success update was written (possibly with
	// degraded placeholder content).
	OutcomeProcessed Outcome = "processed"
	// OutcomeFailed means analysis failed and a failure update was written.
	OutcomeFailed Outcome = "failed"
)

// Analyzer produces the raw analysis text for a video locator.
type Analyzer interface {
	Analyze(ctx context.Context, locator string) (string, error)
}

// RecordStore applies the pipeline's single per-run update to a post.
type RecordStore interface {
	UpdateSuccess(ctx context.Context, postID string, result *models.AnalysisResult) error
	UpdateFailure(ctx context.Context, postID, message string) error
}

// AIProcessorConfig holds all configuration for the AI processor service.
type AIProcessorConfig struct {
	ProjectID        string
	GeminiSecretName string
	GeminiModel      string
	CollectionName   string
}

// AIProcessorFunction orchestrates one analysis run per storage event:
// gate, analyze, parse, then exactly one post update.
type AIProcessorFunction struct {
	analyzer Analyzer
	store    RecordStore
}

func loadAIProcessorConfig() (*AIProcessorConfig, error) {
	projectID := gcp.GetEnv("PROJECT_ID", "")
	if projectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}

	return &AIProcessorConfig{
		ProjectID:        projectID,
		GeminiSecretName: gcp.GetEnv("GEMINI_SECRET_NAME", "Gemini"),
		GeminiModel:      gcp.GetEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		CollectionName:   gcp.GetEnv("FIRESTORE_COLLECTION", "posts"),
	}, nil
}

// NewAIProcessor creates an AIProcessorFunction wired to the real GCP
// backends, configured from the environment.
func NewAIProcessor(ctx context.Context) (*AIProcessorFunction, error) {
	config, err := loadAIProcessorConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	secrets, err := gcp.NewSecretManagerProvider(ctx, config.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret provider: %w", err)
	}

	firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	analyzer := gcp.NewGeminiAnalyzer(secrets, config.GeminiSecretName, config.GeminiModel)
	store := NewPostStore(firestoreClient, config.CollectionName)

	return NewAIProcessorWith(analyzer, store), nil
}

// NewAIProcessorWith creates an AIProcessorFunction from explicit
// dependencies. Tests substitute fakes here.
func NewAIProcessorWith(analyzer Analyzer, store RecordStore) *AIProcessorFunction {
	return &AIProcessorFunction{analyzer: analyzer, store: store}
}

// Process runs the pipeline for one storage event. A gated-out event returns
// OutcomeSkipped with no side effect. An accepted event results in exactly
// one store write: a success update carrying the (possibly degraded) parsed
// result, or a failure update carrying the analysis error message. A store
// write that itself fails is returned for logging; there is no retry here —
// redelivery is the event platform's concern.
func (f *AIProcessorFunction) Process(ctx context.Context, event models.StorageEvent) (Outcome, error) {
	if !ShouldAnalyze(event) {
		slog.Debug("Event gated out.", "eventType", event.Type, "object", event.ObjectName)
		return OutcomeSkipped, nil
	}

	postID := event.Metadata[MetaPostID]
	locator := event.Locator()
	logCtx := slog.With("postId", postID, "locator", locator)
	logCtx.Info("Starting video analysis.")

	raw, err := f.analyzer.Analyze(ctx, locator)
	if err != nil {
		logCtx.Error("Analysis failed, recording failure on post.", "error", err)
		if uerr := f.store.UpdateFailure(ctx, postID, err.Error()); uerr != nil {
			return OutcomeFailed, fmt.Errorf("record analysis failure: %w", uerr)
		}
		return OutcomeFailed, nil
	}

	result := ParseAnalysis(raw)
	if err := f.store.UpdateSuccess(ctx, postID, result); err != nil {
		return OutcomeProcessed, fmt.Errorf("record analysis result: %w", err)
	}

	logCtx.Info("Video analysis recorded.", "foodTags", result.PrimaryFoodTags)
	return OutcomeProcessed, nil
}
