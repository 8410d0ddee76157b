package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/foodtok/foodtok-backend/internal/models"
	"github.com/foodtok/foodtok-backend/internal/services"
)

var (
	processorInstance *services.AIProcessorFunction
	once              sync.Once
	initErr           error
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the CloudEvent function. The framework routes every storage
	// notification on the trigger here.
	functions.CloudEvent("ProcessVideo", processVideo)
}

// main is required by the Go Functions Framework.
func main() {}

// processVideo is the Cloud Function entry point for storage events.
func processVideo(ctx context.Context, e cloudevents.Event) error {
	// One-time client initialization, reused across warm invocations.
	once.Do(func() {
		processorInstance, initErr = services.NewAIProcessor(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	var event models.StorageEvent
	if err := json.Unmarshal(e.Data(), &event); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}
	event.Type = e.Type()

	outcome, err := processorInstance.Process(ctx, event)
	if err != nil {
		// A failed post update is logged but not returned: redelivery would
		// re-run the analysis call without any guarantee the write succeeds
		// the second time.
		slog.Error("Pipeline terminated with an unrecorded outcome.", "outcome", outcome, "error", err)
		return nil
	}

	slog.Info("Pipeline finished.", "outcome", outcome, "object", event.ObjectName)
	return nil
}
