package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/foodtok/foodtok-backend/internal/gcp"
	"github.com/foodtok/foodtok-backend/internal/server"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := gcp.GetEnv("PORT", "8080")
	uploadBucket := gcp.GetEnv("UPLOAD_BUCKET", "")

	var uploader server.ObjectUploader
	if uploadBucket != "" {
		storageClient, err := storage.NewClient(ctx)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		defer storageClient.Close()
		uploader = server.NewGCSUploader(storageClient, uploadBucket)
		logger.Info("Uploads will be stored.", "bucket", uploadBucket)
	} else {
		logger.Warn("UPLOAD_BUCKET not set, uploads will be echoed only.")
	}

	srv := server.New(logger, uploader)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("FoodTok API listening.", "port", port)
		if err := srv.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
