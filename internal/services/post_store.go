package services

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/foodtok/foodtok-backend/internal/models"
)

// ErrStoreUnavailable indicates that a post update could not commit, either
// because the document does not exist or because the write failed.
var ErrStoreUnavailable = errors.New("post store unavailable")

// PostStore applies partial updates to post documents (see
// models.PostRecord for the full field layout). Timestamps are always
// assigned by Firestore's server clock so retries and concurrent instances
// can't reorder writes through local clock skew.
type PostStore struct {
	client     *firestore.Client
	collection string
}

// NewPostStore creates a store over the given collection.
func NewPostStore(client *firestore.Client, collection string) *PostStore {
	return &PostStore{client: client, collection: collection}
}

// UpdateSuccess records a completed analysis on the post. Only the AI fields
// are touched; a previous aiError is cleared.
func (s *PostStore) UpdateSuccess(ctx context.Context, postID string, result *models.AnalysisResult) error {
	_, err := s.client.Collection(s.collection).Doc(postID).Update(ctx, []firestore.Update{
		{Path: "foodTags", Value: result.PrimaryFoodTags},
		{Path: "description", Value: result.Description},
		{Path: "recipe", Value: result.RecipeSteps},
		{Path: "ingredients", Value: result.Ingredients},
		{Path: "aiProcessed", Value: true},
		{Path: "aiError", Value: firestore.Delete},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("%w: update post %s: %v", ErrStoreUnavailable, postID, err)
	}
	return nil
}

// UpdateFailure records that analysis could not run for the post, with a
// human-readable message for display or operator triage.
func (s *PostStore) UpdateFailure(ctx context.Context, postID, message string) error {
	_, err := s.client.Collection(s.collection).Doc(postID).Update(ctx, []firestore.Update{
		{Path: "aiProcessed", Value: false},
		{Path: "aiError", Value: message},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("%w: update post %s: %v", ErrStoreUnavailable, postID, err)
	}
	return nil
}
