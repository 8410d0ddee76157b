package models

import "time"

// PostRecord is the Firestore document for a single post. The pipeline never
// creates these; it only applies partial updates to the AI fields, so every
// field is omitempty.
type PostRecord struct {
	UserID      string       `firestore:"userId,omitempty"`
	VideoURL    string       `firestore:"videoUrl,omitempty"`
	FoodTags    []string     `firestore:"foodTags,omitempty"`
	Description string       `firestore:"description,omitempty"`
	Recipe      []RecipeStep `firestore:"recipe,omitempty"`
	Ingredients []Ingredient `firestore:"ingredients,omitempty"`
	AIProcessed bool         `firestore:"aiProcessed,omitempty"`
	AIError     string       `firestore:"aiError,omitempty"`
	UpdatedAt   time.Time    `firestore:"updatedAt,omitempty"`
}

// FeedItem is one entry of the public feed response.
type FeedItem struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	VideoURL    string `json:"video_url"`
	Description string `json:"description"`
	Likes       int    `json:"likes"`
	Comments    int    `json:"comments"`
}
