package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Recipe is representing the Recipe data struct
type Recipe struct {
	ID          int64     // Unique identifier for the recipe, store-assigned
	UserID      uuid.UUID // Owning user
	Title       string    // Recipe title
	Description string    // Recipe body, may be empty
	ImageURL    string    // Public image URL, may be empty
	CreatedAt   time.Time // Creation timestamp, store-assigned
	Author      *Author   // Denormalized author summary, nil when the join is absent
	LikeCount   int64     // Denormalized like count, 0 when absent
}

// Author is the denormalized author summary carried by a Recipe.
type Author struct {
	ID        uuid.UUID
	Name      string
	AvatarURL string
}

// RecipeDraft is the payload for posting a new recipe. Title and
// Description must be non-blank after trimming; ImageURL is optional.
type RecipeDraft struct {
	Title       string    `validate:"required"`
	Description string    `validate:"required"`
	ImageURL    string    `validate:"omitempty,url"`
	UserID      uuid.UUID `validate:"required"`
}

// WithLikeCount returns a copy of r with the like count replaced.
// The count is floored at zero.
func WithLikeCount(r Recipe, n int64) Recipe {
	if n < 0 {
		n = 0
	}
	r.LikeCount = n
	return r
}

// RecipeRepository defines the contract for recipe data access against
// the remote relational store. Implementations translate these intents
// into store queries and decode rows into domain entities; they never
// hold client-side state.
type RecipeRepository interface {
	// Fetch retrieves every recipe joined with its author summary and
	// like count, ordered by creation time descending.
	Fetch(ctx context.Context) ([]Recipe, error)

	// FetchByUser retrieves the recipes authored by the given user,
	// with the same join and ordering as Fetch.
	FetchByUser(ctx context.Context, userID uuid.UUID) ([]Recipe, error)

	// FetchLikedBy retrieves the recipes the given user has liked.
	// Likes whose target recipe no longer exists are dropped silently.
	FetchLikedBy(ctx context.Context, userID uuid.UUID) ([]Recipe, error)

	// FetchLikedIDs retrieves the ids of the recipes the given user has liked.
	FetchLikedIDs(ctx context.Context, userID uuid.UUID) ([]int64, error)

	// Store creates a new recipe. A draft whose title or description is
	// blank after trimming fails with ValidationError before any I/O.
	Store(ctx context.Context, draft *RecipeDraft) error

	// AddLikeRecord inserts a like row. A duplicate insert surfaces
	// ErrConflict; the store does not make this idempotent, callers
	// prevent duplicate calls through the in-flight registry.
	AddLikeRecord(ctx context.Context, like Like) error

	// RemoveLikeRecord deletes a like row. Deleting a missing row
	// surfaces ErrNotFound.
	RemoveLikeRecord(ctx context.Context, like Like) error
}

// ImageUploader uploads raw image bytes to blob storage and returns a
// public URL. External collaborator; the core only consumes the URL.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}
