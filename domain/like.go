package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like is representing a like record: a (user, recipe) membership fact.
// At most one exists per pair; existence is boolean state.
type Like struct {
	UserID    uuid.UUID
	RecipeID  int64
	CreatedAt time.Time
}
