package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/plateshare/feedsync/domain"
)

type Recipe struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Title       string    `gorm:"type:varchar(120);not null"`
	Description string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func NewRecipeFromDraft(d *domain.RecipeDraft) *Recipe {
	return &Recipe{
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		ImageURL:    d.ImageURL,
	}
}

// RecipeRow is the flat scan target for the feed join: recipe columns,
// the author summary and the aggregated like count. The author columns
// are nullable since the join may miss.
type RecipeRow struct {
	ID           int64
	UserID       uuid.UUID
	Title        string
	Description  sql.NullString
	ImageURL     sql.NullString
	CreatedAt    time.Time
	AuthorID     uuid.NullUUID
	AuthorName   sql.NullString
	AuthorAvatar sql.NullString
	LikeCount    sql.NullInt64
}

func (r *RecipeRow) ToDomain() domain.Recipe {
	res := domain.Recipe{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description.String,
		ImageURL:    r.ImageURL.String,
		CreatedAt:   r.CreatedAt,
		LikeCount:   r.LikeCount.Int64,
	}
	if r.AuthorID.Valid {
		res.Author = &domain.Author{
			ID:        r.AuthorID.UUID,
			Name:      r.AuthorName.String,
			AvatarURL: r.AuthorAvatar.String,
		}
	}
	return res
}
