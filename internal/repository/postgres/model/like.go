package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/plateshare/feedsync/domain"
)

type Like struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_likes_user_recipe"`
	RecipeID  int64     `gorm:"column:recipe_id;not null;uniqueIndex:idx_likes_user_recipe"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Like) TableName() string {
	return "likes"
}

func NewLikeFromDomain(l domain.Like) Like {
	return Like{
		UserID:    l.UserID,
		RecipeID:  l.RecipeID,
		CreatedAt: l.CreatedAt,
	}
}
