package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/plateshare/feedsync/domain"
)

// User backs the author join. Identity comes from the external auth
// provider, so the id is not store-assigned.
type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name      string    `gorm:"type:varchar(64)"`
	Email     string    `gorm:"type:varchar(128)"`
	AvatarURL string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) ToAuthor() *domain.Author {
	return &domain.Author{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
