package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/plateshare/feedsync/domain"
)

// RecipeRepository is a mock type for the domain.RecipeRepository interface
type RecipeRepository struct {
	mock.Mock
}

func (m *RecipeRepository) Fetch(ctx context.Context) ([]domain.Recipe, error) {
	ret := m.Called(ctx)

	var r0 []domain.Recipe
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Recipe)
	}
	return r0, ret.Error(1)
}

func (m *RecipeRepository) FetchByUser(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error) {
	ret := m.Called(ctx, userID)

	var r0 []domain.Recipe
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Recipe)
	}
	return r0, ret.Error(1)
}

func (m *RecipeRepository) FetchLikedBy(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error) {
	ret := m.Called(ctx, userID)

	var r0 []domain.Recipe
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Recipe)
	}
	return r0, ret.Error(1)
}

func (m *RecipeRepository) FetchLikedIDs(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	ret := m.Called(ctx, userID)

	var r0 []int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}
	return r0, ret.Error(1)
}

func (m *RecipeRepository) Store(ctx context.Context, draft *domain.RecipeDraft) error {
	ret := m.Called(ctx, draft)
	return ret.Error(0)
}

func (m *RecipeRepository) AddLikeRecord(ctx context.Context, like domain.Like) error {
	ret := m.Called(ctx, like)
	return ret.Error(0)
}

func (m *RecipeRepository) RemoveLikeRecord(ctx context.Context, like domain.Like) error {
	ret := m.Called(ctx, like)
	return ret.Error(0)
}

// ImageUploader is a mock type for the domain.ImageUploader interface
type ImageUploader struct {
	mock.Mock
}

func (m *ImageUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	ret := m.Called(ctx, data, contentType)
	return ret.String(0), ret.Error(1)
}
