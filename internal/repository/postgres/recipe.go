package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/plateshare/feedsync/domain"
	"github.com/plateshare/feedsync/internal/repository/postgres/model"
)

// feedColumns is the projection shared by every recipe listing: the
// recipe itself, the (possibly missing) author summary and the
// aggregated like count.
const feedColumns = `recipes.id, recipes.user_id, recipes.title, recipes.description,
recipes.image_url, recipes.created_at,
users.id AS author_id, users.name AS author_name, users.avatar_url AS author_avatar,
COUNT(likes.recipe_id) AS like_count`

type recipeRepository struct {
	DB *gorm.DB
}

var _ domain.RecipeRepository = (*recipeRepository)(nil)

// NewRecipeRepository will create an implementation of domain.RecipeRepository
// backed by the relational store.
func NewRecipeRepository(db *gorm.DB) *recipeRepository {
	return &recipeRepository{db}
}

func (m *recipeRepository) feedQuery(ctx context.Context) *gorm.DB {
	return m.DB.WithContext(ctx).
		Table("recipes").
		Select(feedColumns).
		Joins("LEFT JOIN users ON users.id = recipes.user_id").
		Joins("LEFT JOIN likes ON likes.recipe_id = recipes.id").
		Group("recipes.id, users.id").
		Order("recipes.created_at DESC")
}

func (m *recipeRepository) Fetch(ctx context.Context) ([]domain.Recipe, error) {
	var rows []model.RecipeRow
	err := m.feedQuery(ctx).Scan(&rows).Error
	if err != nil {
		return nil, &domain.StoreError{Op: "fetch feed", Err: err}
	}
	return toDomainList(rows), nil
}

func (m *recipeRepository) FetchByUser(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error) {
	var rows []model.RecipeRow
	err := m.feedQuery(ctx).
		Where("recipes.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, &domain.StoreError{Op: "fetch by user", Err: err}
	}
	return toDomainList(rows), nil
}

// FetchLikedBy walks from the user's like rows to their target recipes.
// The inner join drops likes whose recipe was deleted upstream, which
// is a defined case rather than an error.
func (m *recipeRepository) FetchLikedBy(ctx context.Context, userID uuid.UUID) ([]domain.Recipe, error) {
	var rows []model.RecipeRow
	err := m.DB.WithContext(ctx).
		Table("likes AS my_likes").
		Select(feedColumns).
		Joins("JOIN recipes ON recipes.id = my_likes.recipe_id").
		Joins("LEFT JOIN users ON users.id = recipes.user_id").
		Joins("LEFT JOIN likes ON likes.recipe_id = recipes.id").
		Where("my_likes.user_id = ?", userID).
		Group("recipes.id, users.id").
		Order("recipes.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, &domain.StoreError{Op: "fetch liked by", Err: err}
	}
	return toDomainList(rows), nil
}

func (m *recipeRepository) FetchLikedIDs(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	var ids []int64
	err := m.DB.WithContext(ctx).
		Model(&model.Like{}).
		Select("recipe_id").
		Where("user_id = ?", userID).
		Order("recipe_id desc").
		Find(&ids).Error
	if err != nil {
		return nil, &domain.StoreError{Op: "fetch liked ids", Err: err}
	}
	return ids, nil
}

func (m *recipeRepository) Store(ctx context.Context, draft *domain.RecipeDraft) error {
	if fields := blankDraftFields(draft); len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	recipeModel := model.NewRecipeFromDraft(draft)
	result := m.DB.WithContext(ctx).Create(recipeModel)
	return result.Error
}

func (m *recipeRepository) AddLikeRecord(ctx context.Context, like domain.Like) error {
	likeModel := model.NewLikeFromDomain(like)
	result := m.DB.WithContext(ctx).Create(&likeModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrConflict
		}
		return result.Error
	}
	return nil
}

func (m *recipeRepository) RemoveLikeRecord(ctx context.Context, like domain.Like) error {
	result := m.DB.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", like.UserID, like.RecipeID).
		Delete(&model.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// blankDraftFields names the required draft fields that are blank after
// trimming. A non-empty result must stop the insert before any I/O.
func blankDraftFields(d *domain.RecipeDraft) []string {
	var fields []string
	if strings.TrimSpace(d.Title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(d.Description) == "" {
		fields = append(fields, "description")
	}
	return fields
}

func toDomainList(rows []model.RecipeRow) []domain.Recipe {
	res := make([]domain.Recipe, len(rows))
	for i := range rows {
		res[i] = rows[i].ToDomain()
	}
	return res
}

// isUniqueViolation reports whether err is a unique-constraint failure,
// either as translated by gorm or as a raw SQLSTATE 23505 from the driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
