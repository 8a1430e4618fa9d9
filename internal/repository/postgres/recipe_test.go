package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/plateshare/feedsync/domain"
	pgRepo "github.com/plateshare/feedsync/internal/repository/postgres"
)

var feedColumns = []string{
	"id", "user_id", "title", "description", "image_url", "created_at",
	"author_id", "author_name", "author_avatar", "like_count",
}

func setup(t *testing.T) (domain.RecipeRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return pgRepo.NewRecipeRepository(gdb), mock
}

func TestFetch(t *testing.T) {
	repo, mock := setup(t)
	author := uuid.New()
	orphanOwner := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(feedColumns).
		AddRow(2, author.String(), "Pad Thai", "wok it hot", "https://img/2.jpg", now,
			author.String(), "Ana", "https://avatar/ana.png", 3).
		AddRow(1, orphanOwner.String(), "Toast", nil, nil, now.Add(-time.Hour),
			nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT (.+) FROM "recipes" LEFT JOIN users`).WillReturnRows(rows)

	res, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, int64(2), res[0].ID)
	require.NotNil(t, res[0].Author)
	assert.Equal(t, "Ana", res[0].Author.Name)
	assert.Equal(t, int64(3), res[0].LikeCount)

	// missing author join decodes to an absent summary, not an error
	assert.Nil(t, res[1].Author)
	assert.Empty(t, res[1].Description)
	assert.Zero(t, res[1].LikeCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchStoreError(t *testing.T) {
	repo, mock := setup(t)
	mock.ExpectQuery(`SELECT (.+) FROM "recipes"`).WillReturnError(assert.AnError)

	res, err := repo.Fetch(context.Background())
	assert.Nil(t, res)

	var sErr *domain.StoreError
	require.ErrorAs(t, err, &sErr)
	assert.NotEmpty(t, sErr.Error())
}

func TestFetchByUser(t *testing.T) {
	repo, mock := setup(t)
	userID := uuid.New()

	rows := sqlmock.NewRows(feedColumns).
		AddRow(5, userID.String(), "Ramen", "broth", nil, time.Now(),
			userID.String(), "Bo", nil, 0)
	mock.ExpectQuery(`SELECT (.+) FROM "recipes" LEFT JOIN users (.+) WHERE recipes.user_id`).
		WithArgs(userID).
		WillReturnRows(rows)

	res, err := repo.FetchByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, userID, res[0].UserID)
}

func TestFetchLikedBy(t *testing.T) {
	repo, mock := setup(t)
	userID := uuid.New()
	author := uuid.New()

	rows := sqlmock.NewRows(feedColumns).
		AddRow(3, author.String(), "Falafel", nil, nil, time.Now(),
			author.String(), "Mira", nil, 7)
	mock.ExpectQuery(`SELECT (.+) FROM "likes"(.+)JOIN recipes`).
		WithArgs(userID).
		WillReturnRows(rows)

	res, err := repo.FetchLikedBy(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, int64(7), res[0].LikeCount)
}

func TestFetchLikedIDs(t *testing.T) {
	repo, mock := setup(t)
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"recipe_id"}).AddRow(9).AddRow(4)
	mock.ExpectQuery(`SELECT recipe_id FROM "likes" WHERE user_id`).
		WithArgs(userID).
		WillReturnRows(rows)

	ids, err := repo.FetchLikedIDs(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 4}, ids)
}

func TestStore(t *testing.T) {
	repo, mock := setup(t)

	mock.ExpectQuery(`INSERT INTO "recipes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	draft := &domain.RecipeDraft{
		Title:       "Shakshuka",
		Description: "Eggs in tomato sauce.",
		UserID:      uuid.New(),
	}
	require.NoError(t, repo.Store(context.Background(), draft))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreBlankDraft(t *testing.T) {
	repo, mock := setup(t)

	draft := &domain.RecipeDraft{
		Title:       "  \n",
		Description: "Eggs in tomato sauce.",
		UserID:      uuid.New(),
	}
	err := repo.Store(context.Background(), draft)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "title")
	// rejected before any query reached the store
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLikeRecordConflict(t *testing.T) {
	repo, mock := setup(t)

	mock.ExpectExec(`INSERT INTO "likes"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.AddLikeRecord(context.Background(), domain.Like{UserID: uuid.New(), RecipeID: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRemoveLikeRecord(t *testing.T) {
	repo, mock := setup(t)
	like := domain.Like{UserID: uuid.New(), RecipeID: 1}

	mock.ExpectExec(`DELETE FROM "likes" WHERE user_id`).
		WithArgs(like.UserID, like.RecipeID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.RemoveLikeRecord(context.Background(), like))

	mock.ExpectExec(`DELETE FROM "likes" WHERE user_id`).
		WithArgs(like.UserID, like.RecipeID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.RemoveLikeRecord(context.Background(), like), domain.ErrNotFound)
}
