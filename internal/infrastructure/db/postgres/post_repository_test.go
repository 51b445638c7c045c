package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favboard/favboard-api/internal/core/domain"
)

var postRowColumns = []string{
	"id", "title", "description", "url", "author_id", "created_at", "updated_at",
	"author_first_name", "author_last_name", "favorites_count",
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewPostRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT p\.\*, u\.first_name AS author_first_name.* FROM posts p JOIN users u ON u\.id = p\.author_id ORDER BY p\.created_at DESC`).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow("p2", "Newer", "", "https://b", "a1", now, now, "Ann", "Lee", 3).
			AddRow("p1", "Older", "", "https://a", "a1", now.Add(-time.Hour), now, "Ann", "Lee", 0))

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.Equal(t, "Ann", posts[0].Author.FirstName)
	assert.EqualValues(t, 3, posts[0].FavoritesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_FindByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`FROM posts p JOIN users u ON u\.id = p\.author_id WHERE p\.id = \$1`).
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewPostRepository(db)
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO "posts"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow("p1", "Go", "", "https://go.dev", "a1", now, now, "Ann", "Lee", 0))

	post, err := repo.Create(context.Background(), &domain.Post{ID: "p1", Title: "Go", URL: "https://go.dev", AuthorID: "a1"})
	require.NoError(t, err)
	assert.Equal(t, "Lee", post.Author.LastName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete_Missing(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`DELETE FROM "posts" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), domain.ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AddFavorite(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewPostRepository(db)
	fav := domain.Favorite{UserID: "u1", PostID: "p1", CreatedAt: time.Now().UTC()}

	mock.ExpectExec(`INSERT INTO "favorites"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "favorites"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectExec(`INSERT INTO "favorites"`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	require.NoError(t, repo.AddFavorite(context.Background(), fav))
	assert.ErrorIs(t, repo.AddFavorite(context.Background(), fav), domain.ErrAlreadyFavorite)
	assert.ErrorIs(t, repo.AddFavorite(context.Background(), fav), domain.ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_RemoveFavorite_Missing(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`DELETE FROM "favorites" WHERE user_id = \$1 AND post_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.RemoveFavorite(context.Background(), "u1", "p1"), domain.ErrFavoriteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListFavorites(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewPostRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`JOIN favorites fav ON fav\.post_id = p\.id WHERE fav\.user_id = \$1 ORDER BY fav\.created_at DESC`).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow("p1", "Go", "", "https://go.dev", "a1", now, now, "Ann", "Lee", 1))

	posts, err := repo.ListFavorites(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
