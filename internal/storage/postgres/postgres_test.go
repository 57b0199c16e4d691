package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_service/internal/models"
	"catalog_service/internal/storage"
)

func TestPostgresRepo_SaveUser(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "avatar_url", "created_at"}).
					AddRow(int64(1), "", now)
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Ana Silva", "ana@example.com", "hashed").
					WillReturnRows(rows)
			},
		},
		{
			name: "unique violation maps to ErrUserExists",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Ana Silva", "ana@example.com", "hashed").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: storage.ErrUserExists,
		},
		{
			name: "other database error is wrapped",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Ana Silva", "ana@example.com", "hashed").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewWithDB(mock)
			user, err := repo.SaveUser(context.Background(), models.NewUser{
				Name:     "Ana Silva",
				Email:    "ana@example.com",
				PassHash: []byte("hashed"),
			})

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, storage.ErrUserExists) {
					assert.ErrorIs(t, err, storage.ErrUserExists)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), user.ID)
				assert.Equal(t, "ana@example.com", user.Email)
				assert.Equal(t, []byte("hashed"), user.PassHash)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestPostgresRepo_UserByEmail(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "user found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "avatar_url", "created_at"}).
					AddRow(int64(7), "Ana Silva", "ana@example.com", []byte("hash"), "", now)
				mock.ExpectQuery(`SELECT id, name, email, password_hash, avatar_url, created_at`).
					WithArgs("ana@example.com").
					WillReturnRows(rows)
			},
		},
		{
			name: "no rows maps to ErrUserNotFound",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, email, password_hash, avatar_url, created_at`).
					WithArgs("ana@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "avatar_url", "created_at"}))
			},
			wantErr: storage.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewWithDB(mock)
			user, err := repo.UserByEmail(context.Background(), "ana@example.com")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), user.ID)
				assert.Equal(t, "Ana Silva", user.Name)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestPostgresRepo_Books(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	release := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{
		"id", "category_id", "author_id", "name", "cover_url", "release_date",
		"pages", "synopsis", "highlighted",
		"author_name", "author_avatar_url",
		"category_name", "category_highlighted",
	}).AddRow(
		int64(1), int64(7), int64(3), "Essencialismo", "https://covers.example.com/1.png", &release,
		272, "Menos, mas melhor.", true,
		"Greg McKeown", "",
		"Romance", false,
	)

	mock.ExpectQuery(`SELECT b.id, b.category_id, b.author_id`).WillReturnRows(rows)

	repo := NewWithDB(mock)
	books, err := repo.Books(context.Background())
	require.NoError(t, err)

	require.Len(t, books, 1)
	assert.Equal(t, "Essencialismo", books[0].Name)
	require.NotNil(t, books[0].Author)
	assert.Equal(t, "Greg McKeown", books[0].Author.Name)
	assert.Equal(t, int64(3), books[0].Author.ID)
	require.NotNil(t, books[0].Category)
	assert.Equal(t, "Romance", books[0].Category.Name)

	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestPostgresRepo_CategoryByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, highlighted`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "highlighted"}))

	repo := NewWithDB(mock)
	_, err = repo.CategoryByID(context.Background(), 99)
	assert.ErrorIs(t, err, storage.ErrCategoryNotFound)

	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}
