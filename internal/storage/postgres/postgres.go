package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog_service/internal/config"
	"catalog_service/internal/models"
	"catalog_service/internal/storage"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type PostgresRepo struct {
	pool DB
}

func New(ctx context.Context, cfg *config.Config) (*PostgresRepo, error) {
	const op = "storage.postgres.New"

	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", op, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	return &PostgresRepo{pool: pool}, nil
}

// NewWithDB wires the repository over an existing connection pool.
func NewWithDB(db DB) *PostgresRepo {
	return &PostgresRepo{pool: db}
}

func (r *PostgresRepo) SaveUser(ctx context.Context, user models.NewUser) (models.User, error) {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, avatar_url, created_at;
	`

	u := models.User{
		Name:     user.Name,
		Email:    user.Email,
		PassHash: user.PassHash,
	}

	err := r.pool.QueryRow(ctx, query, user.Name, user.Email, string(user.PassHash)).
		Scan(&u.ID, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return models.User{}, storage.ErrUserExists
		}

		return models.User{}, fmt.Errorf("%s: failed to save user: %w", op, err)
	}

	return u, nil
}

func (r *PostgresRepo) UserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar_url, created_at
		FROM users
		WHERE email = $1;
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PostgresRepo) UserByID(ctx context.Context, id int64) (models.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar_url, created_at
		FROM users
		WHERE id = $1;
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PostgresRepo) scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PassHash,
		&u.AvatarURL,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrUserNotFound
		}

		return models.User{}, err
	}

	return u, nil
}

func (r *PostgresRepo) SaveBook(ctx context.Context, book models.Book) (models.Book, error) {
	const op = "storage.postgres.SaveBook"

	query := `
		INSERT INTO books (category_id, author_id, name, cover_url, release_date, pages, synopsis, highlighted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`

	err := r.pool.QueryRow(ctx, query,
		book.CategoryID,
		book.AuthorID,
		book.Name,
		book.CoverURL,
		book.ReleaseDate,
		book.Pages,
		book.Synopsis,
		book.Highlighted,
	).Scan(&book.ID)
	if err != nil {
		return models.Book{}, fmt.Errorf("%s: failed to save book: %w", op, err)
	}

	return book, nil
}

func (r *PostgresRepo) Books(ctx context.Context) ([]models.Book, error) {
	const op = "storage.postgres.Books"

	query := `
		SELECT b.id, b.category_id, b.author_id, b.name, b.cover_url, b.release_date,
		       b.pages, b.synopsis, b.highlighted,
		       a.name, a.avatar_url,
		       c.name, c.highlighted
		FROM books b
		JOIN authors a ON a.id = b.author_id
		JOIN categories c ON c.id = b.category_id
		ORDER BY b.id;
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var books []models.Book

	for rows.Next() {
		var (
			b models.Book
			a models.Author
			c models.Category
		)

		err := rows.Scan(
			&b.ID, &b.CategoryID, &b.AuthorID, &b.Name, &b.CoverURL, &b.ReleaseDate,
			&b.Pages, &b.Synopsis, &b.Highlighted,
			&a.Name, &a.AvatarURL,
			&c.Name, &c.Highlighted,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		a.ID = b.AuthorID
		c.ID = b.CategoryID
		b.Author = &a
		b.Category = &c

		books = append(books, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: %w", op, rows.Err())
	}

	return books, nil
}

func (r *PostgresRepo) Categories(ctx context.Context) ([]models.Category, error) {
	const op = "storage.postgres.Categories"

	query := `
		SELECT id, name, highlighted
		FROM categories
		ORDER BY id;
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var categories []models.Category

	for rows.Next() {
		var c models.Category

		if err := rows.Scan(&c.ID, &c.Name, &c.Highlighted); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		categories = append(categories, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: %w", op, rows.Err())
	}

	return categories, nil
}

func (r *PostgresRepo) CategoryByID(ctx context.Context, id int64) (models.Category, error) {
	query := `
		SELECT id, name, highlighted
		FROM categories
		WHERE id = $1;
	`

	var c models.Category

	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Highlighted)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Category{}, storage.ErrCategoryNotFound
	}

	return c, err
}

func (r *PostgresRepo) AuthorByID(ctx context.Context, id int64) (models.Author, error) {
	query := `
		SELECT id, name, avatar_url
		FROM authors
		WHERE id = $1;
	`

	var a models.Author

	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.AvatarURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Author{}, storage.ErrAuthorNotFound
	}

	return a, err
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

// DSN builds the database connection URL.
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)
}
