package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sl "catalog_service/internal/lib/logger"
	"catalog_service/internal/models"
	"catalog_service/internal/storage"
	"catalog_service/internal/validation"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrAuthorNotFound   = errors.New("author not found")
)

type Catalog struct {
	log      *slog.Logger
	saver    BookSaver
	provider BookProvider
}

type BookSaver interface {
	SaveBook(ctx context.Context, book models.Book) (models.Book, error)
}

type BookProvider interface {
	Books(ctx context.Context) ([]models.Book, error)
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryByID(ctx context.Context, id int64) (models.Category, error)
	AuthorByID(ctx context.Context, id int64) (models.Author, error)
}

func New(log *slog.Logger, saver BookSaver, provider BookProvider) *Catalog {
	return &Catalog{
		log:      log,
		saver:    saver,
		provider: provider,
	}
}

// CreateBook validates the submission, checks that the referenced category
// and author exist and persists the book.
func (c *Catalog) CreateBook(ctx context.Context, in validation.BookInput) (models.Book, error) {
	const op = "catalog.CreateBook"

	log := c.log.With(slog.String("op", op))

	if err := validation.ValidateBook(in); err != nil {
		return models.Book{}, err
	}

	if _, err := c.provider.CategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			return models.Book{}, ErrCategoryNotFound
		}

		log.Error("failed to get category", sl.Err(err))
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := c.provider.AuthorByID(ctx, in.AuthorID); err != nil {
		if errors.Is(err, storage.ErrAuthorNotFound) {
			return models.Book{}, ErrAuthorNotFound
		}

		log.Error("failed to get author", sl.Err(err))
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	book, err := c.saver.SaveBook(ctx, models.Book{
		CategoryID:  in.CategoryID,
		AuthorID:    in.AuthorID,
		Name:        in.Name,
		CoverURL:    in.CoverURL,
		ReleaseDate: in.ReleaseDate,
		Pages:       in.Pages,
		Synopsis:    in.Synopsis,
		Highlighted: in.Highlighted,
	})
	if err != nil {
		log.Error("failed to save book", sl.Err(err))
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("book created", slog.Int64("id", book.ID))

	return book, nil
}

// Books lists the catalog with author and category embedded.
func (c *Catalog) Books(ctx context.Context) ([]models.Book, error) {
	const op = "catalog.Books"

	books, err := c.provider.Books(ctx)
	if err != nil {
		c.log.Error("failed to list books", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return books, nil
}

func (c *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	const op = "catalog.Categories"

	categories, err := c.provider.Categories(ctx)
	if err != nil {
		c.log.Error("failed to list categories", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}
