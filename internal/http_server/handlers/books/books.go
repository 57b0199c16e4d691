package books

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"catalog_service/internal/catalog"
	resp "catalog_service/internal/lib/api/response"
	sl "catalog_service/internal/lib/logger"
	"catalog_service/internal/models"
	"catalog_service/internal/validation"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type BookService interface {
	CreateBook(ctx context.Context, in validation.BookInput) (models.Book, error)
	Books(ctx context.Context) ([]models.Book, error)
}

func NewCreate(
	log *slog.Logger,
	service BookService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.books.NewCreate"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req validation.BookInput

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Falha ao ler o corpo da requisição"))

			return
		}

		log.Info("Request body decoded")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		book, err := service.CreateBook(ctx, req)
		if err != nil {
			var vErr *validation.Error

			switch {
			case errors.As(err, &vErr):
				log.Warn("invalid request", sl.Err(err))

				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error(vErr.Message))
			case errors.Is(err, catalog.ErrCategoryNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Categoria não encontrada"))
			case errors.Is(err, catalog.ErrAuthorNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Autor não encontrado"))
			default:
				log.Error("failed to create book", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Erro interno do servidor"))
			}

			return
		}

		log.Info("Book created", slog.Int64("id", book.ID))

		render.JSON(w, r, book)
	}
}

func NewList(
	log *slog.Logger,
	service BookService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.books.NewList"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := service.Books(ctx)
		if err != nil {
			log.Error("failed to list books", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Erro interno do servidor"))

			return
		}

		if list == nil {
			list = []models.Book{}
		}

		render.JSON(w, r, list)
	}
}
