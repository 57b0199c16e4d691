package categories

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	resp "catalog_service/internal/lib/api/response"
	sl "catalog_service/internal/lib/logger"
	"catalog_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type CategoryProvider interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

func New(
	log *slog.Logger,
	provider CategoryProvider,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.categories.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.Categories(ctx)
		if err != nil {
			log.Error("failed to list categories", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Erro interno do servidor"))

			return
		}

		if list == nil {
			list = []models.Category{}
		}

		render.JSON(w, r, list)
	}
}
