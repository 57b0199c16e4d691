package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"catalog_service/internal/accounts"
	mwauth "catalog_service/internal/http_server/middleware/auth"
	resp "catalog_service/internal/lib/api/response"
	sl "catalog_service/internal/lib/logger"
	"catalog_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Response struct {
	User models.PublicUser `json:"user"`
}

type UserProvider interface {
	UserByID(ctx context.Context, id int64) (models.PublicUser, error)
}

func New(
	log *slog.Logger,
	provider UserProvider,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profile.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID, ok := mwauth.UserID(r.Context())
		if !ok {
			log.Warn("missing user id in context")

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Id é obrigatório"))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, err := provider.UserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, accounts.ErrUserNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Usuário não encontrado"))

				return
			}

			log.Error("failed to get user", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Erro interno do servidor"))

			return
		}

		render.JSON(w, r, Response{User: user})
	}
}
