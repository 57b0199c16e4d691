package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"catalog_service/internal/accounts"
	resp "catalog_service/internal/lib/api/response"
	sl "catalog_service/internal/lib/logger"
	"catalog_service/internal/models"
	"catalog_service/internal/validation"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Response struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

type AccountAuthenticator interface {
	Login(ctx context.Context, in validation.LoginInput) (models.PublicUser, string, error)
}

func New(
	log *slog.Logger,
	authenticator AccountAuthenticator,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req validation.LoginInput

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

		user, token, err := authenticator.Login(ctx, req)
		if err != nil {
			var vErr *validation.Error

			switch {
			case errors.As(err, &vErr):
				log.Warn("invalid request", sl.Err(err))

				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error(vErr.Message))
			case errors.Is(err, accounts.ErrInvalidCredentials):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("E-mail ou senha incorretos"))
			default:
				log.Error("failed to login user", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Erro interno do servidor"))
			}

			return
		}

		log.Info("User logged in successfully")

		render.JSON(w, r, Response{User: user, Token: token})
	}
}
