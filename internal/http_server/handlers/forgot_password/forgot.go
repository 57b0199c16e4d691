package forgotpassword

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"catalog_service/internal/accounts"
	resp "catalog_service/internal/lib/api/response"
	sl "catalog_service/internal/lib/logger"
	"catalog_service/internal/mail"
	"catalog_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Request struct {
	Email string `json:"email"`
}

type AccountFinder interface {
	UserByEmail(ctx context.Context, email string) (models.PublicUser, error)
}

// New hands a password-change mail off to the broker. The response is the
// same whether or not the account exists.
func New(
	log *slog.Logger,
	finder AccountFinder,
	publisher mail.Publisher,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.forgot_password.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Falha ao ler o corpo da requisição"))

			return
		}

		if req.Email == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("E-mail é obrigatório."))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, err := finder.UserByEmail(ctx, req.Email)
		if err != nil {
			if !errors.Is(err, accounts.ErrUserNotFound) {
				log.Error("failed to get user", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Erro interno do servidor"))

				return
			}

			// Unknown address: respond ok without publishing.
			render.JSON(w, r, resp.OK())

			return
		}

		if err := mail.SendForgotPasswordMail(ctx, log, publisher, user.Email, user.Name); err != nil {
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Erro interno do servidor"))

			return
		}

		log.Info("password mail queued")

		render.JSON(w, r, resp.OK())
	}
}
