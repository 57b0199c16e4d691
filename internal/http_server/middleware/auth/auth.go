package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	resp "catalog_service/internal/lib/api/response"
	"catalog_service/internal/lib/jwt"
	sl "catalog_service/internal/lib/logger"

	"github.com/go-chi/render"
)

type contextKey string

const userIDKey contextKey = "uid"

// New validates the bearer session token and puts the authenticated user id
// into the request context.
func New(log *slog.Logger, tokenSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if header == "" || token == header {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("Token não informado"))

				return
			}

			userID, err := jwt.ParseToken(token, tokenSecret)
			if err != nil {
				log.Warn("invalid session token", sl.Err(err))

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("Token inválido ou expirado"))

				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user id set by the middleware.
func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
