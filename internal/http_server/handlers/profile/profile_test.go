package profile

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_service/internal/accounts"
	mwauth "catalog_service/internal/http_server/middleware/auth"
	"catalog_service/internal/lib/jwt"
	"catalog_service/internal/models"
)

type stubProvider struct {
	user models.PublicUser
	err  error
}

func (s *stubProvider) UserByID(_ context.Context, _ int64) (models.PublicUser, error) {
	return s.user, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProfileHandler_Success(t *testing.T) {
	stub := &stubProvider{
		user: models.PublicUser{ID: 7, Name: "Ana Silva", Email: "ana@example.com", CreatedAt: time.Now()},
	}

	secret := "test-secret"
	token, err := jwt.NewToken(7, secret, time.Hour)
	require.NoError(t, err)

	handler := mwauth.New(discardLogger(), secret)(New(discardLogger(), stub))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, int64(7), got.User.ID)
	assert.Equal(t, "ana@example.com", got.User.Email)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestProfileHandler_MissingToken(t *testing.T) {
	handler := mwauth.New(discardLogger(), "test-secret")(New(discardLogger(), &stubProvider{}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProfileHandler_InvalidToken(t *testing.T) {
	handler := mwauth.New(discardLogger(), "test-secret")(New(discardLogger(), &stubProvider{}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProfileHandler_MissingID(t *testing.T) {
	// Handler reached without the middleware having set a user id.
	handler := New(discardLogger(), &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Id é obrigatório"}`, rr.Body.String())
}

func TestProfileHandler_NotFound(t *testing.T) {
	stub := &stubProvider{err: accounts.ErrUserNotFound}

	secret := "test-secret"
	token, err := jwt.NewToken(999, secret, time.Hour)
	require.NoError(t, err)

	handler := mwauth.New(discardLogger(), secret)(New(discardLogger(), stub))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Usuário não encontrado"}`, rr.Body.String())
}
