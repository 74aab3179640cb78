package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/handler"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/infra/bundle"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/infra/memory"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/server"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC) }

func newServer(secret string) *echo.Echo {
	store := memory.NewStore()
	memory.SeedDemo(store)
	files := bundle.NewMemoryBundle()

	return server.New(server.Deps{
		Stock:             handler.NewStockHandler(usecase.NewStockUsecase(store.Shirts(), store, files, nil, nil), fixedClock{}, true),
		Orders:            handler.NewOrderHandler(usecase.NewOrderUsecase(store, files, nil, fixedClock{}, nil), fixedClock{}, true),
		Logger:            zap.NewNop(),
		OperatorJWTSecret: secret,
	})
}

func get(e *echo.Echo, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_RequestID(t *testing.T) {
	rec := get(newServer(""), "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	id := rec.Header().Get(echo.HeaderXRequestID)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestServer_RequestIDPropagated(t *testing.T) {
	e := newServer("")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestServer_OpenWithoutSecret(t *testing.T) {
	rec := get(newServer(""), "/operacoes/GetInfo", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_GuardedWithSecret(t *testing.T) {
	e := newServer("s3cret")

	rec := get(e, "/operacoes/GetInfo", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	//healthは認証なし
	rec = get(e, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "estoquista-1",
		"role": "OPERATOR",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	rec = get(e, "/operacoes/GetInfo", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
