package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const secret = "test-secret"

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	Operator string `json:"operator"`
	Role     string `json:"role"`
}

// =====================
// helper
// =====================

func mustMakeJWT(t *testing.T, key string, claims jwt.MapClaims, method jwt.SigningMethod) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func operatorClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  "estoquista-1",
		"role": role,
		"iat":  1,
		"exp":  9999999999,
	}
}

func newProtected() *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, mwOKResponse{
			Operator: c.Get(middleware.CtxOperatorKey).(string),
			Role:     c.Get(middleware.CtxOperatorRoleKey).(string),
		})
	}, middleware.AuthJWT(secret), middleware.OperatorRoleGuard())
	return e
}

func runRequest(t *testing.T, e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMWError(t *testing.T, rec *httptest.ResponseRecorder) mwErrorResponse {
	t.Helper()
	var r mwErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&r)
	return r
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT_Unauthorized(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"bad scheme", "Token abc.def.ghi"},
		{"empty token", "Bearer  "},
		{"bad signature", "Bearer " + mustMakeJWT(t, "wrong-secret", operatorClaims("OPERATOR"), jwt.SigningMethodHS256)},
		{"wrong alg", "Bearer " + mustMakeJWT(t, secret, operatorClaims("OPERATOR"), jwt.SigningMethodHS512)},
		{"expired", "Bearer " + mustMakeJWT(t, secret, jwt.MapClaims{"sub": "x", "role": "OPERATOR", "exp": 1}, jwt.SigningMethodHS256)},
		{"no role", "Bearer " + mustMakeJWT(t, secret, jwt.MapClaims{"sub": "x", "exp": 9999999999}, jwt.SigningMethodHS256)},
		{"numeric sub", "Bearer " + mustMakeJWT(t, secret, jwt.MapClaims{"sub": 1, "role": "OPERATOR", "exp": 9999999999}, jwt.SigningMethodHS256)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runRequest(t, newProtected(), tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "unauthorized", decodeMWError(t, rec).Error)
		})
	}
}

func TestAuthJWT_Success_SetsContext(t *testing.T) {
	for _, role := range []string{"OPERATOR", "ADMIN"} {
		raw := mustMakeJWT(t, secret, operatorClaims(role), jwt.SigningMethodHS256)
		rec := runRequest(t, newProtected(), "Bearer "+raw)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body mwOKResponse
		_ = json.NewDecoder(rec.Body).Decode(&body)
		assert.Equal(t, "estoquista-1", body.Operator)
		assert.Equal(t, role, body.Role)
	}
}

// =====================
// OperatorRoleGuard
// =====================

func TestOperatorRoleGuard_Forbidden(t *testing.T) {
	raw := mustMakeJWT(t, secret, operatorClaims("USER"), jwt.SigningMethodHS256)
	rec := runRequest(t, newProtected(), "Bearer "+raw)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "operator only", decodeMWError(t, rec).Error)
}

func TestOperatorRoleGuard_NoRoleInContext(t *testing.T) {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, middleware.OperatorRoleGuard())

	rec := runRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// RequestLogger
// =====================

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	e.Use(middleware.RequestLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
		assert.Equal(t, int64(500), entries[1].ContextMap()["status"])
	}
}
