package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopd/internal/config"
	"shopd/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// レスポンス確認用（any禁止）
// =====================

type mwErrorResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type mwOKResponse struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// =====================
// helper
// =====================

func mustMakeJWT(t *testing.T, secret string, sub int64, role string, method jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  1,
		"exp":  9999999999,
	}

	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func runAuthed(t *testing.T, authzHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	cfg := config.Config{JWTSecret: "test-secret"}

	// context値をそのまま返すだけのhandler
	h := func(c echo.Context) error {
		return c.JSON(http.StatusOK, mwOKResponse{
			UserID: c.Get(middleware.CtxUserIDKey).(int64),
			Role:   c.Get(middleware.CtxUserRoleKey).(string),
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authzHeader != "" {
		req.Header.Set("Authorization", authzHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := middleware.AuthJWT(cfg)(h)(c)
	assert.NoError(t, err)
	return rec
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := mustMakeJWT(t, "test-secret", 1, "USER", jwt.SigningMethodHS256)
	rec := runAuthed(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.UserID)
	assert.Equal(t, "USER", body.Role)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec := runAuthed(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body mwErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	rec := runAuthed(t, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := mustMakeJWT(t, "other-secret", 1, "USER", jwt.SigningMethodHS256)
	rec := runAuthed(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_RejectsNonHS256(t *testing.T) {
	// alg none相当の混入は署名方式チェックで弾く
	token := mustMakeJWT(t, "test-secret", 1, "USER", jwt.SigningMethodHS512)
	rec := runAuthed(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard(t *testing.T) {
	e := echo.New()
	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	// ADMIN は通る
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserRoleKey, "ADMIN")
	assert.NoError(t, middleware.AdminRoleGuard()(h)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// USER は403
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(middleware.CtxUserRoleKey, "USER")
	assert.NoError(t, middleware.AdminRoleGuard()(h)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
