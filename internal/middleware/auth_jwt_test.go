package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func runAuth(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := AuthJWT(config.Config{JWTSecret: testSecret})
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	assert.NoError(t, err)
	return rec, c, called
}

// Test: 有効なトークンでuser_idとroleがcontextに入る
func TestAuthJWTValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "1",
		"role": "buyer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, c, called := runAuth(t, "Bearer "+token)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), c.Get(CtxUserIDKey))
	assert.Equal(t, "buyer", c.Get(CtxUserRoleKey))
}

// Test: ヘッダなしは401
func TestAuthJWTMissingHeader(t *testing.T) {
	rec, _, called := runAuth(t, "")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Test: 署名が違うトークンは401
func TestAuthJWTWrongSignature(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub":  "1",
		"role": "buyer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, _, called := runAuth(t, "Bearer "+token)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Test: 期限切れは401
func TestAuthJWTExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "1",
		"role": "buyer",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	rec, _, called := runAuth(t, "Bearer "+token)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Test: Bearer形式でないヘッダは401
func TestAuthJWTMalformedHeader(t *testing.T) {
	rec, _, called := runAuth(t, "Basic abc123")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Test: seller専用ルートのガード
func TestRequireSeller(t *testing.T) {
	e := echo.New()

	run := func(role string) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(CtxUserRoleKey, role)

		called := false
		h := RequireSeller()(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})
		err := h(c)
		assert.NoError(t, err)
		return rec, called
	}

	rec, called := run("seller")
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, called = run("buyer")
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
