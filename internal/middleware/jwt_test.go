package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-hotel-reservation/internal/utils"
)

func jwtTestServer(secret string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1")
	g.Use(JWTAuth(secret))
	g.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id")})
	})
	return e
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	e := jwtTestServer("secret")
	tok, err := utils.NewAccessToken("secret", 42, 15)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	e := jwtTestServer("secret")

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	e := jwtTestServer("secret")
	tok, err := utils.NewAccessToken("other-secret", 42, 15)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	e := jwtTestServer("secret")
	tok, err := utils.NewAccessToken("secret", 42, -1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
