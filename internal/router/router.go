package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-reservation/internal/handler"
	"github.com/iliyamo/event-hotel-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Unauthenticated operations
// live under /v1/auth; /v1/me and /v1/auth/logout require a valid access
// token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// rotates the refresh token
	g.POST("/refresh", a.Refresh)
	// issues a new access token without rotating the refresh token
	g.POST("/refresh-access", a.RefreshAccess)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout", a.Logout)
}
