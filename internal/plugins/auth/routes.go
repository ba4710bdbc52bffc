package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hearth/internal/middleware"
)

// RegisterRoutes wires the auth endpoints into the API group. Login and
// register are rate-limited aggressively since they are brute-force targets.
func RegisterRoutes(api *echo.Group, handler *Handler, service AuthService) {
	group := api.Group("/auth")

	group.POST("/register", handler.Register, middleware.RateLimit(5, time.Minute))
	group.POST("/login", handler.Login, middleware.RateLimit(10, time.Minute))
	group.POST("/logout", handler.Logout)
	group.GET("/me", handler.Me, RequireAuth(service))
}
