package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mvillard/groupomania/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of business
// logic.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by load balancers and monitors).
	e.GET("/status", h.Health.CheckHealth)
}
