// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mvillard/groupomania/internal/handler"
	"github.com/mvillard/groupomania/internal/middleware"
	"github.com/mvillard/groupomania/internal/server"
)

// New builds the Echo instance: global middleware in order, the global
// error handler, and all route groups.
func New(s *server.Server, mws *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	enhancer := middleware.NewContextEnhancer(s)

	e.Use(mws.Global.Recover())
	e.Use(middleware.RequestID())
	e.Use(enhancer.EnhanceContext())
	e.Use(mws.Global.RequestLogger())
	e.Use(mws.Global.CORS())
	e.Use(mws.Global.Secure())
	e.Use(mws.Global.BodyLimit())

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, mws, h)

	return e
}
