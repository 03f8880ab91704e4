package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mvillard/groupomania/internal/dberr"
	"github.com/mvillard/groupomania/internal/errs"
	"github.com/mvillard/groupomania/internal/response"
	"github.com/mvillard/groupomania/internal/server"
)

// GlobalMiddlewares groups global middleware and the global error handler.
// The struct form gives middleware access to shared app dependencies from
// *server.Server, mainly config and the logger.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger emits one structured log line per request, with severity
// based on the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When the handler returns an error, the final status is decided
			// later by the global error handler, so derive it from the error
			// type to avoid logging status=200 for a failed request.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				var httpErr *errs.HTTPError
				var echoErr *echo.HTTPError

				if errors.As(v.Error, &httpErr) {
					statusCode = httpErr.Status
				} else if errors.As(v.Error, &echoErr) {
					statusCode = echoErr.Code
				}
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware. Panics become 500
// responses instead of crashing the process.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// BodyLimit caps request body size. Uploads are the largest legitimate
// payload, so the cap sits a little above the per-file ceiling.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit("6M")
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error returned by a handler or middleware ends up here. Typed errors
// already carry their response shape and are logged at warning level.
// Anything else is classified (Echo routing errors, database errors) or
// sanitized into a generic 500, logged at error level with a stack.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	recognized := errors.As(err, &httpErr)

	if !recognized {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			switch echoErr.Code {
			case http.StatusNotFound:
				httpErr = errs.NewNotFound("Route not found.")
				recognized = true
			case http.StatusMethodNotAllowed:
				httpErr = errs.NewNotFound("Route not found.")
				recognized = true
			case http.StatusRequestEntityTooLarge:
				httpErr = errs.NewBadRequest("Request body is too large.")
				recognized = true
			default:
				httpErr = errs.NewInternal()
			}
		} else {
			// Likely a driver or database error. dberr classifies the ones
			// with a client-facing meaning; everything else becomes a 500.
			httpErr = dberr.HandleError(err)
			recognized = httpErr.Kind != errs.KindInternal
		}
	}

	logger := *GetLogger(c)

	if recognized {
		logger.Warn().
			Int("status", httpErr.Status).
			Str("error_code", httpErr.Code).
			Msg(httpErr.Message)
	} else {
		logger.Error().Stack().
			Err(originalErr).
			Int("status", httpErr.Status).
			Str("error_code", httpErr.Code).
			Msg(httpErr.Message)
	}

	if c.Response().Committed {
		return
	}

	details := httpErr.Details
	if details == nil && len(httpErr.Errors) > 0 {
		details = httpErr.Errors
	}

	if writeErr := response.Error(c, httpErr.Status, httpErr.Name(), httpErr.Message, details); writeErr != nil {
		logger.Error().Err(writeErr).Msg("failed to write error response")
	}
}
