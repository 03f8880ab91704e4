// Package response builds the uniform JSON envelopes every endpoint emits.
//
// Success envelopes omit absent keys instead of writing null values.
// Error envelopes are only ever written by the global error handler, which
// fills the timestamp, request path, and method from the ambient request.
package response

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the success wrapper returned by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorEnvelope is the failure wrapper. Exactly one is emitted per failed
// request, by the global error handler.
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody carries the resolved error fields plus request context.
type ErrorBody struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	Method    string `json:"method"`
	Details   any    `json:"details,omitempty"`
}

// Success writes a success envelope with the given status code. Message and
// data are optional; pass "" or nil to omit them from the payload.
func Success(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope. The timestamp is ISO-8601 UTC; path and
// method come from the request so the body is self-describing in logs and
// client reports.
func Error(c echo.Context, status int, name, message string, details any) error {
	return c.JSON(status, ErrorEnvelope{
		Success: false,
		Error: ErrorBody{
			Name:      name,
			Message:   message,
			Code:      status,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Path:      c.Request().URL.Path,
			Method:    c.Request().Method,
			Details:   details,
		},
	})
}
