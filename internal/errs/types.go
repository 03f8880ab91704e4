package errs

import "strings"

// Kind is the taxonomy tag of an HTTPError. It determines the HTTP status
// the global error handler resolves and lets callers branch on a single
// error type with errors.As.
type Kind string

const (
	KindBadRequest   Kind = "BadRequest"
	KindUnauthorized Kind = "Unauthorized"
	KindForbidden    Kind = "Forbidden"
	KindNotFound     Kind = "NotFound"
	KindConflict     Kind = "Conflict"
	KindInternal     Kind = "Internal"
)

// FieldError represents a single field-level validation failure.
//
// Example:
//
//	{ "field": "email", "error": "Invalid email format." }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the typed error returned by handlers, services, and
// middleware. It is created at the point of failure and propagates up the
// call stack unchanged until the global error handler consumes it.
//
// Fields:
//   - Kind: taxonomy tag (BadRequest, Unauthorized, ...)
//   - Code: machine-friendly code derived from the HTTP status text,
//     e.g. "BAD_REQUEST"
//   - Message: human-readable message, safe to show to clients
//   - Status: resolved HTTP status code
//   - Errors: optional field-level validation errors
//   - Details: optional structured context for diagnostics
type HTTPError struct {
	Kind    Kind         `json:"-"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
	Details any          `json:"details,omitempty"`
}

// Error satisfies the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Name is the wire name of the error, e.g. "NotFoundError" or
// "InternalServerError". It appears in the error envelope.
func (e *HTTPError) Name() string {
	if e.Kind == KindInternal {
		return "InternalServerError"
	}
	return string(e.Kind) + "Error"
}

// Is reports whether target is also an *HTTPError. It matches on type only,
// so errors.Is(err, &errs.HTTPError{}) answers "is this one of ours".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Message replaced. The
// original is not mutated.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// WithDetails returns a copy of the error with Details attached.
func (e *HTTPError) WithDetails(details any) *HTTPError {
	clone := *e
	clone.Details = details
	return &clone
}

// MakeUpperCaseWithUnderscores converts an HTTP status text into a stable
// machine-readable code.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
