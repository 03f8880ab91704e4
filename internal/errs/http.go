package errs

import "net/http"

func newError(kind Kind, status int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &HTTPError{
		Kind:    kind,
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewBadRequest creates a 400 Bad Request error for malformed or invalid
// client input.
func NewBadRequest(message string) *HTTPError {
	return newError(KindBadRequest, http.StatusBadRequest, message)
}

// NewValidation creates a 400 Bad Request error carrying field-level
// validation errors.
func NewValidation(message string, fields []FieldError) *HTTPError {
	err := newError(KindBadRequest, http.StatusBadRequest, message)
	err.Errors = fields
	return err
}

// NewUnauthorized creates a 401 Unauthorized error for missing, invalid,
// or expired credentials.
func NewUnauthorized(message string) *HTTPError {
	return newError(KindUnauthorized, http.StatusUnauthorized, message)
}

// NewForbidden creates a 403 Forbidden error. The credential was
// cryptographically valid but insufficient or semantically incomplete.
func NewForbidden(message string) *HTTPError {
	return newError(KindForbidden, http.StatusForbidden, message)
}

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *HTTPError {
	return newError(KindNotFound, http.StatusNotFound, message)
}

// NewConflict creates a 409 Conflict error, typically for uniqueness
// violations such as a duplicate email.
func NewConflict(message string) *HTTPError {
	return newError(KindConflict, http.StatusConflict, message)
}

// NewInternal creates a 500 Internal Server Error. The message defaults to
// the generic status text; raw internal error text must never be put here.
func NewInternal() *HTTPError {
	return newError(KindInternal, http.StatusInternalServerError, "")
}
