// Package dberr translates raw MongoDB driver errors into the application
// error taxonomy.
//
// Repositories return driver errors wrapped with context; anything that
// escapes to the global error handler without being classified passes
// through HandleError so clients see a meaningful status instead of a
// generic 500 where one can be inferred.
package dberr

import (
	"context"
	"errors"

	"github.com/mvillard/groupomania/internal/errs"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleError maps a database error to an *errs.HTTPError.
//
//   - no documents -> NotFound
//   - duplicate key (unique index violation) -> Conflict
//   - deadline exceeded -> Internal (driver timeout, nothing actionable
//     for the client)
//   - anything else -> Internal
//
// Errors that are already *errs.HTTPError pass through unchanged.
func HandleError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return errs.NewNotFound("Resource not found.")
	case mongo.IsDuplicateKeyError(err):
		return errs.NewConflict("This email is already in use.")
	case errors.Is(err, context.DeadlineExceeded):
		return errs.NewInternal()
	default:
		return errs.NewInternal()
	}
}
