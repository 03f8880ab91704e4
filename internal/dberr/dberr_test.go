package dberr

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mvillard/groupomania/internal/errs"
)

func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: "E11000 duplicate key error collection: groupomania.users index: email_1"},
		},
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKind    errs.Kind
		wantMessage string
	}{
		{
			name:        "no documents",
			err:         mongo.ErrNoDocuments,
			wantStatus:  http.StatusNotFound,
			wantKind:    errs.KindNotFound,
			wantMessage: "Resource not found.",
		},
		{
			name:        "wrapped no documents",
			err:         errors.Wrap(mongo.ErrNoDocuments, "find post"),
			wantStatus:  http.StatusNotFound,
			wantKind:    errs.KindNotFound,
			wantMessage: "Resource not found.",
		},
		{
			name:        "duplicate key",
			err:         duplicateKeyErr(),
			wantStatus:  http.StatusConflict,
			wantKind:    errs.KindConflict,
			wantMessage: "This email is already in use.",
		},
		{
			name:       "deadline exceeded",
			err:        errors.Wrap(context.DeadlineExceeded, "insert user"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   errs.KindInternal,
		},
		{
			name:       "unknown driver error",
			err:        errors.New("server selection timeout"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   errs.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := HandleError(tt.err)

			require.Equal(t, tt.wantStatus, httpErr.Status)
			require.Equal(t, tt.wantKind, httpErr.Kind)
			if tt.wantMessage != "" {
				require.Equal(t, tt.wantMessage, httpErr.Message)
			}
		})
	}
}

func TestHandleErrorPassesThroughTypedErrors(t *testing.T) {
	original := errs.NewConflict("This email is already in use.")

	httpErr := HandleError(errors.Wrap(original, "create user"))

	require.Same(t, original, httpErr)
}
