package middleware

import (
	"mime"

	"github.com/labstack/echo/v4"

	"github.com/mvillard/groupomania/internal/errs"
	"github.com/mvillard/groupomania/internal/server"
	"github.com/mvillard/groupomania/internal/validation"
)

// UploadMiddleware persists multipart file uploads before validation runs.
//
// The stored file's metadata is attached to the request via the validation
// package, where schemas decide whether the file is required and whether its
// type and size are acceptable. If validation rejects the request, the
// binding layer removes the stored file again.
type UploadMiddleware struct {
	server *server.Server
}

func NewUploadMiddleware(s *server.Server) *UploadMiddleware {
	return &UploadMiddleware{
		server: s,
	}
}

// Single accepts at most one uploaded file under the given form field and
// writes it into the given directory of the upload store. Requests without
// a file (or without a multipart body at all) pass through untouched.
func (u *UploadMiddleware) Single(field, dir string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			fh, err := c.FormFile(field)
			if err != nil {
				// Missing file and non-multipart bodies both land here.
				// Whether a file was required is the schema's call.
				return next(c)
			}

			stored, err := u.server.Storage.SaveUpload(fh, dir)
			if err != nil {
				GetLogger(c).Error().
					Err(err).
					Str("function", "Single").
					Str("filename", fh.Filename).
					Msg("failed to persist upload")
				return errs.NewInternal()
			}

			validation.SetUpload(c, &validation.FileMeta{
				Filename:   fh.Filename,
				MimeType:   detectMimeType(fh.Header.Get(echo.HeaderContentType)),
				Size:       fh.Size,
				StoredName: stored,
				Dir:        dir,
			})

			return next(c)
		}
	}
}

// detectMimeType normalizes the declared part content type, falling back to
// octet-stream so schema checks fail closed on undeclared types.
func detectMimeType(declared string) string {
	if declared == "" {
		return "application/octet-stream"
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return "application/octet-stream"
	}
	return mediaType
}
