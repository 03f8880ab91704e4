package handler

import (
	"github.com/mvillard/groupomania/internal/validation"
)

// maxUploadBytes is the attachment size ceiling shared by avatar and post
// uploads.
const maxUploadBytes = 5 * 1024 * 1024

// validateImage constrains an uploaded file to the accepted image types and
// size. Returns nil when the file is acceptable.
func validateImage(meta *validation.FileMeta) error {
	var issues validation.CustomValidationErrors

	switch meta.MimeType {
	case "image/jpeg", "image/png":
	default:
		issues = append(issues, validation.CustomValidationError{
			Field:   "file",
			Message: "must be a JPEG or PNG image",
		})
	}

	if meta.Size > maxUploadBytes {
		issues = append(issues, validation.CustomValidationError{
			Field:   "file",
			Message: "must not exceed 5MB",
		})
	}

	if len(issues) > 0 {
		return issues
	}
	return nil
}
