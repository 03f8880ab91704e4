package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/mvillard/groupomania/internal/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// validate is the shared validator instance. Schemas are immutable struct
// tags, so one instance serves every request concurrently.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report field names from json tags so error messages match the wire
	// format rather than Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(field.Name)
		}
		return name
	})

	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		_, err := primitive.ObjectIDFromHex(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return hasPasswordComplexity(fl.Field().String())
	})
	_ = v.RegisterValidation("humanname", func(fl validator.FieldLevel) bool {
		return humanName.MatchString(fl.Field().String())
	})

	return v
}

// humanName allows letters (including Latin-1 accented ones) in words
// separated by single spaces.
var humanName = regexp.MustCompile(`^[a-zA-ZÀ-ÿ]+( [a-zA-ZÀ-ÿ]+)*$`)

// hasPasswordComplexity requires at least one lowercase letter, one
// uppercase letter, one digit, and one special character.
func hasPasswordComplexity(s string) bool {
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("@$!%*?&#._-", r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// Struct runs tag-based validation on a payload. The returned error, if
// any, is a validator.ValidationErrors suitable for
// ExtractValidationError.
func Struct(v any) error {
	return validate.Struct(v)
}

// CustomValidationError represents a single validation issue for a
// specific field that cannot be expressed through validator tags, such as
// cross-field refinements.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that
// satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// ExtractValidationError converts a validation error into the single
// client-facing message plus field errors.
//
// With exactly one failing field the message is that field's sentence;
// with several, the messages are joined as "field: message; field2:
// message2".
func ExtractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	switch verr := err.(type) {
	case validator.ValidationErrors:
		for _, fe := range verr {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: fe.Field(),
				Error: messageFor(fe),
			})
		}
	case CustomValidationErrors:
		for _, ce := range verr {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
	default:
		return err.Error(), nil
	}

	if len(fieldErrors) == 1 {
		return fieldErrors[0].Field + " " + fieldErrors[0].Error, fieldErrors
	}

	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		parts = append(parts, fe.Field+": "+fe.Error)
	}
	return strings.Join(parts, "; "), fieldErrors
}

// messageFor renders a human-readable sentence fragment for a failed tag.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "objectid":
		return "has an invalid id format"
	case "password":
		return "must include uppercase, lowercase, number, and special character"
	case "humanname":
		return "can only contain alphabetic characters and spaces"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
