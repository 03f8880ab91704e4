// Package validation contains the logic for validating request data.
//
// It uses the validator library to enforce rules (like required fields or
// email formats) defined in struct tags and extracts validation errors
// into a format the client can understand.
//
// Request parts are validated sequentially in a fixed order (path params,
// then body, then authenticated claims), stopping at the first failing
// part. Parts with no schema pass through unchecked.
package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mvillard/groupomania/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern: define a request struct with validator tags
// (validate:"required,email"), then implement Validate() error that runs
// validation.Struct plus any cross-field refinements.
type Validatable interface {
	Validate() error
}

// StrictJSON marks a payload as strict: unknown keys in a JSON body are
// rejected with a BadRequest instead of being ignored. Embed it in the
// request struct.
type StrictJSON struct{}

func (StrictJSON) strictBinding() {}

type strictBinder interface{ strictBinding() }

// FileMeta describes an uploaded file after it has been written to
// storage. It is merged into the request payload before validation so the
// body schema can constrain the upload.
type FileMeta struct {
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
	StoredName string `json:"-"`
	Dir        string `json:"-"`
}

// FileCarrier is implemented by payloads that accept an uploaded file.
type FileCarrier interface {
	SetFile(meta *FileMeta)
}

// uploadKey is where the upload middleware stores the written file's
// descriptor for the current request.
const uploadKey = "upload_meta"

// SetUpload records the stored upload for this request so BindAndValidate
// can merge it into the payload.
func SetUpload(c echo.Context, meta *FileMeta) {
	c.Set(uploadKey, meta)
}

// GetUpload returns the stored upload descriptor, if any.
func GetUpload(c echo.Context) *FileMeta {
	if meta, ok := c.Get(uploadKey).(*FileMeta); ok {
		return meta
	}
	return nil
}

// UploadCleanup is called when validation fails after a file was already
// written, so no orphaned upload survives a rejected request. The server
// wires this to the storage layer.
type UploadCleanup func(meta *FileMeta)

var unknownField = regexp.MustCompile(`json: unknown field "(.+)"`)

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. bind path params, query params, and the body (strict payloads use a
//     JSON decoder that rejects unknown fields)
//  2. merge the uploaded file descriptor, if the payload accepts one
//  3. payload.Validate()
//
// Any failure becomes a single BadRequest *errs.HTTPError enumerating the
// failing fields. When an upload was already stored, cleanup runs before
// the error propagates.
func BindAndValidate(c echo.Context, payload Validatable, cleanup UploadCleanup) error {
	fail := func(err *errs.HTTPError) error {
		if meta := GetUpload(c); meta != nil && cleanup != nil {
			cleanup(meta)
		}
		return err
	}

	if err := bind(c, payload); err != nil {
		return fail(err)
	}

	if carrier, ok := payload.(FileCarrier); ok {
		if meta := GetUpload(c); meta != nil {
			carrier.SetFile(meta)
		}
	}

	if err := payload.Validate(); err != nil {
		msg, fields := ExtractValidationError(err)
		return fail(errs.NewValidation(msg, fields))
	}
	return nil
}

func bind(c echo.Context, payload Validatable) *errs.HTTPError {
	binder := &echo.DefaultBinder{}

	// Params first: a malformed id fails before the body is even read.
	if err := binder.BindPathParams(c, payload); err != nil {
		return errs.NewBadRequest("Invalid path parameters.")
	}
	if err := binder.BindQueryParams(c, payload); err != nil {
		return errs.NewBadRequest("Invalid query parameters.")
	}

	req := c.Request()
	if req.ContentLength == 0 {
		return nil
	}

	contentType := req.Header.Get(echo.HeaderContentType)
	_, strict := payload.(strictBinder)
	if strict && strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		dec := json.NewDecoder(req.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(payload); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if match := unknownField.FindStringSubmatch(err.Error()); match != nil {
				return errs.NewBadRequest("Unexpected field: " + match[1] + ".")
			}
			return errs.NewBadRequest("Malformed JSON body.")
		}
		return nil
	}

	if err := binder.BindBody(c, payload); err != nil {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) && echoErr.Code == http.StatusUnsupportedMediaType {
			return errs.NewBadRequest("Unsupported content type.")
		}
		return errs.NewBadRequest("Malformed request body.")
	}
	return nil
}
