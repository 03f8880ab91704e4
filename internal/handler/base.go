package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvillard/groupomania/internal/middleware"
	"github.com/mvillard/groupomania/internal/response"
	"github.com/mvillard/groupomania/internal/server"
	"github.com/mvillard/groupomania/internal/validation"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it so they can reach config,
// logger, and storage via *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returned by value: the struct only
// holds a pointer, so copies are cheap and share the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// Payload constrains Req to pointer-to-struct types that validate
// themselves. A fresh instance is allocated per request, so bound data is
// never shared between concurrent requests.
type Payload[T any] interface {
	*T
	validation.Validatable
}

// ResponseHandler defines how a successful handler result is written to the
// HTTP response.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error

	// GetOperation returns an operation name used for structured logging.
	GetOperation() string
}

// JSONResponseHandler writes the success envelope with a status and
// message around the handler's result.
type JSONResponseHandler struct {
	status  int
	message string
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return response.Success(c, h.status, h.message, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

// MessageResponseHandler writes a success envelope that carries only a
// message, for mutations whose outcome has no body.
type MessageResponseHandler struct {
	status  int
	message string
}

func (h MessageResponseHandler) Handle(c echo.Context, result any) error {
	return response.Success(c, h.status, h.message, nil)
}

func (h MessageResponseHandler) GetOperation() string {
	return "handler_message"
}

// FileResponseHandler streams a file from disk. The handler result must be
// the absolute path of a file that exists.
type FileResponseHandler struct{}

func (h FileResponseHandler) Handle(c echo.Context, result any) error {
	path := result.(string)
	return c.File(path)
}

func (h FileResponseHandler) GetOperation() string {
	return "handler_file"
}

// handleRequest is the shared execution pipeline for all handlers.
//
// It centralizes request binding and validation (with stored-upload cleanup
// on rejection), structured logging with timing, and response writing.
// Errors from validation or the typed handler are returned untouched so the
// global error handler renders them.
func handleRequest[Req validation.Validatable](
	h Handler,
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Logger()

	cleanup := func(meta *validation.FileMeta) {
		h.server.Storage.DeleteIfExists(meta.Dir, meta.StoredName)
	}

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req, cleanup); err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", time.Since(validationStart)).
			Msg("request validation failed")
		return err
	}

	result, err := handler(c, req)
	if err != nil {
		logger.Debug().
			Err(err).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")
		return err
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("request completed")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with binding, validation, logging, and the
// JSON success envelope.
//
// Usage:
//
//	g.POST("", handler.Handle(h.Handler, h.CreatePost, http.StatusCreated, "Post created successfully."))
func Handle[Req any, PReq Payload[Req], Res any](
	h Handler,
	handler func(c echo.Context, req PReq) (Res, error),
	status int,
	message string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(h, c, req, func(c echo.Context, req PReq) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status, message: message})
	}
}

// HandleMessage wraps a typed handler whose success response carries only a
// message.
func HandleMessage[Req any, PReq Payload[Req]](
	h Handler,
	handler func(c echo.Context, req PReq) error,
	status int,
	message string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(h, c, req, func(c echo.Context, req PReq) (any, error) {
			return nil, handler(c, req)
		}, MessageResponseHandler{status: status, message: message})
	}
}

// currentUserID returns the authenticated user's id. Auth middleware has
// already verified the claim is a well-formed object id.
func currentUserID(c echo.Context) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(middleware.GetUserID(c))
	return id
}

// HandleFile wraps a typed handler that resolves a file path to stream.
func HandleFile[Req any, PReq Payload[Req]](
	h Handler,
	handler func(c echo.Context, req PReq) (string, error),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(h, c, req, func(c echo.Context, req PReq) (any, error) {
			return handler(c, req)
		}, FileResponseHandler{})
	}
}
