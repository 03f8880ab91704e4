package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvillard/groupomania/internal/errs"
	"github.com/mvillard/groupomania/internal/server"
)

// AuthMiddleware holds the app Server so middleware can access shared deps
// like Token and Logger.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// AuthOptions controls where RequireAuth looks for the access token.
//
// The default (zero value) accepts only the Authorization header. AllowURLToken
// additionally accepts a token query parameter, which exists for media URLs
// embedded in <img> tags where headers cannot be attached. URLTokenOnly
// restricts lookup to the query parameter.
type AuthOptions struct {
	AllowURLToken bool
	URLTokenOnly  bool
}

// RequireAuth returns an Echo middleware that enforces authentication.
//
// It extracts the raw token per opts, verifies it, checks the identity claim
// shape, and stores user_id in Echo context for handlers and the request
// logger. Failures are returned as typed errors for the global error handler
// to render.
func (auth *AuthMiddleware) RequireAuth(opts AuthOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := auth.extractToken(c, opts)
			if err != nil {
				return err
			}

			claims, err := auth.server.Token.Verify(raw)
			if err != nil {
				GetLogger(c).Warn().
					Err(err).
					Str("function", "RequireAuth").
					Msg("token verification failed")
				return err
			}

			if _, err := primitive.ObjectIDFromHex(claims.UserID); err != nil {
				return errs.NewForbidden("Invalid token payload. Access denied.")
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set("is_admin", claims.IsAdmin)

			return next(c)
		}
	}
}

// extractToken pulls the raw token out of the request per opts.
func (auth *AuthMiddleware) extractToken(c echo.Context, opts AuthOptions) (string, error) {
	if opts.URLTokenOnly || opts.AllowURLToken {
		if token := c.QueryParam("token"); token != "" {
			return token, nil
		}
		if opts.URLTokenOnly {
			return "", errs.NewUnauthorized("Access token missing in URL.")
		}
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) || header == prefix {
		return "", errs.NewUnauthorized("Authorization header is missing or improperly formatted.")
	}

	return strings.TrimPrefix(header, prefix), nil
}

// IsAdmin reports whether the authenticated user carries the admin claim.
func IsAdmin(c echo.Context) bool {
	isAdmin, ok := c.Get("is_admin").(bool)
	return ok && isAdmin
}
