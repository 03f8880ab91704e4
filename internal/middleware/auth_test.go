package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mvillard/groupomania/internal/errs"
	"github.com/mvillard/groupomania/internal/server"
	"github.com/mvillard/groupomania/internal/token"
)

const testUserID = "64b5f0a2e13f7a0012345678"

func newAuthFixture(t *testing.T) (*AuthMiddleware, *token.Service) {
	t.Helper()

	tokens, err := token.New("test-secret", "1h")
	require.NoError(t, err)

	return NewAuthMiddleware(&server.Server{Token: tokens}), tokens
}

func newAuthContext(t *testing.T, target string, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

// passthrough records whether the wrapped handler ran.
func passthrough(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	auth, _ := newAuthFixture(t)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "bearer abc"} {
		c, _ := newAuthContext(t, "/api/post", header)

		var called bool
		err := auth.RequireAuth(AuthOptions{})(passthrough(&called))(c)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr, "header %q", header)
		require.Equal(t, http.StatusUnauthorized, httpErr.Status)
		require.Equal(t, "Authorization header is missing or improperly formatted.", httpErr.Message)
		require.False(t, called)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	auth, _ := newAuthFixture(t)

	c, _ := newAuthContext(t, "/api/post", "Bearer not-a-real-token")

	var called bool
	err := auth.RequireAuth(AuthOptions{})(passthrough(&called))(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusUnauthorized, httpErr.Status)
	require.Equal(t, "Invalid token. Access denied.", httpErr.Message)
	require.False(t, called)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	auth, _ := newAuthFixture(t)

	other, err := token.New("another-secret", "1h")
	require.NoError(t, err)
	raw, err := other.Issue(token.Claims{UserID: testUserID})
	require.NoError(t, err)

	c, _ := newAuthContext(t, "/api/post", "Bearer "+raw)

	var called bool
	handlerErr := auth.RequireAuth(AuthOptions{})(passthrough(&called))(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, handlerErr, &httpErr)
	require.Equal(t, http.StatusUnauthorized, httpErr.Status)
	require.False(t, called)
}

func TestRequireAuthMalformedIdentity(t *testing.T) {
	auth, tokens := newAuthFixture(t)

	raw, err := tokens.Issue(token.Claims{UserID: "not-an-object-id"})
	require.NoError(t, err)

	c, _ := newAuthContext(t, "/api/post", "Bearer "+raw)

	var called bool
	handlerErr := auth.RequireAuth(AuthOptions{})(passthrough(&called))(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, handlerErr, &httpErr)
	require.Equal(t, http.StatusForbidden, httpErr.Status)
	require.Equal(t, "Invalid token payload. Access denied.", httpErr.Message)
	require.False(t, called)
}

func TestRequireAuthSuccess(t *testing.T) {
	auth, tokens := newAuthFixture(t)

	raw, err := tokens.Issue(token.Claims{UserID: testUserID, IsAdmin: true})
	require.NoError(t, err)

	c, rec := newAuthContext(t, "/api/post", "Bearer "+raw)

	var called bool
	require.NoError(t, auth.RequireAuth(AuthOptions{})(passthrough(&called))(c))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, testUserID, GetUserID(c))
	require.True(t, IsAdmin(c))
}

func TestRequireAuthURLTokenOnly(t *testing.T) {
	auth, tokens := newAuthFixture(t)
	opts := AuthOptions{URLTokenOnly: true}

	t.Run("missing token", func(t *testing.T) {
		// A valid header must not rescue a media URL without a token param.
		raw, err := tokens.Issue(token.Claims{UserID: testUserID})
		require.NoError(t, err)

		c, _ := newAuthContext(t, "/api/file/post/cat.png", "Bearer "+raw)

		var called bool
		handlerErr := auth.RequireAuth(opts)(passthrough(&called))(c)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, handlerErr, &httpErr)
		require.Equal(t, http.StatusUnauthorized, httpErr.Status)
		require.Equal(t, "Access token missing in URL.", httpErr.Message)
		require.False(t, called)
	})

	t.Run("valid token", func(t *testing.T) {
		raw, err := tokens.Issue(token.Claims{UserID: testUserID})
		require.NoError(t, err)

		c, _ := newAuthContext(t, "/api/file/post/cat.png?token="+raw, "")

		var called bool
		require.NoError(t, auth.RequireAuth(opts)(passthrough(&called))(c))
		require.True(t, called)
		require.Equal(t, testUserID, GetUserID(c))
	})
}

func TestRequireAuthAllowURLTokenFallsBackToHeader(t *testing.T) {
	auth, tokens := newAuthFixture(t)

	raw, err := tokens.Issue(token.Claims{UserID: testUserID})
	require.NoError(t, err)

	c, _ := newAuthContext(t, "/api/post", "Bearer "+raw)

	var called bool
	require.NoError(t, auth.RequireAuth(AuthOptions{AllowURLToken: true})(passthrough(&called))(c))
	require.True(t, called)
}

func TestIsAdminDefaultsToFalse(t *testing.T) {
	c, _ := newAuthContext(t, "/api/post", "")
	require.False(t, IsAdmin(c))
}
