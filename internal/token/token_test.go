package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/mvillard/groupomania/internal/errs"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"500ms": 500 * time.Millisecond,
		"30s":   30 * time.Second,
		"15m":   15 * time.Minute,
		"12h":   12 * time.Hour,
		"7d":    7 * 24 * time.Hour,
		"2w":    2 * 7 * 24 * time.Hour,
		"1y":    365 * 24 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "24", "h", "24 h", "-1h", "1.5h", "24hh", "24x"} {
		_, err := ParseDuration(in)
		require.Error(t, err, in)
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc, err := New("test-secret", "1h")
	require.NoError(t, err)

	signed, err := svc.Issue(Claims{UserID: "64b5f0a2e13f7a0012345678", IsAdmin: true})
	require.NoError(t, err)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "64b5f0a2e13f7a0012345678", claims.UserID)
	require.True(t, claims.IsAdmin)
}

func TestVerifyExpired(t *testing.T) {
	svc, err := New("test-secret", "1ms")
	require.NoError(t, err)

	signed, err := svc.Issue(Claims{UserID: "64b5f0a2e13f7a0012345678"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = svc.Verify(signed)
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, errs.KindUnauthorized, httpErr.Kind)
	require.Equal(t, "Token has expired. Please re-authenticate.", httpErr.Message)
}

func TestVerifyTampered(t *testing.T) {
	svc, err := New("test-secret", "1h")
	require.NoError(t, err)
	other, err := New("other-secret", "1h")
	require.NoError(t, err)

	signed, err := other.Issue(Claims{UserID: "64b5f0a2e13f7a0012345678"})
	require.NoError(t, err)

	for _, raw := range []string{signed, "garbage", signed + "x"} {
		_, err := svc.Verify(raw)
		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, errs.KindUnauthorized, httpErr.Kind)
		require.Equal(t, "Invalid token. Access denied.", httpErr.Message)
	}
}

func TestVerifyMissingIdentityClaim(t *testing.T) {
	svc, err := New("test-secret", "1h")
	require.NoError(t, err)

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, errs.KindForbidden, httpErr.Kind)
	require.Equal(t, "Invalid token payload. Access denied.", httpErr.Message)
}

func TestMissingSecretFailsAtUse(t *testing.T) {
	svc, err := New("", "1h")
	require.NoError(t, err)

	_, err = svc.Issue(Claims{UserID: "64b5f0a2e13f7a0012345678"})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, errs.KindInternal, httpErr.Kind)

	_, err = svc.Verify("whatever")
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, errs.KindInternal, httpErr.Kind)
}

func TestInvalidExpiryRejectedAtConstruction(t *testing.T) {
	_, err := New("test-secret", "soon")
	require.Error(t, err)
}
