// Package token issues and verifies the bearer tokens used for
// authentication.
//
// Tokens are stateless HS256 JWTs: there is no server-side revocation list
// and no refresh rotation. Logout is a client-side discard. This is an
// accepted design limitation, not a bug.
package token

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mvillard/groupomania/internal/errs"
)

// Claims is the verified identity carried by a token.
type Claims struct {
	UserID  string
	IsAdmin bool
}

// Service signs and verifies tokens. Construct it once at startup with the
// process configuration and share it across requests.
type Service struct {
	secret []byte
	expiry time.Duration
}

var durationPattern = regexp.MustCompile(`^(\d+)(ms|s|m|h|d|w|y)$`)

// ParseDuration parses an expiry string of the form integer + unit suffix,
// e.g. "30s", "12h", "7d", "1y".
func ParseDuration(s string) (time.Duration, error) {
	match := durationPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("invalid duration %q: expected integer followed by ms, s, m, h, d, w or y", s)
	}

	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	var unit time.Duration
	switch match[2] {
	case "ms":
		unit = time.Millisecond
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	case "y":
		unit = 365 * 24 * time.Hour
	}
	return time.Duration(n) * unit, nil
}

// New builds a token Service. An invalid expiry string is a configuration
// error reported before any token is issued. An empty secret is tolerated
// here so the process can start; Issue and Verify fail with an Internal
// error on first use instead.
func New(secret, expiry string) (*Service, error) {
	d, err := ParseDuration(expiry)
	if err != nil {
		return nil, err
	}
	return &Service{secret: []byte(secret), expiry: d}, nil
}

// Expiry reports the configured token lifetime.
func (s *Service) Expiry() time.Duration {
	return s.expiry
}

// Issue signs a token embedding the given claims together with issued-at
// and expiry timestamps.
func (s *Service) Issue(claims Claims) (string, error) {
	if len(s.secret) == 0 {
		return "", errs.NewInternal()
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID":  claims.UserID,
		"isAdmin": claims.IsAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(s.expiry).Unix(),
	})

	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", errs.NewInternal()
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and extracts its
// claims. Failures map onto the error taxonomy:
//
//   - malformed token or bad signature -> Unauthorized
//   - expired -> Unauthorized, with a re-authenticate message
//   - valid but missing the user identity -> Forbidden
func (s *Service) Verify(raw string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, errs.NewInternal()
	}

	payload := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, payload, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, errs.NewUnauthorized("Token has expired. Please re-authenticate.")
		}
		return Claims{}, errs.NewUnauthorized("Invalid token. Access denied.")
	}
	if !tok.Valid {
		return Claims{}, errs.NewUnauthorized("Invalid token. Access denied.")
	}

	userID, _ := payload["userID"].(string)
	if userID == "" {
		return Claims{}, errs.NewForbidden("Invalid token payload. Access denied.")
	}

	isAdmin, _ := payload["isAdmin"].(bool)
	return Claims{UserID: userID, IsAdmin: isAdmin}, nil
}
