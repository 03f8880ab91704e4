// Package password hashes and verifies user credentials with Argon2id.
//
// Digests are self-contained PHC strings: the salt and cost parameters are
// embedded, so verification needs no separate storage.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Cost parameters. Memory is 64 MiB with 4 iterations over 2 lanes, tuned
// so interactive logins stay in the hundreds of milliseconds while offline
// brute force stays expensive.
const (
	memory      = 64 * 1024
	iterations  = 4
	parallelism = 2
	saltLength  = 16
	keyLength   = 32
)

// Hash derives an Argon2id digest for the given plaintext with a fresh
// random salt. It fails only when the system random source is unavailable.
func Hash(plain string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plain), salt, iterations, memory, parallelism, keyLength)

	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return digest, nil
}

// Verify reports whether plain matches the stored digest. It returns false
// for malformed digests, unknown parameters, or a mismatch; it never
// returns an error, so callers fail closed.
func Verify(digest, plain string) bool {
	salt, key, m, t, p, ok := decodeDigest(digest)
	if !ok {
		return false
	}

	derived := argon2.IDKey([]byte(plain), salt, t, m, p, uint32(len(key)))
	return subtle.ConstantTimeCompare(derived, key) == 1
}

func decodeDigest(digest string) (salt, key []byte, m uint32, t uint32, p uint8, ok bool) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return nil, nil, 0, 0, 0, false
	}
	if m == 0 || t == 0 || p == 0 {
		return nil, nil, 0, 0, 0, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, nil, 0, 0, 0, false
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, false
	}
	return salt, key, m, t, p, true
}
