// Package storage manages uploaded files on the local filesystem.
//
// All files live under a single base directory with one subdirectory per
// area (user avatars, post images). Filenames are sanitized before they
// are ever trusted as a path segment, and files are only served back
// through Resolve, which enforces an image extension allow-list and keeps
// every path inside the base directory.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Subdirectories for each upload area.
const (
	UsersDir = "users"
	PostsDir = "posts"
)

// servableName restricts which stored files may be served: word characters
// and dashes only, with an image extension. This blocks traversal segments
// like ".." outright.
var servableName = regexp.MustCompile(`^[\w-]+\.(jpg|jpeg|png|webp)$`)

var nonWord = regexp.MustCompile(`[^\w-]+`)
var underscores = regexp.MustCompile(`_+`)

// Store is the filesystem collaborator for uploads.
type Store struct {
	base   string
	logger *zerolog.Logger
}

// New creates a Store rooted at base and ensures the area subdirectories
// exist.
func New(base string, logger *zerolog.Logger) (*Store, error) {
	s := &Store{base: base, logger: logger}
	for _, dir := range []string{UsersDir, PostsDir} {
		if err := os.MkdirAll(filepath.Join(base, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload directory %q: %w", dir, err)
		}
	}
	return s, nil
}

// SanitizeFilename strips diacritics, replaces non-word characters with
// underscores, collapses repeats, and lower-cases the result. The
// extension is normalized the same way.
//
// Example: "Été à Paris!.JPG" -> "ete_a_paris.jpg"
func SanitizeFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))

	// NFD decomposition followed by removal of combining marks strips
	// the diacritics while keeping the base letters.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if clean, _, err := transform.String(t, base); err == nil {
		base = clean
	}

	base = nonWord.ReplaceAllString(base, "_")
	base = underscores.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	base = strings.ToLower(base)
	if base == "" {
		base = "file"
	}
	return base + ext
}

// NewName returns a unique stored name for an upload: the sanitized
// original prefixed with a millisecond timestamp.
func NewName(original string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), SanitizeFilename(original))
}

// SaveUpload writes a multipart upload into the given area under a fresh
// sanitized name and returns that name.
func (s *Store) SaveUpload(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := NewName(fh.Filename)
	dst, err := os.Create(filepath.Join(s.base, dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Partial writes are cleaned up so validation failures upstream
		// never leave orphans behind.
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return name, nil
}

// DeleteIfExists removes a stored file, ignoring the case where it is
// already gone. Other removal failures are logged, not returned: a
// leftover file must not fail the request that triggered the cleanup.
func (s *Store) DeleteIfExists(dir, name string) {
	path := filepath.Join(s.base, dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to delete stored file")
	}
}

// Exists reports whether a stored file is present.
func (s *Store) Exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(s.base, dir, name))
	return err == nil
}

// Resolve validates a requested filename against the allow-list and
// returns its absolute path within the base directory. It does not check
// existence.
func (s *Store) Resolve(dir, name string) (string, bool) {
	if !servableName.MatchString(name) {
		return "", false
	}
	return filepath.Join(s.base, dir, name), true
}
