// Package storage persists uploaded bill evidence. Files are keyed by a
// generated collision-resistant name; the database only ever stores the
// returned key.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Extensions accepted for bill evidence uploads.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".csv":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type MediaStore interface {
	// Save persists the content under the given key and returns the
	// stored path.
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	// Open returns the content stored under the key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// AllowedFile reports whether the filename carries an accepted
// extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// UniqueName prefixes the sanitized original filename with a random hex
// id so concurrent uploads of the same file never collide.
func UniqueName(filename string) string {
	base := sanitize(filepath.Base(filename))
	return strings.ReplaceAll(uuid.New().String(), "-", "") + "_" + base
}

// sanitize strips path separators and whitespace from a client-supplied
// filename.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
