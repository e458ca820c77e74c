package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

// Package upload contains the binary file storage behind /uploads/. Two
// backends implement the same interface: local disk (default) and an
// S3-compatible object store.

// ErrNotFound is returned by Open when no file is stored under the name.
var ErrNotFound = errors.New("upload not found")

// URLPrefix is the public path prefix uploaded files are served under.
const URLPrefix = "/uploads/"

// Store persists uploaded files under generated unique names.
type Store interface {
	// Save writes the content of r under a fresh generated name that keeps
	// the extension of originalFilename, and returns that name.
	Save(ctx context.Context, r io.Reader, originalFilename string, size int64) (string, error)

	// Open returns the content of a stored file, or ErrNotFound.
	Open(ctx context.Context, filename string) (io.ReadCloser, error)

	// Remove deletes a stored file by name.
	Remove(ctx context.Context, filename string) error
}

// NewFilename generates a stored filename of the form
// <unix-millis>-<random><ext>, preserving the original extension. The
// timestamp/random pair makes collisions practically impossible.
func NewFilename(originalFilename string) string {
	suffix := rand.Intn(1_000_000_000)
	ext := filepath.Ext(originalFilename)
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), suffix, ext)
}

// FilenameFromURL extracts the stored filename from a public upload URL.
// It reports false when the URL does not point under the uploads prefix or
// the trailing segment is not a plain filename; callers treat that as
// "nothing to delete".
func FilenameFromURL(rawURL string) (string, bool) {
	if !strings.Contains(rawURL, URLPrefix) {
		return "", false
	}
	segs := strings.Split(rawURL, "/")
	name := segs[len(segs)-1]
	if !validName(name) {
		return "", false
	}
	return name, true
}

// validName rejects names that could resolve outside the storage root.
func validName(filename string) bool {
	if filename == "" || filename == "." || filename == ".." {
		return false
	}
	if strings.ContainsAny(filename, "/\\") {
		return false
	}
	return true
}
