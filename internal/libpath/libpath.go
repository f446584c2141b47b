// Package libpath turns a library name and a list of search directories
// into concrete load attempts.
package libpath

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Aman-CERP/nativebridge/internal/dynlib"
)

// ErrEmptyName is returned when asked to resolve an empty library name.
var ErrEmptyName = errors.New("library name is empty")

// Result is a successfully opened library and the path it came from.
type Result struct {
	Path   string
	Handle dynlib.Handle
}

// Resolver opens libraries by trying candidate paths in order.
type Resolver struct {
	opener dynlib.Opener
	logger *slog.Logger
}

// New creates a Resolver. A nil logger uses slog.Default().
func New(opener dynlib.Opener, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{opener: opener, logger: logger}
}

// HasSeparator reports whether name is a path rather than a bare file name.
func HasSeparator(name string) bool {
	return strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator)
}

// Candidates returns the paths Resolve will try, in order.
//
// A name containing a path separator is tried as given and nothing else.
// Otherwise every non-empty directory contributes dir+"/"+name, followed by
// the bare name so the platform's default search (LD_LIBRARY_PATH and
// friends) gets the last word.
func Candidates(searchDirs []string, name string) []string {
	if HasSeparator(name) {
		return []string{name}
	}

	out := make([]string, 0, len(searchDirs)+1)
	for _, dir := range searchDirs {
		if dir == "" {
			continue
		}
		out = append(out, dir+"/"+name)
	}
	return append(out, name)
}

// Resolve opens the first candidate that loads. Failures of earlier
// candidates are logged and skipped; the returned error wraps the last one.
func (r *Resolver) Resolve(searchDirs []string, name string) (Result, error) {
	if name == "" {
		return Result{}, ErrEmptyName
	}

	var lastErr error
	for _, path := range Candidates(searchDirs, name) {
		h, err := r.opener.Open(path)
		if err == nil {
			r.logger.Debug("library opened",
				slog.String("name", name),
				slog.String("path", path))
			return Result{Path: path, Handle: h}, nil
		}
		r.logger.Debug("library candidate failed",
			slog.String("name", name),
			slog.String("path", path),
			slog.String("error", err.Error()))
		lastErr = err
	}

	return Result{}, fmt.Errorf("load %s: %w", name, lastErr)
}
