package template

import (
	"fmt"
	"regexp"
	"strings"
)

// splicePattern matches #{path} segments non-greedily, so several
// segments on one line each resolve independently.
var splicePattern = regexp.MustCompile(`#\{([\s\S]+?)\}`)

// LookupFunc resolves a path from a #{path} segment to the printed
// form that replaces it. ok is false when the path cannot be resolved.
type LookupFunc func(path string) (repr string, ok bool)

// Splicer performs #{...} substitution over expression source text.
//
// Create with NewSplicer() and configure with Option functions.
// Splicer is safe for concurrent use after construction.
type Splicer struct {
	missingAction MissingAction
}

// NewSplicer creates a new Splicer with the given options.
//
// Default configuration:
//   - MissingAction: MissingNull (unresolved paths become null)
func NewSplicer(opts ...Option) *Splicer {
	s := &Splicer{
		missingAction: MissingNull,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Splice replaces every #{path} segment in source with the result of
// lookup(path).
//
// Errors are only returned when MissingAction is MissingError and a
// path cannot be resolved.
//
// Example:
//
//	s := NewSplicer()
//	result, err := s.Splice("#{alert.severity} > 2", lookup)
//	// result: "3 > 2"
func (s *Splicer) Splice(source string, lookup LookupFunc) (string, error) {
	if source == "" {
		return "", nil
	}

	var missingPaths []string
	result := splicePattern.ReplaceAllStringFunc(source, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if repr, ok := lookup(path); ok {
			return repr
		}
		switch s.missingAction {
		case MissingKeep:
			return match
		case MissingError:
			missingPaths = append(missingPaths, path)
			return match
		default: // MissingNull
			return "null"
		}
	})

	if len(missingPaths) > 0 {
		return result, &UnresolvedPathError{Paths: missingPaths}
	}
	return result, nil
}

// UnresolvedPathError is returned when MissingError is set and one or
// more #{...} paths cannot be resolved.
type UnresolvedPathError struct {
	// Paths is the list of unresolved paths.
	Paths []string
}

// Error implements the error interface.
func (e *UnresolvedPathError) Error() string {
	if len(e.Paths) == 1 {
		return fmt.Sprintf("unresolved path: %s", e.Paths[0])
	}
	return fmt.Sprintf("unresolved paths: %s", strings.Join(e.Paths, ", "))
}

// defaultSplicer is the package-level splicer with default settings.
var defaultSplicer = NewSplicer()

// Splice substitutes #{...} segments using the default splicer.
//
// Uses MissingNull behavior (unresolved paths become null).
func Splice(source string, lookup LookupFunc) string {
	// Default splicer never returns errors (MissingNull).
	result, _ := defaultSplicer.Splice(source, lookup)
	return result
}
