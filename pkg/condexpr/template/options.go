package template

// MissingAction specifies how to handle unresolved #{...} paths.
type MissingAction int

const (
	// MissingNull replaces the segment with the literal null.
	// This is the default behavior, matching a document lookup that
	// returns nothing.
	MissingNull MissingAction = iota

	// MissingKeep keeps the #{...} segment as-is, which normally
	// surfaces later as a parse error.
	MissingKeep

	// MissingError returns an error when a path cannot be resolved.
	MissingError
)

// Option configures a Splicer.
type Option func(*Splicer)

// WithMissingAction sets how unresolved paths are handled.
//
// Default: MissingNull
//
// Example:
//
//	s := NewSplicer(WithMissingAction(MissingError))
//	_, err := s.Splice("#{no.such.path}", lookup)
//	// err: "unresolved path: no.such.path"
func WithMissingAction(action MissingAction) Option {
	return func(s *Splicer) {
		s.missingAction = action
	}
}
