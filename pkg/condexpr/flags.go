package condexpr

import "fmt"

// Recognized flag tokens.
const (
	// FlagRegexDotAll makes "." in regex patterns match newlines.
	FlagRegexDotAll = "regex_dot_all"

	// FlagRegexMultiline makes "^" and "$" match at line boundaries.
	FlagRegexMultiline = "regex_multiline"

	// FlagCaseInsensitive folds case in regex matching and switches
	// equality to lower-cased canonical-form comparison.
	FlagCaseInsensitive = "case_insensitive"

	// FlagRegexFullMatch requires patterns to match the whole subject
	// instead of searching anywhere within it.
	FlagRegexFullMatch = "regex_full_match"
)

// FlagSet is the immutable per-invocation configuration derived from
// flag tokens. It selects the regex matching variant bound in the
// function table and whether equality is case-folded.
type FlagSet struct {
	DotAll          bool
	Multiline       bool
	CaseInsensitive bool
	FullMatch       bool
}

// ParseFlags builds a FlagSet from the given tokens.
// Unrecognized tokens are rejected rather than silently ignored.
func ParseFlags(tokens []string) (FlagSet, error) {
	var fs FlagSet
	for _, tok := range tokens {
		switch tok {
		case FlagRegexDotAll:
			fs.DotAll = true
		case FlagRegexMultiline:
			fs.Multiline = true
		case FlagCaseInsensitive:
			fs.CaseInsensitive = true
		case FlagRegexFullMatch:
			fs.FullMatch = true
		default:
			return FlagSet{}, fmt.Errorf("%w: %q", ErrUnknownFlag, tok)
		}
	}
	return fs, nil
}
