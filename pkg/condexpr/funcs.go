package condexpr

import (
	"fmt"
	"regexp"

	"github.com/randalmurphal/condexpr/pkg/condexpr/registry"
)

// Func is a native function callable from expressions.
type Func func(args []Value) (Value, error)

// Funcs is the table of named functions available to call expressions.
// The built-in member is regex_match; additional functions can be
// registered without touching the evaluator.
type Funcs struct {
	reg *registry.Registry[string, Func]
}

// newFuncs builds the function table for one invocation, binding the
// regex matching variant selected by the flag set.
func newFuncs(flags FlagSet) *Funcs {
	f := &Funcs{reg: registry.New[string, Func]()}
	f.reg.Register("regex_match", regexMatch(flags))
	return f
}

// Register adds a named function, replacing any existing entry.
func (f *Funcs) Register(name string, fn Func) {
	f.reg.Register(name, fn)
}

// Names returns the registered function names.
func (f *Funcs) Names() []string {
	return f.reg.Keys()
}

// Invoke calls the named function with the given arguments.
// An unregistered name is an UnknownFunctionError.
func (f *Funcs) Invoke(name string, args []Value) (Value, error) {
	fn, ok := f.reg.Get(name)
	if !ok {
		return Null(), &UnknownFunctionError{Name: name}
	}
	return fn(args)
}

// regexMatch builds the regex_match(pattern, subject) function.
// The flag set assembles the pattern's inline flags (dot-all,
// multiline, case-insensitive) and selects full-string matching
// versus searching anywhere. The result is a map with the matched
// text and captured groups, or null when there is no match, so it is
// truthy exactly when the pattern matched.
func regexMatch(flags FlagSet) Func {
	prefix := ""
	if flags.DotAll {
		prefix += "(?s)"
	}
	if flags.Multiline {
		prefix += "(?m)"
	}
	if flags.CaseInsensitive {
		prefix += "(?i)"
	}
	return func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Null(), fmt.Errorf("regex_match: expected 2 arguments, got %d", len(args))
		}
		pattern, subject := args[0], args[1]
		if pattern.Kind() != KindString || subject.Kind() != KindString {
			return Null(), &TypeMismatchError{Op: "regex_match", Left: pattern.Kind(), Right: subject.Kind()}
		}
		src := prefix + pattern.AsString()
		if flags.FullMatch {
			src = prefix + `\A(?:` + pattern.AsString() + `)\z`
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return Null(), fmt.Errorf("regex_match: invalid pattern %q: %w", pattern.AsString(), err)
		}
		m := re.FindStringSubmatch(subject.AsString())
		if m == nil {
			return Null(), nil
		}
		groups := make([]Value, len(m)-1)
		for i, g := range m[1:] {
			groups[i] = Str(g)
		}
		return NewMap(
			MapEntry{Key: Str("match"), Val: Str(m[0])},
			MapEntry{Key: Str("groups"), Val: List(groups...)},
		), nil
	}
}
