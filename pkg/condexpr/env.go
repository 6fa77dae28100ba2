package condexpr

import "strings"

// SubjectName is the identifier the subject under test is bound to.
const SubjectName = "VALUE"

// Env is the flat variable environment one invocation resolves names
// against: user-supplied variables overlaid with the fixed bindings
// true, false, null, and VALUE. Immutable after construction.
type Env struct {
	vars map[string]Value
}

// newEnv builds the environment for one invocation. variables is a
// newline-delimited block of "key = value" assignments; each right
// side is parsed as a literal and falls back to the trimmed raw string
// when it is not one, so unquoted bare words remain usable as string
// values. Later assignments to the same key win. The fixed bindings
// are applied last and cannot be shadowed.
func newEnv(subject Value, variables string) (*Env, error) {
	vars := make(map[string]Value)
	for _, line := range strings.Split(variables, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, raw, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, &ParseError{Expr: line, Msg: "variable line must have the form \"key = value\""}
		}
		val, err := ParseLiteral(raw)
		if err != nil {
			val = Str(strings.TrimSpace(raw))
		}
		vars[key] = val
	}

	vars["true"] = Bool(true)
	vars["false"] = Bool(false)
	vars["null"] = Null()
	vars[SubjectName] = subject

	return &Env{vars: vars}, nil
}

// Resolve returns the value bound to name, or an UnboundNameError.
func (e *Env) Resolve(name string) (Value, error) {
	v, ok := e.vars[name]
	if !ok {
		return Null(), &UnboundNameError{Name: name}
	}
	return v, nil
}

// Has reports whether name is bound.
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}
