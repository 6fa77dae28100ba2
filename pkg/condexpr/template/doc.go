// Package template implements the one-shot #{...} splice pass that
// runs over conditions source text before it is parsed.
//
// Every #{path} segment is replaced by the canonical printed form of
// looking path up in the subject document, so the substituted text
// parses back as a literal. Substitution is purely textual and happens
// exactly once per invocation; the expression grammar never sees the
// #{...} syntax.
//
// The lookup itself is supplied by the caller (normally a closure over
// the query package), keeping this package free of any document
// model.
package template
