package condexpr

import (
	"errors"
	"fmt"
)

// Sentinel errors for condition-list shape validation.
var (
	// ErrConditionsNotList indicates the conditions expression did not
	// evaluate to a list.
	ErrConditionsNotList = errors.New("conditions must evaluate to a list")

	// ErrEmptyConditionList indicates the condition list has no entries.
	ErrEmptyConditionList = errors.New("condition list is empty")

	// ErrMissingDefault indicates the last entry has no "else" key.
	ErrMissingDefault = errors.New(`last entry must carry an "else" key`)

	// ErrMissingCondition indicates an entry has no "condition" string.
	ErrMissingCondition = errors.New(`entry is missing a "condition" string`)

	// ErrMissingReturn indicates an entry has no "return" key.
	ErrMissingReturn = errors.New(`entry is missing a "return" key`)
)

// Sentinel errors for flag handling.
var (
	// ErrUnknownFlag indicates an unrecognized flag token.
	ErrUnknownFlag = errors.New("unknown flag")
)

// ParseError indicates the expression text is not syntactically valid
// in the supported subset, or uses a construct outside of it.
type ParseError struct {
	// Expr is the full expression text being parsed.
	Expr string
	// Pos is the byte offset where parsing failed.
	Pos int
	// Msg describes what went wrong.
	Msg string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s at offset %d", e.Expr, e.Msg, e.Pos)
}

// UnboundNameError indicates an identifier is not present in the
// variable environment.
type UnboundNameError struct {
	// Name is the unresolved identifier.
	Name string
}

// Error implements the error interface.
func (e *UnboundNameError) Error() string {
	return fmt.Sprintf("unbound name %q", e.Name)
}

// UnknownFunctionError indicates a call target has no registered
// function.
type UnknownFunctionError struct {
	// Name is the call target.
	Name string
}

// Error implements the error interface.
func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", e.Name)
}

// TypeMismatchError indicates an operator was applied to operand
// kinds it does not support.
type TypeMismatchError struct {
	// Op is the operator symbol (e.g. "<", "in", "-").
	Op string
	// Left is the left (or only) operand kind.
	Left Kind
	// Right is the right operand kind, if the operator is binary.
	Right Kind
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operator %q not supported between %s and %s", e.Op, e.Left, e.Right)
}

// MalformedConditionListError indicates the evaluated condition list
// does not have the required shape.
type MalformedConditionListError struct {
	// Index is the offending entry index, or -1 for list-level problems.
	Index int
	// Err is the shape violation, one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *MalformedConditionListError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed condition list: %v", e.Err)
	}
	return fmt.Sprintf("malformed condition list: entry %d: %v", e.Index, e.Err)
}

// Unwrap returns the shape violation for errors.Is support.
func (e *MalformedConditionListError) Unwrap() error {
	return e.Err
}

// EvalError wraps a failure that occurred while reducing a parsed
// expression to a value. It carries the offending expression text so
// callers can diagnose without re-parsing.
type EvalError struct {
	// Expr is the expression text that was being evaluated.
	Expr string
	// Err is the underlying cause: an unbound name, unknown function,
	// or type mismatch.
	Err error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate %q: %v", e.Expr, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EvalError) Unwrap() error {
	return e.Err
}
