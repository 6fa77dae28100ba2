package condexpr

import (
	"errors"
	"strings"
)

// binaryFunc applies a comparison operator to two values.
type binaryFunc func(left, right Value) (Value, error)

// unaryFunc applies a unary operator to one value.
type unaryFunc func(v Value) (Value, error)

// operatorTable maps comparison and unary operators to their
// implementations. And/Or are absent on purpose: they require lazy
// operand evaluation for short-circuiting and live in the evaluator.
type operatorTable struct {
	compare map[Operator]binaryFunc
	unary   map[Operator]unaryFunc
}

// newOperatorTable builds the operator table for one invocation.
// With case_insensitive set, equality and inequality compare the
// lower-cased canonical printed forms of both operands instead of
// structural equality.
func newOperatorTable(flags FlagSet) *operatorTable {
	eq := func(left, right Value) (Value, error) {
		return Bool(left.Equal(right)), nil
	}
	if flags.CaseInsensitive {
		eq = func(left, right Value) (Value, error) {
			return Bool(strings.ToLower(left.Repr()) == strings.ToLower(right.Repr())), nil
		}
	}
	notEq := func(left, right Value) (Value, error) {
		v, err := eq(left, right)
		if err != nil {
			return Null(), err
		}
		return Bool(!v.AsBool()), nil
	}

	return &operatorTable{
		compare: map[Operator]binaryFunc{
			OpEq:    eq,
			OpNotEq: notEq,
			OpLt:    ordering(OpLt, func(c int) bool { return c < 0 }),
			OpLte:   ordering(OpLte, func(c int) bool { return c <= 0 }),
			OpGt:    ordering(OpGt, func(c int) bool { return c > 0 }),
			OpGte:   ordering(OpGte, func(c int) bool { return c >= 0 }),
			OpIn: func(left, right Value) (Value, error) {
				ok, err := contains(right, left)
				if err != nil {
					return Null(), err
				}
				return Bool(ok), nil
			},
			OpNotIn: func(left, right Value) (Value, error) {
				ok, err := contains(right, left)
				if err != nil {
					var mismatch *TypeMismatchError
					if errors.As(err, &mismatch) {
						return Null(), &TypeMismatchError{Op: OpNotIn.String(), Left: mismatch.Left, Right: mismatch.Right}
					}
					return Null(), err
				}
				return Bool(!ok), nil
			},
		},
		unary: map[Operator]unaryFunc{
			OpNot: func(v Value) (Value, error) {
				return Bool(!v.Truthy()), nil
			},
			OpNeg: func(v Value) (Value, error) {
				switch v.Kind() {
				case KindInt:
					return Int(-v.AsInt()), nil
				case KindFloat:
					return Float(-v.AsFloat()), nil
				default:
					return Null(), &TypeMismatchError{Op: "-", Left: v.Kind(), Right: v.Kind()}
				}
			},
		},
	}
}

// ordering builds an ordering operator from a comparison predicate.
// The operator symbol is reported in type-mismatch errors.
func ordering(op Operator, pred func(int) bool) binaryFunc {
	return func(left, right Value) (Value, error) {
		c, err := compareValues(left, right)
		if err != nil {
			return Null(), &TypeMismatchError{Op: op.String(), Left: left.Kind(), Right: right.Kind()}
		}
		return Bool(pred(c)), nil
	}
}
