package condexpr

import "fmt"

// evaluator reduces syntax trees to values against one invocation's
// environment, function table, and operator table.
type evaluator struct {
	env   *Env
	funcs *Funcs
	ops   *operatorTable
}

// eval reduces a node to a value. The switch is exhaustive over the
// closed node set; the default arm only fires if a new node kind is
// added without an evaluation rule.
func (ev *evaluator) eval(n Node) (Value, error) {
	switch node := n.(type) {
	case *ConstantNode:
		return node.Value, nil

	case *ListNode:
		items := make([]Value, len(node.Items))
		for i, item := range node.Items {
			v, err := ev.eval(item)
			if err != nil {
				return Null(), err
			}
			items[i] = v
		}
		return List(items...), nil

	case *DictNode:
		entries := make([]MapEntry, len(node.Keys))
		for i := range node.Keys {
			k, err := ev.eval(node.Keys[i])
			if err != nil {
				return Null(), err
			}
			if !hashableKey(k) {
				return Null(), &TypeMismatchError{Op: "{}", Left: k.Kind(), Right: k.Kind()}
			}
			v, err := ev.eval(node.Values[i])
			if err != nil {
				return Null(), err
			}
			entries[i] = MapEntry{Key: k, Val: v}
		}
		return NewMap(entries...), nil

	case *NameNode:
		return ev.env.Resolve(node.Name)

	case *CallNode:
		args := make([]Value, len(node.Args))
		for i, arg := range node.Args {
			v, err := ev.eval(arg)
			if err != nil {
				return Null(), err
			}
			args[i] = v
		}
		return ev.funcs.Invoke(node.Func, args)

	case *CompareNode:
		return ev.evalCompare(node)

	case *BoolOpNode:
		return ev.evalBoolOp(node)

	case *UnaryNode:
		fn, ok := ev.ops.unary[node.Op]
		if !ok {
			return Null(), fmt.Errorf("no unary rule for operator %q", node.Op)
		}
		v, err := ev.eval(node.Operand)
		if err != nil {
			return Null(), err
		}
		return fn(v)

	default:
		return Null(), fmt.Errorf("unsupported expression node %T", n)
	}
}

// evalCompare applies a chained comparison: each link compares the
// previous comparator's value with the next, and the overall result
// is the AND of every pairwise result. All operands are evaluated
// left to right; 1 < 2 < 3 is true, 1 < 3 < 2 is false.
func (ev *evaluator) evalCompare(node *CompareNode) (Value, error) {
	prev, err := ev.eval(node.Left)
	if err != nil {
		return Null(), err
	}
	result := true
	for i, op := range node.Ops {
		cur, err := ev.eval(node.Comparators[i])
		if err != nil {
			return Null(), err
		}
		fn, ok := ev.ops.compare[op]
		if !ok {
			return Null(), fmt.Errorf("no comparison rule for operator %q", op)
		}
		v, err := fn(prev, cur)
		if err != nil {
			return Null(), err
		}
		result = result && v.Truthy()
		prev = cur
	}
	return Bool(result), nil
}

// evalBoolOp folds and/or over its operands with true short-circuit
// semantics: the deciding operand's value is returned as-is, not a
// canonical boolean, and operands past it are never evaluated.
func (ev *evaluator) evalBoolOp(node *BoolOpNode) (Value, error) {
	result, err := ev.eval(node.Values[0])
	if err != nil {
		return Null(), err
	}
	for _, operand := range node.Values[1:] {
		if node.Op == OpAnd && !result.Truthy() {
			return result, nil
		}
		if node.Op == OpOr && result.Truthy() {
			return result, nil
		}
		result, err = ev.eval(operand)
		if err != nil {
			return Null(), err
		}
	}
	return result, nil
}
