package condexpr

// Operator identifies a comparison, boolean, or unary operator.
type Operator int

const (
	OpEq Operator = iota
	OpNotEq
	OpLt
	OpLte
	OpGt
	OpGte
	OpIn
	OpNotIn
	OpAnd
	OpOr
	OpNot
	OpNeg
)

// String returns the operator's source form.
func (op Operator) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpIn:
		return "in"
	case OpNotIn:
		return "not in"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}

// Node is a parsed expression tree node. The set of implementations
// is closed: ConstantNode, ListNode, DictNode, NameNode, CallNode,
// CompareNode, BoolOpNode, and UnaryNode. Trees are built fresh per
// parse and never mutated afterwards.
type Node interface {
	node()
}

// ConstantNode is a literal value: a number or a string.
type ConstantNode struct {
	Value Value
}

// ListNode is a list literal with ordered items.
type ListNode struct {
	Items []Node
}

// DictNode is a map literal. Keys and Values are parallel slices in
// source order.
type DictNode struct {
	Keys   []Node
	Values []Node
}

// NameNode is a bare identifier resolved against the environment.
type NameNode struct {
	Name string
}

// CallNode is a single-level function call name(arg, ...).
type CallNode struct {
	Func string
	Args []Node
}

// CompareNode is a chained comparison: Left followed by one or more
// (operator, comparator) links, e.g. 1 < x < 10.
type CompareNode struct {
	Left        Node
	Ops         []Operator
	Comparators []Node
}

// BoolOpNode is an and/or combination over two or more operands.
// Consecutive uses of the same operator are flattened into one node.
type BoolOpNode struct {
	Op     Operator // OpAnd or OpOr
	Values []Node
}

// UnaryNode is a unary not or numeric negation.
type UnaryNode struct {
	Op      Operator // OpNot or OpNeg
	Operand Node
}

func (*ConstantNode) node() {}
func (*ListNode) node()     {}
func (*DictNode) node()     {}
func (*NameNode) node()     {}
func (*CallNode) node()     {}
func (*CompareNode) node()  {}
func (*BoolOpNode) node()   {}
func (*UnaryNode) node()    {}
