package condexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// tokKind identifies a token class produced by the lexer.
type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokString
	tokName
	tokSym
)

// token is a single lexed token. val carries the decoded literal for
// number and string tokens.
type token struct {
	kind tokKind
	text string
	pos  int
	val  Value
}

// Parse parses expression text into a syntax tree.
//
// The grammar is an expression grammar only, covering exactly the
// supported subset: number and string literals, list and map literals,
// bare names, single-level calls name(args...), chained comparisons,
// and/or combinations, unary not and minus, and parenthesized
// grouping. Anything else fails fast with a ParseError.
func Parse(expr string) (Node, error) {
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{src: expr, toks: toks}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok.pos, "unexpected %s", tok.describe())
	}
	return node, nil
}

// ParseLiteral parses text containing only literal forms: numbers,
// strings, true/false/null, list and map literals, and negated
// numbers. It is used for the right-hand sides of variable
// assignments, where names and calls must not resolve.
func ParseLiteral(text string) (Value, error) {
	node, err := Parse(text)
	if err != nil {
		return Null(), err
	}
	return literalValue(text, node)
}

// literalValue reduces a node tree that may only contain literals.
func literalValue(src string, n Node) (Value, error) {
	switch node := n.(type) {
	case *ConstantNode:
		return node.Value, nil
	case *NameNode:
		switch node.Name {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "null":
			return Null(), nil
		}
		return Null(), &ParseError{Expr: src, Msg: "name " + strconv.Quote(node.Name) + " is not a literal"}
	case *ListNode:
		items := make([]Value, len(node.Items))
		for i, item := range node.Items {
			v, err := literalValue(src, item)
			if err != nil {
				return Null(), err
			}
			items[i] = v
		}
		return List(items...), nil
	case *DictNode:
		entries := make([]MapEntry, len(node.Keys))
		for i := range node.Keys {
			k, err := literalValue(src, node.Keys[i])
			if err != nil {
				return Null(), err
			}
			if !hashableKey(k) {
				return Null(), &ParseError{Expr: src, Msg: k.Kind().String() + " is not usable as a map key"}
			}
			v, err := literalValue(src, node.Values[i])
			if err != nil {
				return Null(), err
			}
			entries[i] = MapEntry{Key: k, Val: v}
		}
		return NewMap(entries...), nil
	case *UnaryNode:
		if node.Op == OpNeg {
			v, err := literalValue(src, node.Operand)
			if err != nil {
				return Null(), err
			}
			switch v.Kind() {
			case KindInt:
				return Int(-v.AsInt()), nil
			case KindFloat:
				return Float(-v.AsFloat()), nil
			}
		}
		return Null(), &ParseError{Expr: src, Msg: "not a literal expression"}
	default:
		return Null(), &ParseError{Expr: src, Msg: "not a literal expression"}
	}
}

// hashableKey reports whether v may be used as a map key.
// Lists and maps are not usable as keys.
func hashableKey(v Value) bool {
	switch v.Kind() {
	case KindNull, KindBool, KindInt, KindFloat, KindString:
		return true
	default:
		return false
	}
}

// describe renders a token for error messages.
func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of expression"
	case tokNumber:
		return "number " + t.text
	case tokString:
		return "string"
	case tokName:
		return strconv.Quote(t.text)
	default:
		return strconv.Quote(t.text)
	}
}

// lex splits expr into tokens.
func lex(expr string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9':
			tok, next, err := lexNumber(expr, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case c == '\'' || c == '"':
			tok, next, err := lexString(expr, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case isNameStart(c):
			start := i
			for i < len(expr) && isNameChar(expr[i]) {
				i++
			}
			toks = append(toks, token{kind: tokName, text: expr[start:i], pos: start})
		case c == '=' || c == '!' || c == '<' || c == '>':
			if i+1 < len(expr) && expr[i+1] == '=' {
				toks = append(toks, token{kind: tokSym, text: expr[i : i+2], pos: i})
				i += 2
				break
			}
			if c == '<' || c == '>' {
				toks = append(toks, token{kind: tokSym, text: string(c), pos: i})
				i++
				break
			}
			return nil, &ParseError{Expr: expr, Pos: i, Msg: "unexpected " + strconv.Quote(string(c))}
		case strings.IndexByte("()[]{},:-", c) >= 0:
			toks = append(toks, token{kind: tokSym, text: string(c), pos: i})
			i++
		default:
			return nil, &ParseError{Expr: expr, Pos: i, Msg: "unexpected character " + strconv.Quote(string(c))}
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(expr)}), nil
}

// lexNumber lexes an integer or floating-point literal starting at i.
func lexNumber(expr string, i int) (token, int, error) {
	start := i
	isFloat := false
	for i < len(expr) && expr[i] >= '0' && expr[i] <= '9' {
		i++
	}
	if i < len(expr) && expr[i] == '.' {
		isFloat = true
		i++
		for i < len(expr) && expr[i] >= '0' && expr[i] <= '9' {
			i++
		}
	}
	if i < len(expr) && (expr[i] == 'e' || expr[i] == 'E') {
		j := i + 1
		if j < len(expr) && (expr[j] == '+' || expr[j] == '-') {
			j++
		}
		if j < len(expr) && expr[j] >= '0' && expr[j] <= '9' {
			isFloat = true
			i = j
			for i < len(expr) && expr[i] >= '0' && expr[i] <= '9' {
				i++
			}
		}
	}
	text := expr[start:i]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, 0, &ParseError{Expr: expr, Pos: start, Msg: "invalid number " + text}
		}
		return token{kind: tokNumber, text: text, pos: start, val: Float(f)}, i, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		// Out of int64 range; keep the value as a float.
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return token{}, 0, &ParseError{Expr: expr, Pos: start, Msg: "invalid number " + text}
		}
		return token{kind: tokNumber, text: text, pos: start, val: Float(f)}, i, nil
	}
	return token{kind: tokNumber, text: text, pos: start, val: Int(n)}, i, nil
}

// lexString lexes a single- or double-quoted string literal starting
// at i. Recognized escapes are \n, \r, \t, \\, \', and \"; any other
// backslash sequence is kept verbatim so regex patterns like '\d+'
// survive unmangled.
func lexString(expr string, i int) (token, int, error) {
	start := i
	quote := expr[i]
	i++
	var sb strings.Builder
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == quote:
			return token{kind: tokString, text: sb.String(), pos: start, val: Str(sb.String())}, i + 1, nil
		case c == '\\' && i+1 < len(expr):
			switch expr[i+1] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\', '\'', '"':
				sb.WriteByte(expr[i+1])
			default:
				sb.WriteByte('\\')
				sb.WriteByte(expr[i+1])
			}
			i += 2
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return token{}, 0, &ParseError{Expr: expr, Pos: start, Msg: "unterminated string"}
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

// parser consumes a token stream with single-token lookahead.
type parser struct {
	src  string
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	tok := p.toks[p.i]
	if tok.kind != tokEOF {
		p.i++
	}
	return tok
}

// acceptSym consumes the next token if it is the given symbol.
func (p *parser) acceptSym(sym string) bool {
	if tok := p.peek(); tok.kind == tokSym && tok.text == sym {
		p.i++
		return true
	}
	return false
}

// acceptName consumes the next token if it is the given bare name.
func (p *parser) acceptName(name string) bool {
	if tok := p.peek(); tok.kind == tokName && tok.text == name {
		p.i++
		return true
	}
	return false
}

// expectSym consumes the given symbol or fails.
func (p *parser) expectSym(sym string) error {
	if !p.acceptSym(sym) {
		tok := p.peek()
		return p.errorf(tok.pos, "expected %q, found %s", sym, tok.describe())
	}
	return nil
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &ParseError{Expr: p.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// parseOr parses "a or b or c", flattening consecutive operands into
// a single node.
func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if !p.acceptName("or") {
		return left, nil
	}
	values := []Node{left}
	for {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		values = append(values, right)
		if !p.acceptName("or") {
			return &BoolOpNode{Op: OpOr, Values: values}, nil
		}
	}
}

// parseAnd parses "a and b and c", flattening like parseOr.
func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if !p.acceptName("and") {
		return left, nil
	}
	values := []Node{left}
	for {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		values = append(values, right)
		if !p.acceptName("and") {
			return &BoolOpNode{Op: OpAnd, Values: values}, nil
		}
	}
}

// parseNot parses unary "not", which binds looser than comparisons:
// "not a == b" negates the whole comparison.
func (p *parser) parseNot() (Node, error) {
	if p.acceptName("not") {
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: OpNot, Operand: operand}, nil
	}
	return p.parseComparison()
}

// parseComparison parses a chained comparison a OP b OP c with any of
// ==, !=, <, <=, >, >=, in, and not in.
func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	var ops []Operator
	var comparators []Node
	for {
		op, ok, err := p.comparisonOp()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
	if len(ops) == 0 {
		return left, nil
	}
	return &CompareNode{Left: left, Ops: ops, Comparators: comparators}, nil
}

// comparisonOp consumes the next comparison operator, if present.
func (p *parser) comparisonOp() (Operator, bool, error) {
	tok := p.peek()
	if tok.kind == tokSym {
		switch tok.text {
		case "==":
			p.i++
			return OpEq, true, nil
		case "!=":
			p.i++
			return OpNotEq, true, nil
		case "<":
			p.i++
			return OpLt, true, nil
		case "<=":
			p.i++
			return OpLte, true, nil
		case ">":
			p.i++
			return OpGt, true, nil
		case ">=":
			p.i++
			return OpGte, true, nil
		}
		return 0, false, nil
	}
	if tok.kind == tokName {
		switch tok.text {
		case "in":
			p.i++
			return OpIn, true, nil
		case "not":
			// Only "not in" is valid in comparison position.
			p.i++
			if !p.acceptName("in") {
				next := p.peek()
				return 0, false, p.errorf(next.pos, "expected \"in\" after \"not\", found %s", next.describe())
			}
			return OpNotIn, true, nil
		}
	}
	return 0, false, nil
}

// parseUnary parses numeric negation, which binds tighter than
// comparisons.
func (p *parser) parseUnary() (Node, error) {
	if p.acceptSym("-") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: OpNeg, Operand: operand}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses literals, names, calls, containers, and
// parenthesized groups.
func (p *parser) parsePrimary() (Node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokNumber, tokString:
		p.next()
		return &ConstantNode{Value: tok.val}, nil
	case tokName:
		switch tok.text {
		case "and", "or", "not", "in":
			return nil, p.errorf(tok.pos, "unexpected keyword %q", tok.text)
		}
		p.next()
		if p.acceptSym("(") {
			args, err := p.parseExprList(")")
			if err != nil {
				return nil, err
			}
			return &CallNode{Func: tok.text, Args: args}, nil
		}
		return &NameNode{Name: tok.text}, nil
	case tokSym:
		switch tok.text {
		case "(":
			p.next()
			inner, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if p.acceptSym(",") {
				return nil, p.errorf(p.peek().pos, "tuples are not supported")
			}
			if err := p.expectSym(")"); err != nil {
				return nil, err
			}
			return inner, nil
		case "[":
			p.next()
			items, err := p.parseExprList("]")
			if err != nil {
				return nil, err
			}
			return &ListNode{Items: items}, nil
		case "{":
			p.next()
			return p.parseDict()
		}
	}
	return nil, p.errorf(tok.pos, "unexpected %s", tok.describe())
}

// parseExprList parses a comma-separated expression list up to the
// closing symbol. A trailing comma is allowed.
func (p *parser) parseExprList(closing string) ([]Node, error) {
	var items []Node
	for {
		if p.acceptSym(closing) {
			return items, nil
		}
		item, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.acceptSym(",") {
			continue
		}
		if err := p.expectSym(closing); err != nil {
			return nil, err
		}
		return items, nil
	}
}

// parseDict parses map literal entries after the opening brace.
func (p *parser) parseDict() (Node, error) {
	var keys, values []Node
	for {
		if p.acceptSym("}") {
			return &DictNode{Keys: keys, Values: values}, nil
		}
		key, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSym(":"); err != nil {
			return nil, err
		}
		value, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values = append(values, value)
		if p.acceptSym(",") {
			continue
		}
		if err := p.expectSym("}"); err != nil {
			return nil, err
		}
		return &DictNode{Keys: keys, Values: values}, nil
	}
}
