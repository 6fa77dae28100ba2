package condexpr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

// String returns a human-readable kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is the closed dynamic value domain the engine operates on:
// null, bool, int, float, string, list, and map.
//
// Maps preserve insertion order with last-write-wins keys, so printed
// form and iteration are deterministic. Values are immutable after
// construction; all operations return new Values.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	list    []Value
	entries []MapEntry
}

// MapEntry is a single key/value pair of a map Value.
type MapEntry struct {
	Key Value
	Val Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Str returns a string Value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// List returns a list Value with the given items in order.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// NewMap returns a map Value from the given entries in order.
// Duplicate keys follow last-write-wins: the value is updated in place
// and the key keeps its original position.
func NewMap(entries ...MapEntry) Value {
	deduped := make([]MapEntry, 0, len(entries))
outer:
	for _, e := range entries {
		for i := range deduped {
			if deduped[i].Key.Equal(e.Key) {
				deduped[i].Val = e.Val
				continue outer
			}
		}
		deduped = append(deduped, e)
	}
	return Value{kind: KindMap, entries: deduped}
}

// Kind returns the dynamic kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload. Valid only for KindBool.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the integer payload. Valid only for KindInt.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the float payload. Valid only for KindFloat.
func (v Value) AsFloat() float64 { return v.f }

// AsString returns the string payload. Valid only for KindString.
func (v Value) AsString() string { return v.s }

// AsList returns the list items. Valid only for KindList.
// The returned slice must not be modified.
func (v Value) AsList() []Value { return v.list }

// AsMap returns the map entries in insertion order. Valid only for
// KindMap. The returned slice must not be modified.
func (v Value) AsMap() []MapEntry { return v.entries }

// MapGet returns the value for key and whether it exists.
// Valid only for KindMap.
func (v Value) MapGet(key Value) (Value, bool) {
	for _, e := range v.entries {
		if e.Key.Equal(key) {
			return e.Val, true
		}
	}
	return Null(), false
}

// isNumber reports whether the value is an int or float.
func (v Value) isNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// asF64 returns the numeric payload as float64. Valid only for numbers.
func (v Value) asF64() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Truthy returns the truthiness of the value: null is false, booleans
// are themselves, zero numbers are false, and empty strings, lists,
// and maps are false. Everything else is true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s != ""
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return len(v.entries) > 0
	default:
		return false
	}
}

// Equal reports structural equality. Lists and maps are compared
// element-wise; map comparison ignores insertion order. Ints and
// floats compare numerically, so 1 == 1.0. Values of otherwise
// different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.isNumber() && other.isNumber() {
		return v.asF64() == other.asF64()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for _, e := range v.entries {
			ov, ok := other.MapGet(e.Key)
			if !ok || !e.Val.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// compareValues orders two values, returning -1, 0, or 1.
// Numbers order numerically, strings lexicographically, and lists
// element-wise. Any other combination is a TypeMismatchError.
func compareValues(a, b Value) (int, error) {
	switch {
	case a.isNumber() && b.isNumber():
		af, bf := a.asF64(), b.asF64()
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	case a.kind == KindString && b.kind == KindString:
		return strings.Compare(a.s, b.s), nil
	case a.kind == KindList && b.kind == KindList:
		for i := 0; i < len(a.list) && i < len(b.list); i++ {
			c, err := compareValues(a.list[i], b.list[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		switch {
		case len(a.list) < len(b.list):
			return -1, nil
		case len(a.list) > len(b.list):
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, &TypeMismatchError{Op: "<", Left: a.kind, Right: b.kind}
	}
}

// contains implements membership testing. Lists test element equality,
// maps test key presence, and strings test substring containment
// (the item must itself be a string). Any other container kind is a
// TypeMismatchError.
func contains(container, item Value) (bool, error) {
	switch container.kind {
	case KindList:
		for _, el := range container.list {
			if el.Equal(item) {
				return true, nil
			}
		}
		return false, nil
	case KindMap:
		_, ok := container.MapGet(item)
		return ok, nil
	case KindString:
		if item.kind != KindString {
			return false, &TypeMismatchError{Op: "in", Left: item.kind, Right: container.kind}
		}
		return strings.Contains(container.s, item.s), nil
	default:
		return false, &TypeMismatchError{Op: "in", Left: item.kind, Right: container.kind}
	}
}

// Repr returns the canonical printed form of the value: null, true,
// false, numbers, single-quoted strings, [item, item] lists, and
// {key: value} maps in insertion order. Repr output parses back to an
// equal Value, which is what the #{...} splice pass relies on, and its
// lower-cased form is the basis of case-insensitive equality.
func (v Value) Repr() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		// Keep floats re-parseable as floats.
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case KindString:
		return quoteString(v.s)
	case KindList:
		parts := make([]string, len(v.list))
		for i, el := range v.list {
			parts[i] = el.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.entries))
		for i, e := range v.entries {
			parts[i] = e.Key.Repr() + ": " + e.Val.Repr()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}

// String implements fmt.Stringer using the canonical printed form.
func (v Value) String() string { return v.Repr() }

// quoteString renders s as a single-quoted literal with escapes the
// tokenizer understands.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// FromAny converts a decoded JSON/YAML value tree into a Value.
// Map keys are sorted so conversion is deterministic regardless of Go
// map iteration order. Unsupported Go types return an error.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return Int(int64(val)), nil
	case uint8:
		return Int(int64(val)), nil
	case uint16:
		return Int(int64(val)), nil
	case uint32:
		return Int(int64(val)), nil
	case uint64:
		return Int(int64(val)), nil
	case float32:
		return Float(float64(val)), nil
	case float64:
		return Float(val), nil
	case string:
		return Str(val), nil
	case []any:
		items := make([]Value, len(val))
		for i, el := range val {
			cv, err := FromAny(el)
			if err != nil {
				return Null(), err
			}
			items[i] = cv
		}
		return List(items...), nil
	case []Value:
		return List(val...), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]MapEntry, 0, len(val))
		for _, k := range keys {
			cv, err := FromAny(val[k])
			if err != nil {
				return Null(), err
			}
			entries = append(entries, MapEntry{Key: Str(k), Val: cv})
		}
		return NewMap(entries...), nil
	default:
		return Null(), fmt.Errorf("cannot convert %T to a value", v)
	}
}

// ToAny converts a Value back into a plain Go value tree suitable for
// JSON/YAML encoding. Map keys must be strings; non-string keys are
// rendered with their canonical printed form.
func ToAny(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindList:
		items := make([]any, len(v.list))
		for i, el := range v.list {
			items[i] = ToAny(el)
		}
		return items
	case KindMap:
		m := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			key := e.Key.s
			if e.Key.kind != KindString {
				key = e.Key.Repr()
			}
			m[key] = ToAny(e.Val)
		}
		return m
	default:
		return nil
	}
}
