package condexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want bool
	}{
		{"null", Null(), false},
		{"true", Bool(true), true},
		{"false", Bool(false), false},
		{"zero int", Int(0), false},
		{"nonzero int", Int(7), true},
		{"negative int", Int(-1), true},
		{"zero float", Float(0), false},
		{"nonzero float", Float(0.5), true},
		{"empty string", Str(""), false},
		{"nonempty string", Str("x"), true},
		{"empty list", List(), false},
		{"nonempty list", List(Int(0)), true},
		{"empty map", NewMap(), false},
		{"nonempty map", NewMap(MapEntry{Key: Str("k"), Val: Null()}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.val.Truthy())
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"ints", Int(5), Int(5), true},
		{"int and float", Int(1), Float(1.0), true},
		{"different numbers", Int(1), Float(1.5), false},
		{"strings", Str("abc"), Str("abc"), true},
		{"strings case-sensitive", Str("ABC"), Str("abc"), false},
		{"nulls", Null(), Null(), true},
		{"bools", Bool(true), Bool(true), true},
		{"bool and int never equal", Bool(true), Int(1), false},
		{"string and int never equal", Str("1"), Int(1), false},
		{"lists element-wise", List(Int(1), Str("a")), List(Int(1), Str("a")), true},
		{"lists different length", List(Int(1)), List(Int(1), Int(2)), false},
		{"nested lists", List(List(Int(1))), List(List(Int(1))), true},
		{
			"maps ignore insertion order",
			NewMap(MapEntry{Str("a"), Int(1)}, MapEntry{Str("b"), Int(2)}),
			NewMap(MapEntry{Str("b"), Int(2)}, MapEntry{Str("a"), Int(1)}),
			true,
		},
		{
			"maps different values",
			NewMap(MapEntry{Str("a"), Int(1)}),
			NewMap(MapEntry{Str("a"), Int(2)}),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestNewMap_LastWriteWins(t *testing.T) {
	m := NewMap(
		MapEntry{Key: Str("k"), Val: Int(1)},
		MapEntry{Key: Str("other"), Val: Int(2)},
		MapEntry{Key: Str("k"), Val: Int(3)},
	)

	require.Len(t, m.AsMap(), 2)
	v, ok := m.MapGet(Str("k"))
	require.True(t, ok)
	assert.Equal(t, Int(3), v)
	// The duplicate key keeps its original position.
	assert.Equal(t, Str("k"), m.AsMap()[0].Key)
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Value
		want    int
		wantErr bool
	}{
		{"ints", Int(1), Int(2), -1, false},
		{"int and float", Int(2), Float(1.5), 1, false},
		{"equal numbers", Float(2.0), Int(2), 0, false},
		{"strings", Str("apple"), Str("banana"), -1, false},
		{"lists element-wise", List(Int(1), Int(2)), List(Int(1), Int(3)), -1, false},
		{"list prefix orders first", List(Int(1)), List(Int(1), Int(0)), -1, false},
		{"string and int", Str("1"), Int(1), 0, true},
		{"map and int", NewMap(), Int(1), 0, true},
		{"null and null", Null(), Null(), 0, true},
		{"bool and bool", Bool(false), Bool(true), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compareValues(tt.a, tt.b)
			if tt.wantErr {
				var mismatch *TypeMismatchError
				require.ErrorAs(t, err, &mismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name      string
		container Value
		item      Value
		want      bool
		wantErr   bool
	}{
		{"list hit", List(Int(1), Int(2)), Int(2), true, false},
		{"list miss", List(Int(1), Int(2)), Int(3), false, false},
		{"list structural", List(List(Int(1))), List(Int(1)), true, false},
		{"map tests keys", NewMap(MapEntry{Str("k"), Int(1)}), Str("k"), true, false},
		{"map value is not a key", NewMap(MapEntry{Str("k"), Int(1)}), Int(1), false, false},
		{"substring", Str("abcdef"), Str("cde"), true, false},
		{"substring miss", Str("abcdef"), Str("xyz"), false, false},
		{"non-string item in string", Str("123"), Int(1), false, true},
		{"int is not a container", Int(5), Int(5), false, true},
		{"null is not a container", Null(), Int(1), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := contains(tt.container, tt.item)
			if tt.wantErr {
				var mismatch *TypeMismatchError
				require.ErrorAs(t, err, &mismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepr(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"null", Null(), "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(-42), "-42"},
		{"float", Float(2.5), "2.5"},
		{"whole float keeps a decimal", Float(3), "3.0"},
		{"string", Str("hi"), "'hi'"},
		{"string with quote", Str("it's"), `'it\'s'`},
		{"string with newline", Str("a\nb"), `'a\nb'`},
		{"list", List(Int(1), Str("a")), "[1, 'a']"},
		{"empty list", List(), "[]"},
		{
			"map in insertion order",
			NewMap(MapEntry{Str("b"), Int(2)}, MapEntry{Str("a"), Int(1)}),
			"{'b': 2, 'a': 1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.val.Repr())
		})
	}
}

// TestRepr_RoundTrip verifies that Repr output parses back to an
// equal value, which the #{...} splice pass depends on.
func TestRepr_RoundTrip(t *testing.T) {
	values := []Value{
		Null(),
		Bool(true),
		Int(17),
		Float(1.25),
		Str("plain"),
		Str("quote ' and \\ and\nnewline"),
		List(Int(1), Str("a"), List(Bool(false))),
		NewMap(
			MapEntry{Str("k"), List(Int(1), Int(2))},
			MapEntry{Int(3), Str("v")},
		),
	}

	for _, v := range values {
		t.Run(v.Repr(), func(t *testing.T) {
			got, err := ParseLiteral(v.Repr())
			require.NoError(t, err)
			assert.True(t, got.Equal(v), "ParseLiteral(%s) = %s", v.Repr(), got.Repr())
		})
	}
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Value
	}{
		{"nil", nil, Null()},
		{"bool", true, Bool(true)},
		{"int", 5, Int(5)},
		{"int64", int64(-9), Int(-9)},
		{"uint32", uint32(7), Int(7)},
		{"float64", 1.5, Float(1.5)},
		{"string", "s", Str("s")},
		{"value passthrough", Int(3), Int(3)},
		{"slice", []any{1, "a"}, List(Int(1), Str("a"))},
		{
			"map sorts keys",
			map[string]any{"b": 2, "a": 1},
			NewMap(MapEntry{Str("a"), Int(1)}, MapEntry{Str("b"), Int(2)}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "FromAny(%v) = %s", tt.input, got.Repr())
		})
	}

	t.Run("unsupported type", func(t *testing.T) {
		_, err := FromAny(struct{}{})
		require.Error(t, err)
	})
}

func TestToAny(t *testing.T) {
	v := NewMap(
		MapEntry{Str("list"), List(Int(1), Float(2.5))},
		MapEntry{Str("s"), Str("x")},
		MapEntry{Str("nothing"), Null()},
	)

	got := ToAny(v)
	want := map[string]any{
		"list":    []any{int64(1), 2.5},
		"s":       "x",
		"nothing": nil,
	}
	assert.Equal(t, want, got)
}
