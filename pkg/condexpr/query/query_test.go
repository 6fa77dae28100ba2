package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	doc := map[string]any{
		"severity": 3,
		"owner":    map[string]any{"name": "alice"},
		"items": []any{
			map[string]any{"name": "first", "score": 1},
			map[string]any{"name": "second"},
			map[string]any{"score": 3},
		},
		"tags": []any{"a", "b"},
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{"empty path is the document", "", doc},
		{"top-level key", "severity", 3},
		{"nested key", "owner.name", "alice"},
		{"list index", "tags.1", "b"},
		{"index then key", "items.0.name", "first"},
		{"projection over list", "items.name", []any{"first", "second"}},
		{"partial projection", "items.score", []any{1, 3}},
		{"path with spaces trimmed", "  owner.name  ", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(doc, tt.path)
			require.True(t, ok, "Lookup(%q) did not resolve", tt.path)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_Unresolved(t *testing.T) {
	doc := map[string]any{
		"owner": map[string]any{"name": "alice"},
		"tags":  []any{"a", "b"},
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing key", "missing"},
		{"missing nested key", "owner.age"},
		{"descend through scalar", "owner.name.first"},
		{"index out of range", "tags.5"},
		{"negative index", "tags.-1"},
		{"projection with no hits", "tags.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Lookup(doc, tt.path)
			assert.False(t, ok, "Lookup(%q) resolved unexpectedly", tt.path)
		})
	}
}

func TestLookup_NilDocument(t *testing.T) {
	_, ok := Lookup(nil, "key")
	assert.False(t, ok)

	got, ok := Lookup(nil, "")
	require.True(t, ok)
	assert.Nil(t, got)
}
