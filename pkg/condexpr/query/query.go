// Package query provides dotted-path lookup over decoded document
// trees (map[string]any / []any values, as produced by JSON or YAML
// decoding).
//
// The #{...} splice pass resolves its paths through this package
// against the subject under test. Lookups are read-only and
// side-effect free.
//
// Path syntax:
//   - "a.b.c" descends map keys
//   - numeric segments index lists ("items.0.name")
//   - a key segment applied to a list projects over its elements,
//     collecting the values found ("items.name" over a list of maps)
package query

import (
	"strconv"
	"strings"
)

// Lookup resolves a dotted path against doc. The empty path resolves
// to doc itself. ok is false when any segment cannot be resolved.
func Lookup(doc any, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return doc, true
	}
	return walk(doc, strings.Split(path, "."))
}

// walk resolves the remaining path segments against cur.
func walk(cur any, segments []string) (any, bool) {
	if len(segments) == 0 {
		return cur, true
	}
	seg := segments[0]
	rest := segments[1:]

	switch node := cur.(type) {
	case map[string]any:
		child, ok := node[seg]
		if !ok {
			return nil, false
		}
		return walk(child, rest)
	case []any:
		if idx, err := strconv.Atoi(seg); err == nil {
			if idx < 0 || idx >= len(node) {
				return nil, false
			}
			return walk(node[idx], rest)
		}
		return project(node, segments)
	default:
		return nil, false
	}
}

// project applies the remaining path to every element of a list,
// collecting the values that resolve. The projection succeeds when at
// least one element resolves.
func project(list []any, segments []string) (any, bool) {
	var results []any
	for _, el := range list {
		if v, ok := walk(el, segments); ok {
			results = append(results, v)
		}
	}
	if results == nil {
		return nil, false
	}
	return results, true
}
