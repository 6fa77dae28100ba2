package benchmarks

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/randalmurphal/condexpr/pkg/condexpr"
)

const thresholdConditions = `[
	{'condition': 'VALUE > 100', 'return': 'large'},
	{'condition': 'VALUE > 10', 'return': 'medium'},
	{'else': 'small'}
]`

// buildConditions builds a condition list with n entries before the
// default, none of which match a zero subject.
func buildConditions(n int) string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "{'condition': 'VALUE == %d', 'return': %d}, ", i+1, i+1)
	}
	b.WriteString("{'else': null}]")
	return b.String()
}

// BenchmarkParse measures expression parsing overhead.
func BenchmarkParse(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = condexpr.Parse("VALUE > 10 and VALUE < 100 or flag in ['a', 'b']")
	}
}

// BenchmarkNew measures invocation context construction.
func BenchmarkNew(b *testing.B) {
	req := condexpr.Request{Value: 42, Conditions: thresholdConditions}
	for i := 0; i < b.N; i++ {
		_, _ = condexpr.New(req)
	}
}

// BenchmarkEval measures single-expression evaluation on a prepared
// engine.
func BenchmarkEval(b *testing.B) {
	engine, err := condexpr.New(condexpr.Request{Value: 42})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Eval("VALUE > 10 and VALUE < 100")
	}
}

// BenchmarkSelect measures a full selection round trip.
func BenchmarkSelect(b *testing.B) {
	ctx := context.Background()
	req := condexpr.Request{Value: 42, Conditions: thresholdConditions}
	for i := 0; i < b.N; i++ {
		_, _ = condexpr.Select(ctx, req)
	}
}

// BenchmarkSelect_10 scans 10 non-matching entries.
func BenchmarkSelect_10(b *testing.B) {
	benchmarkSelectN(b, 10)
}

// BenchmarkSelect_100 scans 100 non-matching entries.
func BenchmarkSelect_100(b *testing.B) {
	benchmarkSelectN(b, 100)
}

func benchmarkSelectN(b *testing.B, n int) {
	ctx := context.Background()
	req := condexpr.Request{Value: 0, Conditions: buildConditions(n)}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = condexpr.Select(ctx, req)
	}
}

// BenchmarkSelect_Regex exercises regex_match in the scan.
func BenchmarkSelect_Regex(b *testing.B) {
	ctx := context.Background()
	req := condexpr.Request{
		Value: "error: disk full",
		Conditions: `[
			{'condition': "regex_match('^error', VALUE)", 'return': 'alert'},
			{'else': 'ignore'}
		]`,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = condexpr.Select(ctx, req)
	}
}

// BenchmarkSelect_Templating includes the #{...} splice pass.
func BenchmarkSelect_Templating(b *testing.B) {
	ctx := context.Background()
	req := condexpr.Request{
		Value: map[string]any{"severity": 8, "owner": map[string]any{"name": "alice"}},
		Conditions: `[
			{'condition': '#{severity} > 5', 'return': #{owner.name}},
			{'else': 'unassigned'}
		]`,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = condexpr.Select(ctx, req)
	}
}
