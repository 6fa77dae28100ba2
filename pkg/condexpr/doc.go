/*
Package condexpr provides an embeddable conditional-expression engine:
it parses textual boolean/comparison expressions, evaluates them
against named variables, and selects one branch's return value from an
ordered list of condition/return pairs with a trailing default.

# Overview

An invocation is a pure function of four inputs (the subject value,
the conditions expression, an optional variables block, and optional
flag tokens) to exactly one selected value or a typed error. The
engine builds its whole evaluation context per call and keeps no state
across calls, so concurrent invocations need no synchronization.

# Basic Usage

	req := condexpr.Request{
	    Value: 15,
	    Conditions: `[
	        {'condition': 'VALUE > 10', 'return': 'big'},
	        {'condition': 'VALUE > 0', 'return': 'small'},
	        {'else': 'none'},
	    ]`,
	}

	result, err := condexpr.Select(context.Background(), req)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(result) // 'big'

Conditions are scanned top to bottom and the first truthy condition
wins; entries after it are never evaluated. When no condition matches,
the trailing default's "else" value is selected.

# Expressions

The grammar is a fixed expression subset: number and string literals,
list and map literals, bare names, single-level calls, chained
comparisons (1 < x < 10), and/or with short-circuit semantics, and
unary not and minus. Names resolve against the variables block plus
the fixed bindings true, false, null, and VALUE (the subject). The
built-in regex_match function matches patterns with flag-controlled
behavior; regex_dot_all, regex_multiline, case_insensitive, and
regex_full_match are the recognized flag tokens.

# Templating

Before parsing, #{path} segments in the conditions text are replaced
by the printed form of looking the path up in the subject document:

	req := condexpr.Request{
	    Value: map[string]any{"alert": map[string]any{"severity": 3}},
	    Conditions: `[
	        {'condition': '#{alert.severity} >= 3', 'return': 'page'},
	        {'else': 'ignore'},
	    ]`,
	}

# Observability

Logging, tracing, and metrics are opt-in through engine options; by
default the engine is silent and side-effect free. See the
observability subpackage.
*/
package condexpr
