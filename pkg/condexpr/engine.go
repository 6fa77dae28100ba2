package condexpr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/condexpr/pkg/condexpr/observability"
	"github.com/randalmurphal/condexpr/pkg/condexpr/query"
	"github.com/randalmurphal/condexpr/pkg/condexpr/template"
)

// Request describes one engine invocation.
type Request struct {
	// Value is the subject under test, bound to the identifier VALUE.
	// It may be a Value or any JSON/YAML-decoded Go value tree.
	Value any

	// Conditions is an expression that evaluates to the ordered list
	// of condition/return entries plus the trailing default. It may
	// contain #{path} segments, which are spliced from Value before
	// parsing.
	Conditions string

	// Variables is an optional newline-delimited block of
	// "key = value" assignments.
	Variables string

	// Flags is an optional list of recognized flag tokens.
	Flags []string
}

// Engine is the per-invocation evaluation context: the flag set,
// variable environment, function table, and spliced conditions text,
// all built once by New and read-only afterwards. An Engine holds no
// state across calls and separate engines share nothing mutable, so
// concurrent invocations need no synchronization.
type Engine struct {
	flags      FlagSet
	flagTokens []string
	subject    Value
	env        *Env
	funcs      *Funcs
	ops        *operatorTable
	conditions string

	invocationID  string
	spliceMissing template.MissingAction
	customFuncs   map[string]Func

	logger  *slog.Logger
	spans   observability.SpanManager
	metrics observability.MetricsRecorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger enables structured logging for the invocation.
// Without it the engine emits no log output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSpanManager enables tracing for the invocation.
func WithSpanManager(spans observability.SpanManager) Option {
	return func(e *Engine) {
		e.spans = spans
	}
}

// WithMetrics enables metrics recording for the invocation.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// WithFunction registers an additional named function, or replaces a
// built-in of the same name.
//
// Example:
//
//	engine, err := condexpr.New(req, condexpr.WithFunction("starts_with", startsWith))
func WithFunction(name string, fn Func) Option {
	return func(e *Engine) {
		if e.customFuncs == nil {
			e.customFuncs = make(map[string]Func)
		}
		e.customFuncs[name] = fn
	}
}

// WithSpliceMissing sets how unresolved #{...} paths in the
// conditions text are handled. Default: template.MissingNull.
func WithSpliceMissing(action template.MissingAction) Option {
	return func(e *Engine) {
		e.spliceMissing = action
	}
}

// New builds the evaluation context for one invocation: it parses the
// flag set, converts the subject, parses the variables block, binds
// the function table, and splices #{...} segments into the conditions
// text. Everything constructed here is read-only for the rest of the
// invocation.
func New(req Request, opts ...Option) (*Engine, error) {
	e := &Engine{
		invocationID:  uuid.NewString(),
		spliceMissing: template.MissingNull,
		spans:         observability.NoopSpanManager{},
		metrics:       observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}

	flags, err := ParseFlags(req.Flags)
	if err != nil {
		return nil, err
	}
	e.flags = flags
	e.flagTokens = req.Flags

	subject, err := FromAny(req.Value)
	if err != nil {
		return nil, fmt.Errorf("convert value: %w", err)
	}
	e.subject = subject

	env, err := newEnv(subject, req.Variables)
	if err != nil {
		return nil, fmt.Errorf("parse variables: %w", err)
	}
	e.env = env

	e.funcs = newFuncs(flags)
	for name, fn := range e.customFuncs {
		e.funcs.Register(name, fn)
	}
	e.ops = newOperatorTable(flags)

	splicer := template.NewSplicer(template.WithMissingAction(e.spliceMissing))
	spliced, err := splicer.Splice(req.Conditions, lookupIn(req.Value))
	if err != nil {
		return nil, fmt.Errorf("splice conditions: %w", err)
	}
	e.conditions = spliced

	return e, nil
}

// lookupIn resolves #{...} paths against the subject document,
// rendering hits in canonical printed form so they splice back into
// the source as literals.
func lookupIn(doc any) template.LookupFunc {
	return func(path string) (string, bool) {
		raw, ok := query.Lookup(doc, path)
		if !ok {
			return "", false
		}
		v, err := FromAny(raw)
		if err != nil {
			return "", false
		}
		return v.Repr(), true
	}
}

// InvocationID returns the unique identifier attached to this
// invocation's logs, spans, and metrics.
func (e *Engine) InvocationID() string { return e.invocationID }

// Conditions returns the conditions text after splicing.
func (e *Engine) Conditions() string { return e.conditions }

// Eval parses and evaluates a single expression against the
// invocation's environment and function table. Evaluation failures
// are wrapped in an EvalError carrying the expression text.
func (e *Engine) Eval(expr string) (Value, error) {
	node, err := Parse(expr)
	if err != nil {
		return Null(), err
	}
	ev := &evaluator{env: e.env, funcs: e.funcs, ops: e.ops}
	v, err := ev.eval(node)
	if err != nil {
		return Null(), &EvalError{Expr: expr, Err: err}
	}
	return v, nil
}

// Select evaluates the conditions list and returns the first entry
// whose condition is truthy, or the trailing default when none match.
// Entries after the first match are never evaluated.
func (e *Engine) Select(ctx context.Context) (Value, error) {
	logger := observability.EnrichLogger(e.logger, e.invocationID)
	observability.LogSelectStart(e.logger, e.invocationID, e.flagTokens)

	ctx, span := e.spans.StartSelectSpan(ctx, e.invocationID)
	done := observability.TimedOperation()
	start := time.Now()

	result, branchIndex, err := e.selectBranch(ctx, logger)

	e.spans.EndSpanWithError(span, err)
	e.metrics.RecordSelection(ctx, branchIndex, time.Since(start), err)
	if err != nil {
		observability.LogSelectError(logger, e.invocationID, err, done())
		return Null(), err
	}
	observability.LogSelectComplete(logger, e.invocationID, done(), branchIndex)
	return result, nil
}

// selectBranch runs the two evaluation stages: reduce the conditions
// expression to the entry list, then scan entries top to bottom until
// one matches. Returns the selected value and the matched entry index
// (-1 when the default was used).
func (e *Engine) selectBranch(ctx context.Context, logger *slog.Logger) (Value, int, error) {
	stageCtx, stageSpan := e.spans.StartStageSpan(ctx, "conditions")
	stageStart := time.Now()
	list, err := e.Eval(e.conditions)
	e.spans.EndSpanWithError(stageSpan, err)
	e.metrics.RecordStage(stageCtx, "conditions", time.Since(stageStart))
	if err != nil {
		return Null(), -1, fmt.Errorf("evaluate conditions: %w", err)
	}

	entries, def, err := splitConditionList(list)
	if err != nil {
		return Null(), -1, err
	}

	stageCtx, stageSpan = e.spans.StartStageSpan(ctx, "select")
	stageStart = time.Now()
	result, branchIndex, err := e.scan(entries, def, logger)
	e.spans.EndSpanWithError(stageSpan, err)
	e.metrics.RecordStage(stageCtx, "select", time.Since(stageStart))
	return result, branchIndex, err
}

// scan walks the entries in order. First truthy condition wins and
// ends the scan; an exhausted scan yields the default.
func (e *Engine) scan(entries []conditionEntry, def Value, logger *slog.Logger) (Value, int, error) {
	for i, entry := range entries {
		v, err := e.Eval(entry.condition)
		if err != nil {
			return Null(), -1, fmt.Errorf("entry %d: %w", i, err)
		}
		truthy := v.Truthy()
		observability.LogConditionEvaluated(logger, i, entry.condition, truthy)
		if truthy {
			return entry.ret, i, nil
		}
	}
	return def, -1, nil
}

// Select builds the evaluation context for req and runs the branch
// selection in one call.
func Select(ctx context.Context, req Request, opts ...Option) (Value, error) {
	e, err := New(req, opts...)
	if err != nil {
		return Null(), err
	}
	return e.Select(ctx)
}
