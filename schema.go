package formwork

import "context"

// Schema describes the shape and constraints a dynamic value must satisfy to
// produce a T. Implementations are immutable after construction; validating
// different inputs against one shared schema from multiple goroutines needs
// no locks.
type Schema[T any] interface {
	// Parse converts an untrusted dynamic value (map[string]any, []any,
	// scalars) into a T, collecting every failing constraint into a single
	// ValidationError. It never panics on malformed input.
	Parse(ctx context.Context, v any, opts ...ParseOpt) Result[T]
	// SafeParse is Parse for callers that prefer a discriminated record over
	// a Result.
	SafeParse(ctx context.Context, v any, opts ...ParseOpt) SafeResult[T]
}

// UnknownPolicy controls how object schemas handle keys not declared in the
// schema. The choice is explicit and required at build time; there is no
// inferred default.
type UnknownPolicy int

const (
	unknownUnset       UnknownPolicy = iota
	UnknownStrict                    // Reject unknown keys with unrecognized_key issues.
	UnknownStrip                     // Drop unknown keys from the output.
	UnknownPassthrough               // Copy unknown keys into the output unvalidated.
)

// DefaultMaxDepth bounds recursion into nested input when no explicit limit
// is configured, so cyclic or pathologically deep input fails with a
// max_depth_exceeded issue instead of exhausting the stack.
const DefaultMaxDepth = 100

// ParseOpt bundles per-call parsing options. With multiple opts the last one
// wins.
type ParseOpt struct {
	// FailFast stops the traversal at the first issue instead of collecting
	// every failure.
	FailFast bool
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

// ---- Parse-time context options (internal wiring, exported for subpackages) ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
	_ctxKeyMaxDepth
)

// ContextWithOpts folds a variadic opts slice into the context (last wins).
// Schema implementations call this once at their public entry point.
func ContextWithOpts(ctx context.Context, opts []ParseOpt) context.Context {
	if len(opts) == 0 {
		return ctx
	}
	opt := opts[len(opts)-1]
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	if opt.MaxDepth > 0 {
		ctx = WithMaxDepth(ctx, opt.MaxDepth)
	}
	return ctx
}

// WithFailFast returns a child context that marks fail-fast parsing behavior.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

// WithMaxDepth returns a child context carrying the recursion limit.
func WithMaxDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, _ctxKeyMaxDepth, depth)
}

// MaxDepthFrom returns the recursion limit for the current parse.
func MaxDepthFrom(ctx context.Context) int {
	if v, ok := ctx.Value(_ctxKeyMaxDepth).(int); ok && v > 0 {
		return v
	}
	return DefaultMaxDepth
}
