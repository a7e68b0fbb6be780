package dsl

import (
	"context"
	"sync"

	formwork "github.com/formwork-go/formwork"
)

// Typed wrappers for presence and post-validation semantics. Inside object
// schemas the same semantics are usually expressed on the field adapter
// (Field(...).Optional() and friends); these wrappers cover standalone use
// and keep re-wrapping idempotent at construction time, so a chain of
// Optional calls costs one unwrap at validation time, not one per call.

// OptionalSchema treats an absent (nil) input as success with the zero T.
type OptionalSchema[T any] struct {
	inner formwork.Schema[T]
	fn    anyParseFn
}

// Optional wraps s to accept absent input. Wrapping an already-optional
// schema returns it unchanged.
func Optional[T any](s formwork.Schema[T]) *OptionalSchema[T] {
	if o, ok := s.(*OptionalSchema[T]); ok {
		return o
	}
	return &OptionalSchema[T]{inner: s, fn: parseFnOf(s)}
}

func (o *OptionalSchema[T]) parse(ctx context.Context, v any, p formwork.Path, depth int) (T, formwork.Issues) {
	var zero T
	if v == nil {
		return zero, nil
	}
	out, iss := o.fn(ctx, v, p, depth)
	if len(iss) > 0 {
		return zero, iss
	}
	return out.(T), nil
}

func (o *OptionalSchema[T]) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	tv, iss := o.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return tv, nil
}

func (o *OptionalSchema[T]) fieldAdapter() AnyAdapter {
	return AnyAdapter{parse: o.fn, optional: true}
}

func (o *OptionalSchema[T]) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[T] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	tv, iss := o.parse(ctx, v, nil, 0)
	return resultOf(tv, iss)
}

func (o *OptionalSchema[T]) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[T] {
	return formwork.Safe(o.Parse(ctx, v, opts...))
}

// NullableSchema maps null to a nil *T and anything else through the inner
// schema.
type NullableSchema[T any] struct {
	fn anyParseFn
}

// Nullable wraps s to accept null, surfacing the value as *T.
func Nullable[T any](s formwork.Schema[T]) *NullableSchema[T] {
	return &NullableSchema[T]{fn: parseFnOf(s)}
}

func (n *NullableSchema[T]) parse(ctx context.Context, v any, p formwork.Path, depth int) (*T, formwork.Issues) {
	if v == nil {
		return nil, nil
	}
	out, iss := n.fn(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	tv := out.(T)
	return &tv, nil
}

func (n *NullableSchema[T]) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	tv, iss := n.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return tv, nil
}

func (n *NullableSchema[T]) fieldAdapter() AnyAdapter {
	// Field values stay plain T in the output map; the traversal stores nil
	// for null before calling the inner parse.
	return AnyAdapter{parse: n.fn, nullable: true}
}

func (n *NullableSchema[T]) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[*T] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	tv, iss := n.parse(ctx, v, nil, 0)
	return resultOf(tv, iss)
}

func (n *NullableSchema[T]) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[*T] {
	return formwork.Safe(n.Parse(ctx, v, opts...))
}

// DefaultSchema substitutes def for absent input, parsing it through the
// inner schema as if it had been supplied.
type DefaultSchema[T any] struct {
	inner formwork.Schema[T]
	fn    anyParseFn
	def   T
}

// Default wraps s with a default for absent input. Re-wrapping replaces the
// previous default instead of nesting.
func Default[T any](s formwork.Schema[T], def T) *DefaultSchema[T] {
	if d, ok := s.(*DefaultSchema[T]); ok {
		s = d.inner
	}
	return &DefaultSchema[T]{inner: s, fn: parseFnOf(s), def: def}
}

func (d *DefaultSchema[T]) parse(ctx context.Context, v any, p formwork.Path, depth int) (T, formwork.Issues) {
	var zero T
	if v == nil {
		v = any(d.def)
	}
	out, iss := d.fn(ctx, v, p, depth)
	if len(iss) > 0 {
		return zero, iss
	}
	return out.(T), nil
}

func (d *DefaultSchema[T]) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	tv, iss := d.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return tv, nil
}

func (d *DefaultSchema[T]) fieldAdapter() AnyAdapter {
	return AnyAdapter{parse: d.fn, hasDefault: true, defaultVal: any(d.def)}
}

func (d *DefaultSchema[T]) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[T] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	tv, iss := d.parse(ctx, v, nil, 0)
	return resultOf(tv, iss)
}

func (d *DefaultSchema[T]) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[T] {
	return formwork.Safe(d.Parse(ctx, v, opts...))
}

// TransformSchema maps a validated A to B. The function runs only after the
// inner schema succeeded.
type TransformSchema[A, B any] struct {
	fn anyParseFn
	tf func(A) (B, error)
}

// Transform derives a Schema[B] from a Schema[A] and a conversion function.
// A conversion error becomes one custom issue at the current path.
func Transform[A, B any](s formwork.Schema[A], fn func(A) (B, error)) *TransformSchema[A, B] {
	return &TransformSchema[A, B]{fn: parseFnOf(s), tf: fn}
}

func (t *TransformSchema[A, B]) parse(ctx context.Context, v any, p formwork.Path, depth int) (B, formwork.Issues) {
	var zero B
	out, iss := t.fn(ctx, v, p, depth)
	if len(iss) > 0 {
		return zero, iss
	}
	b, err := t.tf(out.(A))
	if err != nil {
		return zero, formwork.Issues{customIssue(p, err.Error())}
	}
	return b, nil
}

func (t *TransformSchema[A, B]) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	b, iss := t.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return b, nil
}

func (t *TransformSchema[A, B]) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[B] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	b, iss := t.parse(ctx, v, nil, 0)
	return resultOf(b, iss)
}

func (t *TransformSchema[A, B]) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[B] {
	return formwork.Safe(t.Parse(ctx, v, opts...))
}

// RefineSchema evaluates a custom predicate after the inner schema
// succeeded.
type RefineSchema[T any] struct {
	fn   anyParseFn
	pred func(T) bool
	msg  string
}

// Refine wraps s with a custom predicate; failure yields one custom issue
// with msg at the current path. The predicate is skipped when the inner
// schema already failed.
func Refine[T any](s formwork.Schema[T], pred func(T) bool, msg string) *RefineSchema[T] {
	return &RefineSchema[T]{fn: parseFnOf(s), pred: pred, msg: msg}
}

func (r *RefineSchema[T]) parse(ctx context.Context, v any, p formwork.Path, depth int) (T, formwork.Issues) {
	var zero T
	out, iss := r.fn(ctx, v, p, depth)
	if len(iss) > 0 {
		return zero, iss
	}
	tv := out.(T)
	if !r.pred(tv) {
		return zero, formwork.Issues{customIssue(p, r.msg)}
	}
	return tv, nil
}

func (r *RefineSchema[T]) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	tv, iss := r.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return tv, nil
}

func (r *RefineSchema[T]) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[T] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	tv, iss := r.parse(ctx, v, nil, 0)
	return resultOf(tv, iss)
}

func (r *RefineSchema[T]) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[T] {
	return formwork.Safe(r.Parse(ctx, v, opts...))
}

// LazySchema defers resolution of its inner schema until first use, which
// lets a schema reference itself or a later-defined schema. Cycles in the
// input are still bounded by the recursion-depth guard.
type LazySchema[T any] struct {
	resolve func() formwork.Schema[T]
	once    sync.Once
	fn      anyParseFn
}

// Lazy returns a schema resolved by calling fn once, on first use.
func Lazy[T any](fn func() formwork.Schema[T]) *LazySchema[T] {
	return &LazySchema[T]{resolve: fn}
}

func (l *LazySchema[T]) resolved() anyParseFn {
	l.once.Do(func() { l.fn = parseFnOf(l.resolve()) })
	return l.fn
}

func (l *LazySchema[T]) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	return l.resolved()(ctx, v, p, depth)
}

func (l *LazySchema[T]) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[T] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	out, iss := l.resolved()(ctx, v, nil, 0)
	if len(iss) > 0 {
		var zero T
		return resultOf(zero, iss)
	}
	return formwork.Ok(out.(T))
}

func (l *LazySchema[T]) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[T] {
	return formwork.Safe(l.Parse(ctx, v, opts...))
}
