package dsl

import (
	"context"

	formwork "github.com/formwork-go/formwork"
)

// AnyAdapter wraps a schema as an any-typed object field together with its
// presence semantics (optional/nullable/default). Adapters are small values;
// the fluent methods copy the receiver, so a configured adapter can be shared
// across object schemas without aliasing. The wrapped parse closure is shared
// by reference; composition never clones the underlying schema.
type AnyAdapter struct {
	parse      anyParseFn
	optional   bool
	nullable   bool
	hasDefault bool
	defaultVal any
}

// Adapt wraps any Schema[T] as an AnyAdapter. Schemas built by this package
// can be passed to Field directly; Adapt is the entry point for external
// Schema implementations.
func Adapt[T any](s formwork.Schema[T]) AnyAdapter {
	return AnyAdapter{parse: parseFnOf(s)}
}

// parseAny lets a configured AnyAdapter be used anywhere an AnySchema is
// accepted.
func (ad AnyAdapter) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	if v == nil && ad.nullable {
		return nil, nil
	}
	return ad.parse(ctx, v, p, depth)
}

// Optional marks the field as allowed to be absent. Re-wrapping is a no-op:
// the flag collapses at construction time.
func (ad AnyAdapter) Optional() AnyAdapter {
	ad.optional = true
	return ad
}

// Nullable marks the field as accepting null. Idempotent like Optional.
func (ad AnyAdapter) Nullable() AnyAdapter {
	ad.nullable = true
	return ad
}

// Default substitutes v when the field is absent. The default is parsed
// through the field schema as if it had been supplied, so constraint and
// transform semantics apply to it too. A second Default replaces the first.
func (ad AnyAdapter) Default(v any) AnyAdapter {
	ad.hasDefault = true
	ad.defaultVal = v
	return ad
}

// Transform applies fn to the parsed value. It runs only after the wrapped
// schema succeeded; transforms never observe invalid data.
func (ad AnyAdapter) Transform(fn func(any) any) AnyAdapter {
	prev := ad.parse
	ad.parse = func(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
		out, iss := prev(ctx, v, p, depth)
		if len(iss) > 0 {
			return nil, iss
		}
		return fn(out), nil
	}
	return ad
}

// Refine adds a custom predicate evaluated only after the wrapped schema
// succeeded. Failure yields one custom issue with msg at the current path.
func (ad AnyAdapter) Refine(pred func(any) bool, msg string) AnyAdapter {
	prev := ad.parse
	ad.parse = func(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
		out, iss := prev(ctx, v, p, depth)
		if len(iss) > 0 {
			return nil, iss
		}
		if !pred(out) {
			return nil, formwork.Issues{customIssue(p, msg)}
		}
		return out, nil
	}
	return ad
}

// adapterOf normalizes an AnySchema into an AnyAdapter, preserving flags
// carried by adapters and wrapper schemas.
func adapterOf(s AnySchema) AnyAdapter {
	switch t := s.(type) {
	case AnyAdapter:
		return t
	case adapterProvider:
		return t.fieldAdapter()
	default:
		return AnyAdapter{parse: s.parseAny}
	}
}
