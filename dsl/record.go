package dsl

import (
	"context"
	"fmt"
	"sort"

	formwork "github.com/formwork-go/formwork"
	"github.com/formwork-go/formwork/i18n"
)

// RecordSchema validates key-value structures whose keys are dynamic: every
// value is checked against one shared value schema. Keys are visited in
// sorted order for deterministic issue ordering.
type RecordSchema[V any] struct {
	value   anyParseFn
	minKeys int
	maxKeys int
}

// Record returns a record schema with the given value schema.
func Record[V any](value formwork.Schema[V]) *RecordSchema[V] {
	return &RecordSchema[V]{value: parseFnOf(value), minKeys: -1, maxKeys: -1}
}

func (r *RecordSchema[V]) clone() *RecordSchema[V] {
	c := *r
	return &c
}

// MinKeys sets the minimum number of keys.
func (r *RecordSchema[V]) MinKeys(n int) *RecordSchema[V] {
	c := r.clone()
	c.minKeys = n
	return c
}

// MaxKeys sets the maximum number of keys.
func (r *RecordSchema[V]) MaxKeys(n int) *RecordSchema[V] {
	c := r.clone()
	c.maxKeys = n
	return c
}

func (r *RecordSchema[V]) parse(ctx context.Context, v any, p formwork.Path, depth int) (map[string]V, formwork.Issues) {
	if iss := checkDepth(ctx, p, depth); iss != nil {
		return nil, iss
	}
	src, ok := v.(map[string]any)
	if !ok {
		return nil, formwork.Issues{typeIssue(p, "object", v)}
	}

	var iss formwork.Issues
	if r.minKeys >= 0 && len(src) < r.minKeys {
		iss = formwork.AppendIssues(iss, formwork.Issue{
			Path: p, Code: formwork.CodeTooSmall,
			Message:  i18n.T(formwork.CodeTooSmall, nil),
			Expected: fmt.Sprintf("keys >= %d", r.minKeys),
		})
		if formwork.IsFailFast(ctx) {
			return nil, iss
		}
	}
	if r.maxKeys >= 0 && len(src) > r.maxKeys {
		iss = formwork.AppendIssues(iss, formwork.Issue{
			Path: p, Code: formwork.CodeTooBig,
			Message:  i18n.T(formwork.CodeTooBig, nil),
			Expected: fmt.Sprintf("keys <= %d", r.maxKeys),
		})
		if formwork.IsFailFast(ctx) {
			return nil, iss
		}
	}

	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]V, len(src))
	for _, k := range keys {
		vv, vi := r.value(ctx, src[k], p.Field(k), depth+1)
		if len(vi) > 0 {
			iss = formwork.AppendIssues(iss, vi...)
			if formwork.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[k] = vv.(V)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (r *RecordSchema[V]) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	out, iss := r.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (r *RecordSchema[V]) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[map[string]V] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	out, iss := r.parse(ctx, v, nil, 0)
	return resultOf(out, iss)
}

func (r *RecordSchema[V]) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[map[string]V] {
	return formwork.Safe(r.Parse(ctx, v, opts...))
}
