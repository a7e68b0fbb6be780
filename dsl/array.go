package dsl

import (
	"context"
	"fmt"

	formwork "github.com/formwork-go/formwork"
	"github.com/formwork-go/formwork/i18n"
)

// ArraySchema validates ordered sequences, recursing into every element with
// an index-addressed path. Fluent calls return new schemas.
type ArraySchema[E any] struct {
	elem   anyParseFn
	minLen int
	maxLen int
}

// Array returns an array schema with the given element schema.
func Array[E any](elem formwork.Schema[E]) *ArraySchema[E] {
	return &ArraySchema[E]{elem: parseFnOf(elem), minLen: -1, maxLen: -1}
}

func (a *ArraySchema[E]) clone() *ArraySchema[E] {
	c := *a
	return &c
}

// Min sets the minimum length.
func (a *ArraySchema[E]) Min(n int) *ArraySchema[E] {
	c := a.clone()
	c.minLen = n
	return c
}

// Max sets the maximum length.
func (a *ArraySchema[E]) Max(n int) *ArraySchema[E] {
	c := a.clone()
	c.maxLen = n
	return c
}

// Length requires exactly n elements.
func (a *ArraySchema[E]) Length(n int) *ArraySchema[E] {
	c := a.clone()
	c.minLen = n
	c.maxLen = n
	return c
}

func (a *ArraySchema[E]) parse(ctx context.Context, v any, p formwork.Path, depth int) ([]E, formwork.Issues) {
	if iss := checkDepth(ctx, p, depth); iss != nil {
		return nil, iss
	}
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []E:
		// Already-typed slices are accepted for default and re-validation
		// ergonomics.
		items = make([]any, len(t))
		for i := range t {
			items[i] = t[i]
		}
	default:
		return nil, formwork.Issues{typeIssue(p, "array", v)}
	}

	var iss formwork.Issues
	if a.minLen >= 0 && len(items) < a.minLen {
		iss = formwork.AppendIssues(iss, formwork.Issue{
			Path: p, Code: formwork.CodeTooSmall,
			Message:  i18n.T(formwork.CodeTooSmall, nil),
			Expected: fmt.Sprintf("length >= %d", a.minLen),
		})
		if formwork.IsFailFast(ctx) {
			return nil, iss
		}
	}
	if a.maxLen >= 0 && len(items) > a.maxLen {
		iss = formwork.AppendIssues(iss, formwork.Issue{
			Path: p, Code: formwork.CodeTooBig,
			Message:  i18n.T(formwork.CodeTooBig, nil),
			Expected: fmt.Sprintf("length <= %d", a.maxLen),
		})
		if formwork.IsFailFast(ctx) {
			return nil, iss
		}
	}

	out := make([]E, 0, len(items))
	for i, raw := range items {
		ev, ei := a.elem(ctx, raw, p.Index(i), depth+1)
		if len(ei) > 0 {
			iss = formwork.AppendIssues(iss, ei...)
			if formwork.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out = append(out, ev.(E))
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (a *ArraySchema[E]) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	out, iss := a.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (a *ArraySchema[E]) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[[]E] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	out, iss := a.parse(ctx, v, nil, 0)
	return resultOf(out, iss)
}

func (a *ArraySchema[E]) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[[]E] {
	return formwork.Safe(a.Parse(ctx, v, opts...))
}
