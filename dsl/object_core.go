package dsl

import (
	"context"
	"sort"

	formwork "github.com/formwork-go/formwork"
	"github.com/formwork-go/formwork/i18n"
)

// ObjectSchema validates key-value structures field by field. It is
// immutable once built; composition operators derive new schemas that share
// the field adapters by reference.
type ObjectSchema struct {
	fields  []fieldEntry // declaration order
	index   map[string]int
	policy  formwork.UnknownPolicy
	refines []objRefine
}

var _ formwork.Schema[map[string]any] = (*ObjectSchema)(nil)

// Keys returns the declared field names in declaration order.
func (o *ObjectSchema) Keys() []string {
	out := make([]string, len(o.fields))
	for i, fe := range o.fields {
		out[i] = fe.name
	}
	return out
}

// Policy returns the unknown-key policy the schema was built with.
func (o *ObjectSchema) Policy() formwork.UnknownPolicy { return o.policy }

// parseField handles one declared field: default substitution, optional and
// nullable short-circuits, then recursion into the field schema.
func (o *ObjectSchema) parseField(ctx context.Context, fe fieldEntry, src, out map[string]any, p formwork.Path, depth int) formwork.Issues {
	fp := p.Field(fe.name)
	val, exists := src[fe.name]
	switch {
	case !exists && fe.ad.hasDefault:
		// The default is parsed as if it had been supplied, not treated as
		// missing: constraints and transforms still apply to it.
		dv, iss := fe.ad.parse(ctx, fe.ad.defaultVal, fp, depth+1)
		if len(iss) > 0 {
			return iss
		}
		out[fe.name] = dv
	case !exists:
		if fe.ad.optional {
			return nil
		}
		return formwork.Issues{{
			Path:     fp,
			Code:     formwork.CodeInvalidType,
			Message:  i18n.T(formwork.CodeInvalidType, nil),
			Received: "undefined",
		}}
	case val == nil && fe.ad.nullable:
		out[fe.name] = nil
	default:
		pv, iss := fe.ad.parse(ctx, val, fp, depth+1)
		if len(iss) > 0 {
			return iss
		}
		out[fe.name] = pv
	}
	return nil
}

// applyUnknown enforces the unknown-key policy. Undeclared keys are visited
// in sorted order so output is deterministic regardless of map iteration.
func (o *ObjectSchema) applyUnknown(src, out map[string]any, p formwork.Path) formwork.Issues {
	var unknown []string
	for k := range src {
		if _, known := o.index[k]; !known {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	var iss formwork.Issues
	for _, k := range unknown {
		switch o.policy {
		case formwork.UnknownStrict:
			iss = formwork.AppendIssues(iss, formwork.Issue{
				Path:    p.Field(k),
				Code:    formwork.CodeUnrecognizedKey,
				Message: i18n.T(formwork.CodeUnrecognizedKey, nil),
			})
		case formwork.UnknownStrip:
			// drop
		case formwork.UnknownPassthrough:
			out[k] = src[k]
		}
	}
	return iss
}

func (o *ObjectSchema) parse(ctx context.Context, v any, p formwork.Path, depth int) (map[string]any, formwork.Issues) {
	if iss := checkDepth(ctx, p, depth); iss != nil {
		return nil, iss
	}
	src, ok := v.(map[string]any)
	if !ok {
		return nil, formwork.Issues{typeIssue(p, "object", v)}
	}
	out := make(map[string]any, len(o.fields))
	var iss formwork.Issues
	for _, fe := range o.fields {
		if fi := o.parseField(ctx, fe, src, out, p, depth); len(fi) > 0 {
			iss = formwork.AppendIssues(iss, fi...)
			if formwork.IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	if ui := o.applyUnknown(src, out, p); len(ui) > 0 {
		iss = formwork.AppendIssues(iss, ui...)
		if formwork.IsFailFast(ctx) {
			return nil, iss
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	// Refinements run only on structurally valid objects.
	for _, r := range o.refines {
		if err := r.fn(ctx, out); err != nil {
			if child, ok := formwork.AsIssues(err); ok {
				iss = formwork.AppendIssues(iss, rebaseIssues(p, child)...)
			} else {
				iss = formwork.AppendIssues(iss, customIssue(p, err.Error()))
			}
			if formwork.IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (o *ObjectSchema) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	m, iss := o.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return m, nil
}

func (o *ObjectSchema) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[map[string]any] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	m, iss := o.parse(ctx, v, nil, 0)
	return resultOf(m, iss)
}

func (o *ObjectSchema) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[map[string]any] {
	return formwork.Safe(o.Parse(ctx, v, opts...))
}
