package dsl

import (
	"context"

	formwork "github.com/formwork-go/formwork"
	"github.com/formwork-go/formwork/i18n"
	"github.com/formwork-go/formwork/internal/dynval"
)

// anyParseFn validates a dynamic value located at path p, depth levels deep
// into the traversal, and returns the typed value boxed as any together with
// any issues collected.
type anyParseFn func(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues)

// anyParser is implemented by every schema kind in this package. It is the
// internal recursion seam: children receive the accumulated path and depth
// so issues come out already addressed.
type anyParser interface {
	parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues)
}

// AnySchema is anything usable as an object field: every schema built by this
// package, and AnyAdapter for externally wrapped schemas.
type AnySchema interface {
	parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues)
}

// adapterProvider lets wrapper schemas (Optional/Nullable/Default) surface
// their presence semantics to the object traversal as adapter flags.
type adapterProvider interface {
	fieldAdapter() AnyAdapter
}

// parseFnOf extracts the internal recursion entry from a schema. Foreign
// Schema implementations (built outside this package) fall back to their
// public Parse, with issues rebased under the current path.
func parseFnOf[T any](s formwork.Schema[T]) anyParseFn {
	if ap, ok := any(s).(anyParser); ok {
		return ap.parseAny
	}
	return func(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
		r := s.Parse(ctx, v)
		if r.IsErr() {
			return nil, rebaseIssues(p, r.Err().Issues)
		}
		return r.Value(), nil
	}
}

// rebaseIssues prefixes every issue path with base.
func rebaseIssues(base formwork.Path, iss []formwork.Issue) formwork.Issues {
	out := make(formwork.Issues, 0, len(iss))
	for _, it := range iss {
		np := make(formwork.Path, 0, len(base)+len(it.Path))
		np = append(np, base...)
		np = append(np, it.Path...)
		it.Path = np
		out = append(out, it)
	}
	return out
}

// checkDepth trips the recursion guard. The offending node reports one
// max_depth_exceeded issue and the traversal does not descend further.
func checkDepth(ctx context.Context, p formwork.Path, depth int) formwork.Issues {
	if depth > formwork.MaxDepthFrom(ctx) {
		return formwork.Issues{{
			Path:    p,
			Code:    formwork.CodeMaxDepthExceeded,
			Message: i18n.T(formwork.CodeMaxDepthExceeded, nil),
		}}
	}
	return nil
}

func typeIssue(p formwork.Path, expected string, v any) formwork.Issue {
	return formwork.Issue{
		Path:     p,
		Code:     formwork.CodeInvalidType,
		Message:  i18n.T(formwork.CodeInvalidType, nil),
		Expected: expected,
		Received: dynval.Describe(v),
	}
}

func customIssue(p formwork.Path, msg string) formwork.Issue {
	if msg == "" {
		msg = i18n.T(formwork.CodeCustom, nil)
	}
	return formwork.Issue{Path: p, Code: formwork.CodeCustom, Message: msg}
}

// resultOf closes one validation call: a non-empty issue list becomes a
// single aggregated ValidationError.
func resultOf[T any](v T, iss formwork.Issues) formwork.Result[T] {
	if len(iss) > 0 {
		return formwork.Err[T](formwork.NewValidationError(iss))
	}
	return formwork.Ok(v)
}
