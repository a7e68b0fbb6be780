package dsl

import (
	"context"

	formwork "github.com/formwork-go/formwork"
)

// BoolSchema validates booleans.
type BoolSchema struct{}

var _ formwork.Schema[bool] = (*BoolSchema)(nil)

// Bool returns the minimal bool schema.
func Bool() *BoolSchema { return &BoolSchema{} }

func (s *BoolSchema) parse(ctx context.Context, v any, p formwork.Path, depth int) (bool, formwork.Issues) {
	b, ok := v.(bool)
	if !ok {
		return false, formwork.Issues{typeIssue(p, "boolean", v)}
	}
	return b, nil
}

func (s *BoolSchema) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	b, iss := s.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return b, nil
}

func (s *BoolSchema) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[bool] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	b, iss := s.parse(ctx, v, nil, 0)
	return resultOf(b, iss)
}

func (s *BoolSchema) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[bool] {
	return formwork.Safe(s.Parse(ctx, v, opts...))
}
