package dsl

import (
	"context"
	"fmt"
	"strings"

	formwork "github.com/formwork-go/formwork"
	"github.com/formwork-go/formwork/i18n"
	"github.com/formwork-go/formwork/internal/dynval"
)

// LiteralSchema accepts exactly one value. Numeric literals compare by value,
// so a json.Number or int input can satisfy a float64 literal.
type LiteralSchema[T comparable] struct {
	want T
}

// Literal returns a schema matching exactly want.
func Literal[T comparable](want T) *LiteralSchema[T] {
	return &LiteralSchema[T]{want: want}
}

func (s *LiteralSchema[T]) parse(ctx context.Context, v any, p formwork.Path, depth int) (T, formwork.Issues) {
	if tv, ok := v.(T); ok && tv == s.want {
		return tv, nil
	}
	if fw, okw := toFloat(any(s.want)); okw {
		if fv, okv := toFloat(v); okv && fv == fw {
			return s.want, nil
		}
	}
	var zero T
	return zero, formwork.Issues{{
		Path:     p,
		Code:     formwork.CodeInvalidLiteral,
		Message:  i18n.T(formwork.CodeInvalidLiteral, nil),
		Expected: fmt.Sprintf("%v", s.want),
		Received: dynval.Describe(v),
	}}
}

func (s *LiteralSchema[T]) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	tv, iss := s.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return tv, nil
}

func (s *LiteralSchema[T]) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[T] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	tv, iss := s.parse(ctx, v, nil, 0)
	return resultOf(tv, iss)
}

func (s *LiteralSchema[T]) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[T] {
	return formwork.Safe(s.Parse(ctx, v, opts...))
}

// EnumSchema accepts one of a closed set of strings.
type EnumSchema struct {
	values []string
}

var _ formwork.Schema[string] = (*EnumSchema)(nil)

// Enum returns a schema accepting any of values.
func Enum(values ...string) *EnumSchema {
	vs := make([]string, len(values))
	copy(vs, values)
	return &EnumSchema{values: vs}
}

func (s *EnumSchema) parse(ctx context.Context, v any, p formwork.Path, depth int) (string, formwork.Issues) {
	sv, ok := v.(string)
	if !ok {
		return "", formwork.Issues{typeIssue(p, "string", v)}
	}
	for _, want := range s.values {
		if sv == want {
			return sv, nil
		}
	}
	return "", formwork.Issues{{
		Path:     p,
		Code:     formwork.CodeInvalidEnum,
		Message:  i18n.T(formwork.CodeInvalidEnum, nil),
		Expected: "one of " + strings.Join(s.values, "|"),
		Received: sv,
	}}
}

func (s *EnumSchema) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	sv, iss := s.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return sv, nil
}

func (s *EnumSchema) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[string] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	sv, iss := s.parse(ctx, v, nil, 0)
	return resultOf(sv, iss)
}

func (s *EnumSchema) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[string] {
	return formwork.Safe(s.Parse(ctx, v, opts...))
}
