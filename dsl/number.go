package dsl

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	formwork "github.com/formwork-go/formwork"
	"github.com/formwork-go/formwork/i18n"
)

// numberCheck is one entry in a number schema's flat constraint list.
type numberCheck struct {
	onlyIfValid bool
	fn          func(p formwork.Path, v float64) (float64, *formwork.Issue)
}

// NumberSchema validates numbers into float64. On the input side it accepts
// float64, every Go integer width, and json.Number (the shape a
// number-preserving JSON decode produces). Fluent calls return new schemas.
type NumberSchema struct {
	checks []numberCheck
}

var _ formwork.Schema[float64] = (*NumberSchema)(nil)

// Number returns the minimal number schema.
func Number() *NumberSchema { return &NumberSchema{} }

func (s *NumberSchema) with(c numberCheck) *NumberSchema {
	checks := make([]numberCheck, len(s.checks), len(s.checks)+1)
	copy(checks, s.checks)
	return &NumberSchema{checks: append(checks, c)}
}

// Min requires v >= n.
func (s *NumberSchema) Min(n float64) *NumberSchema {
	return s.with(numberCheck{fn: func(p formwork.Path, v float64) (float64, *formwork.Issue) {
		if v < n {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeTooSmall, Message: i18n.T(formwork.CodeTooSmall, nil), Expected: fmt.Sprintf(">= %v", n)}
		}
		return v, nil
	}})
}

// Max requires v <= n.
func (s *NumberSchema) Max(n float64) *NumberSchema {
	return s.with(numberCheck{fn: func(p formwork.Path, v float64) (float64, *formwork.Issue) {
		if v > n {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeTooBig, Message: i18n.T(formwork.CodeTooBig, nil), Expected: fmt.Sprintf("<= %v", n)}
		}
		return v, nil
	}})
}

// Gt requires v > n (exclusive).
func (s *NumberSchema) Gt(n float64) *NumberSchema {
	return s.with(numberCheck{fn: func(p formwork.Path, v float64) (float64, *formwork.Issue) {
		if v <= n {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeTooSmall, Message: i18n.T(formwork.CodeTooSmall, nil), Expected: fmt.Sprintf("> %v", n)}
		}
		return v, nil
	}})
}

// Lt requires v < n (exclusive).
func (s *NumberSchema) Lt(n float64) *NumberSchema {
	return s.with(numberCheck{fn: func(p formwork.Path, v float64) (float64, *formwork.Issue) {
		if v >= n {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeTooBig, Message: i18n.T(formwork.CodeTooBig, nil), Expected: fmt.Sprintf("< %v", n)}
		}
		return v, nil
	}})
}

// Int requires a whole number.
func (s *NumberSchema) Int() *NumberSchema {
	return s.with(numberCheck{fn: func(p formwork.Path, v float64) (float64, *formwork.Issue) {
		if math.Trunc(v) != v {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeInvalidType, Message: i18n.T(formwork.CodeInvalidType, nil), Expected: "integer", Received: "number"}
		}
		return v, nil
	}})
}

// Positive requires v > 0.
func (s *NumberSchema) Positive() *NumberSchema { return s.Gt(0) }

// NonNegative requires v >= 0.
func (s *NumberSchema) NonNegative() *NumberSchema { return s.Min(0) }

// Finite rejects NaN and infinities.
func (s *NumberSchema) Finite() *NumberSchema {
	return s.with(numberCheck{fn: func(p formwork.Path, v float64) (float64, *formwork.Issue) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeInvalidFormat, Message: i18n.T(formwork.CodeInvalidFormat, nil), Expected: "finite number"}
		}
		return v, nil
	}})
}

// MultipleOf requires v to be an exact multiple of n.
func (s *NumberSchema) MultipleOf(n float64) *NumberSchema {
	return s.with(numberCheck{fn: func(p formwork.Path, v float64) (float64, *formwork.Issue) {
		if n != 0 && math.Mod(v, n) != 0 {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeInvalidFormat, Message: i18n.T(formwork.CodeInvalidFormat, nil), Expected: fmt.Sprintf("multiple of %v", n)}
		}
		return v, nil
	}})
}

// Refine adds a custom predicate evaluated only when every preceding check
// passed.
func (s *NumberSchema) Refine(pred func(float64) bool, msg string) *NumberSchema {
	return s.with(numberCheck{onlyIfValid: true, fn: func(p formwork.Path, v float64) (float64, *formwork.Issue) {
		if !pred(v) {
			ci := customIssue(p, msg)
			return v, &ci
		}
		return v, nil
	}})
}

// Transform applies fn to the validated value.
func (s *NumberSchema) Transform(fn func(float64) float64) *NumberSchema {
	return s.with(numberCheck{onlyIfValid: true, fn: func(p formwork.Path, v float64) (float64, *formwork.Issue) {
		return fn(v), nil
	}})
}

// toFloat narrows the dynamic number representations this engine accepts.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (s *NumberSchema) parse(ctx context.Context, v any, p formwork.Path, depth int) (float64, formwork.Issues) {
	f, ok := toFloat(v)
	if !ok {
		return 0, formwork.Issues{typeIssue(p, "number", v)}
	}
	var iss formwork.Issues
	for _, c := range s.checks {
		if c.onlyIfValid && len(iss) > 0 {
			continue
		}
		nv, bad := c.fn(p, f)
		if bad != nil {
			iss = formwork.AppendIssues(iss, *bad)
			if formwork.IsFailFast(ctx) {
				return 0, iss
			}
			continue
		}
		f = nv
	}
	if len(iss) > 0 {
		return 0, iss
	}
	return f, nil
}

func (s *NumberSchema) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	f, iss := s.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return f, nil
}

func (s *NumberSchema) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[float64] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	f, iss := s.parse(ctx, v, nil, 0)
	return resultOf(f, iss)
}

func (s *NumberSchema) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[float64] {
	return formwork.Safe(s.Parse(ctx, v, opts...))
}
