package dsl

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	formwork "github.com/formwork-go/formwork"
	"github.com/formwork-go/formwork/i18n"
)

// stringCheck is one entry in a string schema's flat constraint list. It can
// normalize the value (trim, case) and/or fail it. Checks flagged
// onlyIfValid (refine/transform) are skipped once earlier checks failed, so
// user code never observes invalid data.
type stringCheck struct {
	onlyIfValid bool
	fn          func(p formwork.Path, v string) (string, *formwork.Issue)
}

// StringSchema validates strings. It is a persistent builder: every fluent
// call returns a new schema with an appended check, leaving the receiver
// untouched.
type StringSchema struct {
	checks []stringCheck
}

var _ formwork.Schema[string] = (*StringSchema)(nil)

// String returns the minimal string schema.
func String() *StringSchema { return &StringSchema{} }

func (s *StringSchema) with(c stringCheck) *StringSchema {
	checks := make([]stringCheck, len(s.checks), len(s.checks)+1)
	copy(checks, s.checks)
	return &StringSchema{checks: append(checks, c)}
}

// Min requires at least n runes.
func (s *StringSchema) Min(n int) *StringSchema {
	return s.with(stringCheck{fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		if utf8.RuneCountInString(v) < n {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeTooSmall, Message: i18n.T(formwork.CodeTooSmall, nil), Expected: fmt.Sprintf("length >= %d", n)}
		}
		return v, nil
	}})
}

// Max allows at most n runes.
func (s *StringSchema) Max(n int) *StringSchema {
	return s.with(stringCheck{fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		if utf8.RuneCountInString(v) > n {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeTooBig, Message: i18n.T(formwork.CodeTooBig, nil), Expected: fmt.Sprintf("length <= %d", n)}
		}
		return v, nil
	}})
}

// NonEmpty requires at least one rune.
func (s *StringSchema) NonEmpty() *StringSchema { return s.Min(1) }

// Pattern requires the value to match expr. An invalid expression is a
// schema-construction bug and panics immediately rather than surfacing at
// validation time.
func (s *StringSchema) Pattern(expr string) *StringSchema {
	re := regexp.MustCompile(expr)
	return s.with(stringCheck{fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		if !re.MatchString(v) {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeInvalidFormat, Message: i18n.T(formwork.CodeInvalidFormat, nil), Expected: "string matching " + expr}
		}
		return v, nil
	}})
}

// Email requires an RFC 5322 address.
func (s *StringSchema) Email() *StringSchema {
	return s.with(stringCheck{fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		if _, err := mail.ParseAddress(v); err != nil {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeInvalidEmail, Message: i18n.T(formwork.CodeInvalidEmail, nil), Expected: "email"}
		}
		return v, nil
	}})
}

// UUID requires an RFC 4122 UUID.
func (s *StringSchema) UUID() *StringSchema {
	return s.with(stringCheck{fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		if _, err := uuid.Parse(v); err != nil {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeInvalidUUID, Message: i18n.T(formwork.CodeInvalidUUID, nil), Expected: "uuid"}
		}
		return v, nil
	}})
}

// URL requires an absolute URL with a scheme and host.
func (s *StringSchema) URL() *StringSchema {
	return s.with(stringCheck{fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return v, &formwork.Issue{Path: p, Code: formwork.CodeInvalidFormat, Message: i18n.T(formwork.CodeInvalidFormat, nil), Expected: "url"}
		}
		return v, nil
	}})
}

// Trim normalizes by stripping leading and trailing whitespace before the
// checks that follow it in the chain.
func (s *StringSchema) Trim() *StringSchema {
	return s.with(stringCheck{fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		return strings.TrimSpace(v), nil
	}})
}

// Lower normalizes to lower case using locale-neutral case mapping.
func (s *StringSchema) Lower() *StringSchema {
	return s.with(stringCheck{fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		return cases.Lower(language.Und).String(v), nil
	}})
}

// Upper normalizes to upper case using locale-neutral case mapping.
func (s *StringSchema) Upper() *StringSchema {
	return s.with(stringCheck{fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		return cases.Upper(language.Und).String(v), nil
	}})
}

// Refine adds a custom predicate. It runs only when every preceding check
// passed; failure yields one custom issue with msg.
func (s *StringSchema) Refine(pred func(string) bool, msg string) *StringSchema {
	return s.with(stringCheck{onlyIfValid: true, fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		if !pred(v) {
			ci := customIssue(p, msg)
			return v, &ci
		}
		return v, nil
	}})
}

// Transform applies fn to the validated value. It never observes invalid
// data.
func (s *StringSchema) Transform(fn func(string) string) *StringSchema {
	return s.with(stringCheck{onlyIfValid: true, fn: func(p formwork.Path, v string) (string, *formwork.Issue) {
		return fn(v), nil
	}})
}

func (s *StringSchema) parse(ctx context.Context, v any, p formwork.Path, depth int) (string, formwork.Issues) {
	str, ok := v.(string)
	if !ok {
		return "", formwork.Issues{typeIssue(p, "string", v)}
	}
	var iss formwork.Issues
	for _, c := range s.checks {
		if c.onlyIfValid && len(iss) > 0 {
			continue
		}
		nv, bad := c.fn(p, str)
		if bad != nil {
			iss = formwork.AppendIssues(iss, *bad)
			if formwork.IsFailFast(ctx) {
				return "", iss
			}
			continue
		}
		str = nv
	}
	if len(iss) > 0 {
		return "", iss
	}
	return str, nil
}

func (s *StringSchema) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	sv, iss := s.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return sv, nil
}

func (s *StringSchema) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[string] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	sv, iss := s.parse(ctx, v, nil, 0)
	return resultOf(sv, iss)
}

func (s *StringSchema) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[string] {
	return formwork.Safe(s.Parse(ctx, v, opts...))
}
