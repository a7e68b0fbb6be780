package dsl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	formwork "github.com/formwork-go/formwork"
)

func userSchema() *ObjectSchema {
	return Object().
		Field("name", String().NonEmpty()).
		Field("age", Number().Int().Min(0)).
		UnknownStrict().
		MustBuild()
}

func TestObject_Success(t *testing.T) {
	ctx := context.Background()
	res := userSchema().Parse(ctx, map[string]any{"name": "Alice", "age": float64(30)})
	require.True(t, res.IsOk())
	require.Equal(t, map[string]any{"name": "Alice", "age": float64(30)}, res.Value())
}

func TestObject_TypeMismatchAtRoot(t *testing.T) {
	ctx := context.Background()
	res := userSchema().Parse(ctx, []any{1, 2})
	require.True(t, res.IsErr())
	first := res.Err().First()
	require.Equal(t, formwork.CodeInvalidType, first.Code)
	require.Equal(t, "object", first.Expected)
	require.Equal(t, "array", first.Received)
}

func TestObject_CollectsEveryFieldIssue(t *testing.T) {
	ctx := context.Background()
	res := userSchema().Parse(ctx, map[string]any{"name": "", "age": float64(-1)})
	require.True(t, res.IsErr())
	iss := res.Err().Issues
	require.Len(t, iss, 2)
	require.Equal(t, "/name", iss[0].Path.String())
	require.Equal(t, "/age", iss[1].Path.String())
}

func TestObject_IssueOrderFollowsDeclaration(t *testing.T) {
	ctx := context.Background()
	s := Object().
		Field("zebra", Number()).
		Field("apple", Number()).
		UnknownStrict().
		MustBuild()
	res := s.Parse(ctx, map[string]any{"zebra": "x", "apple": "y"})
	require.True(t, res.IsErr())
	iss := res.Err().Issues
	require.Equal(t, "/zebra", iss[0].Path.String())
	require.Equal(t, "/apple", iss[1].Path.String())
}

func TestObject_MissingRequiredField(t *testing.T) {
	ctx := context.Background()
	res := userSchema().Parse(ctx, map[string]any{"name": "Alice"})
	require.True(t, res.IsErr())
	first := res.Err().First()
	require.Equal(t, formwork.CodeInvalidType, first.Code)
	require.Equal(t, "undefined", first.Received)
	require.Equal(t, "/age", first.Path.String())
}

func TestObject_NestedPaths(t *testing.T) {
	ctx := context.Background()
	s := Object().
		Field("user", Object().
			Field("email", String().Email()).
			UnknownStrict().
			MustBuild()).
		UnknownStrict().
		MustBuild()
	res := s.Parse(ctx, map[string]any{"user": map[string]any{"email": "bad"}})
	require.True(t, res.IsErr())
	first := res.Err().First()
	require.Equal(t, "/user/email", first.Path.String())
	require.Equal(t, formwork.CodeInvalidEmail, first.Code)
}

func TestObject_UnknownStrict(t *testing.T) {
	ctx := context.Background()
	res := userSchema().Parse(ctx, map[string]any{
		"name": "Alice", "age": float64(1), "zz": 1, "aa": 2,
	})
	require.True(t, res.IsErr())
	iss := res.Err().Issues
	require.Len(t, iss, 2)
	// Unknown keys report in sorted order for determinism.
	require.Equal(t, "/aa", iss[0].Path.String())
	require.Equal(t, "/zz", iss[1].Path.String())
	require.Equal(t, formwork.CodeUnrecognizedKey, iss[0].Code)
}

func TestObject_UnknownStrip(t *testing.T) {
	ctx := context.Background()
	s := Object().
		Field("name", String()).
		UnknownStrip().
		MustBuild()
	res := s.Parse(ctx, map[string]any{"name": "A", "extra": 1})
	require.True(t, res.IsOk())
	require.Equal(t, map[string]any{"name": "A"}, res.Value())
}

func TestObject_UnknownPassthrough(t *testing.T) {
	ctx := context.Background()
	s := Object().
		Field("name", String()).
		UnknownPassthrough().
		MustBuild()
	res := s.Parse(ctx, map[string]any{"name": "A", "extra": 1})
	require.True(t, res.IsOk())
	require.Equal(t, map[string]any{"name": "A", "extra": 1}, res.Value())
}

func TestObject_BuildRequiresPolicy(t *testing.T) {
	_, err := Object().Field("name", String()).Build()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown-key policy")

	require.Panics(t, func() {
		Object().Field("name", String()).MustBuild()
	})
}

func TestObject_DuplicateFieldIsBuildError(t *testing.T) {
	_, err := Object().
		Field("a", String()).
		Field("a", Number()).
		UnknownStrict().
		Build()
	require.Error(t, err)
	require.Contains(t, err.Error(), "declared twice")
}

func TestObject_OptionalField(t *testing.T) {
	ctx := context.Background()
	s := Object().
		Field("name", String()).
		Field("nick", String()).Optional().
		UnknownStrict().
		MustBuild()
	res := s.Parse(ctx, map[string]any{"name": "A"})
	require.True(t, res.IsOk())
	_, present := res.Value()["nick"]
	require.False(t, present, "absent optional field must stay absent")
}

func TestObject_NullableField(t *testing.T) {
	ctx := context.Background()
	s := Object().
		Field("note", String()).Nullable().
		UnknownStrict().
		MustBuild()

	res := s.Parse(ctx, map[string]any{"note": nil})
	require.True(t, res.IsOk())
	v, present := res.Value()["note"]
	require.True(t, present)
	require.Nil(t, v)

	// Null is not the same as absent.
	require.True(t, s.Parse(ctx, map[string]any{}).IsErr())
}

func TestObject_DefaultAppliedAndValidated(t *testing.T) {
	ctx := context.Background()
	s := Object().
		Field("retries", Number().Int().Min(0)).Default(float64(5)).
		UnknownStrict().
		MustBuild()

	res := s.Parse(ctx, map[string]any{})
	require.True(t, res.IsOk())
	require.Equal(t, float64(5), res.Value()["retries"])

	// A supplied value still wins over the default.
	res = s.Parse(ctx, map[string]any{"retries": float64(2)})
	require.Equal(t, float64(2), res.Value()["retries"])

	// A default violating the field schema surfaces as a field issue.
	bad := Object().
		Field("retries", Number().Min(0)).Default(float64(-1)).
		UnknownStrict().
		MustBuild()
	badRes := bad.Parse(ctx, map[string]any{})
	require.True(t, badRes.IsErr())
	require.Equal(t, "/retries", badRes.Err().First().Path.String())
}

func TestObject_RefineRunsOnlyWhenStructurallyValid(t *testing.T) {
	ctx := context.Background()
	called := false
	s := Object().
		Field("min", Number()).
		Field("max", Number()).
		UnknownStrict().
		Refine("range", func(_ context.Context, m map[string]any) error {
			called = true
			if m["min"].(float64) > m["max"].(float64) {
				return errors.New("min must not exceed max")
			}
			return nil
		}).
		MustBuild()

	res := s.Parse(ctx, map[string]any{"min": "x", "max": float64(1)})
	require.True(t, res.IsErr())
	require.False(t, called, "refine must not observe invalid objects")

	res = s.Parse(ctx, map[string]any{"min": float64(5), "max": float64(1)})
	require.True(t, res.IsErr())
	require.True(t, called)
	first := res.Err().First()
	require.Equal(t, formwork.CodeCustom, first.Code)
	require.Equal(t, "min must not exceed max", first.Message)
}

func TestObject_RefineIssuesKeepTheirPaths(t *testing.T) {
	ctx := context.Background()
	s := Object().
		Field("a", Number()).
		UnknownStrict().
		Refine("branded", func(_ context.Context, m map[string]any) error {
			return formwork.Issues{{
				Path: formwork.Path{}.Field("a"),
				Code: formwork.CodeCustom, Message: "branded",
			}}
		}).
		MustBuild()
	res := s.Parse(ctx, map[string]any{"a": float64(1)})
	require.True(t, res.IsErr())
	require.Equal(t, "/a", res.Err().First().Path.String())
}

func TestObject_FailFast(t *testing.T) {
	ctx := context.Background()
	res := userSchema().Parse(ctx,
		map[string]any{"name": "", "age": float64(-1)},
		formwork.ParseOpt{FailFast: true})
	require.True(t, res.IsErr())
	require.Len(t, res.Err().Issues, 1)
	require.Equal(t, "/name", res.Err().First().Path.String())
}

func TestObject_Keys(t *testing.T) {
	require.Equal(t, []string{"name", "age"}, userSchema().Keys())
	require.Equal(t, formwork.UnknownStrict, userSchema().Policy())
}
