package dsl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type account struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Age    float64 `json:"age"`
	Active bool    `json:"active"`
	secret string
}

func accountBuilder() ObjectShape {
	return Object().
		Field("name", String().NonEmpty()).
		Field("email", String().Email()).
		Field("age", Number().Int().Min(0)).Default(float64(18)).
		Field("active", Bool()).Default(true).
		UnknownStrict()
}

func TestBind(t *testing.T) {
	ctx := context.Background()
	s := MustBind[account](accountBuilder())

	res := s.Parse(ctx, map[string]any{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	require.True(t, res.IsOk())
	require.Equal(t, account{Name: "Alice", Email: "alice@example.com", Age: 18, Active: true}, res.Value())
}

func TestBind_ValidationStillApplies(t *testing.T) {
	ctx := context.Background()
	s := MustBind[account](accountBuilder())
	res := s.Parse(ctx, map[string]any{
		"name":  "",
		"email": "nope",
	})
	require.True(t, res.IsErr())
	require.Len(t, res.Err().Issues, 2)
	require.Equal(t, "/name", res.Err().First().Path.String())
}

func TestBind_PointerField(t *testing.T) {
	ctx := context.Background()
	type form struct {
		Note *string `json:"note"`
	}
	s := MustBind[form](Object().
		Field("note", String()).Nullable().
		UnknownStrict())

	res := s.Parse(ctx, map[string]any{"note": "hi"})
	require.True(t, res.IsOk())
	require.NotNil(t, res.Value().Note)
	require.Equal(t, "hi", *res.Value().Note)

	res = s.Parse(ctx, map[string]any{"note": nil})
	require.True(t, res.IsOk())
	require.Nil(t, res.Value().Note)
}

func TestBind_IgnoresUntaggedUnexported(t *testing.T) {
	ctx := context.Background()
	s := MustBind[account](accountBuilder())
	res := s.Parse(ctx, map[string]any{"name": "A", "email": "a@example.com"})
	require.True(t, res.IsOk())
	require.Equal(t, "", res.Value().secret)
}

func TestBind_RequiresStruct(t *testing.T) {
	_, err := Bind[int](accountBuilder())
	require.Error(t, err)
}

func TestBind_BuildErrorPropagates(t *testing.T) {
	_, err := Bind[account](Object().Field("name", String()))
	require.Error(t, err)
	require.Panics(t, func() {
		MustBind[account](Object().Field("name", String()))
	})
}

func TestBind_FieldAdapterComposes(t *testing.T) {
	ctx := context.Background()
	type outer struct {
		User account `json:"user"`
	}
	inner := MustBind[account](accountBuilder())
	s := MustBind[outer](Object().
		Field("user", Adapt[account](inner)).
		UnknownStrict())

	res := s.Parse(ctx, map[string]any{
		"user": map[string]any{"name": "Bob", "email": "bob@example.com"},
	})
	require.True(t, res.IsOk())
	require.Equal(t, "Bob", res.Value().User.Name)

	bad := s.Parse(ctx, map[string]any{
		"user": map[string]any{"name": "Bob", "email": "x"},
	})
	require.True(t, bad.IsErr())
	require.Equal(t, "/user/email", bad.Err().First().Path.String())
}
