package dsl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	formwork "github.com/formwork-go/formwork"
)

func TestArray_Success(t *testing.T) {
	ctx := context.Background()
	res := Array[float64](Number()).Parse(ctx, []any{float64(1), float64(2)})
	require.True(t, res.IsOk())
	require.Equal(t, []float64{1, 2}, res.Value())
}

func TestArray_ElementIssueCarriesIndex(t *testing.T) {
	ctx := context.Background()
	res := Array[float64](Number()).Parse(ctx, []any{float64(1), "x", float64(3)})
	require.True(t, res.IsErr())
	iss := res.Err().Issues
	require.Len(t, iss, 1)
	require.Equal(t, "/1", iss[0].Path.String())
	require.Equal(t, formwork.CodeInvalidType, iss[0].Code)
}

func TestArray_CollectsAcrossElements(t *testing.T) {
	ctx := context.Background()
	res := Array[float64](Number().Min(0)).Parse(ctx, []any{float64(-1), "x"})
	require.True(t, res.IsErr())
	iss := res.Err().Issues
	require.Len(t, iss, 2)
	require.Equal(t, "/0", iss[0].Path.String())
	require.Equal(t, "/1", iss[1].Path.String())
}

func TestArray_Bounds(t *testing.T) {
	ctx := context.Background()
	s := Array[string](String()).Min(1).Max(2)
	require.Equal(t, formwork.CodeTooSmall, s.Parse(ctx, []any{}).Err().First().Code)
	require.Equal(t, formwork.CodeTooBig, s.Parse(ctx, []any{"a", "b", "c"}).Err().First().Code)
	require.True(t, s.Parse(ctx, []any{"a"}).IsOk())

	exact := Array[string](String()).Length(2)
	require.True(t, exact.Parse(ctx, []any{"a", "b"}).IsOk())
	require.True(t, exact.Parse(ctx, []any{"a"}).IsErr())
}

func TestArray_TypeMismatch(t *testing.T) {
	ctx := context.Background()
	res := Array[string](String()).Parse(ctx, map[string]any{})
	require.True(t, res.IsErr())
	require.Equal(t, "array", res.Err().First().Expected)
}

func TestArray_OfObjects(t *testing.T) {
	ctx := context.Background()
	item := Object().
		Field("sku", String().NonEmpty()).
		Field("qty", Number().Int().Min(1)).
		UnknownStrict().
		MustBuild()
	s := Array[map[string]any](item)

	res := s.Parse(ctx, []any{
		map[string]any{"sku": "a1", "qty": float64(2)},
		map[string]any{"sku": "", "qty": float64(0)},
	})
	require.True(t, res.IsErr())
	iss := res.Err().Issues
	require.Len(t, iss, 2)
	require.Equal(t, "/1/sku", iss[0].Path.String())
	require.Equal(t, "/1/qty", iss[1].Path.String())
}

func TestRecord_Success(t *testing.T) {
	ctx := context.Background()
	res := Record[float64](Number()).Parse(ctx, map[string]any{"a": float64(1), "b": float64(2)})
	require.True(t, res.IsOk())
	require.Equal(t, map[string]float64{"a": 1, "b": 2}, res.Value())
}

func TestRecord_ValueIssuesSortedByKey(t *testing.T) {
	ctx := context.Background()
	res := Record[float64](Number()).Parse(ctx, map[string]any{"z": "x", "a": "y"})
	require.True(t, res.IsErr())
	iss := res.Err().Issues
	require.Len(t, iss, 2)
	require.Equal(t, "/a", iss[0].Path.String())
	require.Equal(t, "/z", iss[1].Path.String())
}

func TestRecord_KeyBounds(t *testing.T) {
	ctx := context.Background()
	s := Record[string](String()).MinKeys(1).MaxKeys(2)
	require.Equal(t, formwork.CodeTooSmall, s.Parse(ctx, map[string]any{}).Err().First().Code)
	require.True(t, s.Parse(ctx, map[string]any{"a": "x"}).IsOk())
	require.Equal(t, formwork.CodeTooBig,
		s.Parse(ctx, map[string]any{"a": "x", "b": "y", "c": "z"}).Err().First().Code)
}

func TestRecord_TypeMismatch(t *testing.T) {
	ctx := context.Background()
	res := Record[string](String()).Parse(ctx, []any{})
	require.True(t, res.IsErr())
	require.Equal(t, "object", res.Err().First().Expected)
}
