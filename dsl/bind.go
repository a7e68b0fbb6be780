package dsl

import (
	"context"
	"reflect"
	"strings"

	formwork "github.com/formwork-go/formwork"
	"github.com/formwork-go/formwork/i18n"
)

// Bind builds the object schema and binds it to struct type T. Struct fields
// are matched to declared keys by `json` tag, falling back to the field name.
// Validation still runs over the dynamic map; the struct is filled only from
// values that already passed.
func Bind[T any](sh ObjectShape) (formwork.Schema[T], error) {
	s, err := sh.shape().Build()
	if err != nil {
		return nil, err
	}
	return newBoundSchema[T](s)
}

// MustBind is Bind with a panic on construction error.
func MustBind[T any](sh ObjectShape) formwork.Schema[T] {
	s, err := Bind[T](sh)
	if err != nil {
		panic(err)
	}
	return s
}

type boundSchema[T any] struct {
	inner      *ObjectSchema
	t          reflect.Type
	fieldByKey map[string]int
}

func newBoundSchema[T any](inner *ObjectSchema) (*boundSchema[T], error) {
	var t T
	rt := reflect.TypeOf(t)
	if rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, formwork.Issues{{
			Code:    formwork.CodeCustom,
			Message: "Bind[T] requires struct T",
		}}
	}
	idxByName := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := structKey(sf)
		if name == "-" || name == "" {
			continue
		}
		idxByName[name] = i
	}
	fm := make(map[string]int, len(inner.fields))
	for _, fe := range inner.fields {
		if i, ok := idxByName[fe.name]; ok {
			fm[fe.name] = i
		}
	}
	return &boundSchema[T]{inner: inner, t: rt, fieldByKey: fm}, nil
}

// structKey resolves the wire name of a struct field: the json tag when
// present, the field name otherwise.
func structKey(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name
	}
	return name
}

func (s *boundSchema[T]) parse(ctx context.Context, v any, p formwork.Path, depth int) (T, formwork.Issues) {
	var zero T
	m, iss := s.inner.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return zero, iss
	}
	rv := reflect.New(s.t).Elem()
	for key, idx := range s.fieldByKey {
		val, ok := m[key]
		if !ok {
			continue
		}
		fv := rv.Field(idx)
		if val == nil {
			switch fv.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
				fv.Set(reflect.Zero(fv.Type()))
			}
			continue
		}
		vv := reflect.ValueOf(val)
		switch {
		case vv.Type().AssignableTo(fv.Type()):
			fv.Set(vv)
		case vv.Type().ConvertibleTo(fv.Type()):
			fv.Set(vv.Convert(fv.Type()))
		case fv.Kind() == reflect.Pointer && vv.Type().AssignableTo(fv.Type().Elem()):
			pv := reflect.New(fv.Type().Elem())
			pv.Elem().Set(vv)
			fv.Set(pv)
		default:
			return zero, formwork.Issues{{
				Path:     p.Field(key),
				Code:     formwork.CodeInvalidType,
				Message:  i18n.T(formwork.CodeInvalidType, nil),
				Expected: fv.Type().String(),
				Received: vv.Type().String(),
			}}
		}
	}
	return rv.Interface().(T), nil
}

func (s *boundSchema[T]) parseAny(ctx context.Context, v any, p formwork.Path, depth int) (any, formwork.Issues) {
	tv, iss := s.parse(ctx, v, p, depth)
	if len(iss) > 0 {
		return nil, iss
	}
	return tv, nil
}

func (s *boundSchema[T]) Parse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.Result[T] {
	ctx = formwork.ContextWithOpts(ctx, opts)
	tv, iss := s.parse(ctx, v, nil, 0)
	return resultOf(tv, iss)
}

func (s *boundSchema[T]) SafeParse(ctx context.Context, v any, opts ...formwork.ParseOpt) formwork.SafeResult[T] {
	return formwork.Safe(s.Parse(ctx, v, opts...))
}
