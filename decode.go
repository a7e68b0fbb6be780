package formwork

import (
	"bytes"
	"context"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON deserializes JSON bytes and validates the resulting dynamic value
// against s. Numbers are decoded as json.Number so integer precision survives
// the trip into the schema. Malformed text yields an invalid_format issue at
// the root; the engine itself never sees raw text.
func ParseJSON[T any](ctx context.Context, s Schema[T], data []byte, opts ...ParseOpt) Result[T] {
	return ParseJSONReader(ctx, s, bytes.NewReader(data), opts...)
}

// ParseJSONReader is ParseJSON over an io.Reader (HTTP response bodies and
// the like).
func ParseJSONReader[T any](ctx context.Context, s Schema[T], r io.Reader, opts ...ParseOpt) Result[T] {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Err[T](decodeError("malformed JSON: " + err.Error()))
	}
	// One document per body: anything after the first value is an error.
	var trailing any
	if err := dec.Decode(&trailing); err != io.EOF {
		return Err[T](decodeError("malformed JSON: unexpected trailing data"))
	}
	return s.Parse(ctx, v, opts...)
}

// ParseYAML deserializes YAML bytes and validates the resulting dynamic value
// against s.
func ParseYAML[T any](ctx context.Context, s Schema[T], data []byte, opts ...ParseOpt) Result[T] {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Err[T](decodeError("malformed YAML: " + err.Error()))
	}
	return s.Parse(ctx, v, opts...)
}

func decodeError(msg string) *ValidationError {
	return NewValidationError(Issues{{Code: CodeInvalidFormat, Message: msg}})
}
