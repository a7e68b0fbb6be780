package middleware

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	formwork "github.com/formwork-go/formwork"
)

// ctxKeyValidated is a typed context key for storing a validated T.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyValidated[T any] struct{}

// ContextWithValidated attaches a validated value to the context.
func ContextWithValidated[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyValidated[T]{}, v)
}

// ValidatedFromContext retrieves a validated value from context.
func ValidatedFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyValidated[T]{}).(T)
	return v, ok
}

// ErrorPayload shapes a ValidationError for JSON responses.
func ErrorPayload(ve *formwork.ValidationError) map[string]any {
	return map[string]any{"error": ve}
}

// WriteError writes err as a 422 JSON response. Non-validation errors get a
// minimal wrapper with the same status.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	var body any
	if iss, ok := formwork.AsIssues(err); ok {
		body = ErrorPayload(formwork.NewValidationError(iss))
	} else if ve, ok := err.(*formwork.ValidationError); ok {
		body = ErrorPayload(ve)
	} else {
		body = map[string]any{"error": map[string]any{"code": formwork.ValidationErrorCode, "message": err.Error()}}
	}
	_ = json.NewEncoder(w).Encode(body)
}

// ValidateJSON decodes the request body through schema s and stores the
// validated T in the request context before calling next. Validation
// failures are answered with 422 and the aggregated error as JSON.
func ValidateJSON[T any](s formwork.Schema[T], next http.Handler, opts ...formwork.ParseOpt) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := formwork.ParseJSONReader(r.Context(), s, r.Body, opts...)
		if res.IsErr() {
			WriteError(w, res.Err())
			return
		}
		ctx := ContextWithValidated(r.Context(), res.Value())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
