package formwork

// Result is the two-variant success/failure container returned by every
// validation entry point. A Result is exactly Ok or Err, never both; it is
// immutable once constructed.
type Result[T any] struct {
	ok    bool
	value T
	err   *ValidationError
}

// Ok returns a successful Result holding v.
func Ok[T any](v T) Result[T] { return Result[T]{ok: true, value: v} }

// Err returns a failed Result holding e. A nil error is a programmer error
// and panics: the Ok/Err invariant admits no empty failure.
func Err[T any](e *ValidationError) Result[T] {
	if e == nil {
		panic("formwork: Err requires a non-nil ValidationError")
	}
	return Result[T]{err: e}
}

// IsOk reports whether the Result holds a value.
func (r Result[T]) IsOk() bool { return r.ok }

// IsErr reports whether the Result holds an error.
func (r Result[T]) IsErr() bool { return !r.ok }

// Value returns the held value (the zero value when Err).
func (r Result[T]) Value() T { return r.value }

// Err returns the held error (nil when Ok).
func (r Result[T]) Err() *ValidationError { return r.err }

// Get unpacks the Result into the conventional Go pair.
func (r Result[T]) Get() (T, *ValidationError) { return r.value, r.err }

// ValueOr returns the held value, or def when the Result is Err.
func (r Result[T]) ValueOr(def T) T {
	if r.ok {
		return r.value
	}
	return def
}

// MapError transforms the error of an Err result and leaves Ok untouched.
func (r Result[T]) MapError(fn func(*ValidationError) *ValidationError) Result[T] {
	if r.ok {
		return r
	}
	return Err[T](fn(r.err))
}

// Map transforms the value of an Ok result and leaves Err untouched.
// It is a package-level function because Go methods cannot introduce type
// parameters.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.IsErr() {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// FlatMap chains a Result-producing function over an Ok result and leaves
// Err untouched. Composition is associative.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.IsErr() {
		return Err[U](r.err)
	}
	return fn(r.value)
}

// Match folds both variants into a single value.
func Match[T, U any](r Result[T], onOk func(T) U, onErr func(*ValidationError) U) U {
	if r.ok {
		return onOk(r.value)
	}
	return onErr(r.err)
}

// SafeResult is the discriminated success/failure record returned by
// SafeParse for callers that prefer not to handle Result directly.
type SafeResult[T any] struct {
	Success bool
	Data    T
	Error   *ValidationError
}

// Safe converts a Result into a SafeResult.
func Safe[T any](r Result[T]) SafeResult[T] {
	if r.ok {
		return SafeResult[T]{Success: true, Data: r.value}
	}
	return SafeResult[T]{Error: r.err}
}
