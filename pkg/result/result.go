// Package result provides a tagged success/failure container. Most code in
// this repository uses plain (T, error) returns; Result exists for the
// places a single value must carry success-or-failure, such as resolving a
// pending request through a channel.
package result

// Result holds either a value or an error, never both.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok creates a success result
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err creates a failure result
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the result is a success
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IsErr reports whether the result is a failure
func (r Result[T]) IsErr() bool {
	return !r.ok
}

// Value returns the success payload. Calling Value on a failure is a
// programming error and panics.
func (r Result[T]) Value() T {
	if !r.ok {
		panic("result: Value called on failure result")
	}
	return r.value
}

// Err returns the error payload. Calling Err on a success is a programming
// error and panics.
func (r Result[T]) Err() error {
	if r.ok {
		panic("result: Err called on success result")
	}
	return r.err
}

// Unpack returns the result in Go's native (T, error) form
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.err
}

// GetOrElse returns the payload, or fallback if the result is a failure
func (r Result[T]) GetOrElse(fallback T) T {
	if !r.ok {
		return fallback
	}
	return r.value
}

// Fold applies onOk or onErr depending on the variant and returns the
// outcome of whichever ran
func Fold[T, U any](r Result[T], onOk func(T) U, onErr func(error) U) U {
	if r.ok {
		return onOk(r.value)
	}
	return onErr(r.err)
}

// Map transforms the success payload; failures pass through unchanged
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}
