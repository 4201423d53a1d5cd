// Package option provides a generic host-native optional value.
//
// Option is the Go-side counterpart of the foreign optional container: it is
// either Some (holding a value) or None. Unlike the foreign container it is
// an ordinary Go value with no foreign ownership attached; the mirror
// package presents it to foreign code in a layout-compatible shape.
package option

import "fmt"

// Option represents a value of type T that may be absent.
// The zero value is None.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the Option holds a value.
func (o Option[T]) IsSome() bool {
	return o.some
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.some
}

// Get returns the contained value and whether it is present.
// When empty, the returned value is the zero value of T.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// Unwrap returns the contained value and panics if the Option is empty.
func (o Option[T]) Unwrap() T {
	if !o.some {
		panic("option: Unwrap on None")
	}
	return o.value
}

// UnwrapOr returns the contained value, or def when empty.
func (o Option[T]) UnwrapOr(def T) T {
	if !o.some {
		return def
	}
	return o.value
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if !o.some {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
