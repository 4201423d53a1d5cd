// Package mirror presents a host-native Option to foreign code.
//
// Mirror is a layout-compatible wrapper: it holds exactly one
// option.Option field, so reinterpreting a *option.Option as a *Mirror is
// free and always valid. No foreign calls happen in this package; Lower
// and Lift move a mirror through the foreign optional's canonical memory
// shape so the foreign entry points can read it unchanged.
package mirror

import (
	"unsafe"

	"github.com/wippyai/optbridge/option"
)

// Mirror wraps a host-native optional in the shape the bridge hands to
// foreign code. The zero value mirrors None.
type Mirror[T any] struct {
	repr option.Option[T]
}

// New constructs a mirror representing no value.
func New[T any]() Mirror[T] {
	return Mirror[T]{}
}

// From wraps a native optional by value, taking over its payload.
func From[T any](o option.Option[T]) Mirror[T] {
	return Mirror[T]{repr: o}
}

// FromRef reinterprets a borrowed native optional as a mirror without
// copying. This is a zero-cost view, not a conversion; it is valid because
// Mirror is layout-identical to option.Option by construction (see the
// size law in the package tests).
func FromRef[T any](o *option.Option[T]) *Mirror[T] {
	return (*Mirror[T])(unsafe.Pointer(o))
}

// IntoOption unwraps back to the native optional, consuming the mirror.
func (m Mirror[T]) IntoOption() option.Option[T] {
	return m.repr
}

// AsOption returns a borrowed view of the underlying native optional for
// reading.
func (m *Mirror[T]) AsOption() *option.Option[T] {
	return &m.repr
}

// AsMutOption returns a borrowed view of the underlying native optional
// for mutation.
func (m *Mirror[T]) AsMutOption() *option.Option[T] {
	return &m.repr
}

// IsSome reports whether the mirrored optional holds a value.
func (m *Mirror[T]) IsSome() bool {
	return m.repr.IsSome()
}

// IsNone reports whether the mirrored optional is empty.
func (m *Mirror[T]) IsNone() bool {
	return m.repr.IsNone()
}
