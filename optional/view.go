package optional

import (
	"context"

	"github.com/wippyai/optbridge/errors"
	"github.com/wippyai/optbridge/option"
)

// View is a non-owning reference to a foreign optional of element type T.
// The container it points at lives in foreign memory; the view carries no
// host-visible state beyond the address, and copying a View never copies
// the container.
//
// A View is only valid while the foreign optional it references is alive.
type View[T Element] struct {
	binding *Binding[T]
	ptr     uint32
}

// Ptr returns the foreign address of the optional.
func (v *View[T]) Ptr() uint32 {
	return v.ptr
}

// IsSome reports whether the foreign container currently holds a value.
// Matches the foreign optional's has-value predicate.
func (v *View[T]) IsSome(ctx context.Context) bool {
	return v.binding.invoke(ctx, v.binding.hasValue, uint64(v.ptr)) != 0
}

// IsNone reports whether the foreign container is empty.
func (v *View[T]) IsNone(ctx context.Context) bool {
	return !v.IsSome(ctx)
}

// Get returns the contained value, or None when the container is empty.
// The unchecked accessor is never invoked on an empty container.
func (v *View[T]) Get(ctx context.Context) option.Option[T] {
	if !v.IsSome(ctx) {
		return option.None[T]()
	}
	return option.Some(v.GetUnchecked(ctx))
}

// GetUnchecked returns the contained value without a presence check.
//
// This is generally not recommended, use with caution! Calling this method
// on an empty container is undefined behavior even if the result is never
// used. It mirrors the foreign optional's own unchecked access operator
// exactly; no safety net is added.
func (v *View[T]) GetUnchecked(ctx context.Context) T {
	payload := uint32(v.binding.invoke(ctx, v.binding.getUnchecked, uint64(v.ptr)))

	val, err := ReadPayload[T](v.binding.inst.Memory(), payload)
	if err != nil {
		panic(errors.New(errors.PhaseCall, errors.KindTrap).
			Symbol(v.binding.getUnchecked.sym).
			Element(v.binding.name).
			Cause(err).
			Detail("payload read out of bounds").
			Build())
	}
	return val
}
