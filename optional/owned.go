package optional

import (
	"context"

	"github.com/wippyai/optbridge/errors"
)

// Handle cells are pointer-sized in the foreign ABI.
const slotSize, slotAlign = 4, 4

// Owned uniquely owns a heap-allocated foreign optional through a
// pointer-sized cell in foreign memory, managed by the foreign unique-ptr
// entry points. Destroying the handle destroys owned contents on the
// foreign side, exactly once.
//
// The handle moves through three states: null, owning, closed. Release
// returns it to null with the caller holding the raw pointer; Close
// destroys owned contents and invalidates the handle.
type Owned[T Element] struct {
	binding *Binding[T]
	slot    uint32
	closed  bool
}

// Null constructs a handle owning nothing.
func (b *Binding[T]) Null(ctx context.Context) (*Owned[T], error) {
	o, err := b.newOwned(ctx)
	if err != nil {
		return nil, err
	}
	b.invoke(ctx, b.null, uint64(o.slot))
	return o, nil
}

// FromRaw adopts a foreign-allocated optional into an owning handle. The
// pointer must have come from the foreign allocator (for example from
// Empty, New, or a prior Release); the handle takes responsibility for
// destroying it.
func (b *Binding[T]) FromRaw(ctx context.Context, raw uint32) (*Owned[T], error) {
	o, err := b.newOwned(ctx)
	if err != nil {
		return nil, err
	}
	b.invoke(ctx, b.raw, uint64(o.slot), uint64(raw))
	return o, nil
}

func (b *Binding[T]) newOwned(ctx context.Context) (*Owned[T], error) {
	slot, err := b.inst.Allocator().Alloc(slotSize, slotAlign)
	if err != nil {
		return nil, err
	}
	return &Owned[T]{binding: b, slot: slot}, nil
}

// Get borrows the owned optional without transferring ownership. The
// second result is false when the handle owns nothing. The view is valid
// until the handle releases or destroys its contents.
func (o *Owned[T]) Get(ctx context.Context) (*View[T], bool) {
	o.mustBeOpen()
	ptr := uint32(o.binding.invoke(ctx, o.binding.get, uint64(o.slot)))
	if ptr == 0 {
		return nil, false
	}
	return o.binding.View(ptr), true
}

// Release hands raw ownership back to the caller. The handle returns to
// the null state and will not destroy the pointed-to optional; the caller
// becomes responsible for it.
func (o *Owned[T]) Release(ctx context.Context) uint32 {
	o.mustBeOpen()
	return uint32(o.binding.invoke(ctx, o.binding.release, uint64(o.slot)))
}

// Close destroys owned contents, if any, and invalidates the handle.
// The foreign drop runs exactly once; closing an already-closed handle is
// a no-op.
func (o *Owned[T]) Close(ctx context.Context) error {
	if o.closed {
		return nil
	}
	o.closed = true
	o.binding.invoke(ctx, o.binding.drop, uint64(o.slot))
	o.binding.inst.Allocator().Free(o.slot, slotSize, slotAlign)
	o.slot = 0
	return nil
}

func (o *Owned[T]) mustBeOpen() {
	if o.closed {
		panic(errors.Closed("owning handle"))
	}
}
