package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/optbridge"
	"github.com/wippyai/optbridge/errors"
)

// guestAllocator delegates to the foreign object's exported allocator so
// that storage handed to owning handles can be destroyed on the foreign
// side.
type guestAllocator struct {
	allocFn   api.Function
	deallocFn api.Function
	stackBuf  [3]uint64
}

func (a *guestAllocator) Alloc(size, align uint32) (uint32, error) {
	if a.allocFn == nil {
		return 0, errors.NotInitialized(errors.PhaseCall, "foreign allocator")
	}

	a.stackBuf[0] = uint64(size)
	a.stackBuf[1] = uint64(align)
	if err := a.allocFn.CallWithStack(context.Background(), a.stackBuf[:2]); err != nil {
		return 0, errors.AllocationFailed(errors.PhaseCall, size, align, err)
	}

	ptr := uint32(a.stackBuf[0])
	if ptr == 0 {
		return 0, errors.AllocationFailed(errors.PhaseCall, size, align, nil)
	}
	return ptr, nil
}

func (a *guestAllocator) Free(ptr, size, align uint32) {
	if a.deallocFn == nil || ptr == 0 {
		return
	}

	a.stackBuf[0] = uint64(ptr)
	a.stackBuf[1] = uint64(size)
	a.stackBuf[2] = uint64(align)
	if err := a.deallocFn.CallWithStack(context.Background(), a.stackBuf[:3]); err != nil {
		Logger().Warn("Free: foreign deallocation failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}

// Compile-time check that guestAllocator implements optbridge.Allocator
var _ optbridge.Allocator = (*guestAllocator)(nil)
