package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/optbridge"
)

// Instance is a running foreign object with its own linear memory.
// It is NOT safe for concurrent use from multiple goroutines; the bridge
// adds no synchronization of its own.
type Instance struct {
	instance  api.Module
	memory    *wazeroMemory
	alloc     *guestAllocator
	funcCache map[string]api.Function
}

// Memory returns the instance's linear memory, or nil if the foreign object
// exports none.
func (i *Instance) Memory() optbridge.Memory {
	if i.memory == nil {
		return nil
	}
	return i.memory
}

// Allocator returns the foreign allocator. Allocations fail if the foreign
// object does not export one.
func (i *Instance) Allocator() optbridge.Allocator {
	return i.alloc
}

// Func returns an exported function by name. Lookups are cached; a negative
// result is not.
func (i *Instance) Func(name string) (api.Function, bool) {
	if fn, ok := i.funcCache[name]; ok {
		return fn, true
	}
	fn := i.instance.ExportedFunction(name)
	if fn == nil {
		return nil, false
	}
	i.funcCache[name] = fn
	return fn, true
}

// GlobalU32 reads an exported i32 global, used for foreign allocator
// accounting.
func (i *Instance) GlobalU32(name string) (uint32, bool) {
	g := i.instance.ExportedGlobal(name)
	if g == nil {
		return 0, false
	}
	return uint32(g.Get()), true
}

// Close releases the instance and its linear memory.
func (i *Instance) Close(ctx context.Context) error {
	if i.instance == nil {
		return nil
	}
	err := i.instance.Close(ctx)
	i.instance = nil
	i.funcCache = nil
	i.memory = nil
	i.alloc = nil
	return err
}
