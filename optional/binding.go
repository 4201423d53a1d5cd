package optional

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/optbridge/abi"
	"github.com/wippyai/optbridge/engine"
	"github.com/wippyai/optbridge/errors"
)

// boundFn pairs a resolved foreign function with the symbol it was
// resolved from, for diagnostics.
type boundFn struct {
	fn  api.Function
	sym string
}

// Binding holds the foreign entry points for optionals of element type T on
// one instance. It is the runtime realization of T's element binding: all
// View and Owned operations dispatch through it.
type Binding[T Element] struct {
	inst   *engine.Instance
	name   string
	layout abi.OptionInfo

	hasValue     boundFn
	getUnchecked boundFn
	null         boundFn
	raw          boundFn
	get          boundFn
	release      boundFn
	drop         boundFn
}

// Bind resolves the foreign entry points for element type T against the
// instance's exports. An element the foreign object was built without
// yields a missing_symbol error; this is the link-time shape of
// "unsupported element type".
func Bind[T Element](inst *engine.Instance) (*Binding[T], error) {
	name := Name[T]()

	b := &Binding[T]{
		inst:   inst,
		name:   name,
		layout: Layout[T](),
	}

	resolve := func(sym string) (boundFn, error) {
		fn, ok := inst.Func(sym)
		if !ok {
			return boundFn{}, errors.MissingSymbol(name, sym)
		}
		return boundFn{fn: fn, sym: sym}, nil
	}

	var err error
	if b.hasValue, err = resolve(abi.OptionalSymbol(name, abi.OpHasValue)); err != nil {
		return nil, err
	}
	if b.getUnchecked, err = resolve(abi.OptionalSymbol(name, abi.OpGetUnchecked)); err != nil {
		return nil, err
	}
	if b.null, err = resolve(abi.UniquePtrSymbol(name, abi.OpNull)); err != nil {
		return nil, err
	}
	if b.raw, err = resolve(abi.UniquePtrSymbol(name, abi.OpRaw)); err != nil {
		return nil, err
	}
	if b.get, err = resolve(abi.UniquePtrSymbol(name, abi.OpGet)); err != nil {
		return nil, err
	}
	if b.release, err = resolve(abi.UniquePtrSymbol(name, abi.OpRelease)); err != nil {
		return nil, err
	}
	if b.drop, err = resolve(abi.UniquePtrSymbol(name, abi.OpDrop)); err != nil {
		return nil, err
	}

	return b, nil
}

// Element returns the canonical element name of this binding.
func (b *Binding[T]) Element() string {
	return b.name
}

// View borrows the foreign optional at ptr. The pointer must reference a
// live foreign optional of element type T; the view does not take
// ownership.
func (b *Binding[T]) View(ptr uint32) *View[T] {
	return &View[T]{binding: b, ptr: ptr}
}

// Empty asks the foreign side to allocate an empty optional and returns
// its raw pointer. The caller owns the result and normally adopts it with
// FromRaw. The foreign object may omit this constructor; then an error of
// kind missing_symbol is returned.
func (b *Binding[T]) Empty(ctx context.Context) (uint32, error) {
	sym := abi.OptionalSymbol(b.name, abi.OpEmpty)
	fn, ok := b.inst.Func(sym)
	if !ok {
		return 0, errors.MissingSymbol(b.name, sym)
	}
	res, err := fn.Call(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseCall, errors.KindTrap, err, sym)
	}
	return uint32(res[0]), nil
}

// New asks the foreign side to allocate an optional holding v and returns
// its raw pointer. Ownership rules match Empty.
func (b *Binding[T]) New(ctx context.Context, v T) (uint32, error) {
	sym := abi.OptionalSymbol(b.name, abi.OpNew)
	fn, ok := b.inst.Func(sym)
	if !ok {
		return 0, errors.MissingSymbol(b.name, sym)
	}
	res, err := fn.Call(ctx, flatten(v))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseCall, errors.KindTrap, err, sym)
	}
	return uint32(res[0]), nil
}

// invoke runs a resolved foreign entry point. The bound operations cannot
// fail under an intact link contract, so a trap is raised as a panic
// rather than returned.
func (b *Binding[T]) invoke(ctx context.Context, f boundFn, args ...uint64) uint64 {
	res, err := f.fn.Call(ctx, args...)
	if err != nil {
		panic(errors.New(errors.PhaseCall, errors.KindTrap).
			Symbol(f.sym).
			Element(b.name).
			Cause(err).
			Detail("foreign call trapped").
			Build())
	}
	if len(res) == 0 {
		return 0
	}
	return res[0]
}
