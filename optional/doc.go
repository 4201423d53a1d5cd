// Package optional binds foreign optional containers into Go.
//
// A foreign optional is a value of runtime/ABI-defined size living in the
// foreign instance's linear memory. Go code never holds one by value: it
// borrows one through a View, or owns one through an Owned handle whose
// destruction runs on the foreign side.
//
// # Element Bindings
//
// Every supported element type has its own group of foreign entry points,
// named by the abi grammar and resolved once per instance:
//
//	b, err := optional.Bind[uint32](inst)
//
// The set of element types is closed: it is exactly the types admitted by
// the Element constraint, and each one is wired by hand to its symbol
// group. Callers cannot register new element types; a type outside the set
// fails to compile, and an element the foreign object was built without
// fails at Bind with a missing_symbol error.
//
// # Views
//
//	view := b.View(ptr)
//	view.IsSome(ctx)       // foreign has_value
//	view.Get(ctx)          // checked read: option.Option[uint32]
//	view.GetUnchecked(ctx) // unchecked read, see below
//
// GetUnchecked mirrors the foreign container's own unchecked access
// operator: calling it on an empty optional is undefined behavior, with no
// runtime guard, matching foreign call-site expectations. Use Get unless
// the presence check has already happened.
//
// View and Owned operations do not return errors: there is no recoverable
// failure in this layer. A foreign trap or an out-of-range pointer means
// the link contract itself was violated, and the operation panics with a
// *errors.Error of kind trap.
//
// # Owning Handles
//
//	owned, err := b.FromRaw(ctx, raw) // adopt a foreign-allocated optional
//	defer owned.Close(ctx)            // foreign drop, exactly once
//
//	if view, ok := owned.Get(ctx); ok { ... } // borrow, no transfer
//	raw := owned.Release(ctx)                 // escape: caller owns raw again
//
// The handle is a pointer-sized cell in foreign memory managed by the
// foreign unique-ptr entry points. Close destroys owned contents exactly
// once; closing an already-closed handle is a no-op.
package optional
