package abi

import (
	"go.bytecodealliance.org/wit"
)

// Namespace is the fixed symbol prefix shared by both sides of the link.
// The trailing digit is the ABI revision; host and foreign object must be
// generated from the same revision or symbol resolution fails.
const Namespace = "optbridge1"

// View operation names.
const (
	OpHasValue     = "has_value"
	OpGetUnchecked = "get_unchecked"
	OpEmpty        = "empty"
	OpNew          = "new"
)

// Owning-handle operation names.
const (
	OpNull    = "null"
	OpRaw     = "raw"
	OpGet     = "get"
	OpRelease = "release"
	OpDrop    = "drop"
)

// Allocator symbols exported by the foreign object.
const (
	AllocSymbol       = Namespace + "$alloc"
	DeallocSymbol     = Namespace + "$dealloc"
	LiveObjectsSymbol = Namespace + "$live_objects"
)

// OptionalSymbol returns the foreign symbol name for a view operation on
// optionals of the given element.
func OptionalSymbol(elem, op string) string {
	return Namespace + "$optional$" + elem + "$" + op
}

// UniquePtrSymbol returns the foreign symbol name for an owning-handle
// operation on optionals of the given element.
func UniquePtrSymbol(elem, op string) string {
	return Namespace + "$unique_ptr$optional$" + elem + "$" + op
}

// ElementNames lists the canonical names of the closed element set, in
// declaration order. New names are only added together with a new group of
// foreign entry points; the set is not user-extensible.
func ElementNames() []string {
	return []string{"u8", "u16", "u32", "u64", "s8", "s16", "s32", "s64", "f32", "f64"}
}

// ElementName returns the canonical WIT-style name for a primitive element
// type, or "" if the type is not in the supported set.
func ElementName(t wit.Type) string {
	switch t.(type) {
	case wit.U8:
		return "u8"
	case wit.U16:
		return "u16"
	case wit.U32:
		return "u32"
	case wit.U64:
		return "u64"
	case wit.S8:
		return "s8"
	case wit.S16:
		return "s16"
	case wit.S32:
		return "s32"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	default:
		return ""
	}
}
