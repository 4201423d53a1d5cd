package abi

import (
	"go.bytecodealliance.org/wit"
)

// Info describes the in-memory shape of a value in foreign linear memory.
type Info struct {
	Size  uint32
	Align uint32
}

// OptionInfo describes the shape of an optional container: a presence tag
// byte followed by an aligned payload.
type OptionInfo struct {
	Size          uint32
	Align         uint32
	PayloadOffset uint32
}

// AlignTo rounds offset up to the next multiple of align.
func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// Calculate returns the layout of a primitive WIT type.
// Primitive sizes equal their alignment per the Canonical ABI.
func Calculate(t wit.Type) Info {
	switch t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	default:
		return Info{Size: 0, Align: 1}
	}
}

// OptionLayout returns the layout of an optional container with the given
// element type: tag byte at offset 0, payload at offset align(elem), total
// size rounded up to align(elem).
func OptionLayout(elem wit.Type) OptionInfo {
	inner := Calculate(elem)

	payloadOffset := AlignTo(1, inner.Align)
	totalSize := AlignTo(payloadOffset+inner.Size, inner.Align)

	align := inner.Align
	if align < 1 {
		align = 1
	}

	return OptionInfo{
		Size:          totalSize,
		Align:         align,
		PayloadOffset: payloadOffset,
	}
}
