package optional

import (
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/optbridge"
	"github.com/wippyai/optbridge/abi"
)

// Element is the closed set of primitive types with a foreign binding.
// It is not user-extensible: admitting a new type requires a matching
// group of foreign entry points and a case in every switch below.
type Element interface {
	uint8 | uint16 | uint32 | uint64 | int8 | int16 | int32 | int64 | float32 | float64
}

// WitType returns the WIT type describing T in the foreign ABI.
func WitType[T Element]() wit.Type {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return wit.U8{}
	case uint16:
		return wit.U16{}
	case uint32:
		return wit.U32{}
	case uint64:
		return wit.U64{}
	case int8:
		return wit.S8{}
	case int16:
		return wit.S16{}
	case int32:
		return wit.S32{}
	case int64:
		return wit.S64{}
	case float32:
		return wit.F32{}
	default:
		return wit.F64{}
	}
}

// Name returns the canonical element name used in the symbol grammar.
func Name[T Element]() string {
	return abi.ElementName(WitType[T]())
}

// Layout returns the foreign optional layout for element type T.
func Layout[T Element]() abi.OptionInfo {
	return abi.OptionLayout(WitType[T]())
}

// ReadPayload reads a T from foreign memory at ptr.
func ReadPayload[T Element](mem optbridge.Memory, ptr uint32) (T, error) {
	var v T
	switch p := any(&v).(type) {
	case *uint8:
		b, err := mem.ReadU8(ptr)
		if err != nil {
			return v, err
		}
		*p = b
	case *uint16:
		u, err := mem.ReadU16(ptr)
		if err != nil {
			return v, err
		}
		*p = u
	case *uint32:
		u, err := mem.ReadU32(ptr)
		if err != nil {
			return v, err
		}
		*p = u
	case *uint64:
		u, err := mem.ReadU64(ptr)
		if err != nil {
			return v, err
		}
		*p = u
	case *int8:
		b, err := mem.ReadU8(ptr)
		if err != nil {
			return v, err
		}
		*p = int8(b)
	case *int16:
		u, err := mem.ReadU16(ptr)
		if err != nil {
			return v, err
		}
		*p = int16(u)
	case *int32:
		u, err := mem.ReadU32(ptr)
		if err != nil {
			return v, err
		}
		*p = int32(u)
	case *int64:
		u, err := mem.ReadU64(ptr)
		if err != nil {
			return v, err
		}
		*p = int64(u)
	case *float32:
		u, err := mem.ReadU32(ptr)
		if err != nil {
			return v, err
		}
		*p = math.Float32frombits(u)
	case *float64:
		u, err := mem.ReadU64(ptr)
		if err != nil {
			return v, err
		}
		*p = math.Float64frombits(u)
	}
	return v, nil
}

// WritePayload writes a T to foreign memory at ptr.
func WritePayload[T Element](mem optbridge.Memory, ptr uint32, v T) error {
	switch x := any(v).(type) {
	case uint8:
		return mem.WriteU8(ptr, x)
	case uint16:
		return mem.WriteU16(ptr, x)
	case uint32:
		return mem.WriteU32(ptr, x)
	case uint64:
		return mem.WriteU64(ptr, x)
	case int8:
		return mem.WriteU8(ptr, uint8(x))
	case int16:
		return mem.WriteU16(ptr, uint16(x))
	case int32:
		return mem.WriteU32(ptr, uint32(x))
	case int64:
		return mem.WriteU64(ptr, uint64(x))
	case float32:
		return mem.WriteU32(ptr, math.Float32bits(x))
	default:
		return mem.WriteU64(ptr, math.Float64bits(any(v).(float64)))
	}
}

// flatten encodes a T for the foreign call stack.
func flatten[T Element](v T) uint64 {
	switch x := any(v).(type) {
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case int8:
		return api.EncodeI32(int32(x))
	case int16:
		return api.EncodeI32(int32(x))
	case int32:
		return api.EncodeI32(x)
	case int64:
		return api.EncodeI64(x)
	case float32:
		return api.EncodeF32(x)
	default:
		return api.EncodeF64(any(v).(float64))
	}
}
