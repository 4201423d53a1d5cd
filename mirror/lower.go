package mirror

import (
	"github.com/wippyai/optbridge"
	"github.com/wippyai/optbridge/option"
	"github.com/wippyai/optbridge/optional"
)

// Lower writes the mirror into foreign memory at ptr in the foreign
// optional layout: presence tag byte, then the payload at its aligned
// offset. The destination must be at least Size[T] bytes, aligned to the
// element alignment. Bytes lowered this way are indistinguishable from a
// foreign-constructed optional, so the foreign has-value and unchecked-get
// entry points operate on them directly.
func Lower[T optional.Element](mem optbridge.Memory, ptr uint32, m *Mirror[T]) error {
	v, ok := m.repr.Get()
	if !ok {
		return mem.WriteU8(ptr, 0)
	}

	if err := mem.WriteU8(ptr, 1); err != nil {
		return err
	}
	return optional.WritePayload(mem, ptr+optional.Layout[T]().PayloadOffset, v)
}

// Lift reads a foreign optional layout at ptr back into a mirror.
func Lift[T optional.Element](mem optbridge.Memory, ptr uint32) (Mirror[T], error) {
	tag, err := mem.ReadU8(ptr)
	if err != nil {
		return Mirror[T]{}, err
	}
	if tag == 0 {
		return New[T](), nil
	}

	v, err := optional.ReadPayload[T](mem, ptr+optional.Layout[T]().PayloadOffset)
	if err != nil {
		return Mirror[T]{}, err
	}
	return From(option.Some(v)), nil
}

// Size returns the number of bytes a lowered mirror occupies in foreign
// memory.
func Size[T optional.Element]() uint32 {
	return optional.Layout[T]().Size
}

// Align returns the required alignment of a lowered mirror in foreign
// memory.
func Align[T optional.Element]() uint32 {
	return optional.Layout[T]().Align
}
