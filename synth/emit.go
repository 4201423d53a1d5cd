package synth

// Minimal WebAssembly binary emission. Only the pieces the generated
// foreign module needs: LEB128 integers, names, sections, and the small
// instruction vocabulary of the per-element entry points.

// Value types
const (
	valI32 byte = 0x7F
	valI64 byte = 0x7E
	valF32 byte = 0x7D
	valF64 byte = 0x7C
)

// Section IDs
const (
	secType     byte = 1
	secFunction byte = 3
	secMemory   byte = 5
	secGlobal   byte = 6
	secExport   byte = 7
	secCode     byte = 10
)

// Export kinds
const (
	kindFunc   byte = 0x00
	kindMemory byte = 0x02
	kindGlobal byte = 0x03
)

// Opcodes
const (
	opIf         byte = 0x04
	opEnd        byte = 0x0B
	opCall       byte = 0x10
	opLocalGet   byte = 0x20
	opLocalSet   byte = 0x21
	opLocalTee   byte = 0x22
	opGlobalGet  byte = 0x23
	opGlobalSet  byte = 0x24
	opI32Load    byte = 0x28
	opI32Load8U  byte = 0x2D
	opI32Store   byte = 0x36
	opI64Store   byte = 0x37
	opF32Store   byte = 0x38
	opF64Store   byte = 0x39
	opI32Store8  byte = 0x3A
	opI32Store16 byte = 0x3B
	opI32Const   byte = 0x41
	opI32Add     byte = 0x6A
	opI32Sub     byte = 0x6B
	opI32And     byte = 0x71
)

const blockTypeEmpty byte = 0x40

// writer accumulates the binary encoding of a module or section.
type writer struct {
	buf []byte
}

func (w *writer) byte(b ...byte) {
	w.buf = append(w.buf, b...)
}

// uleb writes an unsigned LEB128 value
func (w *writer) uleb(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf = append(w.buf, b)
		if v == 0 {
			return
		}
	}
}

// sleb writes a signed LEB128 value
func (w *writer) sleb(v int32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			w.buf = append(w.buf, b)
			return
		}
		w.buf = append(w.buf, b|0x80)
	}
}

// name writes a length-prefixed UTF-8 name
func (w *writer) name(s string) {
	w.uleb(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// section writes a size-prefixed section
func (w *writer) section(id byte, payload []byte) {
	w.buf = append(w.buf, id)
	w.uleb(uint32(len(payload)))
	w.buf = append(w.buf, payload...)
}

// memarg writes an alignment exponent and offset pair
func (w *writer) memarg(alignExp, offset uint32) {
	w.uleb(alignExp)
	w.uleb(offset)
}

// funcType writes a function type: 0x60, params, results
func (w *writer) funcType(params, results []byte) {
	w.byte(0x60)
	w.uleb(uint32(len(params)))
	w.byte(params...)
	w.uleb(uint32(len(results)))
	w.byte(results...)
}

// code writes a size-prefixed function body with n i32 locals
func (w *writer) code(localsI32 uint32, body []byte) {
	var b writer
	if localsI32 == 0 {
		b.uleb(0)
	} else {
		b.uleb(1)
		b.uleb(localsI32)
		b.byte(valI32)
	}
	b.byte(body...)
	b.byte(opEnd)

	w.uleb(uint32(len(b.buf)))
	w.byte(b.buf...)
}
