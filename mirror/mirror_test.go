package mirror_test

import (
	"context"
	"testing"
	"unsafe"

	"github.com/wippyai/optbridge/engine"
	"github.com/wippyai/optbridge/mirror"
	"github.com/wippyai/optbridge/option"
	"github.com/wippyai/optbridge/optional"
	"github.com/wippyai/optbridge/synth"
)

func newInstance(t *testing.T) *engine.Instance {
	t.Helper()
	ctx := context.Background()

	eng, err := engine.New(ctx)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	t.Cleanup(func() { eng.Close(ctx) })

	mod, err := eng.Load(ctx, synth.Module())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	t.Cleanup(func() { inst.Close(ctx) })

	return inst
}

func TestMirror_OptionRoundTrip(t *testing.T) {
	m := mirror.From(option.Some(uint32(7)))
	got, ok := m.IntoOption().Get()
	if !ok || got != 7 {
		t.Errorf("IntoOption = (%d, %v), want (7, true)", got, ok)
	}

	n := mirror.From(option.None[uint32]())
	if n.IntoOption().IsSome() {
		t.Error("mirror of None should convert back to None")
	}

	z := mirror.New[uint32]()
	if z.IsSome() {
		t.Error("fresh mirror should hold nothing")
	}
}

func TestMirror_FromRef(t *testing.T) {
	o := option.Some(int16(-3))

	m := mirror.FromRef(&o)
	if !m.IsSome() {
		t.Fatal("reinterpreted mirror should see the value")
	}
	got, ok := m.AsOption().Get()
	if !ok || got != -3 {
		t.Errorf("AsOption = (%d, %v), want (-3, true)", got, ok)
	}

	// Mutation through the mirror is mutation of the original.
	*m.AsMutOption() = option.None[int16]()
	if o.IsSome() {
		t.Error("clearing through the mirror should clear the original")
	}
}

func sizeMatches[T any](t *testing.T, name string) {
	t.Helper()
	var m mirror.Mirror[T]
	var o option.Option[T]
	if unsafe.Sizeof(m) != unsafe.Sizeof(o) {
		t.Errorf("%s: Mirror size %d != Option size %d", name, unsafe.Sizeof(m), unsafe.Sizeof(o))
	}
	if unsafe.Alignof(m) != unsafe.Alignof(o) {
		t.Errorf("%s: Mirror align %d != Option align %d", name, unsafe.Alignof(m), unsafe.Alignof(o))
	}
}

func TestMirror_LayoutMatchesOption(t *testing.T) {
	sizeMatches[uint8](t, "u8")
	sizeMatches[uint16](t, "u16")
	sizeMatches[uint32](t, "u32")
	sizeMatches[uint64](t, "u64")
	sizeMatches[int8](t, "s8")
	sizeMatches[int16](t, "s16")
	sizeMatches[int32](t, "s32")
	sizeMatches[int64](t, "s64")
	sizeMatches[float32](t, "f32")
	sizeMatches[float64](t, "f64")
}

func TestLower_VisibleToForeign(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t)

	b, err := optional.Bind[uint32](inst)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	ptr, err := inst.Allocator().Alloc(mirror.Size[uint32](), mirror.Align[uint32]())
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	defer inst.Allocator().Free(ptr, mirror.Size[uint32](), mirror.Align[uint32]())

	m := mirror.From(option.Some(uint32(42)))
	if err := mirror.Lower(inst.Memory(), ptr, &m); err != nil {
		t.Fatalf("Lower: %v", err)
	}

	view := b.View(ptr)
	if !view.IsSome(ctx) {
		t.Fatal("foreign side should see the lowered value")
	}
	got, ok := view.Get(ctx).Get()
	if !ok || got != 42 {
		t.Errorf("foreign read = (%d, %v), want (42, true)", got, ok)
	}

	none := mirror.From(option.None[uint32]())
	if err := mirror.Lower(inst.Memory(), ptr, &none); err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if view.IsSome(ctx) {
		t.Error("foreign side should see the lowered absence")
	}
}

func TestLift_FromForeign(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t)

	b, err := optional.Bind[float64](inst)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	raw, err := b.New(ctx, 6.25)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	owned, err := b.FromRaw(ctx, raw)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	defer owned.Close(ctx)

	m, err := mirror.Lift[float64](inst.Memory(), raw)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	got, ok := m.IntoOption().Get()
	if !ok || got != 6.25 {
		t.Errorf("Lift = (%v, %v), want (6.25, true)", got, ok)
	}

	empty, err := b.Empty(ctx)
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	emptyOwned, err := b.FromRaw(ctx, empty)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	defer emptyOwned.Close(ctx)

	e, err := mirror.Lift[float64](inst.Memory(), empty)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if e.IsSome() {
		t.Error("lifting an empty optional should produce None")
	}
}

func TestLowerLift_RoundTrip(t *testing.T) {
	inst := newInstance(t)

	ptr, err := inst.Allocator().Alloc(mirror.Size[int8](), mirror.Align[int8]())
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	in := mirror.From(option.Some(int8(-100)))
	if err := mirror.Lower(inst.Memory(), ptr, &in); err != nil {
		t.Fatalf("Lower: %v", err)
	}
	out, err := mirror.Lift[int8](inst.Memory(), ptr)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	got, ok := out.IntoOption().Get()
	if !ok || got != -100 {
		t.Errorf("round trip = (%d, %v), want (-100, true)", got, ok)
	}
}
