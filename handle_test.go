package rhi

import "testing"

func TestPoolInsertAndGet(t *testing.T) {
	p := newPool[bufferKind, int]()
	h := p.insert(42)
	if h.IsNull() {
		t.Fatalf("insert returned the null handle")
	}
	got := p.tryGet(h)
	if got == nil || *got != 42 {
		t.Fatalf("tryGet(%v) = %v, want 42", h, got)
	}
}

func TestPoolNullHandleNeverResolves(t *testing.T) {
	p := newPool[bufferKind, int]()
	var zero Handle[bufferKind]
	if !zero.IsNull() {
		t.Fatalf("zero value Handle is not null")
	}
	if p.tryGet(zero) != nil {
		t.Fatalf("tryGet(null) returned a non-nil pointer")
	}
}

func TestPoolRemoveThenTryGet(t *testing.T) {
	p := newPool[bufferKind, int]()
	h := p.insert(1)
	if !p.remove(h) {
		t.Fatalf("remove reported failure for a live handle")
	}
	if p.tryGet(h) != nil {
		t.Fatalf("tryGet succeeded after remove")
	}
	if p.remove(h) {
		t.Fatalf("remove reported success for an already-removed handle")
	}
}

func TestPoolRecycledSlotAliasesNewHandle(t *testing.T) {
	// Generation-free by design (spec.md §4.1): a stale handle into a
	// recycled slot resolves to whatever now lives there. Callers are
	// expected to never retain a handle past its destroy call.
	p := newPool[bufferKind, int]()
	a := p.insert(1)
	p.remove(a)
	b := p.insert(2)

	if a.id != b.id {
		t.Fatalf("expected the free list to recycle a's slot for b")
	}
	got := p.tryGet(a)
	if got == nil || *got != 2 {
		t.Fatalf("tryGet(a) = %v, want 2 (b's value, since the slot was recycled)", got)
	}
}

func TestPoolForEachVisitsOnlyLiveEntries(t *testing.T) {
	p := newPool[bufferKind, int]()
	a := p.insert(10)
	_ = p.insert(20)
	p.remove(a)

	var seen []int
	p.forEach(func(h Handle[bufferKind], v *int) {
		seen = append(seen, *v)
	})
	if len(seen) != 1 || seen[0] != 20 {
		t.Fatalf("forEach visited %v, want [20]", seen)
	}
	if p.len() != 1 {
		t.Fatalf("len() = %d, want 1", p.len())
	}
}
