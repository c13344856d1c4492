package rhi

// kind distinguishes resource types at compile time so a buffer handle can
// never be passed where a texture handle is expected. Each resource kind
// defines its own empty kind type and implements this interface.
type kind interface {
	kindName() string
}

type bufferKind struct{}

func (bufferKind) kindName() string { return "buffer" }

type textureKind struct{}

func (textureKind) kindName() string { return "texture" }

type samplerKind struct{}

func (samplerKind) kindName() string { return "sampler" }

type pipelineKind struct{}

func (pipelineKind) kindName() string { return "pipeline" }

type renderPassKind struct{}

func (renderPassKind) kindName() string { return "render_pass" }

type framebufferKind struct{}

func (framebufferKind) kindName() string { return "framebuffer" }

type shaderBindingKind struct{}

func (shaderBindingKind) kindName() string { return "shader_binding" }

type fenceKind struct{}

func (fenceKind) kindName() string { return "fence" }

// Handle is an opaque, typed reference to a device-owned resource. The zero
// value is the null handle and is never returned by a successful create
// call.
type Handle[K kind] struct {
	id uint32
}

// IsNull reports whether h is the null handle.
func (h Handle[K]) IsNull() bool { return h.id == 0 }

// Type aliases for each resource kind's handle, matching spec.md §3.
type (
	BufferHandle        = Handle[bufferKind]
	TextureHandle        = Handle[textureKind]
	SamplerHandle        = Handle[samplerKind]
	PipelineHandle       = Handle[pipelineKind]
	RenderPassHandle     = Handle[renderPassKind]
	FramebufferHandle    = Handle[framebufferKind]
	ShaderBindingHandle  = Handle[shaderBindingKind]
	FenceHandle          = Handle[fenceKind]
)

// pool is a dense, generation-free table of resource records keyed by
// integer handle. Index 0 is never issued so the zero handle is always
// "not found". Removed slots are recycled via a free list, giving O(1)
// insert/try_get/remove without invalidating handles still referencing
// live entries.
//
// Grounded on core/storage.go's Storage[T, M] from the teacher, with the
// epoch/generation field dropped. A removed slot is reused by the very next
// insert, so a stale handle resolves to "not found" only until then; after
// that it resolves to the new record stored in its slot.
type pool[K kind, T any] struct {
	slots []poolSlot[T]
	free  []uint32
}

type poolSlot[T any] struct {
	value T
	used  bool
}

func newPool[K kind, T any]() *pool[K, T] {
	p := &pool[K, T]{slots: make([]poolSlot[T], 1)} // slot 0 reserved (null handle)
	return p
}

// insert stores value and returns a new, non-null handle for it.
func (p *pool[K, T]) insert(value T) Handle[K] {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		p.slots[idx] = poolSlot[T]{value: value, used: true}
		return Handle[K]{id: idx}
	}
	idx := uint32(len(p.slots))
	p.slots = append(p.slots, poolSlot[T]{value: value, used: true})
	return Handle[K]{id: idx}
}

// tryGet returns a pointer to the record for h, or nil if h is null, out of
// range, or was removed.
func (p *pool[K, T]) tryGet(h Handle[K]) *T {
	if h.id == 0 || int(h.id) >= len(p.slots) {
		return nil
	}
	slot := &p.slots[h.id]
	if !slot.used {
		return nil
	}
	return &slot.value
}

// remove frees h's slot. Removing a null or already-free handle is a no-op
// reported to the caller via the returned bool so it can log accordingly.
func (p *pool[K, T]) remove(h Handle[K]) bool {
	if h.id == 0 || int(h.id) >= len(p.slots) || !p.slots[h.id].used {
		return false
	}
	var zero T
	p.slots[h.id] = poolSlot[T]{value: zero, used: false}
	p.free = append(p.free, h.id)
	return true
}

// forEach iterates over every live entry, in index order. Used during
// device teardown.
func (p *pool[K, T]) forEach(fn func(Handle[K], *T)) {
	for i := range p.slots {
		if p.slots[i].used {
			fn(Handle[K]{id: uint32(i)}, &p.slots[i].value)
		}
	}
}

func (p *pool[K, T]) len() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].used {
			n++
		}
	}
	return n
}
