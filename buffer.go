package rhi

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// CreateBuffer allocates GPU buffer storage. initialBytes is optional
// (pass nil to leave the buffer uninitialized); if given, its length must be
// non-zero and must not exceed desc.Size, and the bytes are uploaded with
// glBufferSubData right after the storage is allocated. On a descriptor validation failure it logs at
// error level and returns the null handle, per the error-handling policy in
// SPEC_FULL.md §A.2. Any GL object allocated before a failure is reclaimed
// before returning (scoped-acquisition guard, spec.md §5).
func (d *Device) CreateBuffer(desc BufferDescriptor, initialBytes []byte) BufferHandle {
	if err := validateBufferDesc(&desc); err != nil {
		Logger().Error("rhi: create_buffer rejected", "error", err, "label", desc.Label)
		return BufferHandle{}
	}
	if initialBytes != nil {
		if len(initialBytes) == 0 || uint64(len(initialBytes)) > desc.Size {
			Logger().Error("rhi: create_buffer rejected: initial_bytes length must be > 0 and <= size", "label", desc.Label)
			return BufferHandle{}
		}
	}

	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		Logger().Error("rhi: create_buffer: glGenBuffers returned 0", "label", desc.Label)
		return BufferHandle{}
	}

	target := toGLBufferTarget(desc.Usage)
	gl.BindBuffer(target, id)
	gl.BufferData(target, int(desc.Size), nil, toGLBufferUsageHint(desc.Access))
	if len(initialBytes) > 0 {
		gl.BufferSubData(target, 0, len(initialBytes), gl.Ptr(&initialBytes[0]))
	}
	gl.BindBuffer(target, 0)

	h := d.buffers.insert(bufferRecord{id: id, desc: desc})
	Logger().Debug("rhi: buffer created", "gl_id", id, "size", desc.Size, "label", desc.Label)
	return h
}

// DestroyBuffer releases the GL buffer object backing h. Destroying a
// missing or already-destroyed handle is a transient logic warning, not an
// error: it is logged and otherwise ignored.
func (d *Device) DestroyBuffer(h BufferHandle) {
	rec := d.buffers.tryGet(h)
	if rec == nil {
		Logger().Warn("rhi: destroy_buffer: handle not found", "handle", h.id)
		return
	}
	id := rec.id
	gl.DeleteBuffers(1, &id)
	d.buffers.remove(h)
	Logger().Debug("rhi: buffer destroyed", "gl_id", id)
}

// UploadBuffer writes data into a CPU-writable buffer starting at offset.
// Buffers created with BufferAccessGPUOnly reject this call.
func (d *Device) UploadBuffer(h BufferHandle, offset uint64, data []byte) error {
	rec := d.buffers.tryGet(h)
	if rec == nil {
		return fmt.Errorf("rhi: upload_buffer: handle not found")
	}
	if rec.desc.Access == BufferAccessGPUOnly {
		return fmt.Errorf("rhi: upload_buffer: buffer %q is gpu_only", rec.desc.Label)
	}
	if offset+uint64(len(data)) > rec.desc.Size {
		return fmt.Errorf("rhi: upload_buffer: offset+len(data) exceeds buffer size")
	}
	target := toGLBufferTarget(rec.desc.Usage)
	gl.BindBuffer(target, rec.id)
	if len(data) > 0 {
		gl.BufferSubData(target, int(offset), len(data), gl.Ptr(&data[0]))
	}
	gl.BindBuffer(target, 0)
	return nil
}
