package rhi

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// CreateFence allocates a fence not yet signaled. The underlying GLsync
// object is created by signal_fence, not here — matching
// graphics_device_opengl.cpp, where create_fence only reserves the handle.
func (d *Device) CreateFence() FenceHandle {
	h := d.fences.insert(fenceRecord{})
	Logger().Debug("rhi: fence created")
	return h
}

// DestroyFence releases the GLsync object backing h, if one was ever
// signaled.
func (d *Device) DestroyFence(h FenceHandle) {
	rec := d.fences.tryGet(h)
	if rec == nil {
		Logger().Warn("rhi: destroy_fence: handle not found", "handle", h.id)
		return
	}
	if rec.sync != 0 {
		gl.DeleteSync(syncFromUintptr(rec.sync))
	}
	d.fences.remove(h)
	Logger().Debug("rhi: fence destroyed")
}

// waitFence issues a server-side wait: the GPU's command stream blocks until
// h is signaled, but the calling CPU thread does not (spec.md §4.4.9, §5 —
// "there is no CPU-side blocking primitive"). Waiting on a fence that was
// never signaled (signal_fence was never called on the queue) is a
// validation error, not a deadlock: the queue tracks which fences it has
// signaled and rejects the wait immediately in that case (see queue.go).
func (d *Device) waitFence(h FenceHandle) error {
	rec := d.fences.tryGet(h)
	if rec == nil {
		return errorf("rhi: wait_for_fence: handle not found")
	}
	if rec.sync == 0 {
		return errorf("rhi: wait_for_fence: fence was never signaled")
	}
	gl.WaitSync(syncFromUintptr(rec.sync), 0, gl.TIMEOUT_IGNORED)
	return nil
}

func syncFromUintptr(p uintptr) unsafe.Pointer { return unsafe.Pointer(p) } //nolint:govet
