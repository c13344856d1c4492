package rhi

// CreateRenderPass registers a render-pass compatibility contract: the
// attachment formats, sample counts, and load/store ops a Framebuffer must
// match to be used with it. A render pass holds no GL storage of its own;
// see spec.md §4.3.
func (d *Device) CreateRenderPass(desc RenderPassDescriptor) RenderPassHandle {
	if err := validateRenderPassDesc(&desc); err != nil {
		Logger().Error("rhi: create_render_pass rejected", "error", err, "label", desc.Label)
		return RenderPassHandle{}
	}
	h := d.renderPasses.insert(renderPassRecord{desc: desc})
	Logger().Debug("rhi: render pass created", "label", desc.Label)
	return h
}

// DestroyRenderPass removes the render pass record. It owns no GL objects,
// so there is nothing to release beyond the pool slot.
func (d *Device) DestroyRenderPass(h RenderPassHandle) {
	if !d.renderPasses.remove(h) {
		Logger().Warn("rhi: destroy_render_pass: handle not found", "handle", h.id)
		return
	}
	Logger().Debug("rhi: render pass destroyed")
}
