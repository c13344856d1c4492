package rhi

// CreateShaderBinding records a set of texture and buffer bindings to be
// applied together at draw time via bind_shader_binding. A shader binding
// holds no GL storage of its own — it is applied by issuing the
// corresponding glActiveTexture/glBindTexture, glBindSampler and
// glBindBufferBase/glBindBufferRange calls
// when the command queue binds it.
func (d *Device) CreateShaderBinding(desc ShaderBindingDescriptor) ShaderBindingHandle {
	if err := validateShaderBindingDesc(&desc); err != nil {
		Logger().Error("rhi: create_shader_binding rejected", "error", err, "label", desc.Label)
		return ShaderBindingHandle{}
	}
	h := d.shaderBindings.insert(shaderBindingRecord{desc: desc})
	Logger().Debug("rhi: shader binding created", "label", desc.Label)
	return h
}

// DestroyShaderBinding removes the shader binding record.
func (d *Device) DestroyShaderBinding(h ShaderBindingHandle) {
	if !d.shaderBindings.remove(h) {
		Logger().Warn("rhi: destroy_shader_binding: handle not found", "handle", h.id)
		return
	}
	Logger().Debug("rhi: shader binding destroyed")
}
