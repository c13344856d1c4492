package rhi

import "github.com/go-gl/gl/v4.3-core/gl"

// CreateSampler allocates a GL sampler object. Samplers are bound
// independently of textures at draw time (see ShaderBindingDescriptor),
// matching how the original keeps sampler state off the texture object.
func (d *Device) CreateSampler(desc SamplerDescriptor) SamplerHandle {
	if err := validateSamplerDesc(&desc); err != nil {
		Logger().Error("rhi: create_sampler rejected", "error", err, "label", desc.Label)
		return SamplerHandle{}
	}

	var id uint32
	gl.GenSamplers(1, &id)
	if id == 0 {
		Logger().Error("rhi: create_sampler: glGenSamplers returned 0", "label", desc.Label)
		return SamplerHandle{}
	}

	gl.SamplerParameteri(id, gl.TEXTURE_MIN_FILTER, toGLMinFilter(desc.MinFilter, desc.MipmapMode))
	gl.SamplerParameteri(id, gl.TEXTURE_MAG_FILTER, toGLMagFilter(desc.MagFilter))
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_S, toGLWrap(desc.WrapU))
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_T, toGLWrap(desc.WrapV))
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_R, toGLWrap(desc.WrapW))
	gl.SamplerParameterf(id, gl.TEXTURE_MIN_LOD, desc.MinLOD)
	gl.SamplerParameterf(id, gl.TEXTURE_MAX_LOD, desc.MaxLOD)
	gl.SamplerParameterfv(id, gl.TEXTURE_BORDER_COLOR, &desc.BorderColor[0])
	if desc.CompareFunc == CompareOff {
		gl.SamplerParameteri(id, gl.TEXTURE_COMPARE_MODE, gl.NONE)
	} else {
		gl.SamplerParameteri(id, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
		gl.SamplerParameteri(id, gl.TEXTURE_COMPARE_FUNC, int32(toGLCompareFunc(desc.CompareFunc)))
	}
	if desc.MaxAnisotropy > 1 {
		gl.SamplerParameterf(id, gl.TEXTURE_MAX_ANISOTROPY, desc.MaxAnisotropy)
	}

	h := d.samplers.insert(samplerRecord{id: id, desc: desc})
	Logger().Debug("rhi: sampler created", "gl_id", id, "label", desc.Label)
	return h
}

// DestroySampler releases the GL sampler object backing h.
func (d *Device) DestroySampler(h SamplerHandle) {
	rec := d.samplers.tryGet(h)
	if rec == nil {
		Logger().Warn("rhi: destroy_sampler: handle not found", "handle", h.id)
		return
	}
	id := rec.id
	gl.DeleteSamplers(1, &id)
	d.samplers.remove(h)
	Logger().Debug("rhi: sampler destroyed", "gl_id", id)
}
