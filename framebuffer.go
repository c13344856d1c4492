package rhi

import "github.com/go-gl/gl/v4.3-core/gl"

// CreateFramebuffer builds concrete storage (an FBO binding a set of
// texture attachments) compatible with rp. Validation checks attachment
// counts, presence, and resolve-target requirements against rp's
// descriptor. Grounded on graphics_device_opengl.cpp's create_framebuffer.
func (d *Device) CreateFramebuffer(rp RenderPassHandle, desc FramebufferDescriptor) FramebufferHandle {
	rpRec := d.renderPasses.tryGet(rp)
	if rpRec == nil {
		Logger().Error("rhi: create_framebuffer rejected", "error", "render pass handle not found", "label", desc.Label)
		return FramebufferHandle{}
	}
	if err := validateFramebufferDesc(&desc, &rpRec.desc, d.textures); err != nil {
		Logger().Error("rhi: create_framebuffer rejected", "error", err, "label", desc.Label)
		return FramebufferHandle{}
	}

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	ok := true
	for i, ca := range desc.Color {
		texRec := d.textures.tryGet(ca.Texture)
		if texRec == nil {
			Logger().Error("rhi: create_framebuffer: color attachment texture not found", "index", i)
			ok = false
			break
		}
		target := texRec.target
		if texRec.desc.Type == TextureTypeCube {
			target = toGLCubeFaceTarget(ca.ArrayLayer)
		}
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(i), target, texRec.id, int32(ca.MipLevel))
	}

	if ok && desc.DepthStencil != nil {
		texRec := d.textures.tryGet(desc.DepthStencil.Texture)
		if texRec == nil {
			Logger().Error("rhi: create_framebuffer: depth/stencil attachment texture not found")
			ok = false
		} else {
			attachment := depthStencilAttachmentEnum(texRec.desc.Format)
			gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, texRec.target, texRec.id, 0)
		}
	}

	if ok {
		status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
		if status != gl.FRAMEBUFFER_COMPLETE {
			Logger().Error("rhi: create_framebuffer: incomplete", "gl_status", status)
			ok = false
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if !ok {
		gl.DeleteFramebuffers(1, &fbo)
		return FramebufferHandle{}
	}

	h := d.framebuffers.insert(framebufferRecord{fbo: fbo, desc: desc, renderPass: rpRec.desc})
	Logger().Debug("rhi: framebuffer created", "gl_fbo", fbo, "label", desc.Label)
	return h
}

// createDefaultFramebuffer registers the window system's own framebuffer
// (GL object 0) as a Framebuffer record so begin_render_pass can target the
// backbuffer through the same handle-based API as any other framebuffer.
// Used by Swapchain; grounded on create_framebuffer_default in
// graphics_device_opengl.cpp.
func (d *Device) createDefaultFramebuffer(rp RenderPassHandle, width, height uint32) FramebufferHandle {
	rpRec := d.renderPasses.tryGet(rp)
	if rpRec == nil {
		Logger().Error("rhi: create_framebuffer_default rejected: render pass handle not found")
		return FramebufferHandle{}
	}
	desc := FramebufferDescriptor{RenderPass: rp, Width: width, Height: height, Label: "default"}
	h := d.framebuffers.insert(framebufferRecord{fbo: 0, desc: desc, renderPass: rpRec.desc})
	Logger().Debug("rhi: default framebuffer registered", "width", width, "height", height)
	return h
}

// DestroyFramebuffer releases the FBO (and lazily-created resolve FBO, if
// any) backing h. The default framebuffer (GL object 0) is never deleted.
func (d *Device) DestroyFramebuffer(h FramebufferHandle) {
	rec := d.framebuffers.tryGet(h)
	if rec == nil {
		Logger().Warn("rhi: destroy_framebuffer: handle not found", "handle", h.id)
		return
	}
	if rec.fbo != 0 {
		gl.DeleteFramebuffers(1, &rec.fbo)
	}
	if rec.resolveFBO != 0 {
		gl.DeleteFramebuffers(1, &rec.resolveFBO)
	}
	d.framebuffers.remove(h)
	Logger().Debug("rhi: framebuffer destroyed", "gl_fbo", rec.fbo)
}

func depthStencilAttachmentEnum(f Format) uint32 {
	switch classOf(f) {
	case dsClassDepthOnly:
		return gl.DEPTH_ATTACHMENT
	case dsClassStencilOnly:
		return gl.STENCIL_ATTACHMENT
	case dsClassDepthStencil:
		return gl.DEPTH_STENCIL_ATTACHMENT
	}
	unreachable("depth/stencil attachment class")
	return 0
}

func classOf(f Format) dsAttachmentClass {
	info, ok := formatTable[f]
	if !ok {
		return dsClassNone
	}
	return info.dsClass
}
