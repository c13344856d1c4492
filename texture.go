package rhi

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// CreateTexture allocates GPU texture storage for every mip level (and,
// for cube textures, every face). pixels is optional (nil for no initial
// upload): when given, desc.Usage must include TextureUsageTransferDestination
// and the texture must not be multisampled, and if desc.MipLevels > 1 the
// backend mipmap chain is generated after the base level upload. stride is
// the row pitch in bytes and overrides the natural tight row pitch when
// nonzero. Grounded on graphics_device_opengl.cpp's create_texture (2D/3D/
// cube-map face loop, multisample storage via TexImage2DMultisample,
// mipmap-chain generation after initial upload) and hal/gles/device.go's
// CreateTexture GL call shape.
func (d *Device) CreateTexture(desc TextureDescriptor, pixels []byte, stride uint32) TextureHandle {
	if err := validateTextureDesc(&desc); err != nil {
		Logger().Error("rhi: create_texture rejected", "error", err, "label", desc.Label)
		return TextureHandle{}
	}
	info, _ := lookupFormat(desc.Format)
	samples := desc.Samples
	if samples == 0 {
		samples = 1
	}
	if len(pixels) > 0 {
		if samples > 1 {
			Logger().Error("rhi: create_texture rejected: initial pixels are not allowed on a multisampled texture", "label", desc.Label)
			return TextureHandle{}
		}
		if !desc.Usage.has(TextureUsageTransferDestination) {
			Logger().Error("rhi: create_texture rejected: initial pixels require usage transfer_destination", "label", desc.Label)
			return TextureHandle{}
		}
	}

	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		Logger().Error("rhi: create_texture: glGenTextures returned 0", "label", desc.Label)
		return TextureHandle{}
	}
	target := toGLTextureTarget(desc.Type, samples)
	gl.BindTexture(target, id)

	if stride != 0 && info.bytesPerPixel > 0 {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(stride/info.bytesPerPixel))
	}

	var basePixels unsafe.Pointer
	if len(pixels) > 0 {
		basePixels = gl.Ptr(&pixels[0])
	}

	switch {
	case samples > 1:
		gl.TexImage2DMultisample(target, int32(samples), uint32(info.internalFormat), int32(desc.Width), int32(desc.Height), true)
	case desc.Type == TextureTypeCube:
		for face := uint32(0); face < 6; face++ {
			faceTarget := toGLCubeFaceTarget(face)
			for level := uint32(0); level < desc.MipLevels; level++ {
				w, h := int32(mipExtent(desc.Width, level)), int32(mipExtent(desc.Height, level))
				var levelPixels unsafe.Pointer
				if level == 0 && face == 0 {
					levelPixels = basePixels
				}
				gl.TexImage2D(faceTarget, int32(level), info.internalFormat, w, h, 0, info.dataFormat, info.dataType, levelPixels)
			}
		}
	case desc.Type == TextureType3D:
		for level := uint32(0); level < desc.MipLevels; level++ {
			w := int32(mipExtent(desc.Width, level))
			h := int32(mipExtent(desc.Height, level))
			dp := int32(mipExtent(desc.DepthOrLayers, level))
			var levelPixels unsafe.Pointer
			if level == 0 {
				levelPixels = basePixels
			}
			gl.TexImage3D(target, int32(level), info.internalFormat, w, h, dp, 0, info.dataFormat, info.dataType, levelPixels)
		}
	default: // 2D
		for level := uint32(0); level < desc.MipLevels; level++ {
			w, h := int32(mipExtent(desc.Width, level)), int32(mipExtent(desc.Height, level))
			var levelPixels unsafe.Pointer
			if level == 0 {
				levelPixels = basePixels
			}
			gl.TexImage2D(target, int32(level), info.internalFormat, w, h, 0, info.dataFormat, info.dataType, levelPixels)
		}
	}

	if stride != 0 {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	}

	if samples <= 1 {
		gl.TexParameteri(target, gl.TEXTURE_MAX_LEVEL, int32(desc.MipLevels-1))
	}
	if len(pixels) > 0 && desc.MipLevels > 1 {
		gl.GenerateMipmap(target)
	}
	gl.BindTexture(target, 0)

	h := d.textures.insert(textureRecord{id: id, target: target, desc: desc})
	Logger().Debug("rhi: texture created", "gl_id", id, "label", desc.Label)
	return h
}

// DestroyTexture releases the GL texture object backing h.
func (d *Device) DestroyTexture(h TextureHandle) {
	rec := d.textures.tryGet(h)
	if rec == nil {
		Logger().Warn("rhi: destroy_texture: handle not found", "handle", h.id)
		return
	}
	id := rec.id
	gl.DeleteTextures(1, &id)
	d.textures.remove(h)
	Logger().Debug("rhi: texture destroyed", "gl_id", id)
}

// CopyBufferToTexture uploads a region of a CPU-writable buffer into a
// texture sub-resource. Bounds-checked against the target mip level's
// actual extent, not the base level's — see SPEC_FULL.md §C.3.
func (d *Device) CopyBufferToTexture(src BufferHandle, dst TextureHandle, region TextureCopyRegion) error {
	srcRec := d.buffers.tryGet(src)
	if srcRec == nil {
		return errorf("rhi: copy_buffer_to_texture: source buffer handle not found")
	}
	dstRec := d.textures.tryGet(dst)
	if dstRec == nil {
		return errorf("rhi: copy_buffer_to_texture: destination texture handle not found")
	}
	if err := validateCopyBufferToTexture(srcRec, dstRec, &region); err != nil {
		return err
	}
	info, _ := lookupFormat(dstRec.desc.Format)

	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, srcRec.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if region.BufferRowLength != 0 {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(region.BufferRowLength))
	} else {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	}

	target := dstRec.target
	if dstRec.desc.Type == TextureTypeCube {
		target = toGLCubeFaceTarget(region.LayerIndex)
	}
	gl.BindTexture(dstRec.target, dstRec.id)

	offset := gl.PtrOffset(int(region.BufferOffset))
	switch dstRec.desc.Type {
	case TextureType3D:
		gl.TexSubImage3D(target, int32(region.MipLevel), int32(region.XOffset), int32(region.YOffset), int32(region.ZOffset),
			int32(region.Width), int32(region.Height), int32(region.Depth), info.dataFormat, info.dataType, offset)
	default:
		gl.TexSubImage2D(target, int32(region.MipLevel), int32(region.XOffset), int32(region.YOffset),
			int32(region.Width), int32(region.Height), info.dataFormat, info.dataType, offset)
	}

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	gl.BindTexture(dstRec.target, 0)
	return nil
}

// CopyTextureToBuffer reads back a texture sub-resource into a CPU-readable
// buffer via an ephemeral read FBO: color formats attach to
// COLOR_ATTACHMENT0, depth/stencil formats attach by their depth/stencil/
// depth_stencil attachment class (see depthStencilAttachmentEnum). The
// caller's previously bound read framebuffer is restored on return, per
// spec.md §4.4.8.
func (d *Device) CopyTextureToBuffer(src TextureHandle, dst BufferHandle, region TextureCopyRegion) error {
	srcRec := d.textures.tryGet(src)
	if srcRec == nil {
		return errorf("rhi: copy_texture_to_buffer: source texture handle not found")
	}
	dstRec := d.buffers.tryGet(dst)
	if dstRec == nil {
		return errorf("rhi: copy_texture_to_buffer: destination buffer handle not found")
	}
	if err := validateCopyTextureToBuffer(srcRec, dstRec, &region); err != nil {
		return err
	}
	info, _ := lookupFormat(srcRec.desc.Format)

	var prevReadFBO int32
	gl.GetIntegerv(gl.READ_FRAMEBUFFER_BINDING, &prevReadFBO)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	defer gl.DeleteFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo)
	attachTarget := srcRec.target
	if srcRec.desc.Type == TextureTypeCube {
		attachTarget = toGLCubeFaceTarget(region.LayerIndex)
	}
	if info.isColor {
		gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, attachTarget, srcRec.id, int32(region.MipLevel))
		gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	} else {
		attachment := depthStencilAttachmentEnum(srcRec.desc.Format)
		gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, attachment, attachTarget, srcRec.id, int32(region.MipLevel))
		gl.ReadBuffer(gl.NONE)
	}

	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, dstRec.id)
	if region.BufferRowLength != 0 {
		gl.PixelStorei(gl.PACK_ROW_LENGTH, int32(region.BufferRowLength))
	}
	gl.ReadPixels(int32(region.XOffset), int32(region.YOffset), int32(region.Width), int32(region.Height),
		info.dataFormat, info.dataType, gl.PtrOffset(int(region.BufferOffset)))
	gl.PixelStorei(gl.PACK_ROW_LENGTH, 0)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, uint32(prevReadFBO))
	return nil
}
