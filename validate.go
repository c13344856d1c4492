package rhi

import "fmt"

// mipExtent returns the extent of mip level `level` along one dimension whose
// base-level extent is base, clamped to at least 1. Used by copy-region bounds
// checks so they validate against the mip's actual size rather than the
// base level's — see SPEC_FULL.md §C.3 for why this module does not carry
// forward the original's full-texture-height bug.
func mipExtent(base uint32, level uint32) uint32 {
	v := base >> level
	if v == 0 {
		v = 1
	}
	return v
}

func validateBufferDesc(d *BufferDescriptor) error {
	if d.Size == 0 {
		return fmt.Errorf("rhi: buffer descriptor: size must be non-zero")
	}
	switch d.Usage {
	case BufferUsageVertex, BufferUsageIndex, BufferUsageUniform, BufferUsageStorage, BufferUsageStage:
	default:
		return fmt.Errorf("rhi: buffer descriptor: invalid usage %d", d.Usage)
	}
	switch d.Access {
	case BufferAccessGPUOnly, BufferAccessCPUToGPU, BufferAccessGPUToCPU:
	default:
		return fmt.Errorf("rhi: buffer descriptor: invalid access %d", d.Access)
	}
	return nil
}

func validateTextureDesc(d *TextureDescriptor) error {
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("rhi: texture descriptor: width and height must be non-zero")
	}
	if _, ok := lookupFormat(d.Format); !ok {
		return fmt.Errorf("rhi: texture descriptor: unrecognized format %d", d.Format)
	}
	if d.MipLevels == 0 {
		return fmt.Errorf("rhi: texture descriptor: mip_levels must be at least 1")
	}
	samples := d.Samples
	if samples == 0 {
		samples = 1
	}
	if samples > 1 {
		if d.MipLevels != 1 {
			return fmt.Errorf("rhi: texture descriptor: multisampled textures must have exactly 1 mip level")
		}
		if d.Type != TextureType2D {
			return fmt.Errorf("rhi: texture descriptor: multisampling is only valid on 2D textures")
		}
		if d.Usage.has(TextureUsageSampled | TextureUsageStorage | TextureUsageResolveSource | TextureUsageResolveDestination) {
			return fmt.Errorf("rhi: texture descriptor: multisampled textures cannot have usage sampled, storage, resolve_source, or resolve_destination")
		}
	}
	if d.Usage.has(TextureUsageResolveSource) && !d.Usage.has(TextureUsageRenderTarget) {
		return fmt.Errorf("rhi: texture descriptor: resolve_source usage requires render_target usage")
	}
	if d.Usage.has(TextureUsageDepthStencilTarget) {
		if !isDepthStencilFormat(d.Format) {
			return fmt.Errorf("rhi: texture descriptor: depth_stencil_target usage requires a depth/stencil format")
		}
		if d.Usage.has(TextureUsageStorage) {
			return fmt.Errorf("rhi: texture descriptor: depth_stencil_target usage cannot be combined with storage")
		}
	}
	switch d.Type {
	case TextureType2D:
		if d.DepthOrLayers > 1 {
			return fmt.Errorf("rhi: texture descriptor: 2D texture depth_or_layers must be 0 or 1")
		}
	case TextureType3D:
		if d.DepthOrLayers == 0 {
			return fmt.Errorf("rhi: texture descriptor: 3D texture must have depth >= 1")
		}
	case TextureTypeCube:
		if d.DepthOrLayers != 0 && d.DepthOrLayers != 6 {
			return fmt.Errorf("rhi: texture descriptor: cube texture depth_or_layers must be 6")
		}
		if d.Width != d.Height {
			return fmt.Errorf("rhi: texture descriptor: cube texture faces must be square")
		}
	default:
		return fmt.Errorf("rhi: texture descriptor: invalid type %d", d.Type)
	}
	return nil
}

func validateSamplerDesc(d *SamplerDescriptor) error {
	if d.MaxLOD < d.MinLOD {
		return fmt.Errorf("rhi: sampler descriptor: max_lod must be >= min_lod")
	}
	if d.MaxAnisotropy < 0 {
		return fmt.Errorf("rhi: sampler descriptor: max_anisotropy must be >= 0")
	}
	return nil
}

func validatePipelineDesc(d *PipelineDescriptor) error {
	if d.VertexShaderSource == "" || d.FragmentShaderSource == "" {
		return fmt.Errorf("rhi: pipeline descriptor: both vertex and fragment shader source are required")
	}
	seenLocations := map[uint32]bool{}
	for bi, vb := range d.VertexBindings {
		if vb.Stride == 0 {
			return fmt.Errorf("rhi: pipeline descriptor: vertex binding %d: stride must be non-zero", bi)
		}
		for _, attr := range vb.Attributes {
			if seenLocations[attr.Location] {
				return fmt.Errorf("rhi: pipeline descriptor: attribute location %d bound more than once", attr.Location)
			}
			seenLocations[attr.Location] = true
			if _, ok := lookupFormat(attr.Format); !ok {
				return fmt.Errorf("rhi: pipeline descriptor: vertex binding %d: unrecognized attribute format %d", bi, attr.Format)
			}
		}
	}
	samples := d.Multisample.Samples
	if samples == 0 {
		samples = 1
	}
	if samples > 1 && d.Multisample.AlphaToCoverageEnabled && len(d.ColorBlend) == 0 {
		return fmt.Errorf("rhi: pipeline descriptor: alpha_to_coverage requires at least one color attachment")
	}
	return nil
}

func validateRenderPassDesc(d *RenderPassDescriptor) error {
	if len(d.ColorAttachments) == 0 && d.DepthStencil == nil {
		return fmt.Errorf("rhi: render pass descriptor: at least one attachment is required")
	}
	var refSamples uint32
	haveRef := false
	for i, ca := range d.ColorAttachments {
		if _, ok := lookupFormat(ca.Format); !ok {
			return fmt.Errorf("rhi: render pass descriptor: color attachment %d: unrecognized format", i)
		}
		if isDepthStencilFormat(ca.Format) {
			return fmt.Errorf("rhi: render pass descriptor: color attachment %d: format is a depth/stencil format", i)
		}
		s := ca.Samples
		if s == 0 {
			s = 1
		}
		if !haveRef {
			refSamples, haveRef = s, true
		} else if s != refSamples {
			return fmt.Errorf("rhi: render pass descriptor: color attachment %d: sample count %d does not match the other attachments (%d)", i, s, refSamples)
		}
		if ca.Store == StoreOpResolve && s == 1 {
			return fmt.Errorf("rhi: render pass descriptor: color attachment %d: resolve store op requires samples > 1", i)
		}
	}
	if d.DepthStencil != nil {
		if !isDepthStencilFormat(d.DepthStencil.Format) {
			return fmt.Errorf("rhi: render pass descriptor: depth/stencil attachment: format is not a depth/stencil format")
		}
		s := d.DepthStencil.Samples
		if s == 0 {
			s = 1
		}
		if !haveRef {
			refSamples, haveRef = s, true
		} else if s != refSamples {
			return fmt.Errorf("rhi: render pass descriptor: depth/stencil attachment sample count %d does not match color attachments (%d)", s, refSamples)
		}
	}
	return nil
}

// validateFramebufferDesc checks d for compatibility with rp per spec.md
// §4.2: attachment counts and presence, each attachment's size matching
// (width, height), format and sample count matching the render pass, and
// the usage-flag requirements a sample_count=1 vs sample_count>1 attachment
// and its resolve target must carry. GL's own framebuffer-completeness
// check (glCheckFramebufferStatus, in CreateFramebuffer) does not enforce
// any of this — it is silent about sample-count, format, or usage-flag
// mismatches that aren't GL completeness errors in their own right.
func validateFramebufferDesc(d *FramebufferDescriptor, rp *RenderPassDescriptor, textures *pool[textureKind, textureRecord]) error {
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("rhi: framebuffer descriptor: width and height must be non-zero")
	}
	if len(d.Color) != len(rp.ColorAttachments) {
		return fmt.Errorf("rhi: framebuffer descriptor: %d color attachments does not match render pass's %d", len(d.Color), len(rp.ColorAttachments))
	}
	resolveTargetCount := 0
	for i, rpCA := range rp.ColorAttachments {
		fbCA := d.Color[i]
		if fbCA.Texture.IsNull() {
			return fmt.Errorf("rhi: framebuffer descriptor: color attachment %d: texture handle is null", i)
		}
		texRec := textures.tryGet(fbCA.Texture)
		if texRec == nil {
			return fmt.Errorf("rhi: framebuffer descriptor: color attachment %d: texture handle not found", i)
		}
		if err := validateAttachmentAgainstRenderPass(i, "color", texRec, rpCA.Format, rpCA.Samples, d.Width, d.Height); err != nil {
			return err
		}
		rpSamples := rpCA.Samples
		if rpSamples == 0 {
			rpSamples = 1
		}
		if rpSamples == 1 {
			if !texRec.desc.Usage.has(TextureUsageRenderTarget) {
				return fmt.Errorf("rhi: framebuffer descriptor: color attachment %d: texture must have usage render_target", i)
			}
		} else {
			if !texRec.desc.Usage.has(TextureUsageRenderTarget) || !texRec.desc.Usage.has(TextureUsageResolveSource) {
				return fmt.Errorf("rhi: framebuffer descriptor: color attachment %d: multisampled texture must have usage render_target and resolve_source", i)
			}
		}
		if rpCA.Store == StoreOpResolve {
			if fbCA.ResolveTarget.IsNull() {
				return fmt.Errorf("rhi: framebuffer descriptor: color attachment %d: render pass requires a resolve target", i)
			}
			resolveTargetCount++
			resolveRec := textures.tryGet(fbCA.ResolveTarget)
			if resolveRec == nil {
				return fmt.Errorf("rhi: framebuffer descriptor: color attachment %d: resolve target texture handle not found", i)
			}
			if !resolveRec.desc.Usage.has(TextureUsageResolveDestination) {
				return fmt.Errorf("rhi: framebuffer descriptor: color attachment %d: resolve target must have usage resolve_destination", i)
			}
			if err := validateAttachmentAgainstRenderPass(i, "color resolve target", resolveRec, rpCA.Format, 1, d.Width, d.Height); err != nil {
				return err
			}
		}
	}
	if resolveTargetCount > len(rp.ColorAttachments) {
		return fmt.Errorf("rhi: framebuffer descriptor: resolve target count (%d) exceeds color attachment count (%d)", resolveTargetCount, len(rp.ColorAttachments))
	}
	if (rp.DepthStencil == nil) != (d.DepthStencil == nil) {
		return fmt.Errorf("rhi: framebuffer descriptor: depth/stencil attachment presence does not match render pass")
	}
	if rp.DepthStencil != nil {
		rpDS := rp.DepthStencil
		dsTexRec := textures.tryGet(d.DepthStencil.Texture)
		if dsTexRec == nil {
			return fmt.Errorf("rhi: framebuffer descriptor: depth/stencil attachment: texture handle not found")
		}
		if err := validateAttachmentAgainstRenderPass(-1, "depth/stencil", dsTexRec, rpDS.Format, rpDS.Samples, d.Width, d.Height); err != nil {
			return err
		}
		rpSamples := rpDS.Samples
		if rpSamples == 0 {
			rpSamples = 1
		}
		if rpSamples == 1 {
			if !dsTexRec.desc.Usage.has(TextureUsageDepthStencilTarget) {
				return fmt.Errorf("rhi: framebuffer descriptor: depth/stencil attachment: texture must have usage depth_stencil_target")
			}
		} else {
			if !dsTexRec.desc.Usage.has(TextureUsageDepthStencilTarget) || !dsTexRec.desc.Usage.has(TextureUsageResolveSource) {
				return fmt.Errorf("rhi: framebuffer descriptor: depth/stencil attachment: multisampled texture must have usage depth_stencil_target and resolve_source")
			}
		}
		needsResolveTarget := rpDS.DepthStore == StoreOpResolve || rpDS.StencilStore == StoreOpResolve
		if needsResolveTarget && d.DepthStencil.ResolveTarget.IsNull() {
			return fmt.Errorf("rhi: framebuffer descriptor: depth/stencil attachment: render pass requires a resolve target")
		}
		if !d.DepthStencil.ResolveTarget.IsNull() {
			resolveRec := textures.tryGet(d.DepthStencil.ResolveTarget)
			if resolveRec == nil {
				return fmt.Errorf("rhi: framebuffer descriptor: depth/stencil attachment: resolve target texture handle not found")
			}
			if !resolveRec.desc.Usage.has(TextureUsageResolveDestination) {
				return fmt.Errorf("rhi: framebuffer descriptor: depth/stencil attachment: resolve target must have usage resolve_destination")
			}
			if err := validateAttachmentAgainstRenderPass(-1, "depth/stencil resolve target", resolveRec, rpDS.Format, 1, d.Width, d.Height); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateAttachmentAgainstRenderPass checks one framebuffer attachment's
// texture against its paired render-pass attachment's format and sample
// count, and against the framebuffer's own (width, height). index is -1 for
// the depth/stencil attachment, which has no positional index to report.
func validateAttachmentAgainstRenderPass(index int, kind string, tex *textureRecord, rpFormat Format, rpSamples uint32, fbWidth, fbHeight uint32) error {
	label := kind
	if index >= 0 {
		label = fmt.Sprintf("%s attachment %d", kind, index)
	}
	if tex.desc.Width != fbWidth || tex.desc.Height != fbHeight {
		return fmt.Errorf("rhi: framebuffer descriptor: %s: texture size (%d, %d) does not match framebuffer size (%d, %d)", label, tex.desc.Width, tex.desc.Height, fbWidth, fbHeight)
	}
	if tex.desc.Format != rpFormat {
		return fmt.Errorf("rhi: framebuffer descriptor: %s: texture format does not match render pass", label)
	}
	texSamples := tex.desc.Samples
	if texSamples == 0 {
		texSamples = 1
	}
	if rpSamples == 0 {
		rpSamples = 1
	}
	if texSamples != rpSamples {
		return fmt.Errorf("rhi: framebuffer descriptor: %s: texture sample count %d does not match render pass's %d", label, texSamples, rpSamples)
	}
	return nil
}

func validateShaderBindingDesc(d *ShaderBindingDescriptor) error {
	seen := map[uint32]bool{}
	for _, tb := range d.Textures {
		if seen[tb.Slot] {
			return fmt.Errorf("rhi: shader binding descriptor: slot %d bound more than once", tb.Slot)
		}
		seen[tb.Slot] = true
	}
	seen = map[uint32]bool{}
	for _, bb := range d.Buffers {
		if seen[bb.Slot] {
			return fmt.Errorf("rhi: shader binding descriptor: buffer slot %d bound more than once", bb.Slot)
		}
		seen[bb.Slot] = true
	}
	return nil
}

// validateCopyRegionAgainstTexture checks a TextureCopyRegion's footprint
// against the actual texture it targets, using the mip level's own extent
// rather than the base level's — the corrected bounds check per
// SPEC_FULL.md §C.3.
func validateCopyRegionAgainstTexture(r *TextureCopyRegion, t *textureRecord) error {
	if r.MipLevel >= t.desc.MipLevels {
		return fmt.Errorf("rhi: copy region: mip level %d out of range (texture has %d)", r.MipLevel, t.desc.MipLevels)
	}
	mipW := mipExtent(t.desc.Width, r.MipLevel)
	mipH := mipExtent(t.desc.Height, r.MipLevel)
	if r.XOffset+r.Width > mipW {
		return fmt.Errorf("rhi: copy region: x_offset+width (%d) exceeds mip %d width (%d)", r.XOffset+r.Width, r.MipLevel, mipW)
	}
	if r.YOffset+r.Height > mipH {
		return fmt.Errorf("rhi: copy region: y_offset+height (%d) exceeds mip %d height (%d)", r.YOffset+r.Height, r.MipLevel, mipH)
	}
	switch t.desc.Type {
	case TextureType3D:
		if r.Depth == 0 {
			return fmt.Errorf("rhi: copy region: 3D texture copy requires depth > 0")
		}
		mipD := mipExtent(t.desc.DepthOrLayers, r.MipLevel)
		if r.ZOffset+r.Depth > mipD {
			return fmt.Errorf("rhi: copy region: z_offset+depth (%d) exceeds mip %d depth (%d)", r.ZOffset+r.Depth, r.MipLevel, mipD)
		}
	default:
		if r.Depth != 1 {
			return fmt.Errorf("rhi: copy region: 2D/cube texture copy requires depth = 1")
		}
		if r.ZOffset != 0 {
			return fmt.Errorf("rhi: copy region: 2D/cube texture copy requires z_offset = 0")
		}
	}
	return nil
}

// validateCopyBufferToTexture checks the full set of preconditions spec.md
// §4.4.8 lists for copy_buffer_to_texture, beyond the shared region/mip
// bounds check above.
func validateCopyBufferToTexture(srcRec *bufferRecord, dstRec *textureRecord, region *TextureCopyRegion) error {
	if srcRec.desc.Usage != BufferUsageStage {
		return fmt.Errorf("rhi: copy_buffer_to_texture: source buffer must have usage = stage")
	}
	if srcRec.desc.Access != BufferAccessCPUToGPU {
		return fmt.Errorf("rhi: copy_buffer_to_texture: source buffer must have access = cpu_to_gpu")
	}
	samples := dstRec.desc.Samples
	if samples == 0 {
		samples = 1
	}
	if samples > 1 {
		return fmt.Errorf("rhi: copy_buffer_to_texture: destination texture must not be multisampled")
	}
	if !dstRec.desc.Usage.has(TextureUsageTransferDestination) {
		return fmt.Errorf("rhi: copy_buffer_to_texture: destination texture must have usage transfer_destination")
	}
	info, ok := lookupFormat(dstRec.desc.Format)
	if !ok || !info.isColor {
		return fmt.Errorf("rhi: copy_buffer_to_texture: destination texture format must be a color format")
	}
	if err := validateCopyRegionAgainstTexture(region, dstRec); err != nil {
		return err
	}
	rowLength := region.BufferRowLength
	if rowLength == 0 {
		rowLength = region.Width
	}
	rowBytes := uint64(rowLength) * uint64(info.bytesPerPixel)
	realRowBytes := uint64(region.Width) * uint64(info.bytesPerPixel)
	needed := rowBytes*uint64(region.Height)*uint64(region.Depth) - (rowBytes - realRowBytes)
	if region.BufferOffset+needed > srcRec.desc.Size {
		return fmt.Errorf("rhi: copy_buffer_to_texture: source buffer is too small for the requested region")
	}
	return nil
}

// validateCopyTextureToBuffer mirrors validateCopyBufferToTexture for the
// opposite direction.
func validateCopyTextureToBuffer(srcRec *textureRecord, dstRec *bufferRecord, region *TextureCopyRegion) error {
	if !srcRec.desc.Usage.has(TextureUsageTransferSource) {
		return fmt.Errorf("rhi: copy_texture_to_buffer: source texture must have usage transfer_source")
	}
	if dstRec.desc.Usage != BufferUsageStage {
		return fmt.Errorf("rhi: copy_texture_to_buffer: destination buffer must have usage = stage")
	}
	if dstRec.desc.Access != BufferAccessGPUToCPU {
		return fmt.Errorf("rhi: copy_texture_to_buffer: destination buffer must have access = gpu_to_cpu")
	}
	if err := validateCopyRegionAgainstTexture(region, srcRec); err != nil {
		return err
	}
	info, ok := lookupFormat(srcRec.desc.Format)
	if !ok {
		return fmt.Errorf("rhi: copy_texture_to_buffer: unrecognized source format")
	}
	rowLength := region.BufferRowLength
	if rowLength == 0 {
		rowLength = region.Width
	}
	rowBytes := uint64(rowLength) * uint64(info.bytesPerPixel)
	realRowBytes := uint64(region.Width) * uint64(info.bytesPerPixel)
	needed := rowBytes*uint64(region.Height)*uint64(region.Depth) - (rowBytes - realRowBytes)
	if region.BufferOffset+needed > dstRec.desc.Size {
		return fmt.Errorf("rhi: copy_texture_to_buffer: destination buffer is too small for the requested region")
	}
	return nil
}
