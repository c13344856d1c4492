package rhi

import "testing"

func TestValidateBufferDescRejectsZeroSize(t *testing.T) {
	d := BufferDescriptor{Size: 0, Usage: BufferUsageVertex, Access: BufferAccessGPUOnly}
	if err := validateBufferDesc(&d); err == nil {
		t.Fatalf("expected an error for a zero-size buffer")
	}
}

func TestValidateBufferDescAcceptsWellFormed(t *testing.T) {
	d := BufferDescriptor{Size: 256, Usage: BufferUsageUniform, Access: BufferAccessCPUToGPU}
	if err := validateBufferDesc(&d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateTextureDescRejectsMultisampledMipmaps(t *testing.T) {
	d := TextureDescriptor{
		Type: TextureType2D, Format: FormatRGBA8Unorm,
		Width: 64, Height: 64, MipLevels: 4, Samples: 4,
		Usage: TextureUsageRenderTarget,
	}
	if err := validateTextureDesc(&d); err == nil {
		t.Fatalf("expected an error for a multisampled texture with more than one mip level")
	}
}

func TestValidateTextureDescRejectsNonSquareCube(t *testing.T) {
	d := TextureDescriptor{
		Type: TextureTypeCube, Format: FormatRGBA8Unorm,
		Width: 64, Height: 32, DepthOrLayers: 6, MipLevels: 1,
		Usage: TextureUsageSampled,
	}
	if err := validateTextureDesc(&d); err == nil {
		t.Fatalf("expected an error for a non-square cube face")
	}
}

func TestValidateRenderPassDescRequiresMatchingSampleCounts(t *testing.T) {
	d := RenderPassDescriptor{
		ColorAttachments: []ColorAttachmentDescriptor{
			{Format: FormatRGBA8Unorm, Samples: 1, Load: LoadOpClear, Store: StoreOpStore},
			{Format: FormatRGBA8Unorm, Samples: 4, Load: LoadOpClear, Store: StoreOpStore},
		},
	}
	if err := validateRenderPassDesc(&d); err == nil {
		t.Fatalf("expected an error for mismatched sample counts across color attachments")
	}
}

func TestValidateRenderPassDescRejectsColorFormatOnDepthAttachment(t *testing.T) {
	d := RenderPassDescriptor{
		ColorAttachments: []ColorAttachmentDescriptor{
			{Format: FormatDepth24Stencil8, Samples: 1, Load: LoadOpClear, Store: StoreOpStore},
		},
	}
	if err := validateRenderPassDesc(&d); err == nil {
		t.Fatalf("expected an error for a depth/stencil format used as a color attachment")
	}
}

func TestValidateRenderPassDescRejectsResolveAtOneSample(t *testing.T) {
	d := RenderPassDescriptor{
		ColorAttachments: []ColorAttachmentDescriptor{
			{Format: FormatRGBA8Unorm, Samples: 1, Load: LoadOpClear, Store: StoreOpResolve},
		},
	}
	if err := validateRenderPassDesc(&d); err == nil {
		t.Fatalf("expected an error for a resolve store op at sample count 1")
	}
}

func TestValidateFramebufferDescRequiresResolveTargetWhenPassResolves(t *testing.T) {
	rp := RenderPassDescriptor{
		ColorAttachments: []ColorAttachmentDescriptor{
			{Format: FormatRGBA8Unorm, Samples: 4, Load: LoadOpClear, Store: StoreOpResolve},
		},
	}
	textures := newPool[textureKind, textureRecord]()
	msaaTex := textures.insert(textureRecord{desc: TextureDescriptor{
		Width: 64, Height: 64, Format: FormatRGBA8Unorm, Samples: 4,
		Usage: TextureUsageRenderTarget | TextureUsageResolveSource,
	}})
	fb := FramebufferDescriptor{
		Width: 64, Height: 64,
		Color: []FramebufferColorAttachment{{Texture: msaaTex}},
	}
	if err := validateFramebufferDesc(&fb, &rp, textures); err == nil {
		t.Fatalf("expected an error: render pass requires a resolve target but none was given")
	}
}

func TestValidateFramebufferDescAcceptsMatchingResolveTarget(t *testing.T) {
	rp := RenderPassDescriptor{
		ColorAttachments: []ColorAttachmentDescriptor{
			{Format: FormatRGBA8Unorm, Samples: 4, Load: LoadOpClear, Store: StoreOpResolve},
		},
	}
	textures := newPool[textureKind, textureRecord]()
	msaaTex := textures.insert(textureRecord{desc: TextureDescriptor{
		Width: 64, Height: 64, Format: FormatRGBA8Unorm, Samples: 4,
		Usage: TextureUsageRenderTarget | TextureUsageResolveSource,
	}})
	resolveTex := textures.insert(textureRecord{desc: TextureDescriptor{
		Width: 64, Height: 64, Format: FormatRGBA8Unorm, Samples: 1,
		Usage: TextureUsageResolveDestination,
	}})
	fb := FramebufferDescriptor{
		Width: 64, Height: 64,
		Color: []FramebufferColorAttachment{{
			Texture:       msaaTex,
			ResolveTarget: resolveTex,
		}},
	}
	if err := validateFramebufferDesc(&fb, &rp, textures); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCopyRegionUsesMipExtentNotBaseExtent(t *testing.T) {
	tex := &textureRecord{
		desc: TextureDescriptor{
			Type: TextureType2D, Format: FormatRGBA8Unorm,
			Width: 256, Height: 256, MipLevels: 4,
		},
	}
	// At mip level 2, width/height are 64x64. A region starting at y=32
	// with height 48 reaches y=80, which exceeds the mip's 64 but would
	// have passed a (buggy) check against the base level's 256.
	region := TextureCopyRegion{MipLevel: 2, YOffset: 32, Width: 32, Height: 48}
	if err := validateCopyRegionAgainstTexture(&region, tex); err == nil {
		t.Fatalf("expected an error: region exceeds mip level 2's actual extent")
	}
}

func TestValidateCopyRegionAcceptsWithinMipExtent(t *testing.T) {
	tex := &textureRecord{
		desc: TextureDescriptor{
			Type: TextureType2D, Format: FormatRGBA8Unorm,
			Width: 256, Height: 256, MipLevels: 4,
		},
	}
	region := TextureCopyRegion{MipLevel: 2, XOffset: 0, YOffset: 0, Width: 64, Height: 64, Depth: 1}
	if err := validateCopyRegionAgainstTexture(&region, tex); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateShaderBindingDescRejectsDuplicateSlot(t *testing.T) {
	d := ShaderBindingDescriptor{
		Textures: []TextureBinding{
			{Slot: 0, Texture: Handle[textureKind]{id: 1}},
			{Slot: 0, Texture: Handle[textureKind]{id: 2}},
		},
	}
	if err := validateShaderBindingDesc(&d); err == nil {
		t.Fatalf("expected an error for a texture slot bound twice")
	}
}
