package rhi

// BufferDescriptor describes a buffer to be created by CreateBuffer.
// spec.md §3.
type BufferDescriptor struct {
	Size   uint64
	Usage  BufferUsage
	Access BufferAccess
	Label  string
}

// TextureDescriptor describes a texture to be created by CreateTexture.
// spec.md §3.
type TextureDescriptor struct {
	Type        TextureType
	Format      Format
	Width       uint32
	Height      uint32
	DepthOrLayers uint32 // 3D depth, cube face count (always 6), or 1 for 2D
	MipLevels   uint32
	Samples     uint32 // 1 for non-multisampled
	Usage       TextureUsage
	Label       string
}

// SamplerDescriptor describes a sampler to be created by CreateSampler.
// spec.md §3.
type SamplerDescriptor struct {
	MinFilter    FilterMode
	MagFilter    FilterMode
	MipmapMode   MipmapMode
	WrapU        WrapMode
	WrapV        WrapMode
	WrapW        WrapMode
	MaxAnisotropy float32
	CompareFunc  CompareFunc // CompareOff disables comparison sampling
	MinLOD       float32
	MaxLOD       float32
	BorderColor  [4]float32
	Label        string
}

// VertexAttribute describes one vertex shader input, part of a
// VertexBinding. Supplemented from original_source's geometry_binding_desc;
// see SPEC_FULL.md §C.1.
type VertexAttribute struct {
	Location   uint32
	Format     Format
	Offset     uint32
	Normalized bool
}

// VertexBinding describes one vertex buffer slot consumed by a pipeline: its
// per-vertex stride and the attributes it supplies. The binding's position
// in PipelineDescriptor.VertexBindings is both the GL vertex-buffer binding
// index and the index bind_vertex_buffers addresses. spec.md §4.4.2,
// supplemented per SPEC_FULL.md §C.1.
type VertexBinding struct {
	Stride     uint32
	Attributes []VertexAttribute
	PerInstance bool
}

// BlendState is the per-color-attachment blend configuration. spec.md §3.
type BlendState struct {
	Enabled         bool
	SrcColorFactor  BlendFactor
	DstColorFactor  BlendFactor
	ColorOp         BlendOp
	SrcAlphaFactor  BlendFactor
	DstAlphaFactor  BlendFactor
	AlphaOp         BlendOp
	ColorWriteMask  ColorMask
}

// StencilFaceState is the stencil test/update configuration for one face.
type StencilFaceState struct {
	CompareFunc CompareFunc
	FailOp      StencilOp
	DepthFailOp StencilOp
	PassOp      StencilOp
}

// DepthStencilState is the pipeline's depth and stencil test configuration.
type DepthStencilState struct {
	DepthTestEnabled  bool
	DepthWriteEnabled bool
	DepthCompare      CompareFunc
	StencilEnabled    bool
	StencilReadMask   uint8
	StencilWriteMask  uint8
	Front             StencilFaceState
	Back              StencilFaceState
}

// RasterizerState is the pipeline's rasterizer fixed-function configuration.
type RasterizerState struct {
	CullMode        CullMode
	FrontFace       FrontFace
	PolygonMode     PolygonMode
	DepthBiasEnabled bool
	DepthBiasConstant float32
	DepthBiasSlope    float32
	DepthBiasClamp    float32
}

// MultisampleState is the pipeline's multisample configuration. The
// RenderPass/Framebuffer sample count it is paired with must match.
type MultisampleState struct {
	Samples               uint32
	AlphaToCoverageEnabled bool
}

// PipelineDescriptor describes a render pipeline to be created by
// CreatePipeline. spec.md §3, §4.4.1; vertex attribute layout supplemented
// per SPEC_FULL.md §C.1.
type PipelineDescriptor struct {
	VertexShaderSource   string
	FragmentShaderSource string
	VertexBindings       []VertexBinding
	Topology             PrimitiveTopology
	ColorBlend           []BlendState // one per color attachment the pipeline targets
	DepthStencil         DepthStencilState
	Rasterizer           RasterizerState
	Multisample          MultisampleState
	Label                string
}

// ColorAttachmentDescriptor describes one color attachment of a render pass,
// including the clear value applied when Load is LoadOpClear. spec.md §3,
// §4.3.
type ColorAttachmentDescriptor struct {
	Format     Format
	Samples    uint32
	Load       LoadOp
	Store      StoreOp
	ClearColor [4]float32
}

// DepthStencilAttachmentDescriptor describes the depth/stencil attachment of
// a render pass, if any, including the clear values applied when the
// respective load op is LoadOpClear. spec.md §3, §4.3.
type DepthStencilAttachmentDescriptor struct {
	Format       Format
	Samples      uint32
	DepthLoad    LoadOp
	DepthStore   StoreOp
	StencilLoad  LoadOp
	StencilStore StoreOp
	DepthClear   float32
	StencilClear int32
}

// RenderPassDescriptor describes a render pass to be created by
// CreateRenderPass. A render pass is a compatibility contract, not bound
// storage: it names formats and load/store ops, checked against each
// Framebuffer's attachments when CreateFramebuffer builds it. spec.md §4.3.
type RenderPassDescriptor struct {
	ColorAttachments []ColorAttachmentDescriptor
	DepthStencil     *DepthStencilAttachmentDescriptor
	Label            string
}

// FramebufferColorAttachment binds one texture (and, if the render pass
// calls for StoreOpResolve, a resolve target) to a color slot.
type FramebufferColorAttachment struct {
	Texture       TextureHandle
	MipLevel      uint32
	ArrayLayer    uint32
	ResolveTarget TextureHandle // required iff the paired RenderPass attachment's Store is StoreOpResolve
}

// FramebufferDepthStencilAttachment binds the depth/stencil texture.
type FramebufferDepthStencilAttachment struct {
	Texture       TextureHandle
	ResolveTarget TextureHandle
}

// FramebufferDescriptor describes a framebuffer to be created by
// CreateFramebuffer: concrete storage compatible with some RenderPass.
// spec.md §4.3.
type FramebufferDescriptor struct {
	RenderPass   RenderPassHandle
	Color        []FramebufferColorAttachment
	DepthStencil *FramebufferDepthStencilAttachment
	Width        uint32
	Height       uint32
	Label        string
}

// TextureBinding binds one texture+sampler pair to a shader binding slot.
type TextureBinding struct {
	Slot    uint32
	Texture TextureHandle
	Sampler SamplerHandle
}

// BufferBinding binds one buffer range to a shader binding slot.
type BufferBinding struct {
	Slot   uint32
	Buffer BufferHandle
	Offset uint64
	Size   uint64
}

// ShaderBindingDescriptor describes a shader binding set to be created by
// CreateShaderBinding. spec.md §4.4.
type ShaderBindingDescriptor struct {
	Textures []TextureBinding
	Buffers  []BufferBinding
	Label    string
}

// TextureCopyRegion identifies the sub-resource and footprint of a copy
// to/from a texture. spec.md §4.4.8.
type TextureCopyRegion struct {
	MipLevel   uint32
	LayerIndex uint32 // for cube textures, taken mod 6 to select a face
	XOffset    uint32
	YOffset    uint32
	ZOffset    uint32
	Width      uint32
	Height     uint32
	Depth      uint32
	BufferOffset uint64
	BufferRowLength uint32 // 0 means tightly packed
}

// Viewport is the viewport transform applied by set_viewport.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth, MaxDepth float32
}

// Scissor is the scissor rectangle applied by set_scissor.
type Scissor struct {
	X, Y          int32
	Width, Height uint32
}
