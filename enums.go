package rhi

// BufferUsage selects which bind targets a buffer may be used with.
// spec.md §3.
type BufferUsage uint8

const (
	BufferUsageVertex BufferUsage = iota
	BufferUsageIndex
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageStage
)

// BufferAccess selects which CPU/GPU transfer directions are legal for a
// buffer. spec.md §3.
type BufferAccess uint8

const (
	BufferAccessGPUOnly BufferAccess = iota
	BufferAccessCPUToGPU
	BufferAccessGPUToCPU
)

// TextureType selects the dimensionality of a texture.
type TextureType uint8

const (
	TextureType2D TextureType = iota
	TextureType3D
	TextureTypeCube
)

// TextureUsage is a bitset of the roles a texture may be used in.
type TextureUsage uint16

const (
	TextureUsageSampled TextureUsage = 1 << iota
	TextureUsageStorage
	TextureUsageRenderTarget
	TextureUsageDepthStencilTarget
	TextureUsageTransferSource
	TextureUsageTransferDestination
	TextureUsageResolveSource
	TextureUsageResolveDestination
)

func (u TextureUsage) has(flag TextureUsage) bool { return u&flag != 0 }

// LoadOp is the action performed on an attachment at render-pass begin.
type LoadOp uint8

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDiscard
)

// StoreOp is the action performed on an attachment at render-pass end.
type StoreOp uint8

const (
	StoreOpStore StoreOp = iota
	StoreOpDiscard
	StoreOpResolve
)

// IndexFormat selects the index element width for bind_index_buffer.
type IndexFormat uint8

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// PrimitiveTopology selects the primitive assembly mode used by draw calls.
type PrimitiveTopology uint8

const (
	TopologyTriangleList PrimitiveTopology = iota
	TopologyTriangleStrip
	TopologyLineList
	TopologyLineStrip
	TopologyPointList
)

// CompareFunc is a depth/stencil/sampler comparison function.
type CompareFunc uint8

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
	CompareOff // disables the compare op entirely (samplers only)
)

// BlendFactor is a source/destination blend factor.
type BlendFactor uint8

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
)

// BlendOp is a blend equation.
type BlendOp uint8

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// ColorMask is a bitset of RGBA write-mask channels.
type ColorMask uint8

const (
	ColorMaskRed ColorMask = 1 << iota
	ColorMaskGreen
	ColorMaskBlue
	ColorMaskAlpha
	ColorMaskAll = ColorMaskRed | ColorMaskGreen | ColorMaskBlue | ColorMaskAlpha
)

// StencilOp is a stencil update operation.
type StencilOp uint8

const (
	StencilOpKeep StencilOp = iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncrementClamp
	StencilOpDecrementClamp
	StencilOpInvert
	StencilOpIncrementWrap
	StencilOpDecrementWrap
)

// CullMode selects which winding is culled.
type CullMode uint8

const (
	CullModeOff CullMode = iota
	CullModeFront
	CullModeBack
	CullModeFrontAndBack
)

// FrontFace selects the winding order considered front-facing.
type FrontFace uint8

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

// PolygonMode selects the rasterizer fill mode.
type PolygonMode uint8

const (
	PolygonModeFill PolygonMode = iota
	PolygonModeLine
	PolygonModePoint
)

// FilterMode selects sampler minification/magnification filtering.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// MipmapMode selects sampler mip filtering.
type MipmapMode uint8

const (
	MipmapModeOff MipmapMode = iota
	MipmapModeNearest
	MipmapModeLinear
)

// WrapMode selects sampler texture-coordinate wrapping.
type WrapMode uint8

const (
	WrapRepeat WrapMode = iota
	WrapMirroredRepeat
	WrapClampToEdge
	WrapClampToBorder
)

// dsAttachmentClass is the tagged-variant attachment class a depth/stencil
// format belongs to. Kept as an internal tagged variant per DESIGN NOTES in
// spec.md §9, rather than a pair of bools, since every use site switches on
// all three cases.
type dsAttachmentClass uint8

const (
	dsClassNone dsAttachmentClass = iota
	dsClassDepthOnly
	dsClassStencilOnly
	dsClassDepthStencil
)
