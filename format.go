package rhi

import "github.com/go-gl/gl/v4.3-core/gl"

// Format is the abstract pixel format named in a TextureDescriptor. spec.md
// §3.
type Format uint8

const (
	FormatR8Unorm Format = iota
	FormatR8Snorm
	FormatR8Uint
	FormatR8Sint
	FormatRG8Unorm
	FormatRG8Snorm
	FormatRG8Uint
	FormatRG8Sint
	FormatRGB8Unorm
	FormatRGBA8Unorm
	FormatRGBA8Snorm
	FormatRGBA8Uint
	FormatRGBA8Sint
	FormatRGBA8UnormSRGB
	FormatR16Unorm
	FormatR16Snorm
	FormatR16Uint
	FormatR16Sint
	FormatR16Float
	FormatRG16Unorm
	FormatRG16Snorm
	FormatRG16Uint
	FormatRG16Sint
	FormatRG16Float
	FormatRGBA16Unorm
	FormatRGBA16Snorm
	FormatRGBA16Uint
	FormatRGBA16Sint
	FormatRGBA16Float
	FormatR32Uint
	FormatR32Sint
	FormatR32Float
	FormatRG32Uint
	FormatRG32Sint
	FormatRG32Float
	FormatRGB32Float
	FormatRGBA32Uint
	FormatRGBA32Sint
	FormatRGBA32Float
	FormatDepth16Unorm
	FormatDepth24Stencil8
	FormatDepth32Float
	FormatDepth32FloatStencil8
	FormatStencil8
)

// formatInfo is the total conversion record for one Format: everything a
// texture create/upload/copy call needs to drive the GL object. Grounded on
// hal/gles/device.go's textureFormatToGL table and cross-checked against
// to_gl_pixel_format/to_depth_stencil_fromat in
// original_source/.../graphics_device_opengl.cpp for the depth/stencil split.
type formatInfo struct {
	internalFormat int32
	dataFormat     uint32
	dataType       uint32
	bytesPerPixel  uint32
	isColor        bool
	dsClass        dsAttachmentClass
}

var formatTable = map[Format]formatInfo{
	// R family.
	FormatR8Unorm: {
		internalFormat: gl.R8, dataFormat: gl.RED, dataType: gl.UNSIGNED_BYTE,
		bytesPerPixel: 1, isColor: true,
	},
	FormatR8Snorm: {
		internalFormat: gl.R8_SNORM, dataFormat: gl.RED, dataType: gl.BYTE,
		bytesPerPixel: 1, isColor: true,
	},
	FormatR8Uint: {
		internalFormat: gl.R8UI, dataFormat: gl.RED_INTEGER, dataType: gl.UNSIGNED_BYTE,
		bytesPerPixel: 1, isColor: true,
	},
	FormatR8Sint: {
		internalFormat: gl.R8I, dataFormat: gl.RED_INTEGER, dataType: gl.BYTE,
		bytesPerPixel: 1, isColor: true,
	},
	FormatR16Unorm: {
		internalFormat: gl.R16, dataFormat: gl.RED, dataType: gl.UNSIGNED_SHORT,
		bytesPerPixel: 2, isColor: true,
	},
	FormatR16Snorm: {
		internalFormat: gl.R16_SNORM, dataFormat: gl.RED, dataType: gl.SHORT,
		bytesPerPixel: 2, isColor: true,
	},
	FormatR16Uint: {
		internalFormat: gl.R16UI, dataFormat: gl.RED_INTEGER, dataType: gl.UNSIGNED_SHORT,
		bytesPerPixel: 2, isColor: true,
	},
	FormatR16Sint: {
		internalFormat: gl.R16I, dataFormat: gl.RED_INTEGER, dataType: gl.SHORT,
		bytesPerPixel: 2, isColor: true,
	},
	FormatR16Float: {
		internalFormat: gl.R16F, dataFormat: gl.RED, dataType: gl.HALF_FLOAT,
		bytesPerPixel: 2, isColor: true,
	},
	FormatR32Uint: {
		internalFormat: gl.R32UI, dataFormat: gl.RED_INTEGER, dataType: gl.UNSIGNED_INT,
		bytesPerPixel: 4, isColor: true,
	},
	FormatR32Sint: {
		internalFormat: gl.R32I, dataFormat: gl.RED_INTEGER, dataType: gl.INT,
		bytesPerPixel: 4, isColor: true,
	},
	FormatR32Float: {
		internalFormat: gl.R32F, dataFormat: gl.RED, dataType: gl.FLOAT,
		bytesPerPixel: 4, isColor: true,
	},

	// RG family.
	FormatRG8Unorm: {
		internalFormat: gl.RG8, dataFormat: gl.RG, dataType: gl.UNSIGNED_BYTE,
		bytesPerPixel: 2, isColor: true,
	},
	FormatRG8Snorm: {
		internalFormat: gl.RG8_SNORM, dataFormat: gl.RG, dataType: gl.BYTE,
		bytesPerPixel: 2, isColor: true,
	},
	FormatRG8Uint: {
		internalFormat: gl.RG8UI, dataFormat: gl.RG_INTEGER, dataType: gl.UNSIGNED_BYTE,
		bytesPerPixel: 2, isColor: true,
	},
	FormatRG8Sint: {
		internalFormat: gl.RG8I, dataFormat: gl.RG_INTEGER, dataType: gl.BYTE,
		bytesPerPixel: 2, isColor: true,
	},
	FormatRG16Unorm: {
		internalFormat: gl.RG16, dataFormat: gl.RG, dataType: gl.UNSIGNED_SHORT,
		bytesPerPixel: 4, isColor: true,
	},
	FormatRG16Snorm: {
		internalFormat: gl.RG16_SNORM, dataFormat: gl.RG, dataType: gl.SHORT,
		bytesPerPixel: 4, isColor: true,
	},
	FormatRG16Uint: {
		internalFormat: gl.RG16UI, dataFormat: gl.RG_INTEGER, dataType: gl.UNSIGNED_SHORT,
		bytesPerPixel: 4, isColor: true,
	},
	FormatRG16Sint: {
		internalFormat: gl.RG16I, dataFormat: gl.RG_INTEGER, dataType: gl.SHORT,
		bytesPerPixel: 4, isColor: true,
	},
	FormatRG16Float: {
		internalFormat: gl.RG16F, dataFormat: gl.RG, dataType: gl.HALF_FLOAT,
		bytesPerPixel: 4, isColor: true,
	},
	FormatRG32Uint: {
		internalFormat: gl.RG32UI, dataFormat: gl.RG_INTEGER, dataType: gl.UNSIGNED_INT,
		bytesPerPixel: 8, isColor: true,
	},
	FormatRG32Sint: {
		internalFormat: gl.RG32I, dataFormat: gl.RG_INTEGER, dataType: gl.INT,
		bytesPerPixel: 8, isColor: true,
	},
	FormatRG32Float: {
		internalFormat: gl.RG32F, dataFormat: gl.RG, dataType: gl.FLOAT,
		bytesPerPixel: 8, isColor: true,
	},

	// RGB family — only the 8-bit unsigned-normalized and 32-bit float
	// variants are in the catalog; the other RGB widths and the signed,
	// integer and 16-bit RGB variants are not.
	FormatRGB8Unorm: {
		internalFormat: gl.RGB8, dataFormat: gl.RGB, dataType: gl.UNSIGNED_BYTE,
		bytesPerPixel: 3, isColor: true,
	},
	FormatRGB32Float: {
		internalFormat: gl.RGB32F, dataFormat: gl.RGB, dataType: gl.FLOAT,
		bytesPerPixel: 12, isColor: true,
	},

	// RGBA family.
	FormatRGBA8Unorm: {
		internalFormat: gl.RGBA8, dataFormat: gl.RGBA, dataType: gl.UNSIGNED_BYTE,
		bytesPerPixel: 4, isColor: true,
	},
	FormatRGBA8Snorm: {
		internalFormat: gl.RGBA8_SNORM, dataFormat: gl.RGBA, dataType: gl.BYTE,
		bytesPerPixel: 4, isColor: true,
	},
	FormatRGBA8Uint: {
		internalFormat: gl.RGBA8UI, dataFormat: gl.RGBA_INTEGER, dataType: gl.UNSIGNED_BYTE,
		bytesPerPixel: 4, isColor: true,
	},
	FormatRGBA8Sint: {
		internalFormat: gl.RGBA8I, dataFormat: gl.RGBA_INTEGER, dataType: gl.BYTE,
		bytesPerPixel: 4, isColor: true,
	},
	FormatRGBA8UnormSRGB: {
		internalFormat: gl.SRGB8_ALPHA8, dataFormat: gl.RGBA, dataType: gl.UNSIGNED_BYTE,
		bytesPerPixel: 4, isColor: true,
	},
	FormatRGBA16Unorm: {
		internalFormat: gl.RGBA16, dataFormat: gl.RGBA, dataType: gl.UNSIGNED_SHORT,
		bytesPerPixel: 8, isColor: true,
	},
	FormatRGBA16Snorm: {
		internalFormat: gl.RGBA16_SNORM, dataFormat: gl.RGBA, dataType: gl.SHORT,
		bytesPerPixel: 8, isColor: true,
	},
	FormatRGBA16Uint: {
		internalFormat: gl.RGBA16UI, dataFormat: gl.RGBA_INTEGER, dataType: gl.UNSIGNED_SHORT,
		bytesPerPixel: 8, isColor: true,
	},
	FormatRGBA16Sint: {
		internalFormat: gl.RGBA16I, dataFormat: gl.RGBA_INTEGER, dataType: gl.SHORT,
		bytesPerPixel: 8, isColor: true,
	},
	FormatRGBA16Float: {
		internalFormat: gl.RGBA16F, dataFormat: gl.RGBA, dataType: gl.HALF_FLOAT,
		bytesPerPixel: 8, isColor: true,
	},
	FormatRGBA32Uint: {
		internalFormat: gl.RGBA32UI, dataFormat: gl.RGBA_INTEGER, dataType: gl.UNSIGNED_INT,
		bytesPerPixel: 16, isColor: true,
	},
	FormatRGBA32Sint: {
		internalFormat: gl.RGBA32I, dataFormat: gl.RGBA_INTEGER, dataType: gl.INT,
		bytesPerPixel: 16, isColor: true,
	},
	FormatRGBA32Float: {
		internalFormat: gl.RGBA32F, dataFormat: gl.RGBA, dataType: gl.FLOAT,
		bytesPerPixel: 16, isColor: true,
	},

	// Depth/stencil family.
	FormatDepth16Unorm: {
		internalFormat: gl.DEPTH_COMPONENT16, dataFormat: gl.DEPTH_COMPONENT, dataType: gl.UNSIGNED_SHORT,
		bytesPerPixel: 2, isColor: false, dsClass: dsClassDepthOnly,
	},
	FormatDepth24Stencil8: {
		internalFormat: gl.DEPTH24_STENCIL8, dataFormat: gl.DEPTH_STENCIL, dataType: gl.UNSIGNED_INT_24_8,
		bytesPerPixel: 4, isColor: false, dsClass: dsClassDepthStencil,
	},
	FormatDepth32Float: {
		internalFormat: gl.DEPTH_COMPONENT32F, dataFormat: gl.DEPTH_COMPONENT, dataType: gl.FLOAT,
		bytesPerPixel: 4, isColor: false, dsClass: dsClassDepthOnly,
	},
	FormatDepth32FloatStencil8: {
		internalFormat: gl.DEPTH32F_STENCIL8, dataFormat: gl.DEPTH_STENCIL, dataType: gl.FLOAT_32_UNSIGNED_INT_24_8_REV,
		bytesPerPixel: 8, isColor: false, dsClass: dsClassDepthStencil,
	},
	FormatStencil8: {
		internalFormat: gl.STENCIL_INDEX8, dataFormat: gl.STENCIL_INDEX, dataType: gl.UNSIGNED_BYTE,
		bytesPerPixel: 1, isColor: false, dsClass: dsClassStencilOnly,
	},
}

// lookupFormat returns the conversion record for f and whether f is a format
// this module recognizes at all.
func lookupFormat(f Format) (formatInfo, bool) {
	info, ok := formatTable[f]
	return info, ok
}

// isDepthStencilFormat reports whether f carries a depth and/or stencil
// component, i.e. whether it may be used as a depth/stencil attachment
// rather than a color attachment.
func isDepthStencilFormat(f Format) bool {
	info, ok := formatTable[f]
	return ok && !info.isColor
}
