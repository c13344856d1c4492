package rhi

import "github.com/go-gl/gl/v4.3-core/gl"

// unreachable panics to signal a broken internal invariant — an enum value
// that passed validation but has no case here. Grounded on the original's
// TAV_UNREACHABLE(); see SPEC_FULL.md §A.2.
func unreachable(what string) {
	panic("rhi: unreachable: " + what)
}

func toGLBlendFactor(f BlendFactor) uint32 {
	switch f {
	case BlendFactorZero:
		return gl.ZERO
	case BlendFactorOne:
		return gl.ONE
	case BlendFactorSrcColor:
		return gl.SRC_COLOR
	case BlendFactorOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case BlendFactorDstColor:
		return gl.DST_COLOR
	case BlendFactorOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	}
	unreachable("BlendFactor")
	return 0
}

func toGLBlendOp(op BlendOp) uint32 {
	switch op {
	case BlendOpAdd:
		return gl.FUNC_ADD
	case BlendOpSubtract:
		return gl.FUNC_SUBTRACT
	case BlendOpReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case BlendOpMin:
		return gl.MIN
	case BlendOpMax:
		return gl.MAX
	}
	unreachable("BlendOp")
	return 0
}

func toGLCompareFunc(f CompareFunc) uint32 {
	switch f {
	case CompareNever:
		return gl.NEVER
	case CompareLess:
		return gl.LESS
	case CompareEqual:
		return gl.EQUAL
	case CompareLessEqual:
		return gl.LEQUAL
	case CompareGreater:
		return gl.GREATER
	case CompareNotEqual:
		return gl.NOTEQUAL
	case CompareGreaterEqual:
		return gl.GEQUAL
	case CompareAlways, CompareOff:
		return gl.ALWAYS
	}
	unreachable("CompareFunc")
	return 0
}

func toGLStencilOp(op StencilOp) uint32 {
	switch op {
	case StencilOpKeep:
		return gl.KEEP
	case StencilOpZero:
		return gl.ZERO
	case StencilOpReplace:
		return gl.REPLACE
	case StencilOpIncrementClamp:
		return gl.INCR
	case StencilOpDecrementClamp:
		return gl.DECR
	case StencilOpInvert:
		return gl.INVERT
	case StencilOpIncrementWrap:
		return gl.INCR_WRAP
	case StencilOpDecrementWrap:
		return gl.DECR_WRAP
	}
	unreachable("StencilOp")
	return 0
}

func toGLCullFace(m CullMode) uint32 {
	switch m {
	case CullModeFront:
		return gl.FRONT
	case CullModeBack:
		return gl.BACK
	case CullModeFrontAndBack:
		return gl.FRONT_AND_BACK
	}
	unreachable("CullMode")
	return 0
}

func toGLFrontFace(f FrontFace) uint32 {
	switch f {
	case FrontFaceCCW:
		return gl.CCW
	case FrontFaceCW:
		return gl.CW
	}
	unreachable("FrontFace")
	return 0
}

func toGLPolygonMode(m PolygonMode) uint32 {
	switch m {
	case PolygonModeFill:
		return gl.FILL
	case PolygonModeLine:
		return gl.LINE
	case PolygonModePoint:
		return gl.POINT
	}
	unreachable("PolygonMode")
	return 0
}

func toGLTopology(t PrimitiveTopology) uint32 {
	switch t {
	case TopologyTriangleList:
		return gl.TRIANGLES
	case TopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	case TopologyLineList:
		return gl.LINES
	case TopologyLineStrip:
		return gl.LINE_STRIP
	case TopologyPointList:
		return gl.POINTS
	}
	unreachable("PrimitiveTopology")
	return 0
}

func toGLIndexType(f IndexFormat) uint32 {
	switch f {
	case IndexFormatUint16:
		return gl.UNSIGNED_SHORT
	case IndexFormatUint32:
		return gl.UNSIGNED_INT
	}
	unreachable("IndexFormat")
	return 0
}

func indexFormatSize(f IndexFormat) uint32 {
	switch f {
	case IndexFormatUint16:
		return 2
	case IndexFormatUint32:
		return 4
	}
	unreachable("IndexFormat")
	return 0
}

func toGLWrap(w WrapMode) int32 {
	switch w {
	case WrapRepeat:
		return gl.REPEAT
	case WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case WrapClampToBorder:
		return gl.CLAMP_TO_BORDER
	}
	unreachable("WrapMode")
	return 0
}

// toGLMinFilter combines a sampler's minification filter and mipmap mode
// into the single GL_TEXTURE_MIN_FILTER enum value GL expects.
func toGLMinFilter(min FilterMode, mip MipmapMode) int32 {
	switch {
	case mip == MipmapModeOff && min == FilterNearest:
		return gl.NEAREST
	case mip == MipmapModeOff && min == FilterLinear:
		return gl.LINEAR
	case mip == MipmapModeNearest && min == FilterNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case mip == MipmapModeNearest && min == FilterLinear:
		return gl.LINEAR_MIPMAP_NEAREST
	case mip == MipmapModeLinear && min == FilterNearest:
		return gl.NEAREST_MIPMAP_LINEAR
	case mip == MipmapModeLinear && min == FilterLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	}
	unreachable("FilterMode/MipmapMode combination")
	return 0
}

func toGLMagFilter(mag FilterMode) int32 {
	switch mag {
	case FilterNearest:
		return gl.NEAREST
	case FilterLinear:
		return gl.LINEAR
	}
	unreachable("FilterMode")
	return 0
}

func toGLTextureTarget(t TextureType, samples uint32) uint32 {
	switch t {
	case TextureType2D:
		if samples > 1 {
			return gl.TEXTURE_2D_MULTISAMPLE
		}
		return gl.TEXTURE_2D
	case TextureType3D:
		return gl.TEXTURE_3D
	case TextureTypeCube:
		return gl.TEXTURE_CUBE_MAP
	}
	unreachable("TextureType")
	return 0
}

var cubeFaceTargets = [6]uint32{
	gl.TEXTURE_CUBE_MAP_POSITIVE_X, gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
	gl.TEXTURE_CUBE_MAP_POSITIVE_Y, gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
	gl.TEXTURE_CUBE_MAP_POSITIVE_Z, gl.TEXTURE_CUBE_MAP_NEGATIVE_Z,
}

func toGLCubeFaceTarget(layerIndex uint32) uint32 {
	return cubeFaceTargets[layerIndex%6]
}

func toGLBufferTarget(u BufferUsage) uint32 {
	switch u {
	case BufferUsageVertex:
		return gl.ARRAY_BUFFER
	case BufferUsageIndex:
		return gl.ELEMENT_ARRAY_BUFFER
	case BufferUsageUniform:
		return gl.UNIFORM_BUFFER
	case BufferUsageStorage:
		return gl.SHADER_STORAGE_BUFFER
	case BufferUsageStage:
		return gl.COPY_WRITE_BUFFER
	}
	unreachable("BufferUsage")
	return 0
}

func toGLBufferUsageHint(a BufferAccess) uint32 {
	switch a {
	case BufferAccessGPUOnly:
		return gl.STATIC_DRAW
	case BufferAccessCPUToGPU:
		return gl.DYNAMIC_DRAW
	case BufferAccessGPUToCPU:
		return gl.STREAM_READ
	}
	unreachable("BufferAccess")
	return 0
}
