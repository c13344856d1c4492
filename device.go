package rhi

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// ErrContextUnavailable is returned by NewDevice when no current OpenGL
// context can be found.
var ErrContextUnavailable = errors.New("rhi: no current OpenGL context")

// DeviceOptions configures NewDevice. There is currently nothing to
// configure beyond the implicit "a GL context must already be current on
// this OS thread"; the struct exists so future options don't change the
// constructor's signature, following the teacher's descriptor-struct
// convention (SPEC_FULL.md §A.3).
type DeviceOptions struct {
	Label string
}

type bufferRecord struct {
	id   uint32
	desc BufferDescriptor
}

type textureRecord struct {
	id     uint32
	target uint32
	desc   TextureDescriptor
}

type samplerRecord struct {
	id   uint32
	desc SamplerDescriptor
}

type pipelineRecord struct {
	program uint32
	vao     uint32
	desc    PipelineDescriptor
}

type renderPassRecord struct {
	desc RenderPassDescriptor
}

type framebufferRecord struct {
	fbo         uint32
	resolveFBO  uint32 // lazily created only if a resolve store op is used
	desc        FramebufferDescriptor
	renderPass  RenderPassDescriptor
}

type shaderBindingRecord struct {
	desc ShaderBindingDescriptor
}

type fenceRecord struct {
	sync uintptr // GLsync, stored as uintptr to avoid importing unsafe here
}

// Device owns every GPU resource created through it and the GL object ids
// backing them. It must be constructed and used from the OS thread that
// owns the current GL context (matching the teacher's single-threaded
// graphics_device_opengl.cpp model — spec.md §5 Non-goals).
type Device struct {
	buffers         *pool[bufferKind, bufferRecord]
	textures        *pool[textureKind, textureRecord]
	samplers        *pool[samplerKind, samplerRecord]
	pipelines       *pool[pipelineKind, pipelineRecord]
	renderPasses    *pool[renderPassKind, renderPassRecord]
	framebuffers    *pool[framebufferKind, framebufferRecord]
	shaderBindings  *pool[shaderBindingKind, shaderBindingRecord]
	fences          *pool[fenceKind, fenceRecord]
}

// NewDevice wraps the OpenGL context current on the calling OS thread. The
// caller is responsible for making a context current (e.g. via a
// *glfw.Window passed to NewSwapchain) before calling this.
func NewDevice(opts DeviceOptions) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}
	d := &Device{
		buffers:        newPool[bufferKind, bufferRecord](),
		textures:       newPool[textureKind, textureRecord](),
		samplers:       newPool[samplerKind, samplerRecord](),
		pipelines:      newPool[pipelineKind, pipelineRecord](),
		renderPasses:   newPool[renderPassKind, renderPassRecord](),
		framebuffers:   newPool[framebufferKind, framebufferRecord](),
		shaderBindings: newPool[shaderBindingKind, shaderBindingRecord](),
		fences:         newPool[fenceKind, fenceRecord](),
	}
	Logger().Debug("rhi: device created", "label", opts.Label)
	return d, nil
}

// Destroy releases every resource still owned by the device, in the
// teardown order spec.md §4.2 prescribes: samplers, textures, pipelines
// (which also own the geometry-binding VAO folded into them per
// SPEC_FULL.md §C.1-2), framebuffers, buffers, shader bindings, fences.
// Render passes and shader bindings carry no backend object, so their
// position is not order-sensitive; they are released alongside fences at
// the end. The swapchain that owns this device is destroyed by its own
// caller only after this returns (spec.md: "swapchain last").
func (d *Device) Destroy() {
	d.samplers.forEach(func(h SamplerHandle, r *samplerRecord) {
		d.DestroySampler(h)
	})
	d.textures.forEach(func(h TextureHandle, r *textureRecord) {
		d.DestroyTexture(h)
	})
	d.pipelines.forEach(func(h PipelineHandle, r *pipelineRecord) {
		d.DestroyPipeline(h)
	})
	d.framebuffers.forEach(func(h FramebufferHandle, r *framebufferRecord) {
		d.DestroyFramebuffer(h)
	})
	d.buffers.forEach(func(h BufferHandle, r *bufferRecord) {
		d.DestroyBuffer(h)
	})
	d.shaderBindings.forEach(func(h ShaderBindingHandle, r *shaderBindingRecord) {
		d.DestroyShaderBinding(h)
	})
	d.fences.forEach(func(h FenceHandle, r *fenceRecord) {
		d.DestroyFence(h)
	})
	d.renderPasses.forEach(func(h RenderPassHandle, r *renderPassRecord) {
		d.DestroyRenderPass(h)
	})
	Logger().Debug("rhi: device destroyed")
}
