package rhi

import (
	"github.com/go-gl/gl/v4.3-core/gl"
)

// queueState is the command queue's recording state machine. spec.md §4.4.
type queueState uint8

const (
	queueIdle queueState = iota
	queueRecording
	queueInRenderPass
)

// CommandQueue records and immediately executes GL commands against a
// Device. Exactly one CommandQueue exists per Device (spec.md §5
// Non-goals: no multiple queues, no multi-threaded recording). Grounded on
// command_queue_opengl.cpp almost one-to-one, and hal/command.go's
// CommandEncoder/RenderPassEncoder split for naming.
type CommandQueue struct {
	device *Device

	state queueState

	currentPipeline     PipelineHandle
	currentRenderPass   RenderPassHandle
	currentFramebuffer  FramebufferHandle
	currentIndexBuffer  BufferHandle
	currentIndexFormat  IndexFormat
	currentIndexOffset  uint64

	signaledFences map[uint32]bool
}

// NewCommandQueue creates the single command queue for a device.
func NewCommandQueue(d *Device) *CommandQueue {
	return &CommandQueue{device: d, signaledFences: make(map[uint32]bool)}
}

// Begin transitions the queue from idle to recording. Calling Begin while
// already recording is a transient logic warning: it is logged and the
// queue stays in its current state.
func (q *CommandQueue) Begin() {
	if q.state != queueIdle {
		Logger().Warn("rhi: begin: queue is already recording")
		return
	}
	q.state = queueRecording
}

// End transitions the queue back to idle. Ending while a render pass is
// still open is a transient logic warning; the render pass is implicitly
// closed first.
func (q *CommandQueue) End() {
	if q.state == queueInRenderPass {
		Logger().Warn("rhi: end: render pass was still open, closing implicitly")
		q.EndRenderPass()
	}
	if q.state == queueIdle {
		Logger().Warn("rhi: end: queue was not recording")
		return
	}
	q.state = queueIdle
}

func (q *CommandQueue) requireRecording(op string) bool {
	if q.state == queueIdle {
		Logger().Error("rhi: " + op + ": queue is not recording, command dropped")
		return false
	}
	return true
}

func (q *CommandQueue) requireRenderPass(op string) bool {
	if q.state != queueInRenderPass {
		Logger().Error("rhi: " + op + ": no render pass is open, command dropped")
		return false
	}
	return true
}

// BeginRenderPass binds fb, applies each attachment's load op, and opens
// the render pass. The default framebuffer (fbo 0) is a special case: its
// render pass must describe exactly one color attachment, plus the
// depth/stencil attachment the swapchain declared when it was created with
// HasDepthStencil.
func (q *CommandQueue) BeginRenderPass(fb FramebufferHandle) {
	if !q.requireRecording("begin_render_pass") {
		return
	}
	if q.state == queueInRenderPass {
		Logger().Warn("rhi: begin_render_pass: a render pass is already open, closing it first")
		q.EndRenderPass()
	}

	fbRec := q.device.framebuffers.tryGet(fb)
	if fbRec == nil {
		Logger().Error("rhi: begin_render_pass: framebuffer handle not found")
		return
	}

	if fbRec.fbo == 0 {
		if len(fbRec.renderPass.ColorAttachments) != 1 {
			Logger().Error("rhi: begin_render_pass: default framebuffer's render pass must have exactly one color attachment")
			return
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, fbRec.fbo)
	gl.Viewport(0, 0, int32(fbRec.desc.Width), int32(fbRec.desc.Height))

	for i, ca := range fbRec.renderPass.ColorAttachments {
		if ca.Load == LoadOpClear {
			clear := ca.ClearColor
			gl.ColorMaski(uint32(i), true, true, true, true)
			gl.ClearBufferfv(gl.COLOR, int32(i), &clear[0])
		}
	}
	if ds := fbRec.renderPass.DepthStencil; ds != nil {
		switch classOf(ds.Format) {
		case dsClassDepthOnly:
			if ds.DepthLoad == LoadOpClear {
				depth := ds.DepthClear
				gl.ClearBufferfv(gl.DEPTH, 0, &depth)
			}
		case dsClassStencilOnly:
			if ds.StencilLoad == LoadOpClear {
				stencil := ds.StencilClear
				gl.ClearBufferiv(gl.STENCIL, 0, &stencil)
			}
		case dsClassDepthStencil:
			if ds.DepthLoad == LoadOpClear || ds.StencilLoad == LoadOpClear {
				gl.ClearBufferfi(gl.DEPTH_STENCIL, 0, ds.DepthClear, ds.StencilClear)
			}
		}
	}

	q.currentFramebuffer = fb
	q.currentRenderPass = fbRec.desc.RenderPass
	q.state = queueInRenderPass
}

// EndRenderPass resolves any StoreOpResolve attachments via
// glBlitFramebuffer, discards StoreOpDiscard attachments, and closes the
// render pass. Grounded on command_queue_opengl.cpp's end_render_pass.
func (q *CommandQueue) EndRenderPass() {
	if !q.requireRenderPass("end_render_pass") {
		return
	}
	fbRec := q.device.framebuffers.tryGet(q.currentFramebuffer)
	if fbRec == nil {
		q.state = queueRecording
		return
	}

	needsResolve := false
	for _, ca := range fbRec.renderPass.ColorAttachments {
		if ca.Store == StoreOpResolve {
			needsResolve = true
		}
	}
	if fbRec.renderPass.DepthStencil != nil {
		if fbRec.renderPass.DepthStencil.DepthStore == StoreOpResolve || fbRec.renderPass.DepthStencil.StencilStore == StoreOpResolve {
			needsResolve = true
		}
	}

	if needsResolve {
		q.resolveFramebuffer(fbRec)
	}

	var discarded []uint32
	for i, ca := range fbRec.renderPass.ColorAttachments {
		if ca.Store == StoreOpDiscard {
			discarded = append(discarded, gl.COLOR_ATTACHMENT0+uint32(i))
		}
	}
	if fbRec.renderPass.DepthStencil != nil {
		ds := fbRec.renderPass.DepthStencil
		if ds.DepthStore == StoreOpDiscard && ds.StencilStore == StoreOpDiscard {
			discarded = append(discarded, gl.DEPTH_STENCIL_ATTACHMENT)
		} else if ds.DepthStore == StoreOpDiscard {
			discarded = append(discarded, gl.DEPTH_ATTACHMENT)
		} else if ds.StencilStore == StoreOpDiscard {
			discarded = append(discarded, gl.STENCIL_ATTACHMENT)
		}
	}
	if len(discarded) > 0 {
		gl.InvalidateFramebuffer(gl.FRAMEBUFFER, int32(len(discarded)), &discarded[0])
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	q.state = queueRecording
}

// resolveFramebuffer lazily creates fbRec's resolve FBO (attaching each
// resolve target) and blits each StoreOpResolve attachment into it.
// Grounded on command_queue_opengl.cpp's resolve-on-end-render-pass logic.
func (q *CommandQueue) resolveFramebuffer(fbRec *framebufferRecord) {
	if fbRec.resolveFBO == 0 {
		var resolveFBO uint32
		gl.GenFramebuffers(1, &resolveFBO)
		gl.BindFramebuffer(gl.FRAMEBUFFER, resolveFBO)
		for i, ca := range fbRec.desc.Color {
			if ca.ResolveTarget.IsNull() {
				continue
			}
			texRec := q.device.textures.tryGet(ca.ResolveTarget)
			if texRec == nil {
				continue
			}
			gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(i), texRec.target, texRec.id, 0)
		}
		if fbRec.desc.DepthStencil != nil && !fbRec.desc.DepthStencil.ResolveTarget.IsNull() {
			texRec := q.device.textures.tryGet(fbRec.desc.DepthStencil.ResolveTarget)
			if texRec != nil {
				attachment := depthStencilAttachmentEnum(texRec.desc.Format)
				gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, texRec.target, texRec.id, 0)
			}
		}
		fbRec.resolveFBO = resolveFBO
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbRec.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fbRec.resolveFBO)
	w, h := int32(fbRec.desc.Width), int32(fbRec.desc.Height)

	// Each color attachment resolves with its own read/draw buffer pair
	// (spec.md §4.4.6): a single combined blit would only reach attachment 0,
	// since glBlitFramebuffer's COLOR_BUFFER_BIT path reads from whichever
	// single buffer glReadBuffer names.
	for i, ca := range fbRec.renderPass.ColorAttachments {
		if ca.Store != StoreOpResolve {
			continue
		}
		attachment := gl.COLOR_ATTACHMENT0 + uint32(i)
		gl.ReadBuffer(attachment)
		gl.DrawBuffer(attachment)
		gl.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	}

	var dsMask uint32
	if ds := fbRec.renderPass.DepthStencil; ds != nil {
		if ds.DepthStore == StoreOpResolve {
			dsMask |= gl.DEPTH_BUFFER_BIT
		}
		if ds.StencilStore == StoreOpResolve {
			dsMask |= gl.STENCIL_BUFFER_BIT
		}
	}
	if dsMask != 0 {
		gl.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, dsMask, gl.NEAREST)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, fbRec.fbo)
}

// BindPipeline makes pipeline the active pipeline for subsequent draws,
// applying its full fixed-function state (blend, depth/stencil,
// rasterizer, multisample). Grounded on command_queue_opengl.cpp's
// bind_pipeline.
func (q *CommandQueue) BindPipeline(pipeline PipelineHandle) {
	if !q.requireRenderPass("bind_pipeline") {
		return
	}
	rec := q.device.pipelines.tryGet(pipeline)
	if rec == nil {
		Logger().Error("rhi: bind_pipeline: handle not found")
		return
	}

	gl.UseProgram(rec.program)
	gl.BindVertexArray(rec.vao)

	for i, bs := range rec.desc.ColorBlend {
		idx := uint32(i)
		if bs.Enabled {
			gl.Enablei(gl.BLEND, idx)
			gl.BlendFuncSeparatei(idx, toGLBlendFactor(bs.SrcColorFactor), toGLBlendFactor(bs.DstColorFactor),
				toGLBlendFactor(bs.SrcAlphaFactor), toGLBlendFactor(bs.DstAlphaFactor))
			gl.BlendEquationSeparatei(idx, toGLBlendOp(bs.ColorOp), toGLBlendOp(bs.AlphaOp))
		} else {
			gl.Disablei(gl.BLEND, idx)
		}
		gl.ColorMaski(idx, bs.ColorWriteMask&ColorMaskRed != 0, bs.ColorWriteMask&ColorMaskGreen != 0,
			bs.ColorWriteMask&ColorMaskBlue != 0, bs.ColorWriteMask&ColorMaskAlpha != 0)
	}

	ds := rec.desc.DepthStencil
	if ds.DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(toGLCompareFunc(ds.DepthCompare))
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(ds.DepthWriteEnabled)

	if ds.StencilEnabled {
		gl.Enable(gl.STENCIL_TEST)
		gl.StencilMaskSeparate(gl.FRONT, uint32(ds.StencilWriteMask))
		gl.StencilMaskSeparate(gl.BACK, uint32(ds.StencilWriteMask))
		gl.StencilFuncSeparate(gl.FRONT, toGLCompareFunc(ds.Front.CompareFunc), 0, uint32(ds.StencilReadMask))
		gl.StencilFuncSeparate(gl.BACK, toGLCompareFunc(ds.Back.CompareFunc), 0, uint32(ds.StencilReadMask))
		gl.StencilOpSeparate(gl.FRONT, toGLStencilOp(ds.Front.FailOp), toGLStencilOp(ds.Front.DepthFailOp), toGLStencilOp(ds.Front.PassOp))
		gl.StencilOpSeparate(gl.BACK, toGLStencilOp(ds.Back.FailOp), toGLStencilOp(ds.Back.DepthFailOp), toGLStencilOp(ds.Back.PassOp))
	} else {
		gl.Disable(gl.STENCIL_TEST)
	}

	r := rec.desc.Rasterizer
	if r.CullMode == CullModeOff {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(toGLCullFace(r.CullMode))
	}
	gl.FrontFace(toGLFrontFace(r.FrontFace))
	gl.PolygonMode(gl.FRONT_AND_BACK, toGLPolygonMode(r.PolygonMode))
	if r.DepthBiasEnabled {
		gl.Enable(gl.POLYGON_OFFSET_FILL)
		// v4.3-core has no polygon-offset-clamp entry point, so
		// DepthBiasClamp is not applied.
		gl.PolygonOffset(r.DepthBiasSlope, r.DepthBiasConstant)
	} else {
		gl.Disable(gl.POLYGON_OFFSET_FILL)
	}

	ms := rec.desc.Multisample
	if ms.Samples > 1 {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}
	if ms.AlphaToCoverageEnabled {
		gl.Enable(gl.SAMPLE_ALPHA_TO_COVERAGE)
	} else {
		gl.Disable(gl.SAMPLE_ALPHA_TO_COVERAGE)
	}

	q.currentPipeline = pipeline
}

// BindVertexBuffers binds buffers[i] (at offsets[i]) to vertex binding
// slot i, matching the pipeline's VertexBindings layout by index.
func (q *CommandQueue) BindVertexBuffers(buffers []BufferHandle, offsets []uint64) {
	if !q.requireRenderPass("bind_vertex_buffers") {
		return
	}
	pipe := q.device.pipelines.tryGet(q.currentPipeline)
	if pipe == nil {
		Logger().Error("rhi: bind_vertex_buffers: no pipeline is bound")
		return
	}
	for i := range buffers {
		rec := q.device.buffers.tryGet(buffers[i])
		if rec == nil {
			Logger().Error("rhi: bind_vertex_buffers: handle not found", "slot", i)
			continue
		}
		if rec.desc.Usage != BufferUsageVertex {
			Logger().Error("rhi: bind_vertex_buffers: buffer usage must be vertex", "slot", i)
			continue
		}
		if i >= len(pipe.desc.VertexBindings) {
			Logger().Error("rhi: bind_vertex_buffers: slot exceeds pipeline's vertex binding count", "slot", i)
			continue
		}
		gl.BindVertexBuffer(uint32(i), rec.id, int(offsets[i]), int32(pipe.desc.VertexBindings[i].Stride))
	}
}

// BindIndexBuffer binds buffer as the index buffer used by subsequent
// DrawIndexed calls.
func (q *CommandQueue) BindIndexBuffer(buffer BufferHandle, format IndexFormat, offset uint64) {
	if !q.requireRenderPass("bind_index_buffer") {
		return
	}
	rec := q.device.buffers.tryGet(buffer)
	if rec == nil {
		Logger().Error("rhi: bind_index_buffer: handle not found")
		return
	}
	if rec.desc.Usage != BufferUsageIndex {
		Logger().Error("rhi: bind_index_buffer: buffer usage must be index")
		return
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, rec.id)
	q.currentIndexBuffer = buffer
	q.currentIndexFormat = format
	q.currentIndexOffset = offset
}

// BindShaderBinding applies every texture and buffer binding in the set.
func (q *CommandQueue) BindShaderBinding(binding ShaderBindingHandle) {
	if !q.requireRenderPass("bind_shader_binding") {
		return
	}
	rec := q.device.shaderBindings.tryGet(binding)
	if rec == nil {
		Logger().Error("rhi: bind_shader_binding: handle not found")
		return
	}
	for _, tb := range rec.desc.Textures {
		texRec := q.device.textures.tryGet(tb.Texture)
		if texRec == nil {
			Logger().Error("rhi: bind_shader_binding: texture handle not found", "slot", tb.Slot)
			continue
		}
		if !texRec.desc.Usage.has(TextureUsageSampled) {
			Logger().Error("rhi: bind_shader_binding: texture must have usage sampled", "slot", tb.Slot)
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + tb.Slot)
		gl.BindTexture(texRec.target, texRec.id)
		if !tb.Sampler.IsNull() {
			if sampRec := q.device.samplers.tryGet(tb.Sampler); sampRec != nil {
				gl.BindSampler(tb.Slot, sampRec.id)
			}
		}
	}
	for _, bb := range rec.desc.Buffers {
		bufRec := q.device.buffers.tryGet(bb.Buffer)
		if bufRec == nil {
			Logger().Error("rhi: bind_shader_binding: buffer handle not found", "slot", bb.Slot)
			continue
		}
		if bufRec.desc.Usage != BufferUsageUniform && bufRec.desc.Usage != BufferUsageStorage {
			Logger().Error("rhi: bind_shader_binding: buffer usage must be uniform or storage", "slot", bb.Slot)
			continue
		}
		target := toGLBufferTarget(bufRec.desc.Usage)
		if bb.Size == 0 {
			// size = 0 means "whole buffer" (spec.md §3, §4.4.4).
			gl.BindBufferBase(target, bb.Slot, bufRec.id)
		} else {
			gl.BindBufferRange(target, bb.Slot, bufRec.id, int(bb.Offset), int(bb.Size))
		}
	}
}

// SetViewport sets the viewport transform used by subsequent draws.
func (q *CommandQueue) SetViewport(vp Viewport) {
	if !q.requireRenderPass("set_viewport") {
		return
	}
	gl.ViewportIndexedf(0, vp.X, vp.Y, vp.Width, vp.Height)
	gl.DepthRangef(vp.MinDepth, vp.MaxDepth)
}

// SetScissor sets the scissor rectangle used by subsequent draws.
func (q *CommandQueue) SetScissor(sc Scissor) {
	if !q.requireRenderPass("set_scissor") {
		return
	}
	gl.Scissor(sc.X, sc.Y, int32(sc.Width), int32(sc.Height))
}

// Draw issues a non-indexed draw call.
func (q *CommandQueue) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if !q.requireRenderPass("draw") {
		return
	}
	pipe := q.device.pipelines.tryGet(q.currentPipeline)
	if pipe == nil {
		Logger().Error("rhi: draw: no pipeline is bound")
		return
	}
	if instanceCount == 0 {
		return
	}
	topology := toGLTopology(pipe.desc.Topology)
	if instanceCount == 1 && firstInstance == 0 {
		gl.DrawArrays(topology, int32(firstVertex), int32(vertexCount))
		return
	}
	gl.DrawArraysInstancedBaseInstance(topology, int32(firstVertex), int32(vertexCount), int32(instanceCount), firstInstance)
}

// DrawIndexed issues an indexed draw call using the currently bound index
// buffer.
func (q *CommandQueue) DrawIndexed(indexCount, instanceCount, firstIndex int32, vertexOffset int32, firstInstance uint32) {
	if !q.requireRenderPass("draw_indexed") {
		return
	}
	pipe := q.device.pipelines.tryGet(q.currentPipeline)
	if pipe == nil {
		Logger().Error("rhi: draw_indexed: no pipeline is bound")
		return
	}
	if q.currentIndexBuffer.IsNull() {
		Logger().Error("rhi: draw_indexed: no index buffer is bound")
		return
	}
	if indexCount == 0 || instanceCount == 0 {
		return
	}
	topology := toGLTopology(pipe.desc.Topology)
	indexSize := indexFormatSize(q.currentIndexFormat)
	offset := q.currentIndexOffset + uint64(firstIndex)*uint64(indexSize)

	if instanceCount == 1 && firstInstance == 0 && vertexOffset == 0 {
		gl.DrawElements(topology, indexCount, toGLIndexType(q.currentIndexFormat), gl.PtrOffset(int(offset)))
		return
	}
	gl.DrawElementsInstancedBaseVertexBaseInstance(topology, indexCount, toGLIndexType(q.currentIndexFormat),
		gl.PtrOffset(int(offset)), instanceCount, vertexOffset, firstInstance)
}

// SignalFence inserts a GPU fence sync object and associates it with
// fence, so a later WaitFence call can block on it. If fence was already
// signaled, the old sync object is discarded first (spec.md §4.4.9).
func (q *CommandQueue) SignalFence(fence FenceHandle) {
	if !q.requireRecording("signal_fence") {
		return
	}
	rec := q.device.fences.tryGet(fence)
	if rec == nil {
		Logger().Error("rhi: signal_fence: handle not found")
		return
	}
	if rec.sync != 0 {
		gl.DeleteSync(syncFromUintptr(rec.sync))
	}
	sync := gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
	rec.sync = uintptr(sync)
	q.signaledFences[fence.id] = true
}

// WaitFence issues a server-side GPU wait on fence with no timeout (spec.md
// §4.4.9). Waiting on a fence this queue never signaled is a validation
// error, not a deadlock.
func (q *CommandQueue) WaitFence(fence FenceHandle) error {
	if !q.signaledFences[fence.id] {
		return errorf("rhi: wait_for_fence: fence was never signaled by this queue")
	}
	return q.device.waitFence(fence)
}

// CopyBuffer copies size bytes from src at srcOffset to dst at dstOffset.
// src must be cpu_to_gpu or gpu_only; dst must be gpu_only (both non-gpu_only
// destinations are rejected; see DESIGN.md's Open Question decisions).
func (q *CommandQueue) CopyBuffer(src, dst BufferHandle, srcOffset, dstOffset, size uint64) error {
	if !q.requireRecording("copy_buffer") {
		return errorf("rhi: copy_buffer: queue is not recording")
	}
	srcRec := q.device.buffers.tryGet(src)
	if srcRec == nil {
		return errorf("rhi: copy_buffer: source handle not found")
	}
	dstRec := q.device.buffers.tryGet(dst)
	if dstRec == nil {
		return errorf("rhi: copy_buffer: destination handle not found")
	}
	if srcRec.desc.Access == BufferAccessGPUToCPU {
		return errorf("rhi: copy_buffer: source buffer %q must be cpu_to_gpu or gpu_only", srcRec.desc.Label)
	}
	if dstRec.desc.Access != BufferAccessGPUOnly {
		return errorf("rhi: copy_buffer: destination buffer %q must be gpu_only", dstRec.desc.Label)
	}
	if srcOffset+size > srcRec.desc.Size || dstOffset+size > dstRec.desc.Size {
		return errorf("rhi: copy_buffer: copy region exceeds buffer bounds")
	}
	gl.BindBuffer(gl.COPY_READ_BUFFER, srcRec.id)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, dstRec.id)
	gl.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, int(srcOffset), int(dstOffset), int(size))
	gl.BindBuffer(gl.COPY_READ_BUFFER, 0)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	return nil
}
