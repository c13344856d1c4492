package rhi

import "testing"

// These exercise the command-queue state machine's gating logic only, via
// paths that return before any GL call is made (unresolved handles, wrong
// state) — no live GL context is required. End-to-end draw/resolve
// behavior is covered by the integration-tagged tests.

func TestQueueBeginEndIdempotent(t *testing.T) {
	q := &CommandQueue{signaledFences: make(map[uint32]bool)}
	if q.state != queueIdle {
		t.Fatalf("new queue should start idle")
	}
	q.Begin()
	if q.state != queueRecording {
		t.Fatalf("state = %v, want recording", q.state)
	}
	q.Begin() // redundant begin: warns, does not change state
	if q.state != queueRecording {
		t.Fatalf("redundant Begin changed state to %v", q.state)
	}
	q.End()
	if q.state != queueIdle {
		t.Fatalf("state = %v, want idle", q.state)
	}
	q.End() // redundant end: warns, does not panic
}

func TestQueueDropsCommandsOutsideRenderPass(t *testing.T) {
	q := &CommandQueue{device: &Device{
		pipelines: newPool[pipelineKind, pipelineRecord](),
	}, signaledFences: make(map[uint32]bool)}
	q.Begin()

	// BindPipeline requires an open render pass; issuing it while merely
	// "recording" must be dropped, not crash on a nil device field.
	q.BindPipeline(PipelineHandle{id: 1})
	if !q.currentPipeline.IsNull() {
		t.Fatalf("bind_pipeline outside a render pass should not take effect")
	}
}

func TestQueueRequireRecordingRejectsWhenIdle(t *testing.T) {
	q := &CommandQueue{signaledFences: make(map[uint32]bool)}
	if q.requireRecording("test_op") {
		t.Fatalf("requireRecording should fail while idle")
	}
}

func TestQueueWaitFenceRejectsUnsignaledFence(t *testing.T) {
	q := &CommandQueue{signaledFences: make(map[uint32]bool)}
	err := q.WaitFence(FenceHandle{id: 1})
	if err == nil {
		t.Fatalf("expected an error waiting on a fence this queue never signaled")
	}
}

func TestQueueCopyBufferRejectsNonGPUOnlyDestination(t *testing.T) {
	d := &Device{buffers: newPool[bufferKind, bufferRecord]()}
	src := d.buffers.insert(bufferRecord{id: 1, desc: BufferDescriptor{Size: 64, Access: BufferAccessGPUOnly}})
	dst := d.buffers.insert(bufferRecord{id: 2, desc: BufferDescriptor{Size: 64, Access: BufferAccessGPUToCPU}})
	q := &CommandQueue{device: d, signaledFences: make(map[uint32]bool)}
	q.Begin()

	err := q.CopyBuffer(src, dst, 0, 0, 64)
	if err == nil {
		t.Fatalf("expected an error: copy_buffer destination must be gpu_only")
	}
}

func TestQueueCopyBufferRejectsWhenNotRecording(t *testing.T) {
	d := &Device{buffers: newPool[bufferKind, bufferRecord]()}
	q := &CommandQueue{device: d, signaledFences: make(map[uint32]bool)}
	err := q.CopyBuffer(BufferHandle{id: 1}, BufferHandle{id: 2}, 0, 0, 1)
	if err == nil {
		t.Fatalf("expected an error: queue is not recording")
	}
}
