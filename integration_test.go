//go:build integration

package rhi

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// These tests require a live OpenGL 4.3 core-profile context and are
// excluded from ordinary `go test` runs, mirroring hal/gles/integration_test.go
// in the teacher: headless CI has no GPU to drive.

func newTestSwapchain(t *testing.T) (*Swapchain, func()) {
	t.Helper()
	if err := glfw.Init(); err != nil {
		t.Fatalf("glfw.Init: %v", err)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	win, err := glfw.CreateWindow(64, 64, "rhi-test", nil, nil)
	if err != nil {
		t.Fatalf("glfw.CreateWindow: %v", err)
	}
	sc, err := NewSwapchain(win, SwapchainOptions{ColorFormat: FormatRGBA8Unorm, Label: "test"})
	if err != nil {
		t.Fatalf("NewSwapchain: %v", err)
	}
	return sc, func() {
		sc.Destroy()
		win.Destroy()
		glfw.Terminate()
	}
}

func TestIntegrationDuplicateSwapchainRejected(t *testing.T) {
	sc, cleanup := newTestSwapchain(t)
	defer cleanup()

	_, err := NewSwapchain(sc.window, SwapchainOptions{ColorFormat: FormatRGBA8Unorm})
	if err != ErrDuplicateSwapchain {
		t.Fatalf("err = %v, want ErrDuplicateSwapchain", err)
	}
}

func TestIntegrationClearColorRenderPass(t *testing.T) {
	sc, cleanup := newTestSwapchain(t)
	defer cleanup()

	q := sc.Queue()
	q.Begin()
	q.BeginRenderPass(sc.DefaultFramebuffer())
	q.EndRenderPass()
	q.End()
}

func TestIntegrationMSAAColorResolve(t *testing.T) {
	sc, cleanup := newTestSwapchain(t)
	defer cleanup()
	d := sc.Device()

	msaaColor := d.CreateTexture(TextureDescriptor{
		Type: TextureType2D, Format: FormatRGBA8Unorm,
		Width: 64, Height: 64, MipLevels: 1, Samples: 4,
		Usage: TextureUsageRenderTarget | TextureUsageResolveSource,
	}, nil, 0)
	resolveTarget := d.CreateTexture(TextureDescriptor{
		Type: TextureType2D, Format: FormatRGBA8Unorm,
		Width: 64, Height: 64, MipLevels: 1, Samples: 1,
		Usage: TextureUsageResolveDestination | TextureUsageTransferSource,
	}, nil, 0)
	if msaaColor.IsNull() || resolveTarget.IsNull() {
		t.Fatalf("texture creation failed")
	}

	rp := d.CreateRenderPass(RenderPassDescriptor{
		ColorAttachments: []ColorAttachmentDescriptor{
			{Format: FormatRGBA8Unorm, Samples: 4, Load: LoadOpClear, Store: StoreOpResolve, ClearColor: [4]float32{1, 0, 0, 1}},
		},
	})
	fb := d.CreateFramebuffer(rp, FramebufferDescriptor{
		Width: 64, Height: 64,
		Color: []FramebufferColorAttachment{{Texture: msaaColor, ResolveTarget: resolveTarget}},
	})
	if fb.IsNull() {
		t.Fatalf("framebuffer creation failed")
	}

	q := sc.Queue()
	q.Begin()
	q.BeginRenderPass(fb)
	q.EndRenderPass()

	readback := d.CreateBuffer(BufferDescriptor{
		Size: 64 * 64 * 4, Usage: BufferUsageStage, Access: BufferAccessGPUToCPU,
	}, nil)
	if err := d.CopyTextureToBuffer(resolveTarget, readback, TextureCopyRegion{Width: 64, Height: 64, Depth: 1}); err != nil {
		t.Fatalf("CopyTextureToBuffer: %v", err)
	}
	q.End()
}

func TestIntegrationDefaultFramebufferRejectsMultiAttachmentPass(t *testing.T) {
	sc, cleanup := newTestSwapchain(t)
	defer cleanup()
	d := sc.Device()

	badRP := d.CreateRenderPass(RenderPassDescriptor{
		ColorAttachments: []ColorAttachmentDescriptor{
			{Format: FormatRGBA8Unorm, Samples: 1, Load: LoadOpClear, Store: StoreOpStore},
			{Format: FormatRGBA8Unorm, Samples: 1, Load: LoadOpClear, Store: StoreOpStore},
		},
	})
	badFB := d.createDefaultFramebuffer(badRP, 64, 64)

	q := sc.Queue()
	q.Begin()
	q.BeginRenderPass(badFB)
	// Validation drops the command; the queue must remain in "recording",
	// not silently advance to "in_render_pass".
	if q.state != queueRecording {
		t.Fatalf("state = %v, want recording (begin_render_pass should have been rejected)", q.state)
	}
	q.End()
}
