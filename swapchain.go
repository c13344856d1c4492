package rhi

import (
	"context"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SwapchainOptions configures NewSwapchain.
type SwapchainOptions struct {
	ColorFormat        Format
	DepthStencilFormat Format // FormatDepth24Stencil8 etc; used only when HasDepthStencil is set
	HasDepthStencil    bool
	DebugLogging       bool
	Label              string
}

var (
	swapchainRegistryMu sync.Mutex
	swapchainRegistry   = map[*glfw.Window]bool{}
)

// Swapchain owns the driver context obtained through an already-created
// *glfw.Window and presents frames rendered into the window's default
// framebuffer. Window creation itself is out of scope (spec.md §1); the
// caller creates the glfw.Window and makes it current before calling
// NewSwapchain. Grounded on window_glfw.go/glfwgl2.go for context
// acquisition shape and hal/api.go's duplicate-surface rejection for the
// one-swapchain-per-window rule.
type Swapchain struct {
	window *glfw.Window
	device *Device
	queue  *CommandQueue

	renderPass  RenderPassHandle
	framebuffer FramebufferHandle
}

// NewSwapchain creates a Device and default Framebuffer bound to window's
// GL context. Returns ErrDuplicateSwapchain if a swapchain already exists
// for this window.
func NewSwapchain(window *glfw.Window, opts SwapchainOptions) (*Swapchain, error) {
	swapchainRegistryMu.Lock()
	if swapchainRegistry[window] {
		swapchainRegistryMu.Unlock()
		return nil, ErrDuplicateSwapchain
	}
	swapchainRegistry[window] = true
	swapchainRegistryMu.Unlock()

	window.MakeContextCurrent()
	device, err := NewDevice(DeviceOptions{Label: opts.Label})
	if err != nil {
		swapchainRegistryMu.Lock()
		delete(swapchainRegistry, window)
		swapchainRegistryMu.Unlock()
		return nil, err
	}

	if opts.DebugLogging {
		registerDebugCallback()
	}

	rpDesc := RenderPassDescriptor{
		ColorAttachments: []ColorAttachmentDescriptor{{Format: opts.ColorFormat, Samples: 1, Load: LoadOpClear, Store: StoreOpStore}},
		Label:            "swapchain-default",
	}
	if opts.HasDepthStencil {
		rpDesc.DepthStencil = &DepthStencilAttachmentDescriptor{
			Format: opts.DepthStencilFormat, Samples: 1,
			DepthLoad: LoadOpClear, DepthStore: StoreOpDiscard,
			StencilLoad: LoadOpClear, StencilStore: StoreOpDiscard,
		}
	}
	rp := device.CreateRenderPass(rpDesc)

	w, h := window.GetFramebufferSize()
	fb := device.createDefaultFramebuffer(rp, uint32(w), uint32(h))

	sc := &Swapchain{
		window:      window,
		device:      device,
		queue:       NewCommandQueue(device),
		renderPass:  rp,
		framebuffer: fb,
	}
	Logger().Debug("rhi: swapchain created", "label", opts.Label)
	return sc, nil
}

// Device returns the device owned by this swapchain.
func (s *Swapchain) Device() *Device { return s.device }

// Queue returns the single command queue owned by this swapchain's device.
func (s *Swapchain) Queue() *CommandQueue { return s.queue }

// DefaultFramebuffer returns the handle bound to the window's backbuffer.
func (s *Swapchain) DefaultFramebuffer() FramebufferHandle { return s.framebuffer }

// DefaultRenderPass returns the render pass compatible with
// DefaultFramebuffer.
func (s *Swapchain) DefaultRenderPass() RenderPassHandle { return s.renderPass }

// Present swaps the window's front and back buffers.
func (s *Swapchain) Present() {
	s.window.SwapBuffers()
}

// Resize updates the default framebuffer's recorded size after the window
// was resized. The backbuffer's storage itself is owned by the window
// system, not this module, so there is no GL object to reallocate here.
func (s *Swapchain) Resize(width, height uint32) {
	rec := s.device.framebuffers.tryGet(s.framebuffer)
	if rec == nil {
		return
	}
	rec.desc.Width = width
	rec.desc.Height = height
}

// Destroy releases the device owned by this swapchain and unregisters the
// window so a new swapchain may later be created for it.
func (s *Swapchain) Destroy() {
	s.device.Destroy()
	swapchainRegistryMu.Lock()
	delete(swapchainRegistry, s.window)
	swapchainRegistryMu.Unlock()
}

var debugCallbackOnce sync.Once

// registerDebugCallback installs glDebugMessageCallback exactly once per
// process, routing every driver message into the package logger.
func registerDebugCallback() {
	debugCallbackOnce.Do(func() {
		gl.Enable(gl.DEBUG_OUTPUT)
		gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
		gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			level := debugSeverityLevel(severity)
			Logger().Log(context.Background(), level, "rhi: gl debug message", "source", source, "type", gltype, "id", id, "message", message)
		}, nil)
	})
}

func debugSeverityLevel(severity uint32) slog.Level {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return slog.LevelError
	case gl.DEBUG_SEVERITY_MEDIUM:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}
