// Package rhi is a minimal render hardware interface over a single OpenGL
// 4.3 core-profile context: generation-free handles to device-owned
// buffers, textures, samplers, pipelines, render passes, framebuffers,
// shader bindings and fences, plus a single-threaded command queue that
// records and immediately executes draw, copy, and synchronization
// commands against them.
//
// A Device owns resource storage; a Swapchain wraps a *glfw.Window's GL
// context and the device's default (window-backed) framebuffer; a
// CommandQueue records commands against exactly one device, following the
// state machine idle -> recording -> in_render_pass.
//
// Descriptor validation failures never panic or return a Go error from a
// create call: they log at error level and return the null handle, so a
// single bad resource request cannot bring down a frame. See SetLogger to
// observe these diagnostics.
package rhi
