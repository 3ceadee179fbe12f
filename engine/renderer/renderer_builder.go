package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBuilderOption configures a wgpuRenderer during construction.
type RendererBuilderOption func(*wgpuRenderer)

// WithVSync selects the surface present mode: vsync (Fifo) when true,
// immediate presentation when false.
//
// Parameters:
//   - vsync: true to synchronize presentation with the display
func WithVSync(vsync bool) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		if vsync {
			r.presentMode = wgpu.PresentModeFifo
		} else {
			r.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithFallbackAdapter forces the software fallback adapter, for machines
// with no usable hardware GPU.
func WithFallbackAdapter() RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.forceFallbackAdapter = true
	}
}
