// Package renderer drives the fixed per-frame GPU schedule: one compute
// pass (`update`), one render pass (`vs_main`/`fs_render`), an audio counter
// copy, and an asynchronous staging read-back. Device bring-up and resource
// lifetimes follow the WebGPU host conventions: resources built from a
// manifest live until the next reload and are released as a unit.
package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/wgslbox/engine/asset"
	"github.com/Carmen-Shannon/wgslbox/engine/hostblock"
	"github.com/Carmen-Shannon/wgslbox/engine/shader"
	"github.com/Carmen-Shannon/wgslbox/engine/video"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer owns the GPU device and the per-game resources.
type Renderer interface {
	// BuildResources materializes all GPU resources for a loaded game: the
	// shader module, both pipelines, the host block buffer, textures, model
	// buffers, and bind groups. Any previously built resources are released
	// first.
	//
	// Parameters:
	//   - man: the program manifest
	//   - bundle: the decoded required assets
	//   - block: the CPU host block mirror (its bytes seed the GPU buffer)
	//   - dynamics: one frame source per dynamic texture slot, videos first
	//
	// Returns:
	//   - error: an error if any resource or pipeline cannot be created
	BuildResources(man *shader.Manifest, bundle *asset.Bundle, block *hostblock.Block, dynamics []video.FrameSource) error

	// ReleaseResources releases the current game's GPU resources, keeping
	// the device and surface for the next load.
	ReleaseResources()

	// WriteHostBlock writes bytes into the host block storage buffer.
	//
	// Parameters:
	//   - offset: byte offset into the buffer
	//   - data: the bytes to write
	WriteHostBlock(offset uint64, data []byte)

	// UploadDynamicTexture uploads a produced frame into a dynamic texture
	// slot (videos first, then cameras, in manifest order).
	//
	// Parameters:
	//   - slot: the dynamic slot index
	//   - frame: the RGBA frame to upload
	UploadDynamicTexture(slot int, frame *video.Frame)

	// RenderFrame encodes and submits one frame: compute dispatch, render
	// pass, and the audio counter copy when no read-back is in flight.
	//
	// Returns:
	//   - error: an error if the swapchain texture cannot be acquired
	RenderFrame() error

	// ReadAudioCounters starts an asynchronous map-read of the audio staging
	// buffer. At most one read is in flight; the callback fires during a
	// later PollDevice with the decoded counters.
	//
	// Parameters:
	//   - onCounters: called with one counter per sound slot on success
	//
	// Returns:
	//   - bool: false when skipped (no sounds, or a read already in flight)
	ReadAudioCounters(onCounters func(counters []uint32)) bool

	// PollDevice pumps the device without blocking so pending map-async
	// callbacks can complete.
	PollDevice()

	// Resize reconfigures the surface and depth attachment.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	Resize(width, height int)

	// Release drops all GPU resources including the device.
	Release()
}

// wgpuRenderer is the cogentcore/webgpu implementation of Renderer.
type wgpuRenderer struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat        wgpu.TextureFormat
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode          wgpu.PresentMode
	forceFallbackAdapter bool

	width  int
	height int

	res *gameResources

	// mapInFlight is true while an audio staging read-back is pending; the
	// next frame's copy and read are skipped until it completes.
	mapInFlight bool
}

var _ Renderer = &wgpuRenderer{}

// NewRenderer brings up the GPU device against a window surface.
//
// Parameters:
//   - surfaceDescriptor: the platform surface from the window
//   - width, height: the initial framebuffer size in pixels
//   - options: functional options for renderer configuration
//
// Returns:
//   - Renderer: the ready renderer
//   - error: an error if no adapter or device is available
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	runtime.LockOSThread()

	r := &wgpuRenderer{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		width:       width,
		height:      height,
	}
	for _, opt := range options {
		opt(r)
	}

	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "wgslbox Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	r.device = device
	r.queue = device.GetQueue()

	r.configureSurface(width, height)
	return r, nil
}

// configureSurface (re)configures the swapchain and rebuilds the depth
// attachment and the cached render pass descriptor. Callers hold no lock.
func (r *wgpuRenderer) configureSurface(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height

	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if r.depthTextureView != nil {
		r.depthTextureView.Release()
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
	}

	depthTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	r.depthTexture = depthTexture
	r.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// Cached pass descriptor: clear to black, depth cleared to 1.0 each
	// frame. The color view is filled in per frame from the swapchain.
	r.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (r *wgpuRenderer) Resize(width, height int) {
	r.configureSurface(width, height)
}

func (r *wgpuRenderer) WriteHostBlock(offset uint64, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.res == nil || r.res.hostBuffer == nil || len(data) == 0 {
		return
	}
	r.queue.WriteBuffer(r.res.hostBuffer, offset, data)
}

func (r *wgpuRenderer) UploadDynamicTexture(slot int, frame *video.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.res == nil || slot < 0 || slot >= len(r.res.dynamicTextures) || frame == nil {
		return
	}
	tex := r.res.dynamicTextures[slot]
	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		frame.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  frame.Width * 4,
			RowsPerImage: frame.Height,
		},
		&wgpu.Extent3D{
			Width:              frame.Width,
			Height:             frame.Height,
			DepthOrArrayLayers: 1,
		},
	)
}

func (r *wgpuRenderer) RenderFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.res == nil {
		return errors.New("no game resources built")
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	// Compute update: one workgroup, free to mutate the whole host block.
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(r.res.computePipeline)
	computePass.SetBindGroup(0, r.res.textureBindGroup, nil)
	computePass.SetBindGroup(1, r.res.engineBindGroup, nil)
	computePass.DispatchWorkgroups(1, 1, 1)
	computePass.End()

	// Render: fullscreen triangle, or the first model's expanded vertices.
	r.renderPassDescriptor.ColorAttachments[0].View = view
	renderPass := encoder.BeginRenderPass(r.renderPassDescriptor)
	renderPass.SetPipeline(r.res.renderPipeline)
	renderPass.SetBindGroup(0, r.res.textureBindGroup, nil)
	renderPass.SetBindGroup(1, r.res.engineBindGroup, nil)
	if r.res.modelBindGroup != nil {
		renderPass.SetBindGroup(2, r.res.modelBindGroup, nil)
	}
	renderPass.Draw(r.res.vertexCount, 1, 0, 0)
	renderPass.End()

	// Stage the audio counters for read-back unless the previous read is
	// still pending; counters only grow, so a delayed read loses nothing.
	if r.res.audioStaging != nil && !r.mapInFlight {
		if err := encoder.CopyBufferToBuffer(
			r.res.hostBuffer, uint64(r.res.audioOffset),
			r.res.audioStaging, 0, uint64(r.res.audioSize),
		); err != nil {
			view.Release()
			surfaceTexture.Release()
			return err
		}
	}

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		view.Release()
		surfaceTexture.Release()
		return err
	}

	r.queue.Submit(commandBuffer)
	r.surface.Present()

	commandBuffer.Release()
	encoder.Release()
	view.Release()
	surfaceTexture.Release()
	return nil
}

func (r *wgpuRenderer) ReadAudioCounters(onCounters func(counters []uint32)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.res == nil || r.res.audioStaging == nil || r.mapInFlight {
		return false
	}

	staging := r.res.audioStaging
	size := r.res.audioSize
	r.mapInFlight = true

	err := staging.MapAsync(wgpu.MapModeRead, 0, uint64(size), func(status wgpu.BufferMapAsyncStatus) {
		r.mu.Lock()
		r.mapInFlight = false
		r.mu.Unlock()

		if status != wgpu.BufferMapAsyncStatusSuccess {
			return
		}
		counters := hostblock.DecodeCounters(staging.GetMappedRange(0, uint(size)))
		staging.Unmap()
		onCounters(counters)
	})
	if err != nil {
		r.mapInFlight = false
		return false
	}
	return true
}

func (r *wgpuRenderer) PollDevice() {
	r.device.Poll(false, nil)
}

func (r *wgpuRenderer) ReleaseResources() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.res != nil {
		r.res.release()
		r.res = nil
	}
	r.mapInFlight = false
}

func (r *wgpuRenderer) Release() {
	r.ReleaseResources()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.depthTextureView != nil {
		r.depthTextureView.Release()
		r.depthTextureView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.surface != nil {
		r.surface.Release()
		r.surface = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}
