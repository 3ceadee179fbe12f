// resources.go materializes a loaded game's GPU resources from its manifest:
// the shader module, the two fixed pipelines, the host block buffer, every
// texture and model buffer, and the bind groups matching the binding plan.
package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/wgslbox/engine/asset"
	"github.com/Carmen-Shannon/wgslbox/engine/binding"
	"github.com/Carmen-Shannon/wgslbox/engine/hostblock"
	"github.com/Carmen-Shannon/wgslbox/engine/shader"
	"github.com/Carmen-Shannon/wgslbox/engine/video"
	"github.com/cogentcore/webgpu/wgpu"
)

// gameResources holds every GPU object owned by one loaded game. Released
// as a unit on reload.
type gameResources struct {
	shaderModule *wgpu.ShaderModule

	renderPipeline  *wgpu.RenderPipeline
	computePipeline *wgpu.ComputePipeline

	hostBuffer   *wgpu.Buffer
	audioStaging *wgpu.Buffer
	audioOffset  int
	audioSize    int

	sampler *wgpu.Sampler

	staticTextures  []*wgpu.Texture
	dynamicTextures []*wgpu.Texture
	textureViews    []*wgpu.TextureView

	modelBuffers []*wgpu.Buffer

	bindGroupLayouts []*wgpu.BindGroupLayout
	textureBindGroup *wgpu.BindGroup
	engineBindGroup  *wgpu.BindGroup
	modelBindGroup   *wgpu.BindGroup

	vertexCount uint32
}

func (r *wgpuRenderer) BuildResources(man *shader.Manifest, bundle *asset.Bundle, block *hostblock.Block, dynamics []video.FrameSource) error {
	r.ReleaseResources()

	r.mu.Lock()
	defer r.mu.Unlock()

	res := &gameResources{
		audioOffset: block.AudioOffset(),
		audioSize:   block.AudioSize(),
		vertexCount: 3,
	}
	if len(bundle.Models) > 0 {
		res.vertexCount = uint32(bundle.Models[0].VertexCount)
	}

	// Build in one pass; on any failure release what exists so a failed
	// load leaves no GPU garbage behind.
	if err := r.buildResources(res, man, bundle, block, dynamics); err != nil {
		res.release()
		return err
	}
	r.res = res
	return nil
}

func (r *wgpuRenderer) buildResources(res *gameResources, man *shader.Manifest, bundle *asset.Bundle, block *hostblock.Block, dynamics []video.FrameSource) error {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: man.Title,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: man.GeneratedWGSL,
		},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	res.shaderModule = module

	plan := binding.Build(man)
	for g, desc := range plan.Groups {
		layout, err := r.device.CreateBindGroupLayout(&desc)
		if err != nil {
			return fmt.Errorf("create bind group layout %d: %w", g, err)
		}
		res.bindGroupLayouts = append(res.bindGroupLayouts, layout)
	}

	renderLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Render Pipeline Layout",
		BindGroupLayouts: res.bindGroupLayouts[:plan.RenderGroupCount()],
	})
	if err != nil {
		return fmt.Errorf("create render pipeline layout: %w", err)
	}

	res.renderPipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  man.Title + " Render Pipeline",
		Layout: renderLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_render",
			Targets: []wgpu.ColorTargetState{
				{
					Format: r.surfaceFormat,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorZero,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorZero,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}

	computeLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Compute Pipeline Layout",
		BindGroupLayouts: res.bindGroupLayouts[:plan.ComputeGroupCount()],
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline layout: %w", err)
	}

	res.computePipeline, err = r.device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  man.Title + " Compute Pipeline",
		Layout: computeLayout,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     module,
			EntryPoint: "update",
		},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}

	// Host block: seeded with the zeroed CPU mirror so the first compute
	// pass reads defined state.
	res.hostBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Host Block",
		Size:  uint64(block.Size()),
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create host block buffer: %w", err)
	}
	r.queue.WriteBuffer(res.hostBuffer, 0, block.Bytes())

	if res.audioSize > 0 {
		res.audioStaging, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Audio Staging",
			Size:  uint64(res.audioSize),
			Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create audio staging buffer: %w", err)
		}
	}

	res.sampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Engine Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}

	// Static textures upload once; dynamic slots are created at each
	// source's size and written per frame.
	for _, tex := range bundle.Textures {
		gpuTex, view, err := r.createTexture(tex.Path, tex.Width, tex.Height, tex.Pixels)
		if err != nil {
			return err
		}
		res.staticTextures = append(res.staticTextures, gpuTex)
		res.textureViews = append(res.textureViews, view)
	}
	for i, src := range dynamics {
		w, h := src.Size()
		gpuTex, view, err := r.createTexture(fmt.Sprintf("dynamic %d", i), w, h, nil)
		if err != nil {
			return err
		}
		res.dynamicTextures = append(res.dynamicTextures, gpuTex)
		res.textureViews = append(res.textureViews, view)
	}

	for _, model := range bundle.Models {
		for _, data := range [][]byte{model.Positions, model.Normals} {
			buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: model.Path,
				Size:  uint64(len(data)),
				Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return fmt.Errorf("create model buffer %s: %w", model.Path, err)
			}
			r.queue.WriteBuffer(buf, 0, data)
			res.modelBuffers = append(res.modelBuffers, buf)
		}
	}

	return r.buildBindGroups(res, plan)
}

// createTexture creates an RGBA8 2D texture and view, uploading pixels when
// provided.
func (r *wgpuRenderer) createTexture(label string, width, height uint32, pixels []byte) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create texture %s: %w", label, err)
	}
	if pixels != nil {
		r.queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  tex,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{},
				Aspect:   wgpu.TextureAspectAll,
			},
			pixels,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  width * 4,
				RowsPerImage: height,
			},
			&wgpu.Extent3D{
				Width:              width,
				Height:             height,
				DepthOrArrayLayers: 1,
			},
		)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create texture view %s: %w", label, err)
	}
	return tex, view, nil
}

// buildBindGroups wires the created resources into the plan's three groups.
func (r *wgpuRenderer) buildBindGroups(res *gameResources, plan *binding.Plan) error {
	textureEntries := []wgpu.BindGroupEntry{
		{Binding: 0, Sampler: res.sampler},
	}
	for i, view := range res.textureViews {
		textureEntries = append(textureEntries, wgpu.BindGroupEntry{
			Binding:     uint32(1 + i),
			TextureView: view,
		})
	}

	var err error
	res.textureBindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Texture Bind Group",
		Layout:  res.bindGroupLayouts[binding.GroupTextures],
		Entries: textureEntries,
	})
	if err != nil {
		return fmt.Errorf("create texture bind group: %w", err)
	}

	res.engineBindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Engine Bind Group",
		Layout: res.bindGroupLayouts[binding.GroupEngine],
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  res.hostBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create engine bind group: %w", err)
	}

	if plan.HasModels() {
		var modelEntries []wgpu.BindGroupEntry
		for i, buf := range res.modelBuffers {
			modelEntries = append(modelEntries, wgpu.BindGroupEntry{
				Binding: uint32(1 + i),
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			})
		}
		res.modelBindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   "Model Bind Group",
			Layout:  res.bindGroupLayouts[binding.GroupModels],
			Entries: modelEntries,
		})
		if err != nil {
			return fmt.Errorf("create model bind group: %w", err)
		}
	}

	return nil
}

// release frees every GPU object in the set.
func (g *gameResources) release() {
	if g.textureBindGroup != nil {
		g.textureBindGroup.Release()
	}
	if g.engineBindGroup != nil {
		g.engineBindGroup.Release()
	}
	if g.modelBindGroup != nil {
		g.modelBindGroup.Release()
	}
	for _, layout := range g.bindGroupLayouts {
		layout.Release()
	}
	for _, view := range g.textureViews {
		view.Release()
	}
	for _, tex := range g.staticTextures {
		tex.Release()
	}
	for _, tex := range g.dynamicTextures {
		tex.Release()
	}
	for _, buf := range g.modelBuffers {
		buf.Release()
	}
	if g.audioStaging != nil {
		g.audioStaging.Release()
	}
	if g.hostBuffer != nil {
		g.hostBuffer.Release()
	}
	if g.renderPipeline != nil {
		g.renderPipeline.Release()
	}
	if g.computePipeline != nil {
		g.computePipeline.Release()
	}
	if g.shaderModule != nil {
		g.shaderModule.Release()
	}
}
