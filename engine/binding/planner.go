// Package binding turns a program manifest into the three bind-group layouts
// the fixed pipeline pair uses. Binding numbers are a pure function of the
// manifest, so the plan is deterministic across runs for the same game.
package binding

import (
	"github.com/Carmen-Shannon/wgslbox/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Group indices of the fixed layout scheme.
const (
	GroupTextures = 0
	GroupEngine   = 1
	GroupModels   = 2
)

// Plan holds the bind-group layout descriptors for a loaded game.
type Plan struct {
	// Groups lists the layout descriptors by group index. Group 2 is present
	// only when the game references at least one model.
	Groups []wgpu.BindGroupLayoutDescriptor
}

// HasModels reports whether the plan includes the model buffer group.
func (p *Plan) HasModels() bool {
	return len(p.Groups) > GroupModels
}

// RenderGroupCount returns how many groups the render pipeline layout uses.
func (p *Plan) RenderGroupCount() int {
	return len(p.Groups)
}

// ComputeGroupCount returns how many groups the compute pipeline layout
// uses. The compute pass never touches the model buffers.
func (p *Plan) ComputeGroupCount() int {
	return 2
}

// Build derives the bind-group layouts from a manifest.
//
// Group 0 (fragment): binding 0 is the filtering sampler; bindings 1… are
// the static textures, then the video textures, then the camera textures,
// in manifest order. Group 1 (fragment + compute): binding 0 is the host
// block as read-write storage. Group 2 (vertex + fragment, only when models
// exist): model i's positions at binding 1+2i, normals at 2+2i, both
// read-only storage.
//
// Parameters:
//   - m: the program manifest
//
// Returns:
//   - *Plan: the deterministic layout plan
func Build(m *shader.Manifest) *Plan {
	textureEntries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeFiltering,
			},
		},
	}
	slotCount := len(m.Textures) + len(m.Videos) + len(m.Cameras)
	for i := 0; i < slotCount; i++ {
		textureEntries = append(textureEntries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(1 + i),
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		})
	}

	engineEntries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment | wgpu.ShaderStageCompute,
			Buffer: wgpu.BufferBindingLayout{
				Type: wgpu.BufferBindingTypeStorage,
			},
		},
	}

	plan := &Plan{
		Groups: []wgpu.BindGroupLayoutDescriptor{
			{Label: "Texture Bind Group Layout", Entries: textureEntries},
			{Label: "Engine Bind Group Layout", Entries: engineEntries},
		},
	}

	if len(m.Models) > 0 {
		var modelEntries []wgpu.BindGroupLayoutEntry
		for i := range m.Models {
			base := uint32(1 + i*2)
			for _, binding := range []uint32{base, base + 1} {
				modelEntries = append(modelEntries, wgpu.BindGroupLayoutEntry{
					Binding:    binding,
					Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type: wgpu.BufferBindingTypeReadOnlyStorage,
					},
				})
			}
		}
		plan.Groups = append(plan.Groups, wgpu.BindGroupLayoutDescriptor{
			Label:   "Model Bind Group Layout",
			Entries: modelEntries,
		})
	}

	return plan
}
