// header.go emits the generated prelude of every processed game: the user's
// GameState struct, the GameEngineHost struct with the exact field order the
// host writes at, the button/key constant blocks, and one binding declaration
// per engine-managed resource.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/wgslbox/common"
)

// buildHeader renders the generated header for a top-level compilation.
// Field order and counts in GameEngineHost are the host block contract; the
// host writes at the byte offsets this struct lays out to under std430.
func buildHeader(m *Manifest, state *StateLayout) string {
	var b strings.Builder
	b.WriteString("// Preprocessed WGSL - generated from directives\n\n")

	if state != nil {
		b.WriteString(state.Source)
		b.WriteString("\n\n")
	}

	b.WriteString("// Engine host struct that contains all engine state\n")
	b.WriteString("struct GameEngineHost {\n")
	b.WriteString(fmt.Sprintf("    buttons: array<i32, %d>, // virtual gamepad state (BTN_*)\n", common.ButtonCount))
	b.WriteString("    time: f32, // seconds since start\n")
	b.WriteString("    delta_time: f32, // seconds since last frame\n")
	b.WriteString("    screen_width: f32,\n")
	b.WriteString("    screen_height: f32,\n")
	b.WriteString("    mouse: vec4f, // xy = position, zw = last click (negated while released)\n")
	if state != nil {
		b.WriteString("    state: GameState, // user game state, persists across frames\n")
	}
	if pad := state.PadWords(); pad > 0 {
		b.WriteString(fmt.Sprintf("    _state_pad: array<u32, %d>, // reserved\n", pad))
	}
	if len(m.Sounds) > 0 {
		b.WriteString(fmt.Sprintf("    audio: array<u32, %d>, // audio trigger counters\n", len(m.Sounds)))
	}
	b.WriteString(fmt.Sprintf("    osc: array<f32, %d>, // OSC float slots: /u/name or /u/N\n", common.OscSlotCount))
	b.WriteString(fmt.Sprintf("    keys: array<u32, %d>, // raw key state, indexed by KEY_* constants\n", common.KeyArraySize))
	b.WriteString("}\n\n")

	b.WriteString("// Button constants for input\n")
	for _, c := range common.WGSLButtonConstants {
		b.WriteString(fmt.Sprintf("const %s: u32 = %du;\n", c.Name, c.Index))
	}
	b.WriteString("\n")

	b.WriteString("// Key constants for _engine.keys[]\n")
	for _, c := range common.WGSLKeyConstants {
		b.WriteString(fmt.Sprintf("const %s: u32 = %du;\n", c.Name, c.Index))
	}
	b.WriteString("\n")

	b.WriteString("// Bindings: group 0 = sampler + textures, group 1 = engine state\n\n")
	b.WriteString("@group(0) @binding(0) var _engine_sampler: sampler;\n")
	for i, tex := range m.Textures {
		b.WriteString(fmt.Sprintf("@group(0) @binding(%d) var _texture_%d: texture_2d<f32>; // %s\n", i+1, i, tex))
	}
	videoBase := len(m.Textures) + 1
	for i, vid := range m.Videos {
		b.WriteString(fmt.Sprintf("@group(0) @binding(%d) var _video_%d: texture_2d<f32>; // %s\n", videoBase+i, i, vid))
	}
	cameraBase := videoBase + len(m.Videos)
	for i, cam := range m.Cameras {
		b.WriteString(fmt.Sprintf("@group(0) @binding(%d) var _camera_%d: texture_2d<f32>; // camera %d\n", cameraBase+i, i, cam))
	}

	b.WriteString("\n@group(1) @binding(0) var<storage, read_write> _engine: GameEngineHost;\n")

	if len(m.Models) > 0 {
		b.WriteString("\n// Model data buffers\n")
		for i, model := range m.Models {
			base := 1 + i*2
			b.WriteString(fmt.Sprintf("struct Model%dPositions { data: array<vec3f> }\n", i))
			b.WriteString(fmt.Sprintf("@group(2) @binding(%d) var<storage, read> _model_%d_positions: Model%dPositions; // %s\n", base, i, i, model))
			b.WriteString(fmt.Sprintf("struct Model%dNormals { data: array<vec3f> }\n", i))
			b.WriteString(fmt.Sprintf("@group(2) @binding(%d) var<storage, read> _model_%d_normals: Model%dNormals;\n", base+1, i, i))
		}
	}

	b.WriteString("\n")
	return b.String()
}
