package shader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/wgslbox/common"
	"github.com/Carmen-Shannon/wgslbox/engine/source"
)

func process(t *testing.T, files map[string]string) *Manifest {
	t.Helper()
	m, err := NewPreProcessor(source.NewMapSource(files)).Process("main.wgsl")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return m
}

func TestProcessTitleAndSize(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `@set_title("Bob-Bonker")
@set_size(800, 600)
fn update() {}`,
	})
	if m.Title != "Bob-Bonker" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Width != 800 || m.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", m.Width, m.Height)
	}
	if strings.Contains(m.GeneratedWGSL, "@set_title") || strings.Contains(m.GeneratedWGSL, "@set_size") {
		t.Error("metadata directives leaked into output")
	}
}

func TestProcessDefaultsAndMalformedSize(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `@set_size(broken)
fn update() {}`,
	})
	if m.Title != "WGSL Game" {
		t.Errorf("Title = %q, want default", m.Title)
	}
	if m.Width != 800 || m.Height != 600 {
		t.Errorf("size = %dx%d, want defaults", m.Width, m.Height)
	}
}

func TestProcessImportOnce(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `@import("helpers.wgsl")
@import("helpers.wgsl")
fn update() { helper(); }`,
		"helpers.wgsl": `fn helper() {}`,
	})
	if got := strings.Count(m.GeneratedWGSL, "fn helper()"); got != 1 {
		t.Errorf("helper inlined %d times, want 1", got)
	}
	if !strings.Contains(m.GeneratedWGSL, "// Already imported: helpers.wgsl") {
		t.Error("missing elision comment for duplicate import")
	}
	if !strings.Contains(m.GeneratedWGSL, "// Imported from helpers.wgsl") {
		t.Error("missing inline marker")
	}
}

func TestProcessImportCycle(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `@import("a.wgsl")`,
		"a.wgsl":    `@import("b.wgsl")` + "\nfn a_fn() {}",
		"b.wgsl":    `@import("a.wgsl")` + "\nfn b_fn() {}",
	})
	if got := strings.Count(m.GeneratedWGSL, "fn a_fn()"); got != 1 {
		t.Errorf("a_fn appears %d times, want 1", got)
	}
	if got := strings.Count(m.GeneratedWGSL, "fn b_fn()"); got != 1 {
		t.Errorf("b_fn appears %d times, want 1", got)
	}
	if strings.Contains(m.GeneratedWGSL, "@import") {
		t.Error("unresolved @import left in output")
	}
}

func TestProcessImportMissing(t *testing.T) {
	_, err := NewPreProcessor(source.NewMapSource(map[string]string{
		"main.wgsl": `@import("gone.wgsl")`,
	})).Process("main.wgsl")
	if !errors.Is(err, common.ErrAssetNotFound) {
		t.Fatalf("err = %v, want ErrAssetNotFound", err)
	}
}

func TestProcessAssetDiscoveryOrder(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `
fn fs_render() {
    let a = textureSample(@texture("b.png"), @engine.sampler, uv);
    let b = textureSample(@texture("a.png"), @engine.sampler, uv);
    let c = textureSample(@texture("b.png"), @engine.sampler, uv);
    let i = @texture_index("c.png");
    @sound("bump.ogg").play();
    @sound("ding.wav").play();
}`,
	})
	wantTex := []string{"b.png", "a.png", "c.png"}
	if len(m.Textures) != 3 {
		t.Fatalf("Textures = %v", m.Textures)
	}
	for i, w := range wantTex {
		if m.Textures[i] != w {
			t.Errorf("Textures[%d] = %q, want %q", i, m.Textures[i], w)
		}
	}
	if len(m.Sounds) != 2 || m.Sounds[0] != "bump.ogg" || m.Sounds[1] != "ding.wav" {
		t.Errorf("Sounds = %v", m.Sounds)
	}
	// First occurrence wins its slot: b.png is _texture_0 at binding 1.
	if !strings.Contains(m.GeneratedWGSL, `@group(0) @binding(1) var _texture_0: texture_2d<f32>; // b.png`) {
		t.Error("b.png not bound at group 0 binding 1")
	}
	if !strings.Contains(m.GeneratedWGSL, "textureSample(_texture_0, _engine_sampler, uv)") {
		t.Error("@texture/@engine.sampler not rewritten")
	}
	if !strings.Contains(m.GeneratedWGSL, "let i = 2u;") {
		t.Error("@texture_index not rewritten to slot literal")
	}
}

func TestProcessSoundForms(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `fn update() {
    @sound("bump.ogg").play();
    @sound("bump.ogg").stop();
    let n = @sound("bump.ogg");
}`,
	})
	if !strings.Contains(m.GeneratedWGSL, "_engine.audio[0]++;") {
		t.Error(".play() not rewritten to counter increment")
	}
	if !strings.Contains(m.GeneratedWGSL, "/* stop sound 0 - not implemented */") {
		t.Error(".stop() not erased to comment")
	}
	if !strings.Contains(m.GeneratedWGSL, "let n = _engine.audio[0];") {
		t.Error("legacy form not rewritten to counter read")
	}
}

func TestProcessGameStateMovedToHeader(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `struct GameState { player_pos: vec2f, player_vel: vec2f, at_edge: u32 }
fn update() { @engine.state.player_pos.x += 1.0; }`,
	})
	if m.GameStateSize != 24 {
		t.Errorf("GameStateSize = %d, want 24", m.GameStateSize)
	}
	if m.GameStateAlignment != 8 {
		t.Errorf("GameStateAlignment = %d, want 8", m.GameStateAlignment)
	}
	if got := strings.Count(m.GeneratedWGSL, "struct GameState"); got != 1 {
		t.Errorf("GameState appears %d times, want 1 (header only)", got)
	}
	if !strings.Contains(m.GeneratedWGSL, "state: GameState,") {
		t.Error("host struct missing state field")
	}
	if !strings.Contains(m.GeneratedWGSL, "_engine.state.player_pos.x += 1.0;") {
		t.Error("@engine.state not rewritten")
	}
	// The struct precedes GameEngineHost in the header.
	if strings.Index(m.GeneratedWGSL, "struct GameState") > strings.Index(m.GeneratedWGSL, "struct GameEngineHost") {
		t.Error("GameState emitted after GameEngineHost")
	}
}

func TestProcessWithoutGameState(t *testing.T) {
	m := process(t, map[string]string{"main.wgsl": `fn update() {}`})
	if m.GameStateSize != 16 {
		t.Errorf("GameStateSize = %d, want sentinel 16", m.GameStateSize)
	}
	if strings.Contains(m.GeneratedWGSL, "state: GameState") {
		t.Error("state field emitted without a GameState struct")
	}
	if !strings.Contains(m.GeneratedWGSL, "_state_pad: array<u32, 4>") {
		t.Error("missing reserved state padding")
	}
}

func TestProcessHeaderConstants(t *testing.T) {
	m := process(t, map[string]string{"main.wgsl": `fn update() {}`})
	for _, want := range []string{
		"const BTN_UP: u32 = 0u;",
		"const BTN_SELECT: u32 = 11u;",
		"const KEY_A: u32 = 19u;",
		"const KEY_F1: u32 = 159u;",
		"const KEY_F12: u32 = 170u;",
		"@group(0) @binding(0) var _engine_sampler: sampler;",
		"@group(1) @binding(0) var<storage, read_write> _engine: GameEngineHost;",
		"osc: array<f32, 64>",
		"keys: array<u32, 194>",
	} {
		if !strings.Contains(m.GeneratedWGSL, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestProcessVideoAndCameraBindings(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `fn fs_render() {
    let t = textureLoad(@texture("t.png"), p, 0);
    let v = textureLoad(@video("clip.mp4"), p, 0);
    let c1 = textureLoad(@camera(2), p, 0);
    let c0 = textureLoad(@camera(0), p, 0);
}`,
	})
	if len(m.Cameras) != 2 || m.Cameras[0] != 0 || m.Cameras[1] != 2 {
		t.Fatalf("Cameras = %v, want sorted [0 2]", m.Cameras)
	}
	// Videos bind after textures, cameras after videos.
	if !strings.Contains(m.GeneratedWGSL, "@group(0) @binding(2) var _video_0: texture_2d<f32>; // clip.mp4") {
		t.Error("video not bound after textures")
	}
	if !strings.Contains(m.GeneratedWGSL, "@group(0) @binding(3) var _camera_0: texture_2d<f32>; // camera 0") {
		t.Error("camera 0 not bound at slot 0")
	}
	if !strings.Contains(m.GeneratedWGSL, "@group(0) @binding(4) var _camera_1: texture_2d<f32>; // camera 2") {
		t.Error("camera 2 not bound at slot 1")
	}
	if !strings.Contains(m.GeneratedWGSL, "textureLoad(_camera_1, p, 0)") {
		t.Error("@camera(2) not rewritten to sorted slot identifier")
	}
}

func TestProcessModelAccessors(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `fn vs_main(i: u32) {
    let p = @model("bunny.obj").positions[i];
    let n = @model("bunny.obj").normals[i];
}`,
	})
	if len(m.Models) != 1 || m.Models[0] != "bunny.obj" {
		t.Fatalf("Models = %v", m.Models)
	}
	if !strings.Contains(m.GeneratedWGSL, "_model_0_positions.data[i]") {
		t.Error(".positions not rewritten")
	}
	if !strings.Contains(m.GeneratedWGSL, "_model_0_normals.data[i]") {
		t.Error(".normals not rewritten")
	}
	if !strings.Contains(m.GeneratedWGSL, "@group(2) @binding(1) var<storage, read> _model_0_positions") {
		t.Error("positions binding missing")
	}
	if !strings.Contains(m.GeneratedWGSL, "@group(2) @binding(2) var<storage, read> _model_0_normals") {
		t.Error("normals binding missing")
	}
}

func TestProcessOscSlots(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `fn fs_render() {
    let a = @osc("bass");
    let b = @osc("treble");
    let c = @osc("bass");
}`,
	})
	if len(m.OscParams) != 2 || m.OscParams[0] != "bass" || m.OscParams[1] != "treble" {
		t.Fatalf("OscParams = %v", m.OscParams)
	}
	if !strings.Contains(m.GeneratedWGSL, "let a = _engine.osc[0];") {
		t.Error("bass not rewritten to slot 0")
	}
	if !strings.Contains(m.GeneratedWGSL, "let b = _engine.osc[1];") {
		t.Error("treble not rewritten to slot 1")
	}
	if slot, ok := m.OscSlot("treble"); !ok || slot != 1 {
		t.Errorf("OscSlot(treble) = %d, %v", slot, ok)
	}
}

func TestProcessOscOverflowClamps(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 66; i++ {
		fmt.Fprintf(&b, "let v%d = @osc(\"p%d\");\n", i, i)
	}
	m := process(t, map[string]string{"main.wgsl": b.String()})
	if len(m.OscParams) != 66 {
		t.Fatalf("OscParams = %d entries", len(m.OscParams))
	}
	// Slots beyond 63 share the final slot rather than overrunning.
	if !strings.Contains(m.GeneratedWGSL, "let v64 = _engine.osc[63];") {
		t.Error("65th parameter not clamped to slot 63")
	}
	if !strings.Contains(m.GeneratedWGSL, "let v63 = _engine.osc[63];") {
		t.Error("64th parameter lost its slot")
	}
}

func TestProcessStrLiteral(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `const greeting = @str("Hi\n");`,
	})
	if !strings.Contains(m.GeneratedWGSL, "array<u32, 128>(72u, 105u, 10u, 0u,") {
		t.Error("@str not expanded with escapes and zero padding")
	}
	if strings.Contains(m.GeneratedWGSL, "@str") {
		t.Error("@str residue left in output")
	}
}

func TestProcessStrTruncation(t *testing.T) {
	long := strings.Repeat("A", 200)
	m := process(t, map[string]string{
		"main.wgsl": `const s = @str("` + long + `");`,
	})
	// Exactly 128 slots, all holding 'A' (65), last included.
	start := strings.Index(m.GeneratedWGSL, "array<u32, 128>(")
	if start < 0 {
		t.Fatal("missing array literal")
	}
	end := strings.Index(m.GeneratedWGSL[start:], ")")
	lit := m.GeneratedWGSL[start : start+end]
	if got := strings.Count(lit, "65u"); got != 128 {
		t.Errorf("literal holds %d character codes, want 128", got)
	}
	if strings.Contains(lit, "0u") {
		t.Error("truncated literal should carry no zero padding")
	}
}

func TestProcessEngineFieldRewrites(t *testing.T) {
	m := process(t, map[string]string{
		"main.wgsl": `fn update() {
    let t = @engine.time;
    let d = @engine.delta_time;
    let w = @engine.screen_width;
    let h = @engine.screen_height;
    let mv = @engine.mouse;
    let k = @engine.keys[KEY_A];
    let btn = @engine.buttons[BTN_LEFT];
    let o = @engine.osc[3];
}`,
	})
	for _, want := range []string{
		"_engine.time", "_engine.delta_time", "_engine.screen_width",
		"_engine.screen_height", "_engine.mouse", "_engine.keys[KEY_A]",
		"_engine.buttons[BTN_LEFT]", "_engine.osc[3]",
	} {
		if !strings.Contains(m.GeneratedWGSL, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(m.GeneratedWGSL, "@engine.") {
		t.Error("@engine residue left in output")
	}
}

func TestProcessIdempotentIdentifiers(t *testing.T) {
	// Running the preprocessor over its own output must leave the rewritten
	// identifiers untouched.
	files := map[string]string{
		"main.wgsl": `struct GameState { x: f32 }
fn update() { @engine.state.x = @engine.time; @sound("a.ogg").play(); }`,
		"a.ogg": "",
	}
	first := process(t, files)
	second := process(t, map[string]string{"main.wgsl": first.GeneratedWGSL})
	if !strings.Contains(second.GeneratedWGSL, "_engine.state.x = _engine.time") {
		t.Error("identifiers changed on reprocessing")
	}
	if !strings.Contains(second.GeneratedWGSL, "_engine.audio[0]++") {
		t.Error("audio increment changed on reprocessing")
	}
}
