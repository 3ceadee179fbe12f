package hostblock

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/wgslbox/engine/shader"
	"github.com/Carmen-Shannon/wgslbox/engine/source"
)

// The preprocessor measures GameState and emits the GameEngineHost struct;
// the host block derives its region offsets from the same measurement. This
// pins the two sides of the contract together end to end.
func TestOffsetsAgreeWithPreprocessor(t *testing.T) {
	files := map[string]string{
		"main.wgsl": `@set_title("Bob-Bonker")
@set_size(800, 600)
struct GameState { player_pos: vec2f, player_vel: vec2f, at_edge: u32 }
@compute @workgroup_size(1)
fn update() {
    @engine.state.player_pos.x += @engine.delta_time;
    @sound("bump.wav").play();
}`,
	}
	man, err := shader.NewPreProcessor(source.NewMapSource(files)).Process("main.wgsl")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if man.GameStateSize != 24 {
		t.Fatalf("GameStateSize = %d, want 24", man.GameStateSize)
	}

	b := New(man.GameStateSize, len(man.Sounds))
	if got := b.AudioOffset(); got != 104 {
		t.Errorf("AudioOffset = %d, want 80+24", got)
	}
	if got := b.OscOffset(); got != 108 {
		t.Errorf("OscOffset = %d, want 108", got)
	}
	if b.Size()%16 != 0 {
		t.Error("block size not a multiple of 16")
	}

	// The emitted host struct carries the same regions in the same order.
	wgsl := man.GeneratedWGSL
	fields := []string{
		"buttons: array<i32, 12>",
		"time: f32",
		"mouse: vec4f",
		"state: GameState",
		"audio: array<u32, 1>",
		"osc: array<f32, 64>",
		"keys: array<u32, 194>",
	}
	last := -1
	for _, f := range fields {
		idx := strings.Index(wgsl, f)
		if idx < 0 {
			t.Fatalf("generated struct missing %q", f)
		}
		if idx < last {
			t.Errorf("field %q out of order", f)
		}
		last = idx
	}
}
