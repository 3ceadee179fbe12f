package hostblock

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/wgslbox/common"
)

func TestCanonicalOffsetsEmptyState(t *testing.T) {
	// Sentinel 16-byte state, no sounds: audio region is empty, osc at 96.
	b := New(16, 0)
	if got := b.AudioOffset(); got != 96 {
		t.Errorf("AudioOffset = %d, want 96", got)
	}
	if got := b.AudioSize(); got != 0 {
		t.Errorf("AudioSize = %d, want 0", got)
	}
	if got := b.OscOffset(); got != 96 {
		t.Errorf("OscOffset = %d, want 96", got)
	}
	if got := b.KeysOffset(); got != 96+256 {
		t.Errorf("KeysOffset = %d, want 352", got)
	}
	want := 96 + 256 + 4*common.KeyArraySize
	want = (want + 15) / 16 * 16
	if got := b.Size(); got != want {
		t.Errorf("Size = %d, want %d", got, want)
	}
	if b.Size()%16 != 0 {
		t.Error("Size not a multiple of 16")
	}
}

func TestCanonicalOffsetsBobDemo(t *testing.T) {
	// GameState {vec2f, vec2f, u32} rounds to 24 bytes; one sound.
	b := New(24, 1)
	if got := b.AudioOffset(); got != 104 {
		t.Errorf("AudioOffset = %d, want 104", got)
	}
	if got := b.OscOffset(); got != 108 {
		t.Errorf("OscOffset = %d, want 108", got)
	}
	if got := b.KeysOffset(); got != 108+256 {
		t.Errorf("KeysOffset = %d, want 364", got)
	}
}

func TestPrefixWrites(t *testing.T) {
	b := New(16, 1)
	var buttons [common.ButtonCount]int32
	buttons[common.BtnRight] = 1
	b.SetButtons(buttons)
	b.SetTiming(1.5, 0.016, 800, 600)
	b.SetMouse(10, 20, -30, -40)

	raw := b.Bytes()
	if got := binary.LittleEndian.Uint32(raw[ButtonsOffset+4*common.BtnRight:]); got != 1 {
		t.Errorf("BtnRight = %d", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(raw[TimeOffset:])); got != 1.5 {
		t.Errorf("time = %v", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(raw[ScreenHeightOffset:])); got != 600 {
		t.Errorf("screen_height = %v", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(raw[MouseOffset+8:])); got != -30 {
		t.Errorf("mouse.z = %v", got)
	}
	if got := len(b.Prefix()); got != 80 {
		t.Errorf("Prefix length = %d, want 80", got)
	}
}

func TestOscAndKeysRegions(t *testing.T) {
	b := New(16, 2)
	b.SetOsc(3, 0.5)
	b.SetOsc(63, 0.75)
	b.SetOsc(64, 99) // out of range, dropped
	osc := b.OscRegion()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(osc[4*3:])); got != 0.5 {
		t.Errorf("osc[3] = %v", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(osc[4*63:])); got != 0.75 {
		t.Errorf("osc[63] = %v", got)
	}

	var keys [common.KeyArraySize]uint32
	keys[19] = 1 // KeyA
	b.SetKeys(keys)
	region := b.KeysRegion()
	if got := binary.LittleEndian.Uint32(region[4*19:]); got != 1 {
		t.Errorf("keys[19] = %d", got)
	}
	if got := len(region); got != 4*common.KeyArraySize {
		t.Errorf("keys region length = %d", got)
	}
}

func TestAudioRegionAndCounters(t *testing.T) {
	b := New(16, 3)
	if got := len(b.ZeroAudio()); got != 12 {
		t.Errorf("ZeroAudio length = %d, want 12", got)
	}
	raw := []byte{1, 0, 0, 0, 0, 0, 0, 0, 7, 0, 0, 0}
	counters := DecodeCounters(raw)
	if len(counters) != 3 || counters[0] != 1 || counters[1] != 0 || counters[2] != 7 {
		t.Errorf("DecodeCounters = %v", counters)
	}
}
