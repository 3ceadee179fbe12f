// Package hostblock maintains the CPU-side mirror of the engine storage
// buffer shared with every game shader. The byte layout here is the
// contract: the generated GameEngineHost struct lays out identically under
// std430, so a write at an offset on this side is a read at the same offset
// on the shader side.
package hostblock

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/wgslbox/common"
)

// Fixed offsets of the volatile prefix. The state region always starts at
// StateOffset regardless of the GameState contents; everything after it is
// derived from the state size and sound count.
const (
	ButtonsOffset      = 0
	TimeOffset         = 48
	DeltaTimeOffset    = 52
	ScreenWidthOffset  = 56
	ScreenHeightOffset = 60
	MouseOffset        = 64
	StateOffset        = 80

	// PrefixSize is the length of the volatile prefix uploaded every frame.
	PrefixSize = StateOffset
)

// Block is the CPU mirror of the host storage buffer.
type Block struct {
	stateSize  int
	soundCount int
	data       []byte
}

// New creates a zeroed host block for a game with the given state region
// size and sound count. The total size is rounded up to a multiple of 16 to
// match the WGSL struct size.
//
// Parameters:
//   - stateSize: the padded GameState size from the manifest (≥ 16)
//   - soundCount: the number of audio trigger counters
//
// Returns:
//   - *Block: the zeroed block
func New(stateSize, soundCount int) *Block {
	b := &Block{
		stateSize:  stateSize,
		soundCount: soundCount,
	}
	size := b.KeysOffset() + 4*common.KeyArraySize
	size = (size + 15) / 16 * 16
	b.data = make([]byte, size)
	return b
}

// Size returns the total block size in bytes (a multiple of 16).
func (b *Block) Size() int {
	return len(b.data)
}

// AudioOffset returns the byte offset of the audio trigger counter region.
func (b *Block) AudioOffset() int {
	return StateOffset + b.stateSize
}

// AudioSize returns the byte length of the audio region (0 when the game
// registers no sounds).
func (b *Block) AudioSize() int {
	return 4 * b.soundCount
}

// OscOffset returns the byte offset of the 64-float OSC region.
func (b *Block) OscOffset() int {
	return b.AudioOffset() + b.AudioSize()
}

// KeysOffset returns the byte offset of the raw key state region.
func (b *Block) KeysOffset() int {
	return b.OscOffset() + 4*common.OscSlotCount
}

// Bytes returns the full backing slice, for the initial upload at resource
// creation.
func (b *Block) Bytes() []byte {
	return b.data
}

// SetButtons writes the virtual gamepad state into the buttons region.
//
// Parameters:
//   - buttons: one 0/1 value per button slot
func (b *Block) SetButtons(buttons [common.ButtonCount]int32) {
	for i, v := range buttons {
		binary.LittleEndian.PutUint32(b.data[ButtonsOffset+4*i:], uint32(v))
	}
}

// SetTiming writes the clock, frame delta, and screen size fields.
//
// Parameters:
//   - time: seconds since the game started
//   - delta: seconds since the previous frame
//   - width, height: framebuffer size in pixels
func (b *Block) SetTiming(time, delta, width, height float32) {
	binary.LittleEndian.PutUint32(b.data[TimeOffset:], math.Float32bits(time))
	binary.LittleEndian.PutUint32(b.data[DeltaTimeOffset:], math.Float32bits(delta))
	binary.LittleEndian.PutUint32(b.data[ScreenWidthOffset:], math.Float32bits(width))
	binary.LittleEndian.PutUint32(b.data[ScreenHeightOffset:], math.Float32bits(height))
}

// SetMouse writes the mouse vec4: xy is the current pixel position, zw the
// last-click position. The caller negates zw while the button is released so
// sign alone encodes "button held".
//
// Parameters:
//   - x, y: current cursor position
//   - clickX, clickY: last mouse-down position (negated when released)
func (b *Block) SetMouse(x, y, clickX, clickY float32) {
	binary.LittleEndian.PutUint32(b.data[MouseOffset:], math.Float32bits(x))
	binary.LittleEndian.PutUint32(b.data[MouseOffset+4:], math.Float32bits(y))
	binary.LittleEndian.PutUint32(b.data[MouseOffset+8:], math.Float32bits(clickX))
	binary.LittleEndian.PutUint32(b.data[MouseOffset+12:], math.Float32bits(clickY))
}

// SetOsc writes one OSC float slot.
//
// Parameters:
//   - slot: the slot index in [0, 64)
//   - value: the float value; persists until overwritten
func (b *Block) SetOsc(slot int, value float32) {
	if slot < 0 || slot >= common.OscSlotCount {
		return
	}
	binary.LittleEndian.PutUint32(b.data[b.OscOffset()+4*slot:], math.Float32bits(value))
}

// SetKeys writes the full raw key state region.
//
// Parameters:
//   - keys: one 0/1 value per canonical key slot
func (b *Block) SetKeys(keys [common.KeyArraySize]uint32) {
	off := b.KeysOffset()
	for i, v := range keys {
		binary.LittleEndian.PutUint32(b.data[off+4*i:], v)
	}
}

// Prefix returns the volatile prefix region (buttons, timing, mouse) for the
// per-frame upload.
func (b *Block) Prefix() []byte {
	return b.data[:PrefixSize]
}

// OscRegion returns the OSC region bytes for the per-frame upload.
func (b *Block) OscRegion() []byte {
	return b.data[b.OscOffset() : b.OscOffset()+4*common.OscSlotCount]
}

// KeysRegion returns the key state region bytes for the per-frame upload.
func (b *Block) KeysRegion() []byte {
	return b.data[b.KeysOffset() : b.KeysOffset()+4*common.KeyArraySize]
}

// ZeroAudio returns a zero buffer sized to the audio region, used to reset
// the trigger counters on the GPU after a read-back.
func (b *Block) ZeroAudio() []byte {
	return make([]byte, b.AudioSize())
}

// DecodeCounters interprets a mapped audio staging region as trigger
// counters.
//
// Parameters:
//   - raw: the mapped staging bytes (4 bytes per sound)
//
// Returns:
//   - []uint32: one counter per sound slot
func DecodeCounters(raw []byte) []uint32 {
	counters := make([]uint32, len(raw)/4)
	for i := range counters {
		counters[i] = binary.LittleEndian.Uint32(raw[4*i:])
	}
	return counters
}
