// Package audio decodes each registered sound once into an in-memory buffer
// and plays one-shot instances when the shader's trigger counters advance.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/wgslbox/common"
	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// mixRate is the output sample rate; clips decoded at other rates are
// resampled at play time.
const mixRate = beep.SampleRate(44100)

// Clip is a fully decoded sound held in memory.
type Clip struct {
	name   string
	format beep.Format
	buffer *beep.Buffer
}

// DecodeClip decodes sound bytes by file extension (.wav, .ogg, .mp3).
//
// Parameters:
//   - name: the asset path, used to pick the decoder and for errors
//   - data: the raw encoded bytes
//
// Returns:
//   - *Clip: the decoded clip
//   - error: common.ErrAudioDecode wrapping the decoder failure
func DecodeClip(name string, data []byte) (*Clip, error) {
	rc := io.NopCloser(bytes.NewReader(data))

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		streamer, format, err = wav.Decode(rc)
	case ".ogg":
		streamer, format, err = vorbis.Decode(rc)
	case ".mp3":
		streamer, format, err = mp3.Decode(rc)
	default:
		return nil, fmt.Errorf("%s: unsupported sound format: %w", name, common.ErrAudioDecode)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", name, err, common.ErrAudioDecode)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return &Clip{name: name, format: format, buffer: buffer}, nil
}

// Name returns the clip's asset path.
func (c *Clip) Name() string {
	return c.name
}

// Player plays decoded clips by their manifest slot.
type Player interface {
	// Play starts one playback of the clip at the given slot. Playbacks are
	// fire-and-forget and may overlap.
	//
	// Parameters:
	//   - slot: the sound's index in the manifest order
	Play(slot int)

	// Close stops all playback.
	Close()
}

// speakerPlayer is the beep-backed Player implementation.
type speakerPlayer struct {
	clips []*Clip
}

// mutedPlayer drops every trigger; used when no output device is available
// so a headless host still runs the game.
type mutedPlayer struct{}

var _ Player = &speakerPlayer{}
var _ Player = mutedPlayer{}

// speakerOnce guards process-wide speaker initialization; the device is
// opened once and shared across reloads.
var (
	speakerOnce sync.Once
	speakerErr  error
)

// NewPlayer creates a Player over the decoded clips. If the output device
// cannot be opened the returned player is muted and a warning is logged —
// a headless machine should still run games.
//
// Parameters:
//   - clips: the decoded clips in manifest slot order
//
// Returns:
//   - Player: the speaker-backed (or muted) player
func NewPlayer(clips []*Clip) Player {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(mixRate, mixRate.N(time.Second/10))
	})
	if speakerErr != nil {
		log.Warn("audio output unavailable, sounds muted", "err", speakerErr)
		return mutedPlayer{}
	}
	return &speakerPlayer{clips: clips}
}

func (p *speakerPlayer) Play(slot int) {
	if slot < 0 || slot >= len(p.clips) {
		return
	}
	c := p.clips[slot]
	shot := c.buffer.Streamer(0, c.buffer.Len())
	if c.format.SampleRate == mixRate {
		speaker.Play(shot)
		return
	}
	speaker.Play(beep.Resample(4, c.format.SampleRate, mixRate, shot))
}

func (p *speakerPlayer) Close() {
	speaker.Clear()
}

func (mutedPlayer) Play(int) {}

func (mutedPlayer) Close() {}
