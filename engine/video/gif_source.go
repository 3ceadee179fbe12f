// gif_source.go decodes animated GIFs into precomposed RGBA frames and plays
// them on a wall-clock timeline, looped.
package video

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"time"

	"github.com/Carmen-Shannon/wgslbox/common"
	"golang.org/x/image/draw"
)

// gifFrame is one precomposed frame with its start offset on the timeline.
type gifFrame struct {
	pixels []byte
	start  float64
}

type gifSource struct {
	width, height uint32
	frames        []gifFrame
	duration      float64

	playing    bool
	pos        float64
	lastUpdate time.Time

	lastDelivered int
}

var _ Video = &gifSource{}

// NewGIFSource decodes GIF bytes into a looping Video.
//
// Parameters:
//   - name: the asset path, for error reporting
//   - data: the raw GIF bytes
//
// Returns:
//   - Video: the playing source
//   - error: common.ErrImageDecode wrapping the decoder failure
func NewGIFSource(name string, data []byte) (Video, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", name, err, common.ErrImageDecode)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("%s: gif has no frames: %w", name, common.ErrImageDecode)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	s := &gifSource{
		width:         uint32(bounds.Dx()),
		height:        uint32(bounds.Dy()),
		playing:       true,
		lastUpdate:    time.Now(),
		lastDelivered: -1,
	}

	// Precompose each frame over the running canvas; delays are hundredths
	// of a second.
	at := 0.0
	for i, img := range g.Image {
		draw.Draw(canvas, img.Bounds(), img, img.Bounds().Min, draw.Over)
		pixels := make([]byte, len(canvas.Pix))
		copy(pixels, canvas.Pix)
		s.frames = append(s.frames, gifFrame{pixels: pixels, start: at})
		delay := 0.01 * float64(g.Delay[i])
		if delay <= 0 {
			delay = 0.1
		}
		at += delay
	}
	s.duration = at
	return s, nil
}

// advance moves the playback position along the wall clock.
func (s *gifSource) advance() {
	now := time.Now()
	if s.playing {
		s.pos += now.Sub(s.lastUpdate).Seconds()
		for s.pos >= s.duration {
			s.pos -= s.duration
		}
	}
	s.lastUpdate = now
}

// frameIndexAt returns the frame covering the given position.
func (s *gifSource) frameIndexAt(pos float64) int {
	idx := 0
	for i, f := range s.frames {
		if f.start <= pos {
			idx = i
		}
	}
	return idx
}

func (s *gifSource) Size() (uint32, uint32) {
	return s.width, s.height
}

func (s *gifSource) NextFrame() *Frame {
	s.advance()
	idx := s.frameIndexAt(s.pos)
	if idx == s.lastDelivered {
		return nil
	}
	s.lastDelivered = idx
	return &Frame{Width: s.width, Height: s.height, Pixels: s.frames[idx].pixels}
}

func (s *gifSource) Close() error {
	return nil
}

func (s *gifSource) Play() {
	s.advance()
	s.playing = true
}

func (s *gifSource) Pause() {
	s.advance()
	s.playing = false
}

func (s *gifSource) Stop() {
	s.playing = false
	s.pos = 0
	s.lastDelivered = -1
	s.lastUpdate = time.Now()
}

func (s *gifSource) Seek(seconds float64) {
	s.advance()
	if seconds < 0 {
		seconds = 0
	}
	for s.duration > 0 && seconds >= s.duration {
		seconds -= s.duration
	}
	s.pos = seconds
	s.lastDelivered = -1
}

func (s *gifSource) CurrentTime() float64 {
	s.advance()
	return s.pos
}

func (s *gifSource) Duration() float64 {
	return s.duration
}

func (s *gifSource) Paused() bool {
	return !s.playing
}
