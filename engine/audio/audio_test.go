package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/Carmen-Shannon/wgslbox/common"
)

// pcmWav builds a minimal 16-bit mono RIFF/WAVE file with the given samples.
func pcmWav(t *testing.T, sampleRate uint32, samples []int16) []byte {
	t.Helper()
	var data bytes.Buffer
	for _, s := range samples {
		if err := binary.Write(&data, binary.LittleEndian, s); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	binary.Write(&buf, binary.LittleEndian, sampleRate*2) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))    // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))   // bits per sample
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())
	return buf.Bytes()
}

func TestDecodeClipWav(t *testing.T) {
	data := pcmWav(t, 44100, []int16{0, 16384, -16384, 0})
	clip, err := DecodeClip("bump.wav", data)
	if err != nil {
		t.Fatalf("DecodeClip: %v", err)
	}
	if clip.Name() != "bump.wav" {
		t.Errorf("Name = %q", clip.Name())
	}
	if got := clip.buffer.Len(); got != 4 {
		t.Errorf("buffer length = %d samples, want 4", got)
	}
}

func TestDecodeClipUnsupportedExtension(t *testing.T) {
	_, err := DecodeClip("tune.flac", []byte{0})
	if !errors.Is(err, common.ErrAudioDecode) {
		t.Fatalf("err = %v, want ErrAudioDecode", err)
	}
}

func TestDecodeClipCorruptData(t *testing.T) {
	_, err := DecodeClip("bump.ogg", []byte("not vorbis at all"))
	if !errors.Is(err, common.ErrAudioDecode) {
		t.Fatalf("err = %v, want ErrAudioDecode", err)
	}
}

func TestMutedPlayerIsSafe(t *testing.T) {
	var p Player = mutedPlayer{}
	p.Play(0)
	p.Play(99)
	p.Close()
}
