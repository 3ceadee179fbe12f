// ffmpeg_source.go demuxes MP4/WebM files and capture devices through an
// ffmpeg rawvideo pipe. ffmpeg paces the stream at its native rate (-re) and
// loops file inputs; a background goroutine reads whole RGBA frames into a
// latest-frame slot that the scheduler polls.
package video

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

type ffmpegSource struct {
	path          string
	device        bool
	width, height uint32
	fps           float64
	duration      float64

	mu         sync.Mutex
	cmd        *exec.Cmd
	latest     []byte
	generation uint64
	delivered  uint64
	framesRead uint64
	basePos    float64
	paused     bool
	closed     bool
}

var _ Video = &ffmpegSource{}

// NewFileSource opens a video file (MP4, WebM, or anything else ffmpeg
// demuxes) as a looping Video.
//
// Parameters:
//   - path: the on-disk video file
//
// Returns:
//   - Video: the playing source
//   - error: an error if ffprobe/ffmpeg cannot open the file
func NewFileSource(path string) (Video, error) {
	width, height, fps, duration, err := probe(path)
	if err != nil {
		return nil, err
	}
	s := &ffmpegSource{
		path:     path,
		width:    width,
		height:   height,
		fps:      fps,
		duration: duration,
	}
	if err := s.start(0); err != nil {
		return nil, err
	}
	return s, nil
}

// NewCameraSource opens a capture device and never returns an error. When the
// ffmpeg process cannot be started the returned source is the 1×1 black
// fallback. Once ffmpeg has started, a device it then fails to open is not
// detected: the returned 640×480 source simply produces no frames.
//
// Parameters:
//   - device: the capture device index
//
// Returns:
//   - FrameSource: the camera source, or the black fallback when ffmpeg
//     cannot be started
func NewCameraSource(device uint32) FrameSource {
	s := &ffmpegSource{
		device: true,
		path:   cameraPath(device),
		width:  640,
		height: 480,
	}
	if err := s.start(0); err != nil {
		log.Warn("camera unavailable, using black texture", "device", device, "err", err)
		return NewBlackSource()
	}
	return s
}

// cameraPath maps a device index to the platform capture input.
func cameraPath(device uint32) string {
	switch runtime.GOOS {
	case "darwin":
		return strconv.FormatUint(uint64(device), 10)
	default:
		return "/dev/video" + strconv.FormatUint(uint64(device), 10)
	}
}

// probe asks ffprobe for the stream geometry and container duration.
func probe(path string) (width, height uint32, fps, duration float64, err error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	).Output()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	fps = 30
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		fields := strings.Split(strings.TrimSpace(line), ",")
		if len(fields) >= 3 {
			w, _ := strconv.ParseUint(fields[0], 10, 32)
			h, _ := strconv.ParseUint(fields[1], 10, 32)
			width, height = uint32(w), uint32(h)
			if num, den, ok := strings.Cut(fields[2], "/"); ok {
				n, _ := strconv.ParseFloat(num, 64)
				d, _ := strconv.ParseFloat(den, 64)
				if d > 0 && n > 0 {
					fps = n / d
				}
			}
		} else if len(fields) == 1 && fields[0] != "" {
			duration, _ = strconv.ParseFloat(fields[0], 64)
		}
	}
	if width == 0 || height == 0 {
		return 0, 0, 0, 0, fmt.Errorf("ffprobe %s: no video stream geometry", path)
	}
	return width, height, fps, duration, nil
}

// start launches ffmpeg at the given position and spawns the frame reader.
// Callers must not hold the mutex.
func (s *ffmpegSource) start(at float64) error {
	args := []string{"-hide_banner", "-loglevel", "error"}
	if s.device {
		switch runtime.GOOS {
		case "darwin":
			args = append(args, "-f", "avfoundation")
		default:
			args = append(args, "-f", "v4l2")
		}
		args = append(args, "-video_size", fmt.Sprintf("%dx%d", s.width, s.height))
	} else {
		if at > 0 {
			args = append(args, "-ss", strconv.FormatFloat(at, 'f', 3, 64))
		}
		args = append(args, "-re", "-stream_loop", "-1")
	}
	args = append(args, "-i", s.path,
		"-f", "rawvideo", "-pix_fmt", "rgba", "pipe:1")

	cmd := exec.Command("ffmpeg", args...)
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg %s: %w", s.path, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.cmd = cmd
	s.basePos = at
	s.framesRead = 0
	s.mu.Unlock()

	go s.readFrames(cmd, stdout)
	return nil
}

// readFrames pulls whole RGBA frames off the pipe into the latest-frame
// slot until the process ends or the source is closed. While paused it stops
// reading, which back-pressures ffmpeg through the pipe.
func (s *ffmpegSource) readFrames(cmd *exec.Cmd, pipe io.Reader) {
	frameSize := int(s.width) * int(s.height) * 4
	buf := make([]byte, frameSize)
	for {
		s.mu.Lock()
		stale := s.closed || s.cmd != cmd
		paused := s.paused
		s.mu.Unlock()
		if stale {
			return
		}
		if paused {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		if _, err := io.ReadFull(pipe, buf); err != nil {
			return
		}

		s.mu.Lock()
		if s.latest == nil {
			s.latest = make([]byte, frameSize)
		}
		copy(s.latest, buf)
		s.generation++
		s.framesRead++
		s.mu.Unlock()
	}
}

// stopProcess kills the current ffmpeg process, if any.
func (s *ffmpegSource) stopProcess() {
	s.mu.Lock()
	cmd := s.cmd
	s.cmd = nil
	s.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}
}

func (s *ffmpegSource) Size() (uint32, uint32) {
	return s.width, s.height
}

func (s *ffmpegSource) NextFrame() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil || s.generation == s.delivered {
		return nil
	}
	s.delivered = s.generation
	pixels := make([]byte, len(s.latest))
	copy(pixels, s.latest)
	return &Frame{Width: s.width, Height: s.height, Pixels: pixels}
}

func (s *ffmpegSource) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.stopProcess()
	return nil
}

func (s *ffmpegSource) Play() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

func (s *ffmpegSource) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

func (s *ffmpegSource) Stop() {
	s.Pause()
	s.Seek(0)
}

func (s *ffmpegSource) Seek(seconds float64) {
	if s.device {
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	s.stopProcess()
	if err := s.start(seconds); err != nil {
		log.Error("video seek failed", "path", s.path, "err", err)
	}
}

func (s *ffmpegSource) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos := s.basePos
	if s.fps > 0 {
		pos += float64(s.framesRead) / s.fps
	}
	for s.duration > 0 && pos >= s.duration {
		pos -= s.duration
	}
	return pos
}

func (s *ffmpegSource) Duration() float64 {
	return s.duration
}

func (s *ffmpegSource) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}
