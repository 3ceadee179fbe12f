// Package engine is the host runtime for WGSL games: it loads a game through
// the preprocessor, materializes GPU resources from the manifest, and runs
// the per-frame schedule — input snapshot, OSC drain, dynamic texture
// upload, host block upload, compute update, render, and the asynchronous
// audio trigger read-back.
package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/wgslbox/engine/asset"
	"github.com/Carmen-Shannon/wgslbox/engine/audio"
	"github.com/Carmen-Shannon/wgslbox/engine/config"
	"github.com/Carmen-Shannon/wgslbox/engine/hostblock"
	"github.com/Carmen-Shannon/wgslbox/engine/osc"
	"github.com/Carmen-Shannon/wgslbox/engine/renderer"
	"github.com/Carmen-Shannon/wgslbox/engine/shader"
	"github.com/Carmen-Shannon/wgslbox/engine/source"
	"github.com/Carmen-Shannon/wgslbox/engine/video"
	"github.com/Carmen-Shannon/wgslbox/engine/window"
	"github.com/charmbracelet/log"
)

// maxFrameDelta caps the per-frame delta so a stalled frame does not launch
// game objects across the screen.
const maxFrameDelta = 0.1

// engine is the implementation of the Engine interface.
type engine struct {
	cfg    config.Config
	logger *log.Logger

	gamePath string
	entry    string
	src      source.Source
	manifest *shader.Manifest

	win    window.Window
	r      renderer.Renderer
	block  *hostblock.Block
	player audio.Player
	videos []video.Video
	extras []video.FrameSource // camera sources, after the videos

	oscListener osc.Listener
	oscStarted  bool

	startTime time.Time
	lastFrame time.Time

	reloadRequested bool
	quitOnce        sync.Once
}

// Engine is the host runtime entry point.
type Engine interface {
	// LoadGame loads a game by path: a .wgsl file, a directory, or a zip
	// archive. On success the previous game's resources are released and
	// the new game is ready to run.
	//
	// Parameters:
	//   - path: the game path
	//
	// Returns:
	//   - error: any load-time failure, wrapping the originating asset path
	LoadGame(path string) error

	// Run drives the frame loop until the window closes. Blocks.
	Run()

	// Quit closes the window and ends Run. Safe to call multiple times.
	Quit()

	// RequestReload schedules a reload of the current game: the running
	// frame completes, then all GPU resources are rebuilt from a fresh
	// manifest.
	RequestReload()

	// SetOsc injects an OSC update locally, bypassing the network.
	//
	// Parameters:
	//   - addr: the full OSC address (e.g. "/u/bass")
	//   - value: the float payload
	SetOsc(addr string, value float32)

	// Video returns the video at the given manifest slot for playback
	// control, or nil when out of range.
	//
	// Parameters:
	//   - slot: the video's index in manifest order
	//
	// Returns:
	//   - video.Video: the controllable video, or nil
	Video(slot int) video.Video

	// Manifest returns the loaded game's manifest, or nil before LoadGame.
	//
	// Returns:
	//   - *shader.Manifest: the current manifest
	Manifest() *shader.Manifest
}

var _ Engine = &engine{}

// NewEngine creates an Engine with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the engine, ready for LoadGame
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		cfg:    config.Default(),
		logger: log.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	e.oscListener = osc.NewListener(e.cfg.OscAddr)
	return e
}

func (e *engine) LoadGame(path string) error {
	src, err := source.Open(path)
	if err != nil {
		return err
	}

	entry := "main.wgsl"
	if strings.HasSuffix(path, ".wgsl") {
		entry = filepath.Base(path)
	}

	man, err := shader.NewPreProcessor(src, shader.WithLogger(e.logger)).Process(entry)
	if err != nil {
		return fmt.Errorf("preprocess %s: %w", path, err)
	}
	if err := shader.Validate(man, e.cfg.DebugShader); err != nil {
		return err
	}

	bundle, err := asset.Load(man, src)
	if err != nil {
		return fmt.Errorf("load assets for %s: %w", path, err)
	}

	// The new game is viable; tear down the previous one.
	e.releaseGame()

	e.gamePath = path
	e.entry = entry
	e.src = src
	e.manifest = man

	// Video failures degrade to a black still; cameras degrade internally.
	for _, name := range man.Videos {
		v, err := e.openVideo(name)
		if err != nil {
			e.logger.Warn("video unavailable, using black texture", "path", name, "err", err)
			v = video.NewStillVideo(video.NewBlackSource())
		}
		e.videos = append(e.videos, v)
	}
	for _, device := range man.Cameras {
		e.extras = append(e.extras, video.NewCameraSource(device))
	}

	if e.win == nil {
		e.win = window.NewWindow(
			window.WithTitle(man.Title),
			window.WithSize(int(man.Width), int(man.Height)),
		)
		e.win.SetResizeCallback(func(width, height int) {
			if e.r != nil {
				e.r.Resize(width, height)
			}
		})
	} else {
		e.win.SetTitle(man.Title)
		e.win.SetSize(int(man.Width), int(man.Height))
	}

	if e.r == nil {
		opts := []renderer.RendererBuilderOption{renderer.WithVSync(e.cfg.VSync)}
		if e.cfg.FallbackAdapter {
			opts = append(opts, renderer.WithFallbackAdapter())
		}
		r, err := renderer.NewRenderer(e.win.SurfaceDescriptor(), e.win.Width(), e.win.Height(), opts...)
		if err != nil {
			return err
		}
		e.r = r
	}

	e.block = hostblock.New(man.GameStateSize, len(man.Sounds))
	if err := e.r.BuildResources(man, bundle, e.block, e.dynamics()); err != nil {
		return fmt.Errorf("build GPU resources for %s: %w", path, err)
	}

	e.player = audio.NewPlayer(bundle.Sounds)

	if !e.oscStarted && e.cfg.OscAddr != "" {
		if err := e.oscListener.Start(); err != nil {
			e.logger.Warn("osc listener unavailable", "addr", e.cfg.OscAddr, "err", err)
		} else {
			e.oscStarted = true
		}
	}

	e.startTime = time.Now()
	e.lastFrame = e.startTime
	e.logger.Info("game loaded", "title", man.Title,
		"textures", len(man.Textures), "sounds", len(man.Sounds),
		"models", len(man.Models), "state_bytes", man.GameStateSize)
	return nil
}

// openVideo reads a video asset and opens a frame source for it.
func (e *engine) openVideo(name string) (video.Video, error) {
	data, err := e.src.ReadBytes(name)
	if err != nil {
		return nil, err
	}
	return video.Open(name, data)
}

// dynamics lists all per-frame texture sources, videos first then cameras,
// matching the binding plan's slot order.
func (e *engine) dynamics() []video.FrameSource {
	out := make([]video.FrameSource, 0, len(e.videos)+len(e.extras))
	for _, v := range e.videos {
		out = append(out, v)
	}
	return append(out, e.extras...)
}

func (e *engine) Run() {
	if e.win == nil {
		e.logger.Error("Run called before LoadGame")
		return
	}
	e.win.SetUpdateCallback(e.frame)
	e.win.ProcessMessages()
	e.shutdown()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.win != nil {
			_ = e.win.Close()
		}
	})
}

func (e *engine) RequestReload() {
	e.reloadRequested = true
}

func (e *engine) SetOsc(addr string, value float32) {
	e.oscListener.Enqueue(addr, value)
}

func (e *engine) Video(slot int) video.Video {
	if slot < 0 || slot >= len(e.videos) {
		return nil
	}
	return e.videos[slot]
}

func (e *engine) Manifest() *shader.Manifest {
	return e.manifest
}

// releaseGame drops everything owned by the current game, keeping the
// window, renderer device, and OSC listener for the next load.
func (e *engine) releaseGame() {
	if e.r != nil {
		e.r.ReleaseResources()
	}
	if e.player != nil {
		e.player.Close()
		e.player = nil
	}
	for _, v := range e.videos {
		_ = v.Close()
	}
	e.videos = nil
	for _, c := range e.extras {
		_ = c.Close()
	}
	e.extras = nil
}

// shutdown tears the whole host down after the frame loop ends.
func (e *engine) shutdown() {
	e.releaseGame()
	if e.r != nil {
		e.r.Release()
		e.r = nil
	}
	if e.oscStarted {
		_ = e.oscListener.Close()
		e.oscStarted = false
	}
}
