// frame.go is the per-frame schedule. Within one frame the compute pass
// sees this frame's inputs and the render pass sees the compute pass's
// writes; across frames, audio triggers are read back asynchronously and
// never block the next submit.
package engine

import (
	"time"

	"github.com/Carmen-Shannon/wgslbox/engine/osc"
)

// frame runs one iteration of the scheduler, in the fixed order: input
// snapshot, OSC drain, dynamic texture upload, host block upload, GPU frame
// (compute → render → audio copy → submit), audio read-back kick-off.
func (e *engine) frame() {
	if e.reloadRequested {
		e.reloadRequested = false
		if err := e.LoadGame(e.gamePath); err != nil {
			e.logger.Error("reload failed", "err", err)
			e.Quit()
		}
		return
	}
	if e.block == nil || e.r == nil {
		return
	}

	// 1. Input snapshot: frame-stable copy of buttons, keys, and mouse.
	snap := e.win.Snapshot()
	e.block.SetButtons(snap.Buttons)
	e.block.SetKeys(snap.Keys)
	e.block.SetMouse(snap.MouseX, snap.MouseY, snap.ClickX, snap.ClickY)

	now := time.Now()
	delta := float32(now.Sub(e.lastFrame).Seconds())
	if delta > maxFrameDelta {
		delta = maxFrameDelta
	}
	e.lastFrame = now
	e.block.SetTiming(
		float32(now.Sub(e.startTime).Seconds()),
		delta,
		float32(e.win.Width()),
		float32(e.win.Height()),
	)

	// 2. OSC drain: named parameters resolve through the manifest, decimal
	// names address their slot directly, everything else is dropped.
	for _, update := range e.oscListener.Drain() {
		if slot, ok := osc.ResolveSlot(update.Name, e.manifest.OscParams); ok {
			e.block.SetOsc(slot, update.Value)
		}
	}

	// 3. Dynamic texture upload, only for sources with a new frame.
	for slot, src := range e.dynamics() {
		if f := src.NextFrame(); f != nil {
			e.r.UploadDynamicTexture(slot, f)
		}
	}

	// 4. Host block regions: volatile prefix, OSC, keys.
	e.r.WriteHostBlock(0, e.block.Prefix())
	e.r.WriteHostBlock(uint64(e.block.OscOffset()), e.block.OscRegion())
	e.r.WriteHostBlock(uint64(e.block.KeysOffset()), e.block.KeysRegion())

	// 5–8. Compute dispatch, render pass, audio counter copy, submit.
	if err := e.r.RenderFrame(); err != nil {
		e.logger.Warn("frame dropped", "err", err)
		return
	}

	// 9. Pump the device so a pending read-back can complete, then start
	// the next one. The callback plays each triggered sound once and resets
	// the counters on the GPU; it must not block this or any later frame.
	e.r.PollDevice()
	e.r.ReadAudioCounters(func(counters []uint32) {
		triggered := false
		for i, c := range counters {
			if c > 0 {
				e.player.Play(i)
				triggered = true
			}
		}
		if triggered {
			e.r.WriteHostBlock(uint64(e.block.AudioOffset()), e.block.ZeroAudio())
		}
	})
}
