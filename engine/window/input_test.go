package window

import (
	"testing"

	"github.com/Carmen-Shannon/wgslbox/common"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestKeySlotMapping(t *testing.T) {
	cases := []struct {
		key  glfw.Key
		slot int
	}{
		{glfw.KeyA, 19},
		{glfw.KeyZ, 44},
		{glfw.KeyGraveAccent, 0},
		{glfw.KeyDown, 79},
		{glfw.KeyUp, 82},
		{glfw.KeyEscape, 114},
		{glfw.KeyF1, 159},
		{glfw.KeyF12, 170},
		{glfw.KeySpace, 62},
	}
	for _, tc := range cases {
		if got := keySlot(tc.key); got != tc.slot {
			t.Errorf("keySlot(%v) = %d, want %d", tc.key, got, tc.slot)
		}
	}
	if got := keySlot(glfw.KeyUnknown); got != -1 {
		t.Errorf("keySlot(unknown) = %d, want -1", got)
	}
}

func TestButtonSynthesis(t *testing.T) {
	cases := []struct {
		key    glfw.Key
		button int
	}{
		{glfw.KeyUp, common.BtnUp},
		{glfw.KeyW, common.BtnUp},
		{glfw.KeyRight, common.BtnRight},
		{glfw.KeyD, common.BtnRight},
		{glfw.KeyZ, common.BtnA},
		{glfw.KeyX, common.BtnB},
		{glfw.KeyEnter, common.BtnStart},
		{glfw.KeyLeftShift, common.BtnSelect},
		{glfw.KeyQ, -1},
	}
	for _, tc := range cases {
		if got := buttonSlot(tc.key); got != tc.button {
			t.Errorf("buttonSlot(%v) = %d, want %d", tc.key, got, tc.button)
		}
	}
}

func TestKeyEventUpdatesSnapshot(t *testing.T) {
	w := &engineWindow{}
	w.keyEvent(19, common.BtnLeft, true)
	snap := w.Snapshot()
	if snap.Keys[19] != 1 {
		t.Error("key slot 19 not set")
	}
	if snap.Buttons[common.BtnLeft] != 1 {
		t.Error("button not synthesized")
	}

	w.keyEvent(19, common.BtnLeft, false)
	snap = w.Snapshot()
	if snap.Keys[19] != 0 || snap.Buttons[common.BtnLeft] != 0 {
		t.Error("release did not clear state")
	}

	// Out-of-range slots are ignored, not panics.
	w.keyEvent(-1, -1, true)
	w.keyEvent(common.KeyArraySize, common.ButtonCount, true)
}

func TestMouseClickContract(t *testing.T) {
	w := &engineWindow{}
	w.mouseMove(120, 80)
	w.mouseButton(true, 120, 80)
	snap := w.Snapshot()
	if snap.MouseX != 120 || snap.MouseY != 80 {
		t.Errorf("mouse position = %v,%v", snap.MouseX, snap.MouseY)
	}
	if snap.ClickX != 120 || snap.ClickY != 80 {
		t.Errorf("click position = %v,%v", snap.ClickX, snap.ClickY)
	}

	// Release negates the click components, so sign encodes "held".
	w.mouseButton(false, 130, 90)
	snap = w.Snapshot()
	if snap.ClickX != -120 || snap.ClickY != -80 {
		t.Errorf("released click = %v,%v, want -120,-80", snap.ClickX, snap.ClickY)
	}

	// A second release leaves the already-negated values alone.
	w.mouseButton(false, 0, 0)
	snap = w.Snapshot()
	if snap.ClickX != -120 || snap.ClickY != -80 {
		t.Errorf("double release mutated click = %v,%v", snap.ClickX, snap.ClickY)
	}
}
