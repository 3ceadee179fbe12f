package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/wgslbox/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// InputSnapshot is a frame-stable copy of all input state, taken once at the
// top of each frame so the compute pass and the host agree on what this
// frame's inputs were.
type InputSnapshot struct {
	// Buttons holds the virtual gamepad state, 0 or 1 per slot.
	Buttons [common.ButtonCount]int32

	// Keys holds the raw key state, 0 or 1 per canonical key slot.
	Keys [common.KeyArraySize]uint32

	// MouseX and MouseY are the current cursor position in pixels.
	MouseX float32
	MouseY float32

	// ClickX and ClickY are the last left-button-down position; both are
	// negated while the button is released, so sign alone encodes "held".
	ClickX float32
	ClickY float32
}

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Snapshot returns a copy of the current input state: buttons, raw keys,
	// and mouse position/click fields.
	//
	// Returns:
	//   - InputSnapshot: the frame-stable input copy
	Snapshot() InputSnapshot

	// SetTitle updates the window title.
	//
	// Parameters:
	//   - title: the new title text
	SetTitle(title string)

	// SetSize resizes the window client area.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	SetSize(width, height int)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for
	// creating a WebGPU surface. The descriptor is platform-appropriate and
	// is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and the live input state that
// Snapshot copies each frame.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)

	// input is the live input state, mutated by platform callbacks. All
	// callbacks fire on the main thread during event polling, so Snapshot
	// never races with them.
	input InputSnapshot
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:  "wgslbox",
		width:  800,
		height: 600,
		input: InputSnapshot{
			// zw starts negated: no click has happened yet.
			ClickX: -1,
			ClickY: -1,
		},
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) Snapshot() InputSnapshot {
	return w.input
}

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) SetSize(width, height int) {
	platformSetSize(w, width, height)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// keyEvent updates the raw key state and the synthesized gamepad button for
// one key transition.
func (w *engineWindow) keyEvent(slot int, button int, down bool) {
	value := uint32(0)
	if down {
		value = 1
	}
	if slot >= 0 && slot < common.KeyArraySize {
		w.input.Keys[slot] = value
	}
	if button >= 0 && button < common.ButtonCount {
		w.input.Buttons[button] = int32(value)
	}
}

// mouseMove updates the live cursor position.
func (w *engineWindow) mouseMove(x, y float32) {
	w.input.MouseX = x
	w.input.MouseY = y
}

// mouseButton records left-button transitions: press stores the click
// position, release negates it so sign encodes the held state.
func (w *engineWindow) mouseButton(down bool, x, y float32) {
	if down {
		w.input.ClickX = x
		w.input.ClickY = y
		return
	}
	if w.input.ClickX > 0 {
		w.input.ClickX = -w.input.ClickX
	}
	if w.input.ClickY > 0 {
		w.input.ClickY = -w.input.ClickY
	}
}
