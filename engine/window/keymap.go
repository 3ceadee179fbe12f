package window

import (
	"github.com/Carmen-Shannon/wgslbox/common"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwKeyNames maps GLFW keys onto the canonical key code names the common
// table indexes. Keys GLFW cannot deliver (IntlYen, Numpad memory keys,
// media keys) simply never fire; their slots stay zero.
var glfwKeyNames = map[glfw.Key]string{
	glfw.KeyGraveAccent:  "Backquote",
	glfw.KeyBackslash:    "Backslash",
	glfw.KeyLeftBracket:  "BracketLeft",
	glfw.KeyRightBracket: "BracketRight",
	glfw.KeyComma:        "Comma",
	glfw.Key0:            "Digit0",
	glfw.Key1:            "Digit1",
	glfw.Key2:            "Digit2",
	glfw.Key3:            "Digit3",
	glfw.Key4:            "Digit4",
	glfw.Key5:            "Digit5",
	glfw.Key6:            "Digit6",
	glfw.Key7:            "Digit7",
	glfw.Key8:            "Digit8",
	glfw.Key9:            "Digit9",
	glfw.KeyEqual:        "Equal",
	glfw.KeyWorld1:       "IntlBackslash",
	glfw.KeyWorld2:       "IntlRo",
	glfw.KeyA:            "KeyA",
	glfw.KeyB:            "KeyB",
	glfw.KeyC:            "KeyC",
	glfw.KeyD:            "KeyD",
	glfw.KeyE:            "KeyE",
	glfw.KeyF:            "KeyF",
	glfw.KeyG:            "KeyG",
	glfw.KeyH:            "KeyH",
	glfw.KeyI:            "KeyI",
	glfw.KeyJ:            "KeyJ",
	glfw.KeyK:            "KeyK",
	glfw.KeyL:            "KeyL",
	glfw.KeyM:            "KeyM",
	glfw.KeyN:            "KeyN",
	glfw.KeyO:            "KeyO",
	glfw.KeyP:            "KeyP",
	glfw.KeyQ:            "KeyQ",
	glfw.KeyR:            "KeyR",
	glfw.KeyS:            "KeyS",
	glfw.KeyT:            "KeyT",
	glfw.KeyU:            "KeyU",
	glfw.KeyV:            "KeyV",
	glfw.KeyW:            "KeyW",
	glfw.KeyX:            "KeyX",
	glfw.KeyY:            "KeyY",
	glfw.KeyZ:            "KeyZ",
	glfw.KeyMinus:        "Minus",
	glfw.KeyPeriod:       "Period",
	glfw.KeyApostrophe:   "Quote",
	glfw.KeySemicolon:    "Semicolon",
	glfw.KeySlash:        "Slash",
	glfw.KeyLeftAlt:      "AltLeft",
	glfw.KeyRightAlt:     "AltRight",
	glfw.KeyBackspace:    "Backspace",
	glfw.KeyCapsLock:     "CapsLock",
	glfw.KeyMenu:         "ContextMenu",
	glfw.KeyLeftControl:  "ControlLeft",
	glfw.KeyRightControl: "ControlRight",
	glfw.KeyEnter:        "Enter",
	glfw.KeyLeftSuper:    "SuperLeft",
	glfw.KeyRightSuper:   "SuperRight",
	glfw.KeyLeftShift:    "ShiftLeft",
	glfw.KeyRightShift:   "ShiftRight",
	glfw.KeySpace:        "Space",
	glfw.KeyTab:          "Tab",
	glfw.KeyDelete:       "Delete",
	glfw.KeyEnd:          "End",
	glfw.KeyHome:         "Home",
	glfw.KeyInsert:       "Insert",
	glfw.KeyPageDown:     "PageDown",
	glfw.KeyPageUp:       "PageUp",
	glfw.KeyDown:         "ArrowDown",
	glfw.KeyLeft:         "ArrowLeft",
	glfw.KeyRight:        "ArrowRight",
	glfw.KeyUp:           "ArrowUp",
	glfw.KeyNumLock:      "NumLock",
	glfw.KeyKP0:          "Numpad0",
	glfw.KeyKP1:          "Numpad1",
	glfw.KeyKP2:          "Numpad2",
	glfw.KeyKP3:          "Numpad3",
	glfw.KeyKP4:          "Numpad4",
	glfw.KeyKP5:          "Numpad5",
	glfw.KeyKP6:          "Numpad6",
	glfw.KeyKP7:          "Numpad7",
	glfw.KeyKP8:          "Numpad8",
	glfw.KeyKP9:          "Numpad9",
	glfw.KeyKPAdd:        "NumpadAdd",
	glfw.KeyKPDecimal:    "NumpadDecimal",
	glfw.KeyKPDivide:     "NumpadDivide",
	glfw.KeyKPEnter:      "NumpadEnter",
	glfw.KeyKPEqual:      "NumpadEqual",
	glfw.KeyKPMultiply:   "NumpadMultiply",
	glfw.KeyKPSubtract:   "NumpadSubtract",
	glfw.KeyEscape:       "Escape",
	glfw.KeyPrintScreen:  "PrintScreen",
	glfw.KeyScrollLock:   "ScrollLock",
	glfw.KeyPause:        "Pause",
	glfw.KeyF1:           "F1",
	glfw.KeyF2:           "F2",
	glfw.KeyF3:           "F3",
	glfw.KeyF4:           "F4",
	glfw.KeyF5:           "F5",
	glfw.KeyF6:           "F6",
	glfw.KeyF7:           "F7",
	glfw.KeyF8:           "F8",
	glfw.KeyF9:           "F9",
	glfw.KeyF10:          "F10",
	glfw.KeyF11:          "F11",
	glfw.KeyF12:          "F12",
	glfw.KeyF13:          "F13",
	glfw.KeyF14:          "F14",
	glfw.KeyF15:          "F15",
	glfw.KeyF16:          "F16",
	glfw.KeyF17:          "F17",
	glfw.KeyF18:          "F18",
	glfw.KeyF19:          "F19",
	glfw.KeyF20:          "F20",
	glfw.KeyF21:          "F21",
	glfw.KeyF22:          "F22",
	glfw.KeyF23:          "F23",
	glfw.KeyF24:          "F24",
	glfw.KeyF25:          "F25",
}

// glfwKeySlots is the resolved GLFW key → canonical slot table.
var glfwKeySlots = buildKeySlots()

func buildKeySlots() map[glfw.Key]int {
	slots := make(map[glfw.Key]int, len(glfwKeyNames))
	for key, name := range glfwKeyNames {
		if idx, ok := common.KeycodeIndex(name); ok {
			slots[key] = idx
		}
	}
	return slots
}

// keySlot returns the canonical keys-array slot for a GLFW key, or -1.
func keySlot(key glfw.Key) int {
	if slot, ok := glfwKeySlots[key]; ok {
		return slot
	}
	return -1
}

// buttonSlot returns the virtual gamepad button synthesized from a key, or
// -1. Arrows and WASD drive the d-pad, Z/X map to A/B, Enter to START and
// left shift to SELECT.
func buttonSlot(key glfw.Key) int {
	switch key {
	case glfw.KeyUp, glfw.KeyW:
		return common.BtnUp
	case glfw.KeyDown, glfw.KeyS:
		return common.BtnDown
	case glfw.KeyLeft, glfw.KeyA:
		return common.BtnLeft
	case glfw.KeyRight, glfw.KeyD:
		return common.BtnRight
	case glfw.KeyZ:
		return common.BtnA
	case glfw.KeyX:
		return common.BtnB
	case glfw.KeyEnter:
		return common.BtnStart
	case glfw.KeyLeftShift:
		return common.BtnSelect
	}
	return -1
}
