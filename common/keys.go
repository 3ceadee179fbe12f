package common

// Canonical raw-key index table shared by the shader header generator and the
// window input mapping. Indices follow the web e.code / winit KeyCode enum
// ordering so the same game shader reads identical key state on every host.
// Reference: https://www.w3.org/TR/uievents-code/

// KeyArraySize is the length of the keys array in the host block — one slot
// per canonical key code.
const KeyArraySize = 194

// OscSlotCount is the number of float slots reachable via @osc("name") or
// @engine.osc[n].
const OscSlotCount = 64

// keycodeIndices maps a canonical key code name (the web e.code string) to
// its slot in the keys array.
var keycodeIndices = map[string]int{
	"Backquote":            0,
	"Backslash":            1,
	"BracketLeft":          2,
	"BracketRight":         3,
	"Comma":                4,
	"Digit0":               5,
	"Digit1":               6,
	"Digit2":               7,
	"Digit3":               8,
	"Digit4":               9,
	"Digit5":               10,
	"Digit6":               11,
	"Digit7":               12,
	"Digit8":               13,
	"Digit9":               14,
	"Equal":                15,
	"IntlBackslash":        16,
	"IntlRo":               17,
	"IntlYen":              18,
	"KeyA":                 19,
	"KeyB":                 20,
	"KeyC":                 21,
	"KeyD":                 22,
	"KeyE":                 23,
	"KeyF":                 24,
	"KeyG":                 25,
	"KeyH":                 26,
	"KeyI":                 27,
	"KeyJ":                 28,
	"KeyK":                 29,
	"KeyL":                 30,
	"KeyM":                 31,
	"KeyN":                 32,
	"KeyO":                 33,
	"KeyP":                 34,
	"KeyQ":                 35,
	"KeyR":                 36,
	"KeyS":                 37,
	"KeyT":                 38,
	"KeyU":                 39,
	"KeyV":                 40,
	"KeyW":                 41,
	"KeyX":                 42,
	"KeyY":                 43,
	"KeyZ":                 44,
	"Minus":                45,
	"Period":               46,
	"Quote":                47,
	"Semicolon":            48,
	"Slash":                49,
	"AltLeft":              50,
	"AltRight":             51,
	"Backspace":            52,
	"CapsLock":             53,
	"ContextMenu":          54,
	"ControlLeft":          55,
	"ControlRight":         56,
	"Enter":                57,
	"SuperLeft":            58,
	"SuperRight":           59,
	"ShiftLeft":            60,
	"ShiftRight":           61,
	"Space":                62,
	"Tab":                  63,
	"Convert":              64,
	"KanaMode":             65,
	"Lang1":                66,
	"Lang2":                67,
	"Lang3":                68,
	"Lang4":                69,
	"Lang5":                70,
	"NonConvert":           71,
	"Delete":               72,
	"End":                  73,
	"Help":                 74,
	"Home":                 75,
	"Insert":               76,
	"PageDown":             77,
	"PageUp":               78,
	"ArrowDown":            79,
	"ArrowLeft":            80,
	"ArrowRight":           81,
	"ArrowUp":              82,
	"NumLock":              83,
	"Numpad0":              84,
	"Numpad1":              85,
	"Numpad2":              86,
	"Numpad3":              87,
	"Numpad4":              88,
	"Numpad5":              89,
	"Numpad6":              90,
	"Numpad7":              91,
	"Numpad8":              92,
	"Numpad9":              93,
	"NumpadAdd":            94,
	"NumpadBackspace":      95,
	"NumpadClear":          96,
	"NumpadClearEntry":     97,
	"NumpadComma":          98,
	"NumpadDecimal":        99,
	"NumpadDivide":         100,
	"NumpadEnter":          101,
	"NumpadEqual":          102,
	"NumpadHash":           103,
	"NumpadMemoryAdd":      104,
	"NumpadMemoryClear":    105,
	"NumpadMemoryRecall":   106,
	"NumpadMemoryStore":    107,
	"NumpadMemorySubtract": 108,
	"NumpadMultiply":       109,
	"NumpadParenLeft":      110,
	"NumpadParenRight":     111,
	"NumpadStar":           112,
	"NumpadSubtract":       113,
	"Escape":               114,
	"Fn":                   115,
	"FnLock":               116,
	"PrintScreen":          117,
	"ScrollLock":           118,
	"Pause":                119,
	"BrowserBack":          120,
	"BrowserFavorites":     121,
	"BrowserForward":       122,
	"BrowserHome":          123,
	"BrowserRefresh":       124,
	"BrowserSearch":        125,
	"BrowserStop":          126,
	"Eject":                127,
	"LaunchApp1":           128,
	"LaunchApp2":           129,
	"LaunchMail":           130,
	"MediaPlayPause":       131,
	"MediaSelect":          132,
	"MediaStop":            133,
	"MediaTrackNext":       134,
	"MediaTrackPrevious":   135,
	"Power":                136,
	"Sleep":                137,
	"AudioVolumeDown":      138,
	"AudioVolumeMute":      139,
	"AudioVolumeUp":        140,
	"WakeUp":               141,
	"Meta":                 142,
	"Hyper":                143,
	"Turbo":                144,
	"Abort":                145,
	"Resume":               146,
	"Suspend":              147,
	"Again":                148,
	"Copy":                 149,
	"Cut":                  150,
	"Find":                 151,
	"Open":                 152,
	"Paste":                153,
	"Props":                154,
	"Select":               155,
	"Undo":                 156,
	"Hiragana":             157,
	"Katakana":             158,
	"F1":                   159,
	"F2":                   160,
	"F3":                   161,
	"F4":                   162,
	"F5":                   163,
	"F6":                   164,
	"F7":                   165,
	"F8":                   166,
	"F9":                   167,
	"F10":                  168,
	"F11":                  169,
	"F12":                  170,
	"F13":                  171,
	"F14":                  172,
	"F15":                  173,
	"F16":                  174,
	"F17":                  175,
	"F18":                  176,
	"F19":                  177,
	"F20":                  178,
	"F21":                  179,
	"F22":                  180,
	"F23":                  181,
	"F24":                  182,
	"F25":                  183,
	"F26":                  184,
	"F27":                  185,
	"F28":                  186,
	"F29":                  187,
	"F30":                  188,
	"F31":                  189,
	"F32":                  190,
	"F33":                  191,
	"F34":                  192,
	"F35":                  193,
}

// KeycodeIndex returns the keys-array slot for a canonical key code name.
//
// Parameters:
//   - code: the web e.code style key name (e.g. "KeyA", "ArrowLeft")
//
// Returns:
//   - int: the slot index in the keys array
//   - bool: false if the code is not part of the canonical table
func KeycodeIndex(code string) (int, bool) {
	i, ok := keycodeIndices[code]
	return i, ok
}

// KeyConstant pairs a WGSL constant name with its keys-array slot.
type KeyConstant struct {
	Name  string
	Index int
}

// WGSLKeyConstants lists the KEY_* constants emitted into every generated
// shader header, in emission order. Indices point into the canonical table
// above so the generated constants and the host's key mapping cannot drift.
var WGSLKeyConstants = []KeyConstant{
	{"KEY_BACKQUOTE", 0},
	{"KEY_BACKSLASH", 1},
	{"KEY_BRACKET_LEFT", 2},
	{"KEY_BRACKET_RIGHT", 3},
	{"KEY_COMMA", 4},
	{"KEY_0", 5},
	{"KEY_1", 6},
	{"KEY_2", 7},
	{"KEY_3", 8},
	{"KEY_4", 9},
	{"KEY_5", 10},
	{"KEY_6", 11},
	{"KEY_7", 12},
	{"KEY_8", 13},
	{"KEY_9", 14},
	{"KEY_EQUAL", 15},
	{"KEY_INTL_BACKSLASH", 16},
	{"KEY_INTL_RO", 17},
	{"KEY_INTL_YEN", 18},
	{"KEY_A", 19},
	{"KEY_B", 20},
	{"KEY_C", 21},
	{"KEY_D", 22},
	{"KEY_E", 23},
	{"KEY_F", 24},
	{"KEY_G", 25},
	{"KEY_H", 26},
	{"KEY_I", 27},
	{"KEY_J", 28},
	{"KEY_K", 29},
	{"KEY_L", 30},
	{"KEY_M", 31},
	{"KEY_N", 32},
	{"KEY_O", 33},
	{"KEY_P", 34},
	{"KEY_Q", 35},
	{"KEY_R", 36},
	{"KEY_S", 37},
	{"KEY_T", 38},
	{"KEY_U", 39},
	{"KEY_V", 40},
	{"KEY_W", 41},
	{"KEY_X", 42},
	{"KEY_Y", 43},
	{"KEY_Z", 44},
	{"KEY_MINUS", 45},
	{"KEY_PERIOD", 46},
	{"KEY_QUOTE", 47},
	{"KEY_SEMICOLON", 48},
	{"KEY_SLASH", 49},
	{"KEY_ALT_LEFT", 50},
	{"KEY_ALT_RIGHT", 51},
	{"KEY_BACKSPACE", 52},
	{"KEY_CAPS_LOCK", 53},
	{"KEY_CONTEXT_MENU", 54},
	{"KEY_CTRL_LEFT", 55},
	{"KEY_CTRL_RIGHT", 56},
	{"KEY_ENTER", 57},
	{"KEY_SUPER_LEFT", 58},
	{"KEY_SUPER_RIGHT", 59},
	{"KEY_SHIFT_LEFT", 60},
	{"KEY_SHIFT_RIGHT", 61},
	{"KEY_SPACE", 62},
	{"KEY_TAB", 63},
	{"KEY_DELETE", 72},
	{"KEY_END", 73},
	{"KEY_HOME", 75},
	{"KEY_INSERT", 76},
	{"KEY_PAGE_DOWN", 77},
	{"KEY_PAGE_UP", 78},
	{"KEY_DOWN", 79},
	{"KEY_LEFT", 80},
	{"KEY_RIGHT", 81},
	{"KEY_UP", 82},
	{"KEY_ESCAPE", 114},
	{"KEY_F1", 159},
	{"KEY_F2", 160},
	{"KEY_F3", 161},
	{"KEY_F4", 162},
	{"KEY_F5", 163},
	{"KEY_F6", 164},
	{"KEY_F7", 165},
	{"KEY_F8", 166},
	{"KEY_F9", 167},
	{"KEY_F10", 168},
	{"KEY_F11", 169},
	{"KEY_F12", 170},
}
