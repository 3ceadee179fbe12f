package common

// Virtual gamepad button indices into the host block's buttons array.
// Layout follows the classic SNES pad; the window maps keyboard keys onto
// these slots (arrows/WASD for the d-pad, Z/X for A/B, Enter/LShift for
// START/SELECT).
const (
	BtnUp     = 0
	BtnDown   = 1
	BtnLeft   = 2
	BtnRight  = 3
	BtnA      = 4
	BtnB      = 5
	BtnX      = 6
	BtnY      = 7
	BtnL      = 8
	BtnR      = 9
	BtnStart  = 10
	BtnSelect = 11

	// ButtonCount is the length of the buttons array in the host block.
	ButtonCount = 12
)

// WGSLButtonConstants lists the BTN_* constants emitted into every generated
// shader header, in emission order.
var WGSLButtonConstants = []KeyConstant{
	{"BTN_UP", BtnUp},
	{"BTN_DOWN", BtnDown},
	{"BTN_LEFT", BtnLeft},
	{"BTN_RIGHT", BtnRight},
	{"BTN_A", BtnA},
	{"BTN_B", BtnB},
	{"BTN_X", BtnX},
	{"BTN_Y", BtnY},
	{"BTN_L", BtnL},
	{"BTN_R", BtnR},
	{"BTN_START", BtnStart},
	{"BTN_SELECT", BtnSelect},
}
