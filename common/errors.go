package common

import "errors"

// Error kinds produced by the loading pipeline and the GPU host. Callers
// match with errors.Is; the wrapping message carries the originating path.
var (
	// ErrAssetNotFound indicates a directive referenced a file that the game
	// source cannot resolve. Fatal at load.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrPreprocessSyntax indicates a directive's arguments could not be
	// parsed. Fatal at load.
	ErrPreprocessSyntax = errors.New("preprocess syntax error")

	// ErrShaderCompile indicates the generated WGSL was rejected by the
	// shader compiler. Fatal at load; the generated source can be dumped for
	// debugging via the debug-shader option.
	ErrShaderCompile = errors.New("shader compile error")

	// ErrDeviceLost names a lost GPU device. No component of the host
	// returns it: device loss is not detected or reported.
	ErrDeviceLost = errors.New("gpu device lost")

	// ErrImageDecode indicates a referenced texture could not be decoded.
	// Fatal at load.
	ErrImageDecode = errors.New("image decode error")

	// ErrAudioDecode indicates a referenced sound could not be decoded.
	// Fatal at load.
	ErrAudioDecode = errors.New("audio decode error")

	// ErrObjParse indicates a referenced OBJ model could not be parsed.
	// Fatal at load.
	ErrObjParse = errors.New("obj parse error")
)
