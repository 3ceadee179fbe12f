package shader

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/wgslbox/common"
	"github.com/charmbracelet/log"
	"github.com/gogpu/naga"
)

// Validate compiles the manifest's generated WGSL with naga to catch shader
// errors at load time, before any GPU resource exists. On failure the
// generated source is dumped to debugPath (when non-empty) so the emitted
// program can be inspected.
//
// Parameters:
//   - m: the manifest whose GeneratedWGSL is validated
//   - debugPath: file path for the failure dump, or "" to skip dumping
//
// Returns:
//   - error: common.ErrShaderCompile wrapping the compiler message
func Validate(m *Manifest, debugPath string) error {
	if _, err := naga.Compile(m.GeneratedWGSL); err != nil {
		if debugPath != "" {
			if dumpErr := os.WriteFile(debugPath, []byte(m.GeneratedWGSL), 0o644); dumpErr != nil {
				log.Error("failed to dump generated shader", "path", debugPath, "err", dumpErr)
			} else {
				log.Info("generated shader dumped", "path", debugPath)
			}
		}
		return fmt.Errorf("generated WGSL rejected: %v: %w", err, common.ErrShaderCompile)
	}
	return nil
}
