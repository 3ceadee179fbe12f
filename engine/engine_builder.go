package engine

import (
	"github.com/Carmen-Shannon/wgslbox/engine/config"
	"github.com/charmbracelet/log"
)

// EngineBuilderOption configures an engine during construction.
type EngineBuilderOption func(*engine)

// WithConfig sets the host configuration.
//
// Parameters:
//   - cfg: the merged host configuration (file + flag overrides)
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.cfg = cfg
	}
}

// WithEngineLogger overrides the engine's logger.
//
// Parameters:
//   - logger: the logger to use
func WithEngineLogger(logger *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
