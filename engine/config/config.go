// Package config holds the host configuration: everything about the machine
// and the embedder, nothing about the game (games configure themselves
// through directives).
package config

// Config is the host configuration, loadable from wgslbox.yaml and
// overridable by CLI flags.
type Config struct {
	// OscAddr is the UDP listen address for OSC parameter updates. Empty
	// disables the listener.
	OscAddr string `yaml:"osc_addr"`

	// VSync selects the surface present mode.
	VSync bool `yaml:"vsync"`

	// DebugShader is a file path the generated WGSL is dumped to when it
	// fails to compile; successful loads write nothing. Empty disables dumps.
	DebugShader string `yaml:"debug_shader"`

	// FallbackAdapter forces the software GPU adapter.
	FallbackAdapter bool `yaml:"fallback_adapter"`
}
