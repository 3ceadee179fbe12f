package config

// Default returns the host defaults: OSC on the conventional port, vsync
// on, no shader dumps, hardware adapter.
func Default() Config {
	return Config{
		OscAddr: "0.0.0.0:8000",
		VSync:   true,
	}
}
