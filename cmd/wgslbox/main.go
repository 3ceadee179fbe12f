// wgslbox is a host runtime for single-file WGSL games.
//
// Usage:
//
//	wgslbox run <game>       - Load and run a game (.wgsl file, directory, or zip)
//	wgslbox inspect <game>   - Print the manifest (and optionally the generated WGSL)
//
// Global flags:
//
//	--config <path>     - Host config file (default: wgslbox.yaml)
//	--osc <addr>        - OSC listen address (default: 0.0.0.0:8000, "" disables)
//	--vsync             - Synchronize presentation with the display
//	--debug-shader <p>  - Dump the generated WGSL to a file when it fails to compile
//	--fallback-adapter  - Force the software GPU adapter
package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/wgslbox/engine/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig          string
	flagOsc             string
	flagVSync           bool
	flagDebugShader     string
	flagFallbackAdapter bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wgslbox",
	Short: "wgslbox - run games written entirely in WGSL",
	Long: `wgslbox runs single-file WGSL games: one main.wgsl (plus optional assets
in a directory or zip archive) containing an update compute entry and a
vs_main/fs_render pair, extended with @-directives for textures, sounds,
models, videos, cameras, and OSC parameters.

Examples:
  wgslbox run bob.wgsl
  wgslbox run games/snake/
  wgslbox run bundle.zip --osc 0.0.0.0:9000
  wgslbox inspect bundle.zip --wgsl`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "wgslbox.yaml", "Host config file")
	rootCmd.PersistentFlags().StringVar(&flagOsc, "osc", "", "OSC listen address (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagVSync, "vsync", true, "Synchronize presentation with the display")
	rootCmd.PersistentFlags().StringVar(&flagDebugShader, "debug-shader", "", "Dump the generated WGSL to this path when it fails to compile")
	rootCmd.PersistentFlags().BoolVar(&flagFallbackAdapter, "fallback-adapter", false, "Force the software GPU adapter")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
}

// loadConfig merges the config file with any explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("osc") {
		cfg.OscAddr = flagOsc
	}
	if cmd.Flags().Changed("vsync") {
		cfg.VSync = flagVSync
	}
	if cmd.Flags().Changed("debug-shader") {
		cfg.DebugShader = flagDebugShader
	}
	if cmd.Flags().Changed("fallback-adapter") {
		cfg.FallbackAdapter = flagFallbackAdapter
	}
	return cfg, nil
}
