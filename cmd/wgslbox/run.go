package main

import (
	"github.com/Carmen-Shannon/wgslbox/engine"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <game>",
	Short: "Load and run a WGSL game",
	Long: `Load a game (a .wgsl file, a directory containing main.wgsl, or a zip
archive) and run it until the window closes. Escape quits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		e := engine.NewEngine(engine.WithConfig(cfg))
		if err := e.LoadGame(args[0]); err != nil {
			return err
		}
		log.Info("running", "game", args[0])
		e.Run()
		return nil
	},
}
