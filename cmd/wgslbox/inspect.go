package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/wgslbox/engine/shader"
	"github.com/Carmen-Shannon/wgslbox/engine/source"
	"github.com/spf13/cobra"
)

var flagInspectWGSL bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <game>",
	Short: "Preprocess a game and print its manifest",
	Long: `Run the preprocessor without starting the GPU host and print the
resulting manifest: title, framebuffer size, asset slots, OSC parameters,
and the GameState layout. With --wgsl the generated shader source is
printed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := source.Open(args[0])
		if err != nil {
			return err
		}
		entry := "main.wgsl"
		if strings.HasSuffix(args[0], ".wgsl") {
			entry = filepath.Base(args[0])
		}

		man, err := shader.NewPreProcessor(src).Process(entry)
		if err != nil {
			return err
		}

		fmt.Printf("title:       %s\n", man.Title)
		fmt.Printf("size:        %dx%d\n", man.Width, man.Height)
		fmt.Printf("game state:  %d bytes (align %d)\n", man.GameStateSize, man.GameStateAlignment)
		printSlots("textures", man.Textures)
		printSlots("videos", man.Videos)
		if len(man.Cameras) > 0 {
			fmt.Printf("cameras:\n")
			for i, dev := range man.Cameras {
				fmt.Printf("  [%d] device %d\n", i, dev)
			}
		}
		printSlots("sounds", man.Sounds)
		printSlots("models", man.Models)
		printSlots("osc params", man.OscParams)

		if flagInspectWGSL {
			fmt.Println()
			fmt.Println(man.GeneratedWGSL)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&flagInspectWGSL, "wgsl", false, "Also print the generated WGSL")
}

func printSlots(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for i, item := range items {
		fmt.Printf("  [%d] %s\n", i, item)
	}
}
