package main

import (
	"os"
	"sync"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/vocabbuilder/internal/cli"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization. Commands run from the shell execute
	// the command tree again, the config is read only once.
	var configOnce sync.Once
	cobra.OnInitialize(func() {
		configOnce.Do(func() { cli.InitConfig(flags.CfgFile) })
	})

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
