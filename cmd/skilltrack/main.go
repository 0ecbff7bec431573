package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/skilltrack/internal/cli"
	"github.com/example/skilltrack/internal/version"
	"github.com/example/skilltrack/internal/wire"
)

func main() {
	var settings wire.Settings

	rootCmd := &cobra.Command{
		Use:     "skilltrack",
		Short:   "skilltrack - track the skills you are learning",
		Version: version.String(),
		Long: `skilltrack keeps a local list of learning goals with a category,
a status and a progress percentage, and reports totals and recent milestones.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.Configure(settings)
		},
	}

	rootCmd.PersistentFlags().StringVar(&settings.ConfigPath, "config", "", "Config file (default ~/.skilltrack/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&settings.Backend, "backend", "", "Storage backend: sqlite, file, redis or memory")
	rootCmd.PersistentFlags().BoolVarP(&settings.Verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(cli.SkillCmds()...)
	rootCmd.AddCommand(cli.ConfigCmd())

	err := rootCmd.Execute()
	wire.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
