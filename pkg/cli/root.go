package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apaolillo/gothainer/pkg/global"
	"github.com/apaolillo/gothainer/pkg/util/console"
)

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "gothainer",
		Short:   "Build and run reproducible containers out of composable fragments",
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			}
			cmd.SilenceUsage = true
		},
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		newBuildCommand(),
		newRunCommand(),
		newScaffoldCommand(),
		newListCommand(),
	)

	return &rootCmd, nil
}
