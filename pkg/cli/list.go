package cli

import (
	"github.com/spf13/cobra"

	"github.com/apaolillo/gothainer/pkg/recipes"
	"github.com/apaolillo/gothainer/pkg/util/console"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available builder and runner recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console.Output("Builders:")
			for _, name := range recipes.BuilderNames() {
				console.Output("  " + name)
			}
			console.Output("Runners:")
			for _, name := range recipes.RunnerNames() {
				console.Output("  " + name)
			}
			return nil
		},
	}
}
