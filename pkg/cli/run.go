package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apaolillo/gothainer/pkg/config"
	"github.com/apaolillo/gothainer/pkg/docker"
	"github.com/apaolillo/gothainer/pkg/util/console"
)

var (
	runContainer  string
	runRunners    []string
	runScriptPath string
	runDryRun     bool
	runNoBuild    bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a container from the project image",
		Args:  cobra.NoArgs,
		RunE:  runCommand,
	}
	cmd.Flags().StringVar(&runContainer, "name", "", "Name of the container (overrides config)")
	cmd.Flags().StringSliceVar(&runRunners, "runners", nil, "Runner recipes to compose (overrides config)")
	cmd.Flags().StringVar(&runScriptPath, "script", "", "Write a run script to this path instead of running")
	cmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the docker command without running it")
	cmd.Flags().BoolVar(&runNoBuild, "no-build", false, "Skip rebuilding the image before running")
	return cmd
}

func runCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, rootDir, err := config.LoadOrDefault(cwd)
	if err != nil {
		return err
	}
	if runContainer != "" {
		cfg.Container = runContainer
	}
	if runRunners != nil {
		cfg.Runners = runRunners
	}

	r, err := composeRunner(cfg, rootDir)
	if err != nil {
		return err
	}

	if runDryRun {
		console.Output(strings.Join(r.Command(), " "))
		return nil
	}

	if runScriptPath != "" {
		if err := docker.WriteScript(docker.RunScript(r), runScriptPath); err != nil {
			return err
		}
		console.Infof("Wrote run script to %s", runScriptPath)
		return nil
	}

	if !runNoBuild {
		b, err := composeBuilder(cfg, rootDir)
		if err != nil {
			return err
		}
		console.Infof("Building Docker image %s...", cfg.Image)
		if err := docker.BuildImage(b, rootDir, ""); err != nil {
			return fmt.Errorf("failed to build Docker image: %w", err)
		}
	}

	return docker.Run(r)
}
