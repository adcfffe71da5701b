package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/apaolillo/gothainer/pkg/config"
	"github.com/apaolillo/gothainer/pkg/docker"
	"github.com/apaolillo/gothainer/pkg/dockerfile"
	"github.com/apaolillo/gothainer/pkg/util/console"
)

var (
	buildImage          string
	buildBuilders       []string
	buildSaveDockerfile string
	buildDryRun         bool
	buildScriptPath     string
)

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the project image from its composed fragments",
		Args:  cobra.NoArgs,
		RunE:  buildCommand,
	}
	cmd.Flags().StringVarP(&buildImage, "image", "t", "", "Name of the image to build (overrides config)")
	cmd.Flags().StringSliceVar(&buildBuilders, "builders", nil, "Builder recipes to compose (overrides config)")
	cmd.Flags().StringVar(&buildSaveDockerfile, "save-dockerfile", "", "Also save the generated Dockerfile to this path")
	cmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Print the generated Dockerfile without building")
	cmd.Flags().StringVar(&buildScriptPath, "script", "", "Write a build script to this path instead of building")
	return cmd
}

func buildCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, rootDir, err := config.LoadOrDefault(cwd)
	if err != nil {
		return err
	}
	if buildImage != "" {
		cfg.Image = buildImage
	}
	if buildBuilders != nil {
		cfg.Builders = buildBuilders
	}

	b, err := composeBuilder(cfg, rootDir)
	if err != nil {
		return err
	}

	if buildDryRun {
		result, err := dockerfile.Render(b)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, result.Dockerfile)
		return nil
	}

	if buildScriptPath != "" {
		if err := docker.WriteScript(docker.BuildScript(b), buildScriptPath); err != nil {
			return err
		}
		console.Infof("Wrote build script to %s", buildScriptPath)
		return nil
	}

	var savePath string
	if buildSaveDockerfile != "" {
		savePath, err = filepath.Abs(buildSaveDockerfile)
		if err != nil {
			return err
		}
	}

	console.Infof("Building Docker image %s...", cfg.Image)
	if err := docker.BuildImage(b, rootDir, savePath); err != nil {
		return fmt.Errorf("failed to build Docker image: %w", err)
	}
	console.Infof("Image built as %s", cfg.Image)
	return nil
}
