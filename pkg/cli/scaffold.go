package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apaolillo/gothainer/pkg/util/console"
)

var scaffoldOutput string

func newScaffoldCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Print a starter program using the gothainer packages",
		Args:  cobra.NoArgs,
		RunE:  scaffoldCommand,
	}
	cmd.Flags().StringVarP(&scaffoldOutput, "output", "o", "", "Write the program to this file instead of stdout")
	return cmd
}

func scaffoldCommand(cmd *cobra.Command, args []string) error {
	if scaffoldOutput == "" {
		fmt.Fprint(os.Stdout, scaffoldProgram)
		return nil
	}
	if _, err := os.Stat(scaffoldOutput); err == nil {
		return fmt.Errorf("refusing to overwrite existing file %s", scaffoldOutput)
	}
	if err := os.WriteFile(scaffoldOutput, []byte(scaffoldProgram), 0o644); err != nil {
		return err
	}
	console.Infof("Wrote starter program to %s", scaffoldOutput)
	return nil
}

const scaffoldProgram = `package main

import (
	"os"

	"github.com/apaolillo/gothainer/pkg/docker"
	"github.com/apaolillo/gothainer/pkg/recipes"
	"github.com/apaolillo/gothainer/pkg/runner"
	"github.com/apaolillo/gothainer/pkg/util/console"
)

func run() error {
	imageName := "myimage"
	containerName := imageName

	b, err := recipes.UserGUIBuilder(imageName, "ubuntu:24.04", recipes.UserBuilderOptions{
		UID: os.Getuid(),
		GID: os.Getgid(),
	})
	if err != nil {
		return err
	}
	if err := docker.BuildImage(b, ".", ""); err != nil {
		return err
	}

	r := runner.NewConcreteRunner(imageName, containerName)
	gui, err := recipes.GUIRunner(false)
	if err != nil {
		return err
	}
	if err := r.Merge(gui); err != nil {
		return err
	}
	return docker.Run(r)
}

func main() {
	if err := run(); err != nil {
		console.Fatal(err.Error())
	}
}
`
