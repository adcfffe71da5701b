// Package docker shells out to the docker binary. It consumes the rendered
// artifacts of the dockerfile and runner packages and never parses docker's
// output.
package docker

import (
	"os"
	"os/exec"
	"strings"

	"github.com/apaolillo/gothainer/pkg/util/console"
)

func execDocker(args []string, dir string, env []string) error {
	cmd := exec.Command("docker", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	console.Debug("$ " + strings.Join(cmd.Args, " "))
	return cmd.Run()
}
