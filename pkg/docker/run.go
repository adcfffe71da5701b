package docker

import (
	"os"

	"github.com/apaolillo/gothainer/pkg/runner"
	"github.com/apaolillo/gothainer/pkg/util/console"
)

// Run executes the runner's docker run command. The TTY flag is dropped
// when stdin is not a terminal, so scripted invocations don't fail.
func Run(r *runner.Runner) error {
	command := r.Command()
	if !console.IsTTY(os.Stdin) {
		command = dropFlag(command, "--tty")
	}
	return execDocker(command[1:], "", nil)
}

// Exec runs a command inside an already running container.
func Exec(container string, command ...string) error {
	args := append([]string{"exec", "--tty", "--interactive", container}, command...)
	return execDocker(args, "", nil)
}

func dropFlag(command []string, flag string) []string {
	kept := make([]string, 0, len(command))
	for _, arg := range command {
		if arg != flag {
			kept = append(kept, arg)
		}
	}
	return kept
}
