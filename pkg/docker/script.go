package docker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/apaolillo/gothainer/pkg/dockerfile"
	"github.com/apaolillo/gothainer/pkg/runner"
)

// BuildScript renders a standalone shell script reproducing the docker
// build for the fragment, resolving the host IDs at script runtime. The
// output is byte-deterministic for a given fragment.
func BuildScript(f *dockerfile.Fragment) string {
	command := []string{
		"docker", "build",
		"--file Dockerfile",
		"--build-arg=UID=$(id -u)",
		"--build-arg=GID=$(id -g)",
		"--tag=" + f.Tag(),
		".",
	}

	lines := []string{"#!/bin/sh", "set -ex", ""}
	for _, env := range BuildEnv(f.UseBuildKit()) {
		lines = append(lines, "export "+env)
	}
	lines = append(lines, "")
	lines = append(lines, continuationLines(command)...)

	return strings.Join(lines, "\n") + "\n"
}

// RunScript renders a standalone shell script reproducing the runner's
// docker run command, forwarding the script's arguments to the container.
func RunScript(r *runner.Runner) string {
	command := append(r.Command(), `"$@"`)

	lines := []string{"#!/bin/sh", "set -ex", ""}
	lines = append(lines, continuationLines(command)...)

	return strings.Join(lines, "\n") + "\n"
}

// WriteScript writes an executable script, creating parent directories as
// needed.
func WriteScript(content string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o755)
}

// continuationLines formats an argument list as a multi-line shell command:
// the first two words on the opening line, every further argument indented
// with a trailing backslash.
func continuationLines(command []string) []string {
	head := strings.Join(command[:2], " ")
	body := command[2:]
	if len(body) == 0 {
		return []string{head}
	}

	lines := []string{head + " \\"}
	for _, arg := range body[:len(body)-1] {
		lines = append(lines, "    "+arg+" \\")
	}
	return append(lines, "    "+body[len(body)-1])
}
