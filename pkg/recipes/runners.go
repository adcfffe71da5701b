package recipes

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/apaolillo/gothainer/pkg/runner"
	"github.com/apaolillo/gothainer/pkg/util/files"
)

// GUIRunner configures a container to display X11 applications on the host:
// DISPLAY and Xauthority forwarding, the X11 socket volume, and (optionally)
// the host's input event devices.
func GUIRunner(mountInputEvents bool) (*runner.Runner, error) {
	r := runner.New()

	if display := os.Getenv("DISPLAY"); display != "" {
		r.SetEnv("DISPLAY", display)
	}

	x11Path := "/tmp/.X11-unix"
	if isDir, err := files.IsDir(x11Path); err == nil && isDir {
		r.AddVolume(x11Path, x11Path)
	}

	if xauthority := os.Getenv("XAUTHORITY"); xauthority != "" {
		r.AddVolume(xauthority, "/root/.Xauthority")
	}

	if mountInputEvents {
		events, err := filepath.Glob("/dev/input/event*")
		if err != nil {
			return nil, err
		}
		for _, event := range events {
			r.AddDevice(event)
		}
	}

	return r, nil
}

// CameraRunner exposes the host's video and media devices.
func CameraRunner() (*runner.Runner, error) {
	r := runner.New()
	r.AddDevice("/dev")
	r.AddOptions(
		"--privileged",
		`--device-cgroup-rule=c 81:* rmw`,
		`--device-cgroup-rule=c 189:* rmw`,
	)
	return r, nil
}

// GPURunner enables the NVIDIA runtime with access to all GPUs.
func GPURunner() (*runner.Runner, error) {
	r := runner.New()
	r.AddOptions("--runtime=nvidia", "--gpus=all")
	return r, nil
}

// PersonalRunner mounts the calling user's vim and tmux configuration into
// the container user's home directory.
func PersonalRunner(userName string) (*runner.Runner, error) {
	if userName == "" {
		userName = "user"
	}

	vimrc, err := homedir.Expand("~/git/machines-config/dotfiles/vimrc")
	if err != nil {
		return nil, err
	}
	tmuxConf, err := homedir.Expand("~/git/machines-config/dotfiles/tmux.conf")
	if err != nil {
		return nil, err
	}

	r := runner.New()
	r.AddVolume(vimrc, "/home/"+userName+"/.vimrc")
	r.AddVolume(tmuxConf, "/home/"+userName+"/.tmux.conf")
	return r, nil
}
