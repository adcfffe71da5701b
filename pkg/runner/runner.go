// Package runner accumulates docker run configuration out of composable
// fragments: environment variables, volume mounts, devices and free-form
// extra flags, rendered into a deterministic argument list.
package runner

import (
	"errors"
	"fmt"
	"os"

	"github.com/apaolillo/gothainer/pkg/util/files"
)

// ErrMergeKind is returned when the right-hand side of a merge is a
// concrete runner. A concrete runner owns its image and container identity
// and can only absorb plain runners.
var ErrMergeKind = errors.New("cannot merge a concrete runner into another runner")

// Runner accumulates execution-time configuration for a container. A plain
// runner is a reusable fragment; a concrete runner (see NewConcreteRunner)
// is additionally bound to an image and ready to produce the full docker
// run command.
//
// Merging never aliases: the right-hand side stays independently usable.
type Runner struct {
	env     *orderedMap
	volumes *orderedMap
	devices []string
	options []string

	concrete    bool
	image       string
	name        string
	network     string
	workdir     string
	root        bool
	tty         bool
	interactive bool
	uid         int
	gid         int
}

// New returns an empty plain runner fragment.
func New() *Runner {
	return &Runner{
		env:     newOrderedMap(),
		volumes: newOrderedMap(),
	}
}

// Option configures a concrete runner.
type Option func(*Runner)

// WithNetwork sets the docker network and an --add-host alias for the image.
func WithNetwork(network string) Option {
	return func(r *Runner) { r.network = network }
}

// WithWorkdir sets the working directory inside the container.
func WithWorkdir(path string) Option {
	return func(r *Runner) { r.workdir = path }
}

// WithRoot runs the container as root instead of the host user.
func WithRoot() Option {
	return func(r *Runner) { r.root = true }
}

// WithTTY controls --tty allocation.
func WithTTY(tty bool) Option {
	return func(r *Runner) { r.tty = tty }
}

// WithInteractive controls --interactive.
func WithInteractive(interactive bool) Option {
	return func(r *Runner) { r.interactive = interactive }
}

// WithUser overrides the host-matching numeric IDs passed to --user.
func WithUser(uid int, gid int) Option {
	return func(r *Runner) {
		r.uid = uid
		r.gid = gid
	}
}

// NewConcreteRunner returns a runner bound to an image and container name,
// allocating a TTY and running interactively as the host user by default.
func NewConcreteRunner(image string, name string, opts ...Option) *Runner {
	r := New()
	r.concrete = true
	r.image = image
	r.name = name
	r.tty = true
	r.interactive = true
	r.uid = os.Getuid()
	r.gid = os.Getgid()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Image returns the bound image tag, or "" for a plain runner.
func (r *Runner) Image() string {
	return r.image
}

// Name returns the bound container name, or "" for a plain runner.
func (r *Runner) Name() string {
	return r.name
}

// SetEnv sets an environment variable. The last write for a name wins; the
// name keeps its first-seen position in the rendered flags.
func (r *Runner) SetEnv(name string, value string) {
	r.env.set(name, value)
}

// AddVolume mounts hostPath at containerPath. The last write for a host
// path wins.
func (r *Runner) AddVolume(hostPath string, containerPath string) {
	r.volumes.set(hostPath, containerPath)
}

// AddDevice exposes a host device path inside the container. Duplicates
// are dropped, first-seen order is kept.
func (r *Runner) AddDevice(path string) {
	for _, existing := range r.devices {
		if existing == path {
			return
		}
	}
	r.devices = append(r.devices, path)
}

// AddOptions appends free-form docker run flags.
func (r *Runner) AddOptions(options ...string) {
	r.options = append(r.options, options...)
}

// Merge absorbs other's configuration into r: environment and volume maps
// overwrite deterministically (other wins), devices union, options append.
// other is copied, never aliased, and is left unchanged. Merging a concrete
// runner as the right-hand side fails with ErrMergeKind before any
// mutation.
func (r *Runner) Merge(other *Runner) error {
	if other.concrete {
		return ErrMergeKind
	}
	other.env.each(r.env.set)
	other.volumes.each(r.volumes.set)
	for _, device := range other.devices {
		r.AddDevice(device)
	}
	r.options = append(r.options, other.options...)
	return nil
}

// Flags renders the category flags in fixed order: environment variables,
// volumes, devices, then extra options. Within a category, insertion order
// is preserved. Devices missing on the host are skipped.
func (r *Runner) Flags() []string {
	var flags []string
	r.env.each(func(name, value string) {
		flags = append(flags, fmt.Sprintf("--env=%s=%s", name, value))
	})
	r.volumes.each(func(hostPath, containerPath string) {
		flags = append(flags, fmt.Sprintf("--volume=%s:%s", hostPath, containerPath))
	})
	for _, device := range r.devices {
		if exists, err := files.Exists(device); err == nil && exists {
			flags = append(flags, "--device="+device)
		}
	}
	flags = append(flags, r.options...)
	return flags
}

// Command renders the full docker run argument list for a concrete runner.
// For a plain runner it is equivalent to Flags prefixed with the run
// header.
func (r *Runner) Command() []string {
	command := []string{"docker", "run", "--rm"}
	if r.tty {
		command = append(command, "--tty")
	}
	if r.interactive {
		command = append(command, "--interactive")
	}
	command = append(command, r.Flags()...)
	if !r.concrete {
		return command
	}

	if r.name != "" {
		command = append(command, "--name="+r.name)
	}
	command = append(command, "--hostname="+r.image)
	if r.network != "" {
		command = append(command,
			"--network="+r.network,
			fmt.Sprintf("--add-host=%s:127.0.1.1", r.image))
	}
	if r.workdir != "" {
		command = append(command, "--workdir="+r.workdir)
	}
	if !r.root {
		command = append(command, fmt.Sprintf("--user=%d:%d", r.uid, r.gid))
	}
	return append(command, r.image)
}
