package dockerfile

import (
	"fmt"
	"strings"
)

// Instruction is one Dockerfile directive. Implementations are immutable
// value types carrying only the data needed to render their own line or
// block; they perform no I/O and read no external state.
//
// Copy and InstallPackages need render-time information (the fragment's
// context root and package manager); the renderer dispatches on those types
// instead of calling Lines.
type Instruction interface {
	Lines() []string
}

// FromImage sets the base image.
type FromImage struct {
	Image string
}

func (i FromImage) Lines() []string {
	return []string{"FROM " + i.Image}
}

// Run executes a shell command at build time.
type Run struct {
	Command string
}

func (i Run) Lines() []string {
	return []string{"RUN " + i.Command}
}

// RunMultiple chains several commands into a single RUN layer.
type RunMultiple struct {
	Commands []string
}

func (i RunMultiple) Lines() []string {
	return []string{"RUN " + strings.Join(i.Commands, " && \\\n    ")}
}

// Env sets an environment variable in the image.
type Env struct {
	Name  string
	Value string
}

func (i Env) Lines() []string {
	return []string{fmt.Sprintf("ENV %s=%s", i.Name, i.Value)}
}

// Arg declares a build argument, optionally with a default value.
type Arg struct {
	Name    string
	Default string
}

func (i Arg) Lines() []string {
	if i.Default == "" {
		return []string{"ARG " + i.Name}
	}
	return []string{fmt.Sprintf("ARG %s=%s", i.Name, i.Default)}
}

// User switches the user for subsequent instructions.
type User struct {
	Name string
}

func (i User) Lines() []string {
	return []string{"USER " + i.Name}
}

// Workdir sets the working directory for subsequent instructions.
type Workdir struct {
	Path string
}

func (i Workdir) Lines() []string {
	return []string{"WORKDIR " + i.Path}
}

// Copy stages a host file or directory into the image. The source written
// to the Dockerfile is the path the renderer assigns inside the build
// context, not HostPath itself.
type Copy struct {
	HostPath      string
	ContainerPath string
	Chown         string
}

// Lines renders the raw form, with the host path as source. The renderer
// substitutes the context-relative path via lines.
func (i Copy) Lines() []string {
	return i.lines(i.HostPath)
}

func (i Copy) lines(source string) []string {
	if i.Chown != "" {
		return []string{fmt.Sprintf("COPY --chown=%s %s %s", i.Chown, source, i.ContainerPath)}
	}
	return []string{fmt.Sprintf("COPY %s %s", source, i.ContainerPath)}
}

// Entrypoint sets the container entrypoint in exec form.
type Entrypoint struct {
	Args []string
}

func (i Entrypoint) Lines() []string {
	quoted := make([]string, 0, len(i.Args))
	for _, arg := range i.Args {
		quoted = append(quoted, `"`+arg+`"`)
	}
	return []string{"ENTRYPOINT [" + strings.Join(quoted, ", ") + "]"}
}

// Comment is a single Dockerfile comment line.
type Comment struct {
	Text string
}

func (i Comment) Lines() []string {
	return []string{"# " + i.Text}
}

// BlankLine separates instruction blocks for readability.
type BlankLine struct{}

func (i BlankLine) Lines() []string {
	return []string{""}
}

// RawLine is emitted verbatim, for directives the typed variants do not
// cover (e.g. syntax headers).
type RawLine struct {
	Text string
}

func (i RawLine) Lines() []string {
	return []string{i.Text}
}

// InstallPackages installs system packages with the fragment's package
// manager. The package list is sorted at render time so equal sets render
// byte-identical output.
type InstallPackages struct {
	Packages []string
}

// Lines renders the apt form; fragments with another package manager go
// through the renderer, which errors on unsupported managers.
func (i InstallPackages) Lines() []string {
	return aptInstallLines(i.Packages)
}

// AddGroup creates a group with a fixed numeric ID.
type AddGroup struct {
	Name string
	GID  string
}

func (i AddGroup) Lines() []string {
	return []string{fmt.Sprintf("RUN groupadd -g %s %s", i.GID, i.Name)}
}

// AddUser creates a user with fixed numeric user and group IDs.
type AddUser struct {
	Name string
	UID  string
	GID  string
}

func (i AddUser) Lines() []string {
	return []string{fmt.Sprintf(
		`RUN adduser --disabled-password --uid %s --gid %s --gecos "" %s`,
		i.UID, i.GID, i.Name)}
}

// DeleteUserByUID removes a pre-existing user occupying a numeric ID.
// Resolution is by user ID alone: the user's primary group ID may
// legitimately differ from the requested GID on the host. UID may be a
// literal or a ${...} argument reference; the awk program is double-quoted
// so the shell expands the reference while the field accesses stay escaped.
type DeleteUserByUID struct {
	UID string
}

func (i DeleteUserByUID) Lines() []string {
	command := fmt.Sprintf(
		"grep :%[1]s: /etc/passwd && \\\n"+
			"    (awk -F: \"\\$3 == %[1]s { print \\$1 }\" /etc/passwd | \\\n"+
			"     xargs userdel --remove) || \\\n"+
			"    true", i.UID)
	return []string{"RUN " + command}
}

// DeleteGroupByGID removes a pre-existing group occupying a numeric ID.
type DeleteGroupByGID struct {
	GID string
}

func (i DeleteGroupByGID) Lines() []string {
	command := fmt.Sprintf(
		"grep :%[1]s: /etc/group && \\\n"+
			"    (grep :%[1]s: /etc/group | \\\n"+
			"     cut -d ':' -f 1 | \\\n"+
			"     xargs groupdel) || \\\n"+
			"    true", i.GID)
	return []string{"RUN " + command}
}
