// Package dockerfile builds Dockerfiles out of small composable fragments:
// ordered sequences of typed instructions that merge without reordering and
// render deterministically.
package dockerfile

// fragmentKind separates reusable partial fragments from complete image
// fragments. A complete fragment carries the image tag and package manager
// and may only ever be the left-hand side of a merge.
type fragmentKind int

const (
	kindPartial fragmentKind = iota
	kindImage
)

// Fragment is an ordered, mutable accumulator of instructions. A fragment
// is exclusively owned by its creator; merging copies the right-hand side's
// instructions so neither side aliases the other afterwards.
//
// Rendering finalizes the fragment: any mutation after that fails with
// ErrFinalized.
type Fragment struct {
	kind           fragmentKind
	tag            string
	packageManager string
	useBuildKit    bool
	contextRoot    string
	instructions   []Instruction
	finalized      bool
}

// NewFragment returns an empty partial fragment.
func NewFragment() *Fragment {
	return &Fragment{kind: kindPartial}
}

// NewImageFragment returns an empty complete fragment for the image tag,
// using the given package manager for InstallPackages instructions.
func NewImageFragment(tag string, packageManager string) *Fragment {
	return &Fragment{
		kind:           kindImage,
		tag:            tag,
		packageManager: packageManager,
		useBuildKit:    true,
	}
}

// NewUbuntuFragment returns a complete apt-based fragment seeded with the
// given Ubuntu base image.
func NewUbuntuFragment(tag string, baseImage string) *Fragment {
	f := NewImageFragment(tag, PackageManagerApt)
	_ = f.From(baseImage)
	return f
}

// Tag returns the image tag of a complete fragment, or "" for a partial one.
func (f *Fragment) Tag() string {
	return f.tag
}

// UseBuildKit reports whether docker build should run under BuildKit.
func (f *Fragment) UseBuildKit() bool {
	return f.useBuildKit
}

// SetUseBuildKit toggles BuildKit for the eventual docker build.
func (f *Fragment) SetUseBuildKit(use bool) {
	f.useBuildKit = use
}

// ContextRoot returns the directory against which Copy host paths are made
// relative, or "" for the base-name fallback.
func (f *Fragment) ContextRoot() string {
	return f.contextRoot
}

// SetContextRoot sets the context root used to compute Copy destinations.
func (f *Fragment) SetContextRoot(root string) {
	f.contextRoot = root
}

// Len returns the number of accumulated instructions.
func (f *Fragment) Len() int {
	return len(f.instructions)
}

// Instructions returns a copy of the accumulated instruction sequence.
func (f *Fragment) Instructions() []Instruction {
	return cloneInstructions(f.instructions)
}

// Append adds an instruction at the end. It fails only once the fragment
// has been finalized by rendering.
func (f *Fragment) Append(inst Instruction) error {
	if f.finalized {
		return ErrFinalized
	}
	f.instructions = append(f.instructions, cloneInstruction(inst))
	return nil
}

// Merge appends a defensive copy of other's instructions onto f, in order.
// Either the entire right-hand fragment is absorbed or, on error, f is left
// unchanged. other is never mutated; mutating it afterwards does not affect
// f. Merging a complete image fragment as the right-hand side fails with
// ErrMergeKind.
func (f *Fragment) Merge(other *Fragment) error {
	if f.finalized {
		return ErrFinalized
	}
	if other.kind == kindImage {
		return ErrMergeKind
	}
	// Snapshot first so merging a fragment with itself cannot grow the
	// slice it is iterating.
	f.instructions = append(f.instructions, cloneInstructions(other.instructions)...)
	return nil
}

// From appends a FROM instruction.
func (f *Fragment) From(image string) error {
	return f.Append(FromImage{Image: image})
}

// Run appends a RUN instruction.
func (f *Fragment) Run(command string) error {
	return f.Append(Run{Command: command})
}

// RunMultiple appends a single RUN layer chaining the commands.
func (f *Fragment) RunMultiple(commands ...string) error {
	return f.Append(RunMultiple{Commands: commands})
}

// Env appends an ENV instruction.
func (f *Fragment) Env(name string, value string) error {
	return f.Append(Env{Name: name, Value: value})
}

// Arg appends an ARG instruction without a default.
func (f *Fragment) Arg(name string) error {
	return f.Append(Arg{Name: name})
}

// ArgDefault appends an ARG instruction with a default value.
func (f *Fragment) ArgDefault(name string, value string) error {
	return f.Append(Arg{Name: name, Default: value})
}

// User appends a USER instruction. An empty name refers to the user created
// by CreateUser via the USER_NAME build argument.
func (f *Fragment) User(name string) error {
	if name == "" {
		name = "${USER_NAME}"
	}
	return f.Append(User{Name: name})
}

// Root switches back to the root user.
func (f *Fragment) Root() error {
	return f.User("root")
}

// Workdir appends a WORKDIR instruction.
func (f *Fragment) Workdir(path string) error {
	return f.Append(Workdir{Path: path})
}

// Copy appends a COPY instruction staging hostPath into the build context.
func (f *Fragment) Copy(hostPath string, containerPath string) error {
	return f.Append(Copy{HostPath: hostPath, ContainerPath: containerPath})
}

// CopyChown is Copy with a --chown owner.
func (f *Fragment) CopyChown(hostPath string, containerPath string, owner string) error {
	return f.Append(Copy{HostPath: hostPath, ContainerPath: containerPath, Chown: owner})
}

// Entrypoint appends an exec-form ENTRYPOINT instruction.
func (f *Fragment) Entrypoint(args ...string) error {
	return f.Append(Entrypoint{Args: args})
}

// Comment appends a comment line.
func (f *Fragment) Comment(text string) error {
	return f.Append(Comment{Text: text})
}

// Space appends a blank separator line.
func (f *Fragment) Space() error {
	return f.Append(BlankLine{})
}

// Raw appends a verbatim line.
func (f *Fragment) Raw(text string) error {
	return f.Append(RawLine{Text: text})
}

// InstallPackages appends a package-install layer for the fragment's
// package manager.
func (f *Fragment) InstallPackages(packages ...string) error {
	return f.Append(InstallPackages{Packages: packages})
}

// SetLocales configures the en_US.UTF-8 locale environment.
func (f *Fragment) SetLocales() error {
	for _, name := range []string{"LC_ALL", "LANG", "LANGUAGE"} {
		if err := f.Env(name, "en_US.UTF-8"); err != nil {
			return err
		}
	}
	return nil
}

// Unminimize restores a minimized Ubuntu base image to its full version,
// when the unminimize package exists for the release.
func (f *Fragment) Unminimize() error {
	if err := f.RunMultiple(
		"apt-get update",
		"((apt-cache show unminimize && apt-get install -y unminimize) || true)",
		"rm -rf /var/lib/apt/lists/*",
	); err != nil {
		return err
	}
	return f.Run("if which unminimize; then yes | unminimize; fi")
}

func cloneInstructions(instructions []Instruction) []Instruction {
	cloned := make([]Instruction, 0, len(instructions))
	for _, inst := range instructions {
		cloned = append(cloned, cloneInstruction(inst))
	}
	return cloned
}

// cloneInstruction deep-copies the slice payloads so fragments never share
// backing storage.
func cloneInstruction(inst Instruction) Instruction {
	switch v := inst.(type) {
	case RunMultiple:
		return RunMultiple{Commands: append([]string(nil), v.Commands...)}
	case InstallPackages:
		return InstallPackages{Packages: append([]string(nil), v.Packages...)}
	case Entrypoint:
		return Entrypoint{Args: append([]string(nil), v.Args...)}
	default:
		return inst
	}
}
