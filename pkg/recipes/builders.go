// Package recipes provides ready-made builder and runner fragments for
// common development environments, plus the helpers recipes are composed
// from. Every recipe returns a fresh fragment; callers compose them with
// Merge.
package recipes

import (
	"github.com/apaolillo/gothainer/pkg/dockerfile"
)

// UserBuilderOptions parameterize UserBuilder.
type UserBuilderOptions struct {
	UserName     string // default "user"
	UID          int
	GID          int
	LibDir       string // default <workspace>/libraries
	CMakeVersion string // default "3.27.9"
	Packages     []string
}

// RootUser reports whether the requested IDs leave the image's default root
// user in place instead of creating one.
func (o UserBuilderOptions) RootUser() bool {
	return o.UID == 0 || o.GID == 0
}

// HomeDir returns the home directory of the build user. For non-root users
// the path references the USER_NAME build argument declared by the user
// creation preamble.
func (o UserBuilderOptions) HomeDir() string {
	if o.RootUser() {
		return "/root"
	}
	return "/home/${USER_NAME}"
}

// WorkspaceDir returns the workspace directory below the build user's home.
func (o UserBuilderOptions) WorkspaceDir() string {
	return o.HomeDir() + "/workspace"
}

// LibrariesDir returns the directory third-party projects are built in:
// LibDir when set, a libraries directory below the workspace otherwise.
func (o UserBuilderOptions) LibrariesDir() string {
	if o.LibDir != "" {
		return o.LibDir
	}
	return o.WorkspaceDir() + "/libraries"
}

func (o *UserBuilderOptions) applyDefaults() {
	if o.UserName == "" {
		o.UserName = "user"
	}
	o.LibDir = o.LibrariesDir()
	if o.CMakeVersion == "" {
		o.CMakeVersion = "3.27.9"
	}
}

var defaultPackages = []string{
	"apt-transport-https",
	"build-essential",
	"ca-certificates",
	"curl",
	"file",
	"gdb",
	"git",
	"gnupg",
	"less",
	"libssl-dev",
	"locales",
	"locales-all",
	"lsb-release",
	"ninja-build",
	"software-properties-common",
	"sudo",
	"telnet",
	"tmux",
	"tree",
	"vim",
	"wget",
}

// UserBuilder returns a complete Ubuntu image fragment with general
// development tooling, locales, and a non-root user matching the given
// numeric IDs.
func UserBuilder(imageName string, baseImage string, opts UserBuilderOptions) (*dockerfile.Fragment, error) {
	opts.applyDefaults()

	b := dockerfile.NewUbuntuFragment(imageName, baseImage)

	steps := []error{
		b.Space(),
		b.Env("DEBIAN_FRONTEND", "noninteractive"),
		b.Space(),
		b.InstallPackages("apt-utils"),
		b.Space(),
		b.Comment("General packages & tools"),
		b.InstallPackages(defaultPackages...),
		b.Space(),
		b.Comment("Set locales"),
		b.SetLocales(),
		b.Space(),
		b.Comment("Set root password"),
		b.Run("echo 'root:root' | chpasswd"),
		b.Space(),
		b.Comment("Unminimize image"),
		b.Unminimize(),
		b.Space(),
	}
	if err := firstError(steps); err != nil {
		return nil, err
	}

	if extra := additionalPackages(opts.Packages); len(extra) > 0 {
		steps = []error{
			b.Comment("Required packages"),
			b.InstallPackages(extra...),
			b.Space(),
		}
		if err := firstError(steps); err != nil {
			return nil, err
		}
	}

	if !opts.RootUser() {
		steps = []error{
			b.Comment("Create a non-root user"),
			b.CreateUser(opts.UserName, opts.UID, opts.GID),
			b.Space(),
		}
		if err := firstError(steps); err != nil {
			return nil, err
		}
	}

	steps = []error{b.Comment("Configure user environment")}
	if opts.RootUser() {
		steps = append(steps, b.Root(), b.Workdir(opts.HomeDir()))
	} else {
		steps = append(steps,
			b.User(""),
			b.Workdir(opts.HomeDir()),
			b.Run("touch ~/.sudo_as_admin_successful"))
	}
	steps = append(steps,
		b.Run("mkdir workspace"),
		b.Workdir(opts.WorkspaceDir()),
		b.Space(),
		b.Run("mkdir -p "+opts.LibDir),
		b.Space(),
		b.Comment("Build & install CMake from source"),
		CMakeBuildInstall(b, opts.CMakeVersion, opts.LibDir),
	)
	if err := firstError(steps); err != nil {
		return nil, err
	}

	return b, nil
}

// UserGUIBuilder extends UserBuilder with X11 support for GUI applications.
func UserGUIBuilder(imageName string, baseImage string, opts UserBuilderOptions) (*dockerfile.Fragment, error) {
	b, err := UserBuilder(imageName, baseImage, opts)
	if err != nil {
		return nil, err
	}

	steps := []error{
		b.Space(),
		b.Comment(`Just to test the "xeyes" binary that uses the GUI.`),
		b.Root(),
		b.InstallPackages("x11-apps"),
	}
	if err := firstError(steps); err != nil {
		return nil, err
	}
	return b, nil
}

// OpenCLBuilder returns a partial fragment installing OpenCL headers,
// loaders, and vendor ICD files.
func OpenCLBuilder() (*dockerfile.Fragment, error) {
	b := dockerfile.NewFragment()

	steps := []error{
		b.Space(),
		b.Comment("Required for OpenCL"),
		b.Root(),
		b.InstallPackages(
			"clinfo",
			"ocl-icd-opencl-dev",
			"opencl-c-headers",
			"opencl-clhpp-headers",
			"opencl-headers",
		),
		b.RunMultiple(
			"mkdir -p /etc/OpenCL/vendors",
			"echo libamdocl64.so > /etc/OpenCL/vendors/amdocl64.icd",
			"echo libnvidia-opencl.so.1 > /etc/OpenCL/vendors/nvidia.icd",
		),
		b.Run("ln -s /usr/lib/x86_64-linux-gnu/libOpenCL.so.1 /usr/lib/libOpenCL.so"),
		b.Env("NVIDIA_VISIBLE_DEVICES", "all"),
		b.Env("NVIDIA_DRIVER_CAPABILITIES", "compute,utility"),
	}
	if err := firstError(steps); err != nil {
		return nil, err
	}
	return b, nil
}

// VulkanBuilder returns a partial fragment preparing a Vulkan development
// environment.
func VulkanBuilder() (*dockerfile.Fragment, error) {
	b := dockerfile.NewFragment()

	xdgRuntimeDir := "/home/${USER_NAME}/.xdg-runtime-dir"
	steps := []error{
		b.Space(),
		b.Comment("Required for Vulkan"),
		b.Env("XDG_RUNTIME_DIR", xdgRuntimeDir),
		b.Root(),
		b.InstallPackages(
			"libvulkan-dev",
			"mesa-vulkan-drivers",
			"vulkan-tools",
		),
		b.User(""),
		b.Run("mkdir -p " + xdgRuntimeDir),
	}
	if err := firstError(steps); err != nil {
		return nil, err
	}
	return b, nil
}

func additionalPackages(packages []string) []string {
	var extra []string
	for _, pkg := range packages {
		if !contains(defaultPackages, pkg) {
			extra = append(extra, pkg)
		}
	}
	return extra
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
