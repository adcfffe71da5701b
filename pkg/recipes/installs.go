package recipes

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/apaolillo/gothainer/pkg/dockerfile"
)

// CMakeBuildInstall builds and installs CMake from source inside workdir.
// The version is wired through a build argument so the same fragment can be
// rebuilt with a different version.
func CMakeBuildInstall(b *dockerfile.Fragment, version string, workdir string) error {
	versionRef := "${cmake_version}"
	pkgName := "cmake-" + versionRef + ".tar.gz"
	url := "https://github.com/Kitware/CMake/releases/download/v" + versionRef + "/" + pkgName
	dirName := "cmake-" + versionRef

	commands := append([]string{
		"./bootstrap --parallel=$(nproc)",
		"make -j $(nproc)",
		"sudo make install",
	}, cleanupCommands(path.Join(workdir, dirName), true)...)

	steps := []error{
		b.Workdir(workdir),
		b.ArgDefault("cmake_version", version),
		b.Run("wget --quiet " + url),
		b.Run("tar -xf " + pkgName),
		b.Workdir(dirName),
		b.RunMultiple(commands...),
	}
	return firstError(steps)
}

// ProjectGitClone clones a repository at a fixed commit below workdir and
// returns the repository directory name.
func ProjectGitClone(b *dockerfile.Fragment, workdir string, gitURL string, commit string, submodules bool) (string, error) {
	repoName := strings.TrimSuffix(path.Base(gitURL), ".git")

	steps := []error{
		b.Workdir(workdir),
		b.Run("git clone " + gitURL),
		b.Workdir(repoName),
		b.Run("git checkout " + commit),
	}
	if submodules {
		steps = append(steps, b.Run("git submodule update --init --recursive"))
	}
	if err := firstError(steps); err != nil {
		return "", err
	}
	return repoName, nil
}

// CMakeProjectOptions parameterize ProjectCMakeBuildInstall.
type CMakeProjectOptions struct {
	SourceDir string // cmake source dir, default ".."
	Generator string // default "make"
	Defines   map[string]string
	Install   bool
	Cleanup   bool
}

// ProjectCMakeBuildInstall configures, builds, and optionally installs a
// checked-out project with CMake. Defines are rendered in sorted order so
// equal option sets render identically.
func ProjectCMakeBuildInstall(b *dockerfile.Fragment, workdir string, repoName string, opts CMakeProjectOptions) error {
	sourceDir := opts.SourceDir
	if sourceDir == "" {
		sourceDir = ".."
	}
	generator := opts.Generator
	if generator == "" {
		generator = "make"
	}
	generatorCommand := strings.ToLower(generator)

	cmakeCommand := "cmake " + sourceDir
	if opts.Generator != "" || len(opts.Defines) > 0 {
		var options []string
		if opts.Generator != "" {
			options = append(options, "-G "+opts.Generator)
		}
		names := make([]string, 0, len(opts.Defines))
		for name := range opts.Defines {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			options = append(options, fmt.Sprintf("-D%s=%s", name, opts.Defines[name]))
		}

		spaces := strings.Repeat(" ", 8)
		var builder strings.Builder
		builder.WriteString("cmake \\\n")
		for _, option := range options {
			builder.WriteString(spaces + option + " \\\n")
		}
		builder.WriteString(spaces + sourceDir)
		cmakeCommand = builder.String()
	}

	commands := []string{
		"mkdir build",
		"cd build",
		cmakeCommand,
		generatorCommand + " -j $(nproc)",
	}
	if opts.Install {
		commands = append(commands, "sudo "+generatorCommand+" install")
	}
	commands = append(commands, cleanupCommands(path.Join(workdir, repoName), opts.Cleanup)...)

	return b.RunMultiple(commands...)
}

// WgetFromURL downloads a .deb package to saveDir (default /tmp).
func WgetFromURL(b *dockerfile.Fragment, packageName string, packageURL string, saveDir string) error {
	if saveDir == "" {
		saveDir = "/tmp"
	}
	return b.Run(fmt.Sprintf("wget -qO %s.deb %s", path.Join(saveDir, packageName), packageURL))
}

// InstallPackageFromDeb installs a previously downloaded .deb file.
func InstallPackageFromDeb(b *dockerfile.Fragment, packageName string, packageDir string) error {
	if !strings.HasSuffix(packageName, ".deb") {
		packageName += ".deb"
	}
	if packageDir != "" {
		packageName = path.Join(packageDir, packageName)
	}
	return b.Run("dpkg -i " + packageName)
}

// ProjectDpkgInstall downloads a package with wget, installs it with dpkg,
// and removes the downloaded file.
func ProjectDpkgInstall(b *dockerfile.Fragment, workdir string, packageName string, packageURL string) error {
	steps := []error{
		WgetFromURL(b, packageName, packageURL, workdir),
		InstallPackageFromDeb(b, packageName, workdir),
		b.Run("rm -f " + path.Join(workdir, packageName) + ".deb"),
	}
	return firstError(steps)
}

func cleanupCommands(projectPath string, cleanup bool) []string {
	if !cleanup {
		return nil
	}
	// USER_NAME is undeclared in root builds; fall back to root at shell
	// expansion time.
	ownerTag := "${USER_NAME:-root}:${USER_NAME:-root}"
	return []string{
		fmt.Sprintf("(rm -rf %s || true)", projectPath),
		fmt.Sprintf("(sudo chown -f --recursive %s %s || true)", ownerTag, projectPath),
		fmt.Sprintf("rm -rf %s", projectPath),
	}
}
