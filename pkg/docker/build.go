package docker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apaolillo/gothainer/pkg/dockercontext"
	"github.com/apaolillo/gothainer/pkg/dockerfile"
)

// BuildOptions describes one docker build invocation.
type BuildOptions struct {
	DockerfilePath string
	ContextDir     string
	Tag            string

	// PassHostIDs adds UID/GID build arguments matching the calling user,
	// consumed by the user-creation preamble.
	PassHostIDs bool

	UseBuildKit bool
}

// BuildArgs returns the docker build argument list for the options.
func BuildArgs(opts BuildOptions) []string {
	args := []string{"build", "--file", opts.DockerfilePath}
	if opts.PassHostIDs {
		args = append(args,
			fmt.Sprintf("--build-arg=UID=%d", os.Getuid()),
			fmt.Sprintf("--build-arg=GID=%d", os.Getgid()))
	}
	return append(args, "--tag="+opts.Tag, opts.ContextDir)
}

// BuildEnv returns the environment docker build itself needs.
func BuildEnv(useBuildKit bool) []string {
	if useBuildKit {
		return []string{"BUILDKIT_PROGRESS=plain"}
	}
	return []string{"DOCKER_BUILDKIT=0"}
}

// Build runs docker build with the given options.
func Build(opts BuildOptions) error {
	return execDocker(BuildArgs(opts), opts.ContextDir, BuildEnv(opts.UseBuildKit))
}

// BuildImage renders the fragment, stages its build context into a fresh
// temporary directory under dir, and runs docker build there. When
// dockerfileSavePath is non-empty the rendered Dockerfile is additionally
// written to that path. The temporary directory is left in place for
// inspection; cleanup is the caller's choice.
func BuildImage(f *dockerfile.Fragment, dir string, dockerfileSavePath string) error {
	tmpDir, err := dockercontext.BuildTempDir(dir)
	if err != nil {
		return err
	}

	result, err := dockerfile.Render(f)
	if err != nil {
		return err
	}

	dockerfilePath := filepath.Join(tmpDir, "Dockerfile")
	paths := []string{dockerfilePath}
	if dockerfileSavePath != "" {
		paths = append(paths, dockerfileSavePath)
	}
	if err := result.Write(paths...); err != nil {
		return err
	}

	if err := result.Context.Stage(tmpDir); err != nil {
		return err
	}

	return Build(BuildOptions{
		DockerfilePath: dockerfilePath,
		ContextDir:     tmpDir,
		Tag:            f.Tag(),
		PassHostIDs:    true,
		UseBuildKit:    f.UseBuildKit(),
	})
}
