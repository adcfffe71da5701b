package docker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apaolillo/gothainer/pkg/dockerfile"
	"github.com/apaolillo/gothainer/pkg/runner"
)

func TestBuildArgs(t *testing.T) {
	args := BuildArgs(BuildOptions{
		DockerfilePath: "/tmp/build/Dockerfile",
		ContextDir:     "/tmp/build",
		Tag:            "myimage",
	})
	require.Equal(t, []string{
		"build",
		"--file", "/tmp/build/Dockerfile",
		"--tag=myimage",
		"/tmp/build",
	}, args)
}

func TestBuildArgsWithHostIDs(t *testing.T) {
	args := BuildArgs(BuildOptions{
		DockerfilePath: "Dockerfile",
		ContextDir:     ".",
		Tag:            "myimage",
		PassHostIDs:    true,
	})
	joined := strings.Join(args, " ")
	require.Contains(t, joined, "--build-arg=UID=")
	require.Contains(t, joined, "--build-arg=GID=")
}

func TestBuildEnv(t *testing.T) {
	require.Equal(t, []string{"BUILDKIT_PROGRESS=plain"}, BuildEnv(true))
	require.Equal(t, []string{"DOCKER_BUILDKIT=0"}, BuildEnv(false))
}

func TestBuildScript(t *testing.T) {
	f := dockerfile.NewUbuntuFragment("myimage", "ubuntu:24.04")

	script := BuildScript(f)
	require.Equal(t, `#!/bin/sh
set -ex

export BUILDKIT_PROGRESS=plain

docker build \
    --file Dockerfile \
    --build-arg=UID=$(id -u) \
    --build-arg=GID=$(id -g) \
    --tag=myimage \
    .
`, script)
}

func TestBuildScriptWithoutBuildKit(t *testing.T) {
	f := dockerfile.NewUbuntuFragment("myimage", "ubuntu:24.04")
	f.SetUseBuildKit(false)

	require.Contains(t, BuildScript(f), "export DOCKER_BUILDKIT=0")
}

func TestRunScript(t *testing.T) {
	r := runner.NewConcreteRunner("myimage", "mycontainer", runner.WithUser(1000, 1000))

	script := RunScript(r)
	require.True(t, strings.HasPrefix(script, "#!/bin/sh\nset -ex\n\ndocker run \\\n"))
	require.Contains(t, script, "    --name=mycontainer \\\n")
	require.Contains(t, script, "    --user=1000:1000 \\\n")
	require.Contains(t, script, "    myimage \\\n")
	require.True(t, strings.HasSuffix(script, "    \"$@\"\n"))
}

func TestRunScriptIsDeterministic(t *testing.T) {
	build := func() string {
		r := runner.NewConcreteRunner("myimage", "mycontainer", runner.WithUser(1000, 1000))
		r.SetEnv("DISPLAY", ":0")
		r.AddVolume("/tmp/.X11-unix", "/tmp/.X11-unix")
		return RunScript(r)
	}
	require.Equal(t, build(), build())
}

func TestWriteScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scripts", "build.sh")
	require.NoError(t, WriteScript("#!/bin/sh\necho hello\n", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "#!/bin/sh\necho hello\n", string(contents))
}
