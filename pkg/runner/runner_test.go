package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeOtherWins(t *testing.T) {
	left := New()
	left.SetEnv("FOO", "1")

	right := New()
	right.SetEnv("FOO", "2")
	right.SetEnv("BAR", "3")

	require.NoError(t, left.Merge(right))

	flags := left.Flags()
	require.Equal(t, []string{"--env=FOO=2", "--env=BAR=3"}, flags)
}

func TestMergeKeepsFirstSeenPosition(t *testing.T) {
	left := New()
	left.SetEnv("A", "first")
	left.SetEnv("B", "second")

	right := New()
	right.SetEnv("A", "updated")

	require.NoError(t, left.Merge(right))
	require.Equal(t, []string{"--env=A=updated", "--env=B=second"}, left.Flags())
}

func TestMergeDoesNotAlias(t *testing.T) {
	left := New()
	right := New()
	right.SetEnv("FOO", "1")
	require.NoError(t, left.Merge(right))

	right.SetEnv("BAR", "2")
	require.Equal(t, []string{"--env=FOO=1"}, left.Flags())
	require.Equal(t, []string{"--env=FOO=1", "--env=BAR=2"}, right.Flags())
}

func TestMergeRejectsConcreteRunner(t *testing.T) {
	left := New()
	concrete := NewConcreteRunner("myimage", "mycontainer")

	require.ErrorIs(t, left.Merge(concrete), ErrMergeKind)
	require.Empty(t, left.Flags())
}

func TestConcreteRunnerAbsorbsPlainRunner(t *testing.T) {
	concrete := NewConcreteRunner("myimage", "mycontainer")
	plain := New()
	plain.SetEnv("DISPLAY", ":0")

	require.NoError(t, concrete.Merge(plain))
	require.Contains(t, concrete.Flags(), "--env=DISPLAY=:0")
}

func TestAddDeviceDeduplicates(t *testing.T) {
	r := New()
	r.AddDevice("/dev/video0")
	r.AddDevice("/dev/video1")
	r.AddDevice("/dev/video0")
	require.Equal(t, []string{"/dev/video0", "/dev/video1"}, r.devices)
}

func TestFlagsCategoryOrder(t *testing.T) {
	dir := t.TempDir()
	device := filepath.Join(dir, "event0")
	require.NoError(t, os.WriteFile(device, nil, 0o644))

	r := New()
	r.AddOptions("--privileged")
	r.AddDevice(device)
	r.AddVolume("/tmp/.X11-unix", "/tmp/.X11-unix")
	r.SetEnv("DISPLAY", ":0")

	require.Equal(t, []string{
		"--env=DISPLAY=:0",
		"--volume=/tmp/.X11-unix:/tmp/.X11-unix",
		"--device=" + device,
		"--privileged",
	}, r.Flags())
}

func TestFlagsSkipMissingDevices(t *testing.T) {
	r := New()
	r.AddDevice(filepath.Join(t.TempDir(), "missing-device"))
	require.Empty(t, r.Flags())
}

func TestConcreteCommand(t *testing.T) {
	r := NewConcreteRunner("myimage", "mycontainer",
		WithNetwork("mynet"),
		WithWorkdir("/work"),
		WithUser(1000, 1000))
	r.SetEnv("FOO", "bar")

	command := r.Command()
	joined := strings.Join(command, " ")
	require.Equal(t, []string{"docker", "run", "--rm", "--tty", "--interactive"}, command[:5])
	require.Contains(t, joined, "--env=FOO=bar")
	require.Contains(t, joined, "--name=mycontainer")
	require.Contains(t, joined, "--hostname=myimage")
	require.Contains(t, joined, "--network=mynet")
	require.Contains(t, joined, "--add-host=myimage:127.0.1.1")
	require.Contains(t, joined, "--workdir=/work")
	require.Contains(t, joined, "--user=1000:1000")
	require.Equal(t, "myimage", command[len(command)-1])
}

func TestConcreteCommandAsRoot(t *testing.T) {
	r := NewConcreteRunner("myimage", "mycontainer", WithRoot())
	require.NotContains(t, strings.Join(r.Command(), " "), "--user=")
}

func TestPlainCommandOmitsConcreteFlags(t *testing.T) {
	r := New()
	r.SetEnv("FOO", "bar")

	command := r.Command()
	joined := strings.Join(command, " ")
	require.NotContains(t, joined, "--name=")
	require.NotContains(t, joined, "--hostname=")
	require.NotContains(t, joined, "--tty")
	require.Equal(t, []string{"docker", "run", "--rm", "--env=FOO=bar"}, command)
}

func TestCommandIsDeterministic(t *testing.T) {
	build := func() *Runner {
		r := NewConcreteRunner("myimage", "mycontainer", WithUser(1000, 1000))
		r.SetEnv("B", "2")
		r.SetEnv("A", "1")
		r.AddVolume("/host/a", "/a")
		r.AddVolume("/host/b", "/b")
		return r
	}
	require.Equal(t, build().Command(), build().Command())
}
