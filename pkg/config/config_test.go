package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, "gothainer", c.Image)
	require.Equal(t, "gothainer", c.Container)
	require.Equal(t, "ubuntu:24.04", c.BaseImage)
	require.Equal(t, "user", c.UserName)
}

func TestFromYAML(t *testing.T) {
	c, err := FromYAML([]byte(`
image: myproject
base_image: ubuntu:22.04
builders:
  - opencl
runners:
  - gui
  - gpu
packages:
  - clang
env_file: .env
`))
	require.NoError(t, err)
	require.Equal(t, "myproject", c.Image)
	require.Equal(t, "myproject", c.Container)
	require.Equal(t, "ubuntu:22.04", c.BaseImage)
	require.Equal(t, []string{"opencl"}, c.Builders)
	require.Equal(t, []string{"gui", "gpu"}, c.Runners)
	require.Equal(t, []string{"clang"}, c.Packages)
	require.Equal(t, ".env", c.EnvFile)
}

func TestFromYAMLUnknownField(t *testing.T) {
	_, err := FromYAML([]byte("image: myproject\nbogus_field: true\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config")
}

func TestFromYAMLUnknownBuilder(t *testing.T) {
	_, err := FromYAML([]byte("builders:\n  - nonexistent\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown builder "nonexistent"`)
}

func TestFromYAMLUnknownRunner(t *testing.T) {
	_, err := FromYAML([]byte("runners:\n  - nonexistent\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown runner "nonexistent"`)
}

func TestLoadWalksUp(t *testing.T) {
	rootDir := t.TempDir()
	nested := filepath.Join(rootDir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(rootDir, "gothainer.yaml"),
		[]byte("image: walked\n"), 0o644))

	c, foundRoot, err := Load(nested)
	require.NoError(t, err)
	require.Equal(t, "walked", c.Image)
	require.Equal(t, rootDir, foundRoot)
}

func TestLoadNotFound(t *testing.T) {
	_, _, err := Load(t.TempDir())
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	dir := t.TempDir()
	c, rootDir, err := LoadOrDefault(dir)
	require.NoError(t, err)
	require.Equal(t, dir, rootDir)
	require.Equal(t, "gothainer", c.Image)
}
