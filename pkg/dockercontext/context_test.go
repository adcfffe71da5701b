package dockercontext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextPathBaseNameFallback(t *testing.T) {
	ctxPath, err := ContextPath("/some/deep/dir/script.sh", "")
	require.NoError(t, err)
	require.Equal(t, "script.sh", ctxPath)
}

func TestContextPathRelativeToRoot(t *testing.T) {
	ctxPath, err := ContextPath("/project/scripts/setup.sh", "/project")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("scripts", "setup.sh"), ctxPath)
}

func TestContextPathOutsideRoot(t *testing.T) {
	_, err := ContextPath("/elsewhere/file.txt", "/project")
	require.Error(t, err)
	require.Contains(t, err.Error(), "outside context root")
}

func TestAddSameHostPathTwice(t *testing.T) {
	c := New("")
	first, err := c.Add("/project/file.txt")
	require.NoError(t, err)
	second, err := c.Add("/project/file.txt")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, c.Len())
}

func TestAddCollision(t *testing.T) {
	c := New("")
	_, err := c.Add("/one/config.yaml")
	require.NoError(t, err)

	_, err = c.Add("/two/config.yaml")
	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	require.Equal(t, "config.yaml", collision.ContextPath)
	require.Equal(t, "/one/config.yaml", collision.Existing)
	require.Equal(t, "/two/config.yaml", collision.Incoming)
}

func TestContextRootAvoidsBaseNameCollision(t *testing.T) {
	c := New("/project")
	_, err := c.Add("/project/one/config.yaml")
	require.NoError(t, err)
	_, err = c.Add("/project/two/config.yaml")
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
}

func TestEntriesKeepInsertionOrder(t *testing.T) {
	c := New("/project")
	for _, p := range []string{"/project/c.txt", "/project/a.txt", "/project/b.txt"} {
		_, err := c.Add(p)
		require.NoError(t, err)
	}

	entries := c.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, "c.txt", entries[0].ContextPath)
	require.Equal(t, "a.txt", entries[1].ContextPath)
	require.Equal(t, "b.txt", entries[2].ContextPath)
}

func TestMergeLeavesReceiverUnchangedOnCollision(t *testing.T) {
	left := New("")
	_, err := left.Add("/one/config.yaml")
	require.NoError(t, err)

	right := New("")
	_, err = right.Add("/right/only.txt")
	require.NoError(t, err)
	_, err = right.Add("/two/config.yaml")
	require.NoError(t, err)

	var collision *CollisionError
	require.ErrorAs(t, left.Merge(right), &collision)
	require.Equal(t, 1, left.Len())
}

func TestMergeAbsorbsEntries(t *testing.T) {
	left := New("")
	_, err := left.Add("/one/a.txt")
	require.NoError(t, err)

	right := New("")
	_, err = right.Add("/one/a.txt")
	require.NoError(t, err)
	_, err = right.Add("/one/b.txt")
	require.NoError(t, err)

	require.NoError(t, left.Merge(right))
	require.Equal(t, 2, left.Len())
}

func TestStageFile(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "setup.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o755))

	c := New("")
	_, err := c.Add(src)
	require.NoError(t, err)
	require.NoError(t, c.Stage(destDir))

	contents, err := os.ReadFile(filepath.Join(destDir, "setup.sh"))
	require.NoError(t, err)
	require.Equal(t, "#!/bin/sh\n", string(contents))
}

func TestStageDirectoryHonorsDockerignore(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "keep.txt"), []byte("keep"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "drop.log"), []byte("drop"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, ".dockerignore"), []byte("*.log\n"), 0o644))

	c := New("")
	_, err := c.Add(srcDir)
	require.NoError(t, err)
	require.NoError(t, c.Stage(destDir))

	staged := filepath.Join(destDir, filepath.Base(srcDir))
	_, err = os.Stat(filepath.Join(staged, "keep.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(staged, "drop.log"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(staged, ".dockerignore"))
	require.True(t, os.IsNotExist(err))
}

func TestStageMissingHostPath(t *testing.T) {
	c := New("")
	_, err := c.Add(filepath.Join(t.TempDir(), "missing.txt"))
	require.NoError(t, err)

	err = c.Stage(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not exist")
}

func TestStageRejectsEscapingPaths(t *testing.T) {
	c := New("")
	c.entries["../escape.txt"] = "/host/escape.txt"
	c.order = append(c.order, "../escape.txt")

	err := c.Stage(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be relative")
}
