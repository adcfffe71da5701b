package dockercontext

import (
	"os"
	"path"
	"time"

	"github.com/apaolillo/gothainer/pkg/global"
)

func BuildArtifactsDirPath(dir string) (string, error) {
	tmpDir := path.Join(dir, global.BuildArtifactsFolder, "tmp")
	err := os.MkdirAll(tmpDir, 0o755)
	if err != nil {
		return "", err
	}
	return tmpDir, nil
}

// BuildTempDir creates a fresh per-build directory, something like
// dir/.gothainer/tmp/build20240620123456.000000. Cleanup is the caller's
// responsibility.
func BuildTempDir(dir string) (string, error) {
	rootTmp, err := BuildArtifactsDirPath(dir)
	if err != nil {
		return "", err
	}
	now := time.Now().Format("20060102150405.000000")
	tmpDir, err := os.MkdirTemp(rootTmp, "build"+now)
	if err != nil {
		return "", err
	}
	return tmpDir, nil
}
