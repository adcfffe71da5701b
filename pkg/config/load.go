package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/apaolillo/gothainer/pkg/global"
	"github.com/apaolillo/gothainer/pkg/util/files"
)

const maxSearchDepth = 100

// ErrConfigNotFound is returned when no config file exists in the start
// directory or any of its parents.
var ErrConfigNotFound = errors.New("config file not found")

// Load walks up from startDir looking for the project config file and
// parses it. It returns the config and the project root directory housing
// the file.
func Load(startDir string) (*Config, string, error) {
	rootDir, err := findProjectRootDir(startDir, global.ConfigFilename)
	if err != nil {
		return nil, "", err
	}

	contents, err := os.ReadFile(path.Join(rootDir, global.ConfigFilename))
	if err != nil {
		return nil, "", err
	}

	config, err := FromYAML(contents)
	if err != nil {
		return nil, "", err
	}
	return config, rootDir, nil
}

// LoadOrDefault is Load, falling back to the default configuration rooted
// at startDir when no config file exists.
func LoadOrDefault(startDir string) (*Config, string, error) {
	config, rootDir, err := Load(startDir)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), startDir, nil
	}
	if err != nil {
		return nil, "", err
	}
	return config, rootDir, nil
}

// Walk up the directory tree to find the root of the project, defined as
// the directory housing the config file.
func findProjectRootDir(startDir string, configFilename string) (string, error) {
	dir := startDir
	for i := 0; i < maxSearchDepth; i++ {
		exists, err := files.Exists(path.Join(dir, configFilename))
		if err != nil {
			return "", fmt.Errorf("failed to scan directory %s: %w", dir, err)
		}
		if exists {
			return dir, nil
		}
		if dir == "." || dir == "/" {
			return "", fmt.Errorf("%w: %s not found in %s (or in any parent directories)",
				ErrConfigNotFound, configFilename, startDir)
		}
		dir = filepath.Dir(dir)
	}
	return "", fmt.Errorf("%w: no %s found in parent directories", ErrConfigNotFound, configFilename)
}
