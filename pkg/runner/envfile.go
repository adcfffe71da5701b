package runner

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"
)

// LoadEnvFile merges a dotenv file into the runner's environment. Keys are
// applied in sorted order so repeated loads render identically; a key
// already present is overwritten (last writer wins), keeping its original
// flag position.
func (r *Runner) LoadEnvFile(path string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r.SetEnv(name, env[name])
	}
	return nil
}
