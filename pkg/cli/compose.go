package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apaolillo/gothainer/pkg/config"
	"github.com/apaolillo/gothainer/pkg/dockerfile"
	"github.com/apaolillo/gothainer/pkg/recipes"
	"github.com/apaolillo/gothainer/pkg/runner"
)

// composeBuilder assembles the image fragment for a project: the base user
// builder, then every named builder recipe in order, finishing back as the
// build user in the workspace directory.
func composeBuilder(cfg *config.Config, rootDir string) (*dockerfile.Fragment, error) {
	opts := recipes.UserBuilderOptions{
		UserName: cfg.UserName,
		UID:      os.Getuid(),
		GID:      os.Getgid(),
		Packages: cfg.Packages,
	}
	b, err := recipes.UserGUIBuilder(cfg.Image, cfg.BaseImage, opts)
	if err != nil {
		return nil, err
	}

	for _, name := range cfg.Builders {
		fn, ok := recipes.Builder(name)
		if !ok {
			return nil, fmt.Errorf("unknown builder %q, available: %v", name, recipes.BuilderNames())
		}
		partial, err := fn()
		if err != nil {
			return nil, fmt.Errorf("builder %q: %w", name, err)
		}

		steps := []error{
			b.Space(),
			b.Comment("Build " + name),
			b.Workdir(opts.LibrariesDir()),
			b.Merge(partial),
		}
		for _, err := range steps {
			if err != nil {
				return nil, fmt.Errorf("builder %q: %w", name, err)
			}
		}
	}

	steps := []error{b.Space()}
	if opts.RootUser() {
		steps = append(steps, b.Root())
	} else {
		steps = append(steps, b.User(""))
	}
	steps = append(steps, b.Workdir(opts.WorkspaceDir()))
	for _, err := range steps {
		if err != nil {
			return nil, err
		}
	}

	if cfg.ContextRoot != "" {
		b.SetContextRoot(cfg.ContextRoot)
	} else {
		b.SetContextRoot(rootDir)
	}

	return b, nil
}

// composeRunner assembles the concrete runner for a project, merging every
// named runner recipe in order and loading the optional env file.
func composeRunner(cfg *config.Config, rootDir string) (*runner.Runner, error) {
	r := runner.NewConcreteRunner(cfg.Image, cfg.Container)

	for _, name := range cfg.Runners {
		fn, ok := recipes.Runner(name)
		if !ok {
			return nil, fmt.Errorf("unknown runner %q, available: %v", name, recipes.RunnerNames())
		}
		partial, err := fn()
		if err != nil {
			return nil, fmt.Errorf("runner %q: %w", name, err)
		}
		if err := r.Merge(partial); err != nil {
			return nil, fmt.Errorf("runner %q: %w", name, err)
		}
	}

	if cfg.EnvFile != "" {
		path := cfg.EnvFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(rootDir, path)
		}
		if err := r.LoadEnvFile(path); err != nil {
			return nil, err
		}
	}

	return r, nil
}
