package dockerfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/apaolillo/gothainer/pkg/dockercontext"
)

// RenderResult is the complete output of rendering a fragment: the
// Dockerfile text and the build-context mapping its COPY instructions
// require. The mapping is consumed by a staging step before docker build
// runs.
type RenderResult struct {
	Dockerfile string
	Context    *dockercontext.Context
}

// Render walks the fragment's instructions in order and produces the final
// Dockerfile text. Rendering finalizes the fragment: appends and merges
// fail from here on.
//
// Rendering the same fragment twice yields byte-identical output. A COPY
// whose destination is already claimed by a different host path aborts the
// render with a *dockercontext.CollisionError.
func Render(f *Fragment) (*RenderResult, error) {
	f.finalized = true

	if len(f.instructions) == 0 {
		return nil, ErrEmptyFragment
	}
	if !hasBaseImage(f.instructions) {
		return nil, ErrNoBaseImage
	}

	ctx := dockercontext.New(f.contextRoot)
	var lines []string
	for _, inst := range f.instructions {
		rendered, err := renderInstruction(inst, f, ctx)
		if err != nil {
			return nil, err
		}
		lines = append(lines, rendered...)
	}

	content := strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
	return &RenderResult{Dockerfile: content, Context: ctx}, nil
}

// renderInstruction dispatches on the instruction kind. Copy and
// InstallPackages need fragment state (context root, package manager); all
// other variants render themselves.
func renderInstruction(inst Instruction, f *Fragment, ctx *dockercontext.Context) ([]string, error) {
	switch v := inst.(type) {
	case Copy:
		ctxPath, err := ctx.Add(v.HostPath)
		if err != nil {
			return nil, err
		}
		return v.lines(ctxPath), nil
	case InstallPackages:
		return installLines(f.packageManager, v.Packages)
	default:
		return inst.Lines(), nil
	}
}

func hasBaseImage(instructions []Instruction) bool {
	for _, inst := range instructions {
		if _, ok := inst.(FromImage); ok {
			return true
		}
	}
	return false
}

// Write writes the rendered Dockerfile to every given path, creating parent
// directories as needed.
func (r *RenderResult) Write(paths ...string) error {
	for _, path := range paths {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(r.Dockerfile), 0o644); err != nil {
			return err
		}
	}
	return nil
}
