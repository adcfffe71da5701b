package recipes

import (
	"sort"

	"github.com/apaolillo/gothainer/pkg/dockerfile"
	"github.com/apaolillo/gothainer/pkg/runner"
)

// BuilderFunc is a parameterless recipe producing a partial build fragment.
type BuilderFunc func() (*dockerfile.Fragment, error)

// RunnerFunc is a parameterless recipe producing a plain runner fragment.
type RunnerFunc func() (*runner.Runner, error)

var builderRecipes = map[string]BuilderFunc{
	"opencl": OpenCLBuilder,
	"vulkan": VulkanBuilder,
}

var runnerRecipes = map[string]RunnerFunc{
	"camera": CameraRunner,
	"gpu":    GPURunner,
	"gui":    func() (*runner.Runner, error) { return GUIRunner(true) },
	"personal": func() (*runner.Runner, error) {
		return PersonalRunner("")
	},
}

// Builder looks up a named partial builder recipe.
func Builder(name string) (BuilderFunc, bool) {
	fn, ok := builderRecipes[name]
	return fn, ok
}

// Runner looks up a named runner recipe.
func Runner(name string) (RunnerFunc, bool) {
	fn, ok := runnerRecipes[name]
	return fn, ok
}

// BuilderNames returns the available builder recipe names, sorted.
func BuilderNames() []string {
	return sortedKeys(builderRecipes)
}

// RunnerNames returns the available runner recipe names, sorted.
func RunnerNames() []string {
	return sortedKeys(runnerRecipes)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
