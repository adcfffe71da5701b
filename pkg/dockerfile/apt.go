package dockerfile

import (
	"fmt"
	"sort"
)

// PackageManagerApt is the only package manager currently supported for
// InstallPackages instructions.
const PackageManagerApt = "apt"

// installLines renders an InstallPackages instruction for the given package
// manager.
func installLines(packageManager string, packages []string) ([]string, error) {
	switch packageManager {
	case PackageManagerApt:
		return aptInstallLines(packages), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPackageManager, packageManager)
	}
}

// aptInstallLines emits a single RUN layer updating the package index,
// installing the packages and clearing the index afterwards. Packages are
// sorted so identical sets render byte-identical output.
func aptInstallLines(packages []string) []string {
	sorted := append([]string(nil), packages...)
	sort.Strings(sorted)

	lines := []string{"RUN apt-get update && apt-get install -y --no-install-recommends \\"}
	for _, pkg := range sorted {
		lines = append(lines, "        "+pkg+" \\")
	}
	lines = append(lines, "    && rm -rf /var/lib/apt/lists/*")
	return lines
}
