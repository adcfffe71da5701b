// Package dockercontext maps host paths referenced by COPY instructions to
// context-relative destinations and materializes them into a build context
// directory for docker build to consume.
package dockercontext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apaolillo/gothainer/pkg/dockerignore"
	"github.com/apaolillo/gothainer/pkg/util/files"
)

// Entry is one staged path: a host file or directory and the relative
// destination it gets inside the build context.
type Entry struct {
	HostPath    string
	ContextPath string
}

// Context accumulates host path -> context-relative path mappings. It is
// created fresh for each render and discarded once staging completes.
//
// The mapping is injective: two different host paths may never claim the
// same destination. Destinations are computed relative to the context root
// when one is set, and fall back to the host path's base name otherwise.
type Context struct {
	contextRoot string
	entries     map[string]string // ctxPath -> hostPath
	order       []string
}

// New returns an empty context. contextRoot may be empty, in which case
// destinations default to base names.
func New(contextRoot string) *Context {
	return &Context{
		contextRoot: contextRoot,
		entries:     map[string]string{},
	}
}

// ContextPath computes the destination hostPath would get in a context with
// the given root, without registering it.
func ContextPath(hostPath string, contextRoot string) (string, error) {
	if contextRoot == "" {
		return filepath.Base(hostPath), nil
	}
	rel, err := filepath.Rel(contextRoot, hostPath)
	if err != nil {
		return "", fmt.Errorf("%s is not relative to context root %s: %w", hostPath, contextRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside context root %s", hostPath, contextRoot)
	}
	return rel, nil
}

// Add registers a host path and returns its context-relative destination.
// Registering the same host path twice is a no-op; a different host path
// resolving to an already-claimed destination fails with a *CollisionError.
func (c *Context) Add(hostPath string) (string, error) {
	ctxPath, err := ContextPath(hostPath, c.contextRoot)
	if err != nil {
		return "", err
	}

	if existing, ok := c.entries[ctxPath]; ok {
		if existing != hostPath {
			return "", &CollisionError{
				ContextPath: ctxPath,
				Existing:    existing,
				Incoming:    hostPath,
			}
		}
		return ctxPath, nil
	}

	c.entries[ctxPath] = hostPath
	c.order = append(c.order, ctxPath)
	return ctxPath, nil
}

// Merge absorbs all of other's entries. The receiver is left unchanged when
// any entry would collide.
func (c *Context) Merge(other *Context) error {
	for _, ctxPath := range other.order {
		if existing, ok := c.entries[ctxPath]; ok && existing != other.entries[ctxPath] {
			return &CollisionError{
				ContextPath: ctxPath,
				Existing:    existing,
				Incoming:    other.entries[ctxPath],
			}
		}
	}
	for _, ctxPath := range other.order {
		if _, ok := c.entries[ctxPath]; !ok {
			c.entries[ctxPath] = other.entries[ctxPath]
			c.order = append(c.order, ctxPath)
		}
	}
	return nil
}

// Entries returns the registered mappings in first-added order.
func (c *Context) Entries() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, ctxPath := range c.order {
		entries = append(entries, Entry{
			HostPath:    c.entries[ctxPath],
			ContextPath: ctxPath,
		})
	}
	return entries
}

// Len returns the number of registered mappings.
func (c *Context) Len() int {
	return len(c.order)
}

// Stage copies every registered host path into destDir at its assigned
// relative destination. Directories are copied recursively, honoring their
// .dockerignore when present. Destinations must stay inside destDir: absolute
// paths and ".." components are rejected.
func (c *Context) Stage(destDir string) error {
	for _, entry := range c.Entries() {
		if err := stageEntry(entry, destDir); err != nil {
			return err
		}
	}
	return nil
}

func stageEntry(entry Entry, destDir string) error {
	if filepath.IsAbs(entry.ContextPath) || hasDotDot(entry.ContextPath) {
		return fmt.Errorf("invalid context path (must be relative, no '..'): %s", entry.ContextPath)
	}

	exists, err := files.Exists(entry.HostPath)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("host path does not exist: %s", entry.HostPath)
	}

	dest := filepath.Join(destDir, entry.ContextPath)

	isDir, err := files.IsDir(entry.HostPath)
	if err != nil {
		return err
	}
	if isDir {
		return stageDir(entry.HostPath, dest)
	}

	if err := ensureParent(dest); err != nil {
		return err
	}
	return files.CopyFile(entry.HostPath, dest)
}

func stageDir(src string, dest string) error {
	matcher, err := dockerignore.CreateMatcher(src)
	if err != nil {
		return err
	}
	return dockerignore.Walk(src, matcher, func(path string, info os.FileInfo, _ error) error {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if err := ensureParent(target); err != nil {
			return err
		}
		return files.CopyFile(path, target)
	})
}

func ensureParent(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func hasDotDot(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
