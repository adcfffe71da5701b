package dockerfile

import "strings"

// MountOption is a single key=value option of a RUN --mount clause. An
// option with an empty value encodes a bare boolean key (BuildKit emits
// `rw` rather than `rw=true`).
type MountOption struct {
	Key   string
	Value string
}

// RunMount models one BuildKit mount clause of a RUN instruction,
//
//	RUN --mount=type=cache,target=/root/.cache/pip pip install ...
//
// Options keep their insertion order so the flag renders deterministically.
type RunMount struct {
	Type    string
	Options []MountOption
}

// With returns a copy of the mount with key=value appended.
func (m RunMount) With(key string, value string) RunMount {
	options := append(append([]MountOption(nil), m.Options...), MountOption{Key: key, Value: value})
	return RunMount{Type: m.Type, Options: options}
}

// WithFlag returns a copy of the mount with a bare boolean key appended.
func (m RunMount) WithFlag(key string) RunMount {
	return m.With(key, "")
}

// Flag renders the full --mount= expression.
func (m RunMount) Flag() string {
	parts := []string{"type=" + m.Type}
	for _, opt := range m.Options {
		if opt.Value == "" {
			parts = append(parts, opt.Key)
		} else {
			parts = append(parts, opt.Key+"="+opt.Value)
		}
	}
	return "--mount=" + strings.Join(parts, ",")
}

// CacheMount mounts a persistent cache directory at target.
func CacheMount(target string) RunMount {
	return RunMount{Type: "cache", Options: []MountOption{{Key: "target", Value: target}}}
}

// BindMount bind-mounts a context or stage path at target, read-only unless
// extended with WithFlag("rw").
func BindMount(target string, source string) RunMount {
	return RunMount{Type: "bind", Options: []MountOption{
		{Key: "target", Value: target},
		{Key: "source", Value: source},
	}}
}

// TmpfsMount mounts an in-memory filesystem at target.
func TmpfsMount(target string) RunMount {
	return RunMount{Type: "tmpfs", Options: []MountOption{{Key: "target", Value: target}}}
}

// SecretMount exposes the build secret with the given id.
func SecretMount(id string) RunMount {
	return RunMount{Type: "secret", Options: []MountOption{{Key: "id", Value: id}}}
}

// SSHMount forwards the client's SSH agent into the build step.
func SSHMount() RunMount {
	return RunMount{Type: "ssh"}
}

// RunWithMounts appends a RUN instruction with BuildKit mount clauses.
func (f *Fragment) RunWithMounts(command string, mounts ...RunMount) error {
	flags := make([]string, 0, len(mounts))
	for _, m := range mounts {
		flags = append(flags, m.Flag())
	}
	return f.Run(strings.Join(append(flags, command), " "))
}
