// Package environment captures the process environment as an immutable
// name to value mapping.
package environment

import (
	"maps"
	"os"
	"slices"
	"strings"
)

type Snapshot struct {
	vars map[string]string
}

// Capture copies the current process environment. It always succeeds; an
// empty environment gives an empty snapshot.
func Capture() Snapshot {
	return FromPairs(os.Environ())
}

// FromPairs builds a snapshot from KEY=VALUE entries. Entries without '=' are
// skipped and a repeated key keeps its last value.
func FromPairs(pairs []string) Snapshot {
	vars := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		// windows keeps per-drive cwd entries like "=C:=C:\\"
		idx := strings.Index(pair[min(1, len(pair)):], "=")

		if idx == -1 {
			continue
		}
		idx += min(1, len(pair))

		vars[pair[:idx]] = pair[idx+1:]
	}

	return Snapshot{vars: vars}
}

func FromMap(m map[string]string) Snapshot {
	return Snapshot{vars: maps.Clone(m)}
}

func (s Snapshot) Lookup(name string) (string, bool) {
	value, ok := s.vars[name]
	return value, ok
}

func (s Snapshot) Len() int {
	return len(s.vars)
}

// Names returns the variable names in sorted order.
func (s Snapshot) Names() []string {
	return slices.Sorted(maps.Keys(s.vars))
}

func (s Snapshot) Map() map[string]string {
	out := make(map[string]string, len(s.vars))
	maps.Copy(out, s.vars)
	return out
}

// Instance returns a fresh JSON value for schema validation. Validators only
// accept map[string]any, so values are boxed.
func (s Snapshot) Instance() map[string]any {
	out := make(map[string]any, len(s.vars))

	for name, value := range s.vars {
		out[name] = value
	}

	return out
}
