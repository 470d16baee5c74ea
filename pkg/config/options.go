package config

import (
	"sort"
	"strings"
)

// Options is the per-run configuration threaded through every stage of a
// bump: where the workspace lives, which dependencies to touch, and whether
// the "Latest" column may be adopted. It is built once at the CLI boundary.
type Options struct {
	WorkingDir   string
	Targets      map[string]struct{}
	PreferLatest bool
}

// NewOptions builds Options from positional arguments. Arguments starting
// with "-" are not dependency names and are ignored; an empty target list
// selects every dependency.
//
// Parameters:
//   - workDir: Workspace root
//   - args: Dependency names from the command line
//   - preferLatest: Adopt regular "Latest" versions over "Wanted"
//
// Returns:
//   - Options: Ready-to-use run options
func NewOptions(workDir string, args []string, preferLatest bool) Options {
	targets := make(map[string]struct{}, len(args))
	for _, arg := range args {
		if arg == "" || strings.HasPrefix(arg, "-") {
			continue
		}
		targets[arg] = struct{}{}
	}
	return Options{
		WorkingDir:   workDir,
		Targets:      targets,
		PreferLatest: preferLatest,
	}
}

// IsTargeted reports whether dependency is selected by the target set.
func (o Options) IsTargeted(dependency string) bool {
	if len(o.Targets) == 0 {
		return true
	}
	_, ok := o.Targets[dependency]
	return ok
}

// TargetNames returns the target set sorted, for display.
func (o Options) TargetNames() []string {
	names := make([]string, 0, len(o.Targets))
	for name := range o.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
