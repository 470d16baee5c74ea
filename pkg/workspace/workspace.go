package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/wsbump/pkg/cmdexec"
	"github.com/ajxudir/wsbump/pkg/config"
	"github.com/ajxudir/wsbump/pkg/errors"
	"github.com/ajxudir/wsbump/pkg/verbose"
)

// Mapping maps workspace names to locations relative to the project root,
// in the order they were discovered.
type Mapping struct {
	rootName  string
	locations *orderedmap.OrderedMap
}

// NewMapping creates a mapping holding only the root package.
func NewMapping(rootName string) *Mapping {
	m := &Mapping{rootName: rootName, locations: orderedmap.New()}
	m.locations.Set(rootName, "")
	return m
}

// Add records a workspace location. Re-adding a name replaces its location
// but keeps its original position.
func (m *Mapping) Add(name, location string) {
	m.locations.Set(name, filepath.ToSlash(location))
}

// RootName returns the name of the root package.
func (m *Mapping) RootName() string {
	return m.rootName
}

// Names returns the workspace names, root first.
func (m *Mapping) Names() []string {
	return m.locations.Keys()
}

// Len returns the number of entries, including the root.
func (m *Mapping) Len() int {
	return len(m.locations.Keys())
}

// Location returns the relative location of name.
func (m *Mapping) Location(name string) (string, bool) {
	v, ok := m.locations.Get(name)
	if !ok {
		return "", false
	}
	location, _ := v.(string)
	return location, true
}

// ManifestPath returns the manifest file of the named workspace.
//
// Parameters:
//   - workDir: Project root
//   - name: Workspace name as printed in the outdated report
//   - manifest: Manifest file name, e.g. package.json
//
// Returns:
//   - string: workDir/<location>/manifest
//   - error: UnknownWorkspaceError when name is not in the mapping
func (m *Mapping) ManifestPath(workDir, name, manifest string) (string, error) {
	location, ok := m.Location(name)
	if !ok {
		return "", &errors.UnknownWorkspaceError{Name: name}
	}
	return filepath.Join(workDir, filepath.FromSlash(location), manifest), nil
}

// rootManifest is the part of the root manifest the resolver needs.
type rootManifest struct {
	Name string `json:"name"`
}

// Resolver discovers the workspace mapping of a project.
type Resolver struct {
	Command        string
	Manifest       string
	Env            map[string]string
	TimeoutSeconds int
	Exec           cmdexec.ExecuteFunc
}

// NewResolver creates a resolver from the configuration. The command runner
// is read from cmdexec.Execute at construction time.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		Command:        cfg.Commands.Workspaces,
		Manifest:       cfg.Manifest,
		Env:            cfg.Commands.Env,
		TimeoutSeconds: cfg.Commands.TimeoutSeconds,
		Exec:           cmdexec.Execute,
	}
}

// Resolve reads the root package name and asks the package manager for the
// workspace locations.
//
// Parameters:
//   - ctx: Cancels the workspace-info command
//   - workDir: Project root
//
// Returns:
//   - *Mapping: Root package plus every workspace
//   - error: Root manifest missing or unnamed, command failure, or bad JSON
func (r *Resolver) Resolve(ctx context.Context, workDir string) (*Mapping, error) {
	rootName, err := ReadRootName(filepath.Join(workDir, r.Manifest))
	if err != nil {
		return nil, err
	}
	verbose.Printf("Root package: %s", rootName)

	res, err := r.Exec(ctx, r.Command, r.Env, workDir, r.TimeoutSeconds)
	if err != nil {
		return nil, &errors.CommandError{Command: r.Command, ExitCode: -1, Err: err}
	}
	if !res.Success() {
		return nil, &errors.CommandError{Command: r.Command, ExitCode: res.ExitCode, Output: res.Diagnostic()}
	}

	mapping := NewMapping(rootName)
	if err := ParseWorkspaceInfo(res.Stdout, mapping); err != nil {
		return nil, fmt.Errorf("%s: %w", r.Command, err)
	}
	verbose.Printf("Resolved %d workspaces (including root)", mapping.Len())

	return mapping, nil
}

// ReadRootName returns the "name" field of the manifest at path.
func ReadRootName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read root manifest: %w", err)
	}
	var manifest rootManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("failed to parse root manifest %s: %w", path, err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return "", fmt.Errorf("root manifest %s has no name", path)
	}
	return manifest.Name, nil
}

// ParseWorkspaceInfo adds the entries of a workspace-info JSON document to
// mapping, preserving their order.
//
// The document maps names to objects with a "location" string:
//
//	{"pkg-a": {"location": "packages/a", "workspaceDependencies": []}}
func ParseWorkspaceInfo(data []byte, mapping *Mapping) error {
	info := orderedmap.New()
	if err := json.Unmarshal(data, info); err != nil {
		return fmt.Errorf("invalid workspace info: %w", err)
	}

	for _, name := range info.Keys() {
		raw, _ := info.Get(name)
		location, err := extractLocation(raw)
		if err != nil {
			return fmt.Errorf("workspace %q: %w", name, err)
		}
		mapping.Add(name, location)
	}
	return nil
}

// extractLocation reads the "location" member of a decoded entry. Nested
// objects come back from orderedmap either as OrderedMap values or as plain
// maps depending on how they were produced.
func extractLocation(raw interface{}) (string, error) {
	var value interface{}
	var ok bool

	switch entry := raw.(type) {
	case orderedmap.OrderedMap:
		value, ok = entry.Get("location")
	case *orderedmap.OrderedMap:
		value, ok = entry.Get("location")
	case map[string]interface{}:
		value, ok = entry["location"]
	default:
		return "", fmt.Errorf("expected an object, got %T", raw)
	}

	if !ok {
		return "", fmt.Errorf("missing location")
	}
	location, isString := value.(string)
	if !isString {
		return "", fmt.Errorf("location must be a string, got %T", value)
	}
	return location, nil
}
