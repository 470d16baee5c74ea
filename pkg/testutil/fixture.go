package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/wsbump/pkg/outdated"
)

// Project builds a yarn workspace project on disk.
type Project struct {
	t          *testing.T
	dir        string
	rootName   string
	rootDeps   *orderedmap.OrderedMap
	workspaces []workspaceFixture
}

type workspaceFixture struct {
	name     string
	location string
	deps     *orderedmap.OrderedMap
}

// NewProject starts a project rooted in a fresh temporary directory.
func NewProject(t *testing.T, rootName string) *Project {
	t.Helper()
	return &Project{t: t, dir: t.TempDir(), rootName: rootName, rootDeps: orderedmap.New()}
}

// WithRootDependency declares dependency in the root manifest's
// dependencies section.
func (p *Project) WithRootDependency(name, version string) *Project {
	p.rootDeps.Set(name, version)
	return p
}

// WithWorkspace adds a workspace at location with the given dependencies,
// given as name/version pairs.
func (p *Project) WithWorkspace(name, location string, deps ...string) *Project {
	if len(deps)%2 != 0 {
		p.t.Fatalf("WithWorkspace(%s): dependencies must be name/version pairs", name)
	}
	m := orderedmap.New()
	for i := 0; i < len(deps); i += 2 {
		m.Set(deps[i], deps[i+1])
	}
	p.workspaces = append(p.workspaces, workspaceFixture{name: name, location: location, deps: m})
	return p
}

// Build writes every manifest and returns the project root.
func (p *Project) Build() string {
	p.t.Helper()
	p.writeManifest("", p.rootName, p.rootDeps, true)
	for _, ws := range p.workspaces {
		p.writeManifest(ws.location, ws.name, ws.deps, false)
	}
	return p.dir
}

// Dir returns the project root.
func (p *Project) Dir() string {
	return p.dir
}

// ManifestPath returns the manifest of the workspace at location.
func (p *Project) ManifestPath(location string) string {
	return filepath.Join(p.dir, filepath.FromSlash(location), "package.json")
}

// ReadManifest returns the manifest text of the workspace at location.
func (p *Project) ReadManifest(location string) string {
	p.t.Helper()
	data, err := os.ReadFile(p.ManifestPath(location))
	require.NoError(p.t, err)
	return string(data)
}

// WorkspacesInfo returns what `yarn -s workspaces info` prints for the
// project.
func (p *Project) WorkspacesInfo() string {
	info := orderedmap.New()
	for _, ws := range p.workspaces {
		entry := orderedmap.New()
		entry.Set("location", ws.location)
		entry.Set("workspaceDependencies", []string{})
		entry.Set("mismatchedWorkspaceDependencies", []string{})
		info.Set(ws.name, entry)
	}
	data, err := json.MarshalIndent(info, "", "  ")
	require.NoError(p.t, err)
	return string(data) + "\n"
}

func (p *Project) writeManifest(location, name string, deps *orderedmap.OrderedMap, root bool) {
	p.t.Helper()

	manifest := orderedmap.New()
	manifest.Set("name", name)
	manifest.Set("version", "1.0.0")
	if root {
		manifest.Set("private", true)
		locations := make([]string, 0, len(p.workspaces))
		for _, ws := range p.workspaces {
			locations = append(locations, ws.location)
		}
		manifest.Set("workspaces", locations)
	}
	if len(deps.Keys()) > 0 {
		manifest.Set("dependencies", deps)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	require.NoError(p.t, err)

	path := p.ManifestPath(location)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, os.WriteFile(path, append(data, '\n'), 0o644))
}

// OutdatedReport renders rows the way yarn v1 prints `yarn outdated` for a
// workspace project, header and footer included.
func OutdatedReport(rows ...outdated.Row) string {
	var sb strings.Builder
	sb.WriteString("yarn outdated v1.22.19\n")
	sb.WriteString("info Color legend : \n")
	sb.WriteString(" \"<red>\"    : Major Update backward-incompatible updates \n")
	sb.WriteString(" \"<yellow>\" : Minor Update backward-compatible features \n")
	sb.WriteString(" \"<green>\"  : Patch Update backward-compatible bug fixes\n")
	sb.WriteString("Package Current Wanted Latest Workspace Package Type URL\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s %s %s %s %s dependencies https://example.invalid/%s\n",
			r.Dependency, r.Current, r.Wanted, r.Latest, r.Workspace, r.Dependency))
	}
	sb.WriteString("Done in 0.42s.\n")
	return sb.String()
}
