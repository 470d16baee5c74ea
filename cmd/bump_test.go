package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/wsbump/pkg/constants"
	wserrors "github.com/ajxudir/wsbump/pkg/errors"
	"github.com/ajxudir/wsbump/pkg/outdated"
	"github.com/ajxudir/wsbump/pkg/output"
	"github.com/ajxudir/wsbump/pkg/testutil"
)

// TestBumpSelectsVersion runs the whole pipeline against a fixture project.
//
// It verifies:
//   - The wanted version is used by default
//   - -l and --latest switch to the latest version
//   - A prerelease latest falls back to the wanted version
//   - The range operator is kept
func TestBumpSelectsVersion(t *testing.T) {
	tests := []struct {
		name     string
		latest   string
		flags    []string
		expected string
	}{
		{"wanted by default", "2.0.0", nil, `"foo": "^1.1.0"`},
		{"short latest flag", "2.0.0", []string{"-l"}, `"foo": "^2.0.0"`},
		{"long latest flag", "2.0.0", []string{"--latest"}, `"foo": "^2.0.0"`},
		{"prerelease latest", "2.0.0-beta", []string{"-l"}, `"foo": "^1.1.0"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := singlePackageProject(t)
			fakeYarn(t, p, fooRow(tt.latest))

			args := append([]string{"-d", p.Dir()}, tt.flags...)
			stdout, _, err := runCLI(t, args...)
			require.NoError(t, err)

			assert.Contains(t, p.ReadManifest("packages/a"), tt.expected)
			assert.Contains(t, stdout, "Updated 1 of 1 dependencies in 1 manifest(s).")
		})
	}
}

// TestBumpLatestFlagParsing tests that -l is parsed as a flag rather than
// matched as a substring of any argument.
func TestBumpLatestFlagParsing(t *testing.T) {
	t.Run("flag after target", func(t *testing.T) {
		p := singlePackageProject(t)
		fakeYarn(t, p, fooRow("2.0.0"))

		_, _, err := runCLI(t, "-d", p.Dir(), "foo", "-l")
		require.NoError(t, err)
		assert.Contains(t, p.ReadManifest("packages/a"), `"foo": "^2.0.0"`)
	})

	t.Run("unknown combined shorthand", func(t *testing.T) {
		p := singlePackageProject(t)
		f := fakeYarn(t, p, fooRow("2.0.0"))
		before := p.ReadManifest("packages/a")

		_, _, err := runCLI(t, "-d", p.Dir(), "-la")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown shorthand flag: 'a' in -la")
		assert.Equal(t, wserrors.ExitFailure, wserrors.GetExitCode(err))
		assert.Equal(t, before, p.ReadManifest("packages/a"))
		assert.Empty(t, f.Calls())
	})
}

func TestBumpRunsCommandsInWorkingDir(t *testing.T) {
	p := singlePackageProject(t)
	fake := fakeYarn(t, p, fooRow("2.0.0"))

	_, _, err := runCLI(t, "-d", p.Dir())
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, workspacesCommand, calls[0].Command)
	assert.Equal(t, outdatedCommand, calls[1].Command)
	assert.Equal(t, p.Dir(), calls[1].Dir)
}

func TestBumpTargets(t *testing.T) {
	p := testutil.NewProject(t, "mono").
		WithWorkspace("pkg-a", "packages/a", "foo", "^1.0.0", "bar", "~2.0.0")
	p.Build()
	fakeYarn(t, p,
		fooRow("2.0.0"),
		outdated.Row{Dependency: "bar", Current: "2.0.0", Wanted: "2.0.5", Latest: "2.0.5", Workspace: "pkg-a"},
	)

	_, _, err := runCLI(t, "-d", p.Dir(), "bar")
	require.NoError(t, err)

	manifest := p.ReadManifest("packages/a")
	assert.Contains(t, manifest, `"bar": "~2.0.5"`)
	assert.Contains(t, manifest, `"foo": "^1.0.0"`)
}

func TestBumpUnknownTargetChangesNothing(t *testing.T) {
	p := singlePackageProject(t)
	fakeYarn(t, p, fooRow("2.0.0"))
	before := p.ReadManifest("packages/a")

	stdout, _, err := runCLI(t, "-d", p.Dir(), "not-a-dependency")
	require.NoError(t, err)

	assert.Equal(t, before, p.ReadManifest("packages/a"))
	assert.Contains(t, stdout, "Nothing to update.")
}

func TestBumpRootWorkspace(t *testing.T) {
	p := testutil.NewProject(t, "mono").WithRootDependency("lint", "^4.0.0")
	p.Build()
	fakeYarn(t, p, outdated.Row{Dependency: "lint", Current: "4.0.0", Wanted: "4.2.1", Latest: "5.0.0", Workspace: "mono"})

	_, _, err := runCLI(t, "-d", p.Dir())
	require.NoError(t, err)
	assert.Contains(t, p.ReadManifest(""), `"lint": "^4.2.1"`)
}

func TestBumpDryRun(t *testing.T) {
	p := singlePackageProject(t)
	fakeYarn(t, p, fooRow("2.0.0"))
	before := p.ReadManifest("packages/a")

	stdout, _, err := runCLI(t, "-d", p.Dir(), "--dry-run")
	require.NoError(t, err)

	assert.Equal(t, before, p.ReadManifest("packages/a"))
	assert.Contains(t, stdout, constants.StatusPlanned)
	assert.Contains(t, stdout, "Would update 1 of 1 dependencies.")
}

func TestBumpNoUpdates(t *testing.T) {
	p := singlePackageProject(t)
	fakeYarn(t, p)
	before := p.ReadManifest("packages/a")

	stdout, _, err := runCLI(t, "-d", p.Dir())
	require.NoError(t, err)

	assert.Equal(t, before, p.ReadManifest("packages/a"))
	assert.Equal(t, "No outdated dependencies.\n", stdout)
}

func TestBumpReportOnStderr(t *testing.T) {
	p := singlePackageProject(t)
	testutil.NewFakeExecutor().
		On(workspacesCommand, 0, p.WorkspacesInfo(), "").
		On(outdatedCommand, 1, "", testutil.OutdatedReport(fooRow("2.0.0"))).
		Install(t)

	_, _, err := runCLI(t, "-d", p.Dir())
	require.NoError(t, err)
	assert.Contains(t, p.ReadManifest("packages/a"), `"foo": "^1.1.0"`)
}

// TestBumpOutdatedInvocationFailed tests a failing outdated command.
//
// It verifies:
//   - The run succeeds with a warning instead of an error
//   - No manifest is changed
func TestBumpOutdatedInvocationFailed(t *testing.T) {
	p := singlePackageProject(t)
	testutil.NewFakeExecutor().
		On(workspacesCommand, 0, p.WorkspacesInfo(), "").
		On(outdatedCommand, 1, "", "error Couldn't find a package.json file\n").
		Install(t)
	before := p.ReadManifest("packages/a")

	stdout, stderr, err := runCLI(t, "-d", p.Dir())
	require.NoError(t, err)

	assert.Equal(t, before, p.ReadManifest("packages/a"))
	assert.Contains(t, stderr, "Outdated check failed")
	assert.Contains(t, stderr, "Couldn't find a package.json file")
	assert.Contains(t, stdout, "no manifests were changed")
}

func TestBumpOutdatedMissingBinary(t *testing.T) {
	p := singlePackageProject(t)
	testutil.NewFakeExecutor().On(workspacesCommand, 0, p.WorkspacesInfo(), "").Install(t)

	_, stderr, err := runCLI(t, "-d", p.Dir())
	require.NoError(t, err)
	assert.Contains(t, stderr, "exited with status 127")
}

func TestBumpWorkspaceResolutionFails(t *testing.T) {
	p := singlePackageProject(t)
	testutil.NewFakeExecutor().OnError(workspacesCommand, errors.New("yarn: not installed")).Install(t)

	_, _, err := runCLI(t, "-d", p.Dir())
	require.Error(t, err)
	assert.Equal(t, wserrors.ExitFailure, wserrors.GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to resolve workspaces")
}

func TestBumpUnknownWorkspace(t *testing.T) {
	p := singlePackageProject(t)
	fakeYarn(t, p, outdated.Row{Dependency: "x", Current: "1.0.0", Wanted: "1.0.1", Latest: "1.0.1", Workspace: "ghost"})

	_, _, err := runCLI(t, "-d", p.Dir())
	require.Error(t, err)
	assert.Equal(t, wserrors.ExitFailure, wserrors.GetExitCode(err))
	assert.Contains(t, err.Error(), `workspace "ghost" is not part of this project`)
}

func TestBumpJSONOutput(t *testing.T) {
	p := singlePackageProject(t)
	fakeYarn(t, p, fooRow("2.0.0"))

	stdout, _, err := runCLI(t, "-d", p.Dir(), "-o", "json")
	require.NoError(t, err)

	var result output.BumpResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, output.OutcomeUpdated, result.Summary.Outcome)
	require.Len(t, result.Packages, 1)
	assert.Equal(t, output.BumpPackage{
		Workspace: "pkg-a",
		Manifest:  "packages/a/package.json",
		Name:      "foo",
		Current:   "1.0.0",
		New:       "1.1.0",
		Bump:      outdated.BumpMinor,
		Status:    constants.StatusUpdated,
	}, result.Packages[0])
}

func TestBumpJSONOutputCollectsWarnings(t *testing.T) {
	p := singlePackageProject(t)
	testutil.NewFakeExecutor().On(workspacesCommand, 0, p.WorkspacesInfo(), "").Install(t)

	stdout, stderr, err := runCLI(t, "-d", p.Dir(), "--output", "json")
	require.NoError(t, err)

	var result output.BumpResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, output.OutcomeInvocationFailed, result.Summary.Outcome)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Outdated check failed")
	assert.NotContains(t, stderr, "Outdated check failed")
}

func TestBumpCSVOutput(t *testing.T) {
	p := singlePackageProject(t)
	fakeYarn(t, p, fooRow("2.0.0"))

	stdout, _, err := runCLI(t, "-d", p.Dir(), "-o", "csv", "-l")
	require.NoError(t, err)
	assert.Equal(t,
		"WORKSPACE,MANIFEST,PACKAGE,CURRENT,NEW,BUMP,STATUS\npkg-a,packages/a/package.json,foo,1.0.0,2.0.0,major,Updated\n",
		stdout)
}

func TestBumpConfigErrors(t *testing.T) {
	t.Run("unsupported output", func(t *testing.T) {
		_, _, err := runCLI(t, "-o", "xml")
		require.Error(t, err)
		assert.Equal(t, wserrors.ExitConfigError, wserrors.GetExitCode(err))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, _, err := runCLI(t, "-d", filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Equal(t, wserrors.ExitConfigError, wserrors.GetExitCode(err))
	})

	t.Run("invalid config file", func(t *testing.T) {
		p := singlePackageProject(t)
		require.NoError(t, os.WriteFile(filepath.Join(p.Dir(), ".wsbump.yml"), []byte("bogus: true\n"), 0o644))

		_, _, err := runCLI(t, "-d", p.Dir())
		require.Error(t, err)
		assert.Equal(t, wserrors.ExitConfigError, wserrors.GetExitCode(err))
	})
}

func TestBumpConfiguredCommands(t *testing.T) {
	p := singlePackageProject(t)
	config := "commands:\n  outdated: yarn outdated --json-free\n  env:\n    CI: \"1\"\nupdate:\n  prefer_latest: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(p.Dir(), ".wsbump.yml"), []byte(config), 0o644))

	fake := testutil.NewFakeExecutor().
		On(workspacesCommand, 0, p.WorkspacesInfo(), "").
		On("yarn outdated --json-free", 1, testutil.OutdatedReport(fooRow("2.0.0")), "").
		Install(t)

	_, _, err := runCLI(t, "-d", p.Dir())
	require.NoError(t, err)

	assert.Contains(t, p.ReadManifest("packages/a"), `"foo": "^2.0.0"`)
	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, map[string]string{"CI": "1"}, calls[1].Env)
}

func TestBumpVerbose(t *testing.T) {
	p := singlePackageProject(t)
	fakeYarn(t, p, fooRow("2.0.0"))

	_, stderr, err := runCLI(t, "-d", p.Dir(), "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[DEBUG]")
}
