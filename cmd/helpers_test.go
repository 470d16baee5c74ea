package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/ajxudir/wsbump/pkg/outdated"
	"github.com/ajxudir/wsbump/pkg/testutil"
	"github.com/ajxudir/wsbump/pkg/verbose"
)

const (
	workspacesCommand = "yarn -s workspaces info"
	outdatedCommand   = "yarn outdated"
)

// resetFlags puts every package-level flag back to its default, now and
// when the test ends. pflag only assigns flags that appear on the command
// line, so values would otherwise leak between runs.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		verboseFlag = false
		versionFlag = false
		latestFlag = false
		dryRunFlag = false
		directoryFlag = "."
		configFlag = ""
		outputFlag = ""
		configShowDefaultsFlag = false
		configShowEffectiveFlag = false
		configInitFlag = false
		configValidateFlag = false
	}
	reset()
	t.Cleanup(func() {
		reset()
		verbose.Disable()
		verbose.SetWriter(os.Stderr)
	})
}

// runCLI executes the root command with args and returns what it printed.
// Warnings and debug lines are captured together with stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	testutil.RedirectDiagnostics(t, &stderr)

	err := ExecuteTest(args...)
	return stdout.String(), stderr.String(), err
}

// singlePackageProject is the canonical fixture: one workspace "pkg-a" that
// depends on foo ^1.0.0.
func singlePackageProject(t *testing.T) *testutil.Project {
	t.Helper()
	p := testutil.NewProject(t, "mono").WithWorkspace("pkg-a", "packages/a", "foo", "^1.0.0")
	p.Build()
	return p
}

// fakeYarn scripts the two yarn commands for project p and installs the
// fake executor for the rest of the test.
func fakeYarn(t *testing.T, p *testutil.Project, rows ...outdated.Row) *testutil.FakeExecutor {
	t.Helper()
	f := testutil.NewFakeExecutor().On(workspacesCommand, 0, p.WorkspacesInfo(), "")
	if len(rows) == 0 {
		f.On(outdatedCommand, 0, "yarn outdated v1.22.19\nDone in 0.20s.\n", "")
	} else {
		f.On(outdatedCommand, 1, testutil.OutdatedReport(rows...), "")
	}
	return f.Install(t)
}

func fooRow(latest string) outdated.Row {
	return outdated.Row{Dependency: "foo", Current: "1.0.0", Wanted: "1.1.0", Latest: latest, Workspace: "pkg-a"}
}
