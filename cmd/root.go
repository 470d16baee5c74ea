// Package cmd implements the wsbump command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajxudir/wsbump/pkg/errors"
	"github.com/ajxudir/wsbump/pkg/verbose"
)

var exitFunc = os.Exit

var (
	verboseFlag   bool
	versionFlag   bool
	latestFlag    bool
	dryRunFlag    bool
	directoryFlag string
	configFlag    string
	outputFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "wsbump [dependency...]",
	Short: "Bump dependency versions across yarn workspaces",
	Long: `Runs the package manager's outdated check and rewrites the version of every
outdated dependency in the manifest of the workspace that declares it.

With no arguments every outdated dependency is bumped to its wanted version,
the newest version its declared range allows. Name dependencies to bump only
those. With --latest the latest published version is used instead, whenever
it is a plain MAJOR.MINOR.PATCH release.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag {
			printVersionOutput(cmd)
			return nil
		}
		return runBump(cmd, args)
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success, including nothing to update
//   - 2: Failure
//   - 3: Configuration or validation error
//
// SIGINT and SIGTERM cancel the running package manager command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		code := errors.GetExitCode(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		verbose.Infof("Exit code %d: %v", code, err)
		stop()
		exitFunc(code)
	}
}

// ExecuteTest runs the root command with args and returns its error instead
// of exiting.
func ExecuteTest(args ...string) error {
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().StringVarP(&directoryFlag, "directory", "d", ".", "Workspace root directory")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Config file path (default: .wsbump.yml in the workspace root)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Output format: json, csv (default: table)")
	rootCmd.PersistentFlags().BoolVarP(&latestFlag, "latest", "l", false, "Prefer the latest version over the wanted one")

	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would change without writing manifests")
	// -v/--version is LOCAL so it only works on the root command.
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(workspacesCmd)
	rootCmd.AddCommand(outdatedCmd)
}

// printVersionOutput prints version, build, and runtime information.
func printVersionOutput(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	buildOS, buildArch := getBuildTarget()
	fmt.Fprintf(out, "  Build:   %s/%s\n", buildOS, buildArch)
	if buildOS != runtime.GOOS || buildArch != runtime.GOARCH {
		fmt.Fprintf(out, "  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}

	fmt.Fprintf(out, "  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Fprintf(out, "  Date:    %s\n", BuildTime)
	}
	fmt.Fprintln(out)
	if GitCommit != "" {
		fmt.Fprintf(out, "  Git:     %s\n", GitCommit)
	}
	fmt.Fprintf(out, "  Version: %s\n", Version)
}
