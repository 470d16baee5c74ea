package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ajxudir/wsbump/pkg/config"
	"github.com/ajxudir/wsbump/pkg/constants"
	"github.com/ajxudir/wsbump/pkg/errors"
	"github.com/ajxudir/wsbump/pkg/filtering"
	"github.com/ajxudir/wsbump/pkg/outdated"
	"github.com/ajxudir/wsbump/pkg/output"
	"github.com/ajxudir/wsbump/pkg/update"
	"github.com/ajxudir/wsbump/pkg/verbose"
	"github.com/ajxudir/wsbump/pkg/warnings"
	"github.com/ajxudir/wsbump/pkg/workspace"
)

// runBump is the root command: resolve the workspaces, run the outdated
// check, and rewrite the manifests of the selected dependencies.
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Dependency names to bump; empty selects every outdated dependency
//
// Returns:
//   - error: ExitError with ExitConfigError for bad flags or configuration,
//     ExitFailure when workspaces cannot be resolved or a manifest cannot
//     be rewritten
func runBump(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFlag()
	if err != nil {
		return err
	}

	collector, restoreWarnings := collectWarnings(format)
	defer restoreWarnings()

	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	opts := config.NewOptions(cfg.WorkingDir, args, latestFlag || cfg.Update.PreferLatest)
	if len(opts.Targets) > 0 {
		verbose.Printf("Targets: %v", opts.TargetNames())
	}
	ctx := cmd.Context()

	mapping, err := workspace.NewResolver(cfg).Resolve(ctx, cfg.WorkingDir)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("failed to resolve workspaces: %w", err))
	}

	result := &output.BumpResult{
		Summary:  output.BumpSummary{DryRun: dryRunFlag, PreferLatest: opts.PreferLatest},
		Packages: []output.BumpPackage{},
	}

	report := outdated.NewRunner(cfg).Run(ctx, cfg.WorkingDir)
	switch report.Kind {
	case outdated.NoUpdatesFound:
		result.Summary.Outcome = output.OutcomeNoUpdates
		return writeBumpResult(cmd, format, result, collector)
	case outdated.InvocationFailed:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.NewExitError(errors.ExitFailure, fmt.Errorf("interrupted: %w", ctxErr))
		}
		warnings.Warnf("%s  Outdated check failed, nothing was updated: %v\n", constants.IconWarn, report.Err)
		result.Summary.Outcome = output.OutcomeInvocationFailed
		return writeBumpResult(cmd, format, result, collector)
	}

	rows := outdated.ParseReport(report.Text, cfg.Report.Header, cfg.Report.Footer)
	verbose.Printf("Parsed %d report rows", len(rows))

	groups := filtering.FilterAndGroup(rows, opts)
	if groups.Empty() {
		result.Summary.Outcome = output.OutcomeNothingSelected
		return writeBumpResult(cmd, format, result, collector)
	}

	applier := update.NewApplier(cfg, dryRunFlag)
	progress := output.NewProgress(cmd.ErrOrStderr(), len(groups.Workspaces()), "Updating manifests")
	progress.SetEnabled(!output.IsStructuredFormat(format) && !verboseFlag && !dryRunFlag && isTerminal(cmd.ErrOrStderr()))
	applier.OnResult = func(*update.Result) { progress.Increment() }

	results, applyErr := applier.Apply(ctx, mapping, groups, opts)
	if applyErr != nil {
		progress.Clear()
	} else {
		progress.Done()
	}

	summary := output.NewBumpResult(results, cfg.WorkingDir, dryRunFlag, opts.PreferLatest)
	if applyErr != nil {
		summary.Errors = append(summary.Errors, applyErr.Error())
	}
	if err := writeBumpResult(cmd, format, summary, collector); err != nil {
		return err
	}

	if applyErr != nil {
		return errors.NewExitError(errors.ExitFailure, applyErr)
	}
	return nil
}

func writeBumpResult(cmd *cobra.Command, format output.Format, result *output.BumpResult, collector *warnings.Collector) error {
	result.Warnings = append(result.Warnings, collectedMessages(collector)...)
	if err := output.WriteBumpResult(cmd.OutOrStdout(), format, result); err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("failed to write output: %w", err))
	}
	return nil
}

// isTerminal reports whether w is a terminal, so progress redraws are not
// written into pipes and log files.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
