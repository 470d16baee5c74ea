package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajxudir/wsbump/pkg/config"
	"github.com/ajxudir/wsbump/pkg/constants"
	"github.com/ajxudir/wsbump/pkg/errors"
	"github.com/ajxudir/wsbump/pkg/outdated"
	"github.com/ajxudir/wsbump/pkg/output"
	"github.com/ajxudir/wsbump/pkg/warnings"
)

var outdatedCmd = &cobra.Command{
	Use:   "outdated [dependency...]",
	Short: "Show what a bump would change",
	Long: `Runs the outdated check and shows, for every targeted dependency, the version
a bump would select and whether it differs from the current one. Nothing is
written.`,
	Args: cobra.ArbitraryArgs,
	RunE: runOutdated,
}

// runOutdated executes the outdated command.
func runOutdated(cmd *cobra.Command, args []string) error {
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

	result := &output.OutdatedResult{Packages: []output.OutdatedPackage{}}

	report := outdated.NewRunner(cfg).Run(cmd.Context(), cfg.WorkingDir)
	switch report.Kind {
	case outdated.ReportAvailable:
		rows := outdated.ParseReport(report.Text, cfg.Report.Header, cfg.Report.Footer)
		result = output.NewOutdatedResult(rows, opts)
	case outdated.InvocationFailed:
		if ctxErr := cmd.Context().Err(); ctxErr != nil {
			return errors.NewExitError(errors.ExitFailure, fmt.Errorf("interrupted: %w", ctxErr))
		}
		warnings.Warnf("%s  Outdated check failed: %v\n", constants.IconWarn, report.Err)
	}

	result.Warnings = append(result.Warnings, collectedMessages(collector)...)

	if err := output.WriteOutdatedResult(cmd.OutOrStdout(), format, result); err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("failed to write output: %w", err))
	}
	return nil
}
